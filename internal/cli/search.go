package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/LLM-Toolkit/llm-toolkit.github.io-sub001/internal/cli/styles"
	"github.com/LLM-Toolkit/llm-toolkit.github.io-sub001/internal/searchcheck"
)

// NewCheckSearchCmd creates the check-search command
func NewCheckSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check-search",
		Short: "Smoke-test the live search integration",
		Args:  cobra.NoArgs,
		RunE:  runCheckSearch,
	}
	cmd.Flags().String("query", "", "search query (defaults to config search.query)")

	return cmd
}

func runCheckSearch(cmd *cobra.Command, _ []string) error {
	cli, err := NewCLI()
	if err != nil {
		return err
	}

	cfg := cli.Config.Search
	if query, _ := cmd.Flags().GetString("query"); query != "" {
		cfg.Query = query
	}

	result, err := searchcheck.Check(cmd.Context(), cfg, cli.Origin(), cli.Log)
	if err != nil {
		return fmt.Errorf("search smoke test failed: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), styles.Success.Render(fmt.Sprintf(
		"Search OK: %s answered %d in %s",
		result.URL, result.Status, result.Duration.Round(time.Millisecond))))
	return nil
}
