package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LLM-Toolkit/llm-toolkit.github.io-sub001/internal/canonical"
	"github.com/LLM-Toolkit/llm-toolkit.github.io-sub001/internal/cli/styles"
	"github.com/LLM-Toolkit/llm-toolkit.github.io-sub001/internal/site"
)

// NewCanonicalCmd creates the canonical command
func NewCanonicalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "canonical",
		Short: "Manage canonical URLs of built pages",
		Long: `Manage canonical URLs with various subcommands:
  url      - Print the canonical URL for a path or page type
  emit     - Install canonical links into the built site
  validate - Report drift between installed and expected canonicals`,
	}

	urlCmd := &cobra.Command{
		Use:   "url [path]",
		Short: "Print the canonical URL for a path or page type",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCanonicalURL,
	}
	urlCmd.Flags().String("page", "", "page type: homepage, document, comparison or search")
	urlCmd.Flags().String("slug", "", "slug for the document/comparison page types")

	emitCmd := &cobra.Command{
		Use:   "emit",
		Short: "Install canonical links into the built site",
		Long: `Walk the built site, run the redirect pipeline on every page and
install its canonical link. Files are only rewritten when their head
actually changes, so a second run is a no-op.`,
		Args: cobra.NoArgs,
		RunE: runCanonicalEmit,
	}
	emitCmd.Flags().String("site-dir", "", "built site directory (defaults to config site_dir)")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Report drift between installed and expected canonicals",
		Args:  cobra.NoArgs,
		RunE:  runCanonicalValidate,
	}
	validateCmd.Flags().String("site-dir", "", "built site directory (defaults to config site_dir)")

	cmd.AddCommand(urlCmd)
	cmd.AddCommand(emitCmd)
	cmd.AddCommand(validateCmd)

	return cmd
}

func runCanonicalURL(cmd *cobra.Command, args []string) error {
	cli, err := NewCLI()
	if err != nil {
		return err
	}

	m := canonical.New(nil,
		canonical.WithBaseURL(cli.Config.BaseURL),
		canonical.WithLogger(cli.Log),
	)

	pageType, _ := cmd.Flags().GetString("page")
	slug, _ := cmd.Flags().GetString("slug")

	var url string
	switch {
	case pageType != "":
		kind, ok := canonical.ParsePageKind(pageType)
		if !ok {
			return fmt.Errorf("unknown page type %q (want homepage, document, comparison or search)", pageType)
		}
		url = m.CanonicalForPage(canonical.Page{Kind: kind, Slug: slug})
	case len(args) == 1:
		url = m.GenerateCanonical(args[0])
	default:
		url = m.GenerateCanonical("/")
	}

	fmt.Fprintln(cmd.OutOrStdout(), url)
	return nil
}

func runCanonicalEmit(cmd *cobra.Command, _ []string) error {
	cli, err := NewCLI()
	if err != nil {
		return err
	}
	dir := cli.siteDir(cmd)

	result, err := site.Emit(cmd.Context(), dir, cli.Config.BaseURL, cli.Log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, styles.Title.Render(fmt.Sprintf("Canonical emission: %d pages, %d updated", result.Pages, len(result.Updated))))
	for _, rel := range result.Updated {
		fmt.Fprintf(out, "  %s\n", rel)
	}
	if len(result.Redirects) > 0 {
		fmt.Fprintln(out, styles.Warning.Render(fmt.Sprintf("%d pages live at non-canonical locations:", len(result.Redirects))))
		for _, r := range result.Redirects {
			fmt.Fprintf(out, "  %s: %s -> %s\n", r.File, r.From, r.To)
		}
	}
	return nil
}

func runCanonicalValidate(cmd *cobra.Command, _ []string) error {
	cli, err := NewCLI()
	if err != nil {
		return err
	}
	dir := cli.siteDir(cmd)

	drifts, err := site.Validate(cmd.Context(), dir, cli.Config.BaseURL, cli.Log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(drifts) == 0 {
		fmt.Fprintln(out, styles.Success.Render("All canonical links match."))
		return nil
	}

	for _, d := range drifts {
		if d.Missing {
			fmt.Fprintf(out, "%s %s: no canonical link (expected %s)\n", styles.Error.Render("MISSING"), d.File, d.Expected)
			continue
		}
		fmt.Fprintf(out, "%s %s: %s (expected %s)\n", styles.Error.Render("DRIFT"), d.File, d.Current, d.Expected)
	}
	return fmt.Errorf("%d of the pages have canonical drift", len(drifts))
}
