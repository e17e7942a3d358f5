package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LLM-Toolkit/llm-toolkit.github.io-sub001/internal/cli/styles"
	"github.com/LLM-Toolkit/llm-toolkit.github.io-sub001/internal/rewrite"
)

// NewRewriteDomainCmd creates the rewrite-domain command
func NewRewriteDomainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rewrite-domain <old-origin> <new-origin>",
		Short: "Replace the old site origin across files on disk",
		Long: `Bulk-replace every occurrence of the old origin with the new one
across the files under --dir. Both arguments must be bare origins
(scheme + authority, no path, no trailing slash). This is the tool that
keeps baked-in origins, the canonical fallback included, in sync after
a domain move.`,
		Args: cobra.ExactArgs(2),
		RunE: runRewriteDomain,
	}
	cmd.Flags().String("dir", ".", "root directory to rewrite")
	cmd.Flags().StringSlice("ext", nil, "file extensions to touch (defaults to the usual text formats)")
	cmd.Flags().Bool("dry-run", false, "report replacements without writing")

	return cmd
}

func runRewriteDomain(cmd *cobra.Command, args []string) error {
	cli, err := NewCLI()
	if err != nil {
		return err
	}
	dir, _ := cmd.Flags().GetString("dir")
	exts, _ := cmd.Flags().GetStringSlice("ext")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	result, err := rewrite.Run(rewrite.Options{
		Root:       dir,
		OldOrigin:  args[0],
		NewOrigin:  args[1],
		Extensions: exts,
		DryRun:     dryRun,
	}, cli.Log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	verb := "replaced"
	if dryRun {
		verb = "would replace"
	}
	fmt.Fprintln(out, styles.Title.Render(fmt.Sprintf(
		"Scanned %d files, %s %d occurrences in %d files",
		result.FilesScanned, verb, result.Replacements, len(result.FilesChanged))))
	for _, rel := range result.FilesChanged {
		fmt.Fprintf(out, "  %s\n", rel)
	}
	return nil
}
