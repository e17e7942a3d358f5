package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/LLM-Toolkit/llm-toolkit.github.io-sub001/internal/audit"
	"github.com/LLM-Toolkit/llm-toolkit.github.io-sub001/internal/audit/store"
	"github.com/LLM-Toolkit/llm-toolkit.github.io-sub001/internal/cli/styles"
)

const defaultHistoryLimit = 20

// NewAuditCmd creates the audit command
func NewAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit built pages for content and canonical defects",
		Long: `Scan every built HTML page with the configured content rules plus
canonical link hygiene checks. Each run is persisted to the audit
database so regressions can be traced.`,
		Args: cobra.NoArgs,
		RunE: runAudit,
	}
	cmd.Flags().String("site-dir", "", "built site directory (defaults to config site_dir)")
	cmd.Flags().Bool("watch", false, "re-run the audit when the site changes")
	cmd.Flags().Bool("no-store", false, "skip persisting the run to the audit database")
	cmd.Flags().Bool("fail-on-error", true, "exit non-zero when error-severity findings exist")

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recent audit runs",
		Args:  cobra.NoArgs,
		RunE:  runAuditHistory,
	}
	historyCmd.Flags().IntP("limit", "n", defaultHistoryLimit, "Number of runs to show")
	cmd.AddCommand(historyCmd)

	return cmd
}

func runAudit(cmd *cobra.Command, _ []string) error {
	cli, err := NewCLI()
	if err != nil {
		return err
	}
	dir := cli.siteDir(cmd)
	watch, _ := cmd.Flags().GetBool("watch")
	noStore, _ := cmd.Flags().GetBool("no-store")
	failOnError, _ := cmd.Flags().GetBool("fail-on-error")

	scanner, err := audit.NewScanner(cli.Config.Audit.Rules, cli.Origin(), cli.Log)
	if err != nil {
		return err
	}

	var db *store.Store
	if !noStore {
		db, err = store.Open(cli.Config.Audit.DatabasePath)
		if err != nil {
			return err
		}
		defer db.Close()
	}

	runOnce := func() (*audit.Report, error) {
		report, err := scanner.Scan(cmd.Context(), dir)
		if err != nil {
			return nil, err
		}
		if db != nil {
			if err := db.SaveReport(cmd.Context(), report); err != nil {
				return nil, err
			}
		}
		printReport(cmd, report)
		return report, nil
	}

	report, err := runOnce()
	if err != nil {
		return err
	}

	if watch {
		return audit.Watch(cmd.Context(), dir, cli.Log, func() {
			if _, err := runOnce(); err != nil {
				cli.Log.Error().Err(err).Msg("audit pass failed")
			}
		})
	}

	if failOnError && report.Count(audit.SeverityError) > 0 {
		return fmt.Errorf("%d error findings", report.Count(audit.SeverityError))
	}
	return nil
}

func printReport(cmd *cobra.Command, report *audit.Report) {
	out := cmd.OutOrStdout()
	summary := fmt.Sprintf("Audit %s: %d pages, %d errors, %d warnings (%s)",
		report.ID[:8], report.Pages,
		report.Count(audit.SeverityError), report.Count(audit.SeverityWarning),
		report.Duration.Round(time.Millisecond))
	fmt.Fprintln(out, styles.Title.Render(summary))

	for _, f := range report.Findings {
		label := styles.Severity(f.Severity).Render(f.Severity)
		if f.Excerpt != "" {
			fmt.Fprintf(out, "  %s %s [%s] %s: %q\n", label, f.File, f.Rule, f.Message, f.Excerpt)
			continue
		}
		fmt.Fprintf(out, "  %s %s [%s] %s\n", label, f.File, f.Rule, f.Message)
	}
}

func runAuditHistory(cmd *cobra.Command, _ []string) error {
	cli, err := NewCLI()
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")

	db, err := store.Open(cli.Config.Audit.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.RecentRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No audit runs recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSTARTED\tPAGES\tERRORS\tWARNINGS\tDURATION")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\n",
			r.ID[:8], r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Pages, r.Errors, r.Warnings, r.Duration.Round(time.Millisecond))
	}
	return w.Flush()
}
