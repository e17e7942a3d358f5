// Package cli provides the command-line interface for sitetool.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/LLM-Toolkit/llm-toolkit.github.io-sub001/internal/canonical"
	"github.com/LLM-Toolkit/llm-toolkit.github.io-sub001/internal/config"
	"github.com/LLM-Toolkit/llm-toolkit.github.io-sub001/internal/logging"
)

// CLI holds the loaded configuration and logger shared by all commands.
type CLI struct {
	Config *config.Config
	Log    zerolog.Logger
}

// NewCLI loads configuration and constructs the logger.
func NewCLI() (*CLI, error) {
	if err := config.Init(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg := config.Get()

	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.Logging.Level)
	logCfg.Format = cfg.Logging.Format

	return &CLI{Config: cfg, Log: logging.New(logCfg)}, nil
}

// Origin returns the canonical origin the tool operates against:
// the configured base URL, or the baked-in fallback.
func (c *CLI) Origin() string {
	if c.Config.BaseURL != "" {
		return c.Config.BaseURL
	}
	return canonical.FallbackOrigin
}

// siteDir resolves the built-site directory for commands with a
// --site-dir flag, falling back to the configured one.
func (c *CLI) siteDir(cmd *cobra.Command) string {
	if dir, _ := cmd.Flags().GetString("site-dir"); dir != "" {
		return dir
	}
	return c.Config.SiteDir
}

// NewRootCmd creates the root command for sitetool
func NewRootCmd(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sitetool",
		Short: "Maintenance tooling for the documentation site",
		Long: `sitetool maintains the published documentation/comparison site:
it installs and validates canonical URLs on built pages, audits content
for defects, migrates the site origin, and smoke-tests the search
integration.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(NewCanonicalCmd())
	rootCmd.AddCommand(NewAuditCmd())
	rootCmd.AddCommand(NewRewriteDomainCmd())
	rootCmd.AddCommand(NewCheckSearchCmd())
	rootCmd.AddCommand(NewConfigCmd())

	return rootCmd
}
