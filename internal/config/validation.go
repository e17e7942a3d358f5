package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/LLM-Toolkit/llm-toolkit.github.io-sub001/internal/canonical"
)

var validSeverities = map[string]bool{
	"error":   true,
	"warning": true,
	"info":    true,
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// normalizeConfig fixes up values that have an unambiguous correct form
// rather than rejecting them.
func normalizeConfig(cfg *Config) {
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))

	if len(cfg.Audit.Rules) == 0 {
		cfg.Audit.Rules = DefaultAuditRules()
	}
	for i := range cfg.Audit.Rules {
		if cfg.Audit.Rules[i].Severity == "" {
			cfg.Audit.Rules[i].Severity = "warning"
		}
		cfg.Audit.Rules[i].Severity = strings.ToLower(cfg.Audit.Rules[i].Severity)
	}
}

// validateConfig rejects configurations that cannot work.
func validateConfig(cfg *Config) error {
	if cfg.BaseURL != "" && !canonical.IsValidOrigin(cfg.BaseURL) {
		return fmt.Errorf("base_url %q is not a bare origin (scheme + authority, no path, no trailing slash)", cfg.BaseURL)
	}
	if cfg.SiteDir == "" {
		return fmt.Errorf("site_dir must not be empty")
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level %q is not one of trace, debug, info, warn, error", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "console" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format %q is not console or json", cfg.Logging.Format)
	}
	if cfg.Search.Timeout <= 0 {
		return fmt.Errorf("search.timeout must be positive, got %v", cfg.Search.Timeout)
	}

	for _, rule := range cfg.Audit.Rules {
		if rule.Name == "" {
			return fmt.Errorf("audit rule with pattern %q has no name", rule.Pattern)
		}
		if _, err := regexp.Compile(rule.Pattern); err != nil {
			return fmt.Errorf("audit rule %q has an invalid pattern: %w", rule.Name, err)
		}
		if !validSeverities[rule.Severity] {
			return fmt.Errorf("audit rule %q has severity %q, want error, warning or info", rule.Name, rule.Severity)
		}
	}
	return nil
}
