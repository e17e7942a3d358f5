package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	defaultSiteDir       = "public"
	defaultSearchQuery   = "hello"
	defaultSearchMarker  = "search-results"
	defaultSearchTimeout = 10 * time.Second
)

// DefaultAuditRules are the content checks applied when the config file
// does not define its own. They target the recurring editorial defects
// of the site: placeholder text that survived publishing and references
// to superseded origins.
func DefaultAuditRules() []AuditRule {
	return []AuditRule{
		{
			Name:     "placeholder-text",
			Pattern:  `(?i)lorem ipsum`,
			Message:  "placeholder text published",
			Severity: "error",
		},
		{
			Name:     "unfinished-marker",
			Pattern:  `\b(TODO|FIXME|TBD)\b`,
			Message:  "unfinished content marker",
			Severity: "warning",
		},
		{
			Name:     "insecure-origin",
			Pattern:  `http://llm-toolkit\.github\.io`,
			Message:  "insecure reference to the site origin",
			Severity: "error",
		},
		{
			Name:     "broken-entity",
			Pattern:  `&(amp|lt|gt|quot);[a-z]+;`,
			Message:  "double-escaped HTML entity",
			Severity: "warning",
		},
	}
}

// DefaultConfig returns the configuration used when no file or
// environment overrides are present.
func DefaultConfig() Config {
	return Config{
		SiteDir: defaultSiteDir,
		Audit: AuditConfig{
			Rules: DefaultAuditRules(),
		},
		Search: SearchConfig{
			Query:   defaultSearchQuery,
			Marker:  defaultSearchMarker,
			Timeout: defaultSearchTimeout,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", "")
	v.SetDefault("site_dir", defaultSiteDir)
	v.SetDefault("search.query", defaultSearchQuery)
	v.SetDefault("search.marker", defaultSearchMarker)
	v.SetDefault("search.timeout", defaultSearchTimeout)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}
