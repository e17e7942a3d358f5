package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	assert.Equal(t, "public", v.GetString("site_dir"))
	assert.Equal(t, "", v.GetString("base_url"))
	assert.Equal(t, "info", v.GetString("logging.level"))
	assert.Equal(t, "console", v.GetString("logging.format"))
	assert.Equal(t, 10*time.Second, v.GetDuration("search.timeout"))
}

func TestNormalizeConfigFillsAuditRules(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Audit.Rules = nil

	normalizeConfig(&cfg)

	require.NotEmpty(t, cfg.Audit.Rules)
	for _, rule := range cfg.Audit.Rules {
		assert.NotEmpty(t, rule.Name)
		assert.NotEmpty(t, rule.Pattern)
	}
}

func TestNormalizeConfigSeverityDefault(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Audit.Rules = []AuditRule{{Name: "x", Pattern: "x", Severity: ""}}

	normalizeConfig(&cfg)

	assert.Equal(t, "warning", cfg.Audit.Rules[0].Severity)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaultsAreValid", func(c *Config) {}, ""},
		{"validBaseURL", func(c *Config) { c.BaseURL = "https://example.test" }, ""},
		{"baseURLWithTrailingSlash", func(c *Config) { c.BaseURL = "https://example.test/" }, "base_url"},
		{"baseURLWithPath", func(c *Config) { c.BaseURL = "https://example.test/docs" }, "base_url"},
		{"emptySiteDir", func(c *Config) { c.SiteDir = "" }, "site_dir"},
		{"badLogLevel", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"badLogFormat", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"zeroTimeout", func(c *Config) { c.Search.Timeout = 0 }, "search.timeout"},
		{"badRulePattern", func(c *Config) {
			c.Audit.Rules = []AuditRule{{Name: "bad", Pattern: "(", Severity: "error"}}
		}, "invalid pattern"},
		{"badRuleSeverity", func(c *Config) {
			c.Audit.Rules = []AuditRule{{Name: "bad", Pattern: "x", Severity: "fatal"}}
		}, "severity"},
		{"unnamedRule", func(c *Config) {
			c.Audit.Rules = []AuditRule{{Pattern: "x", Severity: "error"}}
		}, "no name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := validateConfig(&cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestDefaultAuditRulesCompile(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, validateConfig(&cfg))
}

func TestSchema(t *testing.T) {
	out, err := Schema()
	require.NoError(t, err)
	assert.Contains(t, string(out), "site_dir")
	assert.Contains(t, string(out), "base_url")
}
