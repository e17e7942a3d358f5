// Package searchcheck smoke-tests the live search integration: one
// request against the search page, verifying it answers and actually
// renders the search surface.
package searchcheck

import (
	"context"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/LLM-Toolkit/llm-toolkit.github.io-sub001/internal/config"
)

// Responses larger than this are cut off; the marker sits in the page
// shell, not in payload data.
const maxBodyBytes = 1 << 20

// Result describes a completed (successful) smoke test.
type Result struct {
	URL      string
	Status   int
	Duration time.Duration
}

// Check performs the smoke test. origin is used when no explicit
// endpoint is configured.
func Check(ctx context.Context, cfg config.SearchConfig, origin string, log zerolog.Logger) (*Result, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = origin + "/search"
	}
	target := endpoint + "?q=" + neturl.QueryEscape(cfg.Query)

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", target, err)
	}

	log.Debug().Str("url", target).Msg("requesting search page")
	started := time.Now()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search page returned %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if cfg.Marker != "" && !strings.Contains(string(body), cfg.Marker) {
		return nil, fmt.Errorf("search page is missing marker %q", cfg.Marker)
	}

	return &Result{URL: target, Status: resp.StatusCode, Duration: time.Since(started)}, nil
}
