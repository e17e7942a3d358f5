// Package audit scans built HTML pages for content defects: editorial
// patterns that should never reach the published site, and canonical
// link hygiene problems.
package audit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/LLM-Toolkit/llm-toolkit.github.io-sub001/internal/canonical"
	"github.com/LLM-Toolkit/llm-toolkit.github.io-sub001/internal/config"
	"github.com/LLM-Toolkit/llm-toolkit.github.io-sub001/internal/site"
)

// Severity levels, ordered by weight in reports.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

const maxExcerptLen = 120

// Finding is one defect located in one file.
type Finding struct {
	File     string
	Rule     string
	Severity string
	Message  string
	Excerpt  string
}

// Report is the outcome of one audit pass over the site.
type Report struct {
	ID        string
	StartedAt time.Time
	Duration  time.Duration
	Pages     int
	Findings  []Finding
}

// Count returns the number of findings with the given severity.
func (r *Report) Count(severity string) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == severity {
			n++
		}
	}
	return n
}

type compiledRule struct {
	config.AuditRule
	re *regexp.Regexp
}

// Scanner runs content rules and canonical checks over a site tree.
type Scanner struct {
	rules  []compiledRule
	origin string
	log    zerolog.Logger
}

// NewScanner compiles the configured rules. origin is the expected
// canonical origin; an empty origin falls back like the manager does.
func NewScanner(rules []config.AuditRule, origin string, log zerolog.Logger) (*Scanner, error) {
	if origin == "" {
		origin = canonical.FallbackOrigin
	}
	compiled := make([]compiledRule, 0, len(rules))
	for _, rule := range rules {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("audit rule %q: %w", rule.Name, err)
		}
		compiled = append(compiled, compiledRule{AuditRule: rule, re: re})
	}
	return &Scanner{rules: compiled, origin: origin, log: log}, nil
}

// Scan audits every HTML file under root and returns a report with a
// fresh run ID.
func (s *Scanner) Scan(ctx context.Context, root string) (*Report, error) {
	started := time.Now()
	files, err := site.Files(root)
	if err != nil {
		return nil, err
	}

	var (
		mu       sync.Mutex
		findings []Finding
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, rel := range files {
		rel := rel
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			found, err := s.scanFile(root, rel)
			if err != nil {
				return err
			}
			mu.Lock()
			findings = append(findings, found...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(findings, func(i, j int) bool {
		if findings[i].File != findings[j].File {
			return findings[i].File < findings[j].File
		}
		return findings[i].Rule < findings[j].Rule
	})

	report := &Report{
		ID:        uuid.NewString(),
		StartedAt: started,
		Duration:  time.Since(started),
		Pages:     len(files),
		Findings:  findings,
	}
	s.log.Debug().
		Str("run_id", report.ID).
		Int("pages", report.Pages).
		Int("findings", len(report.Findings)).
		Msg("audit pass complete")
	return report, nil
}

func (s *Scanner) scanFile(root, rel string) ([]Finding, error) {
	f, err := os.Open(filepath.Join(root, rel))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", rel, err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", rel, err)
	}

	var findings []Finding
	text := doc.Find("body").Text()
	for _, rule := range s.rules {
		match := rule.re.FindString(text)
		if match == "" {
			continue
		}
		findings = append(findings, Finding{
			File:     rel,
			Rule:     rule.Name,
			Severity: rule.Severity,
			Message:  rule.Message,
			Excerpt:  excerpt(match),
		})
	}

	findings = append(findings, s.checkCanonical(doc, rel)...)
	return findings, nil
}

// checkCanonical reports hygiene defects of the canonical link itself;
// href drift against the expected URL is the job of `canonical
// validate`, not the audit.
func (s *Scanner) checkCanonical(doc *goquery.Document, rel string) []Finding {
	var findings []Finding
	links := doc.Find("head").First().Find(`link[rel="canonical"]`)

	switch links.Length() {
	case 0:
		findings = append(findings, Finding{
			File:     rel,
			Rule:     "canonical-missing",
			Severity: SeverityError,
			Message:  "page has no canonical link",
		})
		return findings
	case 1:
		// The owned state: exactly one link.
	default:
		findings = append(findings, Finding{
			File:     rel,
			Rule:     "canonical-duplicate",
			Severity: SeverityError,
			Message:  fmt.Sprintf("page has %d canonical links", links.Length()),
		})
	}

	href, _ := links.First().Attr("href")
	switch {
	case !canonical.IsValidURL(href):
		findings = append(findings, Finding{
			File:     rel,
			Rule:     "canonical-invalid",
			Severity: SeverityError,
			Message:  "canonical href is not an absolute URL",
			Excerpt:  excerpt(href),
		})
	case !strings.HasPrefix(href, s.origin+"/") && href != s.origin+"/":
		findings = append(findings, Finding{
			File:     rel,
			Rule:     "canonical-foreign-origin",
			Severity: SeverityError,
			Message:  fmt.Sprintf("canonical href is not under %s", s.origin),
			Excerpt:  excerpt(href),
		})
	case canonical.NormalizePath(strings.TrimPrefix(href, s.origin)) != strings.TrimPrefix(href, s.origin):
		findings = append(findings, Finding{
			File:     rel,
			Rule:     "canonical-unnormalized",
			Severity: SeverityWarning,
			Message:  "canonical href path is not in canonical form",
			Excerpt:  excerpt(href),
		})
	}
	return findings
}

func excerpt(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > maxExcerptLen {
		s = s[:maxExcerptLen] + "…"
	}
	return s
}
