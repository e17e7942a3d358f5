// Package canonical computes the authoritative URL for site pages,
// normalizes the address bar to match, and publishes the result as the
// single rel="canonical" link in the document head.
package canonical

import "github.com/rs/zerolog"

// FallbackOrigin is used when no origin is supplied and none can be
// detected from the environment. It is maintained out-of-band by the
// rewrite-domain tool; keep it a bare origin with no trailing slash.
const FallbackOrigin = "https://llm-toolkit.github.io"

// Manager owns the canonical URL of one page context. It holds no
// mutable state beyond the origin fixed at construction; the only
// implicit state is the canonical link living in the environment's head.
//
// No operation returns an error or panics. Invalid input is absorbed as
// a warn-and-no-op, a missing environment capability as a silent no-op,
// so the manager can run during page rendering and in non-page contexts
// without special-casing.
type Manager struct {
	origin string
	env    Environment
	log    zerolog.Logger
}

type options struct {
	baseURL string
	log     zerolog.Logger
}

// Option configures a Manager at construction.
type Option func(*options)

// WithBaseURL overrides both environment detection and FallbackOrigin.
// The value is used verbatim as the origin.
func WithBaseURL(origin string) Option {
	return func(o *options) { o.baseURL = origin }
}

// WithLogger sets the sink for diagnostics. Defaults to a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.log = log }
}

// New constructs a Manager bound to env. A nil env behaves like
// NopEnvironment. The origin is resolved once: explicit base URL, then
// the environment's origin, then FallbackOrigin.
func New(env Environment, opts ...Option) *Manager {
	o := options{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if env == nil {
		env = NopEnvironment()
	}
	origin := o.baseURL
	if origin == "" {
		if detected, ok := env.Origin(); ok && detected != "" {
			origin = detected
		} else {
			origin = FallbackOrigin
		}
	}
	return &Manager{origin: origin, env: env, log: o.log}
}

// Origin returns the origin resolved at construction.
func (m *Manager) Origin() string { return m.origin }

// GenerateCanonical returns the canonical absolute URL for path. An
// empty path means the environment's current path, or "/" when the
// environment has none.
func (m *Manager) GenerateCanonical(path string) string {
	if path == "" {
		if p, ok := m.env.Path(); ok {
			path = p
		} else {
			path = "/"
		}
	}
	return m.origin + NormalizePath(path)
}

// CanonicalForPage formats the canonical URL for a registered page type.
// Unknown kinds fall back to the canonical of the current path.
func (m *Manager) CanonicalForPage(p Page) string {
	switch p.Kind {
	case PageHomepage:
		return m.origin + "/"
	case PageDocument:
		return m.origin + "/documents/" + p.Slug
	case PageComparison:
		return m.origin + "/comparisons/" + p.Slug
	case PageSearch:
		return m.origin + "/search"
	default:
		return m.GenerateCanonical("")
	}
}

// SetCanonicalLink installs or updates the canonical link. An empty href
// means GenerateCanonical of the current path. An href that does not
// parse as an absolute URL leaves any existing link untouched and logs a
// warning.
func (m *Manager) SetCanonicalLink(href string) {
	if href == "" {
		href = m.GenerateCanonical("")
	}
	if !IsValidURL(href) {
		m.log.Warn().Str("url", href).Msg("refusing invalid canonical URL")
		return
	}
	m.env.SetCanonicalHref(href)
}

// CurrentCanonical returns the href of the installed canonical link, if
// the environment has one.
func (m *Manager) CurrentCanonical() (string, bool) {
	return m.env.CanonicalHref()
}

// Validation is the result of comparing the installed canonical link
// against the one the manager would produce now.
type Validation struct {
	Matches  bool
	Current  string
	Expected string
}

// ValidateCurrentCanonical compares the installed href with the expected
// canonical for the current path. A missing link never matches.
func (m *Manager) ValidateCurrentCanonical() Validation {
	expected := m.GenerateCanonical("")
	current, _ := m.env.CanonicalHref()
	return Validation{
		Matches:  current == expected,
		Current:  current,
		Expected: expected,
	}
}

// HandleRedirects applies the redirect pipeline to the current path. If
// a rule fires and the resulting URL differs from the current full URL,
// the address bar is replaced in place and the canonical link refreshed.
// Run this before the first SetCanonicalLink of a page load so the
// canonical is never emitted for a URL about to be rewritten.
func (m *Manager) HandleRedirects() {
	path, ok := m.env.Path()
	if !ok {
		return
	}
	rewritten, fired := applyRedirectRules(path)
	if !fired {
		return
	}
	target := m.origin + rewritten
	if full, ok := m.env.FullURL(); ok && full == target {
		return
	}
	if m.env.ReplaceState(target) {
		m.log.Debug().Str("url", target).Msg("address bar rewritten")
	}
	m.SetCanonicalLink(target)
}

// Init runs the redirect pipeline and then installs the canonical link.
// Intended for one-shot invocation when a page loads.
func (m *Manager) Init() {
	m.HandleRedirects()
	m.SetCanonicalLink("")
}

// UpdateCanonical recomputes and installs the canonical for newPath
// without touching the address bar. Intended for client-side navigation.
func (m *Manager) UpdateCanonical(newPath string) {
	m.SetCanonicalLink(m.GenerateCanonical(newPath))
}
