package canonical

// Environment supplies the page-context capabilities the manager needs:
// where the page lives, what the address bar shows, and the canonical
// link slot in the document head. Implementations that lack a capability
// report it via the boolean return; the manager treats a missing
// capability as a silent no-op.
type Environment interface {
	// Origin returns the scheme+authority the page is served from,
	// without a trailing slash.
	Origin() (string, bool)
	// Path returns the current site-relative path, query and fragment
	// excluded.
	Path() (string, bool)
	// FullURL returns the current absolute URL as shown in the address
	// bar (or its equivalent).
	FullURL() (string, bool)
	// ReplaceState swaps the current address-bar URL in place without
	// creating a history entry. It reports whether the replacement
	// happened.
	ReplaceState(url string) bool
	// CanonicalHref returns the href of the installed canonical link,
	// if one exists.
	CanonicalHref() (string, bool)
	// SetCanonicalHref installs or updates the canonical link so that
	// exactly one exists afterwards. It reports whether the write
	// happened.
	SetCanonicalHref(href string) bool
}

// NopEnvironment returns an Environment with no capabilities. It is the
// environment of non-page contexts (pre-render, plain computation); every
// manager operation that needs a page becomes a no-op against it.
func NopEnvironment() Environment { return nopEnvironment{} }

type nopEnvironment struct{}

func (nopEnvironment) Origin() (string, bool)        { return "", false }
func (nopEnvironment) Path() (string, bool)          { return "", false }
func (nopEnvironment) FullURL() (string, bool)       { return "", false }
func (nopEnvironment) ReplaceState(string) bool      { return false }
func (nopEnvironment) CanonicalHref() (string, bool) { return "", false }
func (nopEnvironment) SetCanonicalHref(string) bool  { return false }
