package canonical

import (
	neturl "net/url"
	"strings"
)

// NormalizePath reduces a raw path to its canonical site-relative form:
// query and fragment dropped, leading slash guaranteed, trailing slashes
// removed unless the path is the root. Interior double slashes are left
// alone here; the redirect rules handle the cases that occur on the site.
func NormalizePath(raw string) string {
	p := raw
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	if i := strings.IndexByte(p, '#'); i >= 0 {
		p = p[:i]
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if p != "/" && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}

// IsValidURL reports whether raw parses as an absolute URL with a scheme
// and a host. No scheme whitelist is applied.
func IsValidURL(raw string) bool {
	u, err := neturl.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// IsValidOrigin reports whether raw is a bare origin: an absolute URL
// with no path, query, fragment, or trailing slash. The rewrite-domain
// tool uses this to vet replacement origins before they end up baked
// into pages and into FallbackOrigin.
func IsValidOrigin(raw string) bool {
	if !IsValidURL(raw) || strings.HasSuffix(raw, "/") {
		return false
	}
	u, err := neturl.Parse(raw)
	if err != nil {
		return false
	}
	return u.Path == "" && u.RawQuery == "" && u.Fragment == "" && u.User == nil
}
