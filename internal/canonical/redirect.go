package canonical

import "strings"

// redirectRule is one entry of the first-match redirect pipeline.
type redirectRule struct {
	name  string
	match func(path string) bool
	apply func(path string) string
}

// redirectRules are evaluated in order; at most one fires per
// invocation. These are the address-bar defects actually observed on the
// site: trailing slashes and doubled slashes after the two content
// prefixes.
var redirectRules = []redirectRule{
	{
		name: "strip-trailing-slash",
		match: func(p string) bool {
			return p != "/" && strings.HasSuffix(p, "/")
		},
		apply: func(p string) string {
			p = strings.TrimRight(p, "/")
			if p == "" {
				p = "/"
			}
			return p
		},
	},
	{
		name: "collapse-documents-slash",
		match: func(p string) bool {
			return strings.Contains(p, "/documents//")
		},
		apply: func(p string) string {
			return strings.Replace(p, "/documents//", "/documents/", 1)
		},
	},
	{
		name: "collapse-comparisons-slash",
		match: func(p string) bool {
			return strings.Contains(p, "/comparisons//")
		},
		apply: func(p string) string {
			return strings.Replace(p, "/comparisons//", "/comparisons/", 1)
		},
	},
}

// applyRedirectRules runs the pipeline over path. It returns the
// rewritten path and whether any rule fired.
func applyRedirectRules(path string) (string, bool) {
	for _, rule := range redirectRules {
		if rule.match(path) {
			return rule.apply(path), true
		}
	}
	return path, false
}
