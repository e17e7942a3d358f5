package canonical

// PageKind identifies one of the site's logical page types.
type PageKind int

const (
	PageUnknown PageKind = iota
	PageHomepage
	PageDocument
	PageComparison
	PageSearch
)

// String returns the symbolic name used in CLI flags and logs.
func (k PageKind) String() string {
	switch k {
	case PageHomepage:
		return "homepage"
	case PageDocument:
		return "document"
	case PageComparison:
		return "comparison"
	case PageSearch:
		return "search"
	default:
		return "unknown"
	}
}

// ParsePageKind maps a symbolic name back to its PageKind.
func ParsePageKind(s string) (PageKind, bool) {
	switch s {
	case "homepage":
		return PageHomepage, true
	case "document":
		return PageDocument, true
	case "comparison":
		return PageComparison, true
	case "search":
		return PageSearch, true
	default:
		return PageUnknown, false
	}
}

// Page is a tagged reference to a logical page. Slug is only meaningful
// for document and comparison pages and is inserted into URLs verbatim;
// callers supply path-safe slugs.
type Page struct {
	Kind PageKind
	Slug string
}

// Homepage returns the root page.
func Homepage() Page { return Page{Kind: PageHomepage} }

// Document returns the document page with the given slug.
func Document(slug string) Page { return Page{Kind: PageDocument, Slug: slug} }

// Comparison returns the comparison page with the given slug.
func Comparison(slug string) Page { return Page{Kind: PageComparison, Slug: slug} }

// SearchPage returns the search page.
func SearchPage() Page { return Page{Kind: PageSearch} }
