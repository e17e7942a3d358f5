// Package pageenv adapts a parsed HTML page to the canonical.Environment
// capability, so the canonical URL manager can run against built site
// files the same way it runs against a live document.
package pageenv

import (
	"fmt"
	"html"
	"io"
	neturl "net/url"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const canonicalSelector = `link[rel="canonical"]`

// Page is one built HTML page. It implements canonical.Environment:
// the canonical link lives in the parsed head, and history replacement
// is recorded as a pending redirect since a build context has no
// address bar.
type Page struct {
	doc    *goquery.Document
	origin string
	path   string

	dirty     bool
	redirects []string
}

// Parse reads an HTML page. origin may be empty when not known, in
// which case origin detection and full-URL comparison are unavailable
// and the manager falls back accordingly. path is the logical
// site-relative path of the page.
func Parse(r io.Reader, origin, path string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	return &Page{doc: doc, origin: origin, path: path}, nil
}

// PathForFile maps a site-relative HTML file path to the logical page
// path it is served at: index.html becomes /, dir/index.html becomes
// /dir, and name.html becomes /name.
func PathForFile(rel string) string {
	rel = filepath.ToSlash(rel)
	rel = strings.TrimPrefix(rel, "./")
	if rel == "index.html" {
		return "/"
	}
	rel = strings.TrimSuffix(rel, "/index.html")
	rel = strings.TrimSuffix(rel, ".html")
	return "/" + rel
}

// Origin implements canonical.Environment.
func (p *Page) Origin() (string, bool) { return p.origin, p.origin != "" }

// Path implements canonical.Environment.
func (p *Page) Path() (string, bool) { return p.path, true }

// FullURL implements canonical.Environment. Built pages carry no query
// or fragment, so the full URL is origin plus path.
func (p *Page) FullURL() (string, bool) {
	if p.origin == "" {
		return "", false
	}
	return p.origin + p.path, true
}

// ReplaceState records url as a pending redirect and moves the page's
// logical location, mirroring what history.replaceState does to a live
// document.
func (p *Page) ReplaceState(url string) bool {
	u, err := neturl.Parse(url)
	if err != nil {
		return false
	}
	p.redirects = append(p.redirects, url)
	p.path = u.Path
	return true
}

// CanonicalHref implements canonical.Environment.
func (p *Page) CanonicalHref() (string, bool) {
	sel := p.doc.Find("head").First().Find(canonicalSelector).First()
	if sel.Length() == 0 {
		return "", false
	}
	return sel.Attr("href")
}

// SetCanonicalHref installs or updates the canonical link in the head.
// Stray duplicates are dropped so exactly one remains.
func (p *Page) SetCanonicalHref(href string) bool {
	head := p.doc.Find("head").First()
	if head.Length() == 0 {
		return false
	}
	links := head.Find(canonicalSelector)
	if links.Length() == 0 {
		head.AppendHtml(fmt.Sprintf(`<link rel="canonical" href="%s"/>`, html.EscapeString(href)))
		p.dirty = true
		return true
	}
	if links.Length() > 1 {
		links.Slice(1, links.Length()).Remove()
		p.dirty = true
	}
	first := links.First()
	if current, _ := first.Attr("href"); current != href {
		first.SetAttr("href", href)
		p.dirty = true
	}
	return true
}

// Modified reports whether the head changed since parsing.
func (p *Page) Modified() bool { return p.dirty }

// Redirects returns the address-bar replacements recorded so far, in
// order.
func (p *Page) Redirects() []string { return p.redirects }

// Render serializes the page back to HTML.
func (p *Page) Render() (string, error) {
	out, err := p.doc.Html()
	if err != nil {
		return "", fmt.Errorf("failed to render page: %w", err)
	}
	return out, nil
}
