package canonical

import "testing"

func TestNormalizePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"root", "/", "/"},
		{"empty", "", "/"},
		{"plainPath", "/documents/foo", "/documents/foo"},
		{"trailingSlash", "/documents/foo/", "/documents/foo"},
		{"doubleTrailingSlash", "/documents/foo//", "/documents/foo"},
		{"onlySlashes", "///", "/"},
		{"stripsQuery", "/search?q=hello", "/search"},
		{"stripsFragment", "/search#top", "/search"},
		{"stripsQueryAndFragment", "/search?q=hello#top", "/search"},
		{"fragmentBeforeQuery", "/search#top?q=hello", "/search"},
		{"addsLeadingSlash", "documents/foo", "/documents/foo"},
		{"keepsInteriorDoubleSlash", "/documents//bar", "/documents//bar"},
		{"queryOnly", "?q=hello", "/"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizePath(tt.input); got != tt.expected {
				t.Fatalf("NormalizePath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizePathIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"/", "", "/documents/foo/", "/search?q=hello#top", "a/b/", "///",
		"/comparisons//x/", "/documents/foo//",
	}
	for _, in := range inputs {
		once := NormalizePath(in)
		if twice := NormalizePath(once); twice != once {
			t.Errorf("NormalizePath not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestIsValidURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"https", "https://example.test/documents/foo", true},
		{"http", "http://example.test/", true},
		{"otherScheme", "ftp://example.test/file", true},
		{"notAURL", "not a url", false},
		{"empty", "", false},
		{"relative", "/documents/foo", false},
		{"schemeOnly", "https://", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsValidURL(tt.input); got != tt.valid {
				t.Fatalf("IsValidURL(%q) = %v, want %v", tt.input, got, tt.valid)
			}
		})
	}
}

func TestIsValidOrigin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"bareOrigin", "https://example.test", true},
		{"withPort", "https://example.test:8443", true},
		{"trailingSlash", "https://example.test/", false},
		{"withPath", "https://example.test/docs", false},
		{"withQuery", "https://example.test?x=1", false},
		{"withUser", "https://user@example.test", false},
		{"relative", "example.test", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsValidOrigin(tt.input); got != tt.valid {
				t.Fatalf("IsValidOrigin(%q) = %v, want %v", tt.input, got, tt.valid)
			}
		})
	}
}
