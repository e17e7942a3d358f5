package rewrite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	oldOrigin = "https://old.example.test"
	newOrigin = "https://new.example.test"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, body := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	return root
}

func read(t *testing.T, root, rel string) string {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(root, rel))
	require.NoError(t, err)
	return string(raw)
}

func TestRunReplacesAcrossFiles(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"index.html":     `<link rel="canonical" href="` + oldOrigin + `/"/>`,
		"js/main.js":     `const FALLBACK = "` + oldOrigin + `"; // twice: ` + oldOrigin,
		"notes/todo.txt": "see " + oldOrigin + "/documents/foo",
		"image.png":      oldOrigin, // wrong extension, untouched
	})

	result, err := Run(Options{Root: root, OldOrigin: oldOrigin, NewOrigin: newOrigin}, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, 3, result.FilesScanned)
	assert.Equal(t, []string{"index.html", "js/main.js", "notes/todo.txt"}, result.FilesChanged)
	assert.Equal(t, 4, result.Replacements)

	assert.Contains(t, read(t, root, "index.html"), newOrigin)
	assert.NotContains(t, read(t, root, "js/main.js"), oldOrigin)
	assert.Contains(t, read(t, root, "image.png"), oldOrigin)
}

func TestRunDryRun(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"index.html": oldOrigin,
	})

	result, err := Run(Options{Root: root, OldOrigin: oldOrigin, NewOrigin: newOrigin, DryRun: true}, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Replacements)
	assert.Equal(t, []string{"index.html"}, result.FilesChanged)
	assert.Contains(t, read(t, root, "index.html"), oldOrigin, "dry run must not write")
}

func TestRunExtensionFilter(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"a.html": oldOrigin,
		"b.js":   oldOrigin,
	})

	result, err := Run(Options{Root: root, OldOrigin: oldOrigin, NewOrigin: newOrigin, Extensions: []string{".js"}}, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, []string{"b.js"}, result.FilesChanged)
	assert.Contains(t, read(t, root, "a.html"), oldOrigin)
	assert.NotContains(t, read(t, root, "b.js"), oldOrigin)
}

func TestRunRejectsBadOrigins(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	tests := []struct {
		name     string
		old, new string
	}{
		{"trailingSlash", oldOrigin + "/", newOrigin},
		{"withPath", oldOrigin, newOrigin + "/docs"},
		{"notAURL", "old.example.test", newOrigin},
		{"identical", oldOrigin, oldOrigin},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Run(Options{Root: root, OldOrigin: tt.old, NewOrigin: tt.new}, zerolog.Nop())
			assert.Error(t, err)
		})
	}
}
