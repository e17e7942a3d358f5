package searchcheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LLM-Toolkit/llm-toolkit.github.io-sub001/internal/config"
)

func searchConfig(endpoint string) config.SearchConfig {
	return config.SearchConfig{
		Endpoint: endpoint,
		Query:    "hello world",
		Marker:   "search-results",
		Timeout:  5 * time.Second,
	}
}

func TestCheckSuccess(t *testing.T) {
	t.Parallel()

	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(`<html><body><div id="search-results"></div></body></html>`))
	}))
	defer srv.Close()

	result, err := Check(context.Background(), searchConfig(srv.URL+"/search"), "", zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "hello world", gotQuery)
	assert.Equal(t, http.StatusOK, result.Status)
}

func TestCheckDefaultsEndpointToOrigin(t *testing.T) {
	t.Parallel()

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte("search-results"))
	}))
	defer srv.Close()

	cfg := searchConfig("")
	_, err := Check(context.Background(), cfg, srv.URL, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "/search", gotPath)
}

func TestCheckNonOKStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := Check(context.Background(), searchConfig(srv.URL), "", zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestCheckMissingMarker(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>something else</body></html>"))
	}))
	defer srv.Close()

	_, err := Check(context.Background(), searchConfig(srv.URL), "", zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marker")
}

func TestCheckTimeout(t *testing.T) {
	t.Parallel()

	blocked := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	defer srv.Close()
	defer close(blocked)

	cfg := searchConfig(srv.URL)
	cfg.Timeout = 50 * time.Millisecond
	_, err := Check(context.Background(), cfg, "", zerolog.Nop())
	assert.Error(t, err)
}
