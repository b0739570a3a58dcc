package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testClient(t *testing.T) (*Client, *int, *httptest.Server) {
	t.Helper()

	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("<html>page</html>"))
	}))
	t.Cleanup(srv.Close)

	cfg := Config{
		CacheDir:        t.TempDir(),
		ThrottleSeconds: 0,
		TimeoutSeconds:  5,
		UserAgent:       "test-agent",
	}
	return NewClient(cfg, zap.NewNop()), &hits, srv
}

func TestGetCaches(t *testing.T) {
	c, hits, srv := testClient(t)
	ctx := context.Background()

	data, err := c.Get(ctx, srv.URL+"/page")
	require.NoError(t, err)
	assert.Equal(t, "<html>page</html>", string(data))
	assert.Equal(t, 1, *hits)

	// second read comes from disk
	data, err = c.Get(ctx, srv.URL+"/page")
	require.NoError(t, err)
	assert.Equal(t, "<html>page</html>", string(data))
	assert.Equal(t, 1, *hits)
}

func TestGetFreshBypassesCache(t *testing.T) {
	c, hits, srv := testClient(t)
	ctx := context.Background()

	_, err := c.Get(ctx, srv.URL+"/page")
	require.NoError(t, err)
	_, err = c.GetFresh(ctx, srv.URL+"/page")
	require.NoError(t, err)
	assert.Equal(t, 2, *hits)

	// the fresh fetch refreshed the cached copy
	_, err = c.Get(ctx, srv.URL+"/page")
	require.NoError(t, err)
	assert.Equal(t, 2, *hits)
}

func TestUserAgent(t *testing.T) {
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	c := NewClient(Config{CacheDir: t.TempDir(), UserAgent: "test-agent", TimeoutSeconds: 5}, zap.NewNop())
	_, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "test-agent", seen)
}

func TestStatusError(t *testing.T) {
	c, _, srv := testClient(t)

	_, err := c.Get(context.Background(), srv.URL+"/missing")
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
}

func TestCachePathFlattensURL(t *testing.T) {
	c := NewClient(Config{CacheDir: "/cache"}, zap.NewNop())
	path := c.cachePath("https://vpuniverse.com/files/file/1-x/")
	assert.Equal(t, "/cache/https.vpuniverse.com.files.file.1-x..html", path)
}

func TestGetString(t *testing.T) {
	c, _, srv := testClient(t)
	s, err := c.GetString(context.Background(), srv.URL+"/page")
	require.NoError(t, err)
	assert.Equal(t, "<html>page</html>", s)
}
