package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistryServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/"+ProfileListFile, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"acme-controller": { "path": "acme-controller/profile.json" },
			"old-controller": { "path": "old-controller/profile.json", "deprecated": true }
		}`))
	})
	mux.HandleFunc("/acme-controller/profile.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"profileId": "acme-controller", "layouts": {}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestProfileList(t *testing.T) {
	t.Parallel()

	srv := newRegistryServer(t)
	c := NewClient(srv.URL, 5*time.Second)
	defer c.Close()

	list, err := c.ProfileList(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "acme-controller/profile.json", list["acme-controller"].Path)
	assert.True(t, list["old-controller"].Deprecated)
}

func TestProfileDocument(t *testing.T) {
	t.Parallel()

	srv := newRegistryServer(t)
	c := NewClient(srv.URL, 5*time.Second)
	defer c.Close()

	raw, err := c.ProfileDocument(context.Background(), "acme-controller/profile.json")
	require.NoError(t, err)
	assert.Contains(t, string(raw), "acme-controller")
}

func TestGet_NotFound(t *testing.T) {
	t.Parallel()

	srv := newRegistryServer(t)
	c := NewClient(srv.URL, 5*time.Second)
	defer c.Close()

	_, err := c.ProfileDocument(context.Background(), "missing/profile.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
