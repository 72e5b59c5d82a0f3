package datamanager

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/semquery/errors"
	"github.com/c360/semquery/sparql"
)

const sampleNTriples = `<http://example.org/s> <http://example.org/p> "value" .
<http://example.org/s> <http://example.org/q> <http://example.org/o> .
`

func newEndpointManager(t *testing.T, cfg Config, client *http.Client) *Manager {
	t.Helper()
	cfg.RetryInitialDelay = time.Millisecond
	m, err := NewManager(Deps{Config: cfg, Client: client})
	require.NoError(t, err)
	return m
}

func TestLoadEndpointSuccess(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.NotEmpty(t, r.URL.Query().Get("query"))
		assert.Equal(t, "application/n-triples", r.Header.Get("Accept"))
		w.Write([]byte(sampleNTriples))
	}))
	defer srv.Close()

	m := newEndpointManager(t, Config{}, srv.Client())
	out, err := m.LoadEndpoint(context.Background(), srv.URL, sparql.Describe("http://example.org/s"))
	require.NoError(t, err)
	assert.Equal(t, 2, out.Len())
	assert.Equal(t, int32(1), requests.Load())
}

func TestLoadEndpointRetriesServerError(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(sampleNTriples))
	}))
	defer srv.Close()

	m := newEndpointManager(t, Config{MaxRetries: 3}, srv.Client())
	out, err := m.LoadEndpoint(context.Background(), srv.URL, sparql.Describe("http://example.org/s"))
	require.NoError(t, err)
	assert.Equal(t, 2, out.Len())
	assert.Equal(t, int32(2), requests.Load())
}

func TestLoadEndpointClientErrorFailsFast(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		http.Error(w, "bad query", http.StatusBadRequest)
	}))
	defer srv.Close()

	m := newEndpointManager(t, Config{MaxRetries: 3}, srv.Client())
	_, err := m.LoadEndpoint(context.Background(), srv.URL, sparql.Describe("http://example.org/s"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrEndpointStatus)
	assert.ErrorIs(t, err, errors.ErrQueryEvaluation)
	assert.Equal(t, int32(1), requests.Load())
}

func TestLoadEndpointUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	m := newEndpointManager(t, Config{MaxRetries: 2}, nil)
	_, err := m.LoadEndpoint(context.Background(), srv.URL, sparql.Describe("http://example.org/s"))
	require.Error(t, err)
	assert.True(t, errors.IsTransient(err))
	assert.ErrorIs(t, err, errors.ErrEndpointUnreachable)
}

func TestLoadEndpointInvalidURI(t *testing.T) {
	m := newEndpointManager(t, Config{}, nil)

	_, err := m.LoadEndpoint(context.Background(), "not a url", sparql.Describe("http://example.org/s"))
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))

	_, err = m.LoadEndpoint(context.Background(), "ftp://example.org/sparql", sparql.Describe("http://example.org/s"))
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestLoadEndpointNilQuery(t *testing.T) {
	m := newEndpointManager(t, Config{}, nil)
	_, err := m.LoadEndpoint(context.Background(), "http://example.org/sparql", nil)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestLoadEndpointCache(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte(sampleNTriples))
	}))
	defer srv.Close()

	m := newEndpointManager(t, Config{CacheTTL: time.Minute}, srv.Client())
	q := sparql.Describe("http://example.org/s")

	first, err := m.LoadEndpoint(context.Background(), srv.URL, q)
	require.NoError(t, err)
	second, err := m.LoadEndpoint(context.Background(), srv.URL, q)
	require.NoError(t, err)

	assert.Equal(t, int32(1), requests.Load())
	assert.Equal(t, first.Hash(), second.Hash())

	// Different query text misses the cache.
	_, err = m.LoadEndpoint(context.Background(), srv.URL, sparql.Describe("http://example.org/other"))
	require.NoError(t, err)
	assert.Equal(t, int32(2), requests.Load())

	m.ClearCache()
	_, err = m.LoadEndpoint(context.Background(), srv.URL, q)
	require.NoError(t, err)
	assert.Equal(t, int32(3), requests.Load())
}
