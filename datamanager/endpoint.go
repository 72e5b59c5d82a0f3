package datamanager

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/c360/semquery/errors"
	"github.com/c360/semquery/pkg/retry"
	"github.com/c360/semquery/rdf"
	"github.com/c360/semquery/sparql"
)

// LoadEndpoint evaluates q against a remote SPARQL-protocol endpoint via
// HTTP GET with a query parameter. Transient transport and server failures
// are retried with backoff; client errors fail fast. Results are cached by
// endpoint and query text when the cache is enabled.
func (m *Manager) LoadEndpoint(ctx context.Context, endpointURI string, q *sparql.Query) (*rdf.Graph, error) {
	start := time.Now()

	if q == nil {
		return nil, errors.WrapInvalid(errors.ErrNilQuery, "Manager", "LoadEndpoint",
			"query cannot be nil")
	}
	u, err := url.Parse(endpointURI)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, errors.WrapInvalid(errors.ErrInvalidQuery, "Manager", "LoadEndpoint",
			fmt.Sprintf("endpoint URI %q is not an http(s) URL", endpointURI))
	}

	queryText := q.String()
	cacheKey := endpointURI + "\x00" + queryText
	if m.results != nil {
		if cached, cerr := m.results.Get(cacheKey); cerr == nil {
			m.metrics.observeCache(true)
			m.observe("endpoint", q.Form.String(), start, nil)
			return cached, nil
		}
		m.metrics.observeCache(false)
	}

	result, err := retry.DoWithResult(ctx, m.retry, func() (*rdf.Graph, error) {
		return m.fetch(ctx, u, queryText)
	})
	if err != nil {
		wrapped := errors.WrapTransient(
			fmt.Errorf("%w: %w", errors.ErrQueryEvaluation, err),
			"Manager", "LoadEndpoint", "endpoint query")
		m.observe("endpoint", q.Form.String(), start, wrapped)
		return nil, wrapped
	}

	if m.results != nil {
		m.results.Set(cacheKey, result)
	}
	m.observe("endpoint", q.Form.String(), start, nil)
	return result, nil
}

func (m *Manager) fetch(ctx context.Context, endpoint *url.URL, queryText string) (*rdf.Graph, error) {
	u := *endpoint
	params := u.Query()
	params.Set("query", queryText)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, retry.NonRetryable(err)
	}
	req.Header.Set("Accept", m.cfg.Accept)
	req.Header.Set("User-Agent", m.cfg.UserAgent)

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrEndpointUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		statusErr := fmt.Errorf("%w: %s", errors.ErrEndpointStatus, resp.Status)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			// The endpoint rejected the query itself; retrying cannot help.
			return nil, retry.NonRetryable(statusErr)
		}
		return nil, statusErr
	}

	g, err := rdf.ParseNTriples(resp.Body)
	if err != nil {
		return nil, retry.NonRetryable(fmt.Errorf("parsing endpoint response: %w", err))
	}
	return g, nil
}

// ClearCache drops all cached endpoint results.
func (m *Manager) ClearCache() {
	if m.results != nil {
		m.results.Clear()
	}
}
