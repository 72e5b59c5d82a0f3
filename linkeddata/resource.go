// Package linkeddata exposes query results as lazy, cache-aware linked-data
// resources. A resource pairs a compiled query with a data source and
// executes it at most once per instance: the first successful Model call
// memoizes the result graph, later calls return it without re-executing.
// Failed executions are not memoized; a later call runs the query again.
package linkeddata

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/c360/semquery/rdf"
	"github.com/c360/semquery/sparql"
)

// ModelResource is a linked-data resource backed by a query.
type ModelResource interface {
	// Model executes the query on first call and returns the memoized
	// result graph afterwards.
	Model(ctx context.Context) (*rdf.Graph, error)

	// EntityTag returns a strong validator for the result. ok is false
	// when the resource has no meaningful tag, which is not a failure.
	EntityTag(ctx context.Context) (tag string, ok bool, err error)

	// Response builds the full response envelope for the resource.
	Response(ctx context.Context) (*Response, error)

	// Query returns the compiled query the resource executes.
	Query() *sparql.Query

	// MediaType returns the media type responses serialize to.
	MediaType() string
}

// Response is the envelope a resource renders into.
type Response struct {
	Status    int
	MediaType string
	Model     *rdf.Graph
}

// Write serializes the response model in the response media type.
func (r *Response) Write(w io.Writer) error {
	return writeGraph(w, r.Model, r.MediaType)
}

// lazyModel memoizes the first successful execution of load. The lock is
// held across execution so concurrent first calls run the query only once.
type lazyModel struct {
	mu    sync.Mutex
	model *rdf.Graph
}

func (l *lazyModel) get(ctx context.Context, load func(context.Context) (*rdf.Graph, error)) (*rdf.Graph, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.model != nil {
		return l.model, nil
	}
	g, err := load(ctx)
	if err != nil {
		return nil, err
	}
	l.model = g
	return g, nil
}

// entityTag renders a graph fingerprint as a hex validator string.
func entityTag(g *rdf.Graph) string {
	return fmt.Sprintf("%x", g.Hash())
}
