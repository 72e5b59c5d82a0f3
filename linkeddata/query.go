package linkeddata

import (
	"context"
	"fmt"
	"net/http"

	"github.com/c360/semquery/datamanager"
	"github.com/c360/semquery/errors"
	"github.com/c360/semquery/rdf"
	"github.com/c360/semquery/sparql"
)

// QueryResource is a linked-data resource over an in-process graph accepting
// any query form, with a negotiated response media type. Tabular results are
// delivered as a result-set graph by the loader.
type QueryResource struct {
	loader    datamanager.Loader
	source    *rdf.Graph
	query     *sparql.Query
	mediaType string
	lazy      lazyModel
}

var _ ModelResource = (*QueryResource)(nil)

// NewQueryResource creates a resource over source executing query, serialized
// as requestedType. An empty requestedType selects the default media type;
// an unsupported one is invalid.
func NewQueryResource(loader datamanager.Loader, source *rdf.Graph, query *sparql.Query, requestedType string) (*QueryResource, error) {
	if loader == nil {
		return nil, errors.WrapInvalid(errors.ErrMissingConfig, "QueryResource", "NewQueryResource",
			"loader cannot be nil")
	}
	if source == nil {
		return nil, errors.WrapInvalid(errors.ErrNilGraph, "QueryResource", "NewQueryResource",
			"source graph cannot be nil")
	}
	if query == nil {
		return nil, errors.WrapInvalid(errors.ErrNilQuery, "QueryResource", "NewQueryResource",
			"query cannot be nil")
	}
	mediaType, ok := MatchMediaType(requestedType)
	if !ok {
		return nil, errors.WrapInvalid(errors.ErrInvalidQuery, "QueryResource", "NewQueryResource",
			fmt.Sprintf("unsupported media type %q", requestedType))
	}
	return &QueryResource{
		loader:    loader,
		source:    source,
		query:     query,
		mediaType: mediaType,
	}, nil
}

// Query returns the compiled query.
func (r *QueryResource) Query() *sparql.Query { return r.query }

// MediaType returns the negotiated response media type.
func (r *QueryResource) MediaType() string { return r.mediaType }

// Model executes the query on first call, memoizing the result.
func (r *QueryResource) Model(ctx context.Context) (*rdf.Graph, error) {
	return r.lazy.get(ctx, func(ctx context.Context) (*rdf.Graph, error) {
		return r.loader.LoadGraph(ctx, r.source, r.query)
	})
}

// EntityTag returns a strong validator over the result graph content.
func (r *QueryResource) EntityTag(ctx context.Context) (string, bool, error) {
	model, err := r.Model(ctx)
	if err != nil {
		return "", false, err
	}
	return entityTag(model), true, nil
}

// Response builds the response envelope.
func (r *QueryResource) Response(ctx context.Context) (*Response, error) {
	model, err := r.Model(ctx)
	if err != nil {
		return nil, err
	}
	return &Response{Status: http.StatusOK, MediaType: r.mediaType, Model: model}, nil
}
