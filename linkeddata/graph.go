package linkeddata

import (
	"context"
	"net/http"

	"github.com/c360/semquery/datamanager"
	"github.com/c360/semquery/errors"
	"github.com/c360/semquery/rdf"
	"github.com/c360/semquery/sparql"
)

// GraphResource is a linked-data resource over an in-process graph whose
// query must produce a graph directly: only CONSTRUCT and DESCRIBE are
// accepted. SELECT and ASK queries are rejected at construction.
type GraphResource struct {
	loader    datamanager.Loader
	source    *rdf.Graph
	query     *sparql.Query
	mediaType string
	lazy      lazyModel
}

var _ ModelResource = (*GraphResource)(nil)

// NewGraphResource creates a resource over source executing query.
func NewGraphResource(loader datamanager.Loader, source *rdf.Graph, query *sparql.Query) (*GraphResource, error) {
	if loader == nil {
		return nil, errors.WrapInvalid(errors.ErrMissingConfig, "GraphResource", "NewGraphResource",
			"loader cannot be nil")
	}
	if source == nil {
		return nil, errors.WrapInvalid(errors.ErrNilGraph, "GraphResource", "NewGraphResource",
			"source graph cannot be nil")
	}
	if query == nil {
		return nil, errors.WrapInvalid(errors.ErrNilQuery, "GraphResource", "NewGraphResource",
			"query cannot be nil")
	}
	if !query.IsConstruct() && !query.IsDescribe() {
		return nil, errors.WrapInvalid(errors.ErrWrongForm, "GraphResource", "NewGraphResource",
			"query is a "+query.Form.String()+", need CONSTRUCT or DESCRIBE")
	}
	return &GraphResource{
		loader:    loader,
		source:    source,
		query:     query,
		mediaType: DefaultMediaType,
	}, nil
}

// DescribeResource creates a GraphResource describing a single node.
func DescribeResource(loader datamanager.Loader, source *rdf.Graph, uri string) (*GraphResource, error) {
	return NewGraphResource(loader, source, sparql.Describe(uri))
}

// Query returns the compiled query.
func (r *GraphResource) Query() *sparql.Query { return r.query }

// MediaType returns the response media type.
func (r *GraphResource) MediaType() string { return r.mediaType }

// Model executes the query on first call, memoizing the result.
func (r *GraphResource) Model(ctx context.Context) (*rdf.Graph, error) {
	return r.lazy.get(ctx, func(ctx context.Context) (*rdf.Graph, error) {
		return r.loader.LoadGraph(ctx, r.source, r.query)
	})
}

// EntityTag returns a strong validator over the result graph content.
func (r *GraphResource) EntityTag(ctx context.Context) (string, bool, error) {
	model, err := r.Model(ctx)
	if err != nil {
		return "", false, err
	}
	return entityTag(model), true, nil
}

// Response builds the response envelope.
func (r *GraphResource) Response(ctx context.Context) (*Response, error) {
	model, err := r.Model(ctx)
	if err != nil {
		return nil, err
	}
	return &Response{Status: http.StatusOK, MediaType: r.mediaType, Model: model}, nil
}
