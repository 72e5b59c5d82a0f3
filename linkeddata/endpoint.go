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

// EndpointResource is a linked-data resource backed by a remote SPARQL
// endpoint. Remote results have no meaningful local fingerprint, so the
// resource carries no entity tag.
type EndpointResource struct {
	loader      datamanager.Loader
	endpointURI string
	query       *sparql.Query
	mediaType   string
	lazy        lazyModel
}

var _ ModelResource = (*EndpointResource)(nil)

// NewEndpointResource creates a resource executing query against the named
// endpoint, serialized as requestedType (empty selects the default).
func NewEndpointResource(loader datamanager.Loader, endpointURI string, query *sparql.Query, requestedType string) (*EndpointResource, error) {
	if loader == nil {
		return nil, errors.WrapInvalid(errors.ErrMissingConfig, "EndpointResource", "NewEndpointResource",
			"loader cannot be nil")
	}
	if endpointURI == "" {
		return nil, errors.WrapInvalid(errors.ErrMissingConfig, "EndpointResource", "NewEndpointResource",
			"endpoint URI cannot be empty")
	}
	if query == nil {
		return nil, errors.WrapInvalid(errors.ErrNilQuery, "EndpointResource", "NewEndpointResource",
			"query cannot be nil")
	}
	mediaType, ok := MatchMediaType(requestedType)
	if !ok {
		return nil, errors.WrapInvalid(errors.ErrInvalidQuery, "EndpointResource", "NewEndpointResource",
			fmt.Sprintf("unsupported media type %q", requestedType))
	}
	return &EndpointResource{
		loader:      loader,
		endpointURI: endpointURI,
		query:       query,
		mediaType:   mediaType,
	}, nil
}

// Query returns the compiled query.
func (r *EndpointResource) Query() *sparql.Query { return r.query }

// Endpoint returns the endpoint URI the resource queries.
func (r *EndpointResource) Endpoint() string { return r.endpointURI }

// MediaType returns the negotiated response media type.
func (r *EndpointResource) MediaType() string { return r.mediaType }

// Model executes the query against the endpoint on first call, memoizing
// the result. Failures are not memoized; a later call queries again.
func (r *EndpointResource) Model(ctx context.Context) (*rdf.Graph, error) {
	return r.lazy.get(ctx, func(ctx context.Context) (*rdf.Graph, error) {
		return r.loader.LoadEndpoint(ctx, r.endpointURI, r.query)
	})
}

// EntityTag reports that no tag is available. This is not a failure.
func (r *EndpointResource) EntityTag(ctx context.Context) (string, bool, error) {
	return "", false, nil
}

// Response builds the response envelope.
func (r *EndpointResource) Response(ctx context.Context) (*Response, error) {
	model, err := r.Model(ctx)
	if err != nil {
		return nil, err
	}
	return &Response{Status: http.StatusOK, MediaType: r.mediaType, Model: model}, nil
}
