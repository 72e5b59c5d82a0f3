// Package datamanager provides the query execution capability: evaluating
// compiled queries against in-process graphs and remote SPARQL-protocol
// endpoints. Every query form yields a graph-shaped result; tabular SELECT
// and boolean ASK results are normalized into a result-set graph.
package datamanager

import (
	"context"

	"github.com/c360/semquery/rdf"
	"github.com/c360/semquery/sparql"
)

// Loader executes compiled queries against a data source.
type Loader interface {
	// LoadGraph evaluates q against an in-process source graph.
	LoadGraph(ctx context.Context, source *rdf.Graph, q *sparql.Query) (*rdf.Graph, error)

	// LoadEndpoint evaluates q against a remote SPARQL-protocol endpoint.
	LoadEndpoint(ctx context.Context, endpointURI string, q *sparql.Query) (*rdf.Graph, error)
}
