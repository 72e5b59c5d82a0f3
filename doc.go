// Package semquery provides a layer for representing, constructing, and lazily
// executing structured graph queries over an RDF triple model, and for exposing
// query results as cache-aware, content-negotiated linked-data resources.
//
// # Queries Are Data
//
// SemQuery stores queries as graphs, not strings. A SPARQL-style query is a set
// of triples in an rdf.Graph using the SPIN vocabulary, and the querybuilder
// package edits that graph in place through a narrow, typed API:
//
//	g := rdf.NewGraph()
//	b, err := querybuilder.FromQueryString("SELECT ?x WHERE { ?x a <http://example.org/Thing> }", g)
//	if err != nil { ... }
//	b.Limit(10).Offset(5).OrderBy("x", true)
//	q, err := b.Compile()
//
// Because the builder holds a non-owning handle into the graph, the query can be
// inspected, composed, and rewritten by any graph-aware tooling using the same
// primitives as ordinary data.
//
// # Lazy Query-Result Resources
//
// The linkeddata package binds a query to a data source (a local rdf.Graph or a
// named remote SPARQL endpoint), defers execution until the result is first
// needed, memoizes it for the life of the resource, and derives a strong entity
// tag from the result graph:
//
//	res, err := linkeddata.NewGraphResource(loader, dataGraph, q)
//	if err != nil { ... }
//	model, err := res.Model(ctx)
//	tag, ok, err := res.EntityTag(ctx)
//
// # Layers
//
//   - rdf: in-memory triple store (terms, graphs, lists, CBD, content hashing)
//   - sparql: minimal query compiler (Parse, basic graph patterns)
//   - spin: typed query-graph views and graph<->query translation
//   - querybuilder: the mutable SELECT builder
//   - datamanager: query execution against local graphs and remote endpoints
//   - linkeddata: lazy, memoizing result resources with entity tags
//
// Error handling follows the classified-error scheme in the errors package:
// invalid arguments surface synchronously at the violating call, parse and
// evaluation failures propagate to the caller unwrapped in meaning, and nothing
// is logged-and-swallowed inside the core.
package semquery
