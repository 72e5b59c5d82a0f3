// Package rdf provides a compact in-memory triple store: RDF terms, graphs,
// collections (rdf:first/rdf:rest lists), concise bounded descriptions, and an
// order-independent content hash used to derive entity tags.
//
// Graphs are safe for concurrent reads; writers take the graph lock. Nodes are
// plain Term values, so holding a node is holding a non-owning handle into the
// graph that contains its triples - mutation through one holder is visible to
// every other holder of the same node.
package rdf
