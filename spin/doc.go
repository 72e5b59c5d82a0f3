// Package spin stores queries as graphs and reads them back out again.
//
// A query is a resource inside an rdf.Graph, typed sp:Select, sp:Construct,
// sp:Describe, or sp:Ask, with its clauses encoded as ordinary triples using
// the SPIN vocabulary: projected variables hang off sp:resultVariables as an
// rdf list, LIMIT is an sp:limit integer literal, ORDER BY is an sp:orderBy
// list of ordering terms, and so on.
//
// The typed views (Select, Construct, Describe, Ask) are non-owning handles:
// they hold the graph plus the query's root node, every accessor reads through
// to the graph, and mutation through one holder is visible to every other
// holder of the same node. AsQuery and AsSelect convert an untyped node into a
// typed view, failing explicitly when the node's rdf:type does not match.
//
// FromCompiled translates a compiled sparql.Query into this representation;
// Compile reads the representation back into a compiled query.
package spin
