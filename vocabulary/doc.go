// Package vocabulary provides IRI constants for the vocabularies SemQuery
// depends on: the RDF core vocabulary, XSD datatypes, the SPIN SPARQL syntax
// vocabulary (sp:) used to store queries as graphs, and the SPARQL result-set
// vocabulary (rs:) used to normalize SELECT/ASK results into graph form.
//
// Queries are ordinary graph data. A SELECT query is a resource typed sp:Select
// whose clauses hang off well-known predicates (sp:resultVariables, sp:limit,
// sp:offset, sp:orderBy, ...), so every IRI here doubles as a schema for the
// query-graph representation edited by the querybuilder package.
package vocabulary
