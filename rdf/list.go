package rdf

import (
	"github.com/c360/semquery/errors"
	"github.com/c360/semquery/vocabulary"
)

var (
	rdfFirst = NewIRI(vocabulary.RDFFirst)
	rdfRest  = NewIRI(vocabulary.RDFRest)
	rdfNil   = NewIRI(vocabulary.RDFNil)
)

// NewList builds an rdf:first/rdf:rest collection holding items in order and
// returns its head node. An empty list is rdf:nil.
func (g *Graph) NewList(items ...Term) Term {
	if len(items) == 0 {
		return rdfNil
	}

	head := Term(rdfNil)
	// Build back to front so each cell links to the already-built tail.
	for i := len(items) - 1; i >= 0; i-- {
		cell := g.NewResource()
		g.Add(cell, rdfFirst, items[i])
		g.Add(cell, rdfRest, head)
		head = cell
	}
	return head
}

// List reads the collection starting at head back into an ordered slice.
// Fails on missing rdf:first/rdf:rest edges or cyclic structures.
func (g *Graph) List(head Term) ([]Term, error) {
	var items []Term
	seen := map[Term]bool{}

	for head != Term(rdfNil) {
		if seen[head] {
			return nil, errors.WrapInvalid(errors.ErrMalformedList, "Graph", "List",
				"cycle detected in rdf list")
		}
		seen[head] = true

		first, ok := g.Object(head, rdfFirst)
		if !ok {
			return nil, errors.WrapInvalid(errors.ErrMalformedList, "Graph", "List",
				"list cell has no rdf:first")
		}
		rest, ok := g.Object(head, rdfRest)
		if !ok {
			return nil, errors.WrapInvalid(errors.ErrMalformedList, "Graph", "List",
				"list cell has no rdf:rest")
		}

		items = append(items, first)
		head = rest
	}
	return items, nil
}

// RemoveList deletes the cons cells of the collection starting at head.
// The listed items themselves are left in the graph.
func (g *Graph) RemoveList(head Term) {
	seen := map[Term]bool{}
	for head != Term(rdfNil) && !seen[head] {
		seen[head] = true
		rest, ok := g.Object(head, rdfRest)
		g.RemoveAll(head, rdfFirst)
		g.RemoveAll(head, rdfRest)
		if !ok {
			return
		}
		head = rest
	}
}
