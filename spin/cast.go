package spin

import (
	"github.com/c360/semquery/errors"
	"github.com/c360/semquery/rdf"
)

// AsQuery converts an untyped graph node into the matching typed query view
// by inspecting its rdf:type. Fails with a classified invalid error when the
// node is not typed as any query form.
func AsQuery(g *rdf.Graph, term rdf.Term) (Query, error) {
	if g == nil {
		return nil, errors.WrapInvalid(errors.ErrNilGraph, "spin", "AsQuery", "graph check")
	}
	if term == nil {
		return nil, errors.WrapInvalid(errors.ErrNodeNotFound, "spin", "AsQuery", "node check")
	}

	n := node{graph: g, term: term}
	switch {
	case g.Has(rdf.Triple{Subject: term, Predicate: rdfType, Object: spSelect}):
		return &Select{n}, nil
	case g.Has(rdf.Triple{Subject: term, Predicate: rdfType, Object: spConstruct}):
		return &Construct{n}, nil
	case g.Has(rdf.Triple{Subject: term, Predicate: rdfType, Object: spDescribe}):
		return &Describe{n}, nil
	case g.Has(rdf.Triple{Subject: term, Predicate: rdfType, Object: spAsk}):
		return &Ask{n}, nil
	default:
		return nil, errors.WrapInvalid(errors.ErrNotAQuery, "spin", "AsQuery",
			"node has no query rdf:type")
	}
}

// AsSelect converts an untyped graph node into a Select view, failing when
// the node is not an sp:Select query. The failure is explicit; there is no
// silently wrong-typed view.
func AsSelect(g *rdf.Graph, term rdf.Term) (*Select, error) {
	q, err := AsQuery(g, term)
	if err != nil {
		return nil, err
	}
	sel, ok := q.(*Select)
	if !ok {
		return nil, errors.WrapInvalid(errors.ErrWrongForm, "spin", "AsSelect",
			"node is a "+q.Form().String()+" query, not a SELECT")
	}
	return sel, nil
}

// AsConstruct converts an untyped graph node into a Construct view.
func AsConstruct(g *rdf.Graph, term rdf.Term) (*Construct, error) {
	q, err := AsQuery(g, term)
	if err != nil {
		return nil, err
	}
	c, ok := q.(*Construct)
	if !ok {
		return nil, errors.WrapInvalid(errors.ErrWrongForm, "spin", "AsConstruct",
			"node is a "+q.Form().String()+" query, not a CONSTRUCT")
	}
	return c, nil
}

// AsDescribe converts an untyped graph node into a Describe view.
func AsDescribe(g *rdf.Graph, term rdf.Term) (*Describe, error) {
	q, err := AsQuery(g, term)
	if err != nil {
		return nil, err
	}
	d, ok := q.(*Describe)
	if !ok {
		return nil, errors.WrapInvalid(errors.ErrWrongForm, "spin", "AsDescribe",
			"node is a "+q.Form().String()+" query, not a DESCRIBE")
	}
	return d, nil
}

// AsAsk converts an untyped graph node into an Ask view.
func AsAsk(g *rdf.Graph, term rdf.Term) (*Ask, error) {
	q, err := AsQuery(g, term)
	if err != nil {
		return nil, err
	}
	a, ok := q.(*Ask)
	if !ok {
		return nil, errors.WrapInvalid(errors.ErrWrongForm, "spin", "AsAsk",
			"node is a "+q.Form().String()+" query, not an ASK")
	}
	return a, nil
}
