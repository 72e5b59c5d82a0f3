package spin

import (
	"github.com/c360/semquery/errors"
	"github.com/c360/semquery/rdf"
)

// Variable is a typed view over an sp:Variable node.
type Variable struct {
	node
}

// Name returns the variable's name, ok=false when the node carries no
// sp:varName edge.
func (v Variable) Name() (string, bool) {
	obj, ok := v.graph.Object(v.term, spVarName)
	if !ok {
		return "", false
	}
	lit, ok := obj.(rdf.Literal)
	if !ok {
		return "", false
	}
	return lit.Lexical, true
}

// CreateVariable creates a fresh sp:Variable node named name in the graph.
// An existing variable node with the same name is reused so that all
// references to ?name within one query graph share a node.
func CreateVariable(g *rdf.Graph, name string) Variable {
	for _, subject := range g.Subjects(spVarName, rdf.StringLiteral(name)) {
		if g.Has(rdf.Triple{Subject: subject, Predicate: rdfType, Object: spVariable}) {
			return Variable{node{graph: g, term: subject}}
		}
	}

	n := g.NewResource()
	g.Add(n, rdfType, spVariable)
	g.Add(n, spVarName, rdf.StringLiteral(name))
	return Variable{node{graph: g, term: n}}
}

// AsVariable converts an untyped node into a Variable view, failing when the
// node is not typed sp:Variable.
func AsVariable(g *rdf.Graph, term rdf.Term) (Variable, error) {
	if g == nil {
		return Variable{}, errors.WrapInvalid(errors.ErrNilGraph, "spin", "AsVariable", "graph check")
	}
	if term == nil {
		return Variable{}, errors.WrapInvalid(errors.ErrNilVariable, "spin", "AsVariable", "node check")
	}
	if !g.Has(rdf.Triple{Subject: term, Predicate: rdfType, Object: spVariable}) {
		return Variable{}, errors.WrapInvalid(errors.ErrNotAQuery, "spin", "AsVariable",
			"node is not an sp:Variable")
	}
	return Variable{node{graph: g, term: term}}, nil
}

// isVariableNode reports whether term is typed sp:Variable in g.
func isVariableNode(g *rdf.Graph, term rdf.Term) bool {
	return g.Has(rdf.Triple{Subject: term, Predicate: rdfType, Object: spVariable})
}
