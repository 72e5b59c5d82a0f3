package spin

import (
	"github.com/c360/semquery/errors"
	"github.com/c360/semquery/rdf"
	"github.com/c360/semquery/sparql"
)

// FromCompiled translates a compiled query into its graph representation
// inside g and returns the typed view over the new root node. When baseURI is
// non-empty the root becomes a named resource with that IRI; otherwise the
// query is anonymous (a blank root node).
func FromCompiled(q *sparql.Query, g *rdf.Graph, baseURI string) (Query, error) {
	if q == nil {
		return nil, errors.WrapInvalid(errors.ErrNilQuery, "spin", "FromCompiled", "query check")
	}
	if g == nil {
		return nil, errors.WrapInvalid(errors.ErrNilGraph, "spin", "FromCompiled", "graph check")
	}

	var root rdf.Term
	if baseURI != "" {
		root = rdf.NewIRI(baseURI)
	} else {
		root = g.NewResource()
	}

	switch q.Form {
	case sparql.FormSelect:
		translateSelect(q, g, root)
	case sparql.FormConstruct:
		translateConstruct(q, g, root)
	case sparql.FormDescribe:
		translateDescribe(q, g, root)
	case sparql.FormAsk:
		g.Add(root, rdfType, spAsk)
		g.Add(root, spWhere, writePatterns(g, q.Where))
	default:
		return nil, errors.WrapInvalid(errors.ErrInvalidQuery, "spin", "FromCompiled",
			"unknown query form")
	}

	translateModifiers(q, g, root)
	return AsQuery(g, root)
}

// FromQueryString parses queryString and translates the result into g.
// Parse failures propagate unchanged.
func FromQueryString(queryString string, g *rdf.Graph) (Query, error) {
	q, err := sparql.Parse(queryString)
	if err != nil {
		return nil, err
	}
	return FromCompiled(q, g, "")
}

func translateSelect(q *sparql.Query, g *rdf.Graph, root rdf.Term) {
	g.Add(root, rdfType, spSelect)

	// SELECT * carries no result-variable list
	if !q.Star && len(q.Variables) > 0 {
		vars := make([]rdf.Term, len(q.Variables))
		for i, name := range q.Variables {
			vars[i] = CreateVariable(g, name).Node()
		}
		g.Add(root, spResultVars, g.NewList(vars...))
	}

	if q.Distinct {
		g.Add(root, spDistinct, rdf.BooleanLiteral(true))
	}
	if q.Reduced {
		g.Add(root, spReduced, rdf.BooleanLiteral(true))
	}

	g.Add(root, spWhere, writePatterns(g, q.Where))
}

func translateConstruct(q *sparql.Query, g *rdf.Graph, root rdf.Term) {
	g.Add(root, rdfType, spConstruct)
	g.Add(root, spTemplates, writePatterns(g, q.Template))
	g.Add(root, spWhere, writePatterns(g, q.Where))
}

func translateDescribe(q *sparql.Query, g *rdf.Graph, root rdf.Term) {
	g.Add(root, rdfType, spDescribe)

	var nodes []rdf.Term
	for _, iri := range q.DescribeNodes {
		nodes = append(nodes, iri)
	}
	for _, name := range q.DescribeVars {
		nodes = append(nodes, CreateVariable(g, name).Node())
	}
	g.Add(root, spResultNodes, g.NewList(nodes...))

	if len(q.Where) > 0 {
		g.Add(root, spWhere, writePatterns(g, q.Where))
	}
}

func translateModifiers(q *sparql.Query, g *rdf.Graph, root rdf.Term) {
	if q.Limit != nil {
		g.Add(root, spLimit, rdf.IntegerLiteral(*q.Limit))
	}
	if q.Offset != nil {
		g.Add(root, spOffset, rdf.IntegerLiteral(*q.Offset))
	}
	if len(q.OrderBy) > 0 {
		terms := make([]rdf.Term, len(q.OrderBy))
		for i, oc := range q.OrderBy {
			terms[i] = newOrderingTerm(g, CreateVariable(g, oc.Variable), oc.Descending)
		}
		g.Add(root, spOrderBy, g.NewList(terms...))
	}
}

// newOrderingTerm creates one ORDER BY condition node: a resource with an
// sp:expression edge to the variable, typed sp:Asc or sp:Desc.
func newOrderingTerm(g *rdf.Graph, v Variable, descending bool) rdf.Term {
	term := g.NewResource()
	g.Add(term, spExpression, v.Node())
	if descending {
		g.Add(term, rdfType, spDesc)
	} else {
		g.Add(term, rdfType, spAsc)
	}
	return term
}

// writePatterns encodes a basic graph pattern as an rdf list of
// sp:TriplePattern nodes.
func writePatterns(g *rdf.Graph, patterns []sparql.TriplePattern) rdf.Term {
	items := make([]rdf.Term, len(patterns))
	for i, p := range patterns {
		n := g.NewResource()
		g.Add(n, rdfType, spTriplePattern)
		g.Add(n, spSubject, patternTermNode(g, p.Subject))
		g.Add(n, spPredicate, patternTermNode(g, p.Predicate))
		g.Add(n, spObject, patternTermNode(g, p.Object))
		items[i] = n
	}
	return g.NewList(items...)
}

func patternTermNode(g *rdf.Graph, pt sparql.PatternTerm) rdf.Term {
	if pt.IsVar() {
		return CreateVariable(g, pt.Var).Node()
	}
	return pt.Term
}
