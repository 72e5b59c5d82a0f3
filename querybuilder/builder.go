// Package querybuilder provides a typed, mutable facade over a query-graph
// node. Mutators edit the underlying graph in place and keep it well-formed;
// accessors always read through to the graph, so the builder never holds a
// separate copy of query state.
//
// Mutators return the builder for chaining. Because Go has no throwing
// constructors, invalid chained input is recorded as the builder's first
// error, surfaced by Err and by Compile; construction errors are returned
// directly from the From* constructors.
package querybuilder

import (
	"fmt"

	"github.com/c360/semquery/errors"
	"github.com/c360/semquery/rdf"
	"github.com/c360/semquery/sparql"
	"github.com/c360/semquery/spin"
	"github.com/c360/semquery/vocabulary"
)

var (
	rdfType      = rdf.NewIRI(vocabulary.RDFType)
	spLimit      = rdf.NewIRI(vocabulary.SPLimit)
	spOffset     = rdf.NewIRI(vocabulary.SPOffset)
	spOrderBy    = rdf.NewIRI(vocabulary.SPOrderBy)
	spExpression = rdf.NewIRI(vocabulary.SPExpression)
	spAsc        = rdf.NewIRI(vocabulary.SPAsc)
	spDesc       = rdf.NewIRI(vocabulary.SPDesc)
)

// SelectBuilder wraps exactly one SELECT query-graph node and mutates its
// graph in place. The wrapped node is a non-owning handle: edits made through
// the builder are visible to every other holder of the same node.
type SelectBuilder struct {
	sel *spin.Select
	err error // first mutator error, sticky
}

// FromSelect wraps an existing SELECT view directly.
func FromSelect(sel *spin.Select) (*SelectBuilder, error) {
	if sel == nil {
		return nil, errors.WrapInvalid(errors.ErrNilQuery, "SelectBuilder", "FromSelect",
			"SELECT cannot be nil")
	}
	return &SelectBuilder{sel: sel}, nil
}

// FromResource wraps a generic query-graph node, failing when the node cannot
// be interpreted as a SELECT query.
func FromResource(g *rdf.Graph, node rdf.Term) (*SelectBuilder, error) {
	sel, err := spin.AsSelect(g, node)
	if err != nil {
		return nil, err
	}
	return FromSelect(sel)
}

// FromQuery translates a compiled query into its graph representation inside
// g and wraps the resulting node. Fails when the compiled query is nil or is
// not a SELECT. baseURI names the query's root node; empty means anonymous.
func FromQuery(q *sparql.Query, g *rdf.Graph, baseURI string) (*SelectBuilder, error) {
	if q == nil {
		return nil, errors.WrapInvalid(errors.ErrNilQuery, "SelectBuilder", "FromQuery",
			"query cannot be nil")
	}

	view, err := spin.FromCompiled(q, g, baseURI)
	if err != nil {
		return nil, err
	}
	sel, ok := view.(*spin.Select)
	if !ok {
		return nil, errors.WrapInvalid(errors.ErrWrongForm, "SelectBuilder", "FromQuery",
			"query is a "+view.Form().String()+", not a SELECT")
	}
	return FromSelect(sel)
}

// FromQueryString parses queryString into a compiled query, then follows the
// FromQuery path. Parse failures propagate unchanged.
func FromQueryString(queryString string, g *rdf.Graph) (*SelectBuilder, error) {
	q, err := sparql.Parse(queryString)
	if err != nil {
		return nil, err
	}
	return FromQuery(q, g, "")
}

// Select returns the wrapped SELECT view.
func (b *SelectBuilder) Select() *spin.Select { return b.sel }

// Graph returns the graph holding the query's triples.
func (b *SelectBuilder) Graph() *rdf.Graph { return b.sel.Graph() }

// Node returns the query's root node.
func (b *SelectBuilder) Node() rdf.Term { return b.sel.Node() }

// Err returns the first error recorded by a chained mutator, if any.
func (b *SelectBuilder) Err() error { return b.err }

// Limit replaces any existing LIMIT edge with the literal value n.
// Negative values are invalid.
func (b *SelectBuilder) Limit(n int64) *SelectBuilder {
	if b.err != nil {
		return b
	}
	if n < 0 {
		b.err = errors.WrapInvalid(errors.ErrNegativeValue, "SelectBuilder", "Limit",
			fmt.Sprintf("LIMIT %d", n))
		return b
	}

	g := b.sel.Graph()
	g.RemoveAll(b.sel.Node(), spLimit)
	g.Add(b.sel.Node(), spLimit, rdf.IntegerLiteral(n))
	return b
}

// Offset replaces any existing OFFSET edge with the literal value n.
// Negative values are invalid.
func (b *SelectBuilder) Offset(n int64) *SelectBuilder {
	if b.err != nil {
		return b
	}
	if n < 0 {
		b.err = errors.WrapInvalid(errors.ErrNegativeValue, "SelectBuilder", "Offset",
			fmt.Sprintf("OFFSET %d", n))
		return b
	}

	g := b.sel.Graph()
	g.RemoveAll(b.sel.Node(), spOffset)
	g.Add(b.sel.Node(), spOffset, rdf.IntegerLiteral(n))
	return b
}

// OrderBy replaces the ORDER BY list with a single ordering term on the
// named variable, descending when desc is true. An empty variable name is
// invalid.
func (b *SelectBuilder) OrderBy(varName string, desc bool) *SelectBuilder {
	if b.err != nil {
		return b
	}
	if varName == "" {
		b.err = errors.WrapInvalid(errors.ErrNilVariable, "SelectBuilder", "OrderBy",
			"ORDER BY variable name cannot be empty")
		return b
	}
	return b.OrderByVar(spin.CreateVariable(b.sel.Graph(), varName), desc)
}

// OrderByVar replaces the ORDER BY list with a single ordering term on an
// already-resolved variable reference.
func (b *SelectBuilder) OrderByVar(v spin.Variable, desc bool) *SelectBuilder {
	if b.err != nil {
		return b
	}
	if v.Node() == nil {
		b.err = errors.WrapInvalid(errors.ErrNilVariable, "SelectBuilder", "OrderByVar",
			"ORDER BY variable cannot be nil")
		return b
	}

	g := b.sel.Graph()
	node := b.sel.Node()
	b.removeOrderBy(g, node)

	term := g.NewResource()
	g.Add(term, spExpression, v.Node())
	if desc {
		g.Add(term, rdfType, spDesc)
	} else {
		g.Add(term, rdfType, spAsc)
	}
	g.Add(node, spOrderBy, g.NewList(term))
	return b
}

// removeOrderBy discards the current ORDER BY list and its ordering-term
// nodes so replacement leaves no orphaned clause triples behind.
func (b *SelectBuilder) removeOrderBy(g *rdf.Graph, node rdf.Term) {
	head, ok := g.Object(node, spOrderBy)
	if !ok {
		return
	}
	if items, err := g.List(head); err == nil {
		for _, item := range items {
			g.RemoveAll(item, spExpression)
			g.RemoveAll(item, rdfType)
		}
	}
	g.RemoveList(head)
	g.RemoveAll(node, spOrderBy)
}

// ResultVariables returns the projected variables in declaration order.
func (b *SelectBuilder) ResultVariables() ([]spin.Variable, error) {
	return b.sel.ResultVariables()
}

// IsDistinct reports the DISTINCT modifier.
func (b *SelectBuilder) IsDistinct() bool { return b.sel.IsDistinct() }

// IsReduced reports the REDUCED modifier.
func (b *SelectBuilder) IsReduced() bool { return b.sel.IsReduced() }

// GetLimit returns the current LIMIT, ok=false when unset.
func (b *SelectBuilder) GetLimit() (int64, bool) { return b.sel.Limit() }

// GetOffset returns the current OFFSET, ok=false when unset.
func (b *SelectBuilder) GetOffset() (int64, bool) { return b.sel.Offset() }

// GetOrderBy returns the current ORDER BY conditions.
func (b *SelectBuilder) GetOrderBy() ([]spin.OrderingTerm, error) { return b.sel.OrderBy() }

// Compile reads the built query back into its compiled form, surfacing any
// error recorded by a chained mutator first.
func (b *SelectBuilder) Compile() (*sparql.Query, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.sel.Compile()
}
