package spin

import (
	"github.com/c360/semquery/errors"
	"github.com/c360/semquery/rdf"
	"github.com/c360/semquery/sparql"
	"github.com/c360/semquery/vocabulary"
)

var (
	rdfType         = rdf.NewIRI(vocabulary.RDFType)
	spSelect        = rdf.NewIRI(vocabulary.SPSelect)
	spConstruct     = rdf.NewIRI(vocabulary.SPConstruct)
	spDescribe      = rdf.NewIRI(vocabulary.SPDescribe)
	spAsk           = rdf.NewIRI(vocabulary.SPAsk)
	spVariable      = rdf.NewIRI(vocabulary.SPVariable)
	spAsc           = rdf.NewIRI(vocabulary.SPAsc)
	spDesc          = rdf.NewIRI(vocabulary.SPDesc)
	spVarName       = rdf.NewIRI(vocabulary.SPVarName)
	spResultVars    = rdf.NewIRI(vocabulary.SPResultVariables)
	spResultNodes   = rdf.NewIRI(vocabulary.SPResultNodes)
	spTemplates     = rdf.NewIRI(vocabulary.SPTemplates)
	spWhere         = rdf.NewIRI(vocabulary.SPWhere)
	spLimit         = rdf.NewIRI(vocabulary.SPLimit)
	spOffset        = rdf.NewIRI(vocabulary.SPOffset)
	spOrderBy       = rdf.NewIRI(vocabulary.SPOrderBy)
	spDistinct      = rdf.NewIRI(vocabulary.SPDistinct)
	spReduced       = rdf.NewIRI(vocabulary.SPReduced)
	spExpression    = rdf.NewIRI(vocabulary.SPExpression)
	spSubject       = rdf.NewIRI(vocabulary.SPSubject)
	spPredicate     = rdf.NewIRI(vocabulary.SPPredicate)
	spObject        = rdf.NewIRI(vocabulary.SPObject)
	spTriplePattern = rdf.NewIRI(vocabulary.SPTriplePattern)
)

// Query is a typed view over a query-graph node. All accessors read through
// to the underlying graph; no query state is cached in the view.
type Query interface {
	// Graph returns the graph holding the query's triples.
	Graph() *rdf.Graph
	// Node returns the query's root node.
	Node() rdf.Term
	// Form returns the query's result form.
	Form() sparql.Form
	// Compile reads the graph representation back into a compiled query.
	Compile() (*sparql.Query, error)
}

// node is the shared (graph, root) handle under every typed view.
type node struct {
	graph *rdf.Graph
	term  rdf.Term
}

func (n node) Graph() *rdf.Graph { return n.graph }
func (n node) Node() rdf.Term    { return n.term }

// Select is a typed view over an sp:Select query node.
type Select struct {
	node
}

// Form returns sparql.FormSelect.
func (s *Select) Form() sparql.Form { return sparql.FormSelect }

// ResultVariables returns the projected variables in declaration order.
// A SELECT * query has no sp:resultVariables list and returns nil.
func (s *Select) ResultVariables() ([]Variable, error) {
	head, ok := s.graph.Object(s.term, spResultVars)
	if !ok {
		return nil, nil
	}
	items, err := s.graph.List(head)
	if err != nil {
		return nil, err
	}

	vars := make([]Variable, 0, len(items))
	for _, item := range items {
		v, err := AsVariable(s.graph, item)
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)
	}
	return vars, nil
}

// IsDistinct reports whether the SELECT carries the DISTINCT modifier.
func (s *Select) IsDistinct() bool {
	return s.boolProperty(spDistinct)
}

// IsReduced reports whether the SELECT carries the REDUCED modifier.
func (s *Select) IsReduced() bool {
	return s.boolProperty(spReduced)
}

// Limit returns the LIMIT value, ok=false when unset.
func (s *Select) Limit() (int64, bool) {
	return s.intProperty(spLimit)
}

// Offset returns the OFFSET value, ok=false when unset.
func (s *Select) Offset() (int64, bool) {
	return s.intProperty(spOffset)
}

// OrderingTerm is one ORDER BY condition read back from the graph.
type OrderingTerm struct {
	Variable   Variable
	Descending bool
}

// OrderBy returns the ORDER BY conditions in order, nil when unset.
func (s *Select) OrderBy() ([]OrderingTerm, error) {
	head, ok := s.graph.Object(s.term, spOrderBy)
	if !ok {
		return nil, nil
	}
	items, err := s.graph.List(head)
	if err != nil {
		return nil, err
	}

	terms := make([]OrderingTerm, 0, len(items))
	for _, item := range items {
		expr, ok := s.graph.Object(item, spExpression)
		if !ok {
			return nil, errors.WrapInvalid(errors.ErrInvalidQuery, "Select", "OrderBy",
				"ordering term has no sp:expression")
		}
		v, err := AsVariable(s.graph, expr)
		if err != nil {
			return nil, err
		}
		terms = append(terms, OrderingTerm{
			Variable:   v,
			Descending: s.graph.Has(rdf.Triple{Subject: item, Predicate: rdfType, Object: spDesc}),
		})
	}
	return terms, nil
}

func (n node) boolProperty(predicate rdf.Term) bool {
	obj, ok := n.graph.Object(n.term, predicate)
	if !ok {
		return false
	}
	lit, ok := obj.(rdf.Literal)
	if !ok {
		return false
	}
	v, err := lit.Bool()
	return err == nil && v
}

func (n node) intProperty(predicate rdf.Term) (int64, bool) {
	obj, ok := n.graph.Object(n.term, predicate)
	if !ok {
		return 0, false
	}
	lit, ok := obj.(rdf.Literal)
	if !ok {
		return 0, false
	}
	v, err := lit.Int64()
	if err != nil {
		return 0, false
	}
	return v, true
}

// Construct is a typed view over an sp:Construct query node.
type Construct struct {
	node
}

// Form returns sparql.FormConstruct.
func (c *Construct) Form() sparql.Form { return sparql.FormConstruct }

// Describe is a typed view over an sp:Describe query node.
type Describe struct {
	node
}

// Form returns sparql.FormDescribe.
func (d *Describe) Form() sparql.Form { return sparql.FormDescribe }

// ResultNodes returns the description targets: IRIs and variables.
func (d *Describe) ResultNodes() ([]rdf.Term, error) {
	head, ok := d.graph.Object(d.term, spResultNodes)
	if !ok {
		return nil, nil
	}
	return d.graph.List(head)
}

// Ask is a typed view over an sp:Ask query node.
type Ask struct {
	node
}

// Form returns sparql.FormAsk.
func (a *Ask) Form() sparql.Form { return sparql.FormAsk }
