// Package sparql provides a minimal compiled representation of SPARQL-style
// queries and a parser for the subset SemQuery works with: the four result
// forms, basic graph patterns, solution modifiers (DISTINCT/REDUCED, ORDER BY,
// LIMIT/OFFSET), and PREFIX declarations. It is deliberately not a full SPARQL
// implementation.
package sparql

import (
	"strconv"
	"strings"

	"github.com/c360/semquery/rdf"
)

// Form is the result form of a query.
type Form int

const (
	// FormSelect projects variable bindings as a table.
	FormSelect Form = iota
	// FormConstruct builds a graph from a template.
	FormConstruct
	// FormDescribe returns a description of one or more resources.
	FormDescribe
	// FormAsk returns a boolean.
	FormAsk
)

// String returns the SPARQL keyword for the form.
func (f Form) String() string {
	switch f {
	case FormSelect:
		return "SELECT"
	case FormConstruct:
		return "CONSTRUCT"
	case FormDescribe:
		return "DESCRIBE"
	case FormAsk:
		return "ASK"
	default:
		return "UNKNOWN"
	}
}

// PatternTerm is one position of a triple pattern: either a variable or a
// bound RDF term.
type PatternTerm struct {
	Var  string   // variable name without the '?' sigil; empty when bound
	Term rdf.Term // bound term; nil when a variable
}

// IsVar reports whether the pattern term is a variable.
func (pt PatternTerm) IsVar() bool { return pt.Var != "" }

// String returns the SPARQL serialization of the pattern term.
func (pt PatternTerm) String() string {
	if pt.IsVar() {
		return "?" + pt.Var
	}
	return pt.Term.String()
}

// Var creates a variable pattern term.
func Var(name string) PatternTerm { return PatternTerm{Var: name} }

// Bound creates a bound pattern term.
func Bound(t rdf.Term) PatternTerm { return PatternTerm{Term: t} }

// TriplePattern is a triple where any position may be a variable.
type TriplePattern struct {
	Subject   PatternTerm
	Predicate PatternTerm
	Object    PatternTerm
}

// String returns the SPARQL serialization of the pattern.
func (tp TriplePattern) String() string {
	return tp.Subject.String() + " " + tp.Predicate.String() + " " + tp.Object.String() + " ."
}

// OrderCondition is a single ORDER BY term.
type OrderCondition struct {
	Variable   string
	Descending bool
}

// Query is a compiled query: the structured form handed to the execution
// capability and translated into the SPIN graph representation.
type Query struct {
	Form Form

	// SELECT clause
	Variables []string // projected variables in declaration order
	Star      bool     // SELECT *
	Distinct  bool
	Reduced   bool

	// Solution modifiers. Limit and Offset are nil when unset.
	Limit   *int64
	Offset  *int64
	OrderBy []OrderCondition

	// WHERE basic graph pattern
	Where []TriplePattern

	// CONSTRUCT template
	Template []TriplePattern

	// DESCRIBE targets: explicit IRIs and/or variables
	DescribeNodes []rdf.IRI
	DescribeVars  []string
}

// IsSelect reports whether the query is a SELECT.
func (q *Query) IsSelect() bool { return q.Form == FormSelect }

// IsConstruct reports whether the query is a CONSTRUCT.
func (q *Query) IsConstruct() bool { return q.Form == FormConstruct }

// IsDescribe reports whether the query is a DESCRIBE.
func (q *Query) IsDescribe() bool { return q.Form == FormDescribe }

// IsAsk reports whether the query is an ASK.
func (q *Query) IsAsk() bool { return q.Form == FormAsk }

// Describe builds the canonical "DESCRIBE <uri>" query used by linked-data
// resources that describe a single node.
func Describe(uri string) *Query {
	return &Query{
		Form:          FormDescribe,
		DescribeNodes: []rdf.IRI{rdf.NewIRI(uri)},
	}
}

// String serializes the query back to SPARQL text. The output is canonical,
// not a copy of the parsed input.
func (q *Query) String() string {
	var sb strings.Builder

	switch q.Form {
	case FormSelect:
		sb.WriteString("SELECT ")
		if q.Distinct {
			sb.WriteString("DISTINCT ")
		} else if q.Reduced {
			sb.WriteString("REDUCED ")
		}
		if q.Star || len(q.Variables) == 0 {
			sb.WriteString("*")
		} else {
			for i, v := range q.Variables {
				if i > 0 {
					sb.WriteString(" ")
				}
				sb.WriteString("?" + v)
			}
		}
		sb.WriteString(" WHERE ")
		writePatternBlock(&sb, q.Where)

	case FormConstruct:
		sb.WriteString("CONSTRUCT ")
		writePatternBlock(&sb, q.Template)
		sb.WriteString(" WHERE ")
		writePatternBlock(&sb, q.Where)

	case FormDescribe:
		sb.WriteString("DESCRIBE")
		for _, n := range q.DescribeNodes {
			sb.WriteString(" " + n.String())
		}
		for _, v := range q.DescribeVars {
			sb.WriteString(" ?" + v)
		}
		if len(q.Where) > 0 {
			sb.WriteString(" WHERE ")
			writePatternBlock(&sb, q.Where)
		}

	case FormAsk:
		sb.WriteString("ASK ")
		writePatternBlock(&sb, q.Where)
	}

	if len(q.OrderBy) > 0 {
		sb.WriteString(" ORDER BY")
		for _, oc := range q.OrderBy {
			if oc.Descending {
				sb.WriteString(" DESC(?" + oc.Variable + ")")
			} else {
				sb.WriteString(" ?" + oc.Variable)
			}
		}
	}
	if q.Limit != nil {
		sb.WriteString(" LIMIT " + strconv.FormatInt(*q.Limit, 10))
	}
	if q.Offset != nil {
		sb.WriteString(" OFFSET " + strconv.FormatInt(*q.Offset, 10))
	}

	return sb.String()
}

func writePatternBlock(sb *strings.Builder, patterns []TriplePattern) {
	sb.WriteString("{")
	for _, p := range patterns {
		sb.WriteString(" " + p.String())
	}
	sb.WriteString(" }")
}
