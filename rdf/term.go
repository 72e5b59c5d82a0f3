package rdf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/c360/semquery/vocabulary"
)

// Term is an RDF term: an IRI, a blank node, or a literal.
// All implementations are comparable value types, so terms can be used
// directly as map keys and compared with ==.
type Term interface {
	// String returns the N-Triples serialization of the term.
	String() string
	isTerm()
}

// IRI is an absolute IRI reference.
type IRI struct {
	Value string
}

func (i IRI) String() string { return "<" + i.Value + ">" }
func (IRI) isTerm()          {}

// NewIRI creates an IRI term.
func NewIRI(value string) IRI {
	return IRI{Value: value}
}

// BlankNode is an anonymous resource identified by a graph-local label.
type BlankNode struct {
	ID string
}

func (b BlankNode) String() string { return "_:" + b.ID }
func (BlankNode) isTerm()          {}

// NewBlankNode creates a blank node with a fresh unique label.
func NewBlankNode() BlankNode {
	return BlankNode{ID: "b" + strings.ReplaceAll(uuid.NewString(), "-", "")}
}

// Literal is an RDF literal: a lexical form plus a datatype IRI.
type Literal struct {
	Lexical  string
	Datatype string
}

func (l Literal) String() string {
	escaped := escapeLiteral(l.Lexical)
	if l.Datatype == "" || l.Datatype == vocabulary.XSDString {
		return `"` + escaped + `"`
	}
	return `"` + escaped + `"^^<` + l.Datatype + `>`
}

func (Literal) isTerm() {}

// StringLiteral creates a plain string literal.
func StringLiteral(value string) Literal {
	return Literal{Lexical: value, Datatype: vocabulary.XSDString}
}

// IntegerLiteral creates an xsd:integer literal.
func IntegerLiteral(value int64) Literal {
	return Literal{Lexical: strconv.FormatInt(value, 10), Datatype: vocabulary.XSDInteger}
}

// DoubleLiteral creates an xsd:double literal.
func DoubleLiteral(value float64) Literal {
	return Literal{Lexical: strconv.FormatFloat(value, 'g', -1, 64), Datatype: vocabulary.XSDDouble}
}

// BooleanLiteral creates an xsd:boolean literal.
func BooleanLiteral(value bool) Literal {
	return Literal{Lexical: strconv.FormatBool(value), Datatype: vocabulary.XSDBoolean}
}

// Int64 parses the literal's lexical form as an integer.
func (l Literal) Int64() (int64, error) {
	v, err := strconv.ParseInt(l.Lexical, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("literal %q is not an integer: %w", l.Lexical, err)
	}
	return v, nil
}

// Bool parses the literal's lexical form as a boolean.
func (l Literal) Bool() (bool, error) {
	v, err := strconv.ParseBool(l.Lexical)
	if err != nil {
		return false, fmt.Errorf("literal %q is not a boolean: %w", l.Lexical, err)
	}
	return v, nil
}

func escapeLiteral(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\r", `\r`,
		"\t", `\t`,
	)
	return r.Replace(s)
}
