package rdf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNTriplesBasic(t *testing.T) {
	input := `
# a comment
<http://example.org/s> <http://example.org/p> <http://example.org/o> .
<http://example.org/s> <http://example.org/name> "Alice" .
_:b1 <http://example.org/age> "42"^^<http://www.w3.org/2001/XMLSchema#integer> .
`
	g, err := ParseNTriples(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 3, g.Len())

	assert.True(t, g.Has(Triple{
		Subject:   NewIRI("http://example.org/s"),
		Predicate: NewIRI("http://example.org/p"),
		Object:    NewIRI("http://example.org/o"),
	}))
	assert.True(t, g.Has(Triple{
		Subject:   NewIRI("http://example.org/s"),
		Predicate: NewIRI("http://example.org/name"),
		Object:    StringLiteral("Alice"),
	}))
	assert.True(t, g.Has(Triple{
		Subject:   BlankNode{ID: "b1"},
		Predicate: NewIRI("http://example.org/age"),
		Object:    IntegerLiteral(42),
	}))
}

func TestParseNTriplesEscapes(t *testing.T) {
	input := `<http://example.org/s> <http://example.org/p> "line1\nline2 \"quoted\"" .`
	g, err := ParseNTriples(strings.NewReader(input))
	require.NoError(t, err)
	assert.True(t, g.Has(Triple{
		Subject:   NewIRI("http://example.org/s"),
		Predicate: NewIRI("http://example.org/p"),
		Object:    StringLiteral("line1\nline2 \"quoted\""),
	}))
}

func TestParseNTriplesLanguageTagDiscarded(t *testing.T) {
	input := `<http://example.org/s> <http://example.org/p> "hola"@es .`
	g, err := ParseNTriples(strings.NewReader(input))
	require.NoError(t, err)
	assert.True(t, g.Has(Triple{
		Subject:   NewIRI("http://example.org/s"),
		Predicate: NewIRI("http://example.org/p"),
		Object:    StringLiteral("hola"),
	}))
}

func TestParseNTriplesMalformed(t *testing.T) {
	inputs := []string{
		`<http://example.org/s> <http://example.org/p>`,
		`<http://example.org/s> <http://example.org/p> "unterminated .`,
		`<http://example.org/s> <http://example.org/p> <http://example.org/o>`,
		`nonsense line .`,
	}
	for _, input := range inputs {
		_, err := ParseNTriples(strings.NewReader(input))
		assert.Error(t, err, "input %q should fail", input)
	}
}

func TestParseNTriplesRoundTrip(t *testing.T) {
	g := NewGraph()
	g.Add(NewIRI("http://example.org/s"), NewIRI("http://example.org/p"), StringLiteral("v"))
	g.Add(NewIRI("http://example.org/s"), NewIRI("http://example.org/n"), IntegerLiteral(7))
	g.Add(BlankNode{ID: "x"}, NewIRI("http://example.org/p"), NewIRI("http://example.org/o"))

	var sb strings.Builder
	require.NoError(t, g.WriteNTriples(&sb))

	back, err := ParseNTriples(strings.NewReader(sb.String()))
	require.NoError(t, err)
	assert.Equal(t, g.Hash(), back.Hash())
}
