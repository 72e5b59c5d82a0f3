package rdf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/semquery/vocabulary"
)

func TestGraphAddRemove(t *testing.T) {
	g := NewGraph()
	s := NewIRI("http://example.org/s")
	p := NewIRI("http://example.org/p")

	g.Add(s, p, StringLiteral("one"))
	g.Add(s, p, StringLiteral("two"))
	g.Add(s, p, StringLiteral("one")) // duplicate, set semantics
	assert.Equal(t, 2, g.Len())

	removed := g.RemoveAll(s, p)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 0, g.Len())
}

func TestGraphObjects(t *testing.T) {
	g := NewGraph()
	s := NewIRI("http://example.org/s")
	p := NewIRI("http://example.org/p")
	other := NewIRI("http://example.org/other")

	g.Add(s, p, IntegerLiteral(42))
	g.Add(s, other, StringLiteral("x"))

	obj, ok := g.Object(s, p)
	require.True(t, ok)
	lit, ok := obj.(Literal)
	require.True(t, ok)
	v, err := lit.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	_, ok = g.Object(s, NewIRI("http://example.org/missing"))
	assert.False(t, ok)
}

func TestGraphHashOrderIndependent(t *testing.T) {
	a := NewGraph()
	b := NewGraph()
	s := NewIRI("http://example.org/s")
	p1 := NewIRI("http://example.org/p1")
	p2 := NewIRI("http://example.org/p2")

	a.Add(s, p1, StringLiteral("v1"))
	a.Add(s, p2, StringLiteral("v2"))

	b.Add(s, p2, StringLiteral("v2"))
	b.Add(s, p1, StringLiteral("v1"))

	assert.Equal(t, a.Hash(), b.Hash())

	b.Add(s, p1, StringLiteral("v3"))
	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestGraphDescribeFollowsBlankNodes(t *testing.T) {
	g := NewGraph()
	s := NewIRI("http://example.org/s")
	p := NewIRI("http://example.org/p")
	bn := g.NewResource()
	inner := NewIRI("http://example.org/inner")

	g.Add(s, p, bn)
	g.Add(bn, inner, StringLiteral("nested"))
	// Unrelated triple must not appear in the description
	g.Add(NewIRI("http://example.org/unrelated"), p, StringLiteral("x"))

	desc := g.Describe(s)
	assert.Equal(t, 2, desc.Len())
	assert.True(t, desc.Has(Triple{Subject: bn, Predicate: inner, Object: StringLiteral("nested")}))
}

func TestListRoundTrip(t *testing.T) {
	g := NewGraph()
	items := []Term{
		NewIRI("http://example.org/a"),
		NewIRI("http://example.org/b"),
		NewIRI("http://example.org/c"),
	}

	head := g.NewList(items...)
	got, err := g.List(head)
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestEmptyListIsNil(t *testing.T) {
	g := NewGraph()
	head := g.NewList()
	assert.Equal(t, Term(NewIRI(vocabulary.RDFNil)), head)

	got, err := g.List(head)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListMalformed(t *testing.T) {
	g := NewGraph()
	cell := g.NewResource()
	// Cell with rdf:first but no rdf:rest
	g.Add(cell, NewIRI(vocabulary.RDFFirst), StringLiteral("x"))

	_, err := g.List(cell)
	require.Error(t, err)
}

func TestRemoveListKeepsItems(t *testing.T) {
	g := NewGraph()
	item := NewIRI("http://example.org/item")
	marker := NewIRI("http://example.org/marker")
	g.Add(item, marker, StringLiteral("keep"))

	head := g.NewList(item)
	require.Equal(t, 3, g.Len()) // marker + first + rest

	g.RemoveList(head)
	assert.Equal(t, 1, g.Len())
	assert.True(t, g.Has(Triple{Subject: item, Predicate: marker, Object: StringLiteral("keep")}))
}

func TestWriteNTriples(t *testing.T) {
	g := NewGraph()
	g.Add(NewIRI("http://example.org/s"), NewIRI("http://example.org/p"), StringLiteral("hello \"world\""))

	var sb strings.Builder
	require.NoError(t, g.WriteNTriples(&sb))
	assert.Equal(t, "<http://example.org/s> <http://example.org/p> \"hello \\\"world\\\"\" .\n", sb.String())
}

func TestLiteralString(t *testing.T) {
	tests := []struct {
		name string
		lit  Literal
		want string
	}{
		{"plain string", StringLiteral("hi"), `"hi"`},
		{"integer", IntegerLiteral(10), `"10"^^<http://www.w3.org/2001/XMLSchema#integer>`},
		{"boolean", BooleanLiteral(true), `"true"^^<http://www.w3.org/2001/XMLSchema#boolean>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.lit.String())
		})
	}
}
