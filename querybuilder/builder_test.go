package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/semquery/errors"
	"github.com/c360/semquery/rdf"
	"github.com/c360/semquery/sparql"
	"github.com/c360/semquery/spin"
	"github.com/c360/semquery/vocabulary"
)

func newBuilder(t *testing.T, text string) *SelectBuilder {
	t.Helper()
	b, err := FromQueryString(text, rdf.NewGraph())
	require.NoError(t, err)
	return b
}

func TestFromQueryStringSelect(t *testing.T) {
	b := newBuilder(t, "SELECT ?x WHERE { ?x a <http://example.org/Thing> }")

	vars, err := b.ResultVariables()
	require.NoError(t, err)
	require.Len(t, vars, 1)
	name, ok := vars[0].Name()
	require.True(t, ok)
	assert.Equal(t, "x", name)
}

func TestFromQueryStringParseFailurePropagates(t *testing.T) {
	_, err := FromQueryString("NOT A QUERY", rdf.NewGraph())
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestFromQueryStringWrongForm(t *testing.T) {
	_, err := FromQueryString("DESCRIBE <http://example.org/r>", rdf.NewGraph())
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestFromQueryNil(t *testing.T) {
	_, err := FromQuery(nil, rdf.NewGraph(), "")
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestFromSelectNil(t *testing.T) {
	_, err := FromSelect(nil)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestFromResourceMismatchedTypes(t *testing.T) {
	// Every non-SELECT query form must be rejected at construction.
	texts := []string{
		"CONSTRUCT { ?s ?p ?o } WHERE { ?s ?p ?o }",
		"DESCRIBE <http://example.org/r>",
		"ASK { ?s ?p ?o }",
	}

	for _, text := range texts {
		g := rdf.NewGraph()
		compiled, err := sparql.Parse(text)
		require.NoError(t, err)
		view, err := spin.FromCompiled(compiled, g, "")
		require.NoError(t, err)

		_, err = FromResource(g, view.Node())
		require.Error(t, err, "form %q must be rejected", text)
		assert.True(t, errors.IsInvalid(err))
	}
}

func TestFromResourceUntypedNode(t *testing.T) {
	g := rdf.NewGraph()
	n := rdf.NewIRI("http://example.org/plain")
	g.Add(n, rdf.NewIRI("http://example.org/p"), rdf.StringLiteral("v"))

	_, err := FromResource(g, n)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestLimitLastWriteWins(t *testing.T) {
	b := newBuilder(t, "SELECT ?x WHERE { ?x ?p ?o }")

	b.Limit(100).Limit(25)
	require.NoError(t, b.Err())

	limit, ok := b.GetLimit()
	require.True(t, ok)
	assert.Equal(t, int64(25), limit)

	// Exactly one sp:limit edge remains in the graph.
	assert.Len(t, b.Graph().Objects(b.Node(), rdf.NewIRI(vocabulary.SPLimit)), 1)
}

func TestLimitNegative(t *testing.T) {
	b := newBuilder(t, "SELECT ?x WHERE { ?x ?p ?o }")

	b.Limit(-1)
	require.Error(t, b.Err())
	assert.True(t, errors.IsInvalid(b.Err()))

	_, err := b.Compile()
	require.Error(t, err)
}

func TestOffsetReplaces(t *testing.T) {
	b := newBuilder(t, "SELECT ?x WHERE { ?x ?p ?o }")

	b.Offset(10).Offset(0)
	require.NoError(t, b.Err())

	offset, ok := b.GetOffset()
	require.True(t, ok)
	assert.Equal(t, int64(0), offset)
}

func TestOrderByReplacesNotAppends(t *testing.T) {
	b := newBuilder(t, "SELECT ?x ?y WHERE { ?x ?p ?y }")

	b.OrderBy("x", false).OrderBy("y", true)
	require.NoError(t, b.Err())

	ordering, err := b.GetOrderBy()
	require.NoError(t, err)
	require.Len(t, ordering, 1)
	name, ok := ordering[0].Variable.Name()
	require.True(t, ok)
	assert.Equal(t, "y", name)
	assert.True(t, ordering[0].Descending)

	// The old ordering term's clause triples are gone: exactly one
	// sp:expression edge remains anywhere in the graph.
	expression := rdf.NewIRI(vocabulary.SPExpression)
	count := 0
	for _, triple := range b.Graph().Triples() {
		if triple.Predicate == rdf.Term(expression) {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestOrderByEmptyName(t *testing.T) {
	b := newBuilder(t, "SELECT ?x WHERE { ?x ?p ?o }")

	b.OrderBy("", false)
	require.Error(t, b.Err())
	assert.True(t, errors.IsInvalid(b.Err()))
}

func TestOrderByVarNil(t *testing.T) {
	b := newBuilder(t, "SELECT ?x WHERE { ?x ?p ?o }")

	b.OrderByVar(spin.Variable{}, false)
	require.Error(t, b.Err())
	assert.True(t, errors.IsInvalid(b.Err()))
}

func TestChainedBuildScenario(t *testing.T) {
	b := newBuilder(t, "SELECT ?x WHERE { ?x a <http://example.org/Thing> }")

	b.Limit(10).Offset(5).OrderBy("x", true)
	require.NoError(t, b.Err())

	limit, ok := b.GetLimit()
	require.True(t, ok)
	assert.Equal(t, int64(10), limit)

	offset, ok := b.GetOffset()
	require.True(t, ok)
	assert.Equal(t, int64(5), offset)

	ordering, err := b.GetOrderBy()
	require.NoError(t, err)
	require.Len(t, ordering, 1)
	name, ok := ordering[0].Variable.Name()
	require.True(t, ok)
	assert.Equal(t, "x", name)
	assert.True(t, ordering[0].Descending)

	// The built query reads back as a complete compiled query.
	q, err := b.Compile()
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, q.Variables)
	require.NotNil(t, q.Limit)
	assert.Equal(t, int64(10), *q.Limit)
	require.NotNil(t, q.Offset)
	assert.Equal(t, int64(5), *q.Offset)
	require.Len(t, q.OrderBy, 1)
	assert.Equal(t, sparql.OrderCondition{Variable: "x", Descending: true}, q.OrderBy[0])
}

func TestMutationVisibleToOtherHolders(t *testing.T) {
	g := rdf.NewGraph()
	b, err := FromQueryString("SELECT ?x WHERE { ?x ?p ?o }", g)
	require.NoError(t, err)

	// Another holder of the same node sees the builder's mutations.
	other, err := spin.AsSelect(g, b.Node())
	require.NoError(t, err)

	b.Limit(3)
	require.NoError(t, b.Err())

	limit, ok := other.Limit()
	require.True(t, ok)
	assert.Equal(t, int64(3), limit)
}

func TestStickyErrorSkipsLaterMutators(t *testing.T) {
	b := newBuilder(t, "SELECT ?x WHERE { ?x ?p ?o }")

	b.Limit(-1).Offset(5)
	require.Error(t, b.Err())

	// The later Offset call must not have touched the graph.
	_, ok := b.GetOffset()
	assert.False(t, ok)
}
