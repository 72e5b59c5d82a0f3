package spin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/semquery/errors"
	"github.com/c360/semquery/rdf"
	"github.com/c360/semquery/sparql"
)

func mustParse(t *testing.T, text string) *sparql.Query {
	t.Helper()
	q, err := sparql.Parse(text)
	require.NoError(t, err)
	return q
}

func TestFromCompiledSelect(t *testing.T) {
	g := rdf.NewGraph()
	compiled := mustParse(t, "SELECT DISTINCT ?x ?y WHERE { ?x ?p ?y } LIMIT 10")

	q, err := FromCompiled(compiled, g, "")
	require.NoError(t, err)

	sel, ok := q.(*Select)
	require.True(t, ok)
	assert.Equal(t, sparql.FormSelect, sel.Form())

	vars, err := sel.ResultVariables()
	require.NoError(t, err)
	require.Len(t, vars, 2)
	name, ok := vars[0].Name()
	require.True(t, ok)
	assert.Equal(t, "x", name)

	assert.True(t, sel.IsDistinct())
	assert.False(t, sel.IsReduced())

	limit, ok := sel.Limit()
	require.True(t, ok)
	assert.Equal(t, int64(10), limit)

	_, ok = sel.Offset()
	assert.False(t, ok)
}

func TestFromCompiledNilQuery(t *testing.T) {
	_, err := FromCompiled(nil, rdf.NewGraph(), "")
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestFromCompiledNamedRoot(t *testing.T) {
	g := rdf.NewGraph()
	compiled := mustParse(t, "SELECT ?x WHERE { ?x ?p ?o }")

	q, err := FromCompiled(compiled, g, "http://example.org/queries/q1")
	require.NoError(t, err)
	assert.Equal(t, rdf.Term(rdf.NewIRI("http://example.org/queries/q1")), q.Node())
}

func TestCompileRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"select with modifiers", "SELECT DISTINCT ?x WHERE { ?x a <http://example.org/Thing> } ORDER BY DESC(?x) LIMIT 10 OFFSET 5"},
		{"select star", "SELECT * WHERE { ?s ?p ?o }"},
		{"construct", "CONSTRUCT { ?s <http://example.org/out> ?o } WHERE { ?s <http://example.org/in> ?o }"},
		{"describe", "DESCRIBE <http://example.org/r>"},
		{"ask", `ASK { <http://example.org/s> <http://example.org/p> "v" }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := rdf.NewGraph()
			compiled := mustParse(t, tt.text)

			view, err := FromCompiled(compiled, g, "")
			require.NoError(t, err)

			back, err := view.Compile()
			require.NoError(t, err)
			assert.Equal(t, compiled, back)
		})
	}
}

func TestAsSelectWrongForm(t *testing.T) {
	g := rdf.NewGraph()
	compiled := mustParse(t, "DESCRIBE <http://example.org/r>")

	view, err := FromCompiled(compiled, g, "")
	require.NoError(t, err)

	_, err = AsSelect(g, view.Node())
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestAsQueryUntypedNode(t *testing.T) {
	g := rdf.NewGraph()
	plain := rdf.NewIRI("http://example.org/not-a-query")
	g.Add(plain, rdf.NewIRI("http://example.org/p"), rdf.StringLiteral("v"))

	_, err := AsQuery(g, plain)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestAsQueryEveryMismatchedForm(t *testing.T) {
	// Every non-SELECT form must be rejected by AsSelect.
	texts := []string{
		"CONSTRUCT { ?s ?p ?o } WHERE { ?s ?p ?o }",
		"DESCRIBE <http://example.org/r>",
		"ASK { ?s ?p ?o }",
	}

	for _, text := range texts {
		g := rdf.NewGraph()
		view, err := FromCompiled(mustParse(t, text), g, "")
		require.NoError(t, err)

		_, err = AsSelect(g, view.Node())
		assert.Error(t, err, "query %q must not cast to SELECT", text)
	}
}

func TestCreateVariableReusesNode(t *testing.T) {
	g := rdf.NewGraph()
	a := CreateVariable(g, "x")
	b := CreateVariable(g, "x")
	c := CreateVariable(g, "y")

	assert.Equal(t, a.Node(), b.Node())
	assert.NotEqual(t, a.Node(), c.Node())
}

func TestSharedGraphMutationVisibility(t *testing.T) {
	g := rdf.NewGraph()
	view, err := FromQueryString("SELECT ?x WHERE { ?x ?p ?o }", g)
	require.NoError(t, err)

	sel1, err := AsSelect(g, view.Node())
	require.NoError(t, err)
	sel2, err := AsSelect(g, view.Node())
	require.NoError(t, err)

	// Mutating through one view is visible through the other: both hold
	// non-owning handles into the same graph.
	g.Add(view.Node(), spLimit, rdf.IntegerLiteral(7))

	limit, ok := sel1.Limit()
	require.True(t, ok)
	assert.Equal(t, int64(7), limit)

	limit, ok = sel2.Limit()
	require.True(t, ok)
	assert.Equal(t, int64(7), limit)
}
