package datamanager

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/c360/semquery/errors"
	"github.com/c360/semquery/rdf"
	"github.com/c360/semquery/sparql"
	"github.com/c360/semquery/vocabulary"
)

var (
	rdfType          = rdf.NewIRI(vocabulary.RDFType)
	rsResultSet      = rdf.NewIRI(vocabulary.RSResultSet)
	rsResultVariable = rdf.NewIRI(vocabulary.RSResultVariable)
	rsSolution       = rdf.NewIRI(vocabulary.RSSolution)
	rsBinding        = rdf.NewIRI(vocabulary.RSBinding)
	rsVariable       = rdf.NewIRI(vocabulary.RSVariable)
	rsValue          = rdf.NewIRI(vocabulary.RSValue)
	rsIndex          = rdf.NewIRI(vocabulary.RSIndex)
	rsBoolean        = rdf.NewIRI(vocabulary.RSBooleanResult)
)

// LoadGraph evaluates q against an in-process source graph. DESCRIBE and
// CONSTRUCT yield their result graph directly; SELECT and ASK are normalized
// into a result-set graph so every form is graph-shaped.
func (m *Manager) LoadGraph(ctx context.Context, source *rdf.Graph, q *sparql.Query) (*rdf.Graph, error) {
	start := time.Now()

	if source == nil {
		return nil, errors.WrapInvalid(errors.ErrNilGraph, "Manager", "LoadGraph",
			"source graph cannot be nil")
	}
	if q == nil {
		return nil, errors.WrapInvalid(errors.ErrNilQuery, "Manager", "LoadGraph",
			"query cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapTransient(err, "Manager", "LoadGraph", "context check")
	}

	var out *rdf.Graph
	switch q.Form {
	case sparql.FormDescribe:
		out = evalDescribe(source, q)
	case sparql.FormConstruct:
		out = evalConstruct(source, q)
	case sparql.FormSelect:
		out = evalSelect(source, q)
	case sparql.FormAsk:
		out = evalAsk(source, q)
	default:
		err := errors.WrapInvalid(errors.ErrUnsupportedQuery, "Manager", "LoadGraph",
			"unknown query form")
		m.observe("graph", q.Form.String(), start, err)
		return nil, err
	}

	m.observe("graph", q.Form.String(), start, nil)
	return out, nil
}

// binding maps variable names to the terms they are bound to in one solution.
type binding map[string]rdf.Term

// matchPatterns evaluates a basic graph pattern by unifying each pattern
// against every triple, extending the solution set pattern by pattern.
func matchPatterns(g *rdf.Graph, patterns []sparql.TriplePattern) []binding {
	solutions := []binding{{}}
	triples := g.Triples()

	for _, p := range patterns {
		var next []binding
		for _, b := range solutions {
			for _, t := range triples {
				if nb, ok := unifyTriple(p, t, b); ok {
					next = append(next, nb)
				}
			}
		}
		solutions = next
		if len(solutions) == 0 {
			break
		}
	}
	return solutions
}

func unifyTriple(p sparql.TriplePattern, t rdf.Triple, b binding) (binding, bool) {
	nb := b
	copied := false

	bind := func(pt sparql.PatternTerm, term rdf.Term) bool {
		if !pt.IsVar() {
			return pt.Term == term
		}
		if existing, ok := nb[pt.Var]; ok {
			return existing == term
		}
		if !copied {
			clone := make(binding, len(nb)+1)
			for k, v := range nb {
				clone[k] = v
			}
			nb = clone
			copied = true
		}
		nb[pt.Var] = term
		return true
	}

	if !bind(p.Subject, t.Subject) {
		return nil, false
	}
	if !bind(p.Predicate, t.Predicate) {
		return nil, false
	}
	if !bind(p.Object, t.Object) {
		return nil, false
	}
	return nb, true
}

// sortSolutions orders solutions by the query's ORDER BY conditions,
// comparing the canonical term serializations. Stable, so ties keep their
// relative order.
func sortSolutions(solutions []binding, conditions []sparql.OrderCondition) {
	if len(conditions) == 0 {
		return
	}
	sort.SliceStable(solutions, func(i, j int) bool {
		for _, oc := range conditions {
			a := sortKey(solutions[i], oc.Variable)
			b := sortKey(solutions[j], oc.Variable)
			if a == b {
				continue
			}
			if oc.Descending {
				return a > b
			}
			return a < b
		}
		return false
	})
}

func sortKey(b binding, variable string) string {
	if t, ok := b[variable]; ok {
		return t.String()
	}
	return ""
}

// sliceSolutions applies OFFSET and LIMIT to an ordered solution sequence.
func sliceSolutions(solutions []binding, offset, limit *int64) []binding {
	if offset != nil {
		if *offset >= int64(len(solutions)) {
			return nil
		}
		solutions = solutions[*offset:]
	}
	if limit != nil && int64(len(solutions)) > *limit {
		solutions = solutions[:*limit]
	}
	return solutions
}

func evalDescribe(source *rdf.Graph, q *sparql.Query) *rdf.Graph {
	out := rdf.NewGraph()
	for _, n := range q.DescribeNodes {
		out.Merge(source.Describe(n))
	}
	if len(q.DescribeVars) > 0 {
		for _, sol := range matchPatterns(source, q.Where) {
			for _, v := range q.DescribeVars {
				if t, ok := sol[v]; ok {
					out.Merge(source.Describe(t))
				}
			}
		}
	}
	return out
}

func evalConstruct(source *rdf.Graph, q *sparql.Query) *rdf.Graph {
	solutions := matchPatterns(source, q.Where)
	sortSolutions(solutions, q.OrderBy)
	solutions = sliceSolutions(solutions, q.Offset, q.Limit)

	out := rdf.NewGraph()
	for _, sol := range solutions {
		for _, tp := range q.Template {
			s, ok := resolveTerm(tp.Subject, sol)
			if !ok {
				continue
			}
			p, ok := resolveTerm(tp.Predicate, sol)
			if !ok {
				continue
			}
			o, ok := resolveTerm(tp.Object, sol)
			if !ok {
				continue
			}
			out.Add(s, p, o)
		}
	}
	return out
}

func resolveTerm(pt sparql.PatternTerm, sol binding) (rdf.Term, bool) {
	if !pt.IsVar() {
		return pt.Term, true
	}
	t, ok := sol[pt.Var]
	return t, ok
}

func evalSelect(source *rdf.Graph, q *sparql.Query) *rdf.Graph {
	solutions := matchPatterns(source, q.Where)
	sortSolutions(solutions, q.OrderBy)

	vars := q.Variables
	if q.Star || len(vars) == 0 {
		vars = collectVariables(solutions)
	}
	if q.Distinct || q.Reduced {
		solutions = dedupeSolutions(solutions, vars)
	}
	solutions = sliceSolutions(solutions, q.Offset, q.Limit)

	out := rdf.NewGraph()
	rs := out.NewResource()
	out.Add(rs, rdfType, rsResultSet)
	for _, v := range vars {
		out.Add(rs, rsResultVariable, rdf.StringLiteral(v))
	}
	for i, sol := range solutions {
		row := out.NewResource()
		out.Add(rs, rsSolution, row)
		out.Add(row, rsIndex, rdf.IntegerLiteral(int64(i+1)))
		for _, v := range vars {
			term, ok := sol[v]
			if !ok {
				continue
			}
			cell := out.NewResource()
			out.Add(row, rsBinding, cell)
			out.Add(cell, rsVariable, rdf.StringLiteral(v))
			out.Add(cell, rsValue, term)
		}
	}
	return out
}

func evalAsk(source *rdf.Graph, q *sparql.Query) *rdf.Graph {
	solutions := matchPatterns(source, q.Where)

	out := rdf.NewGraph()
	rs := out.NewResource()
	out.Add(rs, rdfType, rsResultSet)
	out.Add(rs, rsBoolean, rdf.BooleanLiteral(len(solutions) > 0))
	return out
}

func collectVariables(solutions []binding) []string {
	seen := map[string]bool{}
	for _, sol := range solutions {
		for v := range sol {
			seen[v] = true
		}
	}
	vars := make([]string, 0, len(seen))
	for v := range seen {
		vars = append(vars, v)
	}
	sort.Strings(vars)
	return vars
}

func dedupeSolutions(solutions []binding, vars []string) []binding {
	seen := map[string]bool{}
	var out []binding
	for _, sol := range solutions {
		var sb strings.Builder
		for _, v := range vars {
			sb.WriteString(sortKey(sol, v))
			sb.WriteByte('\x00')
		}
		key := sb.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, sol)
	}
	return out
}
