package spin

import (
	"github.com/c360/semquery/errors"
	"github.com/c360/semquery/rdf"
	"github.com/c360/semquery/sparql"
)

// Compile reads the SELECT's graph representation back into a compiled query.
func (s *Select) Compile() (*sparql.Query, error) {
	q := &sparql.Query{Form: sparql.FormSelect}

	vars, err := s.ResultVariables()
	if err != nil {
		return nil, err
	}
	if len(vars) == 0 {
		q.Star = true
	}
	for _, v := range vars {
		name, ok := v.Name()
		if !ok {
			return nil, errors.WrapInvalid(errors.ErrInvalidQuery, "Select", "Compile",
				"result variable has no name")
		}
		q.Variables = append(q.Variables, name)
	}

	q.Distinct = s.IsDistinct()
	q.Reduced = s.IsReduced()

	ordering, err := s.OrderBy()
	if err != nil {
		return nil, err
	}
	for _, ot := range ordering {
		name, ok := ot.Variable.Name()
		if !ok {
			return nil, errors.WrapInvalid(errors.ErrInvalidQuery, "Select", "Compile",
				"ordering variable has no name")
		}
		q.OrderBy = append(q.OrderBy, sparql.OrderCondition{Variable: name, Descending: ot.Descending})
	}

	if q.Where, err = s.readPatterns(spWhere); err != nil {
		return nil, err
	}
	s.compileModifiers(q)
	return q, nil
}

// Compile reads the CONSTRUCT's graph representation back into a compiled query.
func (c *Construct) Compile() (*sparql.Query, error) {
	q := &sparql.Query{Form: sparql.FormConstruct}

	var err error
	if q.Template, err = c.readPatterns(spTemplates); err != nil {
		return nil, err
	}
	if q.Where, err = c.readPatterns(spWhere); err != nil {
		return nil, err
	}
	c.compileModifiers(q)
	return q, nil
}

// Compile reads the DESCRIBE's graph representation back into a compiled query.
func (d *Describe) Compile() (*sparql.Query, error) {
	q := &sparql.Query{Form: sparql.FormDescribe}

	nodes, err := d.ResultNodes()
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		if isVariableNode(d.graph, n) {
			v := Variable{node{graph: d.graph, term: n}}
			name, ok := v.Name()
			if !ok {
				return nil, errors.WrapInvalid(errors.ErrInvalidQuery, "Describe", "Compile",
					"describe variable has no name")
			}
			q.DescribeVars = append(q.DescribeVars, name)
			continue
		}
		iri, ok := n.(rdf.IRI)
		if !ok {
			return nil, errors.WrapInvalid(errors.ErrInvalidQuery, "Describe", "Compile",
				"describe target is neither an IRI nor a variable")
		}
		q.DescribeNodes = append(q.DescribeNodes, iri)
	}

	if q.Where, err = d.readPatterns(spWhere); err != nil {
		return nil, err
	}
	d.compileModifiers(q)
	return q, nil
}

// Compile reads the ASK's graph representation back into a compiled query.
func (a *Ask) Compile() (*sparql.Query, error) {
	q := &sparql.Query{Form: sparql.FormAsk}

	var err error
	if q.Where, err = a.readPatterns(spWhere); err != nil {
		return nil, err
	}
	a.compileModifiers(q)
	return q, nil
}

func (n node) compileModifiers(q *sparql.Query) {
	if v, ok := n.intProperty(spLimit); ok {
		q.Limit = &v
	}
	if v, ok := n.intProperty(spOffset); ok {
		q.Offset = &v
	}
}

// readPatterns decodes the basic graph pattern stored under predicate.
// A missing edge yields an empty pattern list.
func (n node) readPatterns(predicate rdf.Term) ([]sparql.TriplePattern, error) {
	head, ok := n.graph.Object(n.term, predicate)
	if !ok {
		return nil, nil
	}
	items, err := n.graph.List(head)
	if err != nil {
		return nil, err
	}

	patterns := make([]sparql.TriplePattern, 0, len(items))
	for _, item := range items {
		s, err := n.readPatternTerm(item, spSubject)
		if err != nil {
			return nil, err
		}
		p, err := n.readPatternTerm(item, spPredicate)
		if err != nil {
			return nil, err
		}
		o, err := n.readPatternTerm(item, spObject)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, sparql.TriplePattern{Subject: s, Predicate: p, Object: o})
	}
	return patterns, nil
}

func (n node) readPatternTerm(pattern, position rdf.Term) (sparql.PatternTerm, error) {
	obj, ok := n.graph.Object(pattern, position)
	if !ok {
		return sparql.PatternTerm{}, errors.WrapInvalid(errors.ErrInvalidQuery, "spin", "readPatternTerm",
			"triple pattern is missing a position")
	}
	if isVariableNode(n.graph, obj) {
		v := Variable{node{graph: n.graph, term: obj}}
		name, ok := v.Name()
		if !ok {
			return sparql.PatternTerm{}, errors.WrapInvalid(errors.ErrInvalidQuery, "spin", "readPatternTerm",
				"pattern variable has no name")
		}
		return sparql.Var(name), nil
	}
	return sparql.Bound(obj), nil
}
