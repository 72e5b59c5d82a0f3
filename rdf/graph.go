package rdf

import (
	"hash/fnv"
	"io"
	"sort"
	"sync"
)

// Triple is a single subject-predicate-object statement.
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// String returns the N-Triples serialization of the triple.
func (t Triple) String() string {
	return t.Subject.String() + " " + t.Predicate.String() + " " + t.Object.String() + " ."
}

// Graph is an in-memory set of triples. The zero value is not usable;
// construct with NewGraph. Safe for concurrent reads; writes take the
// graph lock.
type Graph struct {
	mu      sync.RWMutex
	triples map[Triple]struct{}
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{triples: make(map[Triple]struct{})}
}

// Add inserts a triple. Duplicate inserts are no-ops (set semantics).
func (g *Graph) Add(subject, predicate, object Term) {
	g.mu.Lock()
	g.triples[Triple{Subject: subject, Predicate: predicate, Object: object}] = struct{}{}
	g.mu.Unlock()
}

// AddTriple inserts a triple value.
func (g *Graph) AddTriple(t Triple) {
	g.mu.Lock()
	g.triples[t] = struct{}{}
	g.mu.Unlock()
}

// Remove deletes a triple. Returns true if it was present.
func (g *Graph) Remove(t Triple) bool {
	g.mu.Lock()
	_, ok := g.triples[t]
	delete(g.triples, t)
	g.mu.Unlock()
	return ok
}

// RemoveAll deletes every triple with the given subject and predicate.
// Returns the number of triples removed.
func (g *Graph) RemoveAll(subject, predicate Term) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	removed := 0
	for t := range g.triples {
		if t.Subject == subject && t.Predicate == predicate {
			delete(g.triples, t)
			removed++
		}
	}
	return removed
}

// Has reports whether the triple is in the graph.
func (g *Graph) Has(t Triple) bool {
	g.mu.RLock()
	_, ok := g.triples[t]
	g.mu.RUnlock()
	return ok
}

// Len returns the number of triples in the graph.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.triples)
}

// Triples returns a snapshot of all triples. Order is unspecified.
func (g *Graph) Triples() []Triple {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Triple, 0, len(g.triples))
	for t := range g.triples {
		out = append(out, t)
	}
	return out
}

// Object returns one object of (subject, predicate), if any exists.
// Predicates with multiple objects return an arbitrary one; use Objects
// when the caller needs all of them.
func (g *Graph) Object(subject, predicate Term) (Term, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for t := range g.triples {
		if t.Subject == subject && t.Predicate == predicate {
			return t.Object, true
		}
	}
	return nil, false
}

// Objects returns all objects of (subject, predicate).
func (g *Graph) Objects(subject, predicate Term) []Term {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []Term
	for t := range g.triples {
		if t.Subject == subject && t.Predicate == predicate {
			out = append(out, t.Object)
		}
	}
	return out
}

// Subjects returns all subjects of (predicate, object).
func (g *Graph) Subjects(predicate, object Term) []Term {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []Term
	for t := range g.triples {
		if t.Predicate == predicate && t.Object == object {
			out = append(out, t.Subject)
		}
	}
	return out
}

// SubjectTriples returns all triples whose subject is the given node.
func (g *Graph) SubjectTriples(subject Term) []Triple {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []Triple
	for t := range g.triples {
		if t.Subject == subject {
			out = append(out, t)
		}
	}
	return out
}

// NewResource creates a fresh blank node. The node belongs to no graph until
// a triple mentioning it is added; the handle is just an identifier.
func (g *Graph) NewResource() BlankNode {
	return NewBlankNode()
}

// Merge adds every triple of other into g.
func (g *Graph) Merge(other *Graph) {
	if other == nil {
		return
	}
	for _, t := range other.Triples() {
		g.AddTriple(t)
	}
}

// Describe returns the concise bounded description of node: every triple whose
// subject is the node, following blank-node objects recursively.
func (g *Graph) Describe(node Term) *Graph {
	out := NewGraph()
	g.describeInto(node, out, map[Term]bool{})
	return out
}

func (g *Graph) describeInto(node Term, out *Graph, visited map[Term]bool) {
	if visited[node] {
		return
	}
	visited[node] = true

	for _, t := range g.SubjectTriples(node) {
		out.AddTriple(t)
		if b, ok := t.Object.(BlankNode); ok {
			g.describeInto(b, out, visited)
		}
	}
}

// Hash computes an order-independent FNV-64a fingerprint of the graph content.
// Graphs with equal triple sets hash equal regardless of insertion order.
func (g *Graph) Hash() uint64 {
	lines := g.sortedLines()

	h := fnv.New64a()
	for _, line := range lines {
		h.Write([]byte(line))
		h.Write([]byte{'\n'})
	}
	return h.Sum64()
}

// WriteNTriples serializes the graph in N-Triples form, sorted for
// deterministic output.
func (g *Graph) WriteNTriples(w io.Writer) error {
	for _, line := range g.sortedLines() {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) sortedLines() []string {
	triples := g.Triples()
	lines := make([]string, len(triples))
	for i, t := range triples {
		lines[i] = t.String()
	}
	sort.Strings(lines)
	return lines
}
