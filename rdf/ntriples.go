package rdf

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/c360/semquery/errors"
)

// ParseNTriples reads a graph from N-Triples text. Blank lines and
// # comments are skipped. Language tags on literals are accepted and
// discarded; the lexical form is kept as a plain string literal.
func ParseNTriples(r io.Reader) (*Graph, error) {
	g := NewGraph()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		t, err := parseTripleLine(line)
		if err != nil {
			return nil, errors.WrapInvalid(err, "Graph", "ParseNTriples",
				fmt.Sprintf("line %d", lineNo))
		}
		g.AddTriple(t)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "Graph", "ParseNTriples", "read")
	}
	return g, nil
}

func parseTripleLine(line string) (Triple, error) {
	p := &ntParser{input: line}

	subject, err := p.term()
	if err != nil {
		return Triple{}, err
	}
	predicate, err := p.term()
	if err != nil {
		return Triple{}, err
	}
	object, err := p.term()
	if err != nil {
		return Triple{}, err
	}

	p.skipSpace()
	if !strings.HasPrefix(p.rest(), ".") {
		return Triple{}, fmt.Errorf("missing terminating '.'")
	}
	return Triple{Subject: subject, Predicate: predicate, Object: object}, nil
}

type ntParser struct {
	input string
	pos   int
}

func (p *ntParser) rest() string { return p.input[p.pos:] }

func (p *ntParser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *ntParser) term() (Term, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return nil, fmt.Errorf("unexpected end of line")
	}

	switch p.input[p.pos] {
	case '<':
		return p.iri()
	case '_':
		return p.blankNode()
	case '"':
		return p.literal()
	default:
		return nil, fmt.Errorf("unexpected character %q", p.input[p.pos])
	}
}

func (p *ntParser) iri() (Term, error) {
	end := strings.IndexByte(p.rest(), '>')
	if end < 0 {
		return nil, fmt.Errorf("unterminated IRI")
	}
	value := p.rest()[1:end]
	p.pos += end + 1
	return NewIRI(value), nil
}

func (p *ntParser) blankNode() (Term, error) {
	if !strings.HasPrefix(p.rest(), "_:") {
		return nil, fmt.Errorf("malformed blank node label")
	}
	p.pos += 2
	start := p.pos
	for p.pos < len(p.input) && p.input[p.pos] != ' ' && p.input[p.pos] != '\t' {
		p.pos++
	}
	if p.pos == start {
		return nil, fmt.Errorf("empty blank node label")
	}
	return BlankNode{ID: p.input[start:p.pos]}, nil
}

func (p *ntParser) literal() (Term, error) {
	p.pos++ // opening quote
	var sb strings.Builder
	for {
		if p.pos >= len(p.input) {
			return nil, fmt.Errorf("unterminated literal")
		}
		c := p.input[p.pos]
		if c == '"' {
			p.pos++
			break
		}
		if c == '\\' {
			if p.pos+1 >= len(p.input) {
				return nil, fmt.Errorf("dangling escape in literal")
			}
			p.pos++
			switch p.input[p.pos] {
			case '\\':
				sb.WriteByte('\\')
			case '"':
				sb.WriteByte('"')
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			default:
				return nil, fmt.Errorf("unknown escape \\%c", p.input[p.pos])
			}
			p.pos++
			continue
		}
		sb.WriteByte(c)
		p.pos++
	}

	// Optional datatype or language tag.
	if strings.HasPrefix(p.rest(), "^^<") {
		p.pos += 2
		dt, err := p.iri()
		if err != nil {
			return nil, err
		}
		return Literal{Lexical: sb.String(), Datatype: dt.(IRI).Value}, nil
	}
	if strings.HasPrefix(p.rest(), "@") {
		p.pos++
		for p.pos < len(p.input) && p.input[p.pos] != ' ' && p.input[p.pos] != '\t' {
			p.pos++
		}
	}
	return StringLiteral(sb.String()), nil
}
