package sparql

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/c360/semquery/errors"
	"github.com/c360/semquery/rdf"
	"github.com/c360/semquery/vocabulary"
)

// Parse compiles a query string into a Query. Parse failures return a
// classified invalid error wrapping errors.ErrQueryParse; they are never
// swallowed or downgraded.
func Parse(queryString string) (*Query, error) {
	p := &parser{}
	if err := p.tokenize(queryString); err != nil {
		return nil, parseError(err.Error())
	}

	q, err := p.parseQuery()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, parseError(fmt.Sprintf("unexpected token %q after query", p.peek().text))
	}
	return q, nil
}

func parseError(msg string) error {
	return errors.WrapInvalid(errors.ErrQueryParse, "sparql", "Parse", msg)
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokWord           // keywords, prefixed names, 'a'
	tokVar            // ?name or $name
	tokIRI            // <...>
	tokString         // "..."
	tokNumber         // integer or decimal
	tokPunct          // { } ( ) .
)

type token struct {
	kind tokenKind
	text string
}

type parser struct {
	tokens   []token
	pos      int
	prefixes map[string]string
}

func (p *parser) tokenize(input string) error {
	runes := []rune(input)
	i := 0
	n := len(runes)

	for i < n {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '#':
			for i < n && runes[i] != '\n' {
				i++
			}
		case r == '<':
			j := i + 1
			for j < n && runes[j] != '>' {
				j++
			}
			if j == n {
				return fmt.Errorf("unterminated IRI at offset %d", i)
			}
			p.tokens = append(p.tokens, token{tokIRI, string(runes[i+1 : j])})
			i = j + 1
		case r == '?' || r == '$':
			j := i + 1
			for j < n && isNameRune(runes[j]) {
				j++
			}
			if j == i+1 {
				return fmt.Errorf("empty variable name at offset %d", i)
			}
			p.tokens = append(p.tokens, token{tokVar, string(runes[i+1 : j])})
			i = j
		case r == '"':
			j := i + 1
			var sb strings.Builder
			for j < n && runes[j] != '"' {
				if runes[j] == '\\' && j+1 < n {
					j++
					switch runes[j] {
					case 'n':
						sb.WriteRune('\n')
					case 't':
						sb.WriteRune('\t')
					case 'r':
						sb.WriteRune('\r')
					default:
						sb.WriteRune(runes[j])
					}
				} else {
					sb.WriteRune(runes[j])
				}
				j++
			}
			if j == n {
				return fmt.Errorf("unterminated string literal at offset %d", i)
			}
			p.tokens = append(p.tokens, token{tokString, sb.String()})
			i = j + 1
		case r == '{' || r == '}' || r == '(' || r == ')':
			p.tokens = append(p.tokens, token{tokPunct, string(r)})
			i++
		case r == '.':
			p.tokens = append(p.tokens, token{tokPunct, "."})
			i++
		case r == '*':
			p.tokens = append(p.tokens, token{tokWord, "*"})
			i++
		case unicode.IsDigit(r) || (r == '-' && i+1 < n && unicode.IsDigit(runes[i+1])):
			j := i + 1
			for j < n && (unicode.IsDigit(runes[j]) || runes[j] == '.') {
				j++
			}
			// A trailing dot is a pattern separator, not part of the number
			if runes[j-1] == '.' {
				j--
			}
			p.tokens = append(p.tokens, token{tokNumber, string(runes[i:j])})
			i = j
		case isNameStartRune(r):
			j := i
			for j < n && (isNameRune(runes[j]) || runes[j] == ':') {
				j++
			}
			p.tokens = append(p.tokens, token{tokWord, string(runes[i:j])})
			i = j
		default:
			return fmt.Errorf("unexpected character %q at offset %d", r, i)
		}
	}

	p.tokens = append(p.tokens, token{tokEOF, ""})
	return nil
}

func isNameStartRune(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isNameRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-'
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) atEnd() bool { return p.peek().kind == tokEOF }

func (p *parser) acceptKeyword(kw string) bool {
	t := p.peek()
	if t.kind == tokWord && strings.EqualFold(t.text, kw) {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expectPunct(s string) error {
	t := p.next()
	if t.kind != tokPunct || t.text != s {
		return parseError(fmt.Sprintf("expected %q, got %q", s, t.text))
	}
	return nil
}

func (p *parser) parseQuery() (*Query, error) {
	p.prefixes = map[string]string{}

	// Prologue
	for p.acceptKeyword("PREFIX") {
		name := p.next()
		if name.kind != tokWord || !strings.HasSuffix(name.text, ":") {
			return nil, parseError(fmt.Sprintf("expected prefix name, got %q", name.text))
		}
		iri := p.next()
		if iri.kind != tokIRI {
			return nil, parseError(fmt.Sprintf("expected prefix IRI, got %q", iri.text))
		}
		p.prefixes[strings.TrimSuffix(name.text, ":")] = iri.text
	}

	switch {
	case p.acceptKeyword("SELECT"):
		return p.parseSelect()
	case p.acceptKeyword("CONSTRUCT"):
		return p.parseConstruct()
	case p.acceptKeyword("DESCRIBE"):
		return p.parseDescribe()
	case p.acceptKeyword("ASK"):
		return p.parseAsk()
	default:
		return nil, parseError(fmt.Sprintf("expected query form, got %q", p.peek().text))
	}
}

func (p *parser) parseSelect() (*Query, error) {
	q := &Query{Form: FormSelect}

	if p.acceptKeyword("DISTINCT") {
		q.Distinct = true
	} else if p.acceptKeyword("REDUCED") {
		q.Reduced = true
	}

	if p.acceptKeyword("*") {
		q.Star = true
	} else {
		for p.peek().kind == tokVar {
			q.Variables = append(q.Variables, p.next().text)
		}
		if len(q.Variables) == 0 {
			return nil, parseError("SELECT requires a projection (* or variables)")
		}
	}

	p.acceptKeyword("WHERE") // optional keyword
	where, err := p.parsePatternBlock()
	if err != nil {
		return nil, err
	}
	q.Where = where

	return q, p.parseModifiers(q)
}

func (p *parser) parseConstruct() (*Query, error) {
	q := &Query{Form: FormConstruct}

	template, err := p.parsePatternBlock()
	if err != nil {
		return nil, err
	}
	q.Template = template

	if !p.acceptKeyword("WHERE") {
		return nil, parseError("CONSTRUCT requires a WHERE clause")
	}
	where, err := p.parsePatternBlock()
	if err != nil {
		return nil, err
	}
	q.Where = where

	return q, p.parseModifiers(q)
}

func (p *parser) parseDescribe() (*Query, error) {
	q := &Query{Form: FormDescribe}

	for {
		t := p.peek()
		if t.kind == tokIRI {
			q.DescribeNodes = append(q.DescribeNodes, rdf.NewIRI(p.next().text))
			continue
		}
		if t.kind == tokVar {
			q.DescribeVars = append(q.DescribeVars, p.next().text)
			continue
		}
		break
	}
	if len(q.DescribeNodes) == 0 && len(q.DescribeVars) == 0 {
		return nil, parseError("DESCRIBE requires at least one IRI or variable")
	}

	if p.acceptKeyword("WHERE") {
		where, err := p.parsePatternBlock()
		if err != nil {
			return nil, err
		}
		q.Where = where
	}

	return q, p.parseModifiers(q)
}

func (p *parser) parseAsk() (*Query, error) {
	q := &Query{Form: FormAsk}

	p.acceptKeyword("WHERE")
	where, err := p.parsePatternBlock()
	if err != nil {
		return nil, err
	}
	q.Where = where

	return q, p.parseModifiers(q)
}

func (p *parser) parsePatternBlock() ([]TriplePattern, error) {
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}

	var patterns []TriplePattern
	for {
		t := p.peek()
		if t.kind == tokPunct && t.text == "}" {
			p.pos++
			return patterns, nil
		}
		if t.kind == tokEOF {
			return nil, parseError("unterminated pattern block")
		}

		s, err := p.parsePatternTerm()
		if err != nil {
			return nil, err
		}
		pred, err := p.parsePatternTerm()
		if err != nil {
			return nil, err
		}
		o, err := p.parsePatternTerm()
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, TriplePattern{Subject: s, Predicate: pred, Object: o})

		// Pattern separator is optional before the closing brace
		if p.peek().kind == tokPunct && p.peek().text == "." {
			p.pos++
		}
	}
}

func (p *parser) parsePatternTerm() (PatternTerm, error) {
	t := p.next()
	switch t.kind {
	case tokVar:
		return Var(t.text), nil
	case tokIRI:
		return Bound(rdf.NewIRI(t.text)), nil
	case tokString:
		return Bound(rdf.StringLiteral(t.text)), nil
	case tokNumber:
		if strings.Contains(t.text, ".") {
			f, err := strconv.ParseFloat(t.text, 64)
			if err != nil {
				return PatternTerm{}, parseError(fmt.Sprintf("invalid number %q", t.text))
			}
			return Bound(rdf.DoubleLiteral(f)), nil
		}
		v, err := strconv.ParseInt(t.text, 10, 64)
		if err != nil {
			return PatternTerm{}, parseError(fmt.Sprintf("invalid number %q", t.text))
		}
		return Bound(rdf.IntegerLiteral(v)), nil
	case tokWord:
		if t.text == "a" {
			return Bound(rdf.NewIRI(vocabulary.RDFType)), nil
		}
		if strings.EqualFold(t.text, "true") || strings.EqualFold(t.text, "false") {
			return Bound(rdf.BooleanLiteral(strings.EqualFold(t.text, "true"))), nil
		}
		if iri, ok := p.expandPrefixed(t.text); ok {
			return Bound(rdf.NewIRI(iri)), nil
		}
		return PatternTerm{}, parseError(fmt.Sprintf("unexpected term %q in pattern", t.text))
	default:
		return PatternTerm{}, parseError(fmt.Sprintf("unexpected token %q in pattern", t.text))
	}
}

// expandPrefixed resolves a prefixed name like foaf:name against the prologue.
func (p *parser) expandPrefixed(word string) (string, bool) {
	idx := strings.Index(word, ":")
	if idx < 0 {
		return "", false
	}
	base, ok := p.prefixes[word[:idx]]
	if !ok {
		return "", false
	}
	return base + word[idx+1:], true
}

func (p *parser) parseModifiers(q *Query) error {
	for {
		switch {
		case p.acceptKeyword("ORDER"):
			if !p.acceptKeyword("BY") {
				return parseError("ORDER must be followed by BY")
			}
			if err := p.parseOrderConditions(q); err != nil {
				return err
			}
		case p.acceptKeyword("LIMIT"):
			v, err := p.parseNonNegativeInt("LIMIT")
			if err != nil {
				return err
			}
			q.Limit = &v
		case p.acceptKeyword("OFFSET"):
			v, err := p.parseNonNegativeInt("OFFSET")
			if err != nil {
				return err
			}
			q.Offset = &v
		default:
			return nil
		}
	}
}

func (p *parser) parseOrderConditions(q *Query) error {
	parsed := false
	for {
		switch {
		case p.acceptKeyword("ASC") || p.acceptKeyword("DESC"):
			desc := strings.EqualFold(p.tokens[p.pos-1].text, "DESC")
			if err := p.expectPunct("("); err != nil {
				return err
			}
			v := p.next()
			if v.kind != tokVar {
				return parseError(fmt.Sprintf("expected variable in order condition, got %q", v.text))
			}
			if err := p.expectPunct(")"); err != nil {
				return err
			}
			q.OrderBy = append(q.OrderBy, OrderCondition{Variable: v.text, Descending: desc})
			parsed = true
		case p.peek().kind == tokVar:
			q.OrderBy = append(q.OrderBy, OrderCondition{Variable: p.next().text})
			parsed = true
		default:
			if !parsed {
				return parseError("ORDER BY requires at least one condition")
			}
			return nil
		}
	}
}

func (p *parser) parseNonNegativeInt(clause string) (int64, error) {
	t := p.next()
	if t.kind != tokNumber {
		return 0, parseError(fmt.Sprintf("%s requires an integer, got %q", clause, t.text))
	}
	v, err := strconv.ParseInt(t.text, 10, 64)
	if err != nil || v < 0 {
		return 0, parseError(fmt.Sprintf("%s requires a non-negative integer, got %q", clause, t.text))
	}
	return v, nil
}
