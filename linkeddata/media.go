package linkeddata

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/c360/semquery/errors"
	"github.com/c360/semquery/rdf"
	"github.com/c360/semquery/vocabulary"
)

// Supported response media types.
const (
	MediaTypeRDFXML   = "application/rdf+xml"
	MediaTypeTurtle   = "text/turtle"
	MediaTypeNTriples = "application/n-triples"
)

// DefaultMediaType is used when the caller expresses no preference.
const DefaultMediaType = MediaTypeRDFXML

// SupportedMediaTypes returns the media types a resource can serialize to,
// in preference order.
func SupportedMediaTypes() []string {
	return []string{MediaTypeRDFXML, MediaTypeTurtle, MediaTypeNTriples}
}

// MatchMediaType resolves a requested media type against the supported set.
// Empty and */* resolve to the default; media type parameters are ignored.
func MatchMediaType(requested string) (string, bool) {
	requested = strings.TrimSpace(requested)
	if idx := strings.IndexByte(requested, ';'); idx >= 0 {
		requested = strings.TrimSpace(requested[:idx])
	}
	if requested == "" || requested == "*/*" {
		return DefaultMediaType, true
	}
	for _, mt := range SupportedMediaTypes() {
		if strings.EqualFold(requested, mt) {
			return mt, true
		}
	}
	return "", false
}

// writeGraph serializes g in the given media type. The N-Triples form is
// also valid Turtle, so both use the line-based serializer.
func writeGraph(w io.Writer, g *rdf.Graph, mediaType string) error {
	switch mediaType {
	case MediaTypeRDFXML:
		return writeRDFXML(w, g)
	case MediaTypeTurtle, MediaTypeNTriples:
		return g.WriteNTriples(w)
	default:
		return errors.WrapInvalid(errors.ErrUnsupportedQuery, "Response", "Write",
			fmt.Sprintf("media type %q", mediaType))
	}
}

// writeRDFXML emits a flat rdf:Description-per-subject serialization.
// Predicate IRIs are split into namespace and local name at the last
// '#' or '/'.
func writeRDFXML(w io.Writer, g *rdf.Graph) error {
	bySubject := map[rdf.Term][]rdf.Triple{}
	for _, t := range g.Triples() {
		bySubject[t.Subject] = append(bySubject[t.Subject], t)
	}

	subjects := make([]rdf.Term, 0, len(bySubject))
	for s := range bySubject {
		subjects = append(subjects, s)
	}
	sort.Slice(subjects, func(i, j int) bool {
		return subjects[i].String() < subjects[j].String()
	})

	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<rdf:RDF xmlns:rdf="` + vocabulary.RDFBase + "\">\n")

	for _, subject := range subjects {
		switch s := subject.(type) {
		case rdf.IRI:
			sb.WriteString(`  <rdf:Description rdf:about="` + escapeXML(s.Value) + "\">\n")
		case rdf.BlankNode:
			sb.WriteString(`  <rdf:Description rdf:nodeID="` + escapeXML(s.ID) + "\">\n")
		default:
			continue
		}

		triples := bySubject[subject]
		sort.Slice(triples, func(i, j int) bool {
			return triples[i].String() < triples[j].String()
		})
		for _, t := range triples {
			pred, ok := t.Predicate.(rdf.IRI)
			if !ok {
				continue
			}
			if err := writeProperty(&sb, pred, t.Object); err != nil {
				return err
			}
		}
		sb.WriteString("  </rdf:Description>\n")
	}
	sb.WriteString("</rdf:RDF>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeProperty(sb *strings.Builder, predicate rdf.IRI, object rdf.Term) error {
	ns, local, err := splitIRI(predicate.Value)
	if err != nil {
		return err
	}
	open := local + ` xmlns="` + escapeXML(ns) + `"`

	switch o := object.(type) {
	case rdf.IRI:
		sb.WriteString("    <" + open + ` rdf:resource="` + escapeXML(o.Value) + "\"/>\n")
	case rdf.BlankNode:
		sb.WriteString("    <" + open + ` rdf:nodeID="` + escapeXML(o.ID) + "\"/>\n")
	case rdf.Literal:
		if o.Datatype != "" && o.Datatype != vocabulary.XSDString {
			open += ` rdf:datatype="` + escapeXML(o.Datatype) + `"`
		}
		sb.WriteString("    <" + open + ">" + escapeXML(o.Lexical) + "</" + local + ">\n")
	}
	return nil
}

// splitIRI divides a predicate IRI into namespace and XML-safe local name.
func splitIRI(iri string) (ns, local string, err error) {
	idx := strings.LastIndexAny(iri, "#/")
	if idx < 0 || idx == len(iri)-1 {
		return "", "", errors.WrapInvalid(errors.ErrInvalidQuery, "Response", "Write",
			fmt.Sprintf("predicate IRI %q has no local name", iri))
	}
	return iri[:idx+1], iri[idx+1:], nil
}

func escapeXML(s string) string {
	var sb strings.Builder
	xml.EscapeText(&sb, []byte(s))
	return sb.String()
}
