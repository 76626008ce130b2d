package epistemic

import (
	"fmt"
	"strings"
)

// PropositionKind distinguishes the two attribute kinds a proposition can
// test: membership in a world's move set, or equality of a named scalar
// attribute.
type PropositionKind int

const (
	KindTag PropositionKind = iota
	KindScalar
)

// Proposition is a predicate over a single world's attributes. The textual
// form ("has_tag:Earthquake", "not_has_scalar:item:Leftovers") is parsed
// once at the boundary; evaluation works on this struct and never re-splits
// strings.
type Proposition struct {
	Kind    PropositionKind
	Negated bool
	Attr    string // scalar attribute name; empty for tag propositions
	Value   string
}

// TagProposition builds a positive move-set membership test.
func TagProposition(value string) Proposition {
	return Proposition{Kind: KindTag, Value: value}
}

// ScalarProposition builds a positive scalar-equality test for the named
// attribute (e.g. "item", "ability").
func ScalarProposition(attr, value string) Proposition {
	return Proposition{Kind: KindScalar, Attr: attr, Value: value}
}

// Negate returns the proposition with its polarity flipped.
func (p Proposition) Negate() Proposition {
	p.Negated = !p.Negated
	return p
}

// String re-emits the textual wire form.
func (p Proposition) String() string {
	var b strings.Builder
	if p.Negated {
		b.WriteString("not_")
	}
	switch p.Kind {
	case KindTag:
		b.WriteString("has_tag:")
	case KindScalar:
		b.WriteString("has_scalar:")
		b.WriteString(p.Attr)
		b.WriteString(":")
	}
	b.WriteString(p.Value)
	return b.String()
}

// ParseProposition parses the textual encoding:
//
//	has_tag:<value>
//	not_has_tag:<value>
//	has_scalar:<attr>:<value>
//	not_has_scalar:<attr>:<value>
//
// Any other prefix fails with MalformedPropositionError.
func ParseProposition(s string) (Proposition, error) {
	rest := s
	var negated bool
	if strings.HasPrefix(rest, "not_") {
		negated = true
		rest = strings.TrimPrefix(rest, "not_")
	}

	switch {
	case strings.HasPrefix(rest, "has_tag:"):
		value := strings.TrimPrefix(rest, "has_tag:")
		if value == "" {
			return Proposition{}, &MalformedPropositionError{Input: s}
		}
		return Proposition{Kind: KindTag, Negated: negated, Value: value}, nil

	case strings.HasPrefix(rest, "has_scalar:"):
		payload := strings.TrimPrefix(rest, "has_scalar:")
		attr, value, ok := strings.Cut(payload, ":")
		if !ok || attr == "" || value == "" {
			return Proposition{}, &MalformedPropositionError{Input: s}
		}
		return Proposition{Kind: KindScalar, Negated: negated, Attr: attr, Value: value}, nil

	default:
		return Proposition{}, &MalformedPropositionError{Input: s}
	}
}

// MustParseProposition is ParseProposition for compile-time-constant
// strings; it panics on a malformed input.
func MustParseProposition(s string) Proposition {
	p, err := ParseProposition(s)
	if err != nil {
		panic(fmt.Sprintf("epistemic: %v", err))
	}
	return p
}
