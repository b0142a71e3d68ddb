package cell

import "fmt"

// Variants is an ordered list of matchers tried in sequence; the first one
// that accepts the text decides its value. It is named after its first
// variant so "subject or blank" still reads as a subject slot.
type Variants []Matcher

// OneOf builds a Variants matcher. It panics when called without variants,
// which is a programming error in a layout definition.
func OneOf(variants ...Matcher) Variants {
	if len(variants) == 0 {
		panic("cell: OneOf requires at least one variant")
	}
	return Variants(append([]Matcher(nil), variants...))
}

func (v Variants) Name() Category { return v[0].Name() }

func (v Variants) Match(text string) bool {
	for _, m := range v {
		if m.Match(text) {
			return true
		}
	}
	return false
}

func (v Variants) Interpret(text string) (Value, error) {
	for _, m := range v {
		if value, err := m.Interpret(text); err == nil {
			return value, nil
		}
	}
	return nil, fmt.Errorf("%s %q: none of %d variants: %w", v.Name(), text, len(v), ErrNoMatch)
}
