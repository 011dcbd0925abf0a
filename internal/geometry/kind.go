package geometry

import (
	"errors"
	"fmt"
)

// ErrUnsupportedKind is returned for a shape kind outside the closed set.
var ErrUnsupportedKind = errors.New("unsupported shape kind")

// Kind identifies a shape category. The zero value is not a valid kind.
type Kind int

const (
	KindUnknown Kind = iota
	Rectangle
	Square
	Ellipse
	Circle
	Line
	Arrow
	Text
)

var kindNames = map[Kind]string{
	Rectangle: "rectangle",
	Square:    "square",
	Ellipse:   "ellipse",
	Circle:    "circle",
	Line:      "line",
	Arrow:     "arrow",
	Text:      "text",
}

// Kinds lists every valid kind.
var Kinds = []Kind{Rectangle, Square, Ellipse, Circle, Line, Arrow, Text}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// Canonical collapses the symmetric variants: square becomes rectangle and
// circle becomes ellipse. Every other kind maps to itself.
func (k Kind) Canonical() Kind {
	switch k {
	case Square:
		return Rectangle
	case Circle:
		return Ellipse
	}
	return k
}

// Symmetric swaps a kind with its symmetric variant (rectangle and square,
// ellipse and circle). Kinds without a variant are returned unchanged.
func (k Kind) Symmetric() Kind {
	switch k {
	case Rectangle:
		return Square
	case Square:
		return Rectangle
	case Ellipse:
		return Circle
	case Circle:
		return Ellipse
	}
	return k
}

// ParseKind resolves a kind from its name.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return KindUnknown, fmt.Errorf("%w: %q", ErrUnsupportedKind, name)
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
