package event

import (
	"errors"
	"fmt"
)

// ErrInvalidCategory is returned for any category token outside the enumeration.
var ErrInvalidCategory = errors.New("invalid category")

// Category is one of Work, Personal or Entertainment.
// The zero value is not a valid category.
type Category struct {
	tag string
}

var (
	Work          = Category{tag: "work"}
	Personal      = Category{tag: "personal"}
	Entertainment = Category{tag: "entertainment"}
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{Work, Personal, Entertainment}
}

// ParseCategory maps a wire token to its Category.
// Tokens are matched exactly; nothing is coerced.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if c.tag == s {
			return c, nil
		}
	}
	return Category{}, fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// String returns the wire token, or "" for the zero value.
func (c Category) String() string {
	return c.tag
}

// Valid reports whether c is one of the enumerated categories.
func (c Category) Valid() bool {
	return c.tag != ""
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: empty", ErrInvalidCategory)
	}
	return []byte(c.tag), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
