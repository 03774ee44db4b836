package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Category is either a free-form label ("白酒, 消费") or an ordered list of tags.
// Both shapes occur in backend and fixture data; JSON keeps whichever form it was given.
type Category struct {
	text string
	tags []string
}

// CategoryText builds a plain-string category.
func CategoryText(s string) Category {
	return Category{text: strings.TrimSpace(s)}
}

// CategoryTags builds a list category.
func CategoryTags(tags ...string) Category {
	if tags == nil {
		tags = []string{}
	}
	return Category{tags: append([]string(nil), tags...)}
}

// IsZero reports whether the category carries no information.
func (c Category) IsZero() bool {
	return c.text == "" && len(c.tags) == 0
}

// IsList reports whether the category was given as a list.
func (c Category) IsList() bool {
	return c.tags != nil
}

// Tags returns the category as tags, splitting the string form.
func (c Category) Tags() []string {
	if c.IsList() {
		return append([]string(nil), c.tags...)
	}
	return SplitCategory(c.text)
}

// String renders the category as a single label.
func (c Category) String() string {
	if c.IsList() {
		return JoinCategory(c.tags)
	}
	return c.text
}

func (c Category) MarshalJSON() ([]byte, error) {
	if c.IsList() {
		return json.Marshal(c.tags)
	}
	return json.Marshal(c.text)
}

func (c *Category) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*c = Category{}
	case b[0] == '[':
		var tags []string
		if err := json.Unmarshal(b, &tags); err != nil {
			return &DataShapeError{Field: "category", Err: err}
		}
		*c = CategoryTags(tags...)
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return &DataShapeError{Field: "category", Err: err}
		}
		*c = CategoryText(s)
	default:
		return &DataShapeError{Field: "category", Err: fmt.Errorf("unsupported value %s", b)}
	}
	return nil
}

// SplitCategory splits on ASCII and full-width commas, trims every token and
// drops empty ones. Duplicates and order are preserved.
func SplitCategory(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '，' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// JoinCategory is the inverse of SplitCategory for tags without separators.
func JoinCategory(tags []string) string {
	return strings.Join(tags, ", ")
}
