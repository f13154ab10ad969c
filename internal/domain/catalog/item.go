package catalog

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/modmatch/internal/domain"
)

// Standard catalog field names.
const (
	FieldName    = "name"
	FieldContent = "content"
	FieldSkills  = "skills"
	FieldChair   = "chair"
)

// DefaultLayout is the field order of an item's composite text.
// The name appears twice so it carries double weight.
var DefaultLayout = []string{FieldName, FieldName, FieldContent, FieldSkills, FieldChair}

// Item is a catalog entry (course module), immutable once built.
type Item struct {
	id     string
	fields map[string]string
}

// New validates and creates an Item.
func New(id string, fields map[string]string) (Item, error) {
	if strings.TrimSpace(id) == "" {
		return Item{}, fmt.Errorf("%w: catalog item id is required", domain.ErrInvalidRequest)
	}
	cp := make(map[string]string, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	return Item{id: id, fields: cp}, nil
}

// ID returns the item identifier.
func (it *Item) ID() string { return it.id }

// Field returns the named field or "" when absent.
func (it *Item) Field(name string) string { return it.fields[name] }

// Fields returns a copy of all fields.
func (it *Item) Fields() map[string]string {
	cp := make(map[string]string, len(it.fields))
	for k, v := range it.fields {
		cp[k] = v
	}
	return cp
}

// MapFields returns a copy of the item with fn applied to every non-empty field.
func (it *Item) MapFields(fn func(string) string) Item {
	cp := make(map[string]string, len(it.fields))
	for k, v := range it.fields {
		if v != "" {
			v = fn(v)
		}
		cp[k] = v
	}
	return Item{id: it.id, fields: cp}
}

// Composite joins the fields named in layout with single spaces, skipping empty ones.
// A nil layout uses DefaultLayout.
func (it *Item) Composite(layout []string) string {
	if layout == nil {
		layout = DefaultLayout
	}
	parts := make([]string, 0, len(layout))
	for _, name := range layout {
		if v := strings.TrimSpace(it.fields[name]); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}
