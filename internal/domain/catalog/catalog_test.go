package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/modmatch/internal/domain"
)

func mustItem(t *testing.T, id string, fields map[string]string) Item {
	t.Helper()
	it, err := New(id, fields)
	require.NoError(t, err)
	return it
}

func TestNew_RequiresID(t *testing.T) {
	_, err := New("  ", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestNew_CopiesFields(t *testing.T) {
	fields := map[string]string{FieldName: "Databases"}
	it := mustItem(t, "DB1", fields)
	fields[FieldName] = "changed"

	assert.Equal(t, "Databases", it.Field(FieldName), "item should not alias caller map")
}

func TestComposite(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		layout []string
		want   string
	}{
		{
			name: "name weighted twice",
			fields: map[string]string{
				FieldName:    "Machine Learning",
				FieldContent: "regression",
				FieldSkills:  "python",
				FieldChair:   "",
			},
			want: "Machine Learning Machine Learning regression python",
		},
		{
			name:   "custom layout",
			fields: map[string]string{FieldName: "a", FieldSkills: "b"},
			layout: []string{FieldSkills, FieldName},
			want:   "b a",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := mustItem(t, "X", tt.fields)
			assert.Equal(t, tt.want, it.Composite(tt.layout))
		})
	}
}

func TestMapFields_SkipsEmpty(t *testing.T) {
	it := mustItem(t, "X", map[string]string{FieldName: "Abc", FieldChair: ""})
	calls := 0
	mapped := it.MapFields(func(s string) string {
		calls++
		return strings.ToLower(s)
	})

	assert.Equal(t, 1, calls)
	assert.Equal(t, "abc", mapped.Field(FieldName))
	assert.Equal(t, "Abc", it.Field(FieldName), "original item must be unchanged")
}

func TestNewCatalog_DuplicateID(t *testing.T) {
	a := mustItem(t, "A", nil)
	_, err := NewCatalog([]Item{a, a})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestCatalog_CompositesKeepOrder(t *testing.T) {
	c, err := NewCatalog([]Item{
		mustItem(t, "B", map[string]string{FieldName: "b"}),
		mustItem(t, "A", map[string]string{FieldName: "a"}),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"b b", "a a"}, c.Composites(nil))
}
