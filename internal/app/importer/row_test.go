package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRow(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]string
		want Row
	}{
		{
			name: "bom on first header",
			raw:  map[string]string{"\uFEFFname": "Ada", "rollNo": "101"},
			want: Row{"name": "Ada", "rollNo": "101"},
		},
		{
			name: "trims and strips one trailing comma",
			raw:  map[string]string{" email ": "  a@x.com, ", "year": "2,,"},
			want: Row{"email": "a@x.com", "year": "2,"},
		},
		{
			name: "lowercases role",
			raw:  map[string]string{"role": " Teacher "},
			want: Row{"role": "teacher"},
		},
		{
			name: "drops unnamed columns",
			raw:  map[string]string{"": "stray", "name": "B"},
			want: Row{"name": "B"},
		},
		{
			name: "passes malformed values through",
			raw:  map[string]string{"role": "ADMIN", "email": ""},
			want: Row{"role": "admin", "email": ""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeRow(tt.raw))
		})
	}
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "name", NormalizeHeader("\uFEFF name "))
	assert.Equal(t, "assignedYear", NormalizeHeader("assignedYear,"))
}

func TestRowClone(t *testing.T) {
	r := Row{"name": "A"}
	c := r.Clone()
	c["name"] = "B"
	assert.Equal(t, "A", r.Get("name"))
	assert.Equal(t, "", r.Get("missing"))
}
