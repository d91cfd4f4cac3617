package character

import (
	"reflect"
	"testing"
)

func TestFilterByName(t *testing.T) {
	items := []Character{
		{ID: 1, Name: "Rick Sanchez"},
		{ID: 2, Name: "Morty Smith"},
		{ID: 8, Name: "Adjudicator Rick"},
	}

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{"empty matches all", "", []int{1, 2, 8}},
		{"case insensitive", "rICK", []int{1, 8}},
		{"substring", "smi", []int{2}},
		{"no match", "Beth", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByName(items, tt.query)
			var ids []int
			for _, c := range got {
				ids = append(ids, c.ID)
			}
			if !reflect.DeepEqual(ids, tt.want) {
				t.Fatalf("FilterByName(%q) ids = %v, want %v", tt.query, ids, tt.want)
			}
		})
	}
}

func TestFilterByName_DoesNotAlias(t *testing.T) {
	items := []Character{{ID: 1, Name: "Rick Sanchez"}}
	got := FilterByName(items, "rick")
	got[0].Name = "changed"
	if items[0].Name != "Rick Sanchez" {
		t.Fatalf("FilterByName result aliases input; input name = %q", items[0].Name)
	}
}

func TestClone(t *testing.T) {
	if got := Clone(nil); got != nil {
		t.Fatalf("Clone(nil) = %#v, want nil", got)
	}
	items := []Character{{ID: 1}}
	dup := Clone(items)
	dup[0].ID = 99
	if items[0].ID != 1 {
		t.Fatalf("Clone should copy; got id %d want 1", items[0].ID)
	}
}
