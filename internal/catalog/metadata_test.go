package catalog

import (
	"errors"
	"testing"

	"github.com/pathlight/careermatch/internal/domain"
)

func TestParseMetadata(t *testing.T) {
	data := []byte(`[
		{"id": "11-1011.00", "title": "Chief Executive"},
		{"id": 42, "title": "Archivist"}
	]`)

	entities, err := ParseMetadata(data)
	if err != nil {
		t.Fatalf("ParseMetadata: %v", err)
	}
	if len(entities) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(entities))
	}
	if entities[0].ID != "11-1011.00" || entities[0].Title != "Chief Executive" {
		t.Fatalf("unexpected first entity: %+v", entities[0])
	}
	// Numeric IDs normalize to their string form.
	if entities[1].ID != "42" {
		t.Fatalf("expected numeric id to become %q, got %q", "42", entities[1].ID)
	}
}

func TestParseMetadata_Malformed(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not json", `{{{`},
		{"not an array", `{"id": "1", "title": "x"}`},
		{"missing id", `[{"title": "Archivist"}]`},
		{"empty id", `[{"id": "", "title": "Archivist"}]`},
		{"missing title", `[{"id": "1"}]`},
		{"blank title", `[{"id": "1", "title": "   "}]`},
		{"bool id", `[{"id": true, "title": "Archivist"}]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseMetadata([]byte(tc.data))
			if !errors.Is(err, domain.ErrMalformedMetadata) {
				t.Fatalf("expected ErrMalformedMetadata, got %v", err)
			}
		})
	}
}
