package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pathlight/careermatch/internal/domain"
)

// metadataRecord is the on-disk shape of one entity. IDs are accepted as
// either JSON strings or numbers; both normalize to an opaque string.
type metadataRecord struct {
	ID    json.RawMessage `json:"id"`
	Title string          `json:"title"`
}

// ParseMetadata decodes a metadata file into entities. Each record must carry
// a non-empty id and title; anything else is rejected as malformed rather
// than tolerated with missing fields.
func ParseMetadata(data []byte) ([]domain.Entity, error) {
	var records []metadataRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedMetadata, err)
	}

	entities := make([]domain.Entity, len(records))
	for i, rec := range records {
		id, err := normalizeID(rec.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", domain.ErrMalformedMetadata, i, err)
		}
		if strings.TrimSpace(rec.Title) == "" {
			return nil, fmt.Errorf("%w: record %d: missing title", domain.ErrMalformedMetadata, i)
		}
		entities[i] = domain.Entity{ID: id, Title: rec.Title}
	}
	return entities, nil
}

func normalizeID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("missing id")
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return "", fmt.Errorf("empty id")
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}

	return "", fmt.Errorf("id is neither string nor number: %s", raw)
}
