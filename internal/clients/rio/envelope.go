package rio

import (
	"encoding/json"
	"fmt"

	"github.com/avdwal/rioview/internal/models"
)

// decodeCollection normalizes the registry's collection response shapes into
// a flat document slice:
//
//   - a HAL envelope: {"_embedded": {"<key>": [...]}, ...}
//   - a bare JSON array: [...]
//
// An envelope without the expected key yields an empty slice, not an error.
// The second return value is the raw body's top-level size, the key count
// for an envelope, the item count for a bare array.
func decodeCollection(body []byte, key string) ([]models.Document, int, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, 0, fmt.Errorf("failed to decode response: %w", err)
	}

	switch v := raw.(type) {
	case []any:
		return toDocuments(v), len(v), nil
	case map[string]any:
		size := len(v)
		embedded, ok := v["_embedded"].(map[string]any)
		if !ok {
			return []models.Document{}, size, nil
		}
		items, ok := embedded[key].([]any)
		if !ok {
			return []models.Document{}, size, nil
		}
		return toDocuments(items), size, nil
	default:
		return nil, 0, fmt.Errorf("unexpected response shape %T", raw)
	}
}

// toDocuments keeps the object items of a decoded JSON array, skipping
// anything that is not an object.
func toDocuments(items []any) []models.Document {
	docs := make([]models.Document, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			docs = append(docs, models.Document(m))
		}
	}
	return docs
}
