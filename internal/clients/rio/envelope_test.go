package rio

import "testing"

func TestDecodeCollection_HALEnvelope(t *testing.T) {
	body := []byte(`{"_embedded": {"Erkenningen": [{"id": "a"}, {"id": "b"}]}, "page": {}, "_links": {}}`)

	items, size, err := decodeCollection(body, "Erkenningen")
	if err != nil {
		t.Fatalf("decodeCollection returned error: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("items = %d, want 2", len(items))
	}
	if size != 3 {
		t.Errorf("envelope size = %d, want 3 top-level keys", size)
	}
}

func TestDecodeCollection_BareArray(t *testing.T) {
	items, size, err := decodeCollection([]byte(`[{"id": "a"}]`), "Erkenningen")
	if err != nil {
		t.Fatalf("decodeCollection returned error: %v", err)
	}
	if len(items) != 1 || size != 1 {
		t.Errorf("items = %d, size = %d, want 1 and 1", len(items), size)
	}
}

func TestDecodeCollection_MissingKey(t *testing.T) {
	items, size, err := decodeCollection([]byte(`{"_embedded": {"Other": []}}`), "Erkenningen")
	if err != nil {
		t.Fatalf("decodeCollection returned error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items = %d, want 0", len(items))
	}
	if size != 1 {
		t.Errorf("size = %d, want 1", size)
	}
}

func TestDecodeCollection_NoEmbedded(t *testing.T) {
	items, _, err := decodeCollection([]byte(`{"page": {"size": 50}}`), "Erkenningen")
	if err != nil {
		t.Fatalf("decodeCollection returned error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items = %d, want 0", len(items))
	}
}

func TestDecodeCollection_SkipsNonObjectItems(t *testing.T) {
	items, _, err := decodeCollection([]byte(`[{"id": "a"}, "stray", 42]`), "Erkenningen")
	if err != nil {
		t.Fatalf("decodeCollection returned error: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("items = %d, want 1 (non-objects skipped)", len(items))
	}
}

func TestDecodeCollection_InvalidJSON(t *testing.T) {
	if _, _, err := decodeCollection([]byte(`{not json`), "Erkenningen"); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestDecodeCollection_ScalarShape(t *testing.T) {
	if _, _, err := decodeCollection([]byte(`"just a string"`), "Erkenningen"); err == nil {
		t.Error("expected error for scalar response")
	}
}
