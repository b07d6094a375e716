package shared

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestGenerateID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateID()
		if _, err := uuid.Parse(id); err != nil {
			t.Fatalf("GenerateID returned invalid UUID %q: %v", id, err)
		}
		if seen[id] {
			t.Fatalf("GenerateID returned duplicate %q", id)
		}
		seen[id] = true
	}
}

func TestMarshalJSON(t *testing.T) {
	payload := map[string]any{"name": "test", "count": 3}

	t.Run("Compact", func(t *testing.T) {
		data, err := MarshalJSON(payload, false)
		if err != nil {
			t.Fatalf("MarshalJSON failed: %v", err)
		}
		if strings.Contains(string(data), "\n") {
			t.Errorf("compact output should be one line: %q", data)
		}
	})

	t.Run("Pretty", func(t *testing.T) {
		data, err := MarshalJSON(payload, true)
		if err != nil {
			t.Fatalf("MarshalJSON failed: %v", err)
		}
		if !strings.Contains(string(data), "\n  ") {
			t.Errorf("pretty output should be indented: %q", data)
		}

		var round map[string]any
		if err := json.Unmarshal(data, &round); err != nil {
			t.Errorf("pretty output should stay valid JSON: %v", err)
		}
	})
}
