package diag

import (
	"encoding/json"
	"testing"
)

func TestFormatIssueJSON_Basic(t *testing.T) {
	issue := NewIssue(Error, E_PARSE, "syntax error").Build()

	r := NewRenderer()
	data := r.FormatIssueJSON(issue)

	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	// Required fields
	if parsed["severity"] != "error" {
		t.Errorf("severity = %v; want 'error'", parsed["severity"])
	}
	if parsed["code"] != "E_PARSE" {
		t.Errorf("code = %v; want 'E_PARSE'", parsed["code"])
	}
	if parsed["message"] != "syntax error" {
		t.Errorf("message = %v; want 'syntax error'", parsed["message"])
	}

	// Optional fields should be omitted
	if _, exists := parsed["hint"]; exists {
		t.Error("hint should be omitted when not set")
	}
	if _, exists := parsed["details"]; exists {
		t.Error("details should be omitted when not set")
	}
}

func TestFormatIssueJSON_AllSeverities(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{Fatal, "fatal"},
		{Error, "error"},
		{Warning, "warning"},
		{Info, "info"},
		{Hint, "hint"},
	}

	r := NewRenderer()
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			issue := NewIssue(tt.severity, E_PARSE, "msg").Build()
			data := r.FormatIssueJSON(issue)

			var parsed map[string]any
			if err := json.Unmarshal(data, &parsed); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}

			if parsed["severity"] != tt.want {
				t.Errorf("severity = %v; want %q", parsed["severity"], tt.want)
			}
		})
	}
}

func TestFormatIssueJSON_WithHint(t *testing.T) {
	issue := NewIssue(Error, E_PARSE, "error").
		WithHint("try this instead").
		Build()

	r := NewRenderer()
	data := r.FormatIssueJSON(issue)

	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if parsed["hint"] != "try this instead" {
		t.Errorf("hint = %v; want 'try this instead'", parsed["hint"])
	}
}

func TestFormatIssueJSON_WithDetails(t *testing.T) {
	issue := NewIssue(Error, E_PARSE, "error").
		WithDetails(
			Detail{Key: DetailKeyExpected, Value: "String"},
			Detail{Key: DetailKeyGot, Value: "Int"},
		).
		Build()

	r := NewRenderer()
	data := r.FormatIssueJSON(issue)

	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	details, ok := parsed["details"].([]any)
	if !ok {
		t.Fatal("details should be an array")
	}
	if len(details) != 2 {
		t.Fatalf("len(details) = %d; want 2", len(details))
	}

	first := details[0].(map[string]any)
	if first["key"] != DetailKeyExpected {
		t.Errorf("details[0].key = %v; want %q", first["key"], DetailKeyExpected)
	}
	if first["value"] != "String" {
		t.Errorf("details[0].value = %v; want 'String'", first["value"])
	}
}

func TestFormatIssueJSON_CompleteIssue(t *testing.T) {
	issue := NewIssue(Error, E_MODEL_NOT_FOUND, "complete test").
		WithHint("try this").
		WithDetails(Detail{Key: "key", Value: "value"}).
		Build()

	r := NewRenderer()
	data := r.FormatIssueJSON(issue)

	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	expected := []string{"severity", "code", "message", "hint", "details"}
	for _, field := range expected {
		if _, exists := parsed[field]; !exists {
			t.Errorf("field %q should be present", field)
		}
	}
}

// TestJSON_RoundTrip verifies that the JSON structure is stable.
func TestJSON_RoundTrip(t *testing.T) {
	original := NewIssue(Error, E_PARSE, "test message").
		WithHint("hint text").
		Build()

	r := NewRenderer()
	data := r.FormatIssueJSON(original)

	// Re-marshal should produce identical output
	var parsed issueWire
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	data2, err := json.Marshal(parsed)
	if err != nil {
		t.Fatalf("re-marshal failed: %v", err)
	}

	if string(data) != string(data2) {
		t.Errorf("round-trip changed output:\n  original: %s\n  roundtrip: %s", data, data2)
	}
}
