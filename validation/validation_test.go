package validation

import "testing"

func TestRequired(t *testing.T) {
	v := make(Violations)
	Required("name", "Atlas", v)
	if !v.Empty() {
		t.Errorf("unexpected violations: %v", v)
	}
	Required("name", "   ", v)
	if v["name"] != "required" {
		t.Errorf("whitespace-only value must be flagged, got %v", v)
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"", true}, // optional field; Required covers presence
		{"a@b.co", true},
		{"no-at-sign", false},
		{"@leading.at", false},
		{"trailing@", false},
		{"has space@b.co", false},
	}
	for _, tc := range tests {
		v := make(Violations)
		Email("email", tc.value, v)
		if got := v.Empty(); got != tc.valid {
			t.Errorf("Email(%q): valid = %v, want %v", tc.value, got, tc.valid)
		}
	}
}

func TestRangeFloat(t *testing.T) {
	for _, tc := range []struct {
		val   float64
		valid bool
	}{
		{0, true}, {20, true}, {100, true}, {-0.1, false}, {100.1, false},
	} {
		v := make(Violations)
		RangeFloat("taxRate", tc.val, 0, 100, v)
		if got := v.Empty(); got != tc.valid {
			t.Errorf("RangeFloat(%v): valid = %v, want %v", tc.val, got, tc.valid)
		}
	}
}

func TestFirst(t *testing.T) {
	v := Violations{"clientEmail": "invalid_email", "taxRate": "out_of_range"}
	if field, _, ok := v.First("taxRate", "clientEmail"); !ok || field != "taxRate" {
		t.Errorf("First = %q, want taxRate", field)
	}
	if field, _, ok := v.First("missing"); !ok || field == "" {
		t.Errorf("First must fall back to any violation, got %q ok=%v", field, ok)
	}
	if _, _, ok := make(Violations).First("anything"); ok {
		t.Errorf("empty violations must report ok=false")
	}
}
