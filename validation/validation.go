package validation

import "strings"

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Email does a minimal shape check; full RFC validation is not the goal.
func Email(field, value string, v Violations) {
	s := strings.TrimSpace(value)
	if s == "" {
		return
	}
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 || strings.Contains(s, " ") {
		v[field] = "invalid_email"
	}
}

// First returns the earliest violation following the given field order, then
// any remaining one. Handlers use it to pick a single user-facing message.
func (v Violations) First(fields ...string) (field, reason string, ok bool) {
	for _, f := range fields {
		if r, found := v[f]; found {
			return f, r, true
		}
	}
	for f, r := range v {
		return f, r, true
	}
	return "", "", false
}

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func RangeFloat(field string, val, minVal, maxVal float64, v Violations) {
	if val < minVal || val > maxVal {
		v[field] = "out_of_range"
	}
}
