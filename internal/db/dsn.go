package db

import (
	"regexp"
	"strings"
)

var kvPairRegex = regexp.MustCompile(`(?i)\b(host|user|password|dbname|port|sslmode)=`)

// SQLitePath returns the file path when the DSN selects sqlite, either via
// the "sqlite:" prefix or a bare *.db path.
func SQLitePath(dsn string) (string, bool) {
	s := strings.TrimSpace(dsn)
	if rest, ok := strings.CutPrefix(s, "sqlite:"); ok {
		return rest, true
	}
	if strings.HasSuffix(s, ".db") && !kvPairRegex.MatchString(s) {
		return s, true
	}
	return "", false
}

// NormalizeDSN accepts either a URL style DSN (postgres://...) or a lib/pq
// key=value list. It trims quotes and whitespace and, if given key=value
// form, returns it cleaned with sslmode defaulted.
func NormalizeDSN(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "\"'")
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return s
	}
	if !kvPairRegex.MatchString(s) {
		return s
	}
	cleaned := strings.Join(strings.Fields(s), " ")
	if !strings.Contains(strings.ToLower(cleaned), "sslmode=") {
		cleaned += " sslmode=disable"
	}
	return cleaned
}
