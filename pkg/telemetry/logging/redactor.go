package logging

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/kishan-gau/recruitiq-sub007/pkg/config"
)

// Mask replaces every redacted value.
const Mask = "***"

// Redactor masks sensitive values in log attributes.
type Redactor struct {
	sensitiveKeys []string
	patterns      []*redactPattern
}

// redactPattern contains a compiled regex and replacement string.
type redactPattern struct {
	name        string
	regex       *regexp.Regexp
	replacement string
}

// Common pattern names.
const (
	PatternEmail    = "email"
	PatternSSN      = "ssn"
	PatternIBAN     = "iban"
	PatternPassword = "password"
)

// defaultSensitiveKeys are key fragments naming pay amounts and secrets.
// Matching is case-insensitive and by substring.
var defaultSensitiveKeys = []string{
	"salary", "pay", "wage", "bonus", "commission", "income",
	"deduction", "allowance", "amount", "rate",
	"password", "secret", "token", "ssn", "iban",
}

// NewRedactor creates a Redactor with the default sensitive keys and
// patterns plus the given extras. Invalid custom patterns are skipped;
// config.Validate reports them.
func NewRedactor(extraKeys []string, customPatterns []config.RedactPattern) *Redactor {
	r := &Redactor{
		sensitiveKeys: append([]string(nil), defaultSensitiveKeys...),
	}
	for _, k := range extraKeys {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			r.sensitiveKeys = append(r.sensitiveKeys, k)
		}
	}

	r.addDefaultPatterns()

	for _, p := range customPatterns {
		regex, err := regexp.Compile(p.Pattern)
		if err != nil {
			continue
		}
		r.patterns = append(r.patterns, &redactPattern{
			name:        p.Name,
			regex:       regex,
			replacement: p.Replacement,
		})
	}

	return r
}

// addDefaultPatterns adds built-in redaction patterns for string values.
func (r *Redactor) addDefaultPatterns() {
	defaults := []struct {
		name        string
		regex       string
		replacement string
	}{
		{PatternEmail, `[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`, "***@***"},
		{PatternSSN, `\b\d{3}-\d{2}-\d{4}\b`, "***-**-****"},
		{PatternIBAN, `\b[A-Z]{2}\d{2}[A-Z0-9]{10,30}\b`, "IBAN-***"},
		{PatternPassword, `(?i)(password|passwd|pwd)[:=]\s*\S+`, "$1: ***"},
	}

	for _, p := range defaults {
		r.patterns = append(r.patterns, &redactPattern{
			name:        p.name,
			regex:       regexp.MustCompile(p.regex),
			replacement: p.replacement,
		})
	}
}

// IsSensitiveKey reports whether values logged under key are masked.
func (r *Redactor) IsSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, sensitive := range r.sensitiveKeys {
		if strings.Contains(lower, sensitive) {
			return true
		}
	}
	return false
}

// RedactString scrubs pattern matches from a string value.
func (r *Redactor) RedactString(value string) string {
	if value == "" {
		return value
	}
	for _, p := range r.patterns {
		value = p.regex.ReplaceAllString(value, p.replacement)
	}
	return value
}

// RedactAttr returns a copy of a with sensitive values masked. Groups are
// processed recursively.
func (r *Redactor) RedactAttr(a slog.Attr) slog.Attr {
	v := a.Value.Resolve()

	if v.Kind() == slog.KindGroup {
		group := v.Group()
		redacted := make([]any, len(group))
		for i, ga := range group {
			redacted[i] = r.RedactAttr(ga)
		}
		return slog.Group(a.Key, redacted...)
	}

	if r.IsSensitiveKey(a.Key) {
		return slog.String(a.Key, Mask)
	}
	if v.Kind() == slog.KindString {
		return slog.String(a.Key, r.RedactString(v.String()))
	}
	return slog.Attr{Key: a.Key, Value: v}
}

// RedactValues returns a copy of a variable map with sensitive entries
// masked, for logging bindings as a group.
func (r *Redactor) RedactValues(values map[string]float64) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		if r.IsSensitiveKey(k) {
			out[k] = Mask
			continue
		}
		out[k] = v
	}
	return out
}
