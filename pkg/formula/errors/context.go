package errors

import (
	"strings"
	"unicode/utf8"
)

// ExtractContext renders the formula with a caret under the byte offset pos.
// It returns an empty string when there is no source or the position is out
// of range. Newlines in the source are flattened so the caret lines up.
func ExtractContext(source string, pos int) string {
	if source == "" || pos < 0 || pos > len(source) {
		return ""
	}

	line := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ").Replace(source)
	column := utf8.RuneCountInString(source[:pos])

	var sb strings.Builder
	sb.WriteString("  |\n")
	sb.WriteString("  | ")
	sb.WriteString(line)
	sb.WriteString("\n")
	sb.WriteString("  | ")
	sb.WriteString(strings.Repeat(" ", column))
	sb.WriteString("^")
	return sb.String()
}
