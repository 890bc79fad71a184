package tui

import (
	"strings"
	"unicode"
)

// splitShellWords splits an editor command such as `code --wait` into argv.
// Single and double quotes group words; a backslash escapes the next rune
// outside single quotes. Unterminated quotes run to the end of the string.
func splitShellWords(s string) []string {
	var (
		out      []string
		cur      strings.Builder
		inWord   bool
		quote    rune
		escaping bool
	)

	for _, r := range s {
		switch {
		case escaping:
			cur.WriteRune(r)
			escaping = false
		case r == '\\' && quote != '\'':
			escaping, inWord = true, true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote, inWord = r, true
		case unicode.IsSpace(r):
			if inWord {
				out = append(out, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if inWord {
		out = append(out, cur.String())
	}
	return out
}
