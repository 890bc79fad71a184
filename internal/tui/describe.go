package tui

// skippedLabel stands in for an empty description in echoed answers.
const skippedLabel = "<skipped>"

const (
	descriptionEchoMax  = 20
	descriptionEchoKeep = 17
)

// formatDescription shortens a description for the one-line answer echo.
func formatDescription(s string) string {
	r := []rune(s)
	switch {
	case len(r) == 0:
		return skippedLabel
	case len(r) <= descriptionEchoMax:
		return s
	default:
		return string(r[:descriptionEchoKeep]) + "..."
	}
}
