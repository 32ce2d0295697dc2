package render

import "strings"

// ANSI escape codes used by the text renderer.
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

// palette applies colours when enabled and passes text through otherwise.
type palette struct{ enabled bool }

// paint wraps text with code and a reset suffix.
//
// Postcondition: Returns text unchanged when the palette is disabled or text is empty.
func (p palette) paint(code, text string) string {
	if !p.enabled || text == "" {
		return text
	}
	return code + text + Reset
}

// StripANSI removes all ANSI escape sequences from a string.
//
// Postcondition: Returns text with all \033[...m sequences removed.
func StripANSI(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && s[j] != 'm' {
				j++
			}
			if j < len(s) {
				i = j + 1
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}
