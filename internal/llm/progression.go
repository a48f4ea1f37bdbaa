package llm

import "strings"

// ParseChordList turns a model answer such as "```Cmaj7, Amin7, , Dmin7```"
// into its chord names. Backticks are stripped, entries are split on commas
// and trimmed, and empty entries are dropped. Names are not validated here.
func ParseChordList(text string) []string {
	cleaned := strings.ReplaceAll(text, "`", "")
	parts := strings.Split(cleaned, ",")

	chords := make([]string, 0, len(parts))
	for _, part := range parts {
		if chord := strings.TrimSpace(part); chord != "" {
			chords = append(chords, chord)
		}
	}
	return chords
}
