package theory

import "strings"

// Triad qualities an edit can set.
const (
	QualityMajor      = "maj"
	QualityMinor      = "min"
	QualityDiminished = "dim"
)

// ChordEdit is a partial change to a chord. Nil fields are left as they are.
type ChordEdit struct {
	Root          *string `json:"root,omitempty"`
	Quality       *string `json:"quality,omitempty"`
	ToggleQuality *string `json:"toggle_quality,omitempty"`
	Inversion     *int    `json:"inversion,omitempty"`
}

// UpdateChord applies an edit and returns the new chord name. A chord that does not parse is
// returned unchanged. With a bass note present the inversion annotation is dropped.
func UpdateChord(original string, edit ChordEdit) string {
	parsed, err := ParseChord(original)
	if err != nil {
		return original
	}
	out := *parsed

	if edit.Root != nil {
		out.Root = normalizeAccidentals(*edit.Root)
	}
	if edit.Quality != nil {
		out.Quality = setTriadQuality(out.Quality, *edit.Quality)
	}
	if edit.ToggleQuality != nil && *edit.ToggleQuality != "" {
		out.Quality = toggleToken(out.Quality, *edit.ToggleQuality)
	}
	if edit.Inversion != nil {
		out.Inversion = *edit.Inversion
	}
	out.Quality = strings.TrimSpace(out.Quality)
	return out.String()
}

// splitTriadWord separates a leading triad word (maj, min, dim, °, m) from the rest of the quality.
func splitTriadWord(q string) (string, string) {
	lower := strings.ToLower(q)
	for _, w := range []string{"maj", "min", "dim", "°"} {
		if strings.HasPrefix(lower, w) {
			return q[:len(w)], q[len(w):]
		}
	}
	if strings.HasPrefix(q, "m") {
		return q[:1], q[1:]
	}
	return "", q
}

func triadQualityOf(word string) string {
	switch strings.ToLower(word) {
	case "min", "m":
		return QualityMinor
	case "dim", "°":
		return QualityDiminished
	default:
		return QualityMajor
	}
}

func setTriadQuality(q, target string) string {
	word, rest := splitTriadWord(q)
	if triadQualityOf(word) == target {
		return q
	}
	switch target {
	case QualityMinor, QualityDiminished:
		return target + rest
	}
	// major
	trimmed := strings.TrimSpace(rest)
	if strings.HasPrefix(strings.ToLower(trimmed), "maj") {
		return rest
	}
	if trimmed == "" || trimmed[0] < '0' || trimmed[0] > '9' {
		return QualityMajor + rest
	}
	return rest
}

func toggleToken(q, token string) string {
	if idx := strings.Index(q, token); idx >= 0 {
		return q[:idx] + q[idx+len(token):]
	}
	return q + token
}
