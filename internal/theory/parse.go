package theory

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNoMatch is returned when a chord string does not match the chord grammar.
var ErrNoMatch = errors.New("chord does not match grammar")

// MaxInversion is the highest inversion an annotation can express.
const MaxInversion = 3

var (
	chordPattern     = regexp.MustCompile(`^([A-G](?:##|bb|#|b)?)(\s*)([^/]*?)(?:(\s*/\s*)([A-G](?:##|bb|#|b)?))?$`)
	inversionPattern = regexp.MustCompile(`\s*\((root|1st inv\.|2nd inv\.|3rd inv\.)\)`)
)

var inversionLevels = map[string]int{
	"root":     0,
	"1st inv.": 1,
	"2nd inv.": 2,
	"3rd inv.": 3,
}

var inversionSuffixes = [MaxInversion + 1]string{"", " (1st inv.)", " (2nd inv.)", " (3rd inv.)"}

// ParsedChord is the decomposition of a chord symbol such as "Cmaj7 / E".
type ParsedChord struct {
	Root      string `json:"root"`
	Quality   string `json:"quality"`
	Bass      string `json:"bass,omitempty"`
	Inversion int    `json:"inversion"`

	// Spacing and Slash keep the whitespace after the root and the bass separator as written
	Spacing string `json:"-"`
	Slash   string `json:"-"`
}

const defaultSlash = " / "

// HasBass reports whether the chord names an explicit bass note.
func (p *ParsedChord) HasBass() bool {
	return p.Bass != ""
}

// BaseName returns root and quality without bass or inversion annotation.
func (p *ParsedChord) BaseName() string {
	return p.Root + p.Quality
}

// String formats the chord back into symbol form, spaced the way it was parsed.
// A bass note suppresses the inversion annotation.
func (p *ParsedChord) String() string {
	name := p.Root
	if p.Quality != "" {
		name += p.Spacing + p.Quality
	}
	if p.HasBass() {
		slash := p.Slash
		if slash == "" {
			slash = defaultSlash
		}
		return name + slash + p.Bass
	}
	return name + InversionSuffix(p.Inversion)
}

// ParseChord splits a chord symbol into root, quality, optional bass and inversion annotation.
// Unicode sharp and flat glyphs are accepted.
func ParseChord(raw string) (*ParsedChord, error) {
	normalized := normalizeAccidentals(raw)
	// "6/9" is a quality, not a slash chord
	normalized = strings.ReplaceAll(normalized, "6/9", "69")
	if normalized == "" {
		return nil, fmt.Errorf("%w: empty chord", ErrNoMatch)
	}

	match := chordPattern.FindStringSubmatch(normalized)
	if match == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, raw)
	}

	spacing, quality, slash, bass := match[2], strings.TrimSpace(match[3]), match[4], match[5]
	inversion := 0
	if inv := inversionPattern.FindStringSubmatch(quality); inv != nil {
		inversion = inversionLevels[inv[1]]
		quality = strings.TrimSpace(inversionPattern.ReplaceAllString(quality, ""))
	}
	if quality == "" {
		slash = spacing + slash
		spacing = ""
	}
	if bass == "" {
		slash = ""
	}

	return &ParsedChord{
		Root:      match[1],
		Quality:   quality,
		Bass:      bass,
		Inversion: inversion,
		Spacing:   spacing,
		Slash:     slash,
	}, nil
}

// InversionSuffix returns the annotation appended to a chord name for an inversion level.
// Levels outside 1-3 produce no annotation.
func InversionSuffix(level int) string {
	if level < 0 || level > MaxInversion {
		return ""
	}
	return inversionSuffixes[level]
}

// HasSeventh reports whether the chord quality carries a 7th, or a 9th, 11th or 13th implying one.
// Chords without one have no third inversion.
func HasSeventh(chordName string) bool {
	parsed, err := ParseChord(chordName)
	if err != nil {
		return false
	}
	q := strings.ToLower(parsed.Quality)
	return strings.ContainsAny(q, "79") || strings.Contains(q, "11") || strings.Contains(q, "13")
}
