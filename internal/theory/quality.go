package theory

import (
	"fmt"
	"math/bits"
	"strings"
	"unicode"
)

// MaxInterval is the highest semitone offset a quality can produce (a 13th above the root).
const MaxInterval = 21

// Intervals above the root used by the quality rules.
const (
	unison        = 0
	majorSecond   = 2
	minorThird    = 3
	majorThird    = 4
	perfectFourth = 5
	tritone       = 6
	perfectFifth  = 7
	minorSixth    = 8
	majorSixth    = 9
	minorSeventh  = 10
	majorSeventh  = 11
	flatNinth     = 13
	ninth         = 14
	sharpNinth    = 15
	eleventh      = 17
	sharpEleventh = 18
	flatThirteen  = 20
	thirteenth    = 21
)

// IntervalSet is a set of semitone offsets (0-21) above a chord root.
type IntervalSet uint32

// NewIntervalSet builds a set from offsets.
func NewIntervalSet(intervals ...int) IntervalSet {
	var s IntervalSet
	for _, iv := range intervals {
		s.Add(iv)
	}
	return s
}

// Add inserts an offset. Offsets outside 0-21 are a programming error.
func (s *IntervalSet) Add(interval int) {
	if interval < unison || interval > MaxInterval {
		panic(fmt.Sprintf("theory: interval %d out of range", interval))
	}
	*s |= 1 << uint(interval)
}

// Remove deletes an offset if present.
func (s *IntervalSet) Remove(interval int) {
	if interval < unison || interval > MaxInterval {
		return
	}
	*s &^= 1 << uint(interval)
}

// Has reports whether the offset is in the set.
func (s IntervalSet) Has(interval int) bool {
	if interval < unison || interval > MaxInterval {
		return false
	}
	return s&(1<<uint(interval)) != 0
}

// Len returns the number of offsets.
func (s IntervalSet) Len() int {
	return bits.OnesCount32(uint32(s))
}

// Intervals returns the offsets in ascending order.
func (s IntervalSet) Intervals() []int {
	out := make([]int, 0, s.Len())
	for iv := unison; iv <= MaxInterval; iv++ {
		if s.Has(iv) {
			out = append(out, iv)
		}
	}
	return out
}

// degreeToken is a number in the quality text together with the text that introduces it,
// e.g. "add9" -> {word: "add", degree: 9} and "#11" -> {accidental: '#', degree: 11}.
type degreeToken struct {
	word       string
	accidental byte
	degree     int
}

func (t degreeToken) isAdd() bool  { return strings.HasSuffix(t.word, "add") }
func (t degreeToken) isSus() bool  { return strings.HasSuffix(t.word, "sus") }
func (t degreeToken) isOmit() bool { return strings.HasSuffix(t.word, "no") }
func (t degreeToken) isMaj() bool  { return strings.HasSuffix(t.word, "maj") }

// isExtension is true for a chord-tone number that is not an added, suspended or omitted degree.
func (t degreeToken) isExtension() bool {
	return !t.isAdd() && !t.isSus() && !t.isOmit()
}

// quality is a normalized quality text with its degree tokens.
type quality struct {
	text   string
	tokens []degreeToken
}

func newQuality(raw string) quality {
	text := normalizeQuality(raw)
	return quality{text: text, tokens: tokenizeDegrees(text)}
}

// normalizeQuality lower-cases the text and strips whitespace and parentheses.
func normalizeQuality(raw string) string {
	raw = normalizeAccidentals(raw)
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		if unicode.IsSpace(r) || r == '(' || r == ')' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ReplaceAll(b.String(), "seventh", "7")
}

func tokenizeDegrees(text string) []degreeToken {
	var tokens []degreeToken
	wordStart := 0
	for i := 0; i < len(text); {
		if text[i] < '0' || text[i] > '9' {
			i++
			continue
		}
		j := i
		degree := 0
		for j < len(text) && text[j] >= '0' && text[j] <= '9' {
			degree = degree*10 + int(text[j]-'0')
			j++
		}
		word := text[wordStart:i]
		var acc byte
		if n := len(word); n > 0 && (word[n-1] == '#' || word[n-1] == 'b') {
			acc = word[n-1]
			word = word[:n-1]
		}
		tokens = append(tokens, degreeToken{word: word, accidental: acc, degree: degree})
		wordStart = j
		i = j
	}
	return tokens
}

func (q quality) has(match func(degreeToken) bool) bool {
	for _, t := range q.tokens {
		if match(t) {
			return true
		}
	}
	return false
}

func (q quality) contains(s string) bool {
	return strings.Contains(q.text, s)
}

// extension reports a plain (non-add) chord tone of the given degree, altered or not.
func (q quality) extension(degree int) bool {
	return q.has(func(t degreeToken) bool { return t.degree == degree && t.isExtension() })
}

func (q quality) alteredExtension(degree int, acc byte) bool {
	return q.has(func(t degreeToken) bool { return t.degree == degree && t.accidental == acc && t.isExtension() })
}

func (q quality) addTone(degree int) bool {
	return q.has(func(t degreeToken) bool { return t.degree == degree && t.isAdd() })
}

func (q quality) alteredAddTone(degree int, acc byte) bool {
	return q.has(func(t degreeToken) bool { return t.degree == degree && t.accidental == acc && t.isAdd() })
}

func (q quality) isSus4() bool {
	if q.has(func(t degreeToken) bool { return t.isSus() && t.degree == 4 }) {
		return true
	}
	// bare "sus" reads as sus4
	return q.contains("sus") && !q.isSus2()
}

func (q quality) isSus2() bool {
	return q.has(func(t degreeToken) bool { return t.isSus() && t.degree == 2 })
}

func (q quality) isDiminished() bool {
	return q.contains("dim") || q.contains("°")
}

func (q quality) isAugmented() bool {
	return q.contains("aug") || q.contains("+")
}

// isMinor is true for "min" or an "m" that does not start "maj".
func (q quality) isMinor() bool {
	if q.contains("min") {
		return true
	}
	for i := 0; i < len(q.text); i++ {
		if q.text[i] == 'm' && !strings.HasPrefix(q.text[i:], "maj") {
			return true
		}
	}
	return false
}

func (q quality) omitsThird() bool {
	return q.has(func(t degreeToken) bool { return t.isOmit() && t.degree == 3 })
}

func (q quality) omitsFifth() bool {
	return q.has(func(t degreeToken) bool { return t.isOmit() && t.degree == 5 })
}

func (q quality) flatFifth() bool  { return q.alteredExtension(5, 'b') }
func (q quality) sharpFifth() bool { return q.alteredExtension(5, '#') }
func (q quality) hasTritone() bool { return q.contains("tritone") }

// majorSeventh covers maj7, maj9, maj11 and maj13, including minMaj7.
func (q quality) majorSeventh() bool {
	return q.has(func(t degreeToken) bool {
		return t.isMaj() && (t.degree == 7 || t.degree == 9 || t.degree == 11 || t.degree == 13)
	})
}

func (q quality) diminishedSeventh() bool {
	return q.isDiminished() && q.extension(7)
}

// impliesSeventh is true when a plain 7, 9, 11 or 13 is present. Add-tones never imply a seventh.
func (q quality) impliesSeventh() bool {
	return q.extension(7) || q.extension(9) || q.extension(11) || q.extension(13)
}

func (q quality) isSixth() bool {
	return q.has(func(t degreeToken) bool { return (t.degree == 6 || t.degree == 69) && !t.isOmit() })
}

func (q quality) isSixNine() bool {
	return q.has(func(t degreeToken) bool { return t.degree == 69 })
}

func (q quality) mentionsNinth() bool {
	return q.has(func(t degreeToken) bool { return t.degree == 9 })
}

func (q quality) isMinorMajorSeventh() bool {
	return q.isMinor() && q.majorSeventh()
}

// IntervalsFor converts free-text chord quality into semitone offsets above the root.
// Text that matches no rule yields a major triad.
func IntervalsFor(qualityText string) IntervalSet {
	q := newQuality(qualityText)
	set := NewIntervalSet(unison)

	// third
	switch {
	case q.isSus4():
		set.Add(perfectFourth)
	case q.isSus2():
		set.Add(majorSecond)
	case q.isMinor() || q.isDiminished():
		set.Add(minorThird)
	case q.omitsThird():
	default:
		set.Add(majorThird)
	}

	// fifth
	switch {
	case q.flatFifth() || q.isDiminished():
		set.Add(tritone)
	case q.sharpFifth() || q.isAugmented():
		set.Add(minorSixth)
	case !q.omitsFifth() && !q.hasTritone():
		set.Add(perfectFifth)
	}
	if q.hasTritone() {
		set.Add(tritone)
	}

	// seventh
	switch {
	case q.majorSeventh():
		set.Add(majorSeventh)
	case q.diminishedSeventh():
		set.Add(majorSixth)
	case q.impliesSeventh():
		set.Add(minorSeventh)
	}

	addUpperExtensions(q, &set)
	addAddTones(q, &set)

	if q.isSixth() {
		set.Add(majorSixth)
		if q.isSixNine() || q.mentionsNinth() {
			set.Add(ninth)
		}
	}

	if q.isMinorMajorSeventh() {
		set.Remove(minorSeventh)
		set.Add(majorSeventh)
	}

	return set
}

func addUpperExtensions(q quality, set *IntervalSet) {
	if q.extension(13) {
		set.Add(ninth)
		if q.alteredExtension(13, 'b') {
			set.Add(flatThirteen)
		} else {
			set.Add(thirteenth)
		}
	}

	if q.extension(11) {
		set.Add(ninth)
		if q.alteredExtension(11, '#') {
			set.Add(sharpEleventh)
		} else {
			set.Add(eleventh)
		}
	}

	if q.extension(9) {
		altered := false
		if q.alteredExtension(9, 'b') {
			set.Add(flatNinth)
			altered = true
		}
		if q.alteredExtension(9, '#') {
			set.Add(sharpNinth)
			altered = true
		}
		if !altered {
			set.Add(ninth)
		}
	}
}

func addAddTones(q quality, set *IntervalSet) {
	if q.addTone(9) {
		switch {
		case q.alteredAddTone(9, 'b'):
			set.Add(flatNinth)
		case q.alteredAddTone(9, '#'):
			set.Add(sharpNinth)
		default:
			set.Add(ninth)
		}
	}
	if q.addTone(11) {
		if q.alteredAddTone(11, '#') || q.contains("#11") {
			set.Add(sharpEleventh)
		} else {
			set.Add(eleventh)
		}
	}
	if q.addTone(13) {
		if q.alteredAddTone(13, 'b') {
			set.Add(flatThirteen)
		} else {
			set.Add(thirteenth)
		}
	}
}
