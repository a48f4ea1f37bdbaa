package theory

import "strings"

// HumanizeProgression picks, for every chord after the first, the inversion whose average
// pitch sits closest to the previous chord's voicing. Slash chords and unparsable chords pass
// through unchanged.
func HumanizeProgression(chords []string) []string {
	out := make([]string, len(chords))
	copy(out, chords)
	if len(chords) < 2 {
		return out
	}

	prev := GetChordNotes(chords[0], 0)
	for i := 1; i < len(chords); i++ {
		chord := chords[i]
		parsed, err := ParseChord(chord)
		if err != nil || len(prev) == 0 || parsed.HasBass() {
			prev = GetChordNotes(chord, 0)
			continue
		}

		base := parsed.BaseName()
		rootNotes := GetChordNotes(base, 0)
		if len(rootNotes) == 0 {
			prev = nil
			continue
		}

		name, notes := closestInversion(base, len(rootNotes), meanPitchOf(prev))
		out[i] = name
		prev = notes
	}
	return out
}

// meanPitch is an average pitch kept as an exact fraction sum/count.
type meanPitch struct {
	sum, count int
}

func meanPitchOf(notes []Note) meanPitch {
	m := meanPitch{count: len(notes)}
	for _, n := range notes {
		m.sum += n.Pitch()
	}
	return m
}

// distance returns |m - other| as the fraction num/den.
func (m meanPitch) distance(other meanPitch) (num, den int) {
	num = m.sum*other.count - other.sum*m.count
	if num < 0 {
		num = -num
	}
	return num, m.count * other.count
}

// closestInversion tries inversions 0..noteCount-1 (at most the third) and keeps the first
// with the smallest distance to target. Ties keep the lower inversion.
func closestInversion(base string, noteCount int, target meanPitch) (string, []Note) {
	candidates := noteCount
	if candidates > MaxInversion+1 {
		candidates = MaxInversion + 1
	}

	bestName := base
	var bestNotes []Note
	bestNum, bestDen := -1, 1
	for inv := 0; inv < candidates; inv++ {
		name := strings.TrimSpace(base + InversionSuffix(inv))
		notes := GetChordNotes(name, 0)
		if len(notes) == 0 {
			continue
		}
		num, den := meanPitchOf(notes).distance(target)
		if bestNum < 0 || num*bestDen < bestNum*den {
			bestNum, bestDen = num, den
			bestName = name
			bestNotes = notes
		}
	}
	return bestName, bestNotes
}
