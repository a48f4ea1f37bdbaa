package theory

// Circles of fifths, ascending by a fifth per step.
var (
	sharpCircle = []string{"C", "G", "D", "A", "E", "B", "F#", "C#", "G#", "D#", "A#", "F"}
	flatCircle  = []string{"C", "G", "D", "A", "E", "Cb", "Gb", "Db", "Ab", "Eb", "Bb", "F"}
)

// sharpSideKeys are the major keys written with sharps, C through C#.
var sharpSideKeys = sharpCircle[:8]

// NoteFromCircle steps offset fifths around the circle from root. The sharp circle is used
// when root is a sharp-side key, the flat circle otherwise. Unknown roots are returned unchanged.
func NoteFromCircle(root string, offset int) string {
	root = normalizeAccidentals(root)
	circle := flatCircle
	if indexOf(sharpSideKeys, root) >= 0 {
		circle = sharpCircle
	}

	pos := indexOf(circle, root)
	if pos < 0 {
		idx, err := PitchIndex(root)
		if err != nil {
			return root
		}
		if pos = indexOf(circle, Spell(idx, true)); pos < 0 {
			pos = indexOf(circle, Spell(idx, false))
		}
		if pos < 0 {
			return root
		}
	}
	return circle[mod12(pos+offset)]
}

// Dominant returns the root a fifth above.
func Dominant(root string) string {
	return NoteFromCircle(root, 1)
}

// Subdominant returns the root a fifth below.
func Subdominant(root string) string {
	return NoteFromCircle(root, -1)
}

// RelativeMinor returns the minor root sharing the major key's signature.
func RelativeMinor(majorRoot string) string {
	return TransposeNote(majorRoot, -relativeMinorOffset, UsesSharps(majorRoot))
}

// Relatives groups the circle neighbours of a root.
type Relatives struct {
	Root          string `json:"root"`
	RelativeMinor string `json:"relative_minor"`
	Dominant      string `json:"dominant"`
	Subdominant   string `json:"subdominant"`
}

// RelativesOf collects relative minor, dominant and subdominant for a root.
func RelativesOf(root string) Relatives {
	return Relatives{
		Root:          root,
		RelativeMinor: RelativeMinor(root),
		Dominant:      Dominant(root),
		Subdominant:   Subdominant(root),
	}
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
