package llm

// ChordProgressionToolName is the custom tool the model must call with its progression.
const ChordProgressionToolName = "chord_progression"

// GetChordProgressionGrammar returns the Lark grammar restricting output to a
// comma-separated list of chord symbols such as "Amin7, D7, Gmaj7 / B".
func GetChordProgressionGrammar() string {
	return `
// Chord progression grammar - comma separated chord symbols
// Format: Cmaj7, Amin7, Dmin7, G7
//         Fmaj / A, G7sus4, Cmaj

// ---------- Start rule ----------
start: chord (SEP chord)*

// ---------- Chord ----------
chord: CHORD (SLASH BASS)?

// ---------- Terminals ----------
SEP: "," " "?
SLASH: " "? "/" " "?
CHORD: /[A-G](#|b)?(maj|min|dim|aug|sus|add|no|m|M|[0-9]|#|b|\(|\)|\+)*/
BASS: /[A-G](#|b)?/
`
}

// ChordProgressionCFG returns the CFG tool configuration for progression output.
func ChordProgressionCFG() *CFGConfig {
	return &CFGConfig{
		ToolName: ChordProgressionToolName,
		Description: "Write the chord progression as a comma separated list of chord symbols. " +
			"Use a root (A-G with optional # or b), an optional quality such as maj7, min, dim or sus4, " +
			"and an optional slash bass.",
		Grammar: GetChordProgressionGrammar(),
		Syntax:  "lark",
	}
}
