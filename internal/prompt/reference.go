package prompt

// chordSymbolReference lists the chord spellings the theory engine voices.
const chordSymbolReference = `**CHORD SYMBOL REFERENCE**:
- Triads: C, Cmaj, Cmin, Cm, Cdim, Caug, Csus2, Csus4, C5
- Sevenths: C7, Cmaj7, Cmin7, Cm7, Cm7b5, Cdim7, CminMaj7, C7sus4
- Extensions: C9, Cmaj9, Cmin9, C11, Cmin11, C13, Cmaj13
- Alterations: C7b9, C7#9, Cmaj7#11, C7#5, C7b13
- Added tones and sixths: Cadd9, Cmaj add11, C6, Cmin6, C69
- Omissions: C7(no3), Cmaj(no5)
- Slash chords put the bass after a slash: "Cmaj / E", "Dmin7 / C"
- Use # and b for accidentals, never spell keys with double accidentals`
