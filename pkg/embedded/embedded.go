package embedded

import (
	_ "embed"
)

// Embed all static data files
//
//go:embed data/chord_library.yaml
var ChordLibraryYAML []byte

//go:embed data/prompts/system_prompt.txt
var SystemPromptTxt []byte

//go:embed data/prompts/progression_prompt.txt
var ProgressionPromptTxt []byte
