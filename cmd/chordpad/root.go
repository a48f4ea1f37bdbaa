package main

import (
	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"
)

// app carries what every subcommand reads after flags are parsed
type app struct {
	settings Settings
	au       aurora.Aurora
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		noColor    bool
	)
	a := &app{au: aurora.NewAurora(false)}

	rootCmd := &cobra.Command{
		Use:          "chordpad",
		Short:        "Chord theory toolkit for the chord pad",
		Long:         `Parse, voice, transpose and sequence chords the way the chord pad does.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			settings, err := LoadSettings(configPath)
			if err != nil {
				return err
			}
			a.settings = settings
			a.au = aurora.NewAurora(!noColor)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultSettingsPath(), "settings file")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(
		newNotesCmd(a),
		newTransposeCmd(a),
		newHumanizeCmd(a),
		newCircleCmd(a),
		newEditCmd(a),
		newLibraryCmd(a),
		newSequenceCmd(a),
	)
	return rootCmd
}

func Execute() {
	cobra.CheckErr(newRootCmd().Execute())
}
