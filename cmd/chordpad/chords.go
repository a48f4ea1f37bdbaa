package main

import (
	"fmt"
	"strings"

	"github.com/Conceptual-Machines/chordpad-api/internal/theory"
	"github.com/spf13/cobra"
)

func newNotesCmd(a *app) *cobra.Command {
	var octave int
	cmd := &cobra.Command{
		Use:   "notes <chord>",
		Short: "Voice a chord as note names and MIDI numbers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("octave") {
				octave = a.settings.Octave
			}
			chord := args[0]
			if _, err := theory.ParseChord(chord); err != nil {
				return err
			}

			notes := theory.GetChordNoteStrings(chord, octave)
			midi := make([]string, 0, len(notes))
			for _, n := range theory.MIDINumbers(notes) {
				midi = append(midi, fmt.Sprint(n))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (MIDI %s)\n",
				a.au.Bold(chord), a.au.Cyan(strings.Join(notes, " ")), strings.Join(midi, " "))
			return nil
		},
	}
	cmd.Flags().IntVar(&octave, "octave", 0, "octave offset from the middle register")
	return cmd
}

func newCircleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "circle <root>",
		Short: "Show the relative minor, dominant and subdominant of a root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := theory.PitchIndex(args[0]); err != nil {
				return err
			}
			rel := theory.RelativesOf(args[0])
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", a.au.Bold("Key:"), theory.KeyLabel(rel.Root))
			fmt.Fprintf(out, "  relative minor  %s\n", a.au.Cyan(rel.RelativeMinor))
			fmt.Fprintf(out, "  dominant        %s\n", a.au.Cyan(rel.Dominant))
			fmt.Fprintf(out, "  subdominant     %s\n", a.au.Cyan(rel.Subdominant))
			return nil
		},
	}
}

func newEditCmd(a *app) *cobra.Command {
	var (
		root, quality, toggle string
		inversion             int
	)
	cmd := &cobra.Command{
		Use:   "edit <chord>",
		Short: "Change the root, quality or inversion of a chord",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var edit theory.ChordEdit
			flags := cmd.Flags()
			if flags.Changed("root") {
				if _, err := theory.PitchIndex(root); err != nil {
					return err
				}
				edit.Root = &root
			}
			if flags.Changed("quality") {
				switch quality {
				case theory.QualityMajor, theory.QualityMinor, theory.QualityDiminished:
				default:
					return fmt.Errorf("quality must be one of maj, min, dim")
				}
				edit.Quality = &quality
			}
			if flags.Changed("toggle") {
				edit.ToggleQuality = &toggle
			}
			if flags.Changed("inversion") {
				if inversion < 0 || inversion > theory.MaxInversion {
					return fmt.Errorf("inversion must be between 0 and %d", theory.MaxInversion)
				}
				edit.Inversion = &inversion
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", args[0], a.au.Green(theory.UpdateChord(args[0], edit)))
			return nil
		},
	}
	cmd.Flags().StringVar(&root, "root", "", "new root")
	cmd.Flags().StringVar(&quality, "quality", "", "triad quality: maj, min or dim")
	cmd.Flags().StringVar(&toggle, "toggle", "", "quality token to add or remove, e.g. 7")
	cmd.Flags().IntVar(&inversion, "inversion", 0, "inversion 0-3")
	return cmd
}
