package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Conceptual-Machines/chordpad-api/internal/models"
	"github.com/Conceptual-Machines/chordpad-api/internal/sequencer"
	"github.com/spf13/cobra"
)

// parsePlacement reads "chord@start:duration"; the duration may be omitted.
func parsePlacement(arg string) (models.SequenceChord, error) {
	at := strings.LastIndex(arg, "@")
	if at <= 0 {
		return models.SequenceChord{}, fmt.Errorf("invalid placement %q, want chord@start:duration", arg)
	}
	placed := models.SequenceChord{ChordName: strings.TrimSpace(arg[:at])}

	position := arg[at+1:]
	startText, durText, hasDur := strings.Cut(position, ":")
	start, err := strconv.Atoi(startText)
	if err != nil {
		return models.SequenceChord{}, fmt.Errorf("invalid start in %q: %w", arg, err)
	}
	placed.Start = start
	if hasDur {
		if placed.Duration, err = strconv.Atoi(durText); err != nil {
			return models.SequenceChord{}, fmt.Errorf("invalid duration in %q: %w", arg, err)
		}
	}
	return placed, nil
}

func newSequenceCmd(a *app) *cobra.Command {
	var (
		template  string
		inversion int
	)
	cmd := &cobra.Command{
		Use:   "sequence <chord@start:dur...>",
		Short: "Print the playback timeline of chords placed on the 64-step grid",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			placements := make([]models.SequenceChord, 0, len(args))
			for _, arg := range args {
				p, err := parsePlacement(arg)
				if err != nil {
					return err
				}
				placements = append(placements, p)
			}
			seq, err := sequencer.FromChords(placements)
			if err != nil {
				return err
			}

			voicing := sequencer.VoicingOptions{Octave: a.settings.Octave}
			switch {
			case cmd.Flags().Changed("inversion"):
				voicing.Voicing, voicing.Inversion = true, inversion
			case a.settings.Inversion > 0:
				voicing.Voicing, voicing.Inversion = true, a.settings.Inversion
			}

			out := cmd.OutOrStdout()
			if template != "" {
				rendered, err := sequencer.Render(seq, sequencer.RenderOptions{VoicingOptions: voicing, Template: template})
				if err != nil {
					return err
				}
				for _, n := range rendered.Notes {
					fmt.Fprintf(out, "%6.2f  %3d  vel %3d  len %.2f\n", n.StartBeats, n.MidiNoteNumber, n.Velocity, n.DurationBeats)
				}
				return nil
			}

			for _, ev := range sequencer.Events(seq, voicing) {
				label := a.au.Green(ev.Type)
				if ev.Type != models.EventAttack {
					label = a.au.Yellow(ev.Type)
				}
				fmt.Fprintf(out, "%-7s %-8s %s\n", ev.Time, label, strings.Join(ev.Notes, " "))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&template, "template", "t", "", "render note events with a rhythm template instead of the timeline")
	cmd.Flags().IntVar(&inversion, "inversion", 0, "apply an inversion 0-3 to chords without a bass note")
	return cmd
}
