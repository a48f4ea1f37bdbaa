package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Conceptual-Machines/chordpad-api/internal/llm"
	"github.com/Conceptual-Machines/chordpad-api/internal/theory"
	"github.com/spf13/cobra"
)

// chordArgs accepts chords as separate arguments, comma-separated lists or both.
func chordArgs(args []string) []string {
	return llm.ParseChordList(strings.Join(args, ","))
}

func newTransposeCmd(a *app) *cobra.Command {
	var key string
	cmd := &cobra.Command{
		Use:   "transpose --key K <chords...>",
		Short: "Transpose a progression into a key",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if key == "" {
				key = a.settings.DefaultKey
			}
			if key == "" {
				return errors.New("a key is required (--key or default_key in settings)")
			}
			if _, err := theory.PitchIndex(key); err != nil {
				return err
			}

			chords := chordArgs(args)
			out := cmd.OutOrStdout()
			if from, ok := theory.KeyOf(chords); ok {
				fmt.Fprintf(out, "%s %s -> %s\n", a.au.Bold("Key:"), theory.KeyLabel(from), theory.KeyLabel(key))
			}
			fmt.Fprintln(out, a.au.Green(strings.Join(theory.TransposeProgression(chords, key), ", ")))
			return nil
		},
	}
	cmd.Flags().StringVarP(&key, "key", "k", "", "target key, e.g. Bb")
	return cmd
}

func newHumanizeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "humanize <chords...>",
		Short: "Pick inversions that keep voice movement small",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			humanized := theory.HumanizeProgression(chordArgs(args))
			fmt.Fprintln(cmd.OutOrStdout(), a.au.Green(strings.Join(humanized, ", ")))
			return nil
		},
	}
}
