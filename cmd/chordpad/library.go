package main

import (
	"fmt"
	"strings"

	"github.com/Conceptual-Machines/chordpad-api/internal/library"
	"github.com/Conceptual-Machines/chordpad-api/internal/theory"
	"github.com/spf13/cobra"
)

func newLibraryCmd(a *app) *cobra.Command {
	var (
		key       string
		inversion int
	)
	cmd := &cobra.Command{
		Use:   "library [category]",
		Short: "List library categories or show the sets of one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := library.Default()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				for _, name := range lib.Categories() {
					fmt.Fprintln(out, a.au.Bold(name))
				}
				return nil
			}

			opts := library.DisplayOptions{Key: key}
			if opts.Key == "" {
				opts.Key = a.settings.DefaultKey
			}
			if opts.Key != "" {
				if _, err := theory.PitchIndex(opts.Key); err != nil {
					return err
				}
			}
			switch {
			case cmd.Flags().Changed("inversion"):
				if inversion < 0 || inversion > theory.MaxInversion {
					return fmt.Errorf("inversion must be between 0 and %d", theory.MaxInversion)
				}
				opts.Voicing, opts.Inversion = true, inversion
			case a.settings.Inversion > 0:
				opts.Voicing, opts.Inversion = true, a.settings.Inversion
			}

			sets, err := lib.Display(args[0], opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, a.au.Bold(args[0]))
			for _, set := range sets {
				fmt.Fprintf(out, "  %s\n", a.au.Cyan(strings.Join(set.Chords, "  ")))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&key, "key", "k", "", "transpose every set to this key")
	cmd.Flags().IntVar(&inversion, "inversion", 0, "apply an inversion 0-3 to chords without a bass note")
	return cmd
}
