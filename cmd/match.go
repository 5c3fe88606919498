package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newMatchCmd(opts *options) *cobra.Command {
	var showPattern bool

	cmd := &cobra.Command{
		Use:   "match <text>",
		Short: "Show the shortnames found in a text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := opts.snapshot(cmd.Context())
			if err != nil {
				return err
			}
			m := snap.Matcher()
			out := cmd.OutOrStdout()

			if showPattern {
				if re := m.Regexp(); re != nil {
					fmt.Fprintln(out, re.String())
				}
				return nil
			}

			for _, match := range m.FindAll(strings.Join(args, " ")) {
				fmt.Fprintf(out, "%d\t%d\t%s\t%s\n", match.Start, match.End, match.Text, match.Definition.Shortname)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showPattern, "pattern", false, "print the compiled shortname pattern instead")
	return cmd
}
