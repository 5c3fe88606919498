package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m96-chan/emojikit/internal/app"
)

func newPickCmd(opts *options) *cobra.Command {
	var storePath string

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Open the interactive emoji picker",
		Long:  "Opens the picker. The chosen emoji is copied to the clipboard and printed on exit.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.New(opts.cfg)
			a.StorePath = storePath
			if err := a.Run(cmd.Context()); err != nil {
				return err
			}
			for _, def := range a.Picked() {
				fmt.Fprintln(cmd.OutOrStdout(), app.SelectionText(def))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&storePath, "db", "", "path to the picker database (default in the cache directory)")
	return cmd
}
