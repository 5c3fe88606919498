package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/m96-chan/emojikit/internal/emoji"
)

func newCategoriesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List emoji categories with their labels and sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := opts.snapshot(cmd.Context())
			if err != nil {
				return err
			}

			present := snap.Categories()
			var extra []string
			for _, name := range present {
				if !emoji.IsBuiltinCategory(name) {
					extra = append(extra, name)
				}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, c := range opts.cfg.Categories(extra...) {
				n := len(snap.InCategory(string(c.Name)))
				if n == 0 {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", c.Name, c.Emoji, c.Label, n)
			}
			return w.Flush()
		},
	}
}
