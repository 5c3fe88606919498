package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/m96-chan/emojikit/internal/app"
	"github.com/m96-chan/emojikit/internal/emoji"
)

func newListCmd(opts *options) *cobra.Command {
	var (
		category string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List known emoji sorted by shortname",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := opts.snapshot(cmd.Context())
			if err != nil {
				return err
			}

			defs := snap.List()
			if category != "" {
				defs = snap.InCategory(category)
				if len(defs) == 0 {
					return fmt.Errorf("unknown or empty category %q", category)
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(defs)
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, d := range defs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", app.SelectionText(d), d.Shortname, d.Category, ref(d, opts))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "only list one category")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print definitions as JSON")
	return cmd
}

// ref is the codepoint for unicode emoji and the image URL for custom ones.
func ref(d emoji.Definition, opts *options) string {
	if d.IsCustom() {
		return d.ImageURL(opts.cfg.Emoji.ImagePath)
	}
	return d.Codepoint
}
