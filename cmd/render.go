package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/m96-chan/emojikit/internal/markdown"
	"github.com/m96-chan/emojikit/internal/ui"
)

func newRenderCmd(opts *options) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "render [text...]",
		Short: "Render message text, replacing shortnames with emoji",
		Long:  "Renders the arguments (or stdin) the way the chat view would, as tview-tagged text.",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				text = strings.TrimRight(string(data), "\n")
			}

			snap, err := opts.snapshot(cmd.Context())
			if err != nil {
				return err
			}

			ro := ui.RenderOptions(opts.cfg, snap.Matcher())
			if plain {
				ro.Enabled = false
			}
			fmt.Fprintln(cmd.OutOrStdout(), markdown.Render(text, ro))
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "only substitute emoji, no formatting")
	return cmd
}
