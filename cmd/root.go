// Package cmd implements the emojikit command line.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/m96-chan/emojikit/internal/app"
	"github.com/m96-chan/emojikit/internal/config"
	"github.com/m96-chan/emojikit/internal/consts"
	"github.com/m96-chan/emojikit/internal/emoji"
	"github.com/m96-chan/emojikit/internal/logger"
)

// Build information, set by main.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// loadTimeout bounds catalog initialization for the non-interactive commands.
const loadTimeout = 30 * time.Second

// options holds the persistent flags and the config they select.
type options struct {
	configPath string
	logPath    string
	logLevel   string

	cfg *config.Config
}

// Run builds the command tree and executes it.
func Run() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           consts.Name,
		Short:         "Terminal emoji picker and shortname renderer",
		Long:          "Browse, search and copy emoji, and render :shortnames: in chat text.",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config-path", config.DefaultPath(), "path to config file")
	flags.StringVar(&opts.logPath, "log-path", logger.DefaultPath(), "path to log file")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	pick := newPickCmd(opts)
	root.RunE = pick.RunE
	root.Flags().AddFlagSet(pick.Flags())

	root.AddCommand(pick)
	root.AddCommand(newListCmd(opts))
	root.AddCommand(newRenderCmd(opts))
	root.AddCommand(newMatchCmd(opts))
	root.AddCommand(newCategoriesCmd(opts))

	return root
}

// setup configures logging and loads the config.
func (o *options) setup() error {
	if err := logger.Setup(o.logPath, parseLevel(o.logLevel)); err != nil {
		return err
	}

	slog.Info("starting "+consts.Name, "version", Version, "config", o.configPath, "log", o.logPath)

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}

// snapshot initializes the catalog and waits for it.
func (o *options) snapshot(ctx context.Context) (*emoji.Snapshot, error) {
	catalog, err := app.NewCatalog(o.cfg, logger.Component("catalog"))
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()
	if err := catalog.Initialize(ctx).Wait(ctx); err != nil {
		return nil, err
	}
	return catalog.Snapshot()
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
