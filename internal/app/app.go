// Package app wires the emoji catalog, the picker store and the picker UI
// into a terminal application.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"slices"
	"sync"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/m96-chan/emojikit/internal/clipboard"
	"github.com/m96-chan/emojikit/internal/config"
	"github.com/m96-chan/emojikit/internal/emoji"
	"github.com/m96-chan/emojikit/internal/logger"
	"github.com/m96-chan/emojikit/internal/store"
	"github.com/m96-chan/emojikit/internal/ui/keys"
	"github.com/m96-chan/emojikit/internal/ui/picker"
	"github.com/m96-chan/emojikit/internal/ui/statusbar"
)

// App is the top-level application struct.
type App struct {
	Config *config.Config
	// StorePath is the picker database; empty means store.DefaultPath.
	StorePath string

	tview     *tview.Application
	catalog   *emoji.Catalog
	store     *store.Store
	picker    *picker.Picker
	statusBar *statusbar.StatusBar
	cancel    context.CancelFunc

	// copyText is clipboard.WriteText outside tests.
	copyText func(string) error

	mu     sync.Mutex
	picked []emoji.Definition
}

// New creates a new App with the given config.
func New(cfg *config.Config) *App {
	return &App{
		Config:   cfg,
		tview:    tview.NewApplication(),
		copyText: clipboard.WriteText,
	}
}

// Run starts the TUI event loop. The catalog loads in the background while
// a loading status is shown; the picker appears once it is ready.
func (a *App) Run(ctx context.Context) error {
	a.tview.EnableMouse(a.Config.Mouse)

	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	defer cancel()

	// Set up OS signal handling for graceful shutdown.
	sigCtx, sigStop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer sigStop()
	go func() {
		<-sigCtx.Done()
		if ctx.Err() == nil {
			slog.Info("signal received, shutting down")
			a.shutdown()
		}
	}()

	a.tview.SetInputCapture(a.handleGlobalKey)

	path := a.StorePath
	if path == "" {
		path = store.DefaultPath()
	}
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	a.store = st
	defer func() {
		if err := st.Close(); err != nil {
			slog.Warn("closing picker store", "error", err)
		}
	}()

	catalog, err := NewCatalog(a.Config, logger.Component("catalog"))
	if err != nil {
		return err
	}
	a.catalog = catalog

	a.statusBar = statusbar.New(a.Config)
	a.statusBar.SetLoading()
	a.statusBar.SetClipboardAvailable(clipboard.Available())
	a.tview.SetRoot(a.statusBar, true)

	ready := catalog.Initialize(ctx)
	go func() {
		err := ready.Wait(ctx)
		if ctx.Err() != nil {
			return
		}
		a.tview.QueueUpdateDraw(func() {
			if err != nil {
				a.statusBar.SetError(err)
				return
			}
			a.showPicker()
		})
	}()

	return a.tview.Run()
}

// Picked returns the emoji selected during Run, in order.
func (a *App) Picked() []emoji.Definition {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.picked)
}

// shutdown persists the picker state and stops the TUI.
func (a *App) shutdown() {
	if a.picker != nil && a.store != nil {
		if err := a.store.SaveState(a.picker.State()); err != nil {
			slog.Warn("saving picker state", "error", err)
		}
	}
	if a.cancel != nil {
		a.cancel()
	}
	a.tview.Stop()
}

// handleGlobalKey processes global keybindings. It returns nil to consume the
// event or the original event to let it propagate.
func (a *App) handleGlobalKey(event *tcell.EventKey) *tcell.EventKey {
	if keys.Matches(event, a.Config.Keybinds.Picker.Quit) {
		a.shutdown()
		return nil
	}
	return event
}

// showPicker sets the root to the picker and status bar. Must be called
// from the tview event loop.
func (a *App) showPicker() {
	snap, err := a.catalog.Snapshot()
	if err != nil {
		a.statusBar.SetError(err)
		return
	}

	a.picker = picker.New(a.Config)
	a.picker.SetSnapshot(snap)
	a.refreshFrequent()

	state, err := a.store.LoadState()
	if err != nil {
		slog.Warn("loading picker state", "error", err)
	}
	a.picker.SetState(state)
	a.picker.SetOnSelect(a.onSelect)
	a.picker.SetOnClose(a.shutdown)

	a.statusBar.SetCatalog(snap.Len(), len(snap.Categories()))

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.picker, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false)
	a.tview.SetRoot(layout, true)
	a.tview.SetFocus(a.picker)
}

// refreshFrequent loads the frequent row from the usage counts.
func (a *App) refreshFrequent() {
	usage, err := a.store.Frequent(a.Config.Picker.FrequentLimit)
	if err != nil {
		slog.Warn("loading frequent emoji", "error", err)
		return
	}
	names := make([]string, len(usage))
	for i, u := range usage {
		names[i] = u.Shortname
	}
	a.picker.SetFrequent(names)
}

// SelectionText is what a pick puts on the clipboard: the glyph, or the
// shortname for custom emoji.
func SelectionText(def emoji.Definition) string {
	if g := def.Glyph(); g != "" {
		return g
	}
	return def.Shortname
}

// onSelect copies the picked emoji and records its usage.
func (a *App) onSelect(def emoji.Definition) {
	a.mu.Lock()
	a.picked = append(a.picked, def)
	a.mu.Unlock()

	if a.store != nil {
		if err := a.store.RecordUse(def.Shortname); err != nil {
			slog.Warn("recording emoji use", "shortname", def.Shortname, "error", err)
		}
	}

	text := SelectionText(def)
	if err := a.copyText(text); err != nil {
		slog.Warn("copying emoji", "shortname", def.Shortname, "error", err)
		a.setMessage(fmt.Sprintf("copy failed: %v", err))
		return
	}
	slog.Info("emoji copied", "shortname", def.Shortname)
	a.setMessage("copied " + def.Shortname)
}

func (a *App) setMessage(s string) {
	if a.statusBar != nil {
		a.statusBar.SetMessage(s)
	}
}
