// Package emoji loads the emoji definition document and publishes the
// derived lookup views used by message rendering and the emoji picker.
package emoji

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// ErrNotInitialized is returned when the catalog is read before its first
// successful initialization.
var ErrNotInitialized = errors.New("emoji catalog not initialized")

// Hook may rewrite or augment the raw document before it is finalized.
// Returning a nil document keeps the one passed in.
type Hook interface {
	LoadEmojis(ctx context.Context, doc Document) (Document, error)
}

// HookFunc adapts a function to the Hook interface.
type HookFunc func(ctx context.Context, doc Document) (Document, error)

// LoadEmojis implements Hook.
func (f HookFunc) LoadEmojis(ctx context.Context, doc Document) (Document, error) {
	return f(ctx, doc)
}

// Options configures a Catalog.
type Options struct {
	Loader      Loader // defaults to EmbeddedLoader
	Hooks       []Hook // run in order, each sees the previous result
	AssetsPath  string // base path for custom emoji, default /dist/
	MatchPolicy MatchPolicy
	Logger      *slog.Logger
}

// Catalog owns the emoji dataset. It is loaded at most once per successful
// initialization and is immutable afterwards.
type Catalog struct {
	opts Options
	log  *slog.Logger

	mu      sync.Mutex
	current *Signal // in-flight or completed attempt; nil before start or after failure

	snap atomic.Pointer[Snapshot]
}

// New creates an uninitialized catalog.
func New(opts Options) *Catalog {
	if opts.Loader == nil {
		opts.Loader = EmbeddedLoader()
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Catalog{opts: opts, log: log}
}

// Signal is a one-shot completion notification for an initialization
// attempt.
type Signal struct {
	done chan struct{}
	err  error
}

func newSignal() *Signal {
	return &Signal{done: make(chan struct{})}
}

// Done is closed when the attempt finishes.
func (s *Signal) Done() <-chan struct{} {
	return s.done
}

// Err returns the attempt's error once Done is closed, and nil before.
func (s *Signal) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}

// Wait blocks until the attempt finishes or ctx is done. Cancelling ctx
// stops the wait, not the load.
func (s *Signal) Wait(ctx context.Context) error {
	select {
	case <-s.done:
		return s.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Initialize starts loading the catalog if it is neither loaded nor
// loading, and returns the signal of the current attempt. Concurrent and
// repeated calls share one attempt. After a failed attempt the next call
// starts a new one.
func (c *Catalog) Initialize(ctx context.Context) *Signal {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil {
		return c.current
	}
	s := newSignal()
	c.current = s
	go c.run(context.WithoutCancel(ctx), s)
	return s
}

// run performs one attempt and resolves s.
func (c *Catalog) run(ctx context.Context, s *Signal) {
	start := time.Now()
	snap, err := c.build(ctx)

	c.mu.Lock()
	if err != nil {
		c.current = nil
		c.log.Error("emoji catalog initialization failed", "error", err)
	} else {
		c.snap.Store(snap)
		c.log.Info("emoji catalog initialized",
			"entries", len(snap.list),
			"categories", len(snap.categories),
			"took", time.Since(start))
	}
	s.err = err
	close(s.done)
	c.mu.Unlock()
}

// build loads the document, applies hooks and path correction, and derives
// every view. Panics in loaders or hooks are reported as errors.
func (c *Catalog) build(ctx context.Context) (snap *Snapshot, err error) {
	defer func() {
		if r := recover(); r != nil {
			snap, err = nil, fmt.Errorf("emoji catalog: panic during load: %v", r)
		}
	}()

	doc, err := c.opts.Loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading emoji document: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("loading emoji document: %w: loader returned nothing", ErrInvalidDocument)
	}

	for i, h := range c.opts.Hooks {
		out, err := h.LoadEmojis(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("emoji hook %d: %w", i, err)
		}
		if out == nil {
			c.log.Debug("emoji hook kept document", "hook", i)
			continue
		}
		doc = out
	}
	if err := doc.normalize(); err != nil {
		return nil, err
	}

	if n := FixCustomPath(doc, c.opts.AssetsPath); n > 0 {
		c.log.Debug("rewrote custom emoji paths", "count", n, "assets_path", c.opts.AssetsPath)
	}

	return newSnapshot(doc, c.opts.MatchPolicy)
}

// Initialized reports whether a snapshot has been published.
func (c *Catalog) Initialized() bool {
	return c.snap.Load() != nil
}

// Snapshot returns the published views, or ErrNotInitialized.
func (c *Catalog) Snapshot() (*Snapshot, error) {
	s := c.snap.Load()
	if s == nil {
		return nil, ErrNotInitialized
	}
	return s, nil
}

// Snapshot is an immutable set of mutually consistent views over one
// document. It is safe for concurrent use.
type Snapshot struct {
	doc         Document
	byShortname map[string]Definition
	list        []Definition // sorted by shortname
	shortnames  []string
	categories  []string
	matcher     *Matcher
}

func newSnapshot(doc Document, policy MatchPolicy) (*Snapshot, error) {
	cats := doc.categoryOrder()

	// Flatten in category order; a duplicate key keeps its first position
	// and takes the last value.
	byShortname := make(map[string]Definition, doc.Len())
	pos := make(map[string]int, doc.Len())
	list := make([]Definition, 0, doc.Len())
	for _, cat := range cats {
		entries := doc[cat]
		for _, key := range sortedKeys(entries) {
			def := entries[key]
			byShortname[key] = def
			if i, ok := pos[key]; ok {
				list[i] = def
				continue
			}
			pos[key] = len(list)
			list = append(list, def)
		}
	}

	slices.SortStableFunc(list, func(a, b Definition) int {
		return strings.Compare(a.Shortname, b.Shortname)
	})

	shortnames := make([]string, len(list))
	for i, d := range list {
		shortnames[i] = d.Shortname
	}

	m, err := NewMatcher(list, policy)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		doc:         doc,
		byShortname: byShortname,
		list:        list,
		shortnames:  shortnames,
		categories:  cats,
		matcher:     m,
	}, nil
}

// Lookup returns the definition for a shortname such as ":smile:".
func (s *Snapshot) Lookup(shortname string) (Definition, bool) {
	d, ok := s.byShortname[shortname]
	return d, ok
}

// Len returns the number of distinct shortnames.
func (s *Snapshot) Len() int {
	return len(s.list)
}

// List returns all definitions sorted by shortname.
func (s *Snapshot) List() []Definition {
	return slices.Clone(s.list)
}

// Shortnames returns all shortnames in List order.
func (s *Snapshot) Shortnames() []string {
	return slices.Clone(s.shortnames)
}

// Matcher returns the shortname matcher.
func (s *Snapshot) Matcher() *Matcher {
	return s.matcher
}

// Categories returns the category names present in the document, built-in
// categories first in display order.
func (s *Snapshot) Categories() []string {
	return slices.Clone(s.categories)
}

// InCategory returns the definitions of one category sorted by shortname.
func (s *Snapshot) InCategory(category string) []Definition {
	entries := s.doc[category]
	out := make([]Definition, 0, len(entries))
	for _, key := range sortedKeys(entries) {
		out = append(out, entries[key])
	}
	return out
}

// Document returns a copy of the finalized document.
func (s *Snapshot) Document() Document {
	return s.doc.Clone()
}
