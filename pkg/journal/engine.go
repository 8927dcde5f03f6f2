package journal

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"tableflip.dev/dreamlog/pkg/api"
	"tableflip.dev/dreamlog/pkg/dream"
	"tableflip.dev/dreamlog/pkg/stats"
)

// Lister is the slice of the API the engine needs.
type Lister interface {
	ListDreams(ctx context.Context, p api.ListParams) ([]dream.Dream, error)
	Stats(ctx context.Context) (*stats.Stats, error)
}

// EmptyKind says which empty state the list view shows.
type EmptyKind int

const (
	// EmptyNone means there is something to show, or a load is running.
	EmptyNone EmptyKind = iota
	// EmptyNoDreams means the journal has no entries at all.
	EmptyNoDreams
	// EmptyNoMatches means the active filter excluded everything.
	EmptyNoMatches
)

// Snapshot is a consistent view of the engine handed to OnChange.
type Snapshot struct {
	Dreams  []dream.Dream
	Stats   *stats.Stats
	Filter  Filter
	Input   string
	Loading bool
	Err     error
}

// Empty classifies the snapshot's empty state.
func (s Snapshot) Empty() EmptyKind {
	if s.Loading || s.Err != nil || len(s.Dreams) > 0 {
		return EmptyNone
	}
	if s.Filter.Active() {
		return EmptyNoMatches
	}
	return EmptyNoDreams
}

type Option func(*Engine)

func WithDebounce(d time.Duration) Option {
	return func(e *Engine) { e.debounce = NewDebouncer(d) }
}

// WithLimit caps the list size; zero leaves it to the server.
func WithLimit(n int) Option {
	return func(e *Engine) { e.limit = n }
}

// WithOnChange registers fn to run after every state change. fn runs
// outside the engine lock and may call back into it.
func WithOnChange(fn func(Snapshot)) Option {
	return func(e *Engine) { e.onChange = fn }
}

// WithContext sets the context used by debounced searches.
func WithContext(ctx context.Context) Option {
	return func(e *Engine) { e.ctx = ctx }
}

// Engine issues one list+stats request pair per effective filter change.
// When changes overlap, the newest request's answer is the one kept.
type Engine struct {
	mu       sync.Mutex
	lister   Lister
	debounce *Debouncer
	ctx      context.Context
	limit    int
	onChange func(Snapshot)

	filter  Filter
	input   string
	gen     uint64
	loading bool
	dreams  []dream.Dream
	summary *stats.Stats
	err     error
}

func New(lister Lister, opts ...Option) *Engine {
	e := &Engine{
		lister:   lister,
		debounce: NewDebouncer(DefaultDebounce),
		ctx:      context.Background(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		Dreams:  append([]dream.Dream(nil), e.dreams...),
		Stats:   e.summary,
		Filter:  e.filter,
		Input:   e.input,
		Loading: e.loading,
		Err:     e.err,
	}
}

func (e *Engine) Filter() Filter {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.filter
}

// Loading is true exactly while the latest request pair is outstanding.
func (e *Engine) Loading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading
}

func (e *Engine) Empty() EmptyKind {
	return e.Snapshot().Empty()
}

// SetSearchInput records the raw search text and schedules a search for it
// after the debounce delay. Each call restarts the delay.
func (e *Engine) SetSearchInput(text string) {
	e.mu.Lock()
	e.input = text
	e.mu.Unlock()
	e.notify()

	e.debounce.Schedule(func() {
		e.mu.Lock()
		f := e.filter
		f.Search = text
		e.filter = f
		e.mu.Unlock()
		_ = e.fetch(e.ctx, f)
	})
}

// FlushSearch applies pending search input immediately.
func (e *Engine) FlushSearch(ctx context.Context) error {
	e.debounce.Stop()
	e.mu.Lock()
	e.filter.Search = e.input
	f := e.filter
	e.mu.Unlock()
	return e.fetch(ctx, f)
}

// ToggleMood selects or clears a mood chip and refetches at once.
func (e *Engine) ToggleMood(ctx context.Context, m dream.Mood) error {
	e.mu.Lock()
	e.filter = e.filter.ToggleMood(m)
	f := e.filter
	e.mu.Unlock()
	return e.fetch(ctx, f)
}

// SetTag filters by tag; an empty tag clears it.
func (e *Engine) SetTag(ctx context.Context, tag string) error {
	e.mu.Lock()
	e.filter.Tag = dream.NormalizeTag(tag)
	f := e.filter
	e.mu.Unlock()
	return e.fetch(ctx, f)
}

// Refresh refetches with the current filter, e.g. after a save or delete.
func (e *Engine) Refresh(ctx context.Context) error {
	return e.fetch(ctx, e.Filter())
}

// Close cancels any pending debounced search.
func (e *Engine) Close() {
	e.debounce.Stop()
}

func (e *Engine) fetch(ctx context.Context, f Filter) error {
	e.mu.Lock()
	e.gen++
	gen := e.gen
	e.loading = true
	e.mu.Unlock()
	e.notify()

	var (
		list    []dream.Dream
		summary *stats.Stats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		list, err = e.lister.ListDreams(gctx, f.Params(e.limit))
		return err
	})
	g.Go(func() error {
		var err error
		summary, err = e.lister.Stats(gctx)
		return err
	})
	err := g.Wait()

	e.mu.Lock()
	if gen != e.gen {
		// A newer request owns the view.
		e.mu.Unlock()
		return err
	}
	e.loading = false
	e.err = err
	if err == nil {
		e.dreams = list
		e.summary = summary
	}
	e.mu.Unlock()
	e.notify()
	return err
}

func (e *Engine) notify() {
	if e.onChange == nil {
		return
	}
	e.onChange(e.Snapshot())
}
