package journal

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/dreamlog/pkg/api"
	"tableflip.dev/dreamlog/pkg/dream"
	"tableflip.dev/dreamlog/pkg/stats"
)

type fakeLister struct {
	mu     sync.Mutex
	dreams []dream.Dream
	params []api.ListParams
	stats  int
	err    error
	// gate, when set, is consulted per list call and may block it.
	gate func(p api.ListParams)
}

func (f *fakeLister) ListDreams(_ context.Context, p api.ListParams) ([]dream.Dream, error) {
	if f.gate != nil {
		f.gate(p)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.params = append(f.params, p)
	if f.err != nil {
		return nil, f.err
	}
	filter := Filter{Search: p.Search, Mood: p.Mood, Tag: p.Tag}
	var out []dream.Dream
	for _, d := range f.dreams {
		if filter.Match(d) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeLister) Stats(context.Context) (*stats.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stats++
	return &stats.Stats{Total: len(f.dreams)}, nil
}

func (f *fakeLister) calls() []api.ListParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]api.ListParams(nil), f.params...)
}

func sample() []dream.Dream {
	mood := func(m dream.Mood) *dream.Mood { return &m }
	return []dream.Dream{
		{ID: 1, Body: "Flying over mountains", Mood: mood(dream.Joyful), Tags: []string{"flying"}},
		{ID: 2, Body: "Lost in a library", Mood: mood(dream.Anxious), Tags: []string{"library"}},
		{ID: 3, Body: "Flying through a storm", Mood: mood(dream.Anxious), Tags: []string{"flying", "storm"}},
		{ID: 4, Body: "Tea with a fox"},
	}
}

func ids(ds []dream.Dream) []int64 {
	out := []int64{}
	for _, d := range ds {
		out = append(out, d.ID)
	}
	return out
}

func TestFilterToggleMood(t *testing.T) {
	f := Filter{Search: "fly"}
	f = f.ToggleMood(dream.Vivid)
	assert.Equal(t, dream.Vivid, f.Mood)
	f = f.ToggleMood(dream.Eerie)
	assert.Equal(t, dream.Eerie, f.Mood)
	f = f.ToggleMood(dream.Eerie)
	assert.Equal(t, dream.Mood(""), f.Mood)
	assert.Equal(t, "fly", f.Search)
}

func TestFilterParams(t *testing.T) {
	p := Filter{Search: "  storm ", Tag: "Night Terror"}.Params(0)
	assert.Equal(t, api.ListParams{Search: "storm", Tag: "night-terror"}, p)
}

func TestMoodFilterRestrictsAndClears(t *testing.T) {
	l := &fakeLister{dreams: sample()}
	e := New(l)
	ctx := context.Background()
	require.NoError(t, e.Refresh(ctx))
	all := ids(e.Snapshot().Dreams)

	require.NoError(t, e.ToggleMood(ctx, dream.Anxious))
	snap := e.Snapshot()
	assert.Equal(t, []int64{2, 3}, ids(snap.Dreams))
	for _, d := range snap.Dreams {
		assert.Equal(t, dream.Anxious, *d.Mood)
	}

	require.NoError(t, e.ToggleMood(ctx, dream.Anxious))
	assert.Equal(t, all, ids(e.Snapshot().Dreams))
	assert.Equal(t, dream.Mood(""), e.Filter().Mood)
}

func TestMoodToggleKeepsSearch(t *testing.T) {
	l := &fakeLister{dreams: sample()}
	e := New(l)
	ctx := context.Background()

	e.SetSearchInput("flying")
	require.NoError(t, e.FlushSearch(ctx))
	require.NoError(t, e.ToggleMood(ctx, dream.Anxious))
	assert.Equal(t, []int64{3}, ids(e.Snapshot().Dreams))

	require.NoError(t, e.ToggleMood(ctx, dream.Anxious))
	assert.Equal(t, []int64{1, 3}, ids(e.Snapshot().Dreams), "clearing the mood returns the search-only set")
}

func TestEachChangeFetchesListAndStats(t *testing.T) {
	l := &fakeLister{dreams: sample()}
	e := New(l)
	ctx := context.Background()

	require.NoError(t, e.Refresh(ctx))
	require.NoError(t, e.ToggleMood(ctx, dream.Joyful))
	require.NoError(t, e.SetTag(ctx, "Flying"))

	assert.Len(t, l.calls(), 3)
	assert.Equal(t, 3, l.stats)
	assert.Equal(t, "flying", l.calls()[2].Tag)
}

func TestSearchIsDebounced(t *testing.T) {
	l := &fakeLister{dreams: sample()}
	e := New(l, WithDebounce(30*time.Millisecond))
	defer e.Close()

	for _, text := range []string{"s", "st", "sto", "storm"} {
		e.SetSearchInput(text)
		time.Sleep(5 * time.Millisecond)
	}
	assert.Empty(t, l.calls(), "no fetch before the pause")

	require.Eventually(t, func() bool { return len(l.calls()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "storm", l.calls()[0].Search)
	assert.Eventually(t, func() bool { return !e.Loading() }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int64{3}, ids(e.Snapshot().Dreams))

	time.Sleep(60 * time.Millisecond)
	assert.Len(t, l.calls(), 1)
}

func TestCloseCancelsPendingSearch(t *testing.T) {
	l := &fakeLister{}
	e := New(l, WithDebounce(20*time.Millisecond))
	e.SetSearchInput("x")
	e.Close()
	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, l.calls())
}

func TestLatestRequestWins(t *testing.T) {
	release := make(chan struct{})
	var first atomic.Bool
	l := &fakeLister{dreams: sample()}
	l.gate = func(p api.ListParams) {
		if p.Mood == dream.Joyful && first.CompareAndSwap(false, true) {
			<-release
		}
	}
	e := New(l)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- e.ToggleMood(ctx, dream.Joyful) }()
	require.Eventually(t, first.Load, time.Second, time.Millisecond)

	// Switching moods while the first answer is outstanding.
	require.NoError(t, e.ToggleMood(ctx, dream.Anxious))
	assert.Equal(t, []int64{2, 3}, ids(e.Snapshot().Dreams))

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, []int64{2, 3}, ids(e.Snapshot().Dreams), "stale answer is dropped")
	assert.False(t, e.Loading())
}

func TestLoadingWhileAwaiting(t *testing.T) {
	release := make(chan struct{})
	l := &fakeLister{dreams: sample(), gate: func(api.ListParams) { <-release }}
	e := New(l)

	done := make(chan error, 1)
	go func() { done <- e.Refresh(context.Background()) }()
	require.Eventually(t, e.Loading, time.Second, time.Millisecond)
	assert.Equal(t, EmptyNone, e.Empty())

	close(release)
	require.NoError(t, <-done)
	assert.False(t, e.Loading())
}

func TestEmptyKinds(t *testing.T) {
	ctx := context.Background()

	e := New(&fakeLister{})
	require.NoError(t, e.Refresh(ctx))
	assert.Equal(t, EmptyNoDreams, e.Empty())

	e = New(&fakeLister{dreams: sample()})
	require.NoError(t, e.ToggleMood(ctx, dream.Eerie))
	assert.Equal(t, EmptyNoMatches, e.Empty())

	require.NoError(t, e.ToggleMood(ctx, dream.Eerie))
	assert.Equal(t, EmptyNone, e.Empty())
}

func TestErrorKeepsPreviousResults(t *testing.T) {
	l := &fakeLister{dreams: sample()}
	e := New(l)
	ctx := context.Background()
	require.NoError(t, e.Refresh(ctx))

	l.mu.Lock()
	l.err = errors.New("HTTP 502")
	l.mu.Unlock()

	err := e.ToggleMood(ctx, dream.Vivid)
	require.Error(t, err)
	snap := e.Snapshot()
	assert.False(t, snap.Loading)
	assert.EqualError(t, snap.Err, "HTTP 502")
	assert.Len(t, snap.Dreams, 4)
}

func TestOnChangeSeesLoadingTransitions(t *testing.T) {
	var mu sync.Mutex
	var loading []bool
	e := New(&fakeLister{dreams: sample()}, WithOnChange(func(s Snapshot) {
		mu.Lock()
		loading = append(loading, s.Loading)
		mu.Unlock()
	}))
	require.NoError(t, e.Refresh(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []bool{true, false}, loading)
}

func TestDebouncerRunsOnlyLast(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var ran atomic.Int32
	var last atomic.Int32
	for i := int32(1); i <= 5; i++ {
		i := i
		d.Schedule(func() {
			ran.Add(1)
			last.Store(i)
		})
	}
	assert.True(t, d.Pending())
	require.Eventually(t, func() bool { return ran.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(5), last.Load())
	assert.False(t, d.Pending())
}
