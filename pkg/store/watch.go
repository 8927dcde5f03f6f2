package store

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes which slice of client state changed on disk.
type EventType int

const (
	// EventSessionChanged fires when the token or user file changes, e.g.
	// a sign-in or sign-out from another dreamlog process.
	EventSessionChanged EventType = iota

	// EventThemeChanged fires when the stored theme id changes.
	EventThemeChanged
)

func (t EventType) String() string {
	switch t {
	case EventSessionChanged:
		return "session"
	case EventThemeChanged:
		return "theme"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event is emitted by Watch when a storage key changes.
type Event struct {
	Type EventType
	Key  string
}

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel; events are dropped rather than blocking the watcher.
func (s *Disk) Watch(ctx context.Context) (<-chan Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				slog.Debug("store: watcher close", "err", err)
			}
		})
	}

	if err := watcher.Add(s.basePath); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", s.basePath, err)
	}

	events := make(chan Event, 16)

	go func() {
		defer close(events)
		defer closeWatcher()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Debug("store: watcher error", "err", err)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev, ok := s.eventForPath(evt.Name); ok {
					throttle.Enqueue(ev, send)
				}
			}
		}
	}()

	return events, nil
}

// eventForPath maps a file under the base path to the key it stores.
func (s *Disk) eventForPath(path string) (Event, bool) {
	rel, err := filepath.Rel(s.basePath, path)
	if err != nil || rel == "." || filepath.Dir(rel) != "." {
		return Event{}, false
	}
	switch rel {
	case KeyToken, KeyUser:
		return Event{Type: EventSessionChanged, Key: rel}, true
	case KeyTheme:
		return Event{Type: EventThemeChanged, Key: rel}, true
	}
	return Event{}, false
}

// eventThrottle coalesces a burst of writes (a sign-in touches two files)
// into one notification per event type.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]string
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]string),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending[ev.Type] = ev.Key
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[EventType]string)
	t.timer = nil
	t.mu.Unlock()

	for typ, key := range pending {
		send(Event{Type: typ, Key: key})
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}

