package theme

import (
	"fmt"
	"sync"

	"tableflip.dev/dreamlog/pkg/store"
)

// Store persists the selected palette id and pushes the palette to its
// sinks. It is independent of the session and survives sign-out.
type Store struct {
	mu      sync.Mutex
	storage store.Storage
	sinks   []Sink
	current Palette
}

func NewStore(storage store.Storage, sinks ...Sink) *Store {
	return &Store{storage: storage, sinks: sinks, current: Default()}
}

// AddSink registers s and brings it up to date with the current palette.
func (s *Store) AddSink(sink Sink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sinks = append(s.sinks, sink)
	Apply(s.current, sink)
}

// Load reads the persisted id, falling back to the default, and applies it.
func (s *Store) Load() Palette {
	id, _ := s.storage.Get(store.KeyTheme)
	p, _ := Lookup(id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = p
	Apply(p, s.sinks...)
	return p
}

// Set persists and applies id. Unknown ids select the default palette.
func (s *Store) Set(id string) (Palette, error) {
	p, _ := Lookup(id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.storage.Set(store.KeyTheme, p.ID); err != nil {
		return s.current, fmt.Errorf("theme: persist %s: %w", p.ID, err)
	}
	s.current = p
	Apply(p, s.sinks...)
	return p, nil
}

func (s *Store) Current() Palette {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
