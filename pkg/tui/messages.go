package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/dreamlog/pkg/api"
	"tableflip.dev/dreamlog/pkg/calendar"
	"tableflip.dev/dreamlog/pkg/dream"
	"tableflip.dev/dreamlog/pkg/session"
	"tableflip.dev/dreamlog/pkg/stats"
	"tableflip.dev/dreamlog/pkg/store"
)

// journalChangedMsg tells the journal tab to reread the engine snapshot.
type journalChangedMsg struct{}

type sessionMsg struct {
	event session.Event
}

type storageMsg struct {
	event store.Event
}

type authDoneMsg struct {
	err error
}

type tagsLoadedMsg struct {
	tags []string
	err  error
}

type calendarLoadedMsg struct {
	index calendar.Index
	err   error
}

type statsLoadedMsg struct {
	detailed *stats.Detailed
	err      error
}

type savedMsg struct {
	dream   *dream.Dream
	editing bool
	err     error
}

type deletedMsg struct {
	id  int64
	err error
}

type exportedMsg struct {
	path string
	err  error
}

type importedMsg struct {
	result *api.ImportResult
	err    error
}

// settingsDoneMsg reports the outcome of an account change.
type settingsDoneMsg struct {
	status string
	err    error
}

type accountDeletedMsg struct {
	err error
}

// sender forwards messages produced outside the update loop, by the journal
// engine and session subscribers, into the program. Messages sent before a
// program is attached are queued.
type sender struct {
	mu    sync.Mutex
	send  func(tea.Msg)
	queue []tea.Msg
}

// Attach starts delivery to fn and flushes the queue.
func (s *sender) Attach(fn func(tea.Msg)) {
	s.mu.Lock()
	s.send = fn
	queued := s.queue
	s.queue = nil
	s.mu.Unlock()
	for _, msg := range queued {
		go fn(msg)
	}
}

// Send never blocks: callbacks can fire from inside Update, where a
// synchronous program.Send would deadlock.
func (s *sender) Send(msg tea.Msg) {
	s.mu.Lock()
	fn := s.send
	if fn == nil {
		s.queue = append(s.queue, msg)
	}
	s.mu.Unlock()
	if fn != nil {
		go fn(msg)
	}
}
