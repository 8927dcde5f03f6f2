// Package confirm implements the arm-then-commit step in front of
// irreversible actions.
package confirm

import (
	"errors"
	"sync"
)

// ErrNotArmed is returned by Commit when target was not armed first.
var ErrNotArmed = errors.New("confirm: action not armed")

// Guard remembers at most one armed target.
type Guard struct {
	mu     sync.Mutex
	target string
}

// Arm marks target as awaiting confirmation, replacing any other.
func (g *Guard) Arm(target string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.target = target
}

// Armed reports whether target is waiting for its second step.
func (g *Guard) Armed(target string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return target != "" && g.target == target
}

// Confirmed consumes the arming of target. It is true only when target was
// armed, and disarms the guard either way.
func (g *Guard) Confirmed(target string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	ok := target != "" && g.target == target
	g.target = ""
	return ok
}

// Commit is Confirmed as an error.
func (g *Guard) Commit(target string) error {
	if !g.Confirmed(target) {
		return ErrNotArmed
	}
	return nil
}

// Reset disarms the guard.
func (g *Guard) Reset() {
	g.Arm("")
}
