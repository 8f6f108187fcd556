// Package drag turns pointer and keyboard gestures into move commands.
//
// A Session never changes a tree. It reports a Start when a drag is lifted and a
// Command when it is dropped; applying the command is up to the caller.
package drag

import (
	"strings"

	"navtree/internal/model"
)

const DefaultActivationDistance = 2

type Kind string

const (
	KindMove    Kind = "move"
	KindIndent  Kind = "indent"
	KindOutdent Kind = "outdent"
)

// Command is a discrete drop: ActiveID should end up relative to OverID.
// OverID is empty for indent and outdent.
type Command struct {
	Kind     Kind
	ActiveID string
	OverID   string
}

// Start describes a lifted item.
type Start struct {
	ActiveID    string
	ContainerID string
	Preview     model.MenuItem
}

// Lookup resolves an item id to a copy of the item and its container id.
type Lookup func(id string) (model.MenuItem, string, bool)

type phase int

const (
	phaseIdle phase = iota
	phasePressed
	phaseDragging
)

type Session struct {
	// ActivationDistance is the pointer travel, in cells, needed to lift an item.
	ActivationDistance int

	lookup  Lookup
	phase   phase
	pressID string
	px, py  int
	start   Start
}

func NewSession(lookup Lookup) *Session {
	return &Session{ActivationDistance: DefaultActivationDistance, lookup: lookup}
}

// Press records a pointer down on the row of id. Nothing is lifted yet.
func (s *Session) Press(id string, x, y int) {
	id = strings.TrimSpace(id)
	s.reset()
	if id == "" {
		return
	}
	s.phase = phasePressed
	s.pressID = id
	s.px, s.py = x, y
}

// Motion reports a Start the first time the pointer has travelled far enough from
// the press position.
func (s *Session) Motion(x, y int) (Start, bool) {
	if s.phase != phasePressed {
		return Start{}, false
	}
	if chebyshev(s.px, s.py, x, y) < s.activation() {
		return Start{}, false
	}
	st := Start{ActiveID: s.pressID, ContainerID: model.RootContainer}
	if s.lookup != nil {
		it, containerID, ok := s.lookup(s.pressID)
		if !ok {
			s.reset()
			return Start{}, false
		}
		st.Preview = it
		st.ContainerID = containerID
	}
	s.phase = phaseDragging
	s.start = st
	return st, true
}

// Release ends the gesture. ok is false when the pointer was released outside any
// row. A release before activation is a click and yields no command.
func (s *Session) Release(overID string, ok bool) (Command, bool) {
	dragging := s.phase == phaseDragging
	activeID := s.start.ActiveID
	s.reset()
	if !dragging || !ok {
		return Command{}, false
	}
	overID = strings.TrimSpace(overID)
	if overID == "" {
		return Command{}, false
	}
	return Command{Kind: KindMove, ActiveID: activeID, OverID: overID}, true
}

// Cancel abandons the gesture without a command.
func (s *Session) Cancel() { s.reset() }

func (s *Session) Dragging() bool { return s.phase == phaseDragging }

func (s *Session) Pressed() bool { return s.phase == phasePressed }

// Active returns the lifted item while a drag is in progress.
func (s *Session) Active() (Start, bool) {
	if s.phase != phaseDragging {
		return Start{}, false
	}
	return s.start, true
}

func (s *Session) reset() {
	s.phase = phaseIdle
	s.pressID = ""
	s.start = Start{}
}

func (s *Session) activation() int {
	if s.ActivationDistance <= 0 {
		return DefaultActivationDistance
	}
	return s.ActivationDistance
}

func chebyshev(x0, y0, x1, y1 int) int {
	return max(abs(x1-x0), abs(y1-y0))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
