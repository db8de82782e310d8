package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type expansionState int

const (
	expansionCollapsed expansionState = iota
	expansionExpanding
	expansionExpanded
	expansionCollapsing
)

const expandAnimationDuration = 220 * time.Millisecond

// expandElapsedMsg fires when an expand/collapse animation window ends. The
// generation stamps the animation that scheduled it: a toggle issued while
// the animation runs bumps the generation, so the stale message arrives and
// is ignored. That is the whole cancellation mechanism.
type expandElapsedMsg struct {
	orderID    string
	generation int
}

// expansionTracker is the per-order expand/collapse state machine. Absence
// from the map reads as Collapsed, which keeps the machine total without
// seeding an entry for every order. Only multi-item orders are ever toggled;
// the orchestrator enforces that.
type expansionTracker struct {
	states      map[string]expansionState
	generations map[string]int
}

func newExpansionTracker() *expansionTracker {
	return &expansionTracker{
		states:      make(map[string]expansionState),
		generations: make(map[string]int),
	}
}

func (t *expansionTracker) State(orderID string) expansionState {
	return t.states[orderID]
}

// Expanded or Collapsing both render sub-rows; Collapsing keeps them visible
// while the closing animation plays.
func (t *expansionTracker) ShowsSubRows(orderID string) bool {
	state := t.State(orderID)
	return state == expansionExpanded || state == expansionCollapsing
}

func (t *expansionTracker) IsExpanded(orderID string) bool {
	return t.State(orderID) == expansionExpanded
}

func (t *expansionTracker) IsExpanding(orderID string) bool {
	return t.State(orderID) == expansionExpanding
}

func (t *expansionTracker) IsCollapsing(orderID string) bool {
	return t.State(orderID) == expansionCollapsing
}

// Toggle advances the machine and returns the command that will deliver the
// animation-elapsed message. A toggle during an in-flight animation coalesces
// into the opposite transition immediately.
func (t *expansionTracker) Toggle(orderID string) tea.Cmd {
	var next expansionState
	switch t.State(orderID) {
	case expansionCollapsed:
		next = expansionExpanding
	case expansionExpanding:
		next = expansionCollapsing
	case expansionExpanded:
		next = expansionCollapsing
	case expansionCollapsing:
		next = expansionExpanding
	}
	t.states[orderID] = next
	t.generations[orderID]++
	generation := t.generations[orderID]
	return tea.Tick(expandAnimationDuration, func(time.Time) tea.Msg {
		return expandElapsedMsg{orderID: orderID, generation: generation}
	})
}

// Elapse settles an animation into its terminal state. Messages from a
// superseded animation carry an old generation and are dropped.
func (t *expansionTracker) Elapse(msg expandElapsedMsg) {
	if t.generations[msg.orderID] != msg.generation {
		return
	}
	switch t.State(msg.orderID) {
	case expansionExpanding:
		t.states[msg.orderID] = expansionExpanded
	case expansionCollapsing:
		delete(t.states, msg.orderID)
		delete(t.generations, msg.orderID)
	}
}

// Reset drops all tracked state; called when the order set changes identity
// (full refetch). Expansion is session state and is never persisted.
func (t *expansionTracker) Reset() {
	t.states = make(map[string]expansionState)
	t.generations = make(map[string]int)
}

// Tracked reports whether an order currently has an expansion entry; used by
// tests to assert single-item orders never get one.
func (t *expansionTracker) Tracked(orderID string) bool {
	_, ok := t.states[orderID]
	return ok
}
