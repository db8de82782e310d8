package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpansionStartsCollapsed(t *testing.T) {
	tracker := newExpansionTracker()
	assert.Equal(t, expansionCollapsed, tracker.State("o2"))
	assert.False(t, tracker.ShowsSubRows("o2"))
	assert.False(t, tracker.Tracked("o2"))
}

func TestToggleExpandThenSettle(t *testing.T) {
	tracker := newExpansionTracker()

	cmd := tracker.Toggle("o2")
	require.NotNil(t, cmd)
	assert.Equal(t, expansionExpanding, tracker.State("o2"))
	assert.False(t, tracker.ShowsSubRows("o2"))

	tracker.Elapse(expandElapsedMsg{orderID: "o2", generation: 1})
	assert.Equal(t, expansionExpanded, tracker.State("o2"))
	assert.True(t, tracker.ShowsSubRows("o2"))
}

func TestToggleCollapseKeepsSubRowsUntilSettled(t *testing.T) {
	tracker := newExpansionTracker()
	tracker.Toggle("o2")
	tracker.Elapse(expandElapsedMsg{orderID: "o2", generation: 1})

	tracker.Toggle("o2")
	assert.Equal(t, expansionCollapsing, tracker.State("o2"))
	// Sub-rows stay visible through the closing animation.
	assert.True(t, tracker.ShowsSubRows("o2"))

	tracker.Elapse(expandElapsedMsg{orderID: "o2", generation: 2})
	assert.Equal(t, expansionCollapsed, tracker.State("o2"))
	assert.False(t, tracker.ShowsSubRows("o2"))
	assert.False(t, tracker.Tracked("o2"))
}

func TestToggleDuringAnimationCoalesces(t *testing.T) {
	tracker := newExpansionTracker()

	tracker.Toggle("o2") // generation 1, Expanding
	tracker.Toggle("o2") // generation 2, flips to Collapsing immediately
	assert.Equal(t, expansionCollapsing, tracker.State("o2"))

	// The first animation's message is stale and must be ignored.
	tracker.Elapse(expandElapsedMsg{orderID: "o2", generation: 1})
	assert.Equal(t, expansionCollapsing, tracker.State("o2"))

	tracker.Elapse(expandElapsedMsg{orderID: "o2", generation: 2})
	assert.False(t, tracker.Tracked("o2"))
}

func TestToggleWhileCollapsingReopens(t *testing.T) {
	tracker := newExpansionTracker()
	tracker.Toggle("o2")
	tracker.Elapse(expandElapsedMsg{orderID: "o2", generation: 1})
	tracker.Toggle("o2") // Collapsing
	tracker.Toggle("o2") // back to Expanding

	assert.Equal(t, expansionExpanding, tracker.State("o2"))
	tracker.Elapse(expandElapsedMsg{orderID: "o2", generation: 3})
	assert.Equal(t, expansionExpanded, tracker.State("o2"))
}

func TestElapseForUnknownOrderIsNoOp(t *testing.T) {
	tracker := newExpansionTracker()
	tracker.Elapse(expandElapsedMsg{orderID: "ghost", generation: 1})
	assert.False(t, tracker.Tracked("ghost"))
}

func TestTrackersAreIndependentPerOrder(t *testing.T) {
	tracker := newExpansionTracker()
	tracker.Toggle("o2")
	tracker.Toggle("o5")
	tracker.Elapse(expandElapsedMsg{orderID: "o2", generation: 1})

	assert.Equal(t, expansionExpanded, tracker.State("o2"))
	assert.Equal(t, expansionExpanding, tracker.State("o5"))
}

func TestResetDropsAllState(t *testing.T) {
	tracker := newExpansionTracker()
	tracker.Toggle("o2")
	tracker.Elapse(expandElapsedMsg{orderID: "o2", generation: 1})

	tracker.Reset()
	assert.False(t, tracker.Tracked("o2"))

	// A message from before the reset must not resurrect the entry.
	tracker.Elapse(expandElapsedMsg{orderID: "o2", generation: 1})
	assert.Equal(t, expansionCollapsed, tracker.State("o2"))
}
