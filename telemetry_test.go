package main

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readEvents(t *testing.T, path string) []gridEvent {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var events []gridEvent
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var event gridEvent
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &event))
		events = append(events, event)
	}
	require.NoError(t, scanner.Err())
	return events
}

func TestTelemetryEmitAppendsNDJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.ndjson")
	logger := newTelemetryLogger(path)

	logger.Emit(gridEvent{Event: "row_toggle", OrderID: "o2"})
	logger.Emit(gridEvent{Event: "field_updated", ItemID: "i3", Column: "Venta", Value: "PAGADO"})

	events := readEvents(t, path)
	require.Len(t, events, 2)
	assert.Equal(t, "row_toggle", events[0].Event)
	assert.Equal(t, "o2", events[0].OrderID)
	assert.Equal(t, events[0].SessionID, events[1].SessionID)
	assert.NotEmpty(t, events[0].SessionID)
	assert.False(t, events[0].Timestamp.IsZero())
	assert.Equal(t, "PAGADO", events[1].Value)
}

func TestTelemetryEmitIgnoresEmptyEvent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.ndjson")
	logger := newTelemetryLogger(path)
	logger.Emit(gridEvent{OrderID: "o1"})

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestTelemetryNilLoggerIsSafe(t *testing.T) {
	var logger *telemetryLogger
	assert.NotPanics(t, func() {
		logger.Emit(gridEvent{Event: "row_toggle"})
	})
}

func TestTelemetrySessionIDsDiffer(t *testing.T) {
	a := newTelemetrySessionID()
	b := newTelemetrySessionID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
