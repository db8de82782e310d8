package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleStream = `{"session_id":"aaaa1111","timestamp":"2026-08-29T10:00:00Z","event":"session_start"}
{"session_id":"aaaa1111","timestamp":"2026-08-29T10:00:05Z","event":"row_toggle","order_id":"o2"}
{"session_id":"aaaa1111","timestamp":"2026-08-29T10:00:09Z","event":"field_updated","item_id":"i3","column":"Venta","value":"PAGADO"}
not json at all
{"session_id":"bbbb2222","timestamp":"2026-08-29T11:00:00Z","event":"session_start"}
`

func writeStream(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "activity.ndjson")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseActivityLog(t *testing.T) {
	records, skipped, err := parseActivityLog(writeStream(t, sampleStream))
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, records, 4)
	assert.Equal(t, "row_toggle", records[1].Event)
	assert.Equal(t, "o2", records[1].OrderID)
	assert.Equal(t, time.Date(2026, time.August, 29, 10, 0, 5, 0, time.UTC), records[1].Timestamp)
}

func TestFilterRecords(t *testing.T) {
	records, _, err := parseActivityLog(writeStream(t, sampleStream))
	require.NoError(t, err)

	byEvent := filterRecords(records, "session_start", "")
	assert.Len(t, byEvent, 2)

	bySession := filterRecords(records, "", "aaaa1111")
	assert.Len(t, bySession, 3)

	both := filterRecords(records, "session_start", "bbbb2222")
	require.Len(t, both, 1)
	assert.Equal(t, "bbbb2222", both[0].SessionID)
}

func TestGroupSessionsPreservesOrder(t *testing.T) {
	records, _, err := parseActivityLog(writeStream(t, sampleStream))
	require.NoError(t, err)

	sessions := groupSessions(records)
	require.Len(t, sessions, 2)
	assert.Equal(t, "aaaa1111", sessions[0].id)
	assert.Len(t, sessions[0].records, 3)
	assert.Equal(t, "bbbb2222", sessions[1].id)
}

func TestRenderSessions(t *testing.T) {
	records, _, err := parseActivityLog(writeStream(t, sampleStream))
	require.NoError(t, err)

	out := renderSessions(groupSessions(records))
	assert.Contains(t, out, "Sesión aaaa1111 · 3 eventos")
	assert.Contains(t, out, "row_toggle")
	assert.Contains(t, out, "pedido=o2")
	assert.Contains(t, out, "col=Venta")
}

func TestRenderTally(t *testing.T) {
	records, _, err := parseActivityLog(writeStream(t, sampleStream))
	require.NoError(t, err)

	out := renderTally(records)
	lines := strings.Split(out, "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "4 eventos en total", lines[0])
	// Highest count first.
	assert.Contains(t, lines[1], "session_start")
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abcdefgh", shortID("abcdefghijkl"))
	assert.Equal(t, "abc", shortID("abc"))
}
