// Command formatlogs turns the grid's ndjson activity stream into a readable
// report: one block per session, events grouped and counted, raw lines on
// request. It reads the stream the TUI appends to and never modifies it.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

type activityRecord struct {
	SessionID string            `json:"session_id"`
	Timestamp time.Time         `json:"timestamp"`
	Event     string            `json:"event"`
	OrderID   string            `json:"order_id,omitempty"`
	ItemID    string            `json:"item_id,omitempty"`
	Column    string            `json:"column,omitempty"`
	Value     string            `json:"value,omitempty"`
	Extra     map[string]string `json:"extra,omitempty"`
}

type session struct {
	id      string
	records []activityRecord
}

func main() {
	var (
		inputPath   string
		outputPath  string
		eventFilter string
		sessionOnly string
		tally       bool
	)
	flag.StringVar(&inputPath, "in", "", "activity log path (required)")
	flag.StringVar(&outputPath, "out", "", "output file path (defaults to stdout)")
	flag.StringVar(&eventFilter, "event", "", "only show events of this name")
	flag.StringVar(&sessionOnly, "session", "", "only show one session id")
	flag.BoolVar(&tally, "tally", false, "print per-event counts instead of the full stream")
	flag.Parse()

	if inputPath == "" {
		exitWithError(errors.New("missing --in path"))
	}

	records, skipped, err := parseActivityLog(inputPath)
	if err != nil {
		exitWithError(fmt.Errorf("parse log: %w", err))
	}

	if eventFilter != "" || sessionOnly != "" {
		records = filterRecords(records, eventFilter, sessionOnly)
	}

	var rendered string
	if tally {
		rendered = renderTally(records)
	} else {
		rendered = renderSessions(groupSessions(records))
	}
	if skipped > 0 {
		rendered += fmt.Sprintf("\n(%d malformed lines skipped)", skipped)
	}

	if outputPath == "" {
		fmt.Println(rendered)
		return
	}
	if err := os.WriteFile(outputPath, []byte(rendered+"\n"), 0o644); err != nil {
		exitWithError(fmt.Errorf("write output: %w", err))
	}
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "formatlogs: %v\n", err)
	os.Exit(1)
}

// parseActivityLog reads the ndjson stream, one record per line. Malformed
// lines are counted and skipped; a partially written tail line must not sink
// the whole report.
func parseActivityLog(path string) ([]activityRecord, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer file.Close()

	var records []activityRecord
	skipped := 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var record activityRecord
		if err := json.Unmarshal([]byte(line), &record); err != nil || record.Event == "" {
			skipped++
			continue
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, err
	}
	return records, skipped, nil
}

func filterRecords(records []activityRecord, event, sessionID string) []activityRecord {
	out := records[:0:0]
	for _, r := range records {
		if event != "" && r.Event != event {
			continue
		}
		if sessionID != "" && r.SessionID != sessionID {
			continue
		}
		out = append(out, r)
	}
	return out
}

// groupSessions splits the stream by session id, preserving first-seen order.
func groupSessions(records []activityRecord) []session {
	index := make(map[string]int)
	var sessions []session
	for _, r := range records {
		i, ok := index[r.SessionID]
		if !ok {
			i = len(sessions)
			index[r.SessionID] = i
			sessions = append(sessions, session{id: r.SessionID})
		}
		sessions[i].records = append(sessions[i].records, r)
	}
	return sessions
}

func renderSessions(sessions []session) string {
	var out []string
	for _, s := range sessions {
		out = append(out, renderSession(s)...)
		out = append(out, "")
	}
	if len(out) > 0 {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

func renderSession(s session) []string {
	var out []string
	out = append(out, "------------------")
	header := fmt.Sprintf("Sesión %s · %d eventos", shortID(s.id), len(s.records))
	if len(s.records) > 0 {
		start := s.records[0].Timestamp
		end := s.records[len(s.records)-1].Timestamp
		header += fmt.Sprintf(" · %s → %s", start.Format("02/01 15:04:05"), end.Format("15:04:05"))
	}
	out = append(out, header)
	out = append(out, "------------------")
	for _, r := range s.records {
		out = append(out, renderRecord(r))
	}
	return out
}

func renderRecord(r activityRecord) string {
	parts := []string{r.Timestamp.Format("15:04:05"), fmt.Sprintf("%-22s", r.Event)}
	if r.OrderID != "" {
		parts = append(parts, "pedido="+shortID(r.OrderID))
	}
	if r.ItemID != "" {
		parts = append(parts, "item="+shortID(r.ItemID))
	}
	if r.Column != "" {
		parts = append(parts, "col="+r.Column)
	}
	if r.Value != "" {
		parts = append(parts, "valor="+r.Value)
	}
	extraKeys := make([]string, 0, len(r.Extra))
	for k := range r.Extra {
		extraKeys = append(extraKeys, k)
	}
	sort.Strings(extraKeys)
	for _, k := range extraKeys {
		parts = append(parts, k+"="+r.Extra[k])
	}
	return "  " + strings.Join(parts, "  ")
}

func renderTally(records []activityRecord) string {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Event]++
	}
	events := make([]string, 0, len(counts))
	for event := range counts {
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool {
		if counts[events[i]] != counts[events[j]] {
			return counts[events[i]] > counts[events[j]]
		}
		return events[i] < events[j]
	})
	var out []string
	out = append(out, fmt.Sprintf("%d eventos en total", len(records)))
	for _, event := range events {
		out = append(out, fmt.Sprintf("  %6d  %s", counts[event], event))
	}
	return strings.Join(out, "\n")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
