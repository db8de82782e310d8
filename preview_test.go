package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPreviewShowsOverdueDeadline(t *testing.T) {
	p := newPreviewPane(newStyles())
	order := sampleOrders()[0]
	past := date(2026, time.August, 1)
	order.DeadlineAt = &past

	out := p.renderOrder(order, date(2026, time.August, 10))
	assert.Contains(t, out, "(vencido)")
	assert.NotContains(t, out, "en 0 días")
}

func TestPreviewShowsNearDeadlineCountdown(t *testing.T) {
	p := newPreviewPane(newStyles())
	order := sampleOrders()[0]
	soon := date(2026, time.August, 12)
	order.DeadlineAt = &soon

	out := p.renderOrder(order, date(2026, time.August, 10))
	assert.Contains(t, out, "(en 2 días)")
	assert.NotContains(t, out, "(vencido)")
}

func TestTasksMarkdownPendingFirst(t *testing.T) {
	due := date(2026, time.September, 1)
	md := tasksMarkdown([]Task{
		{Title: "Enviar prueba", Done: true},
		{Title: "Confirmar medidas", Done: false, DueAt: &due},
	})
	assert.Contains(t, md, "- [ ] Confirmar medidas (01/09)")
	assert.Contains(t, md, "- [x] Enviar prueba")
	assert.Less(t, strings.Index(md, "Confirmar medidas"), strings.Index(md, "Enviar prueba"))
}

func TestTasksMarkdownEmpty(t *testing.T) {
	assert.Empty(t, tasksMarkdown(nil))
}
