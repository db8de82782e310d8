package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// previewPane shows the selected order in full: customer and shipping info,
// payment progress, every item with its three status axes, and the pending
// tasks rendered as Markdown.
type previewPane struct {
	vp       viewport.Model
	bar      progress.Model
	styles   styles
	width    int
	height   int
	orderID  string
	rendered string
}

func newPreviewPane(s styles) previewPane {
	bar := progress.New(progress.WithDefaultGradient())
	bar.ShowPercentage = false
	return previewPane{
		vp:     viewport.New(0, 0),
		bar:    bar,
		styles: s,
	}
}

func (p *previewPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	innerWidth := width - 2
	if innerWidth < 0 {
		innerWidth = 0
	}
	p.vp.Width = innerWidth
	p.vp.Height = height - 2
	if p.vp.Height < 0 {
		p.vp.Height = 0
	}
	p.bar.Width = innerWidth - 4
	if p.bar.Width < 8 {
		p.bar.Width = 8
	}
	setMarkdownWordWrap(innerWidth)
}

// SetOrder re-renders the pane content. Passing a nil order clears it.
func (p *previewPane) SetOrder(order *Order, now time.Time) {
	if order == nil {
		p.orderID = ""
		p.rendered = ""
		p.vp.SetContent("")
		return
	}
	keepOffset := order.ID == p.orderID
	offset := p.vp.YOffset
	p.orderID = order.ID
	p.rendered = p.renderOrder(*order, now)
	p.vp.SetContent(p.rendered)
	if keepOffset {
		p.vp.SetYOffset(offset)
	} else {
		p.vp.GotoTop()
	}
}

func (p *previewPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.vp, cmd = p.vp.Update(msg)
	return cmd
}

func (p previewPane) View(focused bool) string {
	frame := p.styles.panel
	if focused {
		frame = p.styles.panelFocused
	}
	if p.orderID == "" {
		empty := lipgloss.NewStyle().
			Foreground(palette.textMuted).
			Width(p.vp.Width).
			Height(p.vp.Height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("Sin pedido seleccionado")
		return frame.Copy().Width(p.width - 2).Render(empty)
	}
	return frame.Copy().Width(p.width - 2).Render(p.vp.View())
}

func (p previewPane) renderOrder(order Order, now time.Time) string {
	var b strings.Builder

	title := lipgloss.NewStyle().Bold(true).Foreground(palette.accent)
	label := lipgloss.NewStyle().Foreground(palette.textMuted)

	b.WriteString(title.Render(order.Customer.FullName()))
	b.WriteString("\n")
	b.WriteString(label.Render("Pedido del "))
	b.WriteString(order.OrderDate.Format("02/01/2006"))
	if days, ok := daysUntilDeadline(order.DeadlineAt, now); ok {
		b.WriteString(label.Render("  ·  entrega "))
		b.WriteString(order.DeadlineAt.Format("02/01/2006"))
		switch {
		case days < 0:
			b.WriteString(lipgloss.NewStyle().Foreground(palette.danger).Render(" (vencido)"))
		case days <= 3:
			b.WriteString(lipgloss.NewStyle().Foreground(palette.warning).Render(fmt.Sprintf(" (en %d días)", days)))
		}
	}
	b.WriteString("\n\n")

	primary := order.primaryItem()
	if primary.Contact.PhoneE164 != "" {
		b.WriteString(label.Render("Contacto  "))
		b.WriteString(primary.Contact.PhoneE164)
		if primary.Contact.Channel != "" {
			b.WriteString(" (" + primary.Contact.Channel + ")")
		}
		b.WriteString("\n")
	}
	if order.Customer.Email != "" {
		b.WriteString(label.Render("Email     "))
		b.WriteString(order.Customer.Email)
		b.WriteString("\n")
	}
	b.WriteString(label.Render("Envío     "))
	b.WriteString(carrierLabel(order.Shipping.Carrier))
	if order.Shipping.Service != "" {
		b.WriteString(" · " + order.Shipping.Service)
	}
	if order.Shipping.TrackingNumber != "" {
		b.WriteString("\n")
		b.WriteString(label.Render("Tracking  "))
		b.WriteString(order.Shipping.TrackingNumber)
	}
	b.WriteString("\n\n")

	b.WriteString(p.renderPayment(order))
	b.WriteString("\n\n")

	for i, item := range order.Items {
		b.WriteString(p.renderItem(i+1, item, len(order.Items) > 1))
	}

	if md := tasksMarkdown(order.Tasks); md != "" {
		b.WriteString(renderMarkdown(md))
	}

	return b.String()
}

func (p previewPane) renderPayment(order Order) string {
	ratio := 0.0
	if order.TotalValue > 0 {
		ratio = order.PaidAmount / order.TotalValue
		if ratio > 1 {
			ratio = 1
		}
	}
	label := lipgloss.NewStyle().Foreground(palette.textMuted)
	line := fmt.Sprintf("%s de %s", formatMoney(order.PaidAmount), formatMoney(order.TotalValue))
	if order.Balance > 0 {
		line += fmt.Sprintf("  ·  restan %s", formatMoney(order.Balance))
	}
	return label.Render("Pago      ") + line + "\n" + p.bar.ViewAs(ratio)
}

func (p previewPane) renderItem(n int, item Item, numbered bool) string {
	var b strings.Builder
	head := lipgloss.NewStyle().Bold(true)
	label := lipgloss.NewStyle().Foreground(palette.textMuted)

	name := item.DesignName
	if name == "" {
		name = "(sin nombre)"
	}
	if numbered {
		b.WriteString(head.Render(fmt.Sprintf("%d. %s", n, name)))
	} else {
		b.WriteString(head.Render(name))
	}
	if item.IsPriority {
		b.WriteString(lipgloss.NewStyle().Foreground(palette.warning).Render("  ★ prioridad"))
	}
	b.WriteString("\n")

	b.WriteString(label.Render("   tipo "))
	b.WriteString(string(item.StampType))
	if item.RequestedWidthMM > 0 && item.RequestedHeightMM > 0 {
		b.WriteString(fmt.Sprintf("  ·  %d×%d mm", item.RequestedWidthMM, item.RequestedHeightMM))
	}
	b.WriteString("\n")
	b.WriteString(label.Render("   estado "))
	b.WriteString(fmt.Sprintf("%s / %s / %s", item.FabricationState, item.SaleState, item.ShippingState))
	b.WriteString("\n")
	if item.Notes != "" {
		b.WriteString(renderMarkdown(item.Notes))
	}
	b.WriteString("\n")
	return b.String()
}

// tasksMarkdown renders pending tasks first, then the done ones, as a
// Markdown checklist.
func tasksMarkdown(tasks []Task) string {
	if len(tasks) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("## Tareas\n\n")
	write := func(task Task) {
		mark := " "
		if task.Done {
			mark = "x"
		}
		b.WriteString(fmt.Sprintf("- [%s] %s", mark, task.Title))
		if task.DueAt != nil {
			b.WriteString(" (" + task.DueAt.Format("02/01") + ")")
		}
		b.WriteString("\n")
		if task.Description != "" {
			b.WriteString("  " + task.Description + "\n")
		}
	}
	for _, task := range tasks {
		if !task.Done {
			write(task)
		}
	}
	for _, task := range tasks {
		if task.Done {
			write(task)
		}
	}
	return b.String()
}
