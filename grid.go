package main

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// gridRow is one rendered line of the grid: a single-item order, a
// multi-item summary, or a synthesized per-item sub-row.
type gridRow struct {
	orderID string
	itemID  string
	summary bool
	ctx     cellContext
}

// buildGridRows derives the visible row list from the (already filtered and
// sorted) orders plus expansion state. Single-item orders render one
// full-order row and are never tracked for expansion. Multi-item orders
// render a summary row, and their items as sub-rows while the tracker shows
// them (Expanded, or Collapsing until the animation settles).
func buildGridRows(orders []Order, expansion *expansionTracker) []gridRow {
	var rows []gridRow
	for _, order := range orders {
		if !order.hasMultipleItems() {
			rows = append(rows, gridRow{
				orderID: order.ID,
				itemID:  order.primaryItem().ID,
				ctx:     fullOrderContext(order),
			})
			continue
		}
		rows = append(rows, gridRow{
			orderID: order.ID,
			summary: true,
			ctx:     fullOrderContext(order),
		})
		if expansion.ShowsSubRows(order.ID) {
			for _, item := range order.Items {
				rows = append(rows, gridRow{
					orderID: order.ID,
					itemID:  item.ID,
					ctx:     syntheticItemContext(order, item),
				})
			}
		}
	}
	return rows
}

// ordersGrid wraps a bubbles table whose column set is rebuilt from the
// layout store each refresh. Callbacks surface the row-level gestures the
// orchestrator cares about.
type ordersGrid struct {
	table    table.Model
	rows     []gridRow
	visible  []columnDescriptor
	width    int
	height   int
	onToggle func(orderID string) tea.Cmd
	onEdit   func(orderID string) tea.Cmd
}

func newOrdersGrid(s styles) *ordersGrid {
	model := table.New(
		table.WithColumns([]table.Column{{Title: "Pedidos", Width: 40}}),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	tStyles := table.DefaultStyles()
	tStyles.Header = s.tableHeader
	tStyles.Cell = s.tableCell
	tStyles.Selected = s.tableSelected
	model.SetStyles(tStyles)

	return &ordersGrid{table: model}
}

func (g *ordersGrid) SetCallbacks(onToggle, onEdit func(orderID string) tea.Cmd) {
	g.onToggle = onToggle
	g.onEdit = onEdit
}

// SetLayout composes the rendered column set: the layout store's descriptors
// intersected with the registry, in store order, with store widths. A stale
// descriptor with no registry entry is dropped, never a crash.
func (g *ordersGrid) SetLayout(descriptors []columnDescriptor) {
	visible := make([]columnDescriptor, 0, len(descriptors))
	columns := make([]table.Column, 0, len(descriptors))
	for _, d := range descriptors {
		spec, ok := columnSpecByID(d.ID)
		if !ok {
			continue
		}
		visible = append(visible, d)
		columns = append(columns, table.Column{Title: spec.label, Width: d.Width})
	}
	if len(columns) == 0 {
		columns = []table.Column{{Title: "Pedidos", Width: 40}}
	}
	g.visible = visible
	g.table.SetColumns(columns)
}

// SetRows renders every grid row through the cell dispatch and pushes the
// result into the table. Sub-rows get an indent marker on the leading column.
func (g *ordersGrid) SetRows(rows []gridRow, renderers map[string]cellRenderer) {
	g.rows = rows
	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		cells := make(table.Row, len(g.visible))
		for j, d := range g.visible {
			text := renderCell(d.ID, row.ctx, renderers)
			if j == 0 && row.ctx.kind == cellSyntheticItem {
				text = "↳ " + text
			}
			cells[j] = alignCell(text, d.Width, columnAlignFor(d.ID))
		}
		tableRows[i] = cells
	}
	cursor := g.table.Cursor()
	g.table.SetRows(tableRows)
	if cursor >= len(tableRows) {
		cursor = len(tableRows) - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	if len(tableRows) > 0 {
		g.table.SetCursor(cursor)
	}
}

func (g *ordersGrid) SetSize(width, height int) {
	if height < 4 {
		height = 4
	}
	g.width = width
	g.height = height
	g.table.SetHeight(height - 1)
}

func (g *ordersGrid) SelectedRow() (gridRow, bool) {
	if len(g.rows) == 0 {
		return gridRow{}, false
	}
	idx := g.table.Cursor()
	if idx < 0 || idx >= len(g.rows) {
		return gridRow{}, false
	}
	return g.rows[idx], true
}

func (g *ordersGrid) Update(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	var cmd tea.Cmd
	g.table, cmd = g.table.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case " ":
			if row, ok := g.SelectedRow(); ok && row.summary && g.onToggle != nil {
				cmds = append(cmds, g.onToggle(row.orderID))
			}
		case "enter":
			if row, ok := g.SelectedRow(); ok && g.onEdit != nil {
				cmds = append(cmds, g.onEdit(row.orderID))
			}
		}
	}

	return tea.Batch(cmds...)
}

func (g *ordersGrid) View(s styles, focused bool) string {
	body := g.table.View()
	if focused {
		return s.panelFocused.Copy().Width(g.width).Render(body)
	}
	return s.panel.Copy().Width(g.width).Render(body)
}

func columnAlignFor(id string) columnAlign {
	if spec, ok := columnSpecByID(id); ok {
		return spec.align
	}
	return alignLeft
}

func alignCell(text string, width int, align columnAlign) string {
	if width <= 0 || lipgloss.Width(text) >= width {
		return text
	}
	switch align {
	case alignRight:
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, text)
	case alignCenter:
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
	default:
		return text
	}
}
