package main

import (
	"fmt"
	"strings"
	"time"
)

type viewMode string

const (
	viewModeItems   viewMode = "items"
	viewModeCompact viewMode = "compact"
)

type columnAlign int

const (
	alignLeft columnAlign = iota
	alignCenter
	alignRight
)

// columnSpec is the static registry entry for one grid column: display
// metadata only, no behavior. Renderers are bound separately so the same
// registry serves every handler bundle.
type columnSpec struct {
	id    string
	label string
	align columnAlign
	width int
	modes []viewMode
}

var columnRegistry = []columnSpec{
	{id: "indicadores", label: "", align: alignCenter, width: 5, modes: []viewMode{viewModeItems}},
	{id: "fecha", label: "Fecha", align: alignLeft, width: 12, modes: []viewMode{viewModeItems, viewModeCompact}},
	{id: "cliente", label: "Cliente", align: alignLeft, width: 18, modes: []viewMode{viewModeItems, viewModeCompact}},
	{id: "contacto", label: "Contacto", align: alignLeft, width: 15, modes: []viewMode{viewModeItems}},
	{id: "tipo", label: "Tipo", align: alignCenter, width: 11, modes: []viewMode{viewModeItems}},
	{id: "disenio", label: "Diseño", align: alignLeft, width: 20, modes: []viewMode{viewModeItems, viewModeCompact}},
	{id: "envio", label: "Envío", align: alignCenter, width: 13, modes: []viewMode{viewModeItems}},
	{id: "sena", label: "Seña", align: alignRight, width: 9, modes: []viewMode{viewModeItems}},
	{id: "valor", label: "Valor", align: alignRight, width: 9, modes: []viewMode{viewModeItems, viewModeCompact}},
	{id: "restante", label: "Restante", align: alignRight, width: 9, modes: []viewMode{viewModeItems, viewModeCompact}},
	{id: "prioridad", label: "Pri", align: alignCenter, width: 4, modes: []viewMode{viewModeItems}},
	{id: "fabricacion", label: "Fabricación", align: alignCenter, width: 12, modes: []viewMode{viewModeItems, viewModeCompact}},
	{id: "venta", label: "Venta", align: alignCenter, width: 12, modes: []viewMode{viewModeItems, viewModeCompact}},
	{id: "envioEstado", label: "Despacho", align: alignCenter, width: 14, modes: []viewMode{viewModeItems}},
	{id: "seguimiento", label: "Seguimiento", align: alignLeft, width: 14, modes: []viewMode{viewModeItems}},
	{id: "base", label: "Base", align: alignCenter, width: 5, modes: []viewMode{viewModeItems}},
	{id: "vector", label: "Vector", align: alignCenter, width: 7, modes: []viewMode{viewModeItems}},
	{id: "foto", label: "Foto", align: alignCenter, width: 5, modes: []viewMode{viewModeItems}},
}

func columnsForViewMode(mode viewMode) []columnSpec {
	var specs []columnSpec
	for _, spec := range columnRegistry {
		for _, m := range spec.modes {
			if m == mode {
				specs = append(specs, spec)
				break
			}
		}
	}
	return specs
}

func columnSpecByID(id string) (columnSpec, bool) {
	for _, spec := range columnRegistry {
		if spec.id == id {
			return spec, true
		}
	}
	return columnSpec{}, false
}

// Order-level columns are suppressed on expanded sub-rows: repeating them per
// item would present order data as if it varied per item.
var subRowSuppressedColumns = map[string]bool{
	"fecha":       true,
	"cliente":     true,
	"contacto":    true,
	"envio":       true,
	"envioEstado": true,
	"seguimiento": true,
}

const suppressedCellPlaceholder = "—"

type cellKind int

const (
	cellFullOrder cellKind = iota
	cellSyntheticItem
)

// cellContext is the tagged bundle every renderer receives. For
// cellSyntheticItem the embedded order has its items replaced by the single
// synthesized item, so renderers written against "the order's item" keep
// working; the tag stays authoritative and renderers never reach for
// siblings.
type cellContext struct {
	kind  cellKind
	order Order
	item  Item
}

func fullOrderContext(order Order) cellContext {
	return cellContext{kind: cellFullOrder, order: order, item: order.primaryItem()}
}

func syntheticItemContext(order Order, item Item) cellContext {
	synthetic := order
	synthetic.Items = []Item{item}
	return cellContext{kind: cellSyntheticItem, order: synthetic, item: item}
}

type cellRenderer func(ctx cellContext) string

// cellHandlers is the explicit bundle the renderer closures capture; it is
// rebuilt per refresh instead of renderers reaching into globals.
type cellHandlers struct {
	isExpanded func(orderID string) bool
}

// buildCellRenderers wires one renderer per registry column. The grid then
// dispatches purely by column id.
func buildCellRenderers(handlers cellHandlers) map[string]cellRenderer {
	return map[string]cellRenderer{
		"indicadores": renderIndicadores,
		"fecha":       renderFecha,
		"cliente":     renderCliente,
		"contacto":    renderContacto,
		"tipo":        renderTipo,
		"disenio":     makeDisenioRenderer(handlers),
		"envio":       renderEnvio,
		"sena":        renderSena,
		"valor":       renderValor,
		"restante":    renderRestante,
		"prioridad":   renderPrioridad,
		"fabricacion": renderFabricacion,
		"venta":       renderVenta,
		"envioEstado": renderEnvioEstado,
		"seguimiento": renderSeguimiento,
		"base":        makeFileRenderer(func(f FileRefs) string { return f.BaseURL }),
		"vector":      makeFileRenderer(func(f FileRefs) string { return f.VectorURL }),
		"foto":        makeFileRenderer(func(f FileRefs) string { return f.PhotoURL }),
	}
}

// renderCell is the dispatch point: suppression first, then the column's
// renderer. Unknown ids render empty rather than crashing the frame.
func renderCell(id string, ctx cellContext, renderers map[string]cellRenderer) string {
	if ctx.kind == cellSyntheticItem && subRowSuppressedColumns[id] {
		return suppressedCellPlaceholder
	}
	renderer, ok := renderers[id]
	if !ok {
		return ""
	}
	return renderer(ctx)
}

func renderIndicadores(ctx cellContext) string {
	var marks []string
	if pending := pendingTaskCount(ctx.order.Tasks); pending > 0 {
		marks = append(marks, fmt.Sprintf("☰%d", pending))
	}
	if days, near := daysUntilDeadline(ctx.order.DeadlineAt, time.Now()); near {
		if days < 0 {
			days = 0
		}
		marks = append(marks, fmt.Sprintf("⚠%dd", days))
	}
	return strings.Join(marks, " ")
}

func renderFecha(ctx cellContext) string {
	return ctx.order.OrderDate.Format("02/01/2006")
}

func renderCliente(ctx cellContext) string {
	return ctx.order.Customer.FullName()
}

func renderContacto(ctx cellContext) string {
	if ctx.item.Contact.PhoneE164 != "" {
		return ctx.item.Contact.PhoneE164
	}
	return ctx.order.Customer.PhoneE164
}

func renderTipo(ctx cellContext) string {
	if ctx.kind == cellFullOrder && ctx.order.hasMultipleItems() {
		return mixedOrCommon(ctx.order.Items, func(i Item) string { return string(i.StampType) })
	}
	return string(ctx.item.StampType)
}

func makeDisenioRenderer(handlers cellHandlers) cellRenderer {
	return func(ctx cellContext) string {
		if ctx.kind == cellFullOrder && ctx.order.hasMultipleItems() {
			marker := "▸"
			if handlers.isExpanded != nil && handlers.isExpanded(ctx.order.ID) {
				marker = "▾"
			}
			return fmt.Sprintf("%s %d diseños", marker, len(ctx.order.Items))
		}
		name := ctx.item.DesignName
		if strings.TrimSpace(ctx.item.Notes) != "" {
			name += " ✎"
		}
		return name
	}
}

func renderEnvio(ctx cellContext) string {
	return carrierLabel(ctx.order.Shipping.Carrier)
}

func renderSena(ctx cellContext) string {
	if ctx.kind == cellSyntheticItem {
		return formatMoney(ctx.item.DepositValue)
	}
	return formatMoney(ctx.order.PaidAmount)
}

func renderValor(ctx cellContext) string {
	if ctx.kind == cellSyntheticItem {
		return formatMoney(ctx.item.ItemValue)
	}
	return formatMoney(ctx.order.TotalValue)
}

func renderRestante(ctx cellContext) string {
	if ctx.kind == cellSyntheticItem {
		return formatMoney(ctx.item.ItemValue - ctx.item.DepositValue)
	}
	return formatMoney(ctx.order.Balance)
}

func renderPrioridad(ctx cellContext) string {
	if ctx.kind == cellFullOrder && ctx.order.hasMultipleItems() {
		for _, item := range ctx.order.Items {
			if item.IsPriority {
				return "★"
			}
		}
		return ""
	}
	if ctx.item.IsPriority {
		return "★"
	}
	return ""
}

func renderFabricacion(ctx cellContext) string {
	if ctx.kind == cellFullOrder && ctx.order.hasMultipleItems() {
		return mixedOrCommon(ctx.order.Items, func(i Item) string { return string(i.FabricationState) })
	}
	return string(ctx.item.FabricationState)
}

func renderVenta(ctx cellContext) string {
	if ctx.kind == cellFullOrder && ctx.order.hasMultipleItems() {
		return mixedOrCommon(ctx.order.Items, func(i Item) string { return string(i.SaleState) })
	}
	return string(ctx.item.SaleState)
}

func renderEnvioEstado(ctx cellContext) string {
	if ctx.kind == cellFullOrder && ctx.order.hasMultipleItems() {
		return mixedOrCommon(ctx.order.Items, func(i Item) string { return string(i.ShippingState) })
	}
	return string(ctx.item.ShippingState)
}

func renderSeguimiento(ctx cellContext) string {
	return ctx.order.Shipping.TrackingNumber
}

func makeFileRenderer(pick func(FileRefs) string) cellRenderer {
	return func(ctx cellContext) string {
		if pick(ctx.item.Files) != "" {
			return "◆"
		}
		return "·"
	}
}

// mixedOrCommon collapses a per-item field into a summary-row value: the
// shared value when all items agree, VARIOS otherwise.
func mixedOrCommon(items []Item, pick func(Item) string) string {
	if len(items) == 0 {
		return ""
	}
	first := pick(items[0])
	for _, item := range items[1:] {
		if pick(item) != first {
			return "VARIOS"
		}
	}
	return first
}

func carrierLabel(c ShippingCarrier) string {
	switch c {
	case CarrierCorreoArgentino:
		return "Correo Arg."
	case CarrierAndreani:
		return "Andreani"
	case CarrierOCA:
		return "OCA"
	case CarrierMoto:
		return "Moto"
	case CarrierRetira:
		return "Retira"
	default:
		return string(c)
	}
}

func formatMoney(v float64) string {
	return fmt.Sprintf("$%.0f", v)
}

func pendingTaskCount(tasks []Task) int {
	count := 0
	for _, task := range tasks {
		if !task.Done {
			count++
		}
	}
	return count
}

const deadlineWarningDays = 3

// daysUntilDeadline reports the whole days remaining and whether the deadline
// is close enough to warn about. Past-due deadlines return a negative count.
func daysUntilDeadline(deadline *time.Time, now time.Time) (int, bool) {
	if deadline == nil {
		return 0, false
	}
	remaining := deadline.Sub(now)
	return int(remaining.Hours() / 24), remaining <= deadlineWarningDays*24*time.Hour
}
