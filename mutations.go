package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type fieldKind int

const (
	fieldFabricacion fieldKind = iota
	fieldVenta
	fieldEnvioEstado
	fieldTipo
	fieldEnvio
)

func (f fieldKind) label() string {
	switch f {
	case fieldFabricacion:
		return "Fabricación"
	case fieldVenta:
		return "Venta"
	case fieldEnvioEstado:
		return "Despacho"
	case fieldTipo:
		return "Tipo"
	case fieldEnvio:
		return "Transportista"
	default:
		return "Campo"
	}
}

// successToast is the confirmation shown after every accepted update.
func (f fieldKind) successToast() string {
	switch f {
	case fieldFabricacion:
		return "Fabricación actualizada"
	case fieldVenta:
		return "Venta actualizada"
	case fieldEnvioEstado:
		return "Despacho actualizado"
	case fieldTipo:
		return "Tipo actualizado"
	case fieldEnvio:
		return "Transportista actualizado"
	default:
		return "Campo actualizado"
	}
}

// fieldUpdatedMsg resolves one dispatched field edit. err == nil means the
// remote store accepted the value and the model may now apply it locally.
type fieldUpdatedMsg struct {
	field    fieldKind
	targetID string
	value    string
	err      error
}

const mutationTimeout = 10 * time.Second

// mutationDispatcher implements the write-through protocol: validate, send
// the single-field remote update, and only report success once the remote
// store accepted it. The local order list is untouched on failure, so there
// is never anything to roll back.
type mutationDispatcher struct {
	repo orderRepository
}

func newMutationDispatcher(repo orderRepository) *mutationDispatcher {
	return &mutationDispatcher{repo: repo}
}

func (d *mutationDispatcher) updateFabrication(itemID string, state FabricationState) tea.Cmd {
	if err := validateTarget(itemID, state.IsValid(), string(state)); err != nil {
		return failCmd(fieldFabricacion, itemID, string(state), err)
	}
	return d.dispatch(fieldFabricacion, itemID, string(state), func(ctx context.Context) error {
		return d.repo.UpdateItemFabrication(ctx, itemID, state)
	})
}

func (d *mutationDispatcher) updateSale(itemID string, state SaleState) tea.Cmd {
	if err := validateTarget(itemID, state.IsValid(), string(state)); err != nil {
		return failCmd(fieldVenta, itemID, string(state), err)
	}
	return d.dispatch(fieldVenta, itemID, string(state), func(ctx context.Context) error {
		return d.repo.UpdateItemSale(ctx, itemID, state)
	})
}

func (d *mutationDispatcher) updateShipping(itemID string, state ShippingState) tea.Cmd {
	if err := validateTarget(itemID, state.IsValid(), string(state)); err != nil {
		return failCmd(fieldEnvioEstado, itemID, string(state), err)
	}
	return d.dispatch(fieldEnvioEstado, itemID, string(state), func(ctx context.Context) error {
		return d.repo.UpdateItemShipping(ctx, itemID, state)
	})
}

func (d *mutationDispatcher) updateStampType(itemID string, stampType StampType) tea.Cmd {
	if err := validateTarget(itemID, stampType.IsValid(), string(stampType)); err != nil {
		return failCmd(fieldTipo, itemID, string(stampType), err)
	}
	return d.dispatch(fieldTipo, itemID, string(stampType), func(ctx context.Context) error {
		return d.repo.UpdateItemStampType(ctx, itemID, stampType)
	})
}

func (d *mutationDispatcher) updateCarrier(orderID string, carrier ShippingCarrier) tea.Cmd {
	if err := validateTarget(orderID, carrier.IsValid(), string(carrier)); err != nil {
		return failCmd(fieldEnvio, orderID, string(carrier), err)
	}
	return d.dispatch(fieldEnvio, orderID, string(carrier), func(ctx context.Context) error {
		return d.repo.UpdateOrderCarrier(ctx, orderID, carrier)
	})
}

func (d *mutationDispatcher) dispatch(field fieldKind, targetID, value string, do func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), mutationTimeout)
		defer cancel()
		return fieldUpdatedMsg{field: field, targetID: targetID, value: value, err: do(ctx)}
	}
}

func validateTarget(id string, valid bool, value string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("pedidos: empty target id")
	}
	if !valid {
		return fmt.Errorf("pedidos: %q is not an allowed value", value)
	}
	return nil
}

func failCmd(field fieldKind, targetID, value string, err error) tea.Cmd {
	return func() tea.Msg {
		return fieldUpdatedMsg{field: field, targetID: targetID, value: value, err: err}
	}
}

// applyFieldUpdate folds a confirmed edit into the order list, producing a
// new list with exactly one field replaced. Untouched orders are shared with
// the previous list; anything an in-flight render holds stays coherent.
func applyFieldUpdate(orders []Order, msg fieldUpdatedMsg) []Order {
	if msg.field == fieldEnvio {
		return applyOrderCarrier(orders, msg.targetID, ShippingCarrier(msg.value))
	}
	return applyItemField(orders, msg.targetID, func(item *Item) {
		switch msg.field {
		case fieldFabricacion:
			item.FabricationState = FabricationState(msg.value)
		case fieldVenta:
			item.SaleState = SaleState(msg.value)
		case fieldEnvioEstado:
			item.ShippingState = ShippingState(msg.value)
		case fieldTipo:
			item.StampType = StampType(msg.value)
		}
	})
}

func applyItemField(orders []Order, itemID string, mutate func(*Item)) []Order {
	out := make([]Order, len(orders))
	copy(out, orders)
	for oi := range out {
		for ii, item := range out[oi].Items {
			if item.ID != itemID {
				continue
			}
			items := append([]Item(nil), out[oi].Items...)
			mutate(&items[ii])
			out[oi].Items = items
			return out
		}
	}
	return out
}

func applyOrderCarrier(orders []Order, orderID string, carrier ShippingCarrier) []Order {
	out := make([]Order, len(orders))
	copy(out, orders)
	for i := range out {
		if out[i].ID == orderID {
			out[i].Shipping.Carrier = carrier
			break
		}
	}
	return out
}

// completionCue names the audible cue for transitions that finish a stage of
// an item's life; other values update silently (toast only).
func completionCue(field fieldKind, value string) (string, bool) {
	switch {
	case field == fieldFabricacion && value == string(FabricationHecho):
		return "complete", true
	case field == fieldVenta && value == string(SaleTransferido):
		return "success", true
	case field == fieldEnvioEstado && value == string(ShippingDespachado):
		return "notification", true
	}
	return "", false
}
