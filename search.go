package main

import (
	"sort"
	"strings"
)

// filterOrders reduces the order list to those matching the free-text query
// and, when any chips are active, the fabrication-state chip filter. Pure:
// the source slice is never mutated, the result is a fresh slice.
func filterOrders(orders []Order, query string, activeStates []FabricationState) []Order {
	out := make([]Order, 0, len(orders))
	for _, order := range orders {
		if !matchesQuery(order, query) {
			continue
		}
		if !matchesStates(order, activeStates) {
			continue
		}
		out = append(out, order)
	}
	return out
}

// matchesQuery checks the customer's first name, last name and email, then
// every item's design name, for a case-insensitive substring. An empty query
// matches everything.
func matchesQuery(order Order, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(order.Customer.FirstName), query) ||
		strings.Contains(strings.ToLower(order.Customer.LastName), query) ||
		strings.Contains(strings.ToLower(order.Customer.Email), query) {
		return true
	}
	for _, item := range order.Items {
		if strings.Contains(strings.ToLower(item.DesignName), query) {
			return true
		}
	}
	return false
}

func matchesStates(order Order, activeStates []FabricationState) bool {
	if len(activeStates) == 0 {
		return true
	}
	for _, item := range order.Items {
		for _, state := range activeStates {
			if item.FabricationState == state {
				return true
			}
		}
	}
	return false
}

// toggleState flips one chip in the active-state filter, returning a new
// slice so derived views recompute.
func toggleState(active []FabricationState, state FabricationState) []FabricationState {
	out := make([]FabricationState, 0, len(active)+1)
	removed := false
	for _, s := range active {
		if s == state {
			removed = true
			continue
		}
		out = append(out, s)
	}
	if !removed {
		out = append(out, state)
	}
	return out
}

// Sortable columns map onto order-level values; item-level columns sort by
// the primary item so single- and multi-item orders interleave sensibly.
func sortOrders(orders []Order, column string, descending bool) []Order {
	out := append([]Order(nil), orders...)
	less := sortLess(column)
	sort.SliceStable(out, func(i, j int) bool {
		if descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func sortLess(column string) func(a, b Order) bool {
	switch column {
	case "cliente":
		return func(a, b Order) bool {
			if a.Customer.LastName != b.Customer.LastName {
				return a.Customer.LastName < b.Customer.LastName
			}
			return a.Customer.FirstName < b.Customer.FirstName
		}
	case "valor":
		return func(a, b Order) bool { return a.TotalValue < b.TotalValue }
	case "restante":
		return func(a, b Order) bool { return a.Balance < b.Balance }
	case "prioridad":
		return func(a, b Order) bool { return !a.primaryItem().IsPriority && b.primaryItem().IsPriority }
	case "disenio":
		return func(a, b Order) bool { return a.primaryItem().DesignName < b.primaryItem().DesignName }
	case "fabricacion":
		return func(a, b Order) bool { return a.primaryItem().FabricationState < b.primaryItem().FabricationState }
	default: // fecha
		return func(a, b Order) bool { return a.OrderDate.Before(b.OrderDate) }
	}
}

var sortableColumns = []string{"fecha", "cliente", "disenio", "valor", "restante", "prioridad", "fabricacion"}
