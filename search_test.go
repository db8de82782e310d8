package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterOrdersByQuery(t *testing.T) {
	orders := sampleOrders()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty matches all", query: "", want: []string{"o1", "o2"}},
		{name: "first name case insensitive", query: "ANA", want: []string{"o1"}},
		{name: "last name", query: "paz", want: []string{"o2"}},
		{name: "email substring", query: "bruno@", want: []string{"o2"}},
		{name: "design name of non-primary item", query: "notarial", want: []string{"o2"}},
		{name: "no match", query: "zzz", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterOrders(orders, tt.query, nil)
			ids := make([]string, 0, len(got))
			for _, o := range got {
				ids = append(ids, o.ID)
			}
			assert.ElementsMatch(t, tt.want, ids)
		})
	}
}

func TestFilterOrdersDoesNotMutateSource(t *testing.T) {
	orders := sampleOrders()
	_ = filterOrders(orders, "ana", nil)
	require.Len(t, orders, 2)
	assert.Equal(t, "o1", orders[0].ID)
	assert.Equal(t, "o2", orders[1].ID)
}

func TestFilterOrdersByFabricationChips(t *testing.T) {
	orders := sampleOrders()

	// An order matches when any item is in any active state.
	got := filterOrders(orders, "", []FabricationState{FabricationHecho})
	require.Len(t, got, 1)
	assert.Equal(t, "o2", got[0].ID)

	got = filterOrders(orders, "", []FabricationState{FabricationSinHacer})
	assert.Len(t, got, 2)

	got = filterOrders(orders, "", []FabricationState{FabricationRehacer})
	assert.Empty(t, got)
}

func TestFilterCombinesQueryAndChips(t *testing.T) {
	got := filterOrders(sampleOrders(), "ana", []FabricationState{FabricationHecho})
	assert.Empty(t, got)
}

func TestToggleState(t *testing.T) {
	var active []FabricationState
	active = toggleState(active, FabricationHecho)
	assert.Equal(t, []FabricationState{FabricationHecho}, active)
	active = toggleState(active, FabricationHaciendo)
	assert.Len(t, active, 2)
	active = toggleState(active, FabricationHecho)
	assert.Equal(t, []FabricationState{FabricationHaciendo}, active)
}

func TestSortOrdersByDateDescendingDefault(t *testing.T) {
	got := sortOrders(sampleOrders(), "fecha", true)
	require.Len(t, got, 2)
	assert.Equal(t, "o2", got[0].ID)
	assert.Equal(t, "o1", got[1].ID)
}

func TestSortOrdersByClient(t *testing.T) {
	got := sortOrders(sampleOrders(), "cliente", false)
	assert.Equal(t, "o1", got[0].ID) // García before Paz
}

func TestSortOrdersByBalance(t *testing.T) {
	got := sortOrders(sampleOrders(), "restante", true)
	assert.Equal(t, "o1", got[0].ID)
}

func TestSortOrdersStable(t *testing.T) {
	// Two orders on the same date keep their relative order.
	orders := sampleOrders()
	orders[1].OrderDate = orders[0].OrderDate
	orders = append(orders, Order{ID: "o3", OrderDate: orders[0].OrderDate.Add(-24 * time.Hour)})

	got := sortOrders(orders, "fecha", false)
	require.Len(t, got, 3)
	assert.Equal(t, "o3", got[0].ID)
	assert.Equal(t, "o1", got[1].ID)
	assert.Equal(t, "o2", got[2].ID)
}

func TestSortOrdersDoesNotMutateSource(t *testing.T) {
	orders := sampleOrders()
	_ = sortOrders(orders, "cliente", true)
	assert.Equal(t, "o1", orders[0].ID)
}

func TestNextSortColumnCycles(t *testing.T) {
	seen := map[string]bool{}
	col := sortableColumns[0]
	for range sortableColumns {
		seen[col] = true
		col = nextSortColumn(col)
	}
	assert.Equal(t, sortableColumns[0], col)
	assert.Len(t, seen, len(sortableColumns))
}
