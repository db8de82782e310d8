package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// sampleOrders builds the fixture the grid tests share: one single-item
// order and one three-item order.
func sampleOrders() []Order {
	return []Order{
		{
			ID:        "o1",
			OrderDate: date(2026, time.August, 10),
			Shipping:  ShippingInfo{Carrier: CarrierAndreani, TrackingNumber: "AR123"},
			Customer:  Customer{ID: "c1", FirstName: "Ana", LastName: "García", Email: "ana@example.com"},
			TotalValue: 12000, PaidAmount: 6000, Balance: 6000,
			Items: []Item{
				{
					ID: "i1", OrderID: "o1", DesignName: "Sello comercial",
					StampType: StampMadera, FabricationState: FabricationSinHacer,
					SaleState: SaleSenado, ShippingState: ShippingSinDespachar,
					ItemValue: 12000, DepositValue: 6000,
				},
			},
		},
		{
			ID:        "o2",
			OrderDate: date(2026, time.August, 12),
			Shipping:  ShippingInfo{Carrier: CarrierMoto},
			Customer:  Customer{ID: "c2", FirstName: "Bruno", LastName: "Paz", Email: "bruno@example.com"},
			TotalValue: 30000, PaidAmount: 30000, Balance: 0,
			Items: []Item{
				{
					ID: "i2", OrderID: "o2", DesignName: "Logo estudio",
					StampType: StampPolimero, FabricationState: FabricationHaciendo,
					SaleState: SalePagado, ShippingState: ShippingSinDespachar,
					ItemValue: 10000, DepositValue: 10000, IsPriority: true,
				},
				{
					ID: "i3", OrderID: "o2", DesignName: "Firma notarial",
					StampType: StampGomaLaser, FabricationState: FabricationHecho,
					SaleState: SalePagado, ShippingState: ShippingDespachado,
					ItemValue: 10000, DepositValue: 10000,
				},
				{
					ID: "i4", OrderID: "o2", DesignName: "Fechador",
					StampType: StampAutomatico, FabricationState: FabricationSinHacer,
					SaleState: SalePagado, ShippingState: ShippingSinDespachar,
					ItemValue: 10000, DepositValue: 10000,
				},
			},
		},
	}
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, FabricationHecho.IsValid())
	assert.False(t, FabricationState("TERMINADO").IsValid())
	assert.True(t, SaleSenado.IsValid())
	assert.False(t, SaleState("").IsValid())
	assert.True(t, ShippingEntregado.IsValid())
	assert.False(t, ShippingState("EN_CAMINO").IsValid())
	assert.True(t, StampGomaLaser.IsValid())
	assert.False(t, StampType("METAL").IsValid())
	assert.True(t, CarrierRetira.IsValid())
	assert.False(t, ShippingCarrier("DHL").IsValid())
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "Ana García", Customer{FirstName: "Ana", LastName: "García"}.FullName())
	assert.Equal(t, "Ana", Customer{FirstName: "Ana"}.FullName())
	assert.Equal(t, "García", Customer{LastName: "García"}.FullName())
}

func TestPrimaryItem(t *testing.T) {
	orders := sampleOrders()
	assert.Equal(t, "i1", orders[0].primaryItem().ID)
	assert.Equal(t, "i2", orders[1].primaryItem().ID)
	assert.Empty(t, Order{}.primaryItem().ID)
	assert.False(t, orders[0].hasMultipleItems())
	assert.True(t, orders[1].hasMultipleItems())
}

func TestFabricationCounts(t *testing.T) {
	counts := fabricationCounts(sampleOrders())
	require.Len(t, counts, len(fabricationStates))
	assert.Equal(t, 2, counts[FabricationSinHacer])
	assert.Equal(t, 1, counts[FabricationHaciendo])
	assert.Equal(t, 1, counts[FabricationHecho])
	assert.Equal(t, 0, counts[FabricationRehacer])
}

func TestFabricationCountsSkipsUnknownValues(t *testing.T) {
	orders := sampleOrders()
	orders[0].Items[0].FabricationState = "TERMINADO"
	counts := fabricationCounts(orders)
	assert.Equal(t, 1, counts[FabricationSinHacer])
	total := 0
	for _, n := range counts {
		total += n
	}
	assert.Equal(t, 3, total)
}
