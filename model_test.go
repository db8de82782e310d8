package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel() *model {
	off := false
	m := newModel(&fakeRepository{}, nil, nil, &uiConfig{Sound: &off}, "")
	m.orders = sampleOrders()
	m.loading = false
	m.refresh()
	return m
}

func TestFieldUpdateSuccessAlwaysToasts(t *testing.T) {
	m := newTestModel()

	// HACIENDO completes no stage, yet the user still gets a confirmation.
	_, cmd := m.handleFieldUpdated(fieldUpdatedMsg{
		field: fieldFabricacion, targetID: "i1", value: "HACIENDO",
	})
	require.NotNil(t, cmd)
	assert.Equal(t, "Fabricación actualizada", m.toastText)
	assert.Equal(t, FabricationHaciendo, m.orders[0].Items[0].FabricationState)
}

func TestFieldUpdateCueTransitionToasts(t *testing.T) {
	m := newTestModel()

	_, cmd := m.handleFieldUpdated(fieldUpdatedMsg{
		field: fieldFabricacion, targetID: "i1", value: "HECHO",
	})
	require.NotNil(t, cmd)
	assert.Equal(t, "Fabricación actualizada", m.toastText)
	assert.Equal(t, FabricationHecho, m.orders[0].Items[0].FabricationState)
}

func TestFieldUpdateFailureToastsErrorAndLeavesState(t *testing.T) {
	m := newTestModel()

	_, cmd := m.handleFieldUpdated(fieldUpdatedMsg{
		field: fieldVenta, targetID: "i1", value: "PAGADO", err: errors.New("timeout"),
	})
	require.NotNil(t, cmd)
	assert.Contains(t, m.toastText, "Venta")
	assert.Contains(t, m.toastText, "timeout")
	assert.Equal(t, SaleSenado, m.orders[0].Items[0].SaleState)
}

func TestFieldSuccessToastPerField(t *testing.T) {
	tests := []struct {
		field fieldKind
		want  string
	}{
		{fieldFabricacion, "Fabricación actualizada"},
		{fieldVenta, "Venta actualizada"},
		{fieldEnvioEstado, "Despacho actualizado"},
		{fieldTipo, "Tipo actualizado"},
		{fieldEnvio, "Transportista actualizado"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.field.successToast())
	}
}
