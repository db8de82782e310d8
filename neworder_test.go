package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSizeMM(t *testing.T) {
	w, h, err := parseSizeMM("60x40")
	require.NoError(t, err)
	assert.Equal(t, 60, w)
	assert.Equal(t, 40, h)

	w, h, err = parseSizeMM(" 25 X 25 ")
	require.NoError(t, err)
	assert.Equal(t, 25, w)
	assert.Equal(t, 25, h)

	for _, bad := range []string{"60", "x40", "60x", "0x40", "-5x40", "axb"} {
		_, _, err := parseSizeMM(bad)
		assert.Error(t, err, bad)
	}
}

func TestNewOrderValidators(t *testing.T) {
	assert.NoError(t, validStampType("madera"))
	assert.NoError(t, validStampType(" GOMA_LASER "))
	assert.Error(t, validStampType("metal"))

	assert.NoError(t, validCarrier("oca"))
	assert.Error(t, validCarrier("dhl"))

	assert.NoError(t, validSize(""))
	assert.NoError(t, validSize("60x40"))
	assert.Error(t, validSize("grande"))

	assert.NoError(t, validDeadline(""))
	assert.NoError(t, validDeadline("15/09/2026"))
	assert.Error(t, validDeadline("2026-09-15"))
}

func setFormValue(form *newOrderForm, key, value string) {
	for si := range form.steps {
		for fi := range form.steps[si] {
			if form.steps[si][fi].key == key {
				form.steps[si][fi].input.SetValue(value)
				return
			}
		}
	}
}

func TestNewOrderFormValidateStep(t *testing.T) {
	form := newNewOrderForm(newStyles())
	assert.Error(t, form.validateStep(), "empty required fields must fail")

	setFormValue(form, "firstName", "Ana")
	setFormValue(form, "lastName", "García")
	setFormValue(form, "phone", "+5491155550000")
	assert.NoError(t, form.validateStep())
}

func TestNewOrderFormDraft(t *testing.T) {
	form := newNewOrderForm(newStyles())
	setFormValue(form, "firstName", "Ana")
	setFormValue(form, "lastName", "García")
	setFormValue(form, "phone", "+5491155550000")
	setFormValue(form, "email", "ana@example.com")
	setFormValue(form, "designName", "Sello comercial")
	setFormValue(form, "stampType", "madera")
	setFormValue(form, "size", "60x40")
	setFormValue(form, "itemValue", "12000")
	setFormValue(form, "depositValue", "6000")
	setFormValue(form, "carrier", "andreani")
	setFormValue(form, "deadline", "15/09/2026")

	draft := form.Draft()
	assert.Equal(t, "Ana", draft.Customer.FirstName)
	assert.Equal(t, "+5491155550000", draft.Customer.PhoneE164)
	assert.Equal(t, StampMadera, draft.StampType)
	assert.Equal(t, 60, draft.RequestedWidthMM)
	assert.Equal(t, 40, draft.RequestedHeightMM)
	assert.Equal(t, 12000.0, draft.ItemValue)
	assert.Equal(t, CarrierAndreani, draft.Carrier)
	assert.Equal(t, FabricationSinHacer, draft.Fabrication)
	assert.Equal(t, ShippingSinDespachar, draft.Shipping)
	// A partial deposit starts the sale axis at SENADO.
	assert.Equal(t, SaleSenado, draft.Sale)
	require.NotNil(t, draft.DeadlineAt)
	assert.Equal(t, "15/09/2026", draft.DeadlineAt.Format("02/01/2006"))
}

func TestNewOrderFormDraftFullPaymentStaysPendiente(t *testing.T) {
	form := newNewOrderForm(newStyles())
	setFormValue(form, "itemValue", "12000")
	setFormValue(form, "depositValue", "12000")
	assert.Equal(t, SalePendiente, form.Draft().Sale)
}
