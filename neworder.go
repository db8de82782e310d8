package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type orderCreatedMsg struct {
	orderID string
	err     error
}

type newOrderStep int

const (
	stepCustomer newOrderStep = iota
	stepItem
	stepShipping
)

type newOrderField struct {
	key      string
	prompt   string
	input    textinput.Model
	validate func(string) error
}

// newOrderForm is the three step creation wizard. Tab and shift+tab move
// between fields of the current step, enter advances a step, esc cancels.
type newOrderForm struct {
	styles  styles
	steps   [][]newOrderField
	step    newOrderStep
	focused int
	errMsg  string
}

func newNewOrderForm(s styles) *newOrderForm {
	field := func(key, prompt, placeholder string, validate func(string) error) newOrderField {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 120
		in.Width = 32
		return newOrderField{key: key, prompt: prompt, input: in, validate: validate}
	}
	required := func(name string) func(string) error {
		return func(v string) error {
			if strings.TrimSpace(v) == "" {
				return fmt.Errorf("%s es obligatorio", name)
			}
			return nil
		}
	}
	optional := func(string) error { return nil }
	money := func(name string) func(string) error {
		return func(v string) error {
			if strings.TrimSpace(v) == "" {
				return nil
			}
			if _, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err != nil {
				return fmt.Errorf("%s debe ser un número", name)
			}
			return nil
		}
	}

	form := &newOrderForm{
		styles: s,
		steps: [][]newOrderField{
			{
				field("firstName", "Nombre", "Ana", required("nombre")),
				field("lastName", "Apellido", "García", required("apellido")),
				field("phone", "Teléfono", "+5491155550000", required("teléfono")),
				field("email", "Email", "", optional),
			},
			{
				field("designName", "Diseño", "Sello comercial", required("diseño")),
				field("stampType", "Tipo", "MADERA / POLIMERO / GOMA_LASER / AUTOMATICO", validStampType),
				field("size", "Medidas (mm)", "60x40", validSize),
				field("itemValue", "Valor", "12000", money("valor")),
				field("depositValue", "Seña", "6000", money("seña")),
			},
			{
				field("carrier", "Envío", "CORREO_ARGENTINO / ANDREANI / OCA / MOTO / RETIRA", validCarrier),
				field("deadline", "Fecha límite", "15/09/2026", validDeadline),
				field("notes", "Notas", "", optional),
			},
		},
	}
	form.steps[form.step][form.focused].input.Focus()
	return form
}

func validStampType(v string) error {
	if !StampType(strings.ToUpper(strings.TrimSpace(v))).IsValid() {
		return fmt.Errorf("tipo de sello desconocido")
	}
	return nil
}

func validCarrier(v string) error {
	if !ShippingCarrier(strings.ToUpper(strings.TrimSpace(v))).IsValid() {
		return fmt.Errorf("medio de envío desconocido")
	}
	return nil
}

func validSize(v string) error {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	if _, _, err := parseSizeMM(v); err != nil {
		return err
	}
	return nil
}

func validDeadline(v string) error {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	if _, err := time.Parse("02/01/2006", strings.TrimSpace(v)); err != nil {
		return fmt.Errorf("fecha inválida, usar dd/mm/aaaa")
	}
	return nil
}

func parseSizeMM(v string) (int, int, error) {
	parts := strings.SplitN(strings.ToLower(strings.TrimSpace(v)), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("medidas inválidas, usar ANCHOxALTO")
	}
	w, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("ancho inválido")
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("alto inválido")
	}
	return w, h, nil
}

func (f *newOrderForm) value(key string) string {
	for _, step := range f.steps {
		for _, field := range step {
			if field.key == key {
				return strings.TrimSpace(field.input.Value())
			}
		}
	}
	return ""
}

func (f *newOrderForm) focusField(index int) {
	fields := f.steps[f.step]
	for i := range fields {
		fields[i].input.Blur()
	}
	if index < 0 {
		index = len(fields) - 1
	}
	if index >= len(fields) {
		index = 0
	}
	f.focused = index
	fields[f.focused].input.Focus()
}

// validateStep checks every field of the current step and reports the first
// problem found.
func (f *newOrderForm) validateStep() error {
	for i := range f.steps[f.step] {
		field := &f.steps[f.step][i]
		if err := field.validate(field.input.Value()); err != nil {
			return err
		}
	}
	return nil
}

type newOrderResult int

const (
	formContinue newOrderResult = iota
	formCancelled
	formSubmitted
)

func (f *newOrderForm) Update(msg tea.Msg) (newOrderResult, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return formCancelled, nil
		case "tab", "down":
			f.errMsg = ""
			f.focusField(f.focused + 1)
			return formContinue, nil
		case "shift+tab", "up":
			f.errMsg = ""
			f.focusField(f.focused - 1)
			return formContinue, nil
		case "enter":
			if err := f.validateStep(); err != nil {
				f.errMsg = err.Error()
				return formContinue, nil
			}
			f.errMsg = ""
			if f.step == stepShipping {
				return formSubmitted, nil
			}
			f.step++
			f.focused = 0
			f.focusField(0)
			return formContinue, nil
		}
	}
	var cmd tea.Cmd
	field := &f.steps[f.step][f.focused]
	field.input, cmd = field.input.Update(msg)
	return formContinue, cmd
}

// Draft builds the repository draft from the validated inputs. Validation has
// already run per step, so parse errors here cannot happen for checked fields.
func (f *newOrderForm) Draft() newOrderDraft {
	draft := newOrderDraft{
		Customer: Customer{
			FirstName: f.value("firstName"),
			LastName:  f.value("lastName"),
			Email:     f.value("email"),
			PhoneE164: f.value("phone"),
		},
		ContactChannel: "whatsapp",
		DesignName:     f.value("designName"),
		StampType:      StampType(strings.ToUpper(f.value("stampType"))),
		Notes:          f.value("notes"),
		Fabrication:    FabricationSinHacer,
		Sale:           SalePendiente,
		Shipping:       ShippingSinDespachar,
		Carrier:        ShippingCarrier(strings.ToUpper(f.value("carrier"))),
	}
	if w, h, err := parseSizeMM(f.value("size")); err == nil {
		draft.RequestedWidthMM = w
		draft.RequestedHeightMM = h
	}
	if v, err := strconv.ParseFloat(f.value("itemValue"), 64); err == nil {
		draft.ItemValue = v
	}
	if v, err := strconv.ParseFloat(f.value("depositValue"), 64); err == nil {
		draft.DepositValue = v
	}
	if draft.DepositValue > 0 && draft.DepositValue < draft.ItemValue {
		draft.Sale = SaleSenado
	}
	if t, err := time.Parse("02/01/2006", f.value("deadline")); err == nil {
		draft.DeadlineAt = &t
	}
	return draft
}

func (f *newOrderForm) submitCmd(repo orderRepository) tea.Cmd {
	draft := f.Draft()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), mutationTimeout)
		defer cancel()
		id, err := repo.CreateOrder(ctx, draft)
		return orderCreatedMsg{orderID: id, err: err}
	}
}

var newOrderStepTitles = [...]string{"Cliente", "Sello", "Entrega"}

func (f *newOrderForm) View() string {
	var b strings.Builder
	b.WriteString(f.styles.cmdPrompt.Render(fmt.Sprintf("Nuevo pedido · paso %d/3 · %s", int(f.step)+1, newOrderStepTitles[f.step])))
	b.WriteString("\n\n")
	for i, field := range f.steps[f.step] {
		prompt := fmt.Sprintf("%-14s", field.prompt)
		if i == f.focused {
			b.WriteString(lipgloss.NewStyle().Foreground(palette.accent).Render("› " + prompt))
		} else {
			b.WriteString("  " + prompt)
		}
		b.WriteString(field.input.View())
		b.WriteString("\n")
	}
	if f.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(palette.danger).Render(f.errMsg))
	}
	b.WriteString("\n")
	b.WriteString(f.styles.cmdHint.Render("enter continuar · tab siguiente campo · esc cancelar"))
	return f.styles.cmdOverlay.Render(b.String())
}
