package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type uiMode int

const (
	modeGrid uiMode = iota
	modeSearch
	modeNewOrder
	modeEditField
	modeEditValue
)

type ordersLoadedMsg struct {
	orders []Order
	err    error
}

type toastExpiredMsg struct {
	id int
}

const toastDuration = 3 * time.Second

type keyMap struct {
	Quit       key.Binding
	Search     key.Binding
	Refresh    key.Binding
	NewOrder   key.Binding
	Toggle     key.Binding
	Edit       key.Binding
	Preview    key.Binding
	CopyTrack  key.Binding
	Export     key.Binding
	SortColumn key.Binding
	SortDir    key.Binding
	ViewMode   key.Binding
	ColPrev    key.Binding
	ColNext    key.Binding
	ColNarrow  key.Binding
	ColWiden   key.Binding
	ColLeft    key.Binding
	ColRight   key.Binding
	Help       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "salir")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "buscar")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recargar")),
		NewOrder:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "nuevo pedido")),
		Toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("espacio", "expandir")),
		Edit:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "editar")),
		Preview:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "detalle")),
		CopyTrack:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copiar tracking")),
		Export:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "exportar csv")),
		SortColumn: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "ordenar por")),
		SortDir:    key.NewBinding(key.WithKeys("O"), key.WithHelp("O", "invertir orden")),
		ViewMode:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "vista")),
		ColPrev:    key.NewBinding(key.WithKeys("["), key.WithHelp("[", "columna anterior")),
		ColNext:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "columna siguiente")),
		ColNarrow:  key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "angostar")),
		ColWiden:   key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "ensanchar")),
		ColLeft:    key.NewBinding(key.WithKeys("{"), key.WithHelp("{", "mover col izq")),
		ColRight:   key.NewBinding(key.WithKeys("}"), key.WithHelp("}", "mover col der")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "ayuda")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Toggle, k.Edit, k.NewOrder, k.Preview, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Refresh, k.NewOrder, k.ViewMode, k.Quit},
		{k.Toggle, k.Edit, k.Preview, k.CopyTrack, k.Export},
		{k.SortColumn, k.SortDir, k.ColPrev, k.ColNext, k.ColNarrow, k.ColWiden, k.ColLeft, k.ColRight},
	}
}

// editableField is one entry of the field picker shown when editing a row.
type editableField struct {
	field  fieldKind
	values []string
}

func editableFieldsFor(row gridRow) []editableField {
	if row.summary {
		// The three status axes live on items; a summary row only exposes
		// the order-level carrier.
		return []editableField{carrierField()}
	}
	return []editableField{
		{field: fieldFabricacion, values: stateStrings(fabricationStates)},
		{field: fieldVenta, values: stateStrings(saleStates)},
		{field: fieldEnvioEstado, values: stateStrings(shippingStates)},
		{field: fieldTipo, values: stateStrings(stampTypes)},
		carrierField(),
	}
}

func carrierField() editableField {
	return editableField{field: fieldEnvio, values: stateStrings(shippingCarriers)}
}

func stateStrings[S ~string](values []S) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

type model struct {
	styles styles
	keys   keyMap
	help   help.Model

	repo       orderRepository
	dispatcher *mutationDispatcher
	layoutSt   *layoutStore
	telemetry  *telemetryLogger
	sound      *soundPlayer

	uiCfg     *uiConfig
	uiCfgPath string

	grid      *ordersGrid
	preview   previewPane
	expansion *expansionTracker
	spinner   spinner.Model
	search    textinput.Model
	form      *newOrderForm

	mode        uiMode
	viewMode    viewMode
	layout      *columnLayout
	colCursor   int
	showPreview bool
	showHelp    bool

	orders       []Order
	filtered     []Order
	query        string
	activeStates []FabricationState
	sortColumn   string
	sortDesc     bool

	loading  bool
	fetchErr error

	editRow    gridRow
	editFields []editableField
	editField  int
	editValue  int

	toastText string
	toastID   int

	width  int
	height int
}

func newModel(repo orderRepository, layoutSt *layoutStore, telemetry *telemetryLogger, uiCfg *uiConfig, uiCfgPath string) *model {
	s := newStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(palette.accent)

	search := textinput.New()
	search.Placeholder = "cliente, email o diseño"
	search.Prompt = "/ "
	search.CharLimit = 80

	mode := uiCfg.viewMode()
	layout := defaultColumnLayout(mode)
	if layoutSt != nil && mode == viewModeItems {
		if persisted, err := layoutSt.Load(); err == nil && len(persisted) > 0 {
			if restored := newColumnLayout(persisted); !restored.isEmpty() {
				layout = restored
			}
		}
	}

	setMarkdownTheme(markdownThemeFromString(uiCfg.Theme))

	m := &model{
		styles:     s,
		keys:       newKeyMap(),
		help:       help.New(),
		repo:       repo,
		dispatcher: newMutationDispatcher(repo),
		layoutSt:   layoutSt,
		telemetry:  telemetry,
		sound:      newSoundPlayer(uiCfg.soundEnabled(), telemetry),
		uiCfg:      uiCfg,
		uiCfgPath:  uiCfgPath,
		grid:       newOrdersGrid(s),
		preview:    newPreviewPane(s),
		expansion:  newExpansionTracker(),
		spinner:    sp,
		search:     search,
		viewMode:   mode,
		layout:     layout,
		sortColumn: "fecha",
		sortDesc:   true,
		loading:    true,
	}
	m.grid.SetCallbacks(m.toggleExpansion, m.startEdit)
	return m
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(m.fetchOrders(), m.spinner.Tick)
}

func (m *model) fetchOrders() tea.Cmd {
	repo := m.repo
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		orders, err := repo.FetchOrders(ctx)
		return ordersLoadedMsg{orders: orders, err: err}
	}
}

// refresh recomputes the derived view: filter, sort, row synthesis, cell
// rendering. Everything downstream of m.orders funnels through here.
func (m *model) refresh() {
	m.filtered = sortOrders(filterOrders(m.orders, m.query, m.activeStates), m.sortColumn, m.sortDesc)
	renderers := buildCellRenderers(cellHandlers{isExpanded: m.expansion.ShowsSubRows})
	m.grid.SetLayout(m.layout.ordered())
	m.grid.SetRows(buildGridRows(m.filtered, m.expansion), renderers)
	m.refreshPreview()
}

func (m *model) refreshPreview() {
	if !m.showPreview {
		return
	}
	if order, ok := m.selectedOrder(); ok {
		m.preview.SetOrder(&order, time.Now())
	} else {
		m.preview.SetOrder(nil, time.Now())
	}
}

func (m *model) selectedOrder() (Order, bool) {
	row, ok := m.grid.SelectedRow()
	if !ok {
		return Order{}, false
	}
	for _, order := range m.filtered {
		if order.ID == row.orderID {
			return order, true
		}
	}
	return Order{}, false
}

func (m *model) toggleExpansion(orderID string) tea.Cmd {
	cmd := m.expansion.Toggle(orderID)
	m.telemetry.Emit(gridEvent{Event: "row_toggle", OrderID: orderID})
	m.refresh()
	return cmd
}

// startEdit opens the field picker for the selected row.
func (m *model) startEdit(string) tea.Cmd {
	row, ok := m.grid.SelectedRow()
	if !ok {
		return nil
	}
	m.editRow = row
	m.editFields = editableFieldsFor(row)
	m.editField = 0
	m.mode = modeEditField
	return nil
}

func (m *model) showToast(text string) tea.Cmd {
	m.toastText = text
	m.toastID++
	id := m.toastID
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (m *model) saveLayout() {
	if m.layoutSt == nil || m.viewMode != viewModeItems {
		return
	}
	if err := m.layoutSt.Save(m.layout.ordered()); err != nil {
		m.telemetry.Emit(gridEvent{Event: "layout_save_failed", Value: err.Error()})
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ordersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.fetchErr = msg.err
			return m, nil
		}
		m.fetchErr = nil
		m.orders = msg.orders
		m.expansion.Reset()
		m.refresh()
		m.telemetry.Emit(gridEvent{Event: "orders_loaded", Value: fmt.Sprintf("%d", len(msg.orders))})
		return m, nil

	case expandElapsedMsg:
		m.expansion.Elapse(msg)
		m.refresh()
		return m, nil

	case fieldUpdatedMsg:
		return m.handleFieldUpdated(msg)

	case orderCreatedMsg:
		if msg.err != nil {
			return m, m.showToast("No se pudo crear el pedido: " + msg.err.Error())
		}
		m.telemetry.Emit(gridEvent{Event: "order_created", OrderID: msg.orderID})
		m.loading = true
		return m, tea.Batch(m.showToast("Pedido creado"), m.fetchOrders(), m.spinner.Tick)

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toastText = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmds []tea.Cmd
	if m.mode == modeNewOrder && m.form != nil {
		_, cmd := m.form.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.mode == modeSearch {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.showPreview {
		cmds = append(cmds, m.preview.Update(msg))
	}
	return m, tea.Batch(cmds...)
}

func (m *model) handleFieldUpdated(msg fieldUpdatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.telemetry.Emit(gridEvent{
			Event: "field_update_failed", ItemID: msg.targetID,
			Column: msg.field.label(), Value: msg.value,
		})
		return m, m.showToast(fmt.Sprintf("%s: %s", msg.field.label(), msg.err.Error()))
	}
	m.orders = applyFieldUpdate(m.orders, msg)
	m.refresh()
	m.telemetry.Emit(gridEvent{
		Event: "field_updated", ItemID: msg.targetID,
		Column: msg.field.label(), Value: msg.value,
	})
	// Every confirmed update toasts; only stage-completing values add a cue.
	if cue, ok := completionCue(msg.field, msg.value); ok {
		m.sound.Play(cue)
	}
	return m, m.showToast(msg.field.successToast())
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeNewOrder:
		return m.handleNewOrderKey(msg)
	case modeEditField:
		return m.handleEditFieldKey(msg)
	case modeEditValue:
		return m.handleEditValueKey(msg)
	}
	return m.handleGridKey(msg)
}

func (m *model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.search.SetValue(m.query)
		m.search.CursorEnd()
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, tea.Batch(m.fetchOrders(), m.spinner.Tick)

	case key.Matches(msg, m.keys.NewOrder):
		m.form = newNewOrderForm(m.styles)
		m.mode = modeNewOrder
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Preview):
		m.showPreview = !m.showPreview
		m.resize()
		m.refreshPreview()
		return m, nil

	case key.Matches(msg, m.keys.CopyTrack):
		return m, m.copyTracking()

	case key.Matches(msg, m.keys.Export):
		return m, m.exportCSV()

	case key.Matches(msg, m.keys.SortColumn):
		m.sortColumn = nextSortColumn(m.sortColumn)
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.SortDir):
		m.sortDesc = !m.sortDesc
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.ViewMode):
		return m, m.toggleViewMode()

	case key.Matches(msg, m.keys.ColPrev):
		if m.colCursor > 0 {
			m.colCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.ColNext):
		if m.colCursor < len(m.layout.ordered())-1 {
			m.colCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.ColNarrow):
		return m, m.resizeColumn(-2)

	case key.Matches(msg, m.keys.ColWiden):
		return m, m.resizeColumn(2)

	case key.Matches(msg, m.keys.ColLeft):
		return m, m.moveColumn(-1)

	case key.Matches(msg, m.keys.ColRight):
		return m, m.moveColumn(1)
	}

	switch msg.String() {
	case "1", "2", "3", "4", "5", "6":
		idx := int(msg.String()[0] - '1')
		if idx < len(fabricationStates) {
			m.activeStates = toggleState(m.activeStates, fabricationStates[idx])
			m.refresh()
		}
		return m, nil
	case "esc":
		if m.query != "" || len(m.activeStates) > 0 {
			m.query = ""
			m.activeStates = nil
			m.refresh()
		}
		return m, nil
	case "d", "t", "e", "f":
		return m, m.showToast("Sin implementar")
	}

	cmd := m.grid.Update(msg)
	m.refreshPreview()
	return m, cmd
}

func (m *model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeGrid
		m.search.Blur()
		return m, nil
	case "enter":
		m.mode = modeGrid
		m.query = strings.TrimSpace(m.search.Value())
		m.search.Blur()
		m.refresh()
		m.telemetry.Emit(gridEvent{Event: "search", Value: m.query})
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.query = strings.TrimSpace(m.search.Value())
	m.refresh()
	return m, cmd
}

func (m *model) handleNewOrderKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	result, cmd := m.form.Update(msg)
	switch result {
	case formCancelled:
		m.form = nil
		m.mode = modeGrid
		return m, nil
	case formSubmitted:
		submit := m.form.submitCmd(m.repo)
		m.form = nil
		m.mode = modeGrid
		return m, submit
	}
	return m, cmd
}

func (m *model) handleEditFieldKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeGrid
		return m, nil
	case "up", "k":
		if m.editField > 0 {
			m.editField--
		}
		return m, nil
	case "down", "j":
		if m.editField < len(m.editFields)-1 {
			m.editField++
		}
		return m, nil
	case "enter":
		m.editValue = m.currentValueIndex()
		m.mode = modeEditValue
		return m, nil
	}
	return m, nil
}

func (m *model) handleEditValueKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	values := m.editFields[m.editField].values
	switch msg.String() {
	case "esc":
		m.mode = modeEditField
		return m, nil
	case "up", "k":
		if m.editValue > 0 {
			m.editValue--
		}
		return m, nil
	case "down", "j":
		if m.editValue < len(values)-1 {
			m.editValue++
		}
		return m, nil
	case "enter":
		m.mode = modeGrid
		return m, m.dispatchEdit(m.editFields[m.editField].field, values[m.editValue])
	}
	return m, nil
}

// currentValueIndex preselects the row's current value in the picker.
func (m *model) currentValueIndex() int {
	field := m.editFields[m.editField]
	current := ""
	switch field.field {
	case fieldFabricacion:
		current = string(m.editRow.ctx.item.FabricationState)
	case fieldVenta:
		current = string(m.editRow.ctx.item.SaleState)
	case fieldEnvioEstado:
		current = string(m.editRow.ctx.item.ShippingState)
	case fieldTipo:
		current = string(m.editRow.ctx.item.StampType)
	case fieldEnvio:
		current = string(m.editRow.ctx.order.Shipping.Carrier)
	}
	for i, v := range field.values {
		if v == current {
			return i
		}
	}
	return 0
}

func (m *model) dispatchEdit(field fieldKind, value string) tea.Cmd {
	switch field {
	case fieldFabricacion:
		return m.dispatcher.updateFabrication(m.editRow.itemID, FabricationState(value))
	case fieldVenta:
		return m.dispatcher.updateSale(m.editRow.itemID, SaleState(value))
	case fieldEnvioEstado:
		return m.dispatcher.updateShipping(m.editRow.itemID, ShippingState(value))
	case fieldTipo:
		return m.dispatcher.updateStampType(m.editRow.itemID, StampType(value))
	case fieldEnvio:
		return m.dispatcher.updateCarrier(m.editRow.orderID, ShippingCarrier(value))
	}
	return nil
}

func (m *model) copyTracking() tea.Cmd {
	order, ok := m.selectedOrder()
	if !ok {
		return nil
	}
	tracking := order.Shipping.TrackingNumber
	if tracking == "" {
		return m.showToast("El pedido no tiene tracking")
	}
	if err := clipboard.WriteAll(tracking); err != nil {
		return m.showToast("No se pudo copiar: " + err.Error())
	}
	m.telemetry.Emit(gridEvent{Event: "tracking_copied", OrderID: order.ID})
	return m.showToast("Tracking copiado")
}

func (m *model) exportCSV() tea.Cmd {
	path := defaultExportPath(time.Now())
	if err := exportOrdersCSV(path, m.filtered); err != nil {
		return m.showToast("Exportación falló: " + err.Error())
	}
	m.telemetry.Emit(gridEvent{Event: "csv_exported", Value: path})
	return m.showToast("Exportado a " + path)
}

// toggleViewMode flips items/compact. The compact view always starts from its
// default layout; only the items layout is persisted.
func (m *model) toggleViewMode() tea.Cmd {
	if m.viewMode == viewModeItems {
		m.viewMode = viewModeCompact
		m.layout = defaultColumnLayout(viewModeCompact)
	} else {
		m.viewMode = viewModeItems
		m.layout = defaultColumnLayout(viewModeItems)
		if m.layoutSt != nil {
			if persisted, err := m.layoutSt.Load(); err == nil && len(persisted) > 0 {
				if restored := newColumnLayout(persisted); !restored.isEmpty() {
					m.layout = restored
				}
			}
		}
	}
	m.colCursor = 0
	m.uiCfg.ViewMode = string(m.viewMode)
	_ = saveUIConfig(m.uiCfg, m.uiCfgPath)
	m.refresh()
	return nil
}

func (m *model) selectedColumnID() (string, bool) {
	ids := m.layout.orderedIDs()
	if m.colCursor < 0 || m.colCursor >= len(ids) {
		return "", false
	}
	return ids[m.colCursor], true
}

func (m *model) resizeColumn(delta int) tea.Cmd {
	id, ok := m.selectedColumnID()
	if !ok {
		return nil
	}
	m.layout.setColumnSize(id, m.layout.width(id)+delta)
	m.saveLayout()
	m.refresh()
	m.telemetry.Emit(gridEvent{Event: "column_resized", Column: id, Value: fmt.Sprintf("%d", m.layout.width(id))})
	return nil
}

func (m *model) moveColumn(delta int) tea.Cmd {
	id, ok := m.selectedColumnID()
	if !ok {
		return nil
	}
	if err := m.layout.moveColumn(id, delta); err != nil {
		return m.showToast(err.Error())
	}
	if m.colCursor+delta >= 0 && m.colCursor+delta < len(m.layout.ordered()) {
		m.colCursor += delta
	}
	m.saveLayout()
	m.refresh()
	m.telemetry.Emit(gridEvent{Event: "column_moved", Column: id})
	return nil
}

func nextSortColumn(current string) string {
	for i, col := range sortableColumns {
		if col == current {
			return sortableColumns[(i+1)%len(sortableColumns)]
		}
	}
	return sortableColumns[0]
}

func (m *model) resize() {
	gridWidth := m.width
	previewWidth := 0
	if m.showPreview {
		previewWidth = m.width / 3
		if previewWidth < 32 {
			previewWidth = 32
		}
		if previewWidth > m.width-20 {
			previewWidth = m.width / 2
		}
		gridWidth = m.width - previewWidth
	}
	bodyHeight := m.height - 5
	if bodyHeight < 4 {
		bodyHeight = 4
	}
	m.grid.SetSize(gridWidth, bodyHeight)
	m.preview.SetSize(previewWidth, bodyHeight)
}

func (m *model) View() string {
	if m.width == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n")

	switch {
	case m.fetchErr != nil:
		b.WriteString(m.styles.errorBanner.Render("No se pudieron cargar los pedidos: " + m.fetchErr.Error() + "\n\nr para reintentar"))
	case m.loading:
		b.WriteString(m.styles.body.Render("\n  " + m.spinner.View() + " Cargando pedidos..."))
	case m.mode == modeNewOrder && m.form != nil:
		b.WriteString(lipgloss.Place(m.width, m.grid.height, lipgloss.Center, lipgloss.Center, m.form.View()))
	case m.mode == modeEditField || m.mode == modeEditValue:
		overlay := lipgloss.Place(m.width, m.grid.height, lipgloss.Center, lipgloss.Center, m.viewEditOverlay())
		b.WriteString(overlay)
	default:
		body := m.grid.View(m.styles, true)
		if m.showPreview {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.preview.View(false))
		}
		b.WriteString(body)
	}

	b.WriteString("\n")
	b.WriteString(m.viewStatusBar())
	return m.styles.app.Render(b.String())
}

func (m *model) viewHeader() string {
	title := m.styles.topBar.Render("Pedidos")
	counts := fabricationCounts(m.filtered)
	parts := make([]string, 0, len(fabricationStates))
	for _, state := range fabricationStates {
		parts = append(parts, fmt.Sprintf("%s %d", shortStateLabel(state), counts[state]))
	}
	countLine := m.styles.topCounts.Render(strings.Join(parts, "  "))

	chips := make([]string, 0, len(fabricationStates))
	for i, state := range fabricationStates {
		label := fmt.Sprintf("%d·%s", i+1, shortStateLabel(state))
		if containsState(m.activeStates, state) {
			chips = append(chips, m.styles.chipActive.Render(label))
		} else {
			chips = append(chips, m.styles.chipInactive.Render(label))
		}
	}

	var searchLine string
	if m.mode == modeSearch {
		searchLine = m.styles.searchBar.Render(m.search.View())
	} else if m.query != "" {
		searchLine = m.styles.searchBar.Render("/" + m.query + "  (esc limpia)")
	}

	lines := []string{lipgloss.JoinHorizontal(lipgloss.Top, title, countLine), strings.Join(chips, " ")}
	if searchLine != "" {
		lines = append(lines, searchLine)
	}
	return strings.Join(lines, "\n")
}

func shortStateLabel(state FabricationState) string {
	switch state {
	case FabricationSinHacer:
		return "Sin hacer"
	case FabricationHaciendo:
		return "Haciendo"
	case FabricationVerificar:
		return "Verificar"
	case FabricationHecho:
		return "Hecho"
	case FabricationRehacer:
		return "Rehacer"
	case FabricationRetocar:
		return "Retocar"
	}
	return string(state)
}

func containsState(states []FabricationState, state FabricationState) bool {
	for _, s := range states {
		if s == state {
			return true
		}
	}
	return false
}

func (m *model) viewEditOverlay() string {
	var b strings.Builder
	if m.mode == modeEditField {
		b.WriteString(m.styles.cmdPrompt.Render("Editar campo"))
		b.WriteString("\n\n")
		for i, f := range m.editFields {
			line := "  " + f.field.label()
			if i == m.editField {
				line = lipgloss.NewStyle().Foreground(palette.accent).Render("› " + f.field.label())
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
		b.WriteString(m.styles.cmdHint.Render("enter elegir · esc cancelar"))
	} else {
		field := m.editFields[m.editField]
		b.WriteString(m.styles.cmdPrompt.Render(field.field.label()))
		b.WriteString("\n\n")
		for i, v := range field.values {
			line := "  " + v
			if i == m.editValue {
				line = lipgloss.NewStyle().Foreground(palette.accent).Render("› " + v)
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
		b.WriteString(m.styles.cmdHint.Render("enter aplicar · esc volver"))
	}
	return m.styles.cmdOverlay.Render(b.String())
}

func (m *model) viewStatusBar() string {
	segs := []string{
		m.styles.statusSeg.Render(fmt.Sprintf("%d pedidos", len(m.filtered))),
		m.styles.statusSeg.Render(fmt.Sprintf("orden: %s %s", m.sortColumn, sortArrow(m.sortDesc))),
	}
	if id, ok := m.selectedColumnID(); ok {
		segs = append(segs, m.styles.statusSeg.Render("col: "+id))
	}
	if m.toastText != "" {
		segs = append(segs, m.styles.toast.Render(m.toastText))
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, segs...)
	helpLine := m.help.View(m.keys)
	return m.styles.statusBar.Render(line) + "\n" + m.styles.statusHint.Render(helpLine)
}

func sortArrow(descending bool) string {
	if descending {
		return "↓"
	}
	return "↑"
}
