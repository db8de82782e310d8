package main

import (
	"strings"
	"time"
)

// FabricationState tracks how far along the workshop is with one item.
type FabricationState string

const (
	FabricationSinHacer  FabricationState = "SIN_HACER"
	FabricationHaciendo  FabricationState = "HACIENDO"
	FabricationVerificar FabricationState = "VERIFICAR"
	FabricationHecho     FabricationState = "HECHO"
	FabricationRehacer   FabricationState = "REHACER"
	FabricationRetocar   FabricationState = "RETOCAR"
)

var fabricationStates = []FabricationState{
	FabricationSinHacer,
	FabricationHaciendo,
	FabricationVerificar,
	FabricationHecho,
	FabricationRehacer,
	FabricationRetocar,
}

func (s FabricationState) IsValid() bool {
	for _, known := range fabricationStates {
		if s == known {
			return true
		}
	}
	return false
}

// SaleState tracks payment progress for one item, independent of fabrication.
type SaleState string

const (
	SalePendiente   SaleState = "PENDIENTE"
	SaleSenado      SaleState = "SENADO"
	SaleTransferido SaleState = "TRANSFERIDO"
	SalePagado      SaleState = "PAGADO"
)

var saleStates = []SaleState{SalePendiente, SaleSenado, SaleTransferido, SalePagado}

func (s SaleState) IsValid() bool {
	for _, known := range saleStates {
		if s == known {
			return true
		}
	}
	return false
}

// ShippingState tracks dispatch progress for one item.
type ShippingState string

const (
	ShippingSinDespachar ShippingState = "SIN_DESPACHAR"
	ShippingDespachado   ShippingState = "DESPACHADO"
	ShippingEntregado    ShippingState = "ENTREGADO"
)

var shippingStates = []ShippingState{ShippingSinDespachar, ShippingDespachado, ShippingEntregado}

func (s ShippingState) IsValid() bool {
	for _, known := range shippingStates {
		if s == known {
			return true
		}
	}
	return false
}

// StampType is the kind of stamp being produced.
type StampType string

const (
	StampMadera     StampType = "MADERA"
	StampPolimero   StampType = "POLIMERO"
	StampGomaLaser  StampType = "GOMA_LASER"
	StampAutomatico StampType = "AUTOMATICO"
)

var stampTypes = []StampType{StampMadera, StampPolimero, StampGomaLaser, StampAutomatico}

func (t StampType) IsValid() bool {
	for _, known := range stampTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ShippingCarrier identifies who delivers an order. Carrier lives on the
// order, not the item; every item of the order ships together.
type ShippingCarrier string

const (
	CarrierCorreoArgentino ShippingCarrier = "CORREO_ARGENTINO"
	CarrierAndreani        ShippingCarrier = "ANDREANI"
	CarrierOCA             ShippingCarrier = "OCA"
	CarrierMoto            ShippingCarrier = "MOTO"
	CarrierRetira          ShippingCarrier = "RETIRA"
)

var shippingCarriers = []ShippingCarrier{
	CarrierCorreoArgentino,
	CarrierAndreani,
	CarrierOCA,
	CarrierMoto,
	CarrierRetira,
}

func (c ShippingCarrier) IsValid() bool {
	for _, known := range shippingCarriers {
		if c == known {
			return true
		}
	}
	return false
}

type Customer struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	PhoneE164 string
}

func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

type ContactInfo struct {
	Channel   string
	PhoneE164 string
}

type FileRefs struct {
	BaseURL   string
	VectorURL string
	PhotoURL  string
}

// Item is a single produced stamp inside an order. Each item carries its own
// three status axes; they change independently of the sibling items.
type Item struct {
	ID                string
	OrderID           string
	DesignName        string
	RequestedWidthMM  int
	RequestedHeightMM int
	StampType         StampType
	Notes             string
	IsPriority        bool
	FabricationState  FabricationState
	SaleState         SaleState
	ShippingState     ShippingState
	ItemValue         float64
	DepositValue      float64
	Contact           ContactInfo
	Files             FileRefs
}

type Task struct {
	ID          string
	OrderID     string
	Title       string
	Description string
	DueAt       *time.Time
	Done        bool
}

type ShippingInfo struct {
	Carrier        ShippingCarrier
	Service        string
	TrackingNumber string
}

// Order is the composite record shown as one grid row (or one summary row
// plus sub-rows when it owns several items). The cached totals come from the
// repository's view; Balance is never recomputed here.
type Order struct {
	ID         string
	OrderDate  time.Time
	DeadlineAt *time.Time
	Shipping   ShippingInfo
	TotalValue float64
	PaidAmount float64
	Balance    float64
	Customer   Customer
	Items      []Item
	Tasks      []Task
}

// primaryItem returns the first item; every order owns at least one.
func (o Order) primaryItem() Item {
	if len(o.Items) == 0 {
		return Item{}
	}
	return o.Items[0]
}

func (o Order) hasMultipleItems() bool {
	return len(o.Items) > 1
}

// fabricationCounts tallies items per fabrication state. Values outside the
// closed set are not counted under any bucket.
func fabricationCounts(orders []Order) map[FabricationState]int {
	counts := make(map[FabricationState]int, len(fabricationStates))
	for _, state := range fabricationStates {
		counts[state] = 0
	}
	for _, order := range orders {
		for _, item := range order.Items {
			if item.FabricationState.IsValid() {
				counts[item.FabricationState]++
			}
		}
	}
	return counts
}
