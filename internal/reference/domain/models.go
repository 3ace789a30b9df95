// Package domain holds the fixed AFIP reference tables. These codes are
// assigned by the tax authority and must not be renamed or repurposed once
// vouchers reference them.
package domain

import "github.com/shopspring/decimal"

// VATRate is one entry of the fixed VAT alicuota table.
type VATRate struct {
	ID         int             `json:"id"`
	Label      string          `json:"label"`
	Percentage decimal.Decimal `json:"percentage"`
}

// AFIP alicuota codes (RG 2485).
const (
	VATRateZero        = 3
	VATRateTenAndHalf  = 4
	VATRateTwentyOne   = 5
	VATRateTwentySeven = 6
	VATRateFive        = 8
	VATRateTwoAndHalf  = 9
)

var vatRates = []VATRate{
	{ID: VATRateZero, Label: "0%", Percentage: decimal.New(0, 0)},
	{ID: VATRateTwoAndHalf, Label: "2.5%", Percentage: decimal.New(25, -1)},
	{ID: VATRateFive, Label: "5%", Percentage: decimal.New(5, 0)},
	{ID: VATRateTenAndHalf, Label: "10.5%", Percentage: decimal.New(105, -1)},
	{ID: VATRateTwentyOne, Label: "21%", Percentage: decimal.New(21, 0)},
	{ID: VATRateTwentySeven, Label: "27%", Percentage: decimal.New(27, 0)},
}

var vatRateByID = func() map[int]VATRate {
	m := make(map[int]VATRate, len(vatRates))
	for _, r := range vatRates {
		m[r.ID] = r
	}
	return m
}()

// VATRates returns the full rate table in ascending percentage order.
func VATRates() []VATRate {
	out := make([]VATRate, len(vatRates))
	copy(out, vatRates)
	return out
}

// PercentageOf resolves a rate id to its percentage.
func PercentageOf(rateID int) (decimal.Decimal, error) {
	rate, ok := vatRateByID[rateID]
	if !ok {
		return decimal.Decimal{}, ErrUnknownTaxRate
	}
	return rate.Percentage, nil
}

// VATRateByID resolves the full table entry for a rate id.
func VATRateByID(rateID int) (VATRate, error) {
	rate, ok := vatRateByID[rateID]
	if !ok {
		return VATRate{}, ErrUnknownTaxRate
	}
	return rate, nil
}

// VoucherType is one entry of the comprobante type table.
type VoucherType struct {
	ID     int    `json:"id"`
	Label  string `json:"label"`
	Letter string `json:"letter"`
}

const (
	VoucherFacturaA    = 1
	VoucherNotaDebitoA = 2
	VoucherNotaCredA   = 3
	VoucherFacturaB    = 6
	VoucherNotaDebitoB = 7
	VoucherNotaCredB   = 8
	VoucherFacturaC    = 11
	VoucherNotaDebitoC = 12
	VoucherNotaCredC   = 13
)

var voucherTypes = []VoucherType{
	{ID: VoucherFacturaA, Label: "Factura A", Letter: "A"},
	{ID: VoucherNotaDebitoA, Label: "Nota de Débito A", Letter: "A"},
	{ID: VoucherNotaCredA, Label: "Nota de Crédito A", Letter: "A"},
	{ID: VoucherFacturaB, Label: "Factura B", Letter: "B"},
	{ID: VoucherNotaDebitoB, Label: "Nota de Débito B", Letter: "B"},
	{ID: VoucherNotaCredB, Label: "Nota de Crédito B", Letter: "B"},
	{ID: VoucherFacturaC, Label: "Factura C", Letter: "C"},
	{ID: VoucherNotaDebitoC, Label: "Nota de Débito C", Letter: "C"},
	{ID: VoucherNotaCredC, Label: "Nota de Crédito C", Letter: "C"},
}

var voucherTypeByID = func() map[int]VoucherType {
	m := make(map[int]VoucherType, len(voucherTypes))
	for _, v := range voucherTypes {
		m[v.ID] = v
	}
	return m
}()

func VoucherTypes() []VoucherType {
	out := make([]VoucherType, len(voucherTypes))
	copy(out, voucherTypes)
	return out
}

func VoucherTypeByID(id int) (VoucherType, error) {
	v, ok := voucherTypeByID[id]
	if !ok {
		return VoucherType{}, ErrUnknownVoucherType
	}
	return v, nil
}

// DocumentType identifies the buyer document kind.
type DocumentType struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

const (
	DocumentCUIT            = 80
	DocumentCUIL            = 86
	DocumentDNI             = 96
	DocumentConsumidorFinal = 99
)

var documentTypes = []DocumentType{
	{ID: DocumentCUIT, Label: "CUIT"},
	{ID: DocumentCUIL, Label: "CUIL"},
	{ID: DocumentDNI, Label: "DNI"},
	{ID: DocumentConsumidorFinal, Label: "Consumidor Final"},
}

var documentTypeByID = func() map[int]DocumentType {
	m := make(map[int]DocumentType, len(documentTypes))
	for _, d := range documentTypes {
		m[d.ID] = d
	}
	return m
}()

func DocumentTypes() []DocumentType {
	out := make([]DocumentType, len(documentTypes))
	copy(out, documentTypes)
	return out
}

func DocumentTypeByID(id int) (DocumentType, error) {
	d, ok := documentTypeByID[id]
	if !ok {
		return DocumentType{}, ErrUnknownDocumentType
	}
	return d, nil
}

// Concept identifies what the invoice covers.
type Concept struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

const (
	ConceptProducts            = 1
	ConceptServices            = 2
	ConceptProductsAndServices = 3
)

var concepts = []Concept{
	{ID: ConceptProducts, Label: "Productos"},
	{ID: ConceptServices, Label: "Servicios"},
	{ID: ConceptProductsAndServices, Label: "Productos y Servicios"},
}

var conceptByID = func() map[int]Concept {
	m := make(map[int]Concept, len(concepts))
	for _, c := range concepts {
		m[c.ID] = c
	}
	return m
}()

func Concepts() []Concept {
	out := make([]Concept, len(concepts))
	copy(out, concepts)
	return out
}

func ConceptByID(id int) (Concept, error) {
	c, ok := conceptByID[id]
	if !ok {
		return Concept{}, ErrUnknownConcept
	}
	return c, nil
}

// VATCondition is the taxpayer condition label set used on the document.
type VATCondition struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

var vatConditions = []VATCondition{
	{Code: "RI", Label: "Responsable Inscripto"},
	{Code: "MONOTRIBUTO", Label: "Monotributo"},
	{Code: "EXENTO", Label: "Exento"},
	{Code: "CF", Label: "Consumidor Final"},
}

func VATConditions() []VATCondition {
	out := make([]VATCondition, len(vatConditions))
	copy(out, vatConditions)
	return out
}
