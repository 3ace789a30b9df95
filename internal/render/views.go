// Package render turns a stored voucher into a printable document. The view
// layer is built exclusively from the frozen record; nothing is re-read from
// the live configuration, so reprints stay faithful to what was authorized.
package render

import (
	"fmt"
	"time"

	referencedomain "github.com/fiscalio/facturador/internal/reference/domain"
	voucherdomain "github.com/fiscalio/facturador/internal/voucher/domain"
	"github.com/shopspring/decimal"
)

type IssuerView struct {
	LegalName     string
	TradeName     string
	CUIT          string
	Address       string
	GrossIncomeID string
	ActivityStart string
	VATCondition  string
}

type BuyerView struct {
	Name           string
	Address        string
	DocumentLabel  string
	DocumentNumber string
	VATCondition   string
}

type LineItemView struct {
	Code        string
	Description string
	Quantity    string
	Unit        string
	UnitPrice   string
	VATRate     string
	Amount      string
}

type TaxGroupView struct {
	Label     string
	Base      string
	TaxAmount string
}

// DocumentView is everything the printable invoice shows.
type DocumentView struct {
	Letter        string
	VoucherLabel  string
	VoucherNumber string
	IssuedAt      string
	Concept       string
	Currency      string

	Issuer IssuerView
	Buyer  BuyerView
	Items  []LineItemView
	Groups []TaxGroupView

	Net   string
	Tax   string
	Total string

	CAE       string
	CAEExpiry string
}

// BuildDocumentView decodes the frozen record into a view. Lookups against
// the reference tables only resolve display labels; unknown ids fall back to
// their numeric form instead of failing a reprint.
func BuildDocumentView(v voucherdomain.Voucher) (DocumentView, error) {
	items, err := v.Lines()
	if err != nil {
		return DocumentView{}, fmt.Errorf("decode line items: %w", err)
	}
	groups, err := v.Groups()
	if err != nil {
		return DocumentView{}, fmt.Errorf("decode tax groups: %w", err)
	}
	issuer, err := v.Issuer()
	if err != nil {
		return DocumentView{}, fmt.Errorf("decode issuer snapshot: %w", err)
	}

	view := DocumentView{
		Letter:        voucherLetter(v.VoucherType),
		VoucherLabel:  v.VoucherLabel,
		VoucherNumber: fmt.Sprintf("%04d-%08d", v.SalesPoint, v.VoucherNumberFrom),
		IssuedAt:      v.IssuedAt.Format("02/01/2006"),
		Concept:       conceptLabel(v.Concept),
		Currency:      v.Currency,
		Issuer: IssuerView{
			LegalName:     issuer.LegalName,
			TradeName:     deref(issuer.TradeName),
			CUIT:          issuer.CUIT,
			Address:       issuer.Address,
			GrossIncomeID: deref(issuer.GrossIncomeID),
			ActivityStart: activityStart(issuer.ActivityStart),
			VATCondition:  issuer.VATCondition,
		},
		Buyer: BuyerView{
			Name:           deref(v.BuyerName),
			Address:        deref(v.BuyerAddress),
			DocumentLabel:  documentLabel(v.DocumentType),
			DocumentNumber: fmt.Sprintf("%d", v.DocumentNumber),
			VATCondition:   v.BuyerVATCondition,
		},
		Net:       money(v.NetAmount),
		Tax:       money(v.TaxAmount),
		Total:     money(v.TotalAmount),
		CAE:       v.CAE,
		CAEExpiry: v.CAEExpiry.Format("02/01/2006"),
	}

	for _, item := range items {
		view.Items = append(view.Items, LineItemView{
			Code:        deref(item.Code),
			Description: item.Description,
			Quantity:    item.Quantity.String(),
			Unit:        item.Unit,
			UnitPrice:   money(item.UnitPrice),
			VATRate:     rateLabel(item.VATRateID),
			Amount:      money(item.Quantity.Mul(item.UnitPrice).Round(2)),
		})
	}
	for _, group := range groups {
		view.Groups = append(view.Groups, TaxGroupView{
			Label:     "IVA " + group.Percentage.String() + "%",
			Base:      money(group.TaxableBase),
			TaxAmount: money(group.TaxAmount),
		})
	}
	return view, nil
}

func voucherLetter(id int) string {
	vt, err := referencedomain.VoucherTypeByID(id)
	if err != nil {
		return ""
	}
	return vt.Letter
}

func conceptLabel(id int) string {
	concept, err := referencedomain.ConceptByID(id)
	if err != nil {
		return fmt.Sprintf("%d", id)
	}
	return concept.Label
}

func documentLabel(id int) string {
	dt, err := referencedomain.DocumentTypeByID(id)
	if err != nil {
		return fmt.Sprintf("%d", id)
	}
	return dt.Label
}

func rateLabel(id int) string {
	rate, err := referencedomain.VATRateByID(id)
	if err != nil {
		return ""
	}
	return rate.Label
}

func money(d decimal.Decimal) string {
	return "$ " + d.StringFixed(2)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func activityStart(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("02/01/2006")
}
