package render

import (
	"encoding/json"
	"testing"
	"time"

	invoicedomain "github.com/fiscalio/facturador/internal/invoice/domain"
	issuerdomain "github.com/fiscalio/facturador/internal/issuer/domain"
	referencedomain "github.com/fiscalio/facturador/internal/reference/domain"
	voucherdomain "github.com/fiscalio/facturador/internal/voucher/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedVoucher(t *testing.T) voucherdomain.Voucher {
	t.Helper()

	items, err := json.Marshal([]invoicedomain.LineItem{
		{
			Description: "Resma A4",
			Quantity:    decimal.New(2, 0),
			Unit:        "unidades",
			UnitPrice:   decimal.RequireFromString("121.00"),
			VATRateID:   referencedomain.VATRateTwentyOne,
		},
	})
	require.NoError(t, err)

	groups, err := json.Marshal([]invoicedomain.TaxGroup{
		{
			VATRateID:   referencedomain.VATRateTwentyOne,
			Percentage:  decimal.New(21, 0),
			TaxableBase: decimal.RequireFromString("200.00"),
			TaxAmount:   decimal.RequireFromString("42.00"),
		},
	})
	require.NoError(t, err)

	snapshot, err := json.Marshal(issuerdomain.Snapshot{
		CUIT:         "20123456789",
		LegalName:    "Papelera Mitre SRL",
		Address:      "Av. Mitre 450, Avellaneda",
		VATCondition: "Responsable Inscripto",
		SalesPoint:   3,
	})
	require.NoError(t, err)

	buyerName := "Juana Molina"
	return voucherdomain.Voucher{
		CAE:                "71234567890123",
		CAEExpiry:          time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		SalesPoint:         3,
		VoucherType:        referencedomain.VoucherFacturaB,
		VoucherLabel:       "Factura B",
		VoucherNumberFrom:  15,
		VoucherNumberTo:    15,
		Concept:            referencedomain.ConceptProducts,
		DocumentType:       referencedomain.DocumentDNI,
		DocumentNumber:     30123456,
		SellerVATCondition: "Responsable Inscripto",
		BuyerVATCondition:  "Consumidor Final",
		BuyerName:          &buyerName,
		NetAmount:          decimal.RequireFromString("200.00"),
		TaxAmount:          decimal.RequireFromString("42.00"),
		TotalAmount:        decimal.RequireFromString("242.00"),
		Currency:           "PES",
		LineItems:          items,
		TaxGroups:          groups,
		IssuerSnapshot:     snapshot,
		IssuedAt:           time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
	}
}

func TestBuildDocumentView(t *testing.T) {
	view, err := BuildDocumentView(storedVoucher(t))
	require.NoError(t, err)

	assert.Equal(t, "B", view.Letter)
	assert.Equal(t, "0003-00000015", view.VoucherNumber)
	assert.Equal(t, "31/08/2026", view.IssuedAt)
	assert.Equal(t, "Productos", view.Concept)
	assert.Equal(t, "Papelera Mitre SRL", view.Issuer.LegalName)
	assert.Equal(t, "Juana Molina", view.Buyer.Name)
	assert.Equal(t, "DNI", view.Buyer.DocumentLabel)
	assert.Equal(t, "$ 242.00", view.Total)
	assert.Equal(t, "10/09/2026", view.CAEExpiry)

	require.Len(t, view.Items, 1)
	assert.Equal(t, "21%", view.Items[0].VATRate)
	assert.Equal(t, "$ 242.00", view.Items[0].Amount)

	require.Len(t, view.Groups, 1)
	assert.Equal(t, "IVA 21%", view.Groups[0].Label)
	assert.Equal(t, "$ 42.00", view.Groups[0].TaxAmount)
}

func TestBuildDocumentView_UnknownCodesDoNotFailReprint(t *testing.T) {
	voucher := storedVoucher(t)
	voucher.Concept = 42
	voucher.DocumentType = 42

	view, err := BuildDocumentView(voucher)
	require.NoError(t, err)
	assert.Equal(t, "42", view.Concept)
	assert.Equal(t, "42", view.Buyer.DocumentLabel)
}

func TestBuildDocumentView_CorruptColumns(t *testing.T) {
	voucher := storedVoucher(t)
	voucher.LineItems = []byte("{")

	_, err := BuildDocumentView(voucher)
	assert.Error(t, err)
}

func TestHTMLRenderer_ContainsDocumentFields(t *testing.T) {
	view, err := BuildDocumentView(storedVoucher(t))
	require.NoError(t, err)

	html, err := NewHTMLRenderer().RenderHTML(view)
	require.NoError(t, err)

	assert.Contains(t, html, "71234567890123")
	assert.Contains(t, html, "0003-00000015")
	assert.Contains(t, html, "Papelera Mitre SRL")
	assert.Contains(t, html, "$ 242.00")
}

func TestPDFRenderer_ProducesDocument(t *testing.T) {
	view, err := BuildDocumentView(storedVoucher(t))
	require.NoError(t, err)

	data, err := NewPDFRenderer().Render(view)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
