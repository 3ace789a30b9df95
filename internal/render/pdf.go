package render

import (
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// PDFRenderer lays out the printable voucher.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render produces the PDF bytes for one document view.
func (r *PDFRenderer) Render(view DocumentView) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	// Header: issuer block on the left, voucher identity on the right, the
	// fiscal letter between them.
	m.AddRow(8,
		text.NewCol(12, "ORIGINAL", props.Text{
			Size:  10,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)
	m.AddRow(10,
		col.New(5),
		text.NewCol(2, view.Letter, props.Text{
			Size:  22,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
		col.New(5),
	)
	m.AddRow(30,
		col.New(6).Add(
			text.New(issuerDisplayName(view.Issuer), props.Text{Size: 12, Style: fontstyle.Bold}),
			text.New(view.Issuer.Address, props.Text{Size: 9, Top: 7}),
			text.New("CUIT: "+view.Issuer.CUIT, props.Text{Size: 9, Top: 12}),
			text.New(view.Issuer.VATCondition, props.Text{Size: 9, Top: 17}),
		),
		col.New(6).Add(
			text.New(view.VoucherLabel, props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Right}),
			text.New("Comp. Nro: "+view.VoucherNumber, props.Text{Size: 9, Top: 7, Align: align.Right}),
			text.New("Fecha de Emisión: "+view.IssuedAt, props.Text{Size: 9, Top: 12, Align: align.Right}),
			text.New("Concepto: "+view.Concept, props.Text{Size: 9, Top: 17, Align: align.Right}),
		),
	)

	m.AddRow(4, line.NewCol(12))

	m.AddRow(22,
		col.New(12).Add(
			text.New(buyerDisplayName(view.Buyer), props.Text{Size: 10, Style: fontstyle.Bold}),
			text.New(view.Buyer.DocumentLabel+": "+view.Buyer.DocumentNumber, props.Text{Size: 9, Top: 6}),
			text.New("Condición frente al IVA: "+view.Buyer.VATCondition, props.Text{Size: 9, Top: 11}),
			text.New(view.Buyer.Address, props.Text{Size: 9, Top: 16}),
		),
	)

	m.AddRow(4, line.NewCol(12))

	m.AddRow(8,
		text.NewCol(1, "Código", props.Text{Style: fontstyle.Bold, Size: 8}),
		text.NewCol(4, "Descripción", props.Text{Style: fontstyle.Bold, Size: 8}),
		text.NewCol(2, "Cantidad", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right}),
		text.NewCol(2, "Precio Unit.", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right}),
		text.NewCol(1, "IVA", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right}),
		text.NewCol(2, "Importe", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right}),
	)
	for _, item := range view.Items {
		m.AddRow(7,
			text.NewCol(1, item.Code, props.Text{Size: 8}),
			text.NewCol(4, item.Description, props.Text{Size: 8}),
			text.NewCol(2, item.Quantity+" "+item.Unit, props.Text{Size: 8, Align: align.Right}),
			text.NewCol(2, item.UnitPrice, props.Text{Size: 8, Align: align.Right}),
			text.NewCol(1, item.VATRate, props.Text{Size: 8, Align: align.Right}),
			text.NewCol(2, item.Amount, props.Text{Size: 8, Align: align.Right}),
		)
	}

	m.AddRow(4, line.NewCol(12))

	for _, group := range view.Groups {
		m.AddRow(6,
			col.New(6),
			text.NewCol(3, group.Label, props.Text{Size: 8, Align: align.Right}),
			text.NewCol(3, group.TaxAmount, props.Text{Size: 8, Align: align.Right}),
		)
	}

	m.AddRow(7,
		col.New(6),
		text.NewCol(3, "Importe Neto Gravado", props.Text{Size: 9, Align: align.Right}),
		text.NewCol(3, view.Net, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(7,
		col.New(6),
		text.NewCol(3, "Importe IVA", props.Text{Size: 9, Align: align.Right}),
		text.NewCol(3, view.Tax, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(6),
		text.NewCol(3, "Importe Total", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(3, view.Total, props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
	)

	m.AddRow(4, line.NewCol(12))

	m.AddRow(12,
		col.New(6),
		col.New(6).Add(
			text.New("CAE N°: "+view.CAE, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
			text.New("Fecha de Vto. de CAE: "+view.CAEExpiry, props.Text{Size: 9, Top: 5, Align: align.Right}),
		),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func issuerDisplayName(issuer IssuerView) string {
	if issuer.TradeName != "" {
		return issuer.TradeName
	}
	return issuer.LegalName
}

func buyerDisplayName(buyer BuyerView) string {
	if buyer.Name != "" {
		return buyer.Name
	}
	return "Consumidor Final"
}
