package render

import (
	"bytes"
	"html/template"
)

const documentHTMLTemplate = `<!doctype html>
<html lang="es">
<head>
  <meta charset="utf-8" />
  <title>{{.VoucherLabel}} {{.VoucherNumber}}</title>
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 40px;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      color: #1a1f36;
      background: #f7f9fc;
    }
    .document-card {
      background: #ffffff;
      max-width: 760px;
      margin: 0 auto;
      padding: 48px;
      box-shadow: 0 2px 5px rgba(0,0,0,0.04);
      border-radius: 4px;
    }
    .header {
      display: flex;
      justify-content: space-between;
      border-bottom: 1px solid #e3e8ee;
      padding-bottom: 24px;
      margin-bottom: 24px;
    }
    .letter-box {
      border: 2px solid #1a1f36;
      font-size: 28px;
      font-weight: 700;
      width: 56px;
      height: 56px;
      display: flex;
      align-items: center;
      justify-content: center;
      margin: 0 24px;
    }
    .label {
      font-size: 11px;
      text-transform: uppercase;
      color: #8792a2;
      margin-bottom: 4px;
      font-weight: 600;
      letter-spacing: 0.3px;
    }
    .value { font-size: 13px; line-height: 1.5; }
    table { width: 100%; border-collapse: collapse; margin-bottom: 24px; }
    th {
      text-align: left;
      text-transform: uppercase;
      font-size: 11px;
      color: #8792a2;
      border-bottom: 1px solid #e3e8ee;
      padding: 8px 0;
    }
    td { padding: 10px 0; border-bottom: 1px solid #e3e8ee; font-size: 13px; }
    .td-right { text-align: right; }
    .totals { display: flex; flex-direction: column; align-items: flex-end; }
    .total-row {
      display: flex;
      justify-content: space-between;
      width: 280px;
      padding: 4px 0;
      font-size: 13px;
    }
    .total-final { font-weight: 700; font-size: 15px; border-top: 1px solid #e3e8ee; margin-top: 8px; padding-top: 8px; }
    .footer {
      margin-top: 40px;
      border-top: 1px solid #e3e8ee;
      padding-top: 16px;
      text-align: right;
      font-size: 13px;
    }
  </style>
</head>
<body>
  <div class="document-card">
    <div style="text-align: center; font-weight: 700; margin-bottom: 16px;">ORIGINAL</div>
    <div class="header">
      <div style="flex: 1;">
        <div style="font-size: 18px; font-weight: 700;">{{if .Issuer.TradeName}}{{.Issuer.TradeName}}{{else}}{{.Issuer.LegalName}}{{end}}</div>
        <div class="value">{{.Issuer.Address}}</div>
        <div class="value">CUIT: {{.Issuer.CUIT}}</div>
        <div class="value">{{.Issuer.VATCondition}}</div>
      </div>
      <div class="letter-box">{{.Letter}}</div>
      <div style="flex: 1; text-align: right;">
        <div style="font-size: 16px; font-weight: 700;">{{.VoucherLabel}}</div>
        <div class="value">Comp. Nro: {{.VoucherNumber}}</div>
        <div class="value">Fecha de Emisión: {{.IssuedAt}}</div>
        <div class="value">Concepto: {{.Concept}}</div>
      </div>
    </div>

    <div style="margin-bottom: 24px;">
      <div class="label">Cliente</div>
      <div class="value"><strong>{{if .Buyer.Name}}{{.Buyer.Name}}{{else}}Consumidor Final{{end}}</strong></div>
      <div class="value">{{.Buyer.DocumentLabel}}: {{.Buyer.DocumentNumber}}</div>
      <div class="value">Condición frente al IVA: {{.Buyer.VATCondition}}</div>
      {{if .Buyer.Address}}<div class="value">{{.Buyer.Address}}</div>{{end}}
    </div>

    <table>
      <thead>
        <tr>
          <th>Código</th>
          <th style="width: 40%;">Descripción</th>
          <th class="td-right">Cantidad</th>
          <th class="td-right">Precio Unit.</th>
          <th class="td-right">IVA</th>
          <th class="td-right">Importe</th>
        </tr>
      </thead>
      <tbody>
        {{range .Items}}
        <tr>
          <td>{{.Code}}</td>
          <td>{{.Description}}</td>
          <td class="td-right">{{.Quantity}} {{.Unit}}</td>
          <td class="td-right">{{.UnitPrice}}</td>
          <td class="td-right">{{.VATRate}}</td>
          <td class="td-right">{{.Amount}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>

    <div class="totals">
      {{range .Groups}}
      <div class="total-row">
        <span>{{.Label}}</span>
        <span>{{.TaxAmount}}</span>
      </div>
      {{end}}
      <div class="total-row">
        <span>Importe Neto Gravado</span>
        <span>{{.Net}}</span>
      </div>
      <div class="total-row">
        <span>Importe IVA</span>
        <span>{{.Tax}}</span>
      </div>
      <div class="total-row total-final">
        <span>Importe Total</span>
        <span>{{.Total}}</span>
      </div>
    </div>

    <div class="footer">
      <div><strong>CAE N°:</strong> {{.CAE}}</div>
      <div><strong>Fecha de Vto. de CAE:</strong> {{.CAEExpiry}}</div>
    </div>
  </div>
</body>
</html>
`

// HTMLRenderer produces the browser preview of a voucher. Amounts and dates
// arrive pre-formatted in the view, so the template carries no format helpers.
type HTMLRenderer struct {
	tpl *template.Template
}

func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		tpl: template.Must(template.New("voucher").Parse(documentHTMLTemplate)),
	}
}

func (r *HTMLRenderer) RenderHTML(view DocumentView) (string, error) {
	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}
