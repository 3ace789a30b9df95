// Package calc implements the line-item calculator and the tax aggregator.
//
// Every value that crosses the package boundary is rounded to two decimals.
// Rounding happens per line first, then again on each accumulated group sum,
// and once more on each of the three totals. The double rounding at summation
// boundaries is part of the contract: the stored totals must reconcile
// line-by-line with the printed document, so none of the rounding steps may be
// collapsed even where a single final rounding would look cleaner.
package calc

import (
	invoicedomain "github.com/fiscalio/facturador/internal/invoice/domain"
	referencedomain "github.com/fiscalio/facturador/internal/reference/domain"
	"github.com/shopspring/decimal"
)

var one = decimal.New(1, 0)
var hundred = decimal.New(100, 0)

// ComputeLine splits one tax-inclusive line into its rounded net and tax
// portions. The gross is quantity × unit price; the net is the gross divided
// by (1 + rate/100); the tax is whatever remains after the net is rounded, so
// net + tax always reproduces the rounded gross exactly.
func ComputeLine(item invoicedomain.LineItem) (invoicedomain.LineAmounts, error) {
	if err := item.Validate(); err != nil {
		return invoicedomain.LineAmounts{}, err
	}

	percentage, err := referencedomain.PercentageOf(item.VATRateID)
	if err != nil {
		return invoicedomain.LineAmounts{}, err
	}

	gross := item.Quantity.Mul(item.UnitPrice).Round(2)
	divisor := one.Add(percentage.Div(hundred))
	net := gross.DivRound(divisor, 2)
	tax := gross.Sub(net).Round(2)

	return invoicedomain.LineAmounts{TaxableBase: net, TaxAmount: tax}, nil
}

// Aggregate groups line amounts by VAT rate and reduces them to invoice
// totals. Groups are emitted in first-seen order of each distinct rate across
// the input, which is the order they appear on the rendered document. An empty
// input yields no groups and zero totals.
func Aggregate(items []invoicedomain.LineItem) ([]invoicedomain.TaxGroup, invoicedomain.Totals, error) {
	groups := make([]invoicedomain.TaxGroup, 0, len(items))
	indexByRate := make(map[int]int, len(items))

	for _, item := range items {
		amounts, err := ComputeLine(item)
		if err != nil {
			return nil, invoicedomain.Totals{}, err
		}

		idx, seen := indexByRate[item.VATRateID]
		if !seen {
			rate, err := referencedomain.VATRateByID(item.VATRateID)
			if err != nil {
				return nil, invoicedomain.Totals{}, err
			}
			idx = len(groups)
			indexByRate[item.VATRateID] = idx
			groups = append(groups, invoicedomain.TaxGroup{
				VATRateID:  item.VATRateID,
				Percentage: rate.Percentage,
			})
		}

		groups[idx].TaxableBase = groups[idx].TaxableBase.Add(amounts.TaxableBase)
		groups[idx].TaxAmount = groups[idx].TaxAmount.Add(amounts.TaxAmount)
	}

	var net, tax decimal.Decimal
	for i := range groups {
		groups[i].TaxableBase = groups[i].TaxableBase.Round(2)
		groups[i].TaxAmount = groups[i].TaxAmount.Round(2)
		net = net.Add(groups[i].TaxableBase)
		tax = tax.Add(groups[i].TaxAmount)
	}

	totals := invoicedomain.Totals{
		Net:   net.Round(2),
		Tax:   tax.Round(2),
		Total: net.Round(2).Add(tax.Round(2)).Round(2),
	}

	return groups, totals, nil
}
