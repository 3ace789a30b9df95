package calc

import (
	"testing"

	invoicedomain "github.com/fiscalio/facturador/internal/invoice/domain"
	referencedomain "github.com/fiscalio/facturador/internal/reference/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(qty, price string, rateID int) invoicedomain.LineItem {
	return invoicedomain.LineItem{
		Description: "item",
		Quantity:    decimal.RequireFromString(qty),
		UnitPrice:   decimal.RequireFromString(price),
		VATRateID:   rateID,
	}
}

func TestComputeLine_SplitsTaxInclusivePrice(t *testing.T) {
	amounts, err := ComputeLine(line("2", "121.00", referencedomain.VATRateTwentyOne))
	require.NoError(t, err)

	assert.Equal(t, "200.00", amounts.TaxableBase.StringFixed(2))
	assert.Equal(t, "42.00", amounts.TaxAmount.StringFixed(2))
}

func TestComputeLine_ZeroRate(t *testing.T) {
	amounts, err := ComputeLine(line("3", "10.00", referencedomain.VATRateZero))
	require.NoError(t, err)

	assert.Equal(t, "30.00", amounts.TaxableBase.StringFixed(2))
	assert.Equal(t, "0.00", amounts.TaxAmount.StringFixed(2))
}

func TestComputeLine_NetPlusTaxReproducesGross(t *testing.T) {
	cases := []struct {
		qty, price string
		rateID     int
	}{
		{"1", "0.10", referencedomain.VATRateTwentyOne},
		{"3", "0.37", referencedomain.VATRateTenAndHalf},
		{"7", "99.99", referencedomain.VATRateTwentySeven},
		{"0.5", "121.00", referencedomain.VATRateTwentyOne},
		{"1000", "1234.56", referencedomain.VATRateTwoAndHalf},
	}

	for _, tc := range cases {
		item := line(tc.qty, tc.price, tc.rateID)
		amounts, err := ComputeLine(item)
		require.NoError(t, err)

		gross := item.Quantity.Mul(item.UnitPrice).Round(2)
		assert.True(t, amounts.TaxableBase.Add(amounts.TaxAmount).Equal(gross),
			"net %s + tax %s must equal gross %s", amounts.TaxableBase, amounts.TaxAmount, gross)
	}
}

func TestComputeLine_Rejections(t *testing.T) {
	cases := []struct {
		name string
		item invoicedomain.LineItem
		want error
	}{
		{
			name: "zero quantity",
			item: line("0", "10.00", referencedomain.VATRateTwentyOne),
			want: invoicedomain.ErrInvalidLineItem,
		},
		{
			name: "negative quantity",
			item: line("-1", "10.00", referencedomain.VATRateTwentyOne),
			want: invoicedomain.ErrInvalidLineItem,
		},
		{
			name: "negative unit price",
			item: line("1", "-0.01", referencedomain.VATRateTwentyOne),
			want: invoicedomain.ErrInvalidLineItem,
		},
		{
			name: "empty description",
			item: invoicedomain.LineItem{
				Quantity:  decimal.New(1, 0),
				UnitPrice: decimal.New(10, 0),
				VATRateID: referencedomain.VATRateTwentyOne,
			},
			want: invoicedomain.ErrInvalidLineItem,
		},
		{
			name: "unknown rate",
			item: line("1", "10.00", 42),
			want: referencedomain.ErrUnknownTaxRate,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ComputeLine(tc.item)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestAggregate_Empty(t *testing.T) {
	groups, totals, err := Aggregate(nil)
	require.NoError(t, err)

	assert.Empty(t, groups)
	assert.True(t, totals.Net.IsZero())
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestAggregate_SingleLineMatchesDocumentScenario(t *testing.T) {
	groups, totals, err := Aggregate([]invoicedomain.LineItem{
		line("2", "121.00", referencedomain.VATRateTwentyOne),
	})
	require.NoError(t, err)

	require.Len(t, groups, 1)
	assert.Equal(t, "200.00", groups[0].TaxableBase.StringFixed(2))
	assert.Equal(t, "42.00", groups[0].TaxAmount.StringFixed(2))
	assert.Equal(t, "200.00", totals.Net.StringFixed(2))
	assert.Equal(t, "42.00", totals.Tax.StringFixed(2))
	assert.Equal(t, "242.00", totals.Total.StringFixed(2))
}

func TestAggregate_GroupsByRateInFirstSeenOrder(t *testing.T) {
	items := []invoicedomain.LineItem{
		line("1", "121.00", referencedomain.VATRateTwentyOne),
		line("2", "110.50", referencedomain.VATRateTenAndHalf),
		line("3", "60.50", referencedomain.VATRateTwentyOne),
	}

	groups, totals, err := Aggregate(items)
	require.NoError(t, err)

	require.Len(t, groups, 2)
	assert.Equal(t, referencedomain.VATRateTwentyOne, groups[0].VATRateID)
	assert.Equal(t, referencedomain.VATRateTenAndHalf, groups[1].VATRateID)

	// 21% lines: 121.00 → 100.00/21.00, 181.50 → 150.00/31.50
	assert.Equal(t, "250.00", groups[0].TaxableBase.StringFixed(2))
	assert.Equal(t, "52.50", groups[0].TaxAmount.StringFixed(2))
	// 10.5% line: 221.00 → 200.00/21.00
	assert.Equal(t, "200.00", groups[1].TaxableBase.StringFixed(2))
	assert.Equal(t, "21.00", groups[1].TaxAmount.StringFixed(2))

	assert.Equal(t, "450.00", totals.Net.StringFixed(2))
	assert.Equal(t, "73.50", totals.Tax.StringFixed(2))
	assert.Equal(t, "523.50", totals.Total.StringFixed(2))
}

func TestAggregate_OrderFollowsFirstOccurrence(t *testing.T) {
	forward := []invoicedomain.LineItem{
		line("1", "121.00", referencedomain.VATRateTwentyOne),
		line("1", "110.50", referencedomain.VATRateTenAndHalf),
	}
	reversed := []invoicedomain.LineItem{
		line("1", "110.50", referencedomain.VATRateTenAndHalf),
		line("1", "121.00", referencedomain.VATRateTwentyOne),
	}

	fGroups, _, err := Aggregate(forward)
	require.NoError(t, err)
	rGroups, _, err := Aggregate(reversed)
	require.NoError(t, err)

	assert.Equal(t, referencedomain.VATRateTwentyOne, fGroups[0].VATRateID)
	assert.Equal(t, referencedomain.VATRateTenAndHalf, rGroups[0].VATRateID)
}

// Per-line rounding happens before summation. Three lines of gross 0.10 at 21%
// each round to 0.08 net; a single rounding of the exact sum would yield 0.25.
func TestAggregate_PerLineRoundingIsPreserved(t *testing.T) {
	items := []invoicedomain.LineItem{
		line("1", "0.10", referencedomain.VATRateTwentyOne),
		line("1", "0.10", referencedomain.VATRateTwentyOne),
		line("1", "0.10", referencedomain.VATRateTwentyOne),
	}

	groups, totals, err := Aggregate(items)
	require.NoError(t, err)

	require.Len(t, groups, 1)
	assert.Equal(t, "0.24", groups[0].TaxableBase.StringFixed(2))
	assert.Equal(t, "0.06", groups[0].TaxAmount.StringFixed(2))
	assert.Equal(t, "0.24", totals.Net.StringFixed(2))
	assert.Equal(t, "0.30", totals.Total.StringFixed(2))
}

func TestAggregate_TotalsReconcileWithGroups(t *testing.T) {
	items := []invoicedomain.LineItem{
		line("1.5", "33.33", referencedomain.VATRateTwentyOne),
		line("2", "7.77", referencedomain.VATRateTenAndHalf),
		line("4", "0.99", referencedomain.VATRateTwentySeven),
		line("1", "12.01", referencedomain.VATRateTwentyOne),
	}

	groups, totals, err := Aggregate(items)
	require.NoError(t, err)

	var net, tax decimal.Decimal
	for _, g := range groups {
		net = net.Add(g.TaxableBase)
		tax = tax.Add(g.TaxAmount)
	}

	assert.True(t, totals.Net.Equal(net.Round(2)))
	assert.True(t, totals.Tax.Equal(tax.Round(2)))
	assert.True(t, totals.Total.Equal(net.Round(2).Add(tax.Round(2)).Round(2)))
}

func TestAggregate_PropagatesLineErrors(t *testing.T) {
	_, _, err := Aggregate([]invoicedomain.LineItem{
		line("1", "10.00", referencedomain.VATRateTwentyOne),
		line("0", "10.00", referencedomain.VATRateTwentyOne),
	})
	assert.ErrorIs(t, err, invoicedomain.ErrInvalidLineItem)
}
