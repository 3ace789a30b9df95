package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	invoicedomain "github.com/fiscalio/facturador/internal/invoice/domain"
	issuerdomain "github.com/fiscalio/facturador/internal/issuer/domain"
	referencedomain "github.com/fiscalio/facturador/internal/reference/domain"
	voucherdomain "github.com/fiscalio/facturador/internal/voucher/domain"
	"github.com/fiscalio/facturador/pkg/db/pagination"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) voucherdomain.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&voucherdomain.Voucher{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewService(ServiceParam{DB: db, Log: zap.NewNop(), GenID: node})
}

func createRequest(number int64) voucherdomain.CreateRequest {
	buyer := "Juan Pérez"
	return voucherdomain.CreateRequest{
		CAE:                fmt.Sprintf("712345678901%02d", number%100),
		CAEExpiry:          time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		SalesPoint:         3,
		VoucherType:        referencedomain.VoucherFacturaB,
		VoucherLabel:       "Factura B",
		VoucherNumberFrom:  number,
		VoucherNumberTo:    number,
		Concept:            referencedomain.ConceptProducts,
		DocumentType:       referencedomain.DocumentDNI,
		DocumentNumber:     30123456,
		SellerVATCondition: "Responsable Inscripto",
		BuyerVATCondition:  "Consumidor Final",
		BuyerName:          &buyer,
		Totals: invoicedomain.Totals{
			Net:   decimal.RequireFromString("200.00"),
			Tax:   decimal.RequireFromString("42.00"),
			Total: decimal.RequireFromString("242.00"),
		},
		LineItems: []invoicedomain.LineItem{
			{
				Description: "Lámpara de escritorio",
				Quantity:    decimal.New(2, 0),
				Unit:        "unidad",
				UnitPrice:   decimal.RequireFromString("121.00"),
				VATRateID:   referencedomain.VATRateTwentyOne,
			},
		},
		TaxGroups: []invoicedomain.TaxGroup{
			{
				VATRateID:   referencedomain.VATRateTwentyOne,
				Percentage:  decimal.New(21, 0),
				TaxableBase: decimal.RequireFromString("200.00"),
				TaxAmount:   decimal.RequireFromString("42.00"),
			},
		},
		Issuer: issuerdomain.Snapshot{
			CUIT:         "20123456789",
			LegalName:    "Librería El Ateneo SRL",
			VATCondition: "Responsable Inscripto",
			SalesPoint:   3,
		},
		IssuedAt: time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC).Add(time.Duration(number) * time.Minute),
	}
}

func TestSaveAndGetByID_RoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	req := createRequest(1)
	saved, err := svc.Save(ctx, req)
	require.NoError(t, err)
	require.NotZero(t, saved.ID)

	got, err := svc.GetByID(ctx, saved.ID.String())
	require.NoError(t, err)

	assert.Equal(t, req.CAE, got.CAE)
	assert.Equal(t, req.SalesPoint, got.SalesPoint)
	assert.Equal(t, req.VoucherType, got.VoucherType)
	assert.Equal(t, req.VoucherNumberFrom, got.VoucherNumberFrom)
	assert.Equal(t, req.DocumentNumber, got.DocumentNumber)
	assert.True(t, got.NetAmount.Equal(req.Totals.Net))
	assert.True(t, got.TaxAmount.Equal(req.Totals.Tax))
	assert.True(t, got.TotalAmount.Equal(req.Totals.Total))

	lines, err := got.Lines()
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "Lámpara de escritorio", lines[0].Description)
	assert.True(t, lines[0].UnitPrice.Equal(decimal.RequireFromString("121.00")))

	groups, err := got.Groups()
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, referencedomain.VATRateTwentyOne, groups[0].VATRateID)

	snapshot, err := got.Issuer()
	require.NoError(t, err)
	assert.Equal(t, "20123456789", snapshot.CUIT)
}

func TestGetByCAE(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	saved, err := svc.Save(ctx, createRequest(7))
	require.NoError(t, err)

	got, err := svc.GetByCAE(ctx, saved.CAE)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)

	_, err = svc.GetByCAE(ctx, "00000000000000")
	assert.ErrorIs(t, err, voucherdomain.ErrNotFound)
}

func TestFind_NewestFirst(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		_, err := svc.Save(ctx, createRequest(i))
		require.NoError(t, err)
	}

	vouchers, err := svc.Find(ctx, voucherdomain.Filter{})
	require.NoError(t, err)
	require.Len(t, vouchers, 3)

	assert.Equal(t, int64(3), vouchers[0].VoucherNumberFrom)
	assert.Equal(t, int64(2), vouchers[1].VoucherNumberFrom)
	assert.Equal(t, int64(1), vouchers[2].VoucherNumberFrom)
}

func TestFind_NoLimitReturnsEverything(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	const records = 60
	for i := int64(1); i <= records; i++ {
		_, err := svc.Save(ctx, createRequest(i))
		require.NoError(t, err)
	}

	count, err := svc.Count(ctx, voucherdomain.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(records), count)

	vouchers, err := svc.Find(ctx, voucherdomain.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int(count), len(vouchers))

	resp, err := svc.List(ctx, voucherdomain.Filter{})
	require.NoError(t, err)
	assert.Len(t, resp.Vouchers, records)
	assert.False(t, resp.HasMore)
}

func TestSave_DuplicateVoucherNumber(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, createRequest(1))
	require.NoError(t, err)

	dup := createRequest(1)
	dup.CAE = "79999999999999"
	_, err = svc.Save(ctx, dup)
	assert.ErrorIs(t, err, voucherdomain.ErrDuplicateNumber)
	assert.NotErrorIs(t, err, voucherdomain.ErrStorageUnavailable)

	count, err := svc.Count(ctx, voucherdomain.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestFind_FiltersAreConjunctive(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	base := createRequest(1)
	_, err := svc.Save(ctx, base)
	require.NoError(t, err)

	other := createRequest(2)
	other.SalesPoint = 9
	_, err = svc.Save(ctx, other)
	require.NoError(t, err)

	third := createRequest(3)
	third.VoucherType = referencedomain.VoucherFacturaA
	_, err = svc.Save(ctx, third)
	require.NoError(t, err)

	salesPoint := 3
	voucherType := referencedomain.VoucherFacturaB
	filter := voucherdomain.Filter{SalesPoint: &salesPoint, VoucherType: &voucherType}

	vouchers, err := svc.Find(ctx, filter)
	require.NoError(t, err)
	require.Len(t, vouchers, 1)
	assert.Equal(t, int64(1), vouchers[0].VoucherNumberFrom)

	count, err := svc.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(len(vouchers)), count)
}

func TestFind_DateRangeFilter(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i := int64(1); i <= 5; i++ {
		_, err := svc.Save(ctx, createRequest(i))
		require.NoError(t, err)
	}

	from := time.Date(2026, 8, 31, 12, 2, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 12, 4, 0, 0, time.UTC)
	vouchers, err := svc.Find(ctx, voucherdomain.Filter{DateFrom: &from, DateTo: &to})
	require.NoError(t, err)

	require.Len(t, vouchers, 3)
	assert.Equal(t, int64(4), vouchers[0].VoucherNumberFrom)
	assert.Equal(t, int64(2), vouchers[2].VoucherNumberFrom)
}

func TestList_Pagination(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i := int64(1); i <= 5; i++ {
		_, err := svc.Save(ctx, createRequest(i))
		require.NoError(t, err)
	}

	resp, err := svc.List(ctx, voucherdomain.Filter{
		Pagination: pagination.Pagination{Limit: 2, Offset: 2},
	})
	require.NoError(t, err)

	require.Len(t, resp.Vouchers, 2)
	assert.Equal(t, int64(3), resp.Vouchers[0].VoucherNumberFrom)
	assert.Equal(t, int64(5), resp.TotalCount)
	assert.True(t, resp.HasMore)
}

func TestDelete_Semantics(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	saved, err := svc.Save(ctx, createRequest(1))
	require.NoError(t, err)

	removed, err := svc.Delete(ctx, "123456789")
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = svc.Delete(ctx, saved.ID.String())
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = svc.GetByID(ctx, saved.ID.String())
	assert.ErrorIs(t, err, voucherdomain.ErrNotFound)
}

func TestAttachDocumentPath_OnlyTouchesDocumentPath(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	saved, err := svc.Save(ctx, createRequest(1))
	require.NoError(t, err)

	before, err := svc.GetByID(ctx, saved.ID.String())
	require.NoError(t, err)

	require.NoError(t, svc.AttachDocumentPath(ctx, saved.ID.String(), "documents/0003-00000001.pdf"))

	after, err := svc.GetByID(ctx, saved.ID.String())
	require.NoError(t, err)

	require.NotNil(t, after.DocumentPath)
	assert.Equal(t, "documents/0003-00000001.pdf", *after.DocumentPath)

	after.DocumentPath = before.DocumentPath
	assert.Equal(t, before, after)
}

func TestAttachDocumentPath_MissingVoucher(t *testing.T) {
	svc := newTestService(t)

	err := svc.AttachDocumentPath(context.Background(), "987654321", "documents/x.pdf")
	assert.ErrorIs(t, err, voucherdomain.ErrNotFound)
}

func TestGetByID_InvalidID(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetByID(context.Background(), "not-a-number")
	assert.ErrorIs(t, err, voucherdomain.ErrInvalidVoucherID)
}
