package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	afipdomain "github.com/fiscalio/facturador/internal/afip/domain"
	"github.com/fiscalio/facturador/internal/afip/gateway"
	"github.com/fiscalio/facturador/internal/config"
	invoicedomain "github.com/fiscalio/facturador/internal/invoice/domain"
	issuerdomain "github.com/fiscalio/facturador/internal/issuer/domain"
	issuersvc "github.com/fiscalio/facturador/internal/issuer/service"
	issuingdomain "github.com/fiscalio/facturador/internal/issuing/domain"
	referencedomain "github.com/fiscalio/facturador/internal/reference/domain"
	voucherdomain "github.com/fiscalio/facturador/internal/voucher/domain"
	vouchersvc "github.com/fiscalio/facturador/internal/voucher/service"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type mockRemote struct {
	mock.Mock
}

func (m *mockRemote) LastVoucherNumber(ctx context.Context, issuer afipdomain.IssuerContext, salesPoint, voucherType int) (int64, error) {
	args := m.Called(ctx, issuer, salesPoint, voucherType)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRemote) Authorize(ctx context.Context, issuer afipdomain.IssuerContext, req afipdomain.AuthorizeRequest) (afipdomain.Authorization, error) {
	args := m.Called(ctx, issuer, req)
	return args.Get(0).(afipdomain.Authorization), args.Error(1)
}

func (m *mockRemote) RunCertificateAutomation(ctx context.Context, issuer afipdomain.IssuerContext) error {
	args := m.Called(ctx, issuer)
	return args.Error(0)
}

type failingVoucherSvc struct {
	voucherdomain.Service
}

func (failingVoucherSvc) Save(ctx context.Context, req voucherdomain.CreateRequest) (voucherdomain.Voucher, error) {
	return voucherdomain.Voucher{}, voucherdomain.ErrStorageUnavailable
}

type fixture struct {
	svc        issuingdomain.Service
	remote     *mockRemote
	voucherSvc voucherdomain.Service
}

func newFixture(t *testing.T, overrideVoucherSvc voucherdomain.Service) fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&voucherdomain.Voucher{}, &issuerdomain.Issuer{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	logger := zap.NewNop()

	issuerService := issuersvc.NewService(issuersvc.ServiceParam{DB: db, Log: logger, GenID: node})
	_, err = issuerService.Update(context.Background(), issuerdomain.UpdateRequest{
		CUIT:         "20123456789",
		LegalName:    "Librería El Ateneo SRL",
		Address:      "Av. Santa Fe 1860, CABA",
		VATCondition: "Responsable Inscripto",
		SalesPoint:   3,
	})
	require.NoError(t, err)

	voucherService := vouchersvc.NewService(vouchersvc.ServiceParam{DB: db, Log: logger, GenID: node})
	if overrideVoucherSvc != nil {
		voucherService = overrideVoucherSvc
	}

	remote := new(mockRemote)
	g := gateway.New(gateway.Param{Remote: remote, Log: logger})

	svc := NewService(ServiceParam{
		Config:     config.Config{AFIP: config.AFIPConfig{Environment: config.EnvSandbox}},
		Log:        logger,
		Gateway:    g,
		IssuerSvc:  issuerService,
		VoucherSvc: voucherService,
	})

	return fixture{svc: svc, remote: remote, voucherSvc: voucherService}
}

func issueRequest() issuingdomain.IssueRequest {
	return issuingdomain.IssueRequest{
		VoucherType:       referencedomain.VoucherFacturaB,
		Concept:           referencedomain.ConceptProducts,
		DocumentType:      referencedomain.DocumentDNI,
		DocumentNumber:    30123456,
		BuyerVATCondition: "Consumidor Final",
		Items: []invoicedomain.LineItem{
			{
				Description: "Lámpara de escritorio",
				Quantity:    decimal.New(2, 0),
				UnitPrice:   decimal.RequireFromString("121.00"),
				VATRateID:   referencedomain.VATRateTwentyOne,
			},
		},
	}
}

func TestIssue_AuthorizesAndRecords(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	expiry := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	f.remote.On("LastVoucherNumber", mock.Anything, mock.Anything, 3, referencedomain.VoucherFacturaB).
		Return(int64(14), nil)
	f.remote.On("Authorize", mock.Anything, mock.Anything, mock.MatchedBy(func(req afipdomain.AuthorizeRequest) bool {
		return req.VoucherNumber == 15 &&
			req.Net.Equal(decimal.RequireFromString("200.00")) &&
			req.Tax.Equal(decimal.RequireFromString("42.00")) &&
			req.Total.Equal(decimal.RequireFromString("242.00"))
	})).Return(afipdomain.Authorization{
		CAE:           "71234567890123",
		CAEExpiry:     expiry,
		VoucherNumber: 15,
		ProcessedAt:   time.Date(2026, 8, 31, 15, 4, 5, 0, time.UTC),
	}, nil)

	record, err := f.svc.Issue(ctx, issueRequest())
	require.NoError(t, err)

	assert.Equal(t, "71234567890123", record.CAE)
	assert.Equal(t, int64(15), record.VoucherNumberFrom)
	assert.Equal(t, "Factura B", record.VoucherLabel)
	assert.Equal(t, 3, record.SalesPoint)
	assert.Equal(t, "Responsable Inscripto", record.SellerVATCondition)

	stored, err := f.voucherSvc.GetByID(ctx, record.ID.String())
	require.NoError(t, err)
	assert.True(t, stored.TotalAmount.Equal(decimal.RequireFromString("242.00")))

	snapshot, err := stored.Issuer()
	require.NoError(t, err)
	assert.Equal(t, "20123456789", snapshot.CUIT)
	f.remote.AssertExpectations(t)
}

func TestIssue_ValidationFailsBeforeAnyRemoteCall(t *testing.T) {
	f := newFixture(t, nil)

	req := issueRequest()
	req.Items[0].Quantity = decimal.Zero

	_, err := f.svc.Issue(context.Background(), req)
	assert.ErrorIs(t, err, invoicedomain.ErrInvalidLineItem)
	f.remote.AssertNotCalled(t, "LastVoucherNumber", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.remote.AssertNotCalled(t, "Authorize", mock.Anything, mock.Anything, mock.Anything)
}

func TestIssue_EmptyItems(t *testing.T) {
	f := newFixture(t, nil)

	req := issueRequest()
	req.Items = nil

	_, err := f.svc.Issue(context.Background(), req)
	assert.ErrorIs(t, err, issuingdomain.ErrNoLineItems)
}

func TestIssue_GatewayFailureWritesNothing(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.remote.On("LastVoucherNumber", mock.Anything, mock.Anything, 3, referencedomain.VoucherFacturaB).
		Return(int64(0), afipdomain.ErrNetworkFailure)

	_, err := f.svc.Issue(ctx, issueRequest())
	assert.ErrorIs(t, err, afipdomain.ErrNetworkFailure)

	count, err := f.voucherSvc.Count(ctx, voucherdomain.Filter{})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestIssue_StoreFailureSurfacesAuthorization(t *testing.T) {
	f := newFixture(t, failingVoucherSvc{})
	ctx := context.Background()

	f.remote.On("LastVoucherNumber", mock.Anything, mock.Anything, 3, referencedomain.VoucherFacturaB).
		Return(int64(14), nil)
	f.remote.On("Authorize", mock.Anything, mock.Anything, mock.Anything).
		Return(afipdomain.Authorization{CAE: "71234567890123", VoucherNumber: 15}, nil)

	_, err := f.svc.Issue(ctx, issueRequest())
	uErr := issuingdomain.AsUnrecorded(err)
	require.NotNil(t, uErr)
	assert.Equal(t, "71234567890123", uErr.Authorization.CAE)
	assert.Equal(t, int64(15), uErr.Authorization.VoucherNumber)
	assert.ErrorIs(t, err, voucherdomain.ErrStorageUnavailable)
}

func TestPreview_AggregatesWithoutSideEffects(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	preview, err := f.svc.Preview(ctx, issueRequest().Items)
	require.NoError(t, err)

	require.Len(t, preview.Groups, 1)
	assert.Equal(t, "242.00", preview.Totals.Total.StringFixed(2))

	count, err := f.voucherSvc.Count(ctx, voucherdomain.Filter{})
	require.NoError(t, err)
	assert.Zero(t, count)
	f.remote.AssertNotCalled(t, "Authorize", mock.Anything, mock.Anything, mock.Anything)
}

func TestLastVoucherNumber_DefaultsToProfileSalesPoint(t *testing.T) {
	f := newFixture(t, nil)

	f.remote.On("LastVoucherNumber", mock.Anything, mock.MatchedBy(func(issuer afipdomain.IssuerContext) bool {
		return issuer.CUIT == "20123456789"
	}), 3, referencedomain.VoucherFacturaB).Return(int64(99), nil)

	last, err := f.svc.LastVoucherNumber(context.Background(), 0, referencedomain.VoucherFacturaB)
	require.NoError(t, err)
	assert.Equal(t, int64(99), last)
}
