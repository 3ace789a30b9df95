package service

import (
	"context"
	"errors"
	"strconv"

	afipdomain "github.com/fiscalio/facturador/internal/afip/domain"
	"github.com/fiscalio/facturador/internal/afip/gateway"
	"github.com/fiscalio/facturador/internal/config"
	"github.com/fiscalio/facturador/internal/invoice/calc"
	invoicedomain "github.com/fiscalio/facturador/internal/invoice/domain"
	issuerdomain "github.com/fiscalio/facturador/internal/issuer/domain"
	issuingdomain "github.com/fiscalio/facturador/internal/issuing/domain"
	referencedomain "github.com/fiscalio/facturador/internal/reference/domain"
	voucherdomain "github.com/fiscalio/facturador/internal/voucher/domain"
	"github.com/fiscalio/facturador/pkg/telemetry"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParam struct {
	fx.In

	Config     config.Config
	Log        *zap.Logger
	Gateway    *gateway.Gateway
	IssuerSvc  issuerdomain.Service
	VoucherSvc voucherdomain.Service
	Metrics    *telemetry.Metrics `optional:"true"`
}

type Service struct {
	cfg        config.Config
	log        *zap.Logger
	gateway    *gateway.Gateway
	issuerSvc  issuerdomain.Service
	voucherSvc voucherdomain.Service
	metrics    *telemetry.Metrics
}

func NewService(p ServiceParam) issuingdomain.Service {
	return &Service{
		cfg:        p.Config,
		log:        p.Log.Named("issuing.service"),
		gateway:    p.Gateway,
		issuerSvc:  p.IssuerSvc,
		voucherSvc: p.VoucherSvc,
		metrics:    p.Metrics,
	}
}

func (s *Service) Preview(ctx context.Context, items []invoicedomain.LineItem) (issuingdomain.Preview, error) {
	groups, totals, err := calc.Aggregate(items)
	if err != nil {
		return issuingdomain.Preview{}, err
	}
	return issuingdomain.Preview{Groups: groups, Totals: totals}, nil
}

func (s *Service) Issue(ctx context.Context, req issuingdomain.IssueRequest) (voucherdomain.Voucher, error) {
	if len(req.Items) == 0 {
		return voucherdomain.Voucher{}, issuingdomain.ErrNoLineItems
	}
	voucherType, err := referencedomain.VoucherTypeByID(req.VoucherType)
	if err != nil {
		return voucherdomain.Voucher{}, err
	}
	if _, err := referencedomain.ConceptByID(req.Concept); err != nil {
		return voucherdomain.Voucher{}, err
	}
	if _, err := referencedomain.DocumentTypeByID(req.DocumentType); err != nil {
		return voucherdomain.Voucher{}, err
	}

	// All calculation errors surface here, before any remote call.
	groups, totals, err := calc.Aggregate(req.Items)
	if err != nil {
		return voucherdomain.Voucher{}, err
	}

	profile, err := s.issuerSvc.Get(ctx)
	if err != nil {
		return voucherdomain.Voucher{}, err
	}

	salesPoint := req.SalesPoint
	if salesPoint == 0 {
		salesPoint = profile.SalesPoint
	}

	auth, err := s.gateway.Authorize(ctx, s.issuerContext(profile), gateway.Request{
		SalesPoint:     salesPoint,
		VoucherType:    req.VoucherType,
		Concept:        req.Concept,
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		Currency:       req.Currency,
		Totals:         totals,
		Groups:         groups,
	})
	if err != nil {
		s.metrics.VoucherRejected(classify(err))
		return voucherdomain.Voucher{}, err
	}

	record, err := s.voucherSvc.Save(ctx, voucherdomain.CreateRequest{
		CAE:                auth.CAE,
		CAEExpiry:          auth.CAEExpiry,
		SalesPoint:         salesPoint,
		VoucherType:        req.VoucherType,
		VoucherLabel:       voucherType.Label,
		VoucherNumberFrom:  auth.VoucherNumber,
		VoucherNumberTo:    auth.VoucherNumber,
		Concept:            req.Concept,
		DocumentType:       req.DocumentType,
		DocumentNumber:     req.DocumentNumber,
		SellerVATCondition: profile.VATCondition,
		BuyerVATCondition:  req.BuyerVATCondition,
		BuyerName:          req.BuyerName,
		BuyerAddress:       req.BuyerAddress,
		Currency:           req.Currency,
		Totals:             totals,
		LineItems:          req.Items,
		TaxGroups:          groups,
		Issuer:             profile.Snapshot(),
		IssuedAt:           auth.ProcessedAt,
	})
	if err != nil {
		// The remote authorization exists. Surface it instead of losing it.
		s.log.Error("voucher authorized but not recorded",
			zap.String("cae", auth.CAE),
			zap.Int64("voucher_number", auth.VoucherNumber),
			zap.Error(err),
		)
		return voucherdomain.Voucher{}, &issuingdomain.UnrecordedAuthorizationError{
			Authorization: auth,
			Cause:         err,
		}
	}

	s.metrics.VoucherIssued(strconv.Itoa(req.VoucherType), strconv.Itoa(salesPoint))
	return record, nil
}

func (s *Service) LastVoucherNumber(ctx context.Context, salesPoint, voucherType int) (int64, error) {
	profile, err := s.issuerSvc.Get(ctx)
	if err != nil {
		return 0, err
	}
	if salesPoint == 0 {
		salesPoint = profile.SalesPoint
	}
	return s.gateway.LastVoucherNumber(ctx, s.issuerContext(profile), salesPoint, voucherType)
}

func (s *Service) RunCertificateAutomation(ctx context.Context) error {
	profile, err := s.issuerSvc.Get(ctx)
	if err != nil {
		return err
	}
	return s.gateway.RunCertificateAutomation(ctx, s.issuerContext(profile))
}

func (s *Service) issuerContext(profile issuerdomain.Issuer) afipdomain.IssuerContext {
	return afipdomain.IssuerContext{
		CUIT:            profile.CUIT,
		Environment:     s.cfg.AFIP.Environment,
		CertificatePath: s.cfg.AFIP.CertificatePath,
		PrivateKeyPath:  s.cfg.AFIP.PrivateKeyPath,
	}
}

func classify(err error) string {
	switch {
	case afipdomain.AsValidationRejected(err) != nil:
		return "validation_rejected"
	case errors.Is(err, afipdomain.ErrConfigurationMissing):
		return "configuration_missing"
	case errors.Is(err, afipdomain.ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, afipdomain.ErrNetworkFailure):
		return "network_failure"
	default:
		return "unknown"
	}
}
