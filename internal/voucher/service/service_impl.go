package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	voucherdomain "github.com/fiscalio/facturador/internal/voucher/domain"
	"github.com/fiscalio/facturador/pkg/db"
	"github.com/fiscalio/facturador/pkg/db/option"
	"github.com/fiscalio/facturador/pkg/db/pagination"
	"github.com/fiscalio/facturador/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node

	voucherrepo repository.Repository[voucherdomain.Voucher]
}

func NewService(p ServiceParam) voucherdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("voucher.service"),
		genID: p.GenID,

		voucherrepo: repository.ProvideStore[voucherdomain.Voucher](p.DB),
	}
}

func (s *Service) Save(ctx context.Context, req voucherdomain.CreateRequest) (voucherdomain.Voucher, error) {
	lineItems, err := json.Marshal(req.LineItems)
	if err != nil {
		return voucherdomain.Voucher{}, err
	}
	taxGroups, err := json.Marshal(req.TaxGroups)
	if err != nil {
		return voucherdomain.Voucher{}, err
	}
	snapshot, err := json.Marshal(req.Issuer)
	if err != nil {
		return voucherdomain.Voucher{}, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "PES"
	}
	issuedAt := req.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = time.Now().UTC()
	}

	record := voucherdomain.Voucher{
		ID:                 s.genID.Generate(),
		CAE:                req.CAE,
		CAEExpiry:          req.CAEExpiry,
		SalesPoint:         req.SalesPoint,
		VoucherType:        req.VoucherType,
		VoucherLabel:       req.VoucherLabel,
		VoucherNumberFrom:  req.VoucherNumberFrom,
		VoucherNumberTo:    req.VoucherNumberTo,
		Concept:            req.Concept,
		DocumentType:       req.DocumentType,
		DocumentNumber:     req.DocumentNumber,
		SellerVATCondition: req.SellerVATCondition,
		BuyerVATCondition:  req.BuyerVATCondition,
		BuyerName:          req.BuyerName,
		BuyerAddress:       req.BuyerAddress,
		NetAmount:          req.Totals.Net,
		TaxAmount:          req.Totals.Tax,
		TotalAmount:        req.Totals.Total,
		Currency:           currency,
		LineItems:          lineItems,
		TaxGroups:          taxGroups,
		IssuerSnapshot:     snapshot,
		IssuedAt:           issuedAt,
		CreatedAt:          time.Now().UTC(),
	}

	if err := s.voucherrepo.Create(ctx, &record); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return voucherdomain.Voucher{}, fmt.Errorf("%w: %v", voucherdomain.ErrDuplicateNumber, err)
		}
		return voucherdomain.Voucher{}, fmt.Errorf("%w: %v", voucherdomain.ErrStorageUnavailable, err)
	}

	s.log.Info("voucher recorded",
		zap.Int64("id", int64(record.ID)),
		zap.String("cae", record.CAE),
		zap.Int64("voucher_number", record.VoucherNumberFrom),
	)
	return record, nil
}

// Find returns matching vouchers newest first. A zero limit means unbounded:
// an unfiltered, unpaged Find sees every record Count sees. Paging defaults
// belong to the HTTP layer, not here.
func (s *Service) Find(ctx context.Context, filter voucherdomain.Filter) ([]voucherdomain.Voucher, error) {
	options := append(filterOptions(filter),
		option.WithOrder("issued_at DESC, id DESC"),
		option.WithLimit(filter.Pagination.Limit),
		option.WithOffset(filter.Pagination.Offset),
	)

	items, err := s.voucherrepo.Find(ctx, &voucherdomain.Voucher{}, options...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", voucherdomain.ErrStorageUnavailable, err)
	}

	vouchers := make([]voucherdomain.Voucher, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		vouchers = append(vouchers, *item)
	}
	return vouchers, nil
}

func (s *Service) Count(ctx context.Context, filter voucherdomain.Filter) (int64, error) {
	count, err := s.voucherrepo.Count(ctx, &voucherdomain.Voucher{}, filterOptions(filter)...)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", voucherdomain.ErrStorageUnavailable, err)
	}
	return count, nil
}

func (s *Service) List(ctx context.Context, filter voucherdomain.Filter) (voucherdomain.ListResponse, error) {
	vouchers, err := s.Find(ctx, filter)
	if err != nil {
		return voucherdomain.ListResponse{}, err
	}
	total, err := s.Count(ctx, filter)
	if err != nil {
		return voucherdomain.ListResponse{}, err
	}

	return voucherdomain.ListResponse{
		PageInfo: pagination.BuildPageInfo(total, filter.Pagination),
		Vouchers: vouchers,
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (voucherdomain.Voucher, error) {
	voucherID, err := parseID(id)
	if err != nil {
		return voucherdomain.Voucher{}, voucherdomain.ErrInvalidVoucherID
	}

	item, err := s.voucherrepo.FindOne(ctx, &voucherdomain.Voucher{ID: voucherID})
	if err != nil {
		return voucherdomain.Voucher{}, fmt.Errorf("%w: %v", voucherdomain.ErrStorageUnavailable, err)
	}
	if item == nil {
		return voucherdomain.Voucher{}, voucherdomain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) GetByCAE(ctx context.Context, cae string) (voucherdomain.Voucher, error) {
	cae = strings.TrimSpace(cae)
	if cae == "" {
		return voucherdomain.Voucher{}, voucherdomain.ErrNotFound
	}

	item, err := s.voucherrepo.FindOne(ctx, &voucherdomain.Voucher{CAE: cae})
	if err != nil {
		return voucherdomain.Voucher{}, fmt.Errorf("%w: %v", voucherdomain.ErrStorageUnavailable, err)
	}
	if item == nil {
		return voucherdomain.Voucher{}, voucherdomain.ErrNotFound
	}
	return *item, nil
}

// Delete removes a record by explicit user action. It reports whether a
// record existed; deleting an absent id is not an error.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	voucherID, err := parseID(id)
	if err != nil {
		return false, voucherdomain.ErrInvalidVoucherID
	}

	result := s.db.WithContext(ctx).Where("id = ?", voucherID).Delete(&voucherdomain.Voucher{})
	if result.Error != nil {
		return false, fmt.Errorf("%w: %v", voucherdomain.ErrStorageUnavailable, result.Error)
	}
	if result.RowsAffected > 0 {
		s.log.Info("voucher deleted", zap.Int64("id", int64(voucherID)))
	}
	return result.RowsAffected > 0, nil
}

// AttachDocumentPath records where the rendered document was written. It is
// the only mutation permitted on a stored voucher.
func (s *Service) AttachDocumentPath(ctx context.Context, id string, path string) error {
	voucherID, err := parseID(id)
	if err != nil {
		return voucherdomain.ErrInvalidVoucherID
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return voucherdomain.ErrInvalidDocumentRef
	}

	result := s.db.WithContext(ctx).
		Model(&voucherdomain.Voucher{}).
		Where("id = ?", voucherID).
		Update("document_path", path)
	if result.Error != nil {
		return fmt.Errorf("%w: %v", voucherdomain.ErrStorageUnavailable, result.Error)
	}
	if result.RowsAffected == 0 {
		return voucherdomain.ErrNotFound
	}
	return nil
}

// filterOptions builds explicit conditions for every set filter field.
// Struct-based gorm queries would silently drop zero values, and a document
// number of 0 (consumidor final) is a legitimate filter.
func filterOptions(filter voucherdomain.Filter) []option.QueryOption {
	var options []option.QueryOption
	if filter.DocumentNumber != nil {
		options = append(options, option.ApplyOperator(option.Condition{
			Field:    "document_number",
			Operator: option.EQ,
			Value:    *filter.DocumentNumber,
		}))
	}
	if filter.DocumentType != nil {
		options = append(options, option.ApplyOperator(option.Condition{
			Field:    "document_type",
			Operator: option.EQ,
			Value:    *filter.DocumentType,
		}))
	}
	if filter.SalesPoint != nil {
		options = append(options, option.ApplyOperator(option.Condition{
			Field:    "sales_point",
			Operator: option.EQ,
			Value:    *filter.SalesPoint,
		}))
	}
	if filter.VoucherType != nil {
		options = append(options, option.ApplyOperator(option.Condition{
			Field:    "voucher_type",
			Operator: option.EQ,
			Value:    *filter.VoucherType,
		}))
	}
	if filter.DateFrom != nil {
		options = append(options, option.ApplyOperator(option.Condition{
			Field:    "issued_at",
			Operator: option.GTE,
			Value:    *filter.DateFrom,
		}))
	}
	if filter.DateTo != nil {
		options = append(options, option.ApplyOperator(option.Condition{
			Field:    "issued_at",
			Operator: option.LTE,
			Value:    *filter.DateTo,
		}))
	}
	return options
}

func parseID(raw string) (snowflake.ID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errors.New("empty id")
	}
	return snowflake.ParseString(raw)
}
