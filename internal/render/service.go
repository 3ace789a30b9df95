package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fiscalio/facturador/internal/config"
	voucherdomain "github.com/fiscalio/facturador/internal/voucher/domain"
	"github.com/fiscalio/facturador/pkg/telemetry"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Service renders stored vouchers into PDF documents under the data
// directory and records the resulting path on the voucher.
type Service interface {
	// RenderDocument writes the PDF for a voucher and returns its path.
	// Re-rendering overwrites the previous file; the stored record never
	// changes beyond its document path.
	RenderDocument(ctx context.Context, voucherID string) (string, error)

	// RenderHTML returns the browser preview without touching the store.
	RenderHTML(ctx context.Context, voucherID string) (string, error)
}

type ServiceParam struct {
	fx.In

	Config     config.Config
	Log        *zap.Logger
	VoucherSvc voucherdomain.Service
	PDF        *PDFRenderer
	HTML       *HTMLRenderer
	Metrics    *telemetry.Metrics `optional:"true"`
}

type service struct {
	cfg        config.Config
	log        *zap.Logger
	voucherSvc voucherdomain.Service
	pdf        *PDFRenderer
	html       *HTMLRenderer
	metrics    *telemetry.Metrics
}

func NewService(p ServiceParam) Service {
	return &service{
		cfg:        p.Config,
		log:        p.Log.Named("render.service"),
		voucherSvc: p.VoucherSvc,
		pdf:        p.PDF,
		html:       p.HTML,
		metrics:    p.Metrics,
	}
}

func (s *service) RenderDocument(ctx context.Context, voucherID string) (string, error) {
	voucher, err := s.voucherSvc.GetByID(ctx, voucherID)
	if err != nil {
		return "", err
	}

	view, err := BuildDocumentView(voucher)
	if err != nil {
		return "", err
	}

	data, err := s.pdf.Render(view)
	if err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}

	dir := filepath.Join(s.cfg.DataDir, "documents")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, documentFileName(voucher))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}

	if err := s.voucherSvc.AttachDocumentPath(ctx, voucherID, path); err != nil {
		return "", err
	}

	s.metrics.DocumentRendered()
	s.log.Info("document rendered",
		zap.String("voucher_id", voucherID),
		zap.String("path", path),
	)
	return path, nil
}

func (s *service) RenderHTML(ctx context.Context, voucherID string) (string, error) {
	voucher, err := s.voucherSvc.GetByID(ctx, voucherID)
	if err != nil {
		return "", err
	}

	view, err := BuildDocumentView(voucher)
	if err != nil {
		return "", err
	}

	return s.html.RenderHTML(view)
}

func documentFileName(v voucherdomain.Voucher) string {
	return fmt.Sprintf("%d-%04d-%08d.pdf", v.VoucherType, v.SalesPoint, v.VoucherNumberFrom)
}
