package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fiscalio/facturador/internal/config"
	issuerdomain "github.com/fiscalio/facturador/internal/issuer/domain"
	"github.com/fiscalio/facturador/internal/issuing"
	issuingdomain "github.com/fiscalio/facturador/internal/issuing/domain"
	"github.com/fiscalio/facturador/internal/render"
	voucherdomain "github.com/fiscalio/facturador/internal/voucher/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	issuing.Module,
	render.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger) *gin.Engine {
	return NewEngine(log)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger, shutdowner fx.Shutdowner) {
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.ListenAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
					if err := shutdowner.Shutdown(); err != nil {
						log.Error("shutdown signal failed", zap.Error(err))
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	log        *zap.Logger
	issuingSvc issuingdomain.Service
	issuerSvc  issuerdomain.Service
	voucherSvc voucherdomain.Service
	renderSvc  render.Service
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	Log        *zap.Logger
	IssuingSvc issuingdomain.Service
	IssuerSvc  issuerdomain.Service
	VoucherSvc voucherdomain.Service
	RenderSvc  render.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		log:        p.Log.Named("http.server"),
		issuingSvc: p.IssuingSvc,
		issuerSvc:  p.IssuerSvc,
		voucherSvc: p.VoucherSvc,
		renderSvc:  p.RenderSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	v1 := s.engine.Group("/v1")

	// -------- Reference tables --------
	v1.GET("/reference/vat-rates", s.ListVATRates)
	v1.GET("/reference/voucher-types", s.ListVoucherTypes)
	v1.GET("/reference/document-types", s.ListDocumentTypes)
	v1.GET("/reference/concepts", s.ListConcepts)
	v1.GET("/reference/vat-conditions", s.ListVATConditions)

	// -------- Issuer profile --------
	v1.GET("/issuer", s.GetIssuer)
	v1.PUT("/issuer", s.UpdateIssuer)

	// -------- Invoices --------
	v1.POST("/invoices/preview", s.PreviewInvoice)
	v1.POST("/invoices", s.IssueInvoice)

	// -------- Vouchers --------
	v1.GET("/vouchers", s.ListVouchers)
	v1.GET("/vouchers/:id", s.GetVoucherByID)
	v1.GET("/vouchers/authorization/:cae", s.GetVoucherByCAE)
	v1.DELETE("/vouchers/:id", s.DeleteVoucher)
	v1.POST("/vouchers/:id/document", s.RenderVoucherDocument)
	v1.GET("/vouchers/:id/preview", s.PreviewVoucherDocument)

	// -------- Remote service --------
	v1.GET("/afip/last-number", s.GetLastVoucherNumber)
	v1.POST("/afip/certificate-automation", s.RunCertificateAutomation)
}
