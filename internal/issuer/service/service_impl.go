package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	issuerdomain "github.com/fiscalio/facturador/internal/issuer/domain"
	"github.com/fiscalio/facturador/pkg/db"
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

	issuerrepo repository.Repository[issuerdomain.Issuer]
}

func NewService(p ServiceParam) issuerdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("issuer.service"),
		genID: p.GenID,

		issuerrepo: repository.ProvideStore[issuerdomain.Issuer](p.DB),
	}
}

func (s *Service) Get(ctx context.Context) (issuerdomain.Issuer, error) {
	item, err := s.issuerrepo.FindOne(ctx, &issuerdomain.Issuer{})
	if err != nil {
		return issuerdomain.Issuer{}, err
	}
	if item == nil {
		return issuerdomain.Issuer{}, issuerdomain.ErrNotConfigured
	}
	return *item, nil
}

func (s *Service) Update(ctx context.Context, req issuerdomain.UpdateRequest) (issuerdomain.Issuer, error) {
	issuer := issuerdomain.Issuer{
		CUIT:          strings.TrimSpace(req.CUIT),
		LegalName:     strings.TrimSpace(req.LegalName),
		TradeName:     req.TradeName,
		Address:       strings.TrimSpace(req.Address),
		GrossIncomeID: req.GrossIncomeID,
		ActivityStart: req.ActivityStart,
		VATCondition:  strings.TrimSpace(req.VATCondition),
		SalesPoint:    req.SalesPoint,
	}
	if err := issuer.Validate(); err != nil {
		return issuerdomain.Issuer{}, err
	}

	now := time.Now().UTC()
	existing, err := s.issuerrepo.FindOne(ctx, &issuerdomain.Issuer{})
	if err != nil {
		return issuerdomain.Issuer{}, err
	}

	if existing == nil {
		issuer.ID = s.genID.Generate()
		issuer.CreatedAt = now
		issuer.UpdatedAt = now
		if err := s.issuerrepo.Create(ctx, &issuer); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return issuerdomain.Issuer{}, issuerdomain.ErrDuplicateCUIT
			}
			return issuerdomain.Issuer{}, err
		}
		s.log.Info("issuer profile created", zap.String("cuit", issuer.CUIT))
		return issuer, nil
	}

	issuer.ID = existing.ID
	issuer.CreatedAt = existing.CreatedAt
	issuer.UpdatedAt = now
	if err := s.db.WithContext(ctx).Save(&issuer).Error; err != nil {
		if db.IsDuplicateKeyErr(err) {
			return issuerdomain.Issuer{}, issuerdomain.ErrDuplicateCUIT
		}
		return issuerdomain.Issuer{}, err
	}
	s.log.Info("issuer profile updated", zap.String("cuit", issuer.CUIT))
	return issuer, nil
}
