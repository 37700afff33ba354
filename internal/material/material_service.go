package material

import (
	"context"
	"database/sql"
	"errors"

	materialerrors "go-mandor/internal/material/errors"
	"go-mandor/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=material_service.go -destination=mock/material_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateMaterialRequest) (MaterialResponse, error)
	GetAll(ctx context.Context, companyID string) ([]MaterialResponse, error)
	GetByID(ctx context.Context, companyID, id string) (MaterialResponse, error)
	StockIn(ctx context.Context, companyID, actorID, id string, req StockMovementRequest) (MaterialResponse, error)
	StockOut(ctx context.Context, companyID, actorID, id string, req StockMovementRequest) (MaterialResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{
		db:     db,
		repo:   repo,
		logger: zap.L().Named("material.service"),
	}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateMaterialRequest) (MaterialResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if req.Stock < 0 {
		return MaterialResponse{}, materialerrors.ErrInvalidQuantity
	}
	if req.UnitPrice < 0 {
		return MaterialResponse{}, materialerrors.ErrInvalidUnitPrice
	}

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return MaterialResponse{}, errors.New("invalid company id")
	}
	createdBy, err := uuid.Parse(actorID)
	if err != nil {
		return MaterialResponse{}, errors.New("invalid actor id")
	}

	var projectID *uuid.UUID
	if req.ProjectID != nil {
		parsed, err := uuid.Parse(*req.ProjectID)
		if err != nil {
			return MaterialResponse{}, errors.New("invalid project id")
		}
		projectID = &parsed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return MaterialResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	m := &Material{
		ID:        uuid.New(),
		CompanyID: companyUUID,
		Name:      req.Name,
		Unit:      req.Unit,
		Stock:     req.Stock,
		UnitPrice: req.UnitPrice,
		ProjectID: projectID,
		CreatedBy: createdBy,
	}

	if err := qtx.Create(ctx, m); err != nil {
		s.logger.Error("create material persist failed", zap.Error(err))
		return MaterialResponse{}, err
	}

	// Opening stock is itself a movement so the trail starts at zero.
	if req.Stock > 0 {
		if err := qtx.CreateMovement(ctx, &StockMovement{
			ID:         uuid.New(),
			CompanyID:  companyUUID,
			MaterialID: m.ID,
			Direction:  MovementIn,
			Quantity:   req.Stock,
			StockAfter: m.Stock,
			CreatedBy:  createdBy,
		}); err != nil {
			return MaterialResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return MaterialResponse{}, err
	}

	s.logger.Info("material created",
		zap.String("request_id", rid),
		zap.String("material_id", m.ID.String()),
		zap.String("name", m.Name),
	)

	return mapToResponse(*m), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]MaterialResponse, error) {
	materials, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]MaterialResponse, len(materials))
	for i, m := range materials {
		resp[i] = mapToResponse(m)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (MaterialResponse, error) {
	m, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MaterialResponse{}, materialerrors.ErrMaterialNotFound
		}
		return MaterialResponse{}, err
	}
	return mapToResponse(*m), nil
}

func (s *service) StockIn(ctx context.Context, companyID, actorID, id string, req StockMovementRequest) (MaterialResponse, error) {
	return s.moveStock(ctx, companyID, actorID, id, MovementIn, req)
}

func (s *service) StockOut(ctx context.Context, companyID, actorID, id string, req StockMovementRequest) (MaterialResponse, error) {
	return s.moveStock(ctx, companyID, actorID, id, MovementOut, req)
}

func (s *service) moveStock(ctx context.Context, companyID, actorID, id, direction string, req StockMovementRequest) (MaterialResponse, error) {
	if req.Quantity <= 0 {
		return MaterialResponse{}, materialerrors.ErrInvalidQuantity
	}

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return MaterialResponse{}, errors.New("invalid actor id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return MaterialResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	m, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MaterialResponse{}, materialerrors.ErrMaterialNotFound
		}
		return MaterialResponse{}, err
	}

	switch direction {
	case MovementIn:
		m.Stock += req.Quantity
	case MovementOut:
		if m.Stock < req.Quantity {
			s.logger.Warn("stock-out rejected",
				zap.String("material_id", id),
				zap.Int64("stock", m.Stock),
				zap.Int64("requested", req.Quantity),
			)
			return MaterialResponse{}, materialerrors.ErrInsufficientStock
		}
		m.Stock -= req.Quantity
	}

	if err := qtx.Update(ctx, m); err != nil {
		return MaterialResponse{}, err
	}

	if err := qtx.CreateMovement(ctx, &StockMovement{
		ID:         uuid.New(),
		CompanyID:  m.CompanyID,
		MaterialID: m.ID,
		Direction:  direction,
		Quantity:   req.Quantity,
		StockAfter: m.Stock,
		Note:       req.Note,
		CreatedBy:  actorUUID,
	}); err != nil {
		return MaterialResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return MaterialResponse{}, err
	}

	return mapToResponse(*m), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByIDAndCompany(ctx, companyID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return materialerrors.ErrMaterialNotFound
		}
		return err
	}

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return err
	}

	return tx.Commit()
}

func mapToResponse(m Material) MaterialResponse {
	resp := MaterialResponse{
		ID:        m.ID.String(),
		CompanyID: m.CompanyID.String(),
		Name:      m.Name,
		Unit:      m.Unit,
		Stock:     m.Stock,
		UnitPrice: m.UnitPrice,
		CreatedBy: m.CreatedBy.String(),
	}
	if m.ProjectID != nil {
		v := m.ProjectID.String()
		resp.ProjectID = &v
	}
	return resp
}
