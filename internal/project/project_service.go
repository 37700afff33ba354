package project

import (
	"context"
	"database/sql"
	"errors"
	"time"

	projecterrors "go-mandor/internal/project/errors"
	"go-mandor/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=project_service.go -destination=mock/project_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateProjectRequest) (ProjectResponse, error)
	GetAll(ctx context.Context, companyID string) ([]ProjectResponse, error)
	GetByID(ctx context.Context, companyID, id string) (ProjectResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateProjectRequest) (ProjectResponse, error)
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
		logger: zap.L().Named("project.service"),
	}
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateProjectRequest) (ProjectResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if req.Budget <= 0 {
		return ProjectResponse{}, projecterrors.ErrInvalidBudget
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return ProjectResponse{}, projecterrors.ErrInvalidDateRange
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return ProjectResponse{}, projecterrors.ErrInvalidDateRange
	}
	if start != nil && end != nil && end.Before(*start) {
		return ProjectResponse{}, projecterrors.ErrInvalidDateRange
	}

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return ProjectResponse{}, errors.New("invalid company id")
	}
	createdBy, err := uuid.Parse(actorID)
	if err != nil {
		return ProjectResponse{}, errors.New("invalid actor id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ProjectResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p := &Project{
		ID:        uuid.New(),
		CompanyID: companyUUID,
		Name:      req.Name,
		Client:    req.Client,
		Location:  req.Location,
		Budget:    req.Budget,
		Status:    StatusPlanning,
		StartDate: start,
		EndDate:   end,
		CreatedBy: createdBy,
	}

	if err := qtx.Create(ctx, p); err != nil {
		s.logger.Error("create project persist failed", zap.Error(err))
		return ProjectResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ProjectResponse{}, err
	}

	s.logger.Info("project created",
		zap.String("request_id", rid),
		zap.String("project_id", p.ID.String()),
		zap.Int64("budget", p.Budget),
	)

	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]ProjectResponse, error) {
	projects, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		resp[i] = mapToResponse(p)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (ProjectResponse, error) {
	p, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProjectResponse{}, projecterrors.ErrProjectNotFound
		}
		return ProjectResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateProjectRequest) (ProjectResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ProjectResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProjectResponse{}, projecterrors.ErrProjectNotFound
		}
		return ProjectResponse{}, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Client != nil {
		p.Client = req.Client
	}
	if req.Location != nil {
		p.Location = req.Location
	}
	if req.Budget != nil {
		if *req.Budget <= 0 {
			return ProjectResponse{}, projecterrors.ErrInvalidBudget
		}
		p.Budget = *req.Budget
	}
	if req.Status != nil {
		if !ValidStatus(*req.Status) {
			return ProjectResponse{}, projecterrors.ErrInvalidStatus
		}
		p.Status = *req.Status
	}
	if req.StartDate != nil {
		start, err := parseDate(req.StartDate)
		if err != nil {
			return ProjectResponse{}, projecterrors.ErrInvalidDateRange
		}
		p.StartDate = start
	}
	if req.EndDate != nil {
		end, err := parseDate(req.EndDate)
		if err != nil {
			return ProjectResponse{}, projecterrors.ErrInvalidDateRange
		}
		p.EndDate = end
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return ProjectResponse{}, projecterrors.ErrInvalidDateRange
	}

	if err := qtx.Update(ctx, p); err != nil {
		return ProjectResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ProjectResponse{}, err
	}

	return mapToResponse(*p), nil
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
			return projecterrors.ErrProjectNotFound
		}
		return err
	}

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return err
	}

	return tx.Commit()
}

func mapToResponse(p Project) ProjectResponse {
	resp := ProjectResponse{
		ID:        p.ID.String(),
		CompanyID: p.CompanyID.String(),
		Name:      p.Name,
		Client:    p.Client,
		Location:  p.Location,
		Budget:    p.Budget,
		Status:    p.Status,
		CreatedBy: p.CreatedBy.String(),
	}
	if p.StartDate != nil {
		v := p.StartDate.Format("2006-01-02")
		resp.StartDate = &v
	}
	if p.EndDate != nil {
		v := p.EndDate.Format("2006-01-02")
		resp.EndDate = &v
	}
	return resp
}
