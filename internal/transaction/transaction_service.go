package transaction

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-mandor/internal/shared/contextutil"
	transactionerrors "go-mandor/internal/transaction/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProjectChecker is satisfied by the project repository; declared here so
// the cash ledger does not depend on the project package.
type ProjectChecker interface {
	ExistsByIDAndCompany(ctx context.Context, companyID, id string) (bool, error)
}

//go:generate mockgen -source=transaction_service.go -destination=mock/transaction_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateTransactionRequest) (TransactionResponse, error)
	GetAll(ctx context.Context, companyID string, filter TransactionQueryFilter) ([]TransactionResponse, error)
	GetByID(ctx context.Context, companyID, id string) (TransactionResponse, error)
	UpdateStatus(ctx context.Context, companyID, id string, req UpdateTransactionStatusRequest) (TransactionResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	projects ProjectChecker
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, projects ProjectChecker) Service {
	return &service{
		db:       db,
		repo:     repo,
		projects: projects,
		logger:   zap.L().Named("transaction.service"),
	}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateTransactionRequest) (TransactionResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if !ValidType(req.Type) {
		return TransactionResponse{}, transactionerrors.ErrInvalidType
	}
	if req.Amount <= 0 {
		return TransactionResponse{}, transactionerrors.ErrInvalidAmount
	}
	status := req.Status
	if status == "" {
		status = StatusCompleted
	}
	if !ValidStatus(status) {
		return TransactionResponse{}, transactionerrors.ErrInvalidStatus
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return TransactionResponse{}, transactionerrors.ErrInvalidDate
	}

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return TransactionResponse{}, errors.New("invalid company id")
	}
	createdBy, err := uuid.Parse(actorID)
	if err != nil {
		return TransactionResponse{}, errors.New("invalid actor id")
	}

	var projectID *uuid.UUID
	if req.ProjectID != nil {
		exists, err := s.projects.ExistsByIDAndCompany(ctx, companyID, *req.ProjectID)
		if err != nil {
			return TransactionResponse{}, err
		}
		if !exists {
			return TransactionResponse{}, transactionerrors.ErrProjectNotFound
		}
		parsed := uuid.MustParse(*req.ProjectID)
		projectID = &parsed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create transaction begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return TransactionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t := &Transaction{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		Type:        req.Type,
		Category:    req.Category,
		Amount:      req.Amount,
		Status:      status,
		Date:        date,
		ProjectID:   projectID,
		Description: req.Description,
		CreatedBy:   createdBy,
	}

	if err := qtx.Create(ctx, t); err != nil {
		s.logger.Error("create transaction persist failed", zap.Error(err))
		return TransactionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return TransactionResponse{}, err
	}

	s.logger.Info("transaction recorded",
		zap.String("request_id", rid),
		zap.String("transaction_id", t.ID.String()),
		zap.String("type", t.Type),
		zap.Int64("amount", t.Amount),
	)

	return mapToResponse(*t), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, filter TransactionQueryFilter) ([]TransactionResponse, error) {
	transactions, err := s.repo.FindAllByCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		resp[i] = mapToResponse(t)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (TransactionResponse, error) {
	t, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TransactionResponse{}, transactionerrors.ErrTransactionNotFound
		}
		return TransactionResponse{}, err
	}
	return mapToResponse(*t), nil
}

func (s *service) UpdateStatus(ctx context.Context, companyID, id string, req UpdateTransactionStatusRequest) (TransactionResponse, error) {
	if !ValidStatus(req.Status) {
		return TransactionResponse{}, transactionerrors.ErrInvalidStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TransactionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TransactionResponse{}, transactionerrors.ErrTransactionNotFound
		}
		return TransactionResponse{}, err
	}

	t.Status = req.Status
	if err := qtx.Update(ctx, t); err != nil {
		return TransactionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return TransactionResponse{}, err
	}

	return mapToResponse(*t), nil
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
			return transactionerrors.ErrTransactionNotFound
		}
		return err
	}

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return err
	}

	return tx.Commit()
}

func mapToResponse(t Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:          t.ID.String(),
		CompanyID:   t.CompanyID.String(),
		Type:        t.Type,
		Category:    t.Category,
		Amount:      t.Amount,
		Status:      t.Status,
		Date:        t.Date.Format("2006-01-02"),
		Description: t.Description,
		CreatedBy:   t.CreatedBy.String(),
	}
	if t.ProjectID != nil {
		v := t.ProjectID.String()
		resp.ProjectID = &v
	}
	return resp
}
