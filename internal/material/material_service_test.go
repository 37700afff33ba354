package material_test

import (
	"context"
	"database/sql"
	"testing"

	"go-mandor/internal/material"
	materialerrors "go-mandor/internal/material/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type memMaterialRepository struct {
	materials map[string]*material.Material
	movements []material.StockMovement
}

func newMemMaterialRepository() *memMaterialRepository {
	return &memMaterialRepository{materials: make(map[string]*material.Material)}
}

func (m *memMaterialRepository) WithTx(tx *sql.Tx) material.Repository { return m }

func (m *memMaterialRepository) Create(ctx context.Context, mat *material.Material) error {
	cp := *mat
	m.materials[mat.ID.String()] = &cp
	return nil
}

func (m *memMaterialRepository) FindAllByCompany(ctx context.Context, companyID string) ([]material.Material, error) {
	out := make([]material.Material, 0, len(m.materials))
	for _, mat := range m.materials {
		out = append(out, *mat)
	}
	return out, nil
}

func (m *memMaterialRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*material.Material, error) {
	mat, ok := m.materials[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *mat
	return &cp, nil
}

func (m *memMaterialRepository) Update(ctx context.Context, mat *material.Material) error {
	cp := *mat
	m.materials[mat.ID.String()] = &cp
	return nil
}

func (m *memMaterialRepository) Delete(ctx context.Context, companyID, id string) error {
	delete(m.materials, id)
	return nil
}

func (m *memMaterialRepository) CreateMovement(ctx context.Context, mv *material.StockMovement) error {
	m.movements = append(m.movements, *mv)
	return nil
}

func (m *memMaterialRepository) FindMovements(ctx context.Context, companyID, materialID string) ([]material.StockMovement, error) {
	return m.movements, nil
}

func setupMaterialServiceTest(t *testing.T) (*sql.DB, sqlmock.Sqlmock, material.Service, *memMaterialRepository) {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := newMemMaterialRepository()
	svc := material.NewService(db, repo)
	return db, sqlMock, svc, repo
}

func TestMaterialService_StockOut_NeverNegative(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	actorID := uuid.New().String()

	db, sqlMock, svc, repo := setupMaterialServiceTest(t)
	defer db.Close()

	mat := &material.Material{
		ID:        uuid.New(),
		CompanyID: companyID,
		Name:      "Semen",
		Unit:      "sak",
		Stock:     5,
		CreatedBy: companyID,
	}
	repo.materials[mat.ID.String()] = mat

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()
	_, err := svc.StockOut(ctx, companyID.String(), actorID, mat.ID.String(), material.StockMovementRequest{Quantity: 6})

	assert.ErrorIs(t, err, materialerrors.ErrInsufficientStock)
	assert.Equal(t, int64(5), repo.materials[mat.ID.String()].Stock, "rejected stock-out must not mutate stock")

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()
	resp, err := svc.StockOut(ctx, companyID.String(), actorID, mat.ID.String(), material.StockMovementRequest{Quantity: 5})

	assert.NoError(t, err)
	assert.Equal(t, int64(0), resp.Stock)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestMaterialService_StockIn_RecordsMovement(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	actorID := uuid.New().String()

	db, sqlMock, svc, repo := setupMaterialServiceTest(t)
	defer db.Close()

	mat := &material.Material{
		ID:        uuid.New(),
		CompanyID: companyID,
		Name:      "Pasir",
		Unit:      "m3",
		Stock:     2,
		CreatedBy: companyID,
	}
	repo.materials[mat.ID.String()] = mat

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()
	resp, err := svc.StockIn(ctx, companyID.String(), actorID, mat.ID.String(), material.StockMovementRequest{Quantity: 3})

	assert.NoError(t, err)
	assert.Equal(t, int64(5), resp.Stock)
	if assert.Len(t, repo.movements, 1) {
		assert.Equal(t, material.MovementIn, repo.movements[0].Direction)
		assert.Equal(t, int64(5), repo.movements[0].StockAfter)
	}
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestMaterialService_StockMovement_RejectsNonPositiveQuantity(t *testing.T) {
	ctx := context.Background()

	db, _, svc, _ := setupMaterialServiceTest(t)
	defer db.Close()

	for _, qty := range []int64{0, -3} {
		_, err := svc.StockIn(ctx, uuid.New().String(), uuid.New().String(), uuid.New().String(), material.StockMovementRequest{Quantity: qty})
		assert.ErrorIs(t, err, materialerrors.ErrInvalidQuantity, "quantity %d", qty)
	}
}
