package discounts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tiffinworks/pos-backend/pkg/db/models"
)

// CodeRepository defines persistence operations for discount codes.
type CodeRepository interface {
	List(ctx context.Context) ([]models.DiscountCode, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.DiscountCode, error)
	FindByCode(ctx context.Context, code string) (*models.DiscountCode, error)
	Create(ctx context.Context, record *models.DiscountCode) (*models.DiscountCode, error)
	Update(ctx context.Context, record *models.DiscountCode) (*models.DiscountCode, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repository is the GORM-backed CodeRepository.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns all codes, newest first.
func (r *Repository) List(ctx context.Context) ([]models.DiscountCode, error) {
	var codes []models.DiscountCode
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// FindByID loads a single code row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.DiscountCode, error) {
	var record models.DiscountCode
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByCode loads a code row by its normalized code string.
func (r *Repository) FindByCode(ctx context.Context, code string) (*models.DiscountCode, error) {
	var record models.DiscountCode
	if err := r.db.WithContext(ctx).First(&record, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// Create inserts a new code.
func (r *Repository) Create(ctx context.Context, record *models.DiscountCode) (*models.DiscountCode, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// Update saves the code row.
func (r *Repository) Update(ctx context.Context, record *models.DiscountCode) (*models.DiscountCode, error) {
	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// Delete removes the code row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.DiscountCode{}, "id = ?", id).Error
}
