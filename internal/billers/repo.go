package billers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tiffinworks/pos-backend/pkg/db/models"
)

// BillerRepository defines persistence operations for operator accounts.
type BillerRepository interface {
	List(ctx context.Context) ([]models.Biller, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Biller, error)
	FindByUsername(ctx context.Context, username string) (*models.Biller, error)
	Create(ctx context.Context, biller *models.Biller) (*models.Biller, error)
	Update(ctx context.Context, biller *models.Biller) (*models.Biller, error)
}

// Repository is the GORM-backed BillerRepository.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns all operator accounts ordered by username.
func (r *Repository) List(ctx context.Context) ([]models.Biller, error) {
	var billers []models.Biller
	if err := r.db.WithContext(ctx).Order("username ASC").Find(&billers).Error; err != nil {
		return nil, err
	}
	return billers, nil
}

// FindByID loads one operator account.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Biller, error) {
	var biller models.Biller
	if err := r.db.WithContext(ctx).First(&biller, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &biller, nil
}

// FindByUsername loads one operator account by its unique username.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.Biller, error) {
	var biller models.Biller
	if err := r.db.WithContext(ctx).First(&biller, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &biller, nil
}

// Create inserts a new operator account.
func (r *Repository) Create(ctx context.Context, biller *models.Biller) (*models.Biller, error) {
	if biller.ID == uuid.Nil {
		biller.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(biller).Error; err != nil {
		return nil, err
	}
	return biller, nil
}

// Update saves the operator account row.
func (r *Repository) Update(ctx context.Context, biller *models.Biller) (*models.Biller, error) {
	if err := r.db.WithContext(ctx).Save(biller).Error; err != nil {
		return nil, err
	}
	return biller, nil
}
