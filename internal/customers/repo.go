package customers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tiffinworks/pos-backend/pkg/db/models"
)

// CustomerRepository defines persistence operations for the customer book.
type CustomerRepository interface {
	List(ctx context.Context) ([]models.Customer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	FindByPhone(ctx context.Context, phone string) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListWithBirthday(ctx context.Context) ([]models.Customer, error)
}

// Repository is the GORM-backed CustomerRepository.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns all customers ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// FindByID loads one customer.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindByPhone loads one customer by their unique phone number.
func (r *Repository) FindByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, "phone = ?", phone).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// Create inserts a new customer.
func (r *Repository) Create(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

// Update saves the customer row.
func (r *Repository) Update(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if err := r.db.WithContext(ctx).Save(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

// Delete removes the customer row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Customer{}, "id = ?", id).Error
}

// ListWithBirthday returns customers that have a birthday on file. The
// calendar-window math lives in the service where it can be tested without
// dialect-specific date functions.
func (r *Repository) ListWithBirthday(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.WithContext(ctx).
		Where("birthday IS NOT NULL").
		Order("name ASC").
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}
