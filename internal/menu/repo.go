package menu

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tiffinworks/pos-backend/pkg/db/models"
)

// MenuRepository defines persistence operations for categories and items.
type MenuRepository interface {
	ListCategories(ctx context.Context) ([]models.MenuCategory, error)
	FindCategory(ctx context.Context, id uuid.UUID) (*models.MenuCategory, error)
	CreateCategory(ctx context.Context, category *models.MenuCategory) (*models.MenuCategory, error)
	UpdateCategory(ctx context.Context, category *models.MenuCategory) (*models.MenuCategory, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	CountItemsInCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
	DeleteItemsInCategory(ctx context.Context, categoryID uuid.UUID) error

	ListItems(ctx context.Context, filter ItemFilter) ([]models.MenuItem, error)
	FindItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	CreateItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error)
	UpdateItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error

	WithTx(tx *gorm.DB) MenuRepository
}

// ItemFilter narrows item listings.
type ItemFilter struct {
	CategoryID    *uuid.UUID
	AvailableOnly bool
}

// Repository is the GORM-backed MenuRepository.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) MenuRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// ListCategories returns all categories with their items, in display order.
func (r *Repository) ListCategories(ctx context.Context) ([]models.MenuCategory, error) {
	var categories []models.MenuCategory
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		Order("sort_order ASC, name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// FindCategory loads a category without its items.
func (r *Repository) FindCategory(ctx context.Context, id uuid.UUID) (*models.MenuCategory, error) {
	var category models.MenuCategory
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateCategory inserts a new category.
func (r *Repository) CreateCategory(ctx context.Context, category *models.MenuCategory) (*models.MenuCategory, error) {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory saves the category row.
func (r *Repository) UpdateCategory(ctx context.Context, category *models.MenuCategory) (*models.MenuCategory, error) {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes the category row only.
func (r *Repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.MenuCategory{}, "id = ?", id).Error
}

// CountItemsInCategory reports how many items reference the category.
func (r *Repository) CountItemsInCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.MenuItem{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

// DeleteItemsInCategory removes every item in the category.
func (r *Repository) DeleteItemsInCategory(ctx context.Context, categoryID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Delete(&models.MenuItem{}).Error
}

// ListItems returns items matching the filter, named order.
func (r *Repository) ListItems(ctx context.Context, filter ItemFilter) ([]models.MenuItem, error) {
	query := r.db.WithContext(ctx).Model(&models.MenuItem{})
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.AvailableOnly {
		query = query.Where("available = ?", true)
	}
	var items []models.MenuItem
	if err := query.Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindItem loads a single menu item.
func (r *Repository) FindItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem inserts a new menu item.
func (r *Repository) CreateItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem saves the item row.
func (r *Repository) UpdateItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes the item row.
func (r *Repository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.MenuItem{}, "id = ?", id).Error
}
