package menu

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tiffinworks/pos-backend/pkg/db"
	"github.com/tiffinworks/pos-backend/pkg/db/models"
	pkgerrors "github.com/tiffinworks/pos-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CategoryInput carries the writable category fields.
type CategoryInput struct {
	Name      string
	SortOrder int
}

// ItemInput carries the writable menu item fields.
type ItemInput struct {
	CategoryID uuid.UUID
	Name       string
	Price      decimal.Decimal
	Taxable    *bool
	Available  *bool
	ImageURL   *string
}

// Service exposes menu management for the POS admin surface and the biller
// item grid.
type Service interface {
	ListCategories(ctx context.Context) ([]models.MenuCategory, error)
	CreateCategory(ctx context.Context, input CategoryInput) (*models.MenuCategory, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryInput) (*models.MenuCategory, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	ListItems(ctx context.Context, filter ItemFilter) ([]models.MenuItem, error)
	GetItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	CreateItem(ctx context.Context, input ItemInput) (*models.MenuItem, error)
	UpdateItem(ctx context.Context, id uuid.UUID, input ItemInput) (*models.MenuItem, error)
	SetItemAvailability(ctx context.Context, id uuid.UUID, available bool) (*models.MenuItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo MenuRepository
	tx   txRunner
}

// NewService builds the menu service.
func NewService(repo MenuRepository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("menu repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) ListCategories(ctx context.Context) ([]models.MenuCategory, error) {
	return s.repo.ListCategories(ctx)
}

func (s *service) CreateCategory(ctx context.Context, input CategoryInput) (*models.MenuCategory, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}
	category, err := s.repo.CreateCategory(ctx, &models.MenuCategory{
		Name:      name,
		SortOrder: input.SortOrder,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to create category")
	}
	return category, nil
}

func (s *service) UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryInput) (*models.MenuCategory, error) {
	category, err := s.findCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}
	category.Name = name
	category.SortOrder = input.SortOrder
	updated, err := s.repo.UpdateCategory(ctx, category)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to update category")
	}
	return updated, nil
}

// DeleteCategory removes the category and its items in one transaction so the
// item grid never shows orphaned entries.
func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findCategory(ctx, id); err != nil {
		return err
	}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		scoped := s.repo.WithTx(tx)
		if err := scoped.DeleteItemsInCategory(ctx, id); err != nil {
			return err
		}
		return scoped.DeleteCategory(ctx, id)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to delete category")
	}
	return nil
}

func (s *service) ListItems(ctx context.Context, filter ItemFilter) ([]models.MenuItem, error) {
	return s.repo.ListItems(ctx, filter)
}

func (s *service) GetItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	item, err := s.repo.FindItem(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load menu item")
	}
	return item, nil
}

func (s *service) CreateItem(ctx context.Context, input ItemInput) (*models.MenuItem, error) {
	if err := s.validateItemInput(ctx, input); err != nil {
		return nil, err
	}
	item := &models.MenuItem{
		CategoryID: input.CategoryID,
		Name:       strings.TrimSpace(input.Name),
		Price:      input.Price,
		Taxable:    true,
		Available:  true,
		ImageURL:   input.ImageURL,
	}
	if input.Taxable != nil {
		item.Taxable = *input.Taxable
	}
	if input.Available != nil {
		item.Available = *input.Available
	}
	created, err := s.repo.CreateItem(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to create menu item")
	}
	return created, nil
}

func (s *service) UpdateItem(ctx context.Context, id uuid.UUID, input ItemInput) (*models.MenuItem, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateItemInput(ctx, input); err != nil {
		return nil, err
	}
	item.CategoryID = input.CategoryID
	item.Name = strings.TrimSpace(input.Name)
	item.Price = input.Price
	if input.Taxable != nil {
		item.Taxable = *input.Taxable
	}
	if input.Available != nil {
		item.Available = *input.Available
	}
	item.ImageURL = input.ImageURL
	updated, err := s.repo.UpdateItem(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to update menu item")
	}
	return updated, nil
}

// SetItemAvailability toggles the 86-board flag without touching other fields.
func (s *service) SetItemAvailability(ctx context.Context, id uuid.UUID, available bool) (*models.MenuItem, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Available = available
	updated, err := s.repo.UpdateItem(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to update menu item")
	}
	return updated, nil
}

func (s *service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetItem(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to delete menu item")
	}
	return nil
}

func (s *service) validateItemInput(ctx context.Context, input ItemInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}
	if input.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "item price must be non-negative")
	}
	if input.CategoryID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "category id is required")
	}
	if _, err := s.findCategory(ctx, input.CategoryID); err != nil {
		return err
	}
	return nil
}

func (s *service) findCategory(ctx context.Context, id uuid.UUID) (*models.MenuCategory, error) {
	category, err := s.repo.FindCategory(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load category")
	}
	return category, nil
}
