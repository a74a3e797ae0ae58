package discounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tiffinworks/pos-backend/internal/billdraft"
	"github.com/tiffinworks/pos-backend/pkg/db"
	"github.com/tiffinworks/pos-backend/pkg/db/models"
	pkgerrors "github.com/tiffinworks/pos-backend/pkg/errors"
)

// CodeInput carries the writable discount code fields.
type CodeInput struct {
	Code            string
	DiscountPercent int
	Description     string
	Active          *bool
}

// Service manages the discount code catalog and resolves codes for the draft
// session.
type Service interface {
	List(ctx context.Context) ([]models.DiscountCode, error)
	Lookup(ctx context.Context, code string) (*models.DiscountCode, error)
	Create(ctx context.Context, input CodeInput) (*models.DiscountCode, error)
	Update(ctx context.Context, id uuid.UUID, input CodeInput) (*models.DiscountCode, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.DiscountCode, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo CodeRepository
}

// NewService builds the discount code service.
func NewService(repo CodeRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("discount code repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.DiscountCode, error) {
	return s.repo.List(ctx)
}

// Lookup resolves a user-entered code case-insensitively. Inactive codes are
// returned as-is; the caller decides whether inactive is an error.
func (s *service) Lookup(ctx context.Context, code string) (*models.DiscountCode, error) {
	normalized := billdraft.NormalizeCode(code)
	if normalized == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount code is required")
	}
	record, err := s.repo.FindByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "discount code not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to look up discount code")
	}
	return record, nil
}

func (s *service) Create(ctx context.Context, input CodeInput) (*models.DiscountCode, error) {
	normalized, err := validateCodeInput(input)
	if err != nil {
		return nil, err
	}
	record := &models.DiscountCode{
		Code:            normalized,
		DiscountPercent: input.DiscountPercent,
		Description:     strings.TrimSpace(input.Description),
		Active:          true,
	}
	if input.Active != nil {
		record.Active = *input.Active
	}
	created, err := s.repo.Create(ctx, record)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "discount code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to create discount code")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input CodeInput) (*models.DiscountCode, error) {
	record, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	normalized, err := validateCodeInput(input)
	if err != nil {
		return nil, err
	}
	record.Code = normalized
	record.DiscountPercent = input.DiscountPercent
	record.Description = strings.TrimSpace(input.Description)
	if input.Active != nil {
		record.Active = *input.Active
	}
	updated, err := s.repo.Update(ctx, record)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "discount code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to update discount code")
	}
	return updated, nil
}

// SetActive flips the gate without editing the rest of the code.
func (s *service) SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.DiscountCode, error) {
	record, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	record.Active = active
	updated, err := s.repo.Update(ctx, record)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to update discount code")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to delete discount code")
	}
	return nil
}

func (s *service) findByID(ctx context.Context, id uuid.UUID) (*models.DiscountCode, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "discount code not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load discount code")
	}
	return record, nil
}

func validateCodeInput(input CodeInput) (string, error) {
	normalized := billdraft.NormalizeCode(input.Code)
	if normalized == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "discount code is required")
	}
	if input.DiscountPercent < 1 || input.DiscountPercent > 100 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "discount percent must be between 1 and 100")
	}
	return normalized, nil
}
