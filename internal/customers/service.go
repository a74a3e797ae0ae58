package customers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tiffinworks/pos-backend/pkg/db"
	"github.com/tiffinworks/pos-backend/pkg/db/models"
	pkgerrors "github.com/tiffinworks/pos-backend/pkg/errors"
)

// CustomerInput carries the writable customer fields.
type CustomerInput struct {
	Name          string
	Phone         string
	WhatsappOptIn *bool
	Birthday      *time.Time
}

// BirthdayEntry pairs a customer with their next birthday date.
type BirthdayEntry struct {
	Customer models.Customer `json:"customer"`
	Next     time.Time       `json:"next_birthday"`
}

// Service manages the customer book and the birthday greeting list.
type Service interface {
	List(ctx context.Context) ([]models.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	Create(ctx context.Context, input CustomerInput) (*models.Customer, error)
	Update(ctx context.Context, id uuid.UUID, input CustomerInput) (*models.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpcomingBirthdays(ctx context.Context, now time.Time, withinDays int) ([]BirthdayEntry, error)
}

type service struct {
	repo CustomerRepository
}

// NewService builds the customer service.
func NewService(repo CustomerRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.Customer, error) {
	return s.repo.List(ctx)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load customer")
	}
	return customer, nil
}

func (s *service) Create(ctx context.Context, input CustomerInput) (*models.Customer, error) {
	name, phone, err := validateCustomerInput(input)
	if err != nil {
		return nil, err
	}
	customer := &models.Customer{
		Name:     name,
		Phone:    phone,
		Birthday: input.Birthday,
	}
	if input.WhatsappOptIn != nil {
		customer.WhatsappOptIn = *input.WhatsappOptIn
	}
	created, err := s.repo.Create(ctx, customer)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a customer with this phone number already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to create customer")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input CustomerInput) (*models.Customer, error) {
	customer, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	name, phone, err := validateCustomerInput(input)
	if err != nil {
		return nil, err
	}
	customer.Name = name
	customer.Phone = phone
	customer.Birthday = input.Birthday
	if input.WhatsappOptIn != nil {
		customer.WhatsappOptIn = *input.WhatsappOptIn
	}
	updated, err := s.repo.Update(ctx, customer)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a customer with this phone number already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to update customer")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to delete customer")
	}
	return nil
}

// UpcomingBirthdays returns customers whose birthday falls within the window,
// ordered soonest first. Feb 29 birthdays roll to Mar 1 in non-leap years.
func (s *service) UpcomingBirthdays(ctx context.Context, now time.Time, withinDays int) ([]BirthdayEntry, error) {
	if withinDays < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "window must be non-negative")
	}
	customers, err := s.repo.ListWithBirthday(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load customers")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	cutoff := today.AddDate(0, 0, withinDays)

	var entries []BirthdayEntry
	for _, customer := range customers {
		if customer.Birthday == nil {
			continue
		}
		next := nextBirthday(*customer.Birthday, today)
		if next.After(cutoff) {
			continue
		}
		entries = append(entries, BirthdayEntry{Customer: customer, Next: next})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Next.Before(entries[j].Next)
	})
	return entries, nil
}

func nextBirthday(birthday, today time.Time) time.Time {
	next := time.Date(today.Year(), birthday.Month(), birthday.Day(), 0, 0, 0, 0, today.Location())
	if next.Before(today) {
		next = time.Date(today.Year()+1, birthday.Month(), birthday.Day(), 0, 0, 0, 0, today.Location())
	}
	return next
}

func validateCustomerInput(input CustomerInput) (string, string, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	phone := strings.TrimSpace(input.Phone)
	if phone == "" {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "customer phone is required")
	}
	return name, phone, nil
}
