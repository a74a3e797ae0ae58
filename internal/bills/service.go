package bills

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tiffinworks/pos-backend/pkg/db/models"
	pkgerrors "github.com/tiffinworks/pos-backend/pkg/errors"
	"github.com/tiffinworks/pos-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Page is one cursor page of bills.
type Page struct {
	Bills      []models.Bill
	NextCursor string
}

// Service records submitted bills and serves the history and stats reads.
type Service interface {
	Record(ctx context.Context, bill *models.Bill) (*models.Bill, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Bill, error)
	List(ctx context.Context, filter ListFilter, params pagination.Params) (*Page, error)
	DailyStats(ctx context.Context, day time.Time) (*DailyStats, error)
}

type service struct {
	repo BillRepository
	tx   txRunner
}

// NewService builds the bills service.
func NewService(repo BillRepository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("bill repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

// Record writes the header and all line items inside a single transaction, so
// a failed item insert can never leave an orphaned header behind.
func (s *service) Record(ctx context.Context, bill *models.Bill) (*models.Bill, error) {
	if bill == nil || len(bill.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bill must contain at least one item")
	}
	if bill.BillerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "biller id is required")
	}
	if bill.Total.IsNegative() || bill.Subtotal.IsNegative() || bill.Discount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bill amounts must be non-negative")
	}

	items := bill.Items
	bill.Items = nil
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		scoped := s.repo.WithTx(tx)
		header, err := scoped.CreateHeader(ctx, bill)
		if err != nil {
			return err
		}
		for i := range items {
			items[i].BillID = header.ID
		}
		return scoped.CreateItems(ctx, items)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to record bill")
	}
	bill.Items = items
	return bill, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Bill, error) {
	bill, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "bill not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load bill")
	}
	return bill, nil
}

// List pages through bill history newest first.
func (s *service) List(ctx context.Context, filter ListFilter, params pagination.Params) (*Page, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(params.Limit)

	rows, err := s.repo.List(ctx, filter, pagination.LimitWithBuffer(params.Limit), cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to list bills")
	}

	page := &Page{Bills: rows}
	if len(rows) > limit {
		page.Bills = rows[:limit]
		last := page.Bills[limit-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return page, nil
}

func (s *service) DailyStats(ctx context.Context, day time.Time) (*DailyStats, error) {
	stats, err := s.repo.DailyStats(ctx, day)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to aggregate daily stats")
	}
	return stats, nil
}
