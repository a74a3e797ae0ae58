package bills

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tiffinworks/pos-backend/pkg/db/models"
	"github.com/tiffinworks/pos-backend/pkg/enums"
	"github.com/tiffinworks/pos-backend/pkg/pagination"
)

// BillRepository defines persistence operations for submitted bills.
type BillRepository interface {
	CreateHeader(ctx context.Context, bill *models.Bill) (*models.Bill, error)
	CreateItems(ctx context.Context, items []models.BillItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Bill, error)
	List(ctx context.Context, filter ListFilter, limit int, cursor *pagination.Cursor) ([]models.Bill, error)
	DailyStats(ctx context.Context, day time.Time) (*DailyStats, error)
	WithTx(tx *gorm.DB) BillRepository
}

// ListFilter narrows bill listings.
type ListFilter struct {
	BillerID *uuid.UUID
	From     *time.Time
	To       *time.Time
}

// DailyStats aggregates one calendar day of submitted bills.
type DailyStats struct {
	Day       time.Time       `json:"day"`
	BillCount int64           `json:"bill_count"`
	Gross     decimal.Decimal `json:"gross_total"`
	Discount  decimal.Decimal `json:"total_discount"`
	ItemCount int64           `json:"item_count"`
}

// Repository is the GORM-backed BillRepository.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) BillRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// CreateHeader inserts the bill header row without its items.
func (r *Repository) CreateHeader(ctx context.Context, bill *models.Bill) (*models.Bill, error) {
	if bill.ID == uuid.Nil {
		bill.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Omit("Items").Create(bill).Error; err != nil {
		return nil, err
	}
	return bill, nil
}

// CreateItems bulk-inserts the line items.
func (r *Repository) CreateItems(ctx context.Context, items []models.BillItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// FindByID loads a bill with its items.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Bill, error) {
	var bill models.Bill
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&bill, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// List returns bills newest first using keyset pagination on
// (created_at, id).
func (r *Repository) List(ctx context.Context, filter ListFilter, limit int, cursor *pagination.Cursor) ([]models.Bill, error) {
	query := r.db.WithContext(ctx).Model(&models.Bill{}).Preload("Items")
	if filter.BillerID != nil {
		query = query.Where("biller_id = ?", *filter.BillerID)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at < ?", *filter.To)
	}
	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}
	var bills []models.Bill
	err := query.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&bills).Error
	if err != nil {
		return nil, err
	}
	return bills, nil
}

// DailyStats aggregates bill count, gross, discounts, and items sold for the
// calendar day containing the provided time (server timezone).
func (r *Repository) DailyStats(ctx context.Context, day time.Time) (*DailyStats, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var header struct {
		BillCount int64
		Gross     decimal.Decimal
		Discount  decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.Bill{}).
		Select("COUNT(*) AS bill_count, COALESCE(SUM(total), 0) AS gross, COALESCE(SUM(discount), 0) AS discount").
		Where("created_at >= ? AND created_at < ?", start, end).
		Where("status = ?", enums.BillStatusCompleted).
		Scan(&header).Error
	if err != nil {
		return nil, err
	}

	var itemCount int64
	err = r.db.WithContext(ctx).
		Model(&models.BillItem{}).
		Select("COALESCE(SUM(bill_items.quantity), 0)").
		Joins("JOIN bills ON bills.id = bill_items.bill_id").
		Where("bills.created_at >= ? AND bills.created_at < ?", start, end).
		Where("bills.status = ?", enums.BillStatusCompleted).
		Scan(&itemCount).Error
	if err != nil {
		return nil, err
	}

	return &DailyStats{
		Day:       start,
		BillCount: header.BillCount,
		Gross:     header.Gross,
		Discount:  header.Discount,
		ItemCount: itemCount,
	}, nil
}
