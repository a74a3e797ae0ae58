package drafts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tiffinworks/pos-backend/internal/billdraft"
	"github.com/tiffinworks/pos-backend/pkg/db/models"
	"github.com/tiffinworks/pos-backend/pkg/enums"
	pkgerrors "github.com/tiffinworks/pos-backend/pkg/errors"
	"github.com/tiffinworks/pos-backend/pkg/logger"
	"github.com/tiffinworks/pos-backend/pkg/metrics"
)

type menuLoader interface {
	GetItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
}

type codeLoader interface {
	Lookup(ctx context.Context, code string) (*models.DiscountCode, error)
}

type billRecorder interface {
	Record(ctx context.Context, bill *models.Bill) (*models.Bill, error)
}

// SubmitInput carries the submission-time fields that live outside the draft.
type SubmitInput struct {
	WhatsappNumber *string
}

// Service owns the draft-bill session for each biller: rehydrate from the
// snapshot store, mutate, persist, and finally turn the draft into a bill.
type Service interface {
	Get(ctx context.Context, billerID uuid.UUID) (*billdraft.Draft, error)
	AddItem(ctx context.Context, billerID, itemID uuid.UUID) (*billdraft.Draft, error)
	RemoveItem(ctx context.Context, billerID, itemID uuid.UUID) (*billdraft.Draft, error)
	UpdateQuantity(ctx context.Context, billerID, itemID uuid.UUID, quantity int) (*billdraft.Draft, error)
	ApplyDiscount(ctx context.Context, billerID uuid.UUID, amount decimal.Decimal) (*billdraft.Draft, error)
	ApplyDiscountCode(ctx context.Context, billerID uuid.UUID, code string) (*billdraft.Draft, error)
	RemoveDiscountCode(ctx context.Context, billerID uuid.UUID) (*billdraft.Draft, error)
	Clear(ctx context.Context, billerID uuid.UUID) (*billdraft.Draft, error)
	Submit(ctx context.Context, billerID uuid.UUID, input SubmitInput) (*models.Bill, error)
}

type service struct {
	store   SnapshotStore
	menu    menuLoader
	codes   codeLoader
	bills   billRecorder
	log     *logger.Logger
	metrics *metrics.POSMetrics
	ttl     time.Duration
}

// NewService builds the draft session service.
func NewService(store SnapshotStore, menu menuLoader, codes codeLoader, bills billRecorder, log *logger.Logger, m *metrics.POSMetrics, ttl time.Duration) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	if menu == nil {
		return nil, fmt.Errorf("menu loader required")
	}
	if codes == nil {
		return nil, fmt.Errorf("discount code loader required")
	}
	if bills == nil {
		return nil, fmt.Errorf("bill recorder required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		store:   store,
		menu:    menu,
		codes:   codes,
		bills:   bills,
		log:     log,
		metrics: m,
		ttl:     ttl,
	}, nil
}

// Get returns the biller's current draft, starting a fresh one when no
// snapshot exists.
func (s *service) Get(ctx context.Context, billerID uuid.UUID) (*billdraft.Draft, error) {
	if billerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "biller id is required")
	}
	return s.load(ctx, billerID)
}

// AddItem looks up the menu item and merges it into the draft.
func (s *service) AddItem(ctx context.Context, billerID, itemID uuid.UUID) (*billdraft.Draft, error) {
	item, err := s.loadMenuItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, billerID, "add_item", func(d *billdraft.Draft) error {
		d.AddItem(billdraft.MenuItemRef{
			ID:      item.ID,
			Name:    item.Name,
			Price:   item.Price,
			Taxable: item.Taxable,
		})
		return nil
	})
}

// RemoveItem drops the line for the menu item; removing an absent line is a
// no-op that still persists.
func (s *service) RemoveItem(ctx context.Context, billerID, itemID uuid.UUID) (*billdraft.Draft, error) {
	return s.mutate(ctx, billerID, "remove_item", func(d *billdraft.Draft) error {
		d.RemoveItem(itemID)
		return nil
	})
}

// UpdateQuantity sets the exact quantity for a line; zero or less removes it.
func (s *service) UpdateQuantity(ctx context.Context, billerID, itemID uuid.UUID, quantity int) (*billdraft.Draft, error) {
	return s.mutate(ctx, billerID, "update_quantity", func(d *billdraft.Draft) error {
		d.UpdateQuantity(itemID, quantity)
		return nil
	})
}

// ApplyDiscount sets a manual absolute discount, clearing any applied code.
func (s *service) ApplyDiscount(ctx context.Context, billerID uuid.UUID, amount decimal.Decimal) (*billdraft.Draft, error) {
	if amount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount amount must be non-negative")
	}
	return s.mutate(ctx, billerID, "apply_discount", func(d *billdraft.Draft) error {
		d.ApplyDiscount(amount)
		return nil
	})
}

// ApplyDiscountCode validates the code against the catalog and, when active,
// applies its percentage to the draft. Unknown or inactive codes leave the
// draft untouched.
func (s *service) ApplyDiscountCode(ctx context.Context, billerID uuid.UUID, code string) (*billdraft.Draft, error) {
	normalized := billdraft.NormalizeCode(code)
	if normalized == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount code is required")
	}
	record, err := s.codes.Lookup(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || isNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "discount code not found")
		}
		return nil, err
	}
	if !record.Active {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount code is inactive")
	}
	return s.mutate(ctx, billerID, "apply_code", func(d *billdraft.Draft) error {
		d.ApplyCodeDiscount(record.Code, record.DiscountPercent)
		return nil
	})
}

// RemoveDiscountCode drops the applied code and zeroes the discount.
func (s *service) RemoveDiscountCode(ctx context.Context, billerID uuid.UUID) (*billdraft.Draft, error) {
	return s.mutate(ctx, billerID, "remove_code", func(d *billdraft.Draft) error {
		d.ApplyDiscount(decimal.Zero)
		return nil
	})
}

// Clear discards the draft and removes its durable snapshot; the next load
// starts fresh.
func (s *service) Clear(ctx context.Context, billerID uuid.UUID) (*billdraft.Draft, error) {
	if billerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "biller id is required")
	}
	if err := s.store.Remove(ctx, billerID); err != nil {
		return nil, err
	}
	s.metrics.IncDraftMutation("clear")
	return billdraft.New(), nil
}

// Submit turns the draft into a persisted bill. The snapshot is removed only
// after the bill commits; any failure leaves the draft intact for retry.
func (s *service) Submit(ctx context.Context, billerID uuid.UUID, input SubmitInput) (*models.Bill, error) {
	draft, err := s.Get(ctx, billerID)
	if err != nil {
		return nil, err
	}
	if draft.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cannot submit an empty bill")
	}

	bill := buildBill(billerID, draft, input)

	started := time.Now()
	recorded, err := s.bills.Record(ctx, bill)
	if err != nil {
		s.metrics.IncSubmitFailure()
		return nil, err
	}
	s.metrics.IncBillSubmitted()
	s.metrics.ObserveSubmitDuration(time.Since(started))

	if err := s.store.Remove(ctx, billerID); err != nil {
		// the bill is committed; a stale snapshot only risks a duplicate
		// draft on next load, so log and move on
		s.log.Error(ctx, "failed to clear draft snapshot after submission", err)
	}
	return recorded, nil
}

func (s *service) loadMenuItem(ctx context.Context, itemID uuid.UUID) (*models.MenuItem, error) {
	if itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "menu item id is required")
	}
	item, err := s.menu.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || isNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return nil, err
	}
	if !item.Available {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "menu item is not available")
	}
	return item, nil
}

func (s *service) load(ctx context.Context, billerID uuid.UUID) (*billdraft.Draft, error) {
	data, err := s.store.Get(ctx, billerID)
	if err != nil {
		if errors.Is(err, ErrNoSnapshot) {
			return billdraft.New(), nil
		}
		return nil, err
	}
	draft, err := billdraft.Restore(data)
	if err != nil {
		// a corrupt snapshot must not lock the biller out of the till
		s.log.Warn(ctx, "discarding unreadable draft snapshot")
		return billdraft.New(), nil
	}
	return draft, nil
}

func (s *service) mutate(ctx context.Context, billerID uuid.UUID, op string, apply func(*billdraft.Draft) error) (*billdraft.Draft, error) {
	if billerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "biller id is required")
	}
	draft, err := s.load(ctx, billerID)
	if err != nil {
		return nil, err
	}
	if err := apply(draft); err != nil {
		return nil, err
	}
	data, err := draft.Snapshot()
	if err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, billerID, data, s.ttl); err != nil {
		return nil, err
	}
	s.metrics.IncDraftMutation(op)
	return draft, nil
}

func isNotFound(err error) bool {
	coded := pkgerrors.As(err)
	return coded != nil && coded.Code() == pkgerrors.CodeNotFound
}

func buildBill(billerID uuid.UUID, draft *billdraft.Draft, input SubmitInput) *models.Bill {
	items := make([]models.BillItem, 0, len(draft.Items))
	for _, li := range draft.Items {
		items = append(items, models.BillItem{
			MenuItemID: li.ItemID,
			ItemName:   li.Name,
			Price:      li.Price,
			Quantity:   li.Quantity,
			Taxable:    li.Taxable,
		})
	}
	return &models.Bill{
		BillerID:       billerID,
		Subtotal:       draft.Subtotal,
		Tax:            draft.Tax,
		Discount:       draft.Discount,
		Total:          draft.Total,
		DiscountCode:   draft.AppliedCode,
		Status:         enums.BillStatusCompleted,
		WhatsappNumber: input.WhatsappNumber,
		Items:          items,
	}
}
