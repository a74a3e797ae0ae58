package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tiffinworks/pos-backend/api/middleware"
	"github.com/tiffinworks/pos-backend/internal/billdraft"
	"github.com/tiffinworks/pos-backend/internal/drafts"
	"github.com/tiffinworks/pos-backend/pkg/db/models"
	"github.com/tiffinworks/pos-backend/pkg/enums"
	pkgerrors "github.com/tiffinworks/pos-backend/pkg/errors"
)

type stubDraftsService struct {
	draft     *billdraft.Draft
	bill      *models.Bill
	err       error
	lastOp    string
	lastItem  uuid.UUID
	lastQty   int
	lastCode  string
	lastAmt   decimal.Decimal
	lastInput drafts.SubmitInput
}

func (s *stubDraftsService) Get(ctx context.Context, billerID uuid.UUID) (*billdraft.Draft, error) {
	s.lastOp = "get"
	return s.draft, s.err
}

func (s *stubDraftsService) AddItem(ctx context.Context, billerID, itemID uuid.UUID) (*billdraft.Draft, error) {
	s.lastOp, s.lastItem = "add_item", itemID
	return s.draft, s.err
}

func (s *stubDraftsService) RemoveItem(ctx context.Context, billerID, itemID uuid.UUID) (*billdraft.Draft, error) {
	s.lastOp, s.lastItem = "remove_item", itemID
	return s.draft, s.err
}

func (s *stubDraftsService) UpdateQuantity(ctx context.Context, billerID, itemID uuid.UUID, quantity int) (*billdraft.Draft, error) {
	s.lastOp, s.lastItem, s.lastQty = "update_quantity", itemID, quantity
	return s.draft, s.err
}

func (s *stubDraftsService) ApplyDiscount(ctx context.Context, billerID uuid.UUID, amount decimal.Decimal) (*billdraft.Draft, error) {
	s.lastOp, s.lastAmt = "apply_discount", amount
	return s.draft, s.err
}

func (s *stubDraftsService) ApplyDiscountCode(ctx context.Context, billerID uuid.UUID, code string) (*billdraft.Draft, error) {
	s.lastOp, s.lastCode = "apply_code", code
	return s.draft, s.err
}

func (s *stubDraftsService) RemoveDiscountCode(ctx context.Context, billerID uuid.UUID) (*billdraft.Draft, error) {
	s.lastOp = "remove_code"
	return s.draft, s.err
}

func (s *stubDraftsService) Clear(ctx context.Context, billerID uuid.UUID) (*billdraft.Draft, error) {
	s.lastOp = "clear"
	return s.draft, s.err
}

func (s *stubDraftsService) Submit(ctx context.Context, billerID uuid.UUID, input drafts.SubmitInput) (*models.Bill, error) {
	s.lastOp, s.lastInput = "submit", input
	return s.bill, s.err
}

func draftRouter(svc drafts.Service) http.Handler {
	r := chi.NewRouter()
	r.Get("/draft", Draft(svc, nil))
	r.Post("/draft/items/{itemId}", DraftAddItem(svc, nil))
	r.Delete("/draft/items/{itemId}", DraftRemoveItem(svc, nil))
	r.Put("/draft/items/{itemId}/quantity", DraftSetQuantity(svc, nil))
	r.Put("/draft/discount", DraftApplyDiscount(svc, nil))
	r.Post("/draft/discount-code", DraftApplyCode(svc, nil))
	r.Post("/draft/submit", DraftSubmit(svc, nil))
	return r
}

func authedRequest(method, target string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(middleware.WithBiller(req.Context(), uuid.New(), enums.BillerRoleStaff.String()))
}

func TestDraftAddItemRoutesToService(t *testing.T) {
	itemID := uuid.New()
	svc := &stubDraftsService{draft: billdraft.New()}
	router := draftRouter(svc)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPost, "/draft/items/"+itemID.String(), nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastOp != "add_item" || svc.lastItem != itemID {
		t.Fatalf("expected add_item(%s), got %s(%s)", itemID, svc.lastOp, svc.lastItem)
	}
}

func TestDraftAddItemRejectsBadID(t *testing.T) {
	svc := &stubDraftsService{draft: billdraft.New()}
	router := draftRouter(svc)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPost, "/draft/items/not-a-uuid", nil))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.lastOp != "" {
		t.Fatalf("service should not have been called, got %s", svc.lastOp)
	}
}

func TestDraftSetQuantityRequiresBody(t *testing.T) {
	itemID := uuid.New()
	svc := &stubDraftsService{draft: billdraft.New()}
	router := draftRouter(svc)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPut, "/draft/items/"+itemID.String()+"/quantity", []byte(`{}`)))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPut, "/draft/items/"+itemID.String()+"/quantity", []byte(`{"quantity":3}`)))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastQty != 3 {
		t.Fatalf("expected quantity 3 got %d", svc.lastQty)
	}
}

func TestDraftApplyDiscountParsesAmount(t *testing.T) {
	svc := &stubDraftsService{draft: billdraft.New()}
	router := draftRouter(svc)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPut, "/draft/discount", []byte(`{"amount":"12.50"}`)))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if !svc.lastAmt.Equal(decimal.RequireFromString("12.50")) {
		t.Fatalf("expected amount 12.50 got %s", svc.lastAmt)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPut, "/draft/discount", []byte(`{"amount":"twelve"}`)))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad amount got %d", resp.Code)
	}
}

func TestDraftSubmitReturnsCreatedBill(t *testing.T) {
	bill := &models.Bill{
		ID:       uuid.New(),
		BillerID: uuid.New(),
		Subtotal: decimal.RequireFromString("10.00"),
		Total:    decimal.RequireFromString("8.00"),
		Status:   enums.BillStatusCompleted,
	}
	svc := &stubDraftsService{bill: bill}
	router := draftRouter(svc)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPost, "/draft/submit", []byte(`{"whatsapp_number":"+919876543210"}`)))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastInput.WhatsappNumber == nil || *svc.lastInput.WhatsappNumber != "+919876543210" {
		t.Fatalf("expected whatsapp number forwarded, got %+v", svc.lastInput)
	}

	var envelope struct {
		Data struct {
			ID     uuid.UUID        `json:"id"`
			Status enums.BillStatus `json:"status"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != bill.ID {
		t.Fatalf("expected bill id %s got %s", bill.ID, envelope.Data.ID)
	}
	if envelope.Data.Status != enums.BillStatusCompleted {
		t.Fatalf("expected completed status got %s", envelope.Data.Status)
	}
}

func TestDraftSubmitAcceptsEmptyBody(t *testing.T) {
	svc := &stubDraftsService{bill: &models.Bill{ID: uuid.New(), Status: enums.BillStatusCompleted}}
	router := draftRouter(svc)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPost, "/draft/submit", nil))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastInput.WhatsappNumber != nil {
		t.Fatalf("expected no whatsapp number, got %v", *svc.lastInput.WhatsappNumber)
	}
}

func TestDraftSubmitMapsEmptyDraftConflict(t *testing.T) {
	svc := &stubDraftsService{err: pkgerrors.New(pkgerrors.CodeStateConflict, "draft is empty")}
	router := draftRouter(svc)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPost, "/draft/submit", nil))

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}
