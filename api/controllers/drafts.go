package controllers

import (
	"net/http"

	"github.com/tiffinworks/pos-backend/api/middleware"
	"github.com/tiffinworks/pos-backend/api/responses"
	"github.com/tiffinworks/pos-backend/api/validators"
	"github.com/tiffinworks/pos-backend/internal/bills"
	"github.com/tiffinworks/pos-backend/internal/drafts"
	"github.com/tiffinworks/pos-backend/pkg/logger"
)

type draftQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type draftDiscountRequest struct {
	Amount string `json:"amount" validate:"required"`
}

type draftCodeRequest struct {
	Code string `json:"code" validate:"required"`
}

type draftSubmitRequest struct {
	WhatsappNumber *string `json:"whatsapp_number" validate:"omitempty,e164"`
}

// Draft returns the biller's current draft, rehydrated from the snapshot.
func Draft(svc drafts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft, err := svc.Get(r.Context(), middleware.BillerIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, draft)
	}
}

// DraftAddItem adds one unit of a menu item to the draft.
func DraftAddItem(svc drafts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := validators.PathUUID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		draft, err := svc.AddItem(r.Context(), middleware.BillerIDFromContext(r.Context()), itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, draft)
	}
}

// DraftRemoveItem drops a line from the draft.
func DraftRemoveItem(svc drafts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := validators.PathUUID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		draft, err := svc.RemoveItem(r.Context(), middleware.BillerIDFromContext(r.Context()), itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, draft)
	}
}

// DraftSetQuantity sets a line's quantity; zero removes the line.
func DraftSetQuantity(svc drafts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := validators.PathUUID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body draftQuantityRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		draft, err := svc.UpdateQuantity(r.Context(), middleware.BillerIDFromContext(r.Context()), itemID, *body.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, draft)
	}
}

// DraftApplyDiscount sets a flat discount amount on the draft.
func DraftApplyDiscount(svc drafts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body draftDiscountRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		amount, err := validators.ParseDecimalField(body.Amount, "amount")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		draft, err := svc.ApplyDiscount(r.Context(), middleware.BillerIDFromContext(r.Context()), amount)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, draft)
	}
}

// DraftApplyCode applies a named discount code to the draft.
func DraftApplyCode(svc drafts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body draftCodeRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		draft, err := svc.ApplyDiscountCode(r.Context(), middleware.BillerIDFromContext(r.Context()), body.Code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, draft)
	}
}

// DraftRemoveCode clears the applied discount code.
func DraftRemoveCode(svc drafts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft, err := svc.RemoveDiscountCode(r.Context(), middleware.BillerIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, draft)
	}
}

// DraftClear abandons the draft and starts an empty one.
func DraftClear(svc drafts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft, err := svc.Clear(r.Context(), middleware.BillerIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, draft)
	}
}

// DraftSubmit finalizes the draft into a persisted bill.
func DraftSubmit(svc drafts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body draftSubmitRequest
		if err := validators.DecodeOptionalJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		bill, err := svc.Submit(r.Context(), middleware.BillerIDFromContext(r.Context()), drafts.SubmitInput{
			WhatsappNumber: body.WhatsappNumber,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, bills.FromModel(bill))
	}
}
