package controllers

import (
	"net/http"

	"github.com/tiffinworks/pos-backend/api/responses"
	"github.com/tiffinworks/pos-backend/api/validators"
	"github.com/tiffinworks/pos-backend/internal/discounts"
	"github.com/tiffinworks/pos-backend/pkg/logger"
)

type discountCodeRequest struct {
	Code            string `json:"code" validate:"required"`
	DiscountPercent int    `json:"discount_percent" validate:"required,min=1,max=100"`
	Description     string `json:"description"`
	Active          *bool  `json:"active"`
}

type discountActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type discountValidateRequest struct {
	Code string `json:"code" validate:"required"`
}

// DiscountCodes lists the full catalog, active and retired.
func DiscountCodes(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		codes, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, discounts.FromModels(codes))
	}
}

// DiscountCodeCreate adds a code to the catalog.
func DiscountCodeCreate(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body discountCodeRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		code, err := svc.Create(r.Context(), discounts.CodeInput{
			Code:            body.Code,
			DiscountPercent: body.DiscountPercent,
			Description:     body.Description,
			Active:          body.Active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, discounts.FromModel(code))
	}
}

// DiscountCodeUpdate edits a code.
func DiscountCodeUpdate(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(r, "codeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body discountCodeRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		code, err := svc.Update(r.Context(), id, discounts.CodeInput{
			Code:            body.Code,
			DiscountPercent: body.DiscountPercent,
			Description:     body.Description,
			Active:          body.Active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, discounts.FromModel(code))
	}
}

// DiscountCodeActive enables or retires a code without deleting it.
func DiscountCodeActive(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(r, "codeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body discountActiveRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		code, err := svc.SetActive(r.Context(), id, *body.Active)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, discounts.FromModel(code))
	}
}

// DiscountCodeDelete removes a code from the catalog.
func DiscountCodeDelete(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(r, "codeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// DiscountCodeValidate resolves a code for the till so the operator sees the
// percent before applying it to the draft.
func DiscountCodeValidate(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body discountValidateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		code, err := svc.Lookup(r.Context(), body.Code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"code":             code.Code,
			"discount_percent": code.DiscountPercent,
			"active":           code.Active,
		})
	}
}
