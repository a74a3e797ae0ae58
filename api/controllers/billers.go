package controllers

import (
	"net/http"

	"github.com/tiffinworks/pos-backend/api/responses"
	"github.com/tiffinworks/pos-backend/api/validators"
	"github.com/tiffinworks/pos-backend/internal/billers"
	"github.com/tiffinworks/pos-backend/pkg/enums"
	"github.com/tiffinworks/pos-backend/pkg/logger"
)

type billerCreateRequest struct {
	Username    string `json:"username" validate:"required"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password" validate:"required,min=8"`
	Role        string `json:"role"`
}

type billerActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// Billers lists operator accounts.
func Billers(svc billers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, billers.FromModels(list))
	}
}

// BillerCreate registers a new operator account.
func BillerCreate(svc billers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body billerCreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		biller, err := svc.Create(r.Context(), billers.CreateInput{
			Username:    body.Username,
			DisplayName: body.DisplayName,
			Password:    body.Password,
			Role:        enums.BillerRole(body.Role),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, billers.FromModel(biller))
	}
}

// BillerActive enables or disables an operator account. Disabled accounts
// fail the auth middleware recheck on their next request.
func BillerActive(svc billers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(r, "billerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body billerActiveRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		biller, err := svc.SetActive(r.Context(), id, *body.Active)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, billers.FromModel(biller))
	}
}
