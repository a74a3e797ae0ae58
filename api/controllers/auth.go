package controllers

import (
	"net/http"
	"time"

	"github.com/tiffinworks/pos-backend/api/responses"
	"github.com/tiffinworks/pos-backend/api/validators"
	"github.com/tiffinworks/pos-backend/internal/billers"
	pkgerrors "github.com/tiffinworks/pos-backend/pkg/errors"
	"github.com/tiffinworks/pos-backend/pkg/logger"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
	Biller    *billers.BillerDTO `json:"biller"`
}

// AuthLogin wires the login endpoint into the HTTP layer.
func AuthLogin(svc billers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body loginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body.Username, body.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, loginResponse{
			Token:     result.Token,
			ExpiresAt: result.ExpiresAt,
			Biller:    billers.FromModel(result.Biller),
		})
	}
}
