package controllers

import (
	"net/http"
	"time"

	"github.com/tiffinworks/pos-backend/api/responses"
	"github.com/tiffinworks/pos-backend/api/validators"
	"github.com/tiffinworks/pos-backend/internal/customers"
	"github.com/tiffinworks/pos-backend/pkg/logger"
)

type customerRequest struct {
	Name          string  `json:"name" validate:"required"`
	Phone         string  `json:"phone" validate:"required,e164"`
	WhatsappOptIn *bool   `json:"whatsapp_opt_in"`
	Birthday      *string `json:"birthday"`
}

// Customers lists the customer book ordered by name.
func Customers(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, customers.FromModels(list))
	}
}

// CustomerByID returns one customer record.
func CustomerByID(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(r, "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		customer, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, customers.FromModel(customer))
	}
}

// CustomerCreate adds a customer.
func CustomerCreate(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := decodeCustomerInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		customer, err := svc.Create(r.Context(), *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, customers.FromModel(customer))
	}
}

// CustomerUpdate edits a customer.
func CustomerUpdate(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(r, "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := decodeCustomerInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		customer, err := svc.Update(r.Context(), id, *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, customers.FromModel(customer))
	}
}

// CustomerDelete removes a customer.
func CustomerDelete(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(r, "customerId")
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

// CustomerBirthdays returns customers whose birthday falls within the next N
// days, for the greeting list. Defaults to the next 7 days.
func CustomerBirthdays(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days, err := validators.ParseQueryInt(r, "days", 7, 0, 366)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		entries, err := svc.UpcomingBirthdays(r.Context(), time.Now(), days)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, customers.BirthdaysFromEntries(entries))
	}
}

func decodeCustomerInput(r *http.Request) (*customers.CustomerInput, error) {
	var body customerRequest
	if err := validators.DecodeJSONBody(r, &body); err != nil {
		return nil, err
	}
	input := &customers.CustomerInput{
		Name:          body.Name,
		Phone:         body.Phone,
		WhatsappOptIn: body.WhatsappOptIn,
	}
	if body.Birthday != nil {
		birthday, err := validators.ParseDateField(*body.Birthday, "birthday")
		if err != nil {
			return nil, err
		}
		input.Birthday = birthday
	}
	return input, nil
}
