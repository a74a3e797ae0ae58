package controllers

import (
	"net/http"
	"time"

	"github.com/tiffinworks/pos-backend/api/responses"
	"github.com/tiffinworks/pos-backend/api/validators"
	"github.com/tiffinworks/pos-backend/internal/bills"
	"github.com/tiffinworks/pos-backend/pkg/logger"
	"github.com/tiffinworks/pos-backend/pkg/pagination"
)

// Bills lists submitted bills newest first with cursor pagination. Optional
// filters: biller_id, from, to (dates, inclusive from / exclusive to).
func Bills(svc bills.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		billerID, err := validators.ParseQueryUUID(r, "biller_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		from, err := validators.ParseQueryDate(r, "from")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		to, err := validators.ParseQueryDate(r, "to")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), bills.ListFilter{BillerID: billerID, From: from, To: to}, pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, bills.PageFromResult(page))
	}
}

// BillByID returns one submitted bill with its line items.
func BillByID(svc bills.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(r, "billId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		bill, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, bills.FromModel(bill))
	}
}

// DailyStats returns the sales aggregate for one calendar day. The day
// defaults to today when the query parameter is absent.
func DailyStats(svc bills.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day, err := validators.ParseQueryDate(r, "day")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if day == nil {
			now := time.Now()
			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
			day = &today
		}
		stats, err := svc.DailyStats(r.Context(), *day)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}
