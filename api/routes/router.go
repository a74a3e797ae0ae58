package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tiffinworks/pos-backend/api/controllers"
	"github.com/tiffinworks/pos-backend/api/middleware"
	"github.com/tiffinworks/pos-backend/internal/billers"
	"github.com/tiffinworks/pos-backend/internal/bills"
	"github.com/tiffinworks/pos-backend/internal/customers"
	"github.com/tiffinworks/pos-backend/internal/discounts"
	"github.com/tiffinworks/pos-backend/internal/drafts"
	"github.com/tiffinworks/pos-backend/internal/menu"
	"github.com/tiffinworks/pos-backend/pkg/config"
	"github.com/tiffinworks/pos-backend/pkg/db"
	"github.com/tiffinworks/pos-backend/pkg/enums"
	"github.com/tiffinworks/pos-backend/pkg/logger"
	"github.com/tiffinworks/pos-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	billersService billers.Service,
	menuService menu.Service,
	discountsService discounts.Service,
	draftsService drafts.Service,
	billsService bills.Service,
	customersService customers.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	manager := middleware.RequireRole(enums.BillerRoleManager.String(), logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(billersService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, billersService, logg))

		r.Route("/menu", func(r chi.Router) {
			r.Get("/categories", controllers.MenuCategories(menuService, logg))
			r.With(manager).Post("/categories", controllers.MenuCategoryCreate(menuService, logg))
			r.With(manager).Put("/categories/{categoryId}", controllers.MenuCategoryUpdate(menuService, logg))
			r.With(manager).Delete("/categories/{categoryId}", controllers.MenuCategoryDelete(menuService, logg))

			r.Get("/items", controllers.MenuItems(menuService, logg))
			r.With(manager).Post("/items", controllers.MenuItemCreate(menuService, logg))
			r.With(manager).Put("/items/{itemId}", controllers.MenuItemUpdate(menuService, logg))
			// Any operator can 86 an item mid-shift.
			r.Patch("/items/{itemId}/availability", controllers.MenuItemAvailability(menuService, logg))
			r.With(manager).Delete("/items/{itemId}", controllers.MenuItemDelete(menuService, logg))
		})

		r.Route("/discount-codes", func(r chi.Router) {
			r.Get("/", controllers.DiscountCodes(discountsService, logg))
			r.Post("/validate", controllers.DiscountCodeValidate(discountsService, logg))
			r.With(manager).Post("/", controllers.DiscountCodeCreate(discountsService, logg))
			r.With(manager).Put("/{codeId}", controllers.DiscountCodeUpdate(discountsService, logg))
			r.With(manager).Patch("/{codeId}/active", controllers.DiscountCodeActive(discountsService, logg))
			r.With(manager).Delete("/{codeId}", controllers.DiscountCodeDelete(discountsService, logg))
		})

		r.Route("/draft", func(r chi.Router) {
			r.Get("/", controllers.Draft(draftsService, logg))
			r.Delete("/", controllers.DraftClear(draftsService, logg))
			r.Post("/items/{itemId}", controllers.DraftAddItem(draftsService, logg))
			r.Delete("/items/{itemId}", controllers.DraftRemoveItem(draftsService, logg))
			r.Put("/items/{itemId}/quantity", controllers.DraftSetQuantity(draftsService, logg))
			r.Put("/discount", controllers.DraftApplyDiscount(draftsService, logg))
			r.Post("/discount-code", controllers.DraftApplyCode(draftsService, logg))
			r.Delete("/discount-code", controllers.DraftRemoveCode(draftsService, logg))
			r.Post("/submit", controllers.DraftSubmit(draftsService, logg))
		})

		r.Route("/bills", func(r chi.Router) {
			r.Get("/", controllers.Bills(billsService, logg))
			r.Get("/stats/daily", controllers.DailyStats(billsService, logg))
			r.Get("/{billId}", controllers.BillByID(billsService, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.Customers(customersService, logg))
			r.Post("/", controllers.CustomerCreate(customersService, logg))
			r.Get("/birthdays", controllers.CustomerBirthdays(customersService, logg))
			r.Get("/{customerId}", controllers.CustomerByID(customersService, logg))
			r.Put("/{customerId}", controllers.CustomerUpdate(customersService, logg))
			r.Delete("/{customerId}", controllers.CustomerDelete(customersService, logg))
		})

		r.Route("/billers", func(r chi.Router) {
			r.Use(manager)
			r.Get("/", controllers.Billers(billersService, logg))
			r.Post("/", controllers.BillerCreate(billersService, logg))
			r.Patch("/{billerId}/active", controllers.BillerActive(billersService, logg))
		})
	})

	return r
}
