package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/tiffinworks/pos-backend/api/responses"
	"github.com/tiffinworks/pos-backend/pkg/config"
	"github.com/tiffinworks/pos-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthLive answers as soon as the process serves traffic.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Tiffin-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks the backing stores the till cannot run without.
func HealthReady(cfg *config.Config, logg *logger.Logger, db pinger, cache pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Tiffin-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := map[string]string{}
		healthy := true
		probe := func(name string, p pinger) {
			if p == nil {
				checks[name] = "skipped"
				return
			}
			if err := p.Ping(ctx); err != nil {
				checks[name] = "down"
				healthy = false
				if logg != nil {
					logg.Error(ctx, "readiness probe failed: "+name, err)
				}
				return
			}
			checks[name] = "up"
		}
		probe("database", db)
		probe("redis", cache)

		status := http.StatusOK
		state := "ready"
		if !healthy {
			status = http.StatusServiceUnavailable
			state = "degraded"
		}
		responses.WriteSuccessStatus(w, status, map[string]any{
			"status": state,
			"checks": checks,
		})
	}
}
