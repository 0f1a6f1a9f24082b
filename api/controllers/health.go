package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/rss-it/visitreport-backend/api/responses"
	"github.com/rss-it/visitreport-backend/pkg/config"
	"github.com/rss-it/visitreport-backend/pkg/db"
	pkgerrors "github.com/rss-it/visitreport-backend/pkg/errors"
	"github.com/rss-it/visitreport-backend/pkg/logger"
)

const readinessTimeout = 2 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-VisitReport-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the datastore dependencies. A nil pinger is reported as
// skipped so dev setups without Redis still come up ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-VisitReport-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := map[string]string{}
		ready := true

		if dbP != nil {
			if err := dbP.Ping(ctx); err != nil {
				checks["database"] = "down"
				ready = false
			} else {
				checks["database"] = "up"
			}
		} else {
			checks["database"] = "skipped"
		}

		if redisP != nil {
			if err := redisP.Ping(ctx); err != nil {
				checks["redis"] = "down"
				ready = false
			} else {
				checks["redis"] = "up"
			}
		} else {
			checks["redis"] = "skipped"
		}

		if !ready {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeDependency, "dependencies unavailable").
					WithDetails(checks))
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
