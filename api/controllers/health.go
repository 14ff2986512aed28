package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/abhyudyayatech/procure-backend/api/responses"
	"github.com/abhyudyayatech/procure-backend/pkg/config"
	"github.com/abhyudyayatech/procure-backend/pkg/db"
	pkgerrors "github.com/abhyudyayatech/procure-backend/pkg/errors"
	"github.com/abhyudyayatech/procure-backend/pkg/logger"
)

const envHeader = "X-Procure-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		if dbP != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := dbP.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
