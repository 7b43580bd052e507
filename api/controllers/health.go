package controllers

import (
	"net/http"

	"github.com/danisworo/inventory-backoffice/api/responses"
	"github.com/danisworo/inventory-backoffice/pkg/config"
	pkgdb "github.com/danisworo/inventory-backoffice/pkg/db"
	pkgerrors "github.com/danisworo/inventory-backoffice/pkg/errors"
	"github.com/danisworo/inventory-backoffice/pkg/logger"
	pkgredis "github.com/danisworo/inventory-backoffice/pkg/redis"
)

// HealthLive reports that the process is up.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Backoffice-Env", cfg.App.Env)
		responses.WriteData(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness, pinging the database and redis.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP pkgdb.Pinger, redisP pkgredis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Backoffice-Env", cfg.App.Env)

		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
		}
		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}

		responses.WriteData(w, map[string]string{"status": "ready"})
	}
}
