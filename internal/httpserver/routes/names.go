package routes

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/courierlabs/nameplate/internal/httpserver/deps"
	"github.com/courierlabs/nameplate/internal/httpserver/handlers"
	"github.com/courierlabs/nameplate/internal/httpserver/mw"
)

func init() { Register(registerNames) }

func registerNames(r chi.Router, d deps.Deps) {
	guarded := r.With(
		mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
		mw.EnforceHost(d.AllowedHosts, d.Logger),
	)

	guarded.Get("/names", handlers.Names(d))
	guarded.Get("/names/lookup", handlers.NameLookup(d))
	guarded.With(mw.RateLimit(mw.RateLimitConfig{
		Burst:             10,
		RefillPerIPPerMin: 60,
		MaxEntries:        4096,
		SweepInterval:     time.Minute,
		IdleTTL:           15 * time.Minute,
		TrustProxy:        d.TrustProxy,
	})).Post("/names/preview", handlers.NamePreview(d))
}
