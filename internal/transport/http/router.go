// Package httptransport assembles the HTTP surface. Handlers stay thin and
// delegate to domain services; this package only wires middleware and routes.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	eligibilityhandler "eduraksha/internal/eligibility/handler"
	"eduraksha/internal/platform/health"
	"eduraksha/internal/platform/middleware"
	wallethandler "eduraksha/internal/wallet/handler"
)

// Deps carries the handlers mounted on the router.
type Deps struct {
	Wallet      *wallethandler.Handler
	Eligibility *eligibilityhandler.Handler
	Health      *health.Handler
}

// NewRouter wires all public endpoints with the standard middleware stack.
func NewRouter(deps Deps, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)

	deps.Health.Register(r)
	deps.Wallet.Register(r)
	deps.Eligibility.Register(r)

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
