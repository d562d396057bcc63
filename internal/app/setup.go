// Package app contains the application setup for the store backend.
package app

import (
	"log/slog"
	"net/http"

	"lojabackend/internal/config"
	custommw "lojabackend/internal/middleware"
	"lojabackend/internal/service"
	"lojabackend/internal/store"
	"lojabackend/internal/transport/rest"
	"lojabackend/pkg/auth"
	"lojabackend/pkg/messaging"
	"lojabackend/pkg/server"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependencies struct {
	PurchaseService service.PurchaseService
	ProductService  service.ProductService
	Verifier        auth.Verifier
	Logger          *slog.Logger
}

func SetupDependencies(dbPool *pgxpool.Pool, publisher messaging.Publisher, verifier auth.Verifier, logger *slog.Logger) *Dependencies {
	pgStore := store.NewPgStore(dbPool)

	return &Dependencies{
		PurchaseService: service.NewService(pgStore, publisher),
		ProductService:  service.NewProductService(pgStore),
		Verifier:        verifier,
		Logger:          logger,
	}
}

// SetupHttpHandler initializes the HTTP routes for the application.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the application.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	authMw := custommw.AuthMiddleware(deps.Verifier)

	purchaseHandler := rest.NewHandler(deps.PurchaseService, deps.Logger)
	purchaseHandler.RegisterRoutes(mux, authMw)

	productHandler := rest.NewProductHandler(deps.ProductService, deps.Logger)
	productHandler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the application.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {

	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
