// internal/wire/wire.go
package wire

import (
	"net/http"

	"marketplace-booking/internal/adaptor"
	"marketplace-booking/internal/data/repository"
	"marketplace-booking/internal/notify"
	"marketplace-booking/internal/usecase"
	"marketplace-booking/pkg/metrics"
	"marketplace-booking/pkg/middleware"
	"marketplace-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router *chi.Mux
}

// Wiring menginisialisasi semua dependencies
func Wiring(repo *repository.Repository, notifier notify.Notifier, config *utils.Config, logger *zap.Logger) *App {
	// Initialize services dan handlers
	service := usecase.NewService(repo, notifier, config, logger)
	handler := adaptor.NewHandler(service, logger)

	// Setup router
	router := setupRouter(handler, logger)

	return &App{
		Router: router,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(handler *adaptor.Handler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	r.Use(metrics.Middleware)
	r.Use(middleware.Identity(logger))

	// Apply routes
	wireBooking(r, handler.Booking, logger)
	wireListing(r, handler.Listing, logger)
	wireVendor(r, handler.Vendor, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus scrape endpoint
	r.Handle("/metrics", promhttp.Handler())

	return r
}
