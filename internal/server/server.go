package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/emberworks/ironhold/internal/catalog"
	"github.com/emberworks/ironhold/internal/currency"
	"github.com/emberworks/ironhold/internal/database"
	"github.com/emberworks/ironhold/internal/equipment"
	"github.com/emberworks/ironhold/internal/handler"
	"github.com/emberworks/ironhold/internal/inventory"
	"github.com/emberworks/ironhold/internal/logger"
	"github.com/emberworks/ironhold/internal/market"
	"github.com/emberworks/ironhold/internal/metrics"
	"github.com/emberworks/ironhold/internal/progression"
)

// Services bundles everything the router needs.
type Services struct {
	Catalog     catalog.Service
	Inventory   inventory.Service
	Equipment   equipment.Service
	Market      market.Service
	Currency    currency.Service
	Progression progression.Service
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, dbPool database.Pool, svcs Services) *Server {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/user", func(r chi.Router) {
			r.Get("/inventory", handler.HandleGetInventory(svcs.Inventory, svcs.Equipment))
			r.Get("/stats", handler.HandleGetStats(svcs.Progression))
			r.Post("/experience", handler.HandleGrantExperience(svcs.Progression))

			r.Route("/item", func(r chi.Router) {
				r.Post("/add", handler.HandleAddItem(svcs.Inventory))
				r.Post("/remove", handler.HandleRemoveItem(svcs.Inventory))
				r.Post("/give", handler.HandleGiveItem(svcs.Inventory))
				r.Post("/consume", handler.HandleConsumeItem(svcs.Equipment))
				r.Post("/equip", handler.HandleEquipItem(svcs.Equipment))
				r.Post("/unequip", handler.HandleUnequipItem(svcs.Equipment))
			})

			r.Route("/silver", func(r chi.Router) {
				r.Post("/transfer", handler.HandleTransferSilver(svcs.Currency))
			})
		})

		r.Route("/market", func(r chi.Router) {
			r.Get("/listings", handler.HandleFindListings(svcs.Market))
			r.Post("/list", handler.HandleListItem(svcs.Market))
			r.Post("/purchase", handler.HandlePurchase(svcs.Market))
			r.Post("/cancel", handler.HandleCancelListing(svcs.Market))
		})

		r.Get("/professions", handler.HandleListProfessions(svcs.Catalog))

		r.Post("/purchase/webhook", handler.HandlePurchaseWebhook(svcs.Currency))

		r.Route("/admin", func(r chi.Router) {
			r.Post("/item/create", handler.HandleCreateItem(svcs.Catalog))
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool: dbPool,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Probes and scrapes would drown the request log.
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info("Request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info("Server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
