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

	"github.com/undercity-game/undercity/internal/catalog"
	"github.com/undercity-game/undercity/internal/contract"
	"github.com/undercity-game/undercity/internal/database"
	"github.com/undercity-game/undercity/internal/economy"
	"github.com/undercity-game/undercity/internal/handler"
	"github.com/undercity-game/undercity/internal/logger"
	"github.com/undercity-game/undercity/internal/metrics"
	"github.com/undercity-game/undercity/internal/sse"
	"github.com/undercity-game/undercity/internal/task"
)

type Server struct {
	httpServer      *http.Server
	dbPool          database.Pool
	economyService  economy.Service
	taskService     task.Service
	contractService contract.Service
}

// NewServer creates a new Server instance with the full route table
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, economyService economy.Service, taskService task.Service, contractService contract.Service, lookup catalog.Lookup, sseHub *sse.Hub) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	guard := NewGuard(apiKey, trustedProxies)

	r.Use(SecureHeaders)
	r.Use(guard.Authenticate)
	r.Use(guard.RateLimit)
	r.Use(LimitBodySize(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool, lookup))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/character", func(r chi.Router) {
			r.Post("/register", handler.HandleRegisterCharacter(economyService))
			r.Get("/{characterID}", handler.HandleGetCharacter(economyService))
			r.Get("/{characterID}/inventory", handler.HandleGetInventory(economyService))
		})

		r.Route("/shop", func(r chi.Router) {
			r.Get("/catalog", handler.HandleGetCatalog(lookup))
			r.Post("/buy", handler.HandleBuyItem(economyService))
			r.Post("/sell", handler.HandleSellItem(economyService))
			r.Post("/equip", handler.HandleEquipItem(economyService))
			r.Post("/unequip", handler.HandleUnequipItem(economyService))
		})

		r.Route("/bank", func(r chi.Router) {
			r.Post("/deposit", handler.HandleDeposit(economyService))
			r.Post("/withdraw", handler.HandleWithdraw(economyService))
			r.Post("/transfer", handler.HandleTransfer(economyService))
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", handler.HandleListTasks(taskService))
			r.Get("/progress/{characterID}", handler.HandleGetTaskProgress(taskService))
			r.Post("/progress", handler.HandleRecordProgress(taskService))
			r.Post("/{taskID}/claim", handler.HandleClaimReward(taskService))
		})

		r.Route("/contracts", func(r chi.Router) {
			r.Get("/", handler.HandleListOpenContracts(contractService))
			r.Post("/", handler.HandlePostContract(contractService))
			r.Get("/{contractID}", handler.HandleGetContract(contractService))
			r.Post("/{contractID}/fulfill", handler.HandleFulfillContract(contractService))
		})

		// Live event stream
		r.Get("/events", sse.Handler(sseHub))
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:          dbPool,
		economyService:  economyService,
		taskService:     taskService,
		contractService: contractService,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
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

// Flush lets the SSE handler stream through the wrapped writer
func (rw *responseWriter) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
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

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
