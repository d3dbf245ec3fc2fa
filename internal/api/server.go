package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"barberbook/internal/config"
	"barberbook/internal/models"
	"barberbook/internal/service"

	"github.com/rs/zerolog"
)

// Authenticator issues and checks admin session tokens.
type Authenticator interface {
	Login(email, password string) (string, error)
	Verify(token string) (string, error)
}

// HTTPServer exposes the public booking API and the admin endpoints.
type HTTPServer struct {
	cfg     config.ServerConfig
	svc     *service.BookingService
	auth    Authenticator
	catalog []models.ServiceItem
	exports config.ExportConfig
	limiter *ipLimiter
	logger  *zerolog.Logger
	server  *http.Server
}

func NewHTTPServer(
	cfg config.ServerConfig,
	rateCfg config.RateLimitConfig,
	exports config.ExportConfig,
	svc *service.BookingService,
	auth Authenticator,
	catalog []models.ServiceItem,
	logger *zerolog.Logger,
) *HTTPServer {
	srv := &HTTPServer{
		cfg:     cfg,
		svc:     svc,
		auth:    auth,
		catalog: catalog,
		exports: exports,
		limiter: newIPLimiter(rateCfg),
		logger:  logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", srv.handleHealth)
	mux.HandleFunc("/api/slots", srv.handleSlots)
	mux.HandleFunc("/api/services", srv.handleServices)
	mux.HandleFunc("/api/bookings", srv.handleBookings)
	mux.HandleFunc("/api/bookings/export", srv.requireAuth(srv.handleExport))
	mux.HandleFunc("/api/bookings/", srv.handleBookingByID)
	mux.HandleFunc("/api/auth/login", srv.handleLogin)
	mux.HandleFunc("/api/auth/me", srv.requireAuth(srv.handleMe))

	handler := srv.loggingMiddleware(srv.corsMiddleware(srv.limiter.Wrap(mux)))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: time.Duration(cfg.ReadHeaderSecs) * time.Second,
		WriteTimeout:      time.Duration(cfg.WriteSecs) * time.Second,
	}

	return srv
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) corsMiddleware(next http.Handler) http.Handler {
	origin := s.cfg.AllowedOrigin
	if origin == "" {
		origin = "*"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
