package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rgehrsitz/hpgo/internal/calculation"
	"github.com/rgehrsitz/hpgo/internal/compare"
	"github.com/rgehrsitz/hpgo/internal/config"
	"github.com/rgehrsitz/hpgo/internal/transform"
	"go.uber.org/zap"
)

// Server exposes the projection engine over HTTP
type Server struct {
	cfg        config.ServiceConfig
	engine     *calculation.CalculationEngine
	compare    *compare.CompareEngine
	transforms *transform.TransformRegistry
	parser     *config.InputParser
	log        *zap.Logger
	now        func() time.Time
}

// NewServer wires a server around an engine. A nil logger discards output.
func NewServer(cfg config.ServiceConfig, engine *calculation.CalculationEngine, log *zap.Logger) *Server {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		cfg:        cfg,
		engine:     engine,
		compare:    compare.NewCompareEngine(engine),
		transforms: transform.NewTransformRegistry(),
		parser:     config.NewInputParser(),
		log:        log,
		now:        time.Now,
	}
}

// Routes builds the router
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Post("/projections", s.handleProjection)
		r.Post("/amortizations", s.handleAmortization)
		r.Post("/affordability", s.handleAffordability)
		r.Post("/comparisons", s.handleComparison)
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then drains in-flight
// requests for up to the configured shutdown timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.HTTPAddr,
		Handler:      s.Routes(),
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.log.Info("http server shutting down", zap.Duration("timeout", timeout))
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		defer func() {
			s.log.Info("request",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
