package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"shift-tracker/internal/app/service"
	"shift-tracker/internal/ics"
	"shift-tracker/internal/platform/logger"
)

// API holds what the handlers need.
type API struct {
	Shifts    *service.ShiftServiceImpl
	Ledger    *service.Ledger
	Settings  *service.SettingsService
	Agg       service.Aggregator
	Feed      *ics.Builder
	Async     *service.AsyncService
	FeedToken string
	Now       func() time.Time
}

func (a *API) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// Routes mounts every endpoint on a fresh chi router.
func (a *API) Routes(corsOrigins []string) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(AccessLog(2 * time.Second))
	r.Use(chimw.Recoverer)
	r.Use(CORS(corsOrigins))

	r.Get("/health", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/shifts", func(r chi.Router) {
			r.Get("/", a.listShifts)
			r.Post("/", a.createShift)
			r.Put("/bulk", a.bulkUpdate)
			r.Put("/{id}", a.updateShift)
			r.Delete("/{id}", a.deleteShift)
		})
		r.Get("/config", a.getConfig)
		r.Post("/config", a.setConfig)
		r.Get("/summary", a.summary)
		r.Get("/export.xlsx", a.exportWorkbook)
		r.Get("/ics", a.feed)
		r.Get("/ics/{token}", a.feed)
	})
	return r
}

// Server is a thin wrapper over stdlib http.Server
type Server struct {
	srv *stdhttp.Server
}

func NewServer(addr string, h stdhttp.Handler) *Server {
	return &Server{srv: &stdhttp.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}}
}

func (s *Server) Addr() string { return s.srv.Addr }

// Run serves until Shutdown.
func (s *Server) Run() error {
	logger.Named("http").Info().Str("addr", s.srv.Addr).Msg("http listening")
	if err := s.srv.ListenAndServe(); !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
