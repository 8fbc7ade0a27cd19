package http

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"shift-tracker/internal/platform/logger"
)

// captureWriter records status and bytes written
type captureWriter struct {
	stdhttp.ResponseWriter
	status int
	bytes  int
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	n, err := cw.ResponseWriter.Write(b)
	cw.bytes += n
	return n, err
}

// requestLogger bridges chi's request id into the logger context.
func requestLogger(r *stdhttp.Request) *logger.Logger {
	return logger.C(logger.WithRequestID(r.Context(), chimw.GetReqID(r.Context())))
}

// AccessLog logs method, path, status, elapsed and bytes. Requests slower than
// slow are logged at warn; zero disables that.
func AccessLog(slow time.Duration) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			ctx := logger.WithRequestID(r.Context(), chimw.GetReqID(r.Context()))
			r = r.WithContext(ctx)

			cw := &captureWriter{ResponseWriter: w, status: stdhttp.StatusOK}
			start := time.Now()
			next.ServeHTTP(cw, r)
			elapsed := time.Since(start)

			log := logger.C(ctx)
			evt := log.Info()
			if slow > 0 && elapsed >= slow {
				evt = log.Warn()
			}
			evt.Int("status", cw.status).
				Dur("elapsed", elapsed).
				Str("method", r.Method).
				Str("path", routePath(r)).
				Int("bytes", cw.bytes).
				Msg("request done")
		})
	}
}

// CORS allows the listed origins; with none configured it is a no-op.
func CORS(origins []string) func(stdhttp.Handler) stdhttp.Handler {
	if len(origins) == 0 {
		return func(next stdhttp.Handler) stdhttp.Handler { return next }
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	})
}

// routePath prefers the matched route pattern so feed tokens in the path
// never reach the log.
func routePath(r *stdhttp.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}
