package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

var log = zap.NewNop().Sugar()

// SetLogger wires the application logger into the middleware package.
func SetLogger(l *zap.SugaredLogger) {
	if l != nil {
		log = l
	}
}

// statusWriter records the response code written by the handler chain.
type statusWriter struct {
	http.ResponseWriter
	code  int
	bytes int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// WithLogging logs one line per request: method, path, status, size, duration.
func WithLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}

		next.ServeHTTP(sw, r)

		log.Infow("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.code,
			"size", sw.bytes,
			"duration", time.Since(start),
		)
	})
}
