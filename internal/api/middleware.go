package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// statusWriter captures the final HTTP status code and number of bytes
// written, distinguishing "handler returned 200" from "client received a
// response".
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Record implicit 200 responses when handlers write without WriteHeader.
func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestLogging attaches a request-scoped logger (with a request id) to
// the context and logs end-to-end duration and response size.
func requestLogging(log zerolog.Logger, next http.Handler) http.Handler {
	withLogger := hlog.NewHandler(log)

	return withLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.NewString()

		logger := hlog.FromRequest(r).With().Str("req_id", reqID).Logger()
		r = r.WithContext(logger.WithContext(r.Context()))

		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)

		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.RequestURI()).
			Int("status", sw.status).
			Int("bytes", sw.bytes).
			Dur("dur", time.Since(start)).
			Msg("request")
	}))
}
