package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"github.com/space-cap/saju-lotto-firebase/internal/infra/config"
)

// withRetry replays read-only requests that fail with a 5xx, which covers
// transient snapshot store or database errors. Requests that change state are
// never replayed.
func withRetry(handler http.Handler, cfg config.RetryConfig, logger *slog.Logger) http.Handler {
	if !cfg.Enabled || cfg.MaxAttempts <= 1 {
		return handler
	}
	exclusions := make(map[string]struct{}, len(cfg.Exclude))
	for _, path := range cfg.Exclude {
		exclusions[path] = struct{}{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, skip := exclusions[r.URL.Path]; skip || !replayable(r.Method) {
			handler.ServeHTTP(w, r)
			return
		}

		for attempt := 1; ; attempt++ {
			rec := newBufferedResponse()
			handler.ServeHTTP(rec, r.Clone(r.Context()))
			if rec.status < http.StatusInternalServerError || attempt >= cfg.MaxAttempts {
				rec.flushTo(w)
				return
			}
			logger.Warn("transient failure, retrying request", "path", r.URL.Path, "status", rec.status, "attempt", attempt)

			select {
			case <-r.Context().Done():
				rec.flushTo(w)
				return
			case <-time.After(cfg.BaseBackoff << (attempt - 1)):
			}
		}
	})
}

func replayable(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

// bufferedResponse holds a response until we know it will not be retried.
type bufferedResponse struct {
	header http.Header
	body   bytes.Buffer
	status int
	wrote  bool
}

func newBufferedResponse() *bufferedResponse {
	return &bufferedResponse{header: make(http.Header), status: http.StatusOK}
}

func (b *bufferedResponse) Header() http.Header { return b.header }

func (b *bufferedResponse) WriteHeader(status int) {
	if b.wrote {
		return
	}
	b.status = status
	b.wrote = true
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	b.wrote = true
	return b.body.Write(p)
}

func (b *bufferedResponse) flushTo(w http.ResponseWriter) {
	dst := w.Header()
	for k, values := range b.header {
		dst[k] = append([]string(nil), values...)
	}
	w.WriteHeader(b.status)
	if b.body.Len() > 0 {
		_, _ = w.Write(b.body.Bytes())
	}
}
