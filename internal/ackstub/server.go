package ackstub

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JakeFAU/sdtnames/internal/metrics"
)

// AckBody is written for every acknowledged request.
const AckBody = `{"ok":true}`

// LastPath serves the most recent body to out-of-process harnesses.
const LastPath = "/_stub/last"

const (
	defaultMaxBodyBytes    = 1 << 20
	defaultShutdownTimeout = 10 * time.Second
)

// Server acknowledges every POST and remembers the last body it received.
type Server struct {
	router          chi.Router
	recorder        *Recorder
	maxBodyBytes    int64
	shutdownTimeout time.Duration
	now             func() time.Time
	logger          *zap.Logger
}

// Option customizes a Server.
type Option func(*Server)

// WithMaxBodyBytes caps how much of each body is recorded. Larger bodies are
// truncated in the capture, flagged with Capture.Truncated, and still acknowledged.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithShutdownTimeout bounds graceful shutdown once the serving context ends.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.shutdownTimeout = d
	}
}

// WithClock overrides the time source used for capture timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the lifecycle logger. Individual requests are never logged.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRecorder shares an existing Recorder with the server.
func WithRecorder(rec *Recorder) Option {
	return func(s *Server) {
		if rec != nil {
			s.recorder = rec
		}
	}
}

// NewServer constructs a Server with middleware and routes.
func NewServer(opts ...Option) *Server {
	s := &Server{
		recorder:        NewRecorder(),
		maxBodyBytes:    defaultMaxBodyBytes,
		shutdownTimeout: defaultShutdownTimeout,
		now:             func() time.Time { return time.Now().UTC() },
		logger:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	metrics.Init()

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(metrics.Middleware)
	r.Use(s.recoverMiddleware)

	r.Get("/healthz", s.healthz)
	r.Get(LastPath, s.last)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Post("/*", s.ack)
	r.MethodNotAllowed(s.methodNotAllowed)

	s.router = r
	return s
}

// Handler returns the Router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Recorder exposes the capture slot for in-process harnesses.
func (s *Server) Recorder() *Recorder {
	return s.recorder
}

// LastBody is shorthand for s.Recorder().LastBody().
func (s *Server) LastBody() string {
	return s.recorder.LastBody()
}

func (s *Server) ack(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, s.maxBodyBytes+1))
	if err != nil {
		s.logger.Debug("partial request body", zap.Error(err))
	}
	truncated := int64(len(body)) > s.maxBodyBytes
	if truncated {
		body = body[:s.maxBodyBytes]
	}
	// Drain the rest so keep-alive connections stay usable.
	_, _ = io.Copy(io.Discard, r.Body)

	contentType := r.Header.Get("Content-Type")
	s.recorder.Record(Capture{
		Body:        body,
		ContentType: contentType,
		Path:        r.URL.Path,
		RequestID:   requestIDFrom(r.Context()),
		ReceivedAt:  s.now(),
		Truncated:   truncated,
	})
	metrics.ObserveAck(mediaType(contentType), len(body))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, AckBody); err != nil {
		s.logger.Debug("write ack failed", zap.Error(err))
	}
}

// methodNotAllowed still acknowledges POSTs that landed on a GET-only route.
func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		s.ack(w, r)
		return
	}
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) last(w http.ResponseWriter, _ *http.Request) {
	if _, ok := s.recorder.Last(); !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, s.recorder.LastBody()); err != nil {
		s.logger.Debug("write last body failed", zap.Error(err))
	}
}

func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", zap.Any("error", rec))
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type requestIDKey struct{}

// RequestIDHeader carries the identifier assigned to each request.
const RequestIDHeader = "X-Request-ID"

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := newRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		w.Header().Set(RequestIDHeader, reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// mediaType reduces a Content-Type header to its bare media type so metric
// labels stay bounded.
func mediaType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "invalid"
	}
	return mt
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("write JSON failed", zap.Error(err))
	}
}
