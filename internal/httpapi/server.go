package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apimw "github.com/hamed0406/uptimebot/internal/httpapi/middleware"
	"github.com/hamed0406/uptimebot/internal/notify"
	"github.com/hamed0406/uptimebot/internal/repo"
)

const indexBody = "Uptime monitor up and running ✅"

type Server struct {
	Logger      *zap.Logger
	Store       repo.StateStore
	Notifier    notify.Notifier
	Destination string
	Gatherer    prometheus.Gatherer
	Now         func() time.Time
}

func NewServer(l *zap.Logger, store repo.StateStore, n notify.Notifier, destination string, g prometheus.Gatherer) *Server {
	if n == nil {
		n = notify.Nop{Logger: l}
	}
	return &Server{Logger: l, Store: store, Notifier: n, Destination: destination, Gatherer: g, Now: time.Now}
}

// Limits configures the /test endpoint guard.
type Limits struct {
	AdminKeys []string
	TestRPM   int
	TestBurst int
}

func (s *Server) Router(lim Limits) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", text(http.StatusOK, indexBody))
	r.Head("/", text(http.StatusOK, ""))
	r.Get("/ping", text(http.StatusOK, "pong"))
	r.Get("/healthz", text(http.StatusOK, "ok"))

	r.Group(func(r chi.Router) {
		r.Use(apimw.RateLimit(lim.TestRPM, lim.TestBurst))
		r.Use(apimw.RequireAdmin(lim.AdminKeys))
		r.Get("/test", s.handleTest)
		r.Post("/test", s.handleTest)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.AllowAll().Handler)
		r.Get("/status", s.handleStatus)
	})

	if s.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func text(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

// handleTest sends one notification so an operator can verify delivery.
// Delivery failures are reported in the body; the status stays 200.
func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	err := s.Notifier.Send(r.Context(), s.Destination, notify.TestMessage(s.Now()), notify.FormatHTML)
	if err != nil {
		s.Logger.Warn("test_notification_failed", zap.Error(err))
		writeJSON(w, map[string]any{"sent": false, "error": err.Error()})
		return
	}
	s.Logger.Info("test_notification_sent")
	writeJSON(w, map[string]any{"sent": true})
}

type statusItem struct {
	Name          string     `json:"name"`
	URL           string     `json:"url"`
	Status        string     `json:"status"`
	LastCheckedAt *time.Time `json:"last_checked_at"`
	AgeSeconds    *int64     `json:"age_seconds"`
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	now := s.Now()
	states := s.Store.Snapshot()
	out := make([]statusItem, 0, len(states))
	for _, st := range states {
		item := statusItem{
			Name:   st.Target.Name,
			URL:    st.Target.URL,
			Status: st.Status.String(),
		}
		if age, ok := st.Age(now); ok {
			at := st.LastCheckedAt.UTC()
			secs := int64(age / time.Second)
			item.LastCheckedAt = &at
			item.AgeSeconds = &secs
		}
		out = append(out, item)
	}
	writeJSON(w, out)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.Logger.Debug("http_request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
