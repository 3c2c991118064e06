package http

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/carousel/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed kiosk.html
var kioskHTML []byte

// DefaultKeepAlive is the interval between SSE ping events.
const DefaultKeepAlive = 15 * time.Second

// Options configures the kiosk handler. Zero values disable the matching feature.
type Options struct {
	// Snapshot reports the local controller state on /status.
	Snapshot func() domain.Snapshot
	// Leader reports whether this replica drives the rotation.
	Leader func() bool
	// Gatherer backs /metrics.
	Gatherer prometheus.Gatherer
	// KeepAlive overrides DefaultKeepAlive.
	KeepAlive time.Duration
	Logger    *slog.Logger
}

// Server serves the kiosk page and its command stream.
type Server struct {
	hub  *Hub
	opts Options
}

// Status is the /status response body.
type Status struct {
	Show    *domain.Snapshot `json:"show,omitempty"`
	Leader  bool             `json:"leader"`
	Clients int              `json:"clients"`
	LastSeq uint64           `json:"last_seq"`
}

// NewHandler creates the kiosk HTTP handler for hub.
func NewHandler(hub *Hub, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.KeepAlive <= 0 {
		opts.KeepAlive = DefaultKeepAlive
	}
	s := &Server{hub: hub, opts: opts}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.GetKiosk)
	r.Get("/events", s.SubscribeEvents)
	r.Get("/status", s.GetStatus)
	r.Get("/health", s.GetHealth)
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// GetKiosk serves the page that renders the show.
func (s *Server) GetKiosk(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(kioskHTML)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.opts.Logger, map[string]string{"status": "ok"})
}

// GetStatus handles the GET /status request.
func (s *Server) GetStatus(w http.ResponseWriter, r *http.Request) {
	resp := Status{Clients: s.hub.Clients()}
	if s.opts.Snapshot != nil {
		snap := s.opts.Snapshot()
		resp.Show = &snap
	}
	if s.opts.Leader != nil {
		resp.Leader = s.opts.Leader()
	}
	if cmds := s.hub.Snapshot(); len(cmds) > 0 {
		resp.LastSeq = cmds[0].Seq
	}
	writeJSON(w, s.opts.Logger, resp)
}

// SubscribeEvents handles the GET /events request (SSE). A new client first
// receives the settled page state, then every command as it is published.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	logger := s.opts.Logger
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	snapshot, ch, cancel, err := s.hub.Subscribe(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Subscribe error: %v", err), http.StatusInternalServerError)
		return
	}
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	for _, cmd := range snapshot {
		if err := writeCommand(w, "snapshot", cmd); err != nil {
			logger.Warn("SSE: snapshot write failed", "err", err)
			return
		}
	}
	flusher.Flush()
	logger.Info("SSE client connected", "remote", r.RemoteAddr, "snapshot", len(snapshot))

	keepAlive := time.NewTicker(s.opts.KeepAlive)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			logger.Info("SSE client disconnected", "remote", r.RemoteAddr)
			return
		case <-keepAlive.C:
			fmt.Fprintf(w, "event: ping\ndata: keep-alive\n\n")
			flusher.Flush()
		case cmd, ok := <-ch:
			if !ok {
				return
			}
			if err := writeCommand(w, "command", cmd); err != nil {
				logger.Warn("SSE: write failed", "err", err)
				return
			}
			flusher.Flush()
		}
	}
}

func writeCommand(w http.ResponseWriter, event string, cmd domain.Command) error {
	payload, err := json.Marshal(cmd)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", cmd.Seq, event, payload)
	return err
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}
