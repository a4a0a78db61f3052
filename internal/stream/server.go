package stream

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"turmites/internal/config"
	"turmites/internal/presets"
	"turmites/internal/rules"
	"turmites/internal/sched"
	"turmites/internal/sim"
)

//go:embed index.html
var indexHTML []byte

const (
	maxRulesBody    = 64 * 1024
	shutdownTimeout = 5 * time.Second
)

// ErrStopped is returned when a request arrives after the loop has exited.
var ErrStopped = errors.New("simulation stopped")

// Server hosts one simulation and streams it to every connected viewer.
type Server struct {
	ctrl *sim.Controller
	loop *sched.Loop
	hub  *Hub
	cfg  config.ServerConfig
	log  *slog.Logger
}

// NewServer wires ctrl to a loop drawing at the given frame interval.
func NewServer(ctrl *sim.Controller, cfg config.ServerConfig, frame time.Duration, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{ctrl: ctrl, cfg: cfg, log: logger}
	s.loop = sched.NewLoop(ctrl.Scheduler(), s.render, frame, logger)
	s.hub = NewHub(cfg.WriteTimeout, s.onJoin, s.onControl, logger)
	return s
}

// Hub exposes the viewer hub.
func (s *Server) Hub() *Hub { return s.hub }

// Loop exposes the loop hosting the controller.
func (s *Server) Loop() *sched.Loop { return s.loop }

// render runs on the loop goroutine.
func (s *Server) render() {
	f := BuildFrame(s.ctrl.State())
	if s.hub.Clients() == 0 || f.Empty() {
		return
	}
	f.Speed = s.ctrl.SpeedInput()
	f.State = s.ctrl.Scheduler().State().String()
	data, err := json.Marshal(f)
	if err != nil {
		s.log.Error("encode frame", "error", err)
		return
	}
	if !s.hub.Broadcast(data) {
		s.ctrl.State().Dirty.MarkAll()
	}
}

func (s *Server) onJoin() {
	s.loop.Post(func() { s.ctrl.State().Dirty.MarkAll() })
}

func (s *Server) onControl(c *Client, msg Control) {
	s.loop.Post(func() {
		if err := Apply(s.ctrl, msg); err != nil {
			s.log.Warn("control rejected", "type", msg.Type, "error", err)
			c.sendError(err)
			return
		}
		s.log.Info("control applied", "type", msg.Type)
	})
}

// call runs fn on the loop goroutine and waits for it.
func (s *Server) call(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	if !s.loop.Post(func() { fn(); close(done) }) {
		return ErrStopped
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Handler returns the HTTP routes: the viewer page, the websocket endpoint,
// the preset list and the rules editor.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(indexHTML)
	})
	mux.Handle("GET /ws", s.hub)
	mux.HandleFunc("GET /presets", s.handlePresets)
	mux.HandleFunc("GET /rules", s.handleGetRules)
	mux.HandleFunc("POST /rules", s.handlePostRules)
	return mux
}

type presetEntry struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	all := presets.All()
	out := make([]presetEntry, len(all))
	for i, p := range all {
		out[i] = presetEntry{Key: p.Key, Name: p.Name}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetRules(w http.ResponseWriter, r *http.Request) {
	var text string
	if err := s.call(r.Context(), func() { text = s.ctrl.RulesText() }); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, text)
}

type rulesResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

func (s *Server) handlePostRules(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRulesBody))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var applyErr error
	if err := s.call(r.Context(), func() { applyErr = s.ctrl.ApplyRulesText(string(body)) }); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if applyErr != nil {
		resp := rulesResponse{Errors: []string{applyErr.Error()}}
		var verr *rules.ValidationError
		if errors.As(applyErr, &verr) {
			resp.Errors = verr.Errors
		}
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}
	writeJSON(w, http.StatusOK, rulesResponse{Valid: true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Serve runs the hub and the simulation loop until ctx ends.
func (s *Server) Serve(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.hub.Run(ctx) })
	g.Go(func() error { return s.loop.Run(ctx) })
	return g.Wait()
}

// ListenAndServe serves HTTP on the configured address alongside Serve and
// shuts down gracefully when ctx ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.Serve(gctx) })
	g.Go(func() error {
		s.log.Info("listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
