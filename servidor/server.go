// server.go - Gesture relay: the recognizer publishes labels, the game polls them
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"gesturegame/config"
	"gesturegame/shared"
)

// Type aliases for shared wire types
type Gesture = shared.Gesture
type GestureReply = shared.GestureReply

const maxBody = 1 << 10

// GestureServer holds the latest label published by the recognizer. Each
// label is handed to exactly one poll and then reset to none.
type GestureServer struct {
	mu     sync.Mutex // protects latest across concurrent handlers
	latest Gesture

	log       *zap.Logger
	published *prometheus.CounterVec
	served    *prometheus.CounterVec
	registry  *prometheus.Registry
	upgrader  websocket.Upgrader
}

// NewGestureServer starts with nothing pending.
func NewGestureServer(log *zap.Logger) *GestureServer {
	if log == nil {
		log = zap.NewNop()
	}
	s := &GestureServer{
		latest: shared.GestureNone,
		log:    log,
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gesture_published_total",
			Help: "Gestures received from the recognizer.",
		}, []string{"source"}),
		served: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gesture_served_total",
			Help: "Gestures returned to pollers.",
		}, []string{"gesture"}),
		registry: prometheus.NewRegistry(),
		upgrader: websocket.Upgrader{
			// The recognizer runs next to the server; any origin is accepted.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s.registry.MustRegister(s.published, s.served)
	return s
}

// Handler routes every endpoint.
func (s *GestureServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+shared.PathGetGesture, s.GetGesture)
	mux.HandleFunc("POST "+shared.PathGesture, s.PostGesture)
	mux.HandleFunc("GET "+shared.PathWS, s.Feed)
	mux.Handle("GET "+shared.PathMetrics, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return mux
}

// Publish records g as the latest label.
func (s *GestureServer) Publish(g Gesture, source string) {
	s.mu.Lock()
	s.latest = g
	s.mu.Unlock()
	s.published.WithLabelValues(source).Inc()
	s.log.Debug("gesture published", zap.String("gesture", string(g)), zap.String("source", source))
}

// take returns the pending label and clears it.
func (s *GestureServer) take() Gesture {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.latest
	s.latest = shared.GestureNone
	return g
}

// GetGesture: GET /get_gesture
func (s *GestureServer) GetGesture(w http.ResponseWriter, r *http.Request) {
	g := s.take()
	s.served.WithLabelValues(string(g)).Inc()
	writeJSON(w, http.StatusOK, shared.NewGestureReply(g))
}

// PostGesture: POST /gesture {"gesture":"left"}
func (s *GestureServer) PostGesture(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}
	g, err := parseMessage(body)
	if err != nil {
		s.log.Info("rejected gesture", zap.String("remote", r.RemoteAddr), zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.Publish(g, "http")
	writeJSON(w, http.StatusOK, shared.NewGestureReply(g))
}

// Feed: GET /ws. Every text frame is a label, bare or as {"gesture": ...}.
func (s *GestureServer) Feed(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("upgrade", zap.Error(err))
		return
	}
	defer conn.Close()
	s.log.Info("recognizer connected", zap.String("remote", r.RemoteAddr))

	conn.SetReadLimit(maxBody)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	defer close(done)
	go s.ping(conn, done)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warn("recognizer read", zap.Error(err))
			}
			s.log.Info("recognizer disconnected", zap.String("remote", r.RemoteAddr))
			return
		}
		g, err := parseMessage(msg)
		if err != nil {
			s.log.Info("rejected gesture", zap.String("remote", r.RemoteAddr), zap.Error(err))
			continue
		}
		s.Publish(g, "ws")
	}
}

const (
	pongWait   = 60 * time.Second
	pingPeriod = 25 * time.Second
	writeWait  = 10 * time.Second
)

func (s *GestureServer) ping(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			deadline := time.Now().Add(writeWait)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

var errUnknownGesture = errors.New("unknown gesture")

// parseMessage accepts `{"gesture":"left"}` or a bare `left`.
func parseMessage(b []byte) (Gesture, error) {
	raw := string(b)
	if len(b) > 0 && b[0] == '{' {
		var rep GestureReply
		if err := json.Unmarshal(b, &rep); err != nil {
			return "", fmt.Errorf("decode gesture: %w", err)
		}
		if rep.Gesture == nil {
			return "", fmt.Errorf("decode gesture: missing gesture field")
		}
		raw = *rep.Gesture
	}
	g, ok := shared.ParseGesture(raw)
	if !ok {
		return "", fmt.Errorf("%w %q", errUnknownGesture, raw)
	}
	return g, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ponto de entrada do servidor de gestos
func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg := config.ServerFromEnv()
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()

	zcfg := zap.NewProductionConfig()
	if *debug {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	log, err := zcfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewGestureServer(log).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("gesture server listening", zap.String("addr", cfg.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("listen", zap.Error(err))
	}
}
