package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/gymnasion"
	"github.com/aretw0/gymnasion/internal/logging"
	"github.com/aretw0/gymnasion/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// SessionCookie names the cookie that carries a browser's session id.
const SessionCookie = "gymnasion_session"

// sessionCookieMaxAge keeps the cookie for a month of idle time.
const sessionCookieMaxAge = 30 * 24 * 60 * 60

//go:embed index.html
var indexHTML []byte

// Engine is the part of the gymnasion engine the HTTP surface drives.
type Engine interface {
	ProcessTurn(ctx context.Context, sessionID, text, mode string) (domain.TurnResult, error)
	Status(ctx context.Context, sessionID string) (domain.Status, error)
	Reset(ctx context.Context, sessionID string) error
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the logger used for request logs and handler errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics mounts h at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithSecureCookie marks the session cookie Secure, for deployments behind TLS.
func WithSecureCookie(secure bool) Option {
	return func(s *Server) {
		s.secureCookie = secure
	}
}

// Server serves the web form and its JSON API.
type Server struct {
	Engine  Engine
	Streams *StreamManager

	logger       *slog.Logger
	metrics      http.Handler
	secureCookie bool
}

type analyzeRequest struct {
	Text string `json:"text"`
	Mode string `json:"mode"`
}

type analyzeResponse struct {
	Response      string   `json:"response"`
	BanishedWords []string `json:"banished_words"`
	ToImitate     string   `json:"to_imitate"`
	PoemLength    int      `json:"poem_length"`
	CurrentMode   string   `json:"current_mode"`
}

type promptResponse struct {
	Response string `json:"response"`
}

type statusResponse struct {
	BanishedWords []string `json:"banished_words"`
	ToImitate     string   `json:"to_imitate"`
	PoemLength    int      `json:"poem_length"`
	Boredom       int      `json:"boredom"`
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{
		Engine:  engine,
		Streams: NewStreamManager(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/", s.Index)
	r.Post("/analyze", s.Analyze)
	r.Post("/reset", s.Reset)
	r.Get("/status", s.Status)
	r.Get("/events", s.SubscribeEvents)
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// Index serves the single-page form.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	s.sessionID(w, r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

// Analyze handles POST /analyze.
func (s *Server) Analyze(w http.ResponseWriter, r *http.Request) {
	var body analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Analyze: Invalid request body", "err", err)
		return
	}

	sessionID := s.sessionID(w, r)
	text := strings.TrimSpace(body.Text)
	if text == "" {
		writeJSON(w, s.logger, promptResponse{Response: domain.EmptyInputPrompt})
		return
	}

	var before *domain.Status
	if s.Streams.HasSubscribers(sessionID) {
		if st, err := s.Engine.Status(r.Context(), sessionID); err == nil {
			before = &st
		}
	}

	res, err := s.Engine.ProcessTurn(r.Context(), sessionID, text, body.Mode)
	if errors.Is(err, gymnasion.ErrInvalidInput) {
		http.Error(w, fmt.Sprintf("Invalid input: %v", err), http.StatusBadRequest)
		s.logger.Warn("Analyze: Input rejected", "err", err, "size", len(body.Text))
		return
	}
	if err != nil {
		http.Error(w, "Analyze error", http.StatusInternalServerError)
		s.logger.Error("Analyze failed", "err", err, "session_id", sessionID)
		return
	}

	if before != nil {
		s.broadcastDiff(sessionID, before, res.Status)
	}

	writeJSON(w, s.logger, analyzeResponse{
		Response:      res.Response,
		BanishedWords: res.Status.BanishedWords,
		ToImitate:     res.Status.ImitationTarget,
		PoemLength:    res.Status.WordCount,
		CurrentMode:   string(res.Mode),
	})
}

// Reset handles POST /reset.
func (s *Server) Reset(w http.ResponseWriter, r *http.Request) {
	sessionID := s.sessionID(w, r)

	var before *domain.Status
	if s.Streams.HasSubscribers(sessionID) {
		if st, err := s.Engine.Status(r.Context(), sessionID); err == nil {
			before = &st
		}
	}

	if err := s.Engine.Reset(r.Context(), sessionID); err != nil {
		http.Error(w, "Reset error", http.StatusInternalServerError)
		s.logger.Error("Reset failed", "err", err, "session_id", sessionID)
		return
	}

	if before != nil {
		s.broadcastDiff(sessionID, before, domain.NewSession(sessionID).Status())
	}
	writeJSON(w, s.logger, map[string]string{"status": "reset"})
}

// Status handles GET /status.
func (s *Server) Status(w http.ResponseWriter, r *http.Request) {
	sessionID := s.sessionID(w, r)
	st, err := s.Engine.Status(r.Context(), sessionID)
	if err != nil {
		http.Error(w, "Status error", http.StatusInternalServerError)
		s.logger.Error("Status failed", "err", err, "session_id", sessionID)
		return
	}
	writeJSON(w, s.logger, statusResponse{
		BanishedWords: st.BanishedWords,
		ToImitate:     st.ImitationTarget,
		PoemLength:    st.WordCount,
		Boredom:       st.Boredom,
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	modes := make([]string, 0, len(domain.Modes()))
	for _, m := range domain.Modes() {
		modes = append(modes, string(m))
	}
	writeJSON(w, s.logger, map[string]any{
		"app":          "gymnasion-http",
		"version":      strings.TrimSpace(gymnasion.Version),
		"modes":        modes,
		"default_mode": string(domain.DefaultMode),
	})
}

// SubscribeEvents handles GET /events: a server-sent stream of status diffs
// for the caller's session.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	sessionID := s.sessionID(w, r)
	ch, cancel := s.Streams.Subscribe(sessionID)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE client disconnected", "session_id", sessionID)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) broadcastDiff(sessionID string, before *domain.Status, after domain.Status) {
	diff := domain.Diff(before, after)
	if diff.Empty() {
		return
	}
	payload, err := json.Marshal(diff)
	if err != nil {
		s.logger.Error("status diff encode failed", "err", err)
		return
	}
	s.Streams.Broadcast(sessionID, string(payload))
}

// sessionID returns the caller's session id, issuing a fresh cookie when the
// request carries none (or one that is not a uuid).
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   sessionCookieMaxAge,
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}
