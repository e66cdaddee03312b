// Package http serves the chat endpoint and its operational routes.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/skylark"
	"github.com/aretw0/skylark/pkg/conversation"
	"github.com/aretw0/skylark/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/mitchellh/mapstructure"
)

// MaxBodySize bounds the chat request body.
const MaxBodySize = 4 << 20

// Turns runs chat turns. conversation.Handler satisfies it.
type Turns interface {
	Run(ctx context.Context, history []domain.Message, sink conversation.Sink) error
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	ID       string           `json:"id,omitempty" mapstructure:"id"`
	Messages []domain.Message `json:"messages" mapstructure:"messages"`
}

// Server holds the HTTP handlers.
type Server struct {
	Turns          Turns
	Logger         *slog.Logger
	RequestTimeout time.Duration
	Metrics        http.Handler
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithRequestTimeout bounds each chat turn. Zero disables the bound.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.RequestTimeout = d
	}
}

// WithMetricsHandler mounts h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// NewHandler creates the HTTP handler for turns.
func NewHandler(turns Turns, opts ...Option) http.Handler {
	s := &Server{
		Turns:          turns,
		Logger:         slog.Default(),
		RequestTimeout: domain.DefaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Post("/api/chat", s.Chat)
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Expose-Headers", UIMessageStreamHeader)
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Skylark API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// Chat handles POST /api/chat. The body is validated against the ChatRequest
// schema before the model is involved; the turn is then streamed back.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeChat(r)
	if err != nil {
		s.Logger.Warn("Chat: Invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	stream, err := NewStreamWriter(w)
	if err != nil {
		s.Logger.Error("Chat: Streaming not supported")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	ctx := r.Context()
	if s.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.RequestTimeout)
		defer cancel()
	}

	start := time.Now()
	err = s.Turns.Run(ctx, req.Messages, stream)
	switch {
	case err == nil:
	case !stream.Started() && errors.Is(err, domain.ErrInvalidHistory):
		s.Logger.Warn("Chat: History rejected", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case !stream.Started():
		s.Logger.Error("Chat: Turn failed", "error", err)
		stream.Send(conversation.Chunk{Type: conversation.ChunkError, ErrorText: err.Error()})
	default:
		s.Logger.Error("Chat: Turn failed", "error", err, "duration", time.Since(start))
	}

	if err := stream.Close(); err != nil {
		s.Logger.Debug("Chat: Client went away", "error", err)
	}
}

func (s *Server) decodeChat(r *http.Request) (*ChatRequest, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) > MaxBodySize {
		return nil, fmt.Errorf("body exceeds %d bytes", MaxBodySize)
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	sch, err := schema("ChatRequest")
	if err != nil {
		return nil, err
	}
	if err := sch.VisitJSON(raw); err != nil {
		return nil, fmt.Errorf("invalid chat request: %s", firstLine(err.Error()))
	}

	var req ChatRequest
	if err := mapstructure.Decode(raw, &req); err != nil {
		return nil, fmt.Errorf("decode chat request: %w", err)
	}
	return &req, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok"}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	resp := map[string]string{
		"app":         "skylark-http",
		"version":     strings.TrimSpace(skylark.Version),
		"api_version": apiVersion,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
