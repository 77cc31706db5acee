package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/surveyflow/surveyflow"
	"github.com/surveyflow/surveyflow/internal/logging"
	"github.com/surveyflow/surveyflow/internal/presentation/graph"
	"github.com/surveyflow/surveyflow/pkg/domain"
	"github.com/surveyflow/surveyflow/pkg/runner"
)

//go:embed openapi.json
var rawSpec []byte

// maxBodySize caps request bodies before decoding.
const maxBodySize = 64 << 10

// Survey is the part of *surveyflow.Survey the server needs.
type Survey interface {
	Start(ctx context.Context, sessionID string) (*surveyflow.Status, error)
	Answer(ctx context.Context, sessionID, questionID, answer string) (*surveyflow.Status, error)
	Back(ctx context.Context, sessionID string) (*surveyflow.Status, error)
	Reset(ctx context.Context, sessionID string) (*surveyflow.Status, error)
	Resume(ctx context.Context, sessionID string) (*surveyflow.Status, error)
	Status(ctx context.Context, sessionID string) (*surveyflow.Status, error)
	Summary(ctx context.Context, sessionID string) ([]surveyflow.SummaryItem, error)
	Delete(ctx context.Context, sessionID string) error
	List(ctx context.Context) ([]string, error)
	Graph() *domain.Graph
	Labels() map[string]string
}

// Server serves one survey over REST.
type Server struct {
	Survey  Survey
	Streams *StreamManager
	spec    *openapi3.T
	logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// LoadSpec parses and validates the embedded OpenAPI document.
func LoadSpec(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI spec: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI spec: %w", err)
	}
	return doc, nil
}

// NewHandler creates the HTTP handler for survey.
func NewHandler(survey Survey, opts ...Option) (http.Handler, error) {
	spec, err := LoadSpec(context.Background())
	if err != nil {
		return nil, err
	}
	s := &Server{
		Survey:  survey,
		Streams: NewStreamManager(),
		spec:    spec,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/graph", s.GetGraph)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Post("/", s.StartSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Post("/answers", s.Answer)
			r.Post("/back", s.turn((Survey).Back))
			r.Post("/reset", s.turn((Survey).Reset))
			r.Post("/resume", s.turn((Survey).Resume))
			r.Get("/summary", s.Summary)
			r.Get("/events", s.SubscribeEvents)
		})
	})

	return enableCORS(r), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
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
    <title>surveyflow API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.json',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// StartRequest is the body of POST /sessions.
type StartRequest struct {
	SessionID string `json:"session_id,omitempty"`
}

// AnswerRequest is the body of POST /sessions/{id}/answers.
type AnswerRequest struct {
	QuestionID string `json:"question_id,omitempty"`
	Answer     string `json:"answer"`
}

// GraphResponse is the body of GET /graph.
type GraphResponse struct {
	Start     string            `json:"start"`
	Questions []domain.Question `json:"questions"`
	Labels    map[string]string `json:"labels,omitempty"`
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "surveyflow-http",
		"version":     strings.TrimSpace(surveyflow.Version),
		"api_version": s.spec.Info.Version,
	})
}

// GetGraph handles the GET /graph request. ?format=mermaid returns a flowchart.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	g := s.Survey.Graph()
	if r.URL.Query().Get("format") == "mermaid" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, graph.GenerateMermaid(g, nil))
		return
	}
	s.writeJSON(w, http.StatusOK, GraphResponse{
		Start:     g.StartID(),
		Questions: g.Questions(),
		Labels:    s.Survey.Labels(),
	})
}

// ListSessions handles the GET /sessions request.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Survey.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

// StartSession handles the POST /sessions request.
func (s *Server) StartSession(w http.ResponseWriter, r *http.Request) {
	var body StartRequest
	if err := s.decode(r, "StartRequest", &body, true); err != nil {
		s.writeError(w, err)
		return
	}

	id := body.SessionID
	if id == "" {
		id = uuid.NewString()
	}
	code := http.StatusCreated
	if _, err := s.Survey.Status(r.Context(), id); err == nil {
		code = http.StatusOK
	}

	st, err := s.Survey.Start(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.broadcast(st)
	s.writeJSON(w, code, st)
}

// GetSession handles the GET /sessions/{id} request.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	st, err := s.Survey.Status(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, st)
}

// DeleteSession handles the DELETE /sessions/{id} request.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Survey.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Answer handles the POST /sessions/{id}/answers request.
func (s *Server) Answer(w http.ResponseWriter, r *http.Request) {
	var body AnswerRequest
	if err := s.decode(r, "AnswerRequest", &body, false); err != nil {
		s.writeError(w, err)
		return
	}

	// Sanitize Input (Global Policy)
	answer, err := runner.SanitizeInput(body.Answer)
	if err != nil {
		s.logger.Warn("Answer: Input rejected", "err", err, "size", len(body.Answer))
		s.writeError(w, badRequest(err))
		return
	}

	st, err := s.Survey.Answer(r.Context(), chi.URLParam(r, "id"), body.QuestionID, answer)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.broadcast(st)
	s.writeJSON(w, http.StatusOK, st)
}

// turn adapts a session operation without a body into a handler.
func (s *Server) turn(op func(Survey, context.Context, string) (*surveyflow.Status, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := op(s.Survey, r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.broadcast(st)
		s.writeJSON(w, http.StatusOK, st)
	}
}

// Summary handles the GET /sessions/{id}/summary request.
func (s *Server) Summary(w http.ResponseWriter, r *http.Request) {
	items, err := s.Survey.Summary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if items == nil {
		items = []surveyflow.SummaryItem{}
	}
	s.writeJSON(w, http.StatusOK, items)
}

// SubscribeEvents handles the GET /sessions/{id}/events request (SSE).
// Every turn on the session pushes the new status.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	sessionID := chi.URLParam(r, "id")
	ch, cancel := s.Streams.Subscribe(sessionID)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()
	s.logger.Info("SSE: Subscribing to Session Updates", "session_id", sessionID)

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE Client Disconnected", "session_id", sessionID)
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

func (s *Server) broadcast(st *surveyflow.Status) {
	if bytes, err := json.Marshal(st); err == nil {
		s.Streams.Broadcast(st.SessionID, string(bytes))
	}
}

// decode validates the body against the named OpenAPI schema, then decodes it into v.
func (s *Server) decode(r *http.Request, schema string, v any, optional bool) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize+1))
	if err != nil {
		return badRequest(err)
	}
	if len(data) > maxBodySize {
		return badRequest(runner.ErrInputTooLarge)
	}
	if len(strings.TrimSpace(string(data))) == 0 && optional {
		return nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return badRequest(fmt.Errorf("invalid JSON: %w", err))
	}
	ref, ok := s.spec.Components.Schemas[schema]
	if !ok {
		return fmt.Errorf("schema %s not found", schema)
	}
	if err := ref.Value.VisitJSON(raw); err != nil {
		return badRequest(err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return badRequest(err)
	}
	return nil
}

type requestError struct{ err error }

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

func badRequest(err error) error {
	return &requestError{err: err}
}

// statusCode maps domain errors onto HTTP statuses.
func statusCode(err error) int {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr), errors.Is(err, domain.ErrEmptyID):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidAnswer):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrFlowComplete), errors.Is(err, domain.ErrNotCurrentQuestion):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := statusCode(err)
	if code == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	s.writeJSON(w, code, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
