package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/surveyflow/surveyflow"
	"github.com/surveyflow/surveyflow/internal/logging"
	"github.com/surveyflow/surveyflow/internal/presentation/graph"
	"github.com/surveyflow/surveyflow/pkg/domain"
	"github.com/surveyflow/surveyflow/pkg/runner"
)

// GraphURI is the resource exposing the survey definition.
const GraphURI = "survey://graph"

// Survey is the part of *surveyflow.Survey the MCP server needs.
type Survey interface {
	Start(ctx context.Context, sessionID string) (*surveyflow.Status, error)
	Answer(ctx context.Context, sessionID, questionID, answer string) (*surveyflow.Status, error)
	Back(ctx context.Context, sessionID string) (*surveyflow.Status, error)
	Reset(ctx context.Context, sessionID string) (*surveyflow.Status, error)
	Status(ctx context.Context, sessionID string) (*surveyflow.Status, error)
	Summary(ctx context.Context, sessionID string) ([]surveyflow.SummaryItem, error)
	Graph() *domain.Graph
	Labels() map[string]string
	Label(ref string) string
}

// TurnResponse is what every session tool returns: the status plus the
// current question with its display text resolved.
type TurnResponse struct {
	Status *surveyflow.Status `json:"status"`
	Prompt *runner.Prompt     `json:"prompt,omitempty"`
}

// Server exposes a survey as an MCP server.
type Server struct {
	survey    Survey
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates a new MCP Server instance.
func NewServer(survey Survey, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		survey: survey,
		logger: logger,
		mcpServer: server.NewMCPServer("surveyflow-mcp", strings.TrimSpace(surveyflow.Version),
			server.WithToolCapabilities(true),
			server.WithResourceCapabilities(false, true),
			server.WithRecovery(),
			server.WithInstructions("Run a branching survey one answer at a time. "+
				"Call survey_start, show the prompt, then pass the respondent's reply to survey_answer until status is completed."),
		),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	httpServer := &http.Server{Addr: addr, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	sessionArg := mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier"))

	s.mcpServer.AddTool(mcp.NewTool("survey_start",
		mcp.WithDescription("Start a survey session, or return it unchanged if it already exists."),
		mcp.WithString("session_id", mcp.Description("Session identifier (generated when omitted)")),
	), s.handleStart)

	s.mcpServer.AddTool(mcp.NewTool("survey_answer",
		mcp.WithDescription("Answer the current question and move to the next one. Multi-select answers are comma separated option keys."),
		sessionArg,
		mcp.WithString("answer", mcp.Required(), mcp.Description("The answer: an option key, yes/no key, or free text")),
		mcp.WithString("question_id", mcp.Description("Question being answered (defaults to the current one)")),
	), s.handleAnswer)

	s.mcpServer.AddTool(mcp.NewTool("survey_status",
		mcp.WithDescription("Show the session state and current question without changing it."),
		sessionArg,
	), s.session(Survey.Status))

	s.mcpServer.AddTool(mcp.NewTool("survey_back",
		mcp.WithDescription("Go back to the previously shown question."),
		sessionArg,
	), s.session(Survey.Back))

	s.mcpServer.AddTool(mcp.NewTool("survey_reset",
		mcp.WithDescription("Clear every answer and restart the session."),
		sessionArg,
	), s.session(Survey.Reset))

	s.mcpServer.AddTool(mcp.NewTool("survey_summary",
		mcp.WithDescription("List the visited questions with their answers."),
		sessionArg,
	), s.handleSummary)

	s.mcpServer.AddTool(mcp.NewTool("survey_graph",
		mcp.WithDescription("Get the survey definition for introspection."),
		mcp.WithString("format", mcp.Description("json (default) or mermaid")),
	), s.handleGraph)
}

func (s *Server) handleStart(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := s.survey.Start(ctx, req.GetString("session_id", ""))
	return s.respond(st, err)
}

func (s *Server) handleAnswer(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := req.GetString("session_id", "")
	answer, err := runner.SanitizeInput(req.GetString("answer", ""))
	if err != nil {
		s.logger.Warn("MCP Answer: Input rejected", "err", err)
		return mcp.NewToolResultError(fmt.Sprintf("input rejected: %v", err)), nil
	}
	st, err := s.survey.Answer(ctx, sessionID, req.GetString("question_id", ""), answer)
	return s.respond(st, err)
}

func (s *Server) session(op func(Survey, context.Context, string) (*surveyflow.Status, error)) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		st, err := op(s.survey, ctx, req.GetString("session_id", ""))
		return s.respond(st, err)
	}
}

func (s *Server) handleSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := s.survey.Summary(ctx, req.GetString("session_id", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var sb strings.Builder
	for _, line := range runner.NewSummary(items, s.survey) {
		answer := line.Answer
		if !line.Answered {
			answer = "(skipped)"
		}
		fmt.Fprintf(&sb, "- %s: %s\n", line.Text, answer)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleGraph(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if req.GetString("format", "json") == "mermaid" {
		return mcp.NewToolResultText(graph.GenerateMermaid(s.survey.Graph(), nil)), nil
	}
	data, err := s.graphJSON()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// respond turns a session result into a tool result. Domain errors are
// reported to the model as tool errors, not protocol errors.
func (s *Server) respond(st *surveyflow.Status, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAnswer) {
			return mcp.NewToolResultError(fmt.Sprintf("%v; ask again", err)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}

	resp := TurnResponse{Status: st}
	if st.Current != nil {
		p := runner.NewPrompt(*st.Current, s.survey)
		resp.Prompt = &p
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}

type graphDocument struct {
	Start     string            `json:"start"`
	Questions []domain.Question `json:"questions"`
	Labels    map[string]string `json:"labels,omitempty"`
}

func (s *Server) graphJSON() ([]byte, error) {
	g := s.survey.Graph()
	return json.Marshal(graphDocument{
		Start:     g.StartID(),
		Questions: g.Questions(),
		Labels:    s.survey.Labels(),
	})
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(GraphURI, "Survey Definition",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := s.graphJSON()
		if err != nil {
			return nil, fmt.Errorf("failed to encode graph: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      GraphURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}
