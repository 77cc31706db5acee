package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surveyflow/surveyflow"
	"github.com/surveyflow/surveyflow/pkg/runner"
	"github.com/surveyflow/surveyflow/pkg/samples"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	survey, err := surveyflow.New("", surveyflow.WithGraph(samples.CropSurvey(), samples.Labels()))
	require.NoError(t, err)
	return NewServer(survey, nil)
}

func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func turn(t *testing.T, r *mcp.CallToolResult) TurnResponse {
	t.Helper()
	require.False(t, r.IsError, resultText(r))
	var resp TurnResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(r)), &resp))
	return resp
}

func TestServer_Conversation(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	r, err := s.handleStart(ctx, makeReq(map[string]interface{}{"session_id": "c1"}))
	require.NoError(t, err)
	resp := turn(t, r)
	require.NotNil(t, resp.Prompt)
	assert.Equal(t, "Do you grow crops?", resp.Prompt.Text)
	assert.Equal(t, []runner.Choice{{Key: "yes", Label: "Yes"}, {Key: "no", Label: "No"}}, resp.Prompt.Choices)

	r, err = s.handleAnswer(ctx, makeReq(map[string]interface{}{"session_id": "c1", "answer": "yes"}))
	require.NoError(t, err)
	resp = turn(t, r)
	assert.Equal(t, "q_crop", resp.Status.Current.ID)
	assert.Contains(t, resp.Prompt.Choices, runner.Choice{Key: "maize", Label: "Maize"})

	r, err = s.handleAnswer(ctx, makeReq(map[string]interface{}{"session_id": "c1", "answer": "potato"}))
	require.NoError(t, err)
	assert.True(t, r.IsError)
	assert.Contains(t, resultText(r), "ask again")

	r, err = s.session(Survey.Back)(ctx, makeReq(map[string]interface{}{"session_id": "c1"}))
	require.NoError(t, err)
	assert.Equal(t, "q_start", turn(t, r).Status.Current.ID)

	r, err = s.session(Survey.Status)(ctx, makeReq(map[string]interface{}{"session_id": "c1"}))
	require.NoError(t, err)
	assert.Equal(t, "yes", turn(t, r).Status.Answers["q_start"])

	r, err = s.handleSummary(ctx, makeReq(map[string]interface{}{"session_id": "c1"}))
	require.NoError(t, err)
	assert.Contains(t, resultText(r), "- Do you grow crops?: yes")

	r, err = s.session(Survey.Reset)(ctx, makeReq(map[string]interface{}{"session_id": "c1"}))
	require.NoError(t, err)
	assert.Empty(t, turn(t, r).Status.Answers)
}

func TestServer_UnknownSession(t *testing.T) {
	s := newTestServer(t)
	r, err := s.session(Survey.Status)(context.Background(), makeReq(map[string]interface{}{"session_id": "nope"}))
	require.NoError(t, err)
	assert.True(t, r.IsError)
	assert.Contains(t, resultText(r), "session not found")
}

func TestServer_Graph(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	r, err := s.handleGraph(ctx, makeReq(map[string]interface{}{}))
	require.NoError(t, err)
	var doc graphDocument
	require.NoError(t, json.Unmarshal([]byte(resultText(r)), &doc))
	assert.Equal(t, "q_start", doc.Start)
	assert.Equal(t, "Maize", doc.Labels["opt_maize"])

	r, err = s.handleGraph(ctx, makeReq(map[string]interface{}{"format": "mermaid"}))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resultText(r), "graph TD"))
}
