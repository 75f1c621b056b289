package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/gymnasion"
	"github.com/aretw0/gymnasion/pkg/domain"
	"github.com/aretw0/gymnasion/pkg/strategy"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCallToolRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func TestNewServer_RegistersTools(t *testing.T) {
	s := NewServer(gymnasion.New(), nil)

	ctx := context.Background()
	s.MCPServer().HandleMessage(ctx, json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`))
	reply := s.MCPServer().HandleMessage(ctx, json.RawMessage(`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`))

	payload, err := json.Marshal(reply)
	require.NoError(t, err)
	for _, name := range []string{"analyze_text", "reset_session", "session_status"} {
		assert.Contains(t, string(payload), `"name":"`+name+`"`)
	}
}

func TestAnalyzeText(t *testing.T) {
	s := NewServer(gymnasion.New(gymnasion.WithSeed(8)), nil)
	ctx := context.Background()

	result, err := s.handleAnalyze(ctx, newCallToolRequest("analyze_text", map[string]any{
		"session_id": "poet",
		"text":       "The wolf hunts in the moonlight.",
		"mode":       "elaboration",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	structured, ok := result.StructuredContent.(AnalyzeResult)
	require.True(t, ok, "got %T", result.StructuredContent)
	assert.NotEmpty(t, structured.Response)
	assert.Equal(t, "elaboration", structured.Mode)
	assert.Equal(t, 6, structured.Status.WordCount)

	result, err = s.handleStatus(ctx, newCallToolRequest("session_status", map[string]any{"session_id": "poet"}))
	require.NoError(t, err)
	status, ok := result.StructuredContent.(StatusResult)
	require.True(t, ok)
	assert.Equal(t, "poet", status.SessionID)
	assert.Equal(t, 6, status.Status.WordCount)
}

func TestAnalyzeText_DefaultSession(t *testing.T) {
	engine := gymnasion.New()
	s := NewServer(engine, nil)

	_, err := s.handleAnalyze(context.Background(), newCallToolRequest("analyze_text", map[string]any{
		"text": "one two",
	}))
	require.NoError(t, err)

	st, err := engine.Status(context.Background(), DefaultSessionID)
	require.NoError(t, err)
	assert.Equal(t, 2, st.WordCount)
}

func TestAnalyzeText_ErrorsBecomeToolErrors(t *testing.T) {
	s := NewServer(gymnasion.New(), nil)

	result, err := s.handleAnalyze(context.Background(), newCallToolRequest("analyze_text", map[string]any{
		"session_id": "../escape",
		"text":       "hello",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestResetSession(t *testing.T) {
	engine := gymnasion.New()
	s := NewServer(engine, nil)
	ctx := context.Background()

	_, err := engine.ProcessTurn(ctx, "poet", "a few words here", "mixed")
	require.NoError(t, err)

	result, err := s.handleReset(ctx, newCallToolRequest("reset_session", map[string]any{"session_id": "poet"}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	status, ok := result.StructuredContent.(StatusResult)
	require.True(t, ok)
	assert.Equal(t, domain.NewSession("poet").Status(), status.Status)
}

func TestModes(t *testing.T) {
	s := NewServer(gymnasion.New(), nil)

	modes := s.Modes()
	require.Len(t, modes, len(domain.Modes()))
	assert.Equal(t, string(domain.ModeMixed), modes[0].Mode)
	assert.Len(t, modes[0].Strategies, len(strategy.Default().Names()))

	payload, err := json.Marshal(modes)
	require.NoError(t, err)
	assert.Contains(t, string(payload), strategy.NameBanishedCheck)
}
