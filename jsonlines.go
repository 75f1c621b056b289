package gymnasion

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/gymnasion/pkg/domain"
)

// JSONRequest is one line of the JSON-lines protocol. A line may also be a bare
// JSON string or plain text, which is taken as Text.
type JSONRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Text      string `json:"text"`
	Mode      string `json:"mode,omitempty"`

	// Command is "turn" (default), "status" or "reset".
	Command string `json:"command,omitempty"`
}

// JSONReply answers one request line.
type JSONReply struct {
	SessionID string         `json:"session_id"`
	Response  string         `json:"response,omitempty"`
	Mode      domain.Mode    `json:"mode,omitempty"`
	Status    *domain.Status `json:"status,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// JSONHandler serves the engine over JSON-lines for programmatic hosts.
type JSONHandler struct {
	Reader io.Reader
	Writer io.Writer

	// SessionID and Mode apply to requests that leave them empty.
	SessionID string
	Mode      domain.Mode
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer, sessionID string) *JSONHandler {
	return &JSONHandler{Reader: r, Writer: w, SessionID: sessionID, Mode: domain.DefaultMode}
}

// Serve answers request lines until EOF. Request errors are reported in the
// reply's error field; only IO and store failures end the loop.
func (h *JSONHandler) Serve(ctx context.Context, engine *Engine) error {
	scanner := bufio.NewScanner(h.Reader)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	enc := json.NewEncoder(h.Writer)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		reply, err := h.handle(ctx, engine, parseJSONRequest(line))
		if err != nil {
			return err
		}
		if err := enc.Encode(reply); err != nil {
			return fmt.Errorf("write reply: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("input error: %w", err)
	}
	return nil
}

func parseJSONRequest(line string) JSONRequest {
	var req JSONRequest
	if strings.HasPrefix(line, "{") {
		if err := json.Unmarshal([]byte(line), &req); err == nil {
			return req
		}
	}
	// Try to unquote if it's a JSON string
	var text string
	if err := json.Unmarshal([]byte(line), &text); err == nil {
		return JSONRequest{Text: text}
	}
	return JSONRequest{Text: line}
}

func (h *JSONHandler) handle(ctx context.Context, engine *Engine, req JSONRequest) (JSONReply, error) {
	if req.SessionID == "" {
		req.SessionID = h.SessionID
	}
	if req.Mode == "" {
		req.Mode = string(h.Mode)
	}
	reply := JSONReply{SessionID: req.SessionID}

	var err error
	switch req.Command {
	case "", "turn":
		var res domain.TurnResult
		res, err = engine.ProcessTurn(ctx, req.SessionID, req.Text, req.Mode)
		if err == nil {
			reply.Response, reply.Mode, reply.Status = res.Response, res.Mode, &res.Status
		}
	case "status":
		var st domain.Status
		st, err = engine.Status(ctx, req.SessionID)
		reply.Status = &st
	case "reset":
		err = engine.Reset(ctx, req.SessionID)
		if err == nil {
			st := domain.NewSession(req.SessionID).Status()
			reply.Status = &st
		}
	default:
		err = fmt.Errorf("%w: unknown command %q", ErrInvalidInput, req.Command)
	}

	if errors.Is(err, ErrInvalidInput) || errors.Is(err, domain.ErrInvalidSessionID) {
		return JSONReply{SessionID: req.SessionID, Error: err.Error()}, nil
	}
	if err != nil {
		return JSONReply{}, err
	}
	return reply, nil
}
