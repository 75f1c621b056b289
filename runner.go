package gymnasion

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/gymnasion/pkg/domain"
)

// Runner drives an interactive conversation with the engine over plain IO.
// This allows for easy testing and integration with different frontends (CLI, TUI, etc).
//
// Besides free text it understands a few commands:
//
//	:mode NAME   switch mode (see domain.Modes)
//	:status      print the session status
//	:reset       start the session over
//	exit, quit   leave
type Runner struct {
	Input     io.Reader
	Output    io.Writer
	SessionID string
	Mode      domain.Mode
	Headless  bool
	Renderer  ContentRenderer

	// Prompt is written before each read unless Headless. Defaults to "> ".
	Prompt string
}

// ContentRenderer transforms a response before it is written.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a Runner for one session in the default mode.
// Input and Output must be set before Run.
func NewRunner(sessionID string) *Runner {
	return &Runner{
		SessionID: sessionID,
		Mode:      domain.DefaultMode,
	}
}

// Run reads lines until EOF or an exit command, answering each one.
func (r *Runner) Run(ctx context.Context, engine *Engine) error {
	if r.Input == nil {
		return errors.New("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return errors.New("output writer must be set (use os.Stdout)")
	}
	if r.Mode == "" {
		r.Mode = domain.DefaultMode
	}
	prompt := r.Prompt
	if prompt == "" {
		prompt = "> "
	}

	scanner := bufio.NewScanner(r.Input)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	if !r.Headless {
		fmt.Fprintf(r.Output, "--- Gymnasion (%s mode) ---\n", r.Mode)
		fmt.Fprintln(r.Output, "Write a line. Commands: :mode NAME, :status, :reset, exit")
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !r.Headless {
			fmt.Fprint(r.Output, prompt)
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("input error: %w", err)
			}
			return nil
		}

		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "exit" || trimmed == "quit":
			if !r.Headless {
				fmt.Fprintln(r.Output, "Bye!")
			}
			return nil
		case isCommand(trimmed):
			if err := r.command(ctx, engine, trimmed); err != nil {
				return err
			}
			continue
		}

		res, err := engine.ProcessTurn(ctx, r.SessionID, line, string(r.Mode))
		if errors.Is(err, ErrInvalidInput) {
			fmt.Fprintf(r.Output, "! %v\n", err)
			continue
		}
		if err != nil {
			return fmt.Errorf("turn error: %w", err)
		}
		r.print(res.Response)
	}
}

// isCommand reports whether line is one of :mode, :status or :reset.
// Any other line, colon or not, is writing.
func isCommand(line string) bool {
	rest, ok := strings.CutPrefix(line, ":")
	if !ok {
		return false
	}
	name, _, _ := strings.Cut(rest, " ")
	switch name {
	case "mode", "status", "reset":
		return true
	}
	return false
}

func (r *Runner) command(ctx context.Context, engine *Engine, line string) error {
	name, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	switch name {
	case "mode":
		m, ok := domain.ParseMode(arg)
		if !ok {
			fmt.Fprintf(r.Output, "! unknown mode %q\n", strings.TrimSpace(arg))
			return nil
		}
		r.Mode = m
		fmt.Fprintf(r.Output, "mode: %s\n", m)
	case "status":
		st, err := engine.Status(ctx, r.SessionID)
		if err != nil {
			return fmt.Errorf("status error: %w", err)
		}
		r.print(FormatStatus(st))
	case "reset":
		if err := engine.Reset(ctx, r.SessionID); err != nil {
			return fmt.Errorf("reset error: %w", err)
		}
		fmt.Fprintln(r.Output, "session reset")
	}
	return nil
}

func (r *Runner) print(msg string) {
	out := msg
	if r.Renderer != nil {
		if rendered, err := r.Renderer(msg); err == nil {
			out = rendered
		}
	}
	fmt.Fprintln(r.Output, strings.TrimSpace(out))
}

// FormatStatus renders a status as a short markdown list.
func FormatStatus(st domain.Status) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- **Words written:** %d\n", st.WordCount)
	fmt.Fprintf(&b, "- **Boredom:** %d\n", st.Boredom)
	if len(st.BanishedWords) > 0 {
		fmt.Fprintf(&b, "- **Banished:** %s\n", strings.Join(st.BanishedWords, ", "))
	} else {
		b.WriteString("- **Banished:** none\n")
	}
	if st.ImitationTarget != "" {
		fmt.Fprintf(&b, "- **Imitating:** %s\n", st.ImitationTarget)
	}
	return b.String()
}
