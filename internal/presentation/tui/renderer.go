package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/gymnasion"
	"github.com/aretw0/gymnasion/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return nil, fmt.Errorf("init markdown renderer: %w", err)
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}

// SessionMarkdown summarizes a stored session: its status and the poem so far.
func SessionMarkdown(sess *domain.Session) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Session `%s`\n\n", sess.ID)
	fmt.Fprintf(&b, "_Started %s, last turn %s_\n\n",
		sess.CreatedAt.Format("2006-01-02 15:04"),
		sess.UpdatedAt.Format("2006-01-02 15:04"))

	b.WriteString("## Status\n\n")
	b.WriteString(gymnasion.FormatStatus(sess.Status()))
	if n := len(sess.UsedQuotes); n > 0 {
		fmt.Fprintf(&b, "- **Quotes shown:** %d\n", n)
	}

	b.WriteString("\n## Poem\n\n")
	if len(sess.Transcript) == 0 {
		b.WriteString("_Nothing written yet._\n")
		return b.String()
	}
	for _, line := range sess.Transcript {
		fmt.Fprintf(&b, "> %s\n>\n", line)
	}
	return b.String()
}
