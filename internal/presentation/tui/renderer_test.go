package tui

import (
	"bytes"
	"testing"

	"github.com/aretw0/gymnasion/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionMarkdown(t *testing.T) {
	sess := domain.NewSession("poet")
	sess.Append("I see a dark forest.")
	sess.Append("The wolf hunts in the moonlight.")
	sess.Banish("forest")
	sess.RecordQuote(domain.Quote{Text: "Hope is the thing with feathers", Author: "Emily Dickinson"})

	md := SessionMarkdown(sess)

	assert.Contains(t, md, "# Session `poet`")
	assert.Contains(t, md, "**Words written:** 11")
	assert.Contains(t, md, "**Banished:** forest")
	assert.Contains(t, md, "**Quotes shown:** 1")
	assert.Contains(t, md, "> The wolf hunts in the moonlight.")
}

func TestSessionMarkdown_Empty(t *testing.T) {
	md := SessionMarkdown(domain.NewSession("blank"))
	assert.Contains(t, md, "_Nothing written yet._")
}

func TestNewRenderer(t *testing.T) {
	render, err := NewRenderer()
	require.NoError(t, err)

	out, err := render("# Title\n\nsome *text*")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|___/")
	assert.NotEmpty(t, Prompt(&buf))
}
