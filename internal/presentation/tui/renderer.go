package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Renderer prints markdown reports, styled with glamour on terminals and
// as raw markdown when output is piped.
type Renderer struct {
	out    io.Writer
	render func(string) (string, error)
}

// NewRenderer returns a renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	r := &Renderer{out: w}
	if !IsTerminal(w) {
		return r
	}

	gr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(100),
	)
	if err == nil {
		r.render = gr.Render
	}
	return r
}

// NewPlainRenderer returns a renderer that never styles its output.
func NewPlainRenderer(w io.Writer) *Renderer {
	return &Renderer{out: w}
}

// Styled reports whether output goes through glamour.
func (r *Renderer) Styled() bool {
	return r.render != nil
}

// Print writes the markdown document.
func (r *Renderer) Print(markdown string) error {
	if r.render != nil {
		styled, err := r.render(markdown)
		if err == nil {
			_, err = io.WriteString(r.out, styled)
			return err
		}
	}
	_, err := fmt.Fprint(r.out, markdown)
	return err
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
