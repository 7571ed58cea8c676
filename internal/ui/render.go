// Package ui holds the terminal side of the agent: prompt input and styled output.
package ui

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/muesli/termenv"
	"github.com/tidwall/gjson"
)

// Renderer prints the exchange to a terminal.
type Renderer struct {
	out    *termenv.Output
	errOut *termenv.Output
}

// NewRenderer writes conversation output to stdout and errors to stderr.
// With noColor set no escape sequences are emitted.
func NewRenderer(stdout, stderr io.Writer, noColor bool) *Renderer {
	var opts []termenv.OutputOption
	if noColor {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	return &Renderer{
		out:    termenv.NewOutput(stdout, opts...),
		errOut: termenv.NewOutput(stderr, opts...),
	}
}

func (r *Renderer) Banner() {
	fmt.Fprintln(r.out, "Claude Agent started. Type your messages below (Ctrl+C to exit):")
}

// AssistantText prints one text block from the model.
func (r *Renderer) AssistantText(text string) {
	label := r.out.String("Claude:").Foreground(r.out.Color("12")).Bold().String()
	fmt.Fprintf(r.out, "\n%s %s\n", label, text)
}

// ToolUse announces a tool call, adding the path argument when there is one.
func (r *Renderer) ToolUse(name string, input json.RawMessage) {
	notice := "[Using tool: " + name
	if p := gjson.GetBytes(input, "path"); p.Exists() && p.String() != "" {
		notice += " path=" + p.String()
	}
	notice += "]"
	fmt.Fprintf(r.out, "\n%s\n", r.out.String(notice).Foreground(r.out.Color("8")).String())
}

func (r *Renderer) Error(err error) {
	msg := r.errOut.String("Error:").Foreground(r.errOut.Color("9")).String()
	fmt.Fprintf(r.errOut, "%s %v\n", msg, err)
}

// Farewell is printed when the session ends by interrupt.
func (r *Renderer) Farewell() {
	fmt.Fprintln(r.out, "\nGoodbye!")
}
