package runner_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/require"
)

// step is one scripted completion: a raw Messages API response body or an error.
type step struct {
	body string
	err  error
}

// scriptedCompleter replays steps in order and snapshots every request.
type scriptedCompleter struct {
	t        *testing.T
	steps    []step
	requests [][]anthropic.MessageParam
	tools    [][]anthropic.ToolUnionParam
	fallback string
}

func (s *scriptedCompleter) Complete(_ context.Context, history []anthropic.MessageParam, tools []anthropic.ToolUnionParam) (*anthropic.Message, error) {
	s.requests = append(s.requests, append([]anthropic.MessageParam(nil), history...))
	s.tools = append(s.tools, tools)

	body := s.fallback
	if i := len(s.requests) - 1; i < len(s.steps) {
		if s.steps[i].err != nil {
			return nil, s.steps[i].err
		}
		body = s.steps[i].body
	}
	require.NotEmpty(s.t, body, "completer ran out of scripted steps")

	var msg anthropic.Message
	require.NoError(s.t, json.Unmarshal([]byte(body), &msg))
	return &msg, nil
}

func text(s string) string {
	b, _ := json.Marshal(map[string]any{"type": "text", "text": s})
	return string(b)
}

func toolUse(id, name string, input any) string {
	b, _ := json.Marshal(map[string]any{"type": "tool_use", "id": id, "name": name, "input": input})
	return string(b)
}

// reply builds an assistant message body from content blocks.
func reply(blocks ...string) string {
	stop := "end_turn"
	for _, b := range blocks {
		if strings.Contains(b, `"type":"tool_use"`) {
			stop = "tool_use"
		}
	}
	return fmt.Sprintf(`{
		"id": "msg_test",
		"type": "message",
		"role": "assistant",
		"model": "claude-test",
		"stop_reason": %q,
		"usage": {"input_tokens": 3, "output_tokens": 2},
		"content": [%s]
	}`, stop, strings.Join(blocks, ","))
}

// turn is a decoded view of one history entry.
type turn struct {
	Role    string  `json:"role"`
	Content []block `json:"content"`
}

type block struct {
	Type      string  `json:"type"`
	Text      string  `json:"text,omitempty"`
	ID        string  `json:"id,omitempty"`
	Name      string  `json:"name,omitempty"`
	ToolUseID string  `json:"tool_use_id,omitempty"`
	IsError   *bool   `json:"is_error,omitempty"`
	Content   []block `json:"content,omitempty"`
}

func (b block) resultText() string {
	var sb strings.Builder
	for _, c := range b.Content {
		sb.WriteString(c.Text)
	}
	return sb.String()
}

func decodeTurns(t *testing.T, msgs []anthropic.MessageParam) []turn {
	t.Helper()
	raw, err := json.Marshal(msgs)
	require.NoError(t, err)
	var out []turn
	require.NoError(t, json.Unmarshal(raw, &out), "history=%s", raw)
	return out
}

type recordingRenderer struct {
	texts []string
	tools []string
	errs  []error
}

func (r *recordingRenderer) AssistantText(s string)                 { r.texts = append(r.texts, s) }
func (r *recordingRenderer) ToolUse(name string, _ json.RawMessage) { r.tools = append(r.tools, name) }
func (r *recordingRenderer) Error(err error)                        { r.errs = append(r.errs, err) }

// lines is a LineReader over a fixed script. It reports io.EOF when exhausted
// unless end is set.
type lines struct {
	in      []string
	prompts int
	end     error
}

func (l *lines) ReadLine(prompt string) (string, error) {
	l.prompts++
	if len(l.in) == 0 {
		if l.end != nil {
			return "", l.end
		}
		return "", io.EOF
	}
	s := l.in[0]
	l.in = l.in[1:]
	return s, nil
}
