package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/petasbytes/code-agent/internal/ui"
)

func TestRun_Version(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"-version"}, strings.NewReader(""), &out, &errOut)
	assert.Equal(t, 0, code)
	assert.Equal(t, BUILD_VERSION+"\n", out.String())
}

func TestRun_Help(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"-h"}, strings.NewReader(""), &out, &errOut)
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "USAGE:")
	assert.Contains(t, out.String(), "-max-tool-rounds")
}

func TestRun_MissingAPIKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	var out, errOut bytes.Buffer
	code := run(nil, strings.NewReader("hello\n"), &out, &errOut)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "ANTHROPIC_API_KEY")
}

func TestRun_BadFlag(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"-bogus"}, strings.NewReader(""), &out, &errOut)
	assert.Equal(t, 2, code)
}

func TestRun_PipedSession(t *testing.T) {
	var bodies [][]byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		bodies = append(bodies, b)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "msg_1", "type": "message", "role": "assistant", "model": "claude-test",
			"stop_reason": "end_turn", "usage": {"input_tokens": 1, "output_tokens": 1},
			"content": [{"type": "text", "text": "Hi from the fake server"}]
		}`)
	}))
	defer srv.Close()

	events := filepath.Join(t.TempDir(), "events.jsonl")
	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	t.Setenv("ANTHROPIC_BASE_URL", srv.URL)
	t.Setenv("AGT_MODEL", "claude-test")

	var out, errOut bytes.Buffer
	code := run([]string{"-no-color", "-events", events}, strings.NewReader("hello\n\n"), &out, &errOut)
	require.Equal(t, 0, code, "stderr=%s", errOut.String())

	assert.Contains(t, out.String(), "Claude Agent started")
	assert.Contains(t, out.String(), "You: ")
	assert.Contains(t, out.String(), "\nClaude: Hi from the fake server\n")

	require.Len(t, bodies, 1)
	var req struct {
		Model string `json:"model"`
	}
	require.NoError(t, json.Unmarshal(bodies[0], &req))
	assert.Equal(t, "claude-test", req.Model)

	data, err := os.ReadFile(events)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"event":"user_input"`)
	assert.Contains(t, string(data), `"event":"completion"`)
	assert.NotContains(t, string(data), "hello")
}

type closeRecorder struct{ closed int }

func (c *closeRecorder) Close() error {
	c.closed++
	return nil
}

func TestWatchSignals_RestoresTerminalBeforeExit(t *testing.T) {
	var out bytes.Buffer
	render := ui.NewRenderer(&out, io.Discard, true)
	in := &closeRecorder{}

	sigch := make(chan os.Signal, 1)
	sigch <- syscall.SIGTERM

	code := -1
	var closedAtExit int
	watchSignals(sigch, render, in, zap.NewNop(), func(c int) {
		code = c
		closedAtExit = in.closed
	})

	assert.Equal(t, 0, code)
	assert.Equal(t, 1, closedAtExit, "line reader must be closed before exiting")
	assert.Equal(t, "\nGoodbye!\n", out.String())
}
