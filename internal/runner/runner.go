package runner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/petasbytes/code-agent/internal/metrics"
	"github.com/petasbytes/code-agent/internal/telemetry"
	"github.com/petasbytes/code-agent/memory"
	"github.com/petasbytes/code-agent/tools"
)

// DefaultMaxToolRounds bounds the automatic resubmissions for one user input
// when Options.MaxToolRounds is zero.
const DefaultMaxToolRounds = 50

// ErrToolRoundLimit is returned by Submit when the model keeps calling tools
// past the configured number of rounds.
var ErrToolRoundLimit = errors.New("tool round limit reached")

// Completer turns a history plus tool schemas into one assistant message.
type Completer interface {
	Complete(ctx context.Context, history []anthropic.MessageParam, tools []anthropic.ToolUnionParam) (*anthropic.Message, error)
}

// Renderer shows the exchange to the human.
type Renderer interface {
	AssistantText(text string)
	ToolUse(name string, input json.RawMessage)
	Error(err error)
}

// LineReader supplies one line of user input per call; io.EOF ends the session.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

type Options struct {
	// MaxToolRounds caps automatic resubmissions per user input.
	// Zero means DefaultMaxToolRounds; negative means unbounded.
	MaxToolRounds int
	Prompt        string
	Logger        *zap.Logger
	Events        *telemetry.Recorder
	Renderer      Renderer
}

// Runner owns the conversation history and drives request/response/tool cycles.
type Runner struct {
	client        Completer
	exec          *Executor
	toolParams    []anthropic.ToolUnionParam
	history       memory.Conversation
	maxToolRounds int
	prompt        string
	log           *zap.Logger
	events        *telemetry.Recorder
	render        Renderer
}

func New(client Completer, registry *tools.Registry, opts Options) *Runner {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Renderer == nil {
		opts.Renderer = nopRenderer{}
	}
	if opts.MaxToolRounds == 0 {
		opts.MaxToolRounds = DefaultMaxToolRounds
	}
	if opts.Prompt == "" {
		opts.Prompt = "You: "
	}
	return &Runner{
		client:        client,
		exec:          NewExecutor(registry, opts.Logger, opts.Events),
		toolParams:    toolParams(registry.Definitions()),
		maxToolRounds: opts.MaxToolRounds,
		prompt:        opts.Prompt,
		log:           opts.Logger,
		events:        opts.Events,
		render:        opts.Renderer,
	}
}

func toolParams(defs []tools.Definition) []anthropic.ToolUnionParam {
	return lo.Map(defs, func(d tools.Definition, _ int) anthropic.ToolUnionParam {
		return anthropic.ToolUnionParam{OfTool: &anthropic.ToolParam{
			Name:        d.Name,
			Description: anthropic.String(d.Description),
			InputSchema: d.InputSchema,
		}}
	})
}

// History returns the conversation so far, oldest first.
func (r *Runner) History() []anthropic.MessageParam { return r.history.Messages() }

// Run reads user lines until EOF, submitting each non-blank one. A failed
// exchange is logged and reported, and the loop waits for the next line.
// Errors from the reader other than io.EOF are returned as is.
func (r *Runner) Run(ctx context.Context, in LineReader) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		line, err := in.ReadLine(r.prompt)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := r.Submit(ctx, line); err != nil {
			r.log.Error("exchange failed", zap.Error(err), zap.Int("history_len", r.history.Len()))
			r.render.Error(err)
		}
	}
}

// Submit appends text as a user turn and runs completion rounds until the
// model replies without tool calls. Each round's tool results are appended as
// one user turn before the next request.
func (r *Runner) Submit(ctx context.Context, text string) error {
	ctx = telemetry.WithTurnID(ctx, telemetry.NewTurnID())

	st := metrics.Measure(text)
	r.events.Emit(ctx, "user_input",
		zap.Int("bytes", st.Bytes),
		zap.Int("runes", st.Runes),
		zap.Int("words", st.Words),
		zap.Int("lines", st.Lines),
	)
	r.history.Append(anthropic.NewUserMessage(anthropic.NewTextBlock(text)))

	for round := 0; ; round++ {
		if r.maxToolRounds > 0 && round > r.maxToolRounds {
			return fmt.Errorf("%w: model still calling tools after %d rounds", ErrToolRoundLimit, r.maxToolRounds)
		}

		msg, err := r.complete(ctx, round)
		if err != nil {
			return err
		}
		r.history.Append(msg.ToParam())

		results := r.dispatch(ctx, msg)
		if len(results) == 0 {
			return nil
		}

		blocks := make([]anthropic.ContentBlockParamUnion, 0, len(results))
		for _, res := range results {
			blocks = append(blocks, res.Param())
		}
		r.history.Append(anthropic.NewUserMessage(blocks...))
	}
}

func (r *Runner) complete(ctx context.Context, round int) (*anthropic.Message, error) {
	msgs := r.history.Messages()
	if err := memory.CheckPairing(msgs); err != nil {
		return nil, err
	}

	start := time.Now()
	msg, err := r.client.Complete(ctx, msgs, r.toolParams)
	fields := []zap.Field{
		zap.Int("round", round),
		zap.Int("messages", len(msgs)),
		zap.Duration("duration_ms", time.Since(start)),
	}
	if err != nil {
		r.events.Emit(ctx, "completion", append(fields, zap.String("error", "transport"))...)
		return nil, err
	}

	r.events.Emit(ctx, "completion", append(fields,
		zap.String("stop_reason", string(msg.StopReason)),
		zap.Int64("input_tokens", msg.Usage.InputTokens),
		zap.Int64("output_tokens", msg.Usage.OutputTokens),
	)...)
	r.log.Debug("assistant turn received",
		zap.Int("round", round),
		zap.String("stop_reason", string(msg.StopReason)),
		zap.Int("blocks", len(msg.Content)),
	)
	return msg, nil
}

// dispatch renders text blocks and executes tool_use blocks in the order they
// appear, one at a time.
func (r *Runner) dispatch(ctx context.Context, msg *anthropic.Message) []ToolResult {
	var results []ToolResult
	for _, block := range msg.Content {
		switch v := block.AsAny().(type) {
		case anthropic.TextBlock:
			if v.Text != "" {
				r.render.AssistantText(v.Text)
			}
		case anthropic.ToolUseBlock:
			call := ToolCall{ID: v.ID, Name: v.Name, Input: json.RawMessage(v.JSON.Input.Raw())}
			r.render.ToolUse(call.Name, call.Input)
			results = append(results, r.exec.Execute(ctx, call))
		}
	}
	return results
}

type nopRenderer struct{}

func (nopRenderer) AssistantText(string)            {}
func (nopRenderer) ToolUse(string, json.RawMessage) {}
func (nopRenderer) Error(error)                     {}
