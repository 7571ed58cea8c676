package runner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"go.uber.org/zap"

	"github.com/petasbytes/code-agent/internal/telemetry"
	"github.com/petasbytes/code-agent/tools"
)

// ErrToolNotFound is reported when the model calls a name missing from the registry.
var ErrToolNotFound = errors.New("tool not found")

// ToolCall is one tool_use block issued by the model.
type ToolCall struct {
	ID    string
	Name  string
	Input json.RawMessage
}

// ToolResult answers exactly one ToolCall.
type ToolResult struct {
	ToolUseID string
	Content   string
	IsError   bool
	// Err is the underlying failure; it is not sent to the model.
	Err error
}

// Param converts r into a tool_result content block. is_error is only set on
// failures, and empty output is sent without content blocks.
func (r ToolResult) Param() anthropic.ContentBlockParamUnion {
	block := anthropic.ToolResultBlockParam{ToolUseID: r.ToolUseID}
	if r.Content != "" {
		block.Content = []anthropic.ToolResultBlockParamContentUnion{
			{OfText: &anthropic.TextBlockParam{Text: r.Content}},
		}
	}
	if r.IsError {
		block.IsError = anthropic.Bool(true)
	}
	return anthropic.ContentBlockParamUnion{OfToolResult: &block}
}

// Executor looks tools up by name and normalizes every outcome into a ToolResult.
type Executor struct {
	registry *tools.Registry
	log      *zap.Logger
	events   *telemetry.Recorder
}

func NewExecutor(registry *tools.Registry, log *zap.Logger, events *telemetry.Recorder) *Executor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Executor{registry: registry, log: log, events: events}
}

// Execute runs call and never fails: unknown tools, tool errors and panics all
// come back as results with IsError set.
func (e *Executor) Execute(ctx context.Context, call ToolCall) ToolResult {
	start := time.Now()

	tool, ok := e.registry.Lookup(call.Name)
	if !ok {
		err := fmt.Errorf("%w: %q", ErrToolNotFound, call.Name)
		e.log.Warn("unknown tool requested", zap.String("tool", call.Name), zap.String("tool_use_id", call.ID))
		e.emit(ctx, call, start, 0, "tool not found")
		return ToolResult{ToolUseID: call.ID, Content: err.Error(), IsError: true, Err: err}
	}

	out, err := invoke(ctx, tool, call.Input)
	if err != nil {
		e.log.Warn("tool execution failed", zap.String("tool", call.Name), zap.Error(err))
		// Only a generic category goes to telemetry; the detail goes to the model.
		e.emit(ctx, call, start, 0, "tool error")
		return ToolResult{
			ToolUseID: call.ID,
			Content:   fmt.Sprintf("Error executing %s: %v", call.Name, err),
			IsError:   true,
			Err:       err,
		}
	}

	e.emit(ctx, call, start, len(out), "")
	return ToolResult{ToolUseID: call.ID, Content: out}
}

func invoke(ctx context.Context, tool tools.Tool, input json.RawMessage) (out string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return tool.Execute(ctx, input)
}

func (e *Executor) emit(ctx context.Context, call ToolCall, start time.Time, outSize int, errStr string) {
	errField := zap.Reflect("error", nil)
	if errStr != "" {
		errField = zap.String("error", errStr)
	}
	e.events.Emit(ctx, "tool_exec",
		zap.String("tool_name", call.Name),
		zap.Duration("duration_ms", time.Since(start)),
		zap.Int("input_size", len(call.Input)),
		zap.Int("output_size", outSize),
		errField,
	)
}
