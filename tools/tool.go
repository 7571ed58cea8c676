package tools

import (
	"context"
	"encoding/json"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/invopop/jsonschema"
)

// Definition is the static description of a tool sent to the model.
type Definition struct {
	Name        string
	Description string
	InputSchema anthropic.ToolInputSchemaParam
}

// Tool is implemented by every executable tool.
// Execute returns the text handed back to the model, or an error describing why it failed.
type Tool interface {
	Definition() Definition
	Execute(ctx context.Context, input json.RawMessage) (string, error)
}

// Func adapts a plain function into a Tool.
type Func struct {
	Def Definition
	Fn  func(ctx context.Context, input json.RawMessage) (string, error)
}

func (f Func) Definition() Definition { return f.Def }

func (f Func) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	return f.Fn(ctx, input)
}

// GenerateSchema reflects T into the input schema format expected by the Messages API.
// Fields without omitempty are reported as required.
func GenerateSchema[T any]() anthropic.ToolInputSchemaParam {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	return anthropic.ToolInputSchemaParam{
		Properties: schema.Properties,
		Required:   schema.Required,
	}
}

// decodeInput unmarshals a tool_use input; a missing payload decodes as {}.
func decodeInput(input json.RawMessage, v any) error {
	if len(input) == 0 {
		input = json.RawMessage("{}")
	}
	return json.Unmarshal(input, v)
}
