package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/petasbytes/code-agent/internal/fsops"
)

type ReadFileInput struct {
	Path string `json:"path" jsonschema_description:"The relative path of a file in the working directory."`
}

var ReadFileInputSchema = GenerateSchema[ReadFileInput]()

// ReadFile returns the full contents of a file.
type ReadFile struct{}

func (ReadFile) Definition() Definition {
	return Definition{
		Name:        "read_file",
		Description: "Read the contents of a given relative file path. Use this when you want to see what's inside a file. Do not use this with directory names.",
		InputSchema: ReadFileInputSchema,
	}
}

func (ReadFile) Execute(_ context.Context, input json.RawMessage) (string, error) {
	var in ReadFileInput
	if err := decodeInput(input, &in); err != nil {
		return "", err
	}
	if in.Path == "" {
		return "", errors.New("path is required")
	}

	content, err := fsops.ReadFile(in.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return content, nil
}
