package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/petasbytes/code-agent/internal/fsops"
)

type ListFilesInput struct {
	Path string `json:"path,omitempty" jsonschema_description:"Optional relative path to list files from. Defaults to current directory if not provided."`
}

var ListFilesInputSchema = GenerateSchema[ListFilesInput]()

// ListFiles lists a directory non-recursively, one entry per line.
// Directories are suffixed with "/" and listed before files; both groups are sorted.
type ListFiles struct{}

func (ListFiles) Definition() Definition {
	return Definition{
		Name:        "list_files",
		Description: "List files and directories at a given path. If no path is provided, lists files in the current directory.",
		InputSchema: ListFilesInputSchema,
	}
}

func (ListFiles) Execute(_ context.Context, input json.RawMessage) (string, error) {
	var in ListFilesInput
	if err := decodeInput(input, &in); err != nil {
		return "", err
	}

	names, err := fsops.ListDir(in.Path)
	if err != nil {
		return "", fmt.Errorf("failed to list files: %w", err)
	}
	return strings.Join(names, "\n"), nil
}
