package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/petasbytes/code-agent/internal/fsops"
)

type EditFileInput struct {
	Path   string `json:"path" jsonschema_description:"The path to the file"`
	OldStr string `json:"old_str" jsonschema_description:"Text to search for - must match exactly; the first occurrence is replaced"`
	NewStr string `json:"new_str" jsonschema_description:"Text to replace old_str with"`
}

var EditFileInputSchema = GenerateSchema[EditFileInput]()

// EditFile replaces the first occurrence of old_str with new_str, or creates the
// file with new_str when it does not exist yet.
type EditFile struct{}

func (EditFile) Definition() Definition {
	return Definition{
		Name: "edit_file",
		Description: `Make edits to a text file.

Replaces the first occurrence of 'old_str' with 'new_str' in the given file. 'old_str' must be non-empty and present in the file.

If the file specified with path doesn't exist, it will be created with 'new_str' as its contents.
`,
		InputSchema: EditFileInputSchema,
	}
}

func (EditFile) Execute(_ context.Context, input json.RawMessage) (string, error) {
	var in EditFileInput
	if err := decodeInput(input, &in); err != nil {
		return "", err
	}
	if in.Path == "" {
		return "", errors.New("path is required")
	}

	oldContent, err := fsops.ReadFile(in.Path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := fsops.WriteFile(in.Path, in.NewStr); err != nil {
			return "", fmt.Errorf("failed to edit file: %w", err)
		}
		return fmt.Sprintf("Created new file: %s", in.Path), nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to edit file: %w", err)
	}

	// An empty old_str would match at offset 0 and silently prepend.
	if in.OldStr == "" {
		return "", errors.New("failed to edit file: old_str must be provided when editing an existing file")
	}
	if !strings.Contains(oldContent, in.OldStr) {
		return "", fmt.Errorf("failed to edit file: old_str %q not found in file", in.OldStr)
	}

	newContent := strings.Replace(oldContent, in.OldStr, in.NewStr, 1)
	if err := fsops.WriteFile(in.Path, newContent); err != nil {
		return "", fmt.Errorf("failed to edit file: %w", err)
	}
	return fmt.Sprintf("Successfully edited file: %s", in.Path), nil
}
