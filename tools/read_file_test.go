package tools_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petasbytes/code-agent/tools"
)

func TestReadFile_Happy(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(p, []byte("hi\nthere"), 0o644))

	b, _ := json.Marshal(tools.ReadFileInput{Path: p})
	out, err := tools.ReadFile{}.Execute(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, "hi\nthere", out)
}

func TestReadFile_NotFound(t *testing.T) {
	b, _ := json.Marshal(tools.ReadFileInput{Path: filepath.Join(t.TempDir(), "does-not-exist.txt")})
	_, err := tools.ReadFile{}.Execute(context.Background(), b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestReadFile_DirectoryPath_Error(t *testing.T) {
	b, _ := json.Marshal(tools.ReadFileInput{Path: t.TempDir()})
	_, err := tools.ReadFile{}.Execute(context.Background(), b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestReadFile_MissingPath_Error(t *testing.T) {
	_, err := tools.ReadFile{}.Execute(context.Background(), json.RawMessage(`{}`))
	assert.Error(t, err)
}
