package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/exreader-go/pkg/exreader/output"
)

func withOutput(t *testing.T, path string, indented bool) {
	t.Helper()
	oldPath, oldPretty := outputPath, pretty
	outputPath, pretty = path, indented
	t.Cleanup(func() { outputPath, pretty = oldPath, oldPretty })
}

func TestFailLeavesOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	withOutput(t, path, false)

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	err := fail(cmd, errors.New("sheets BAD.xlsx: not found"), output.Encoding{})
	assert.EqualError(t, err, "sheets BAD.xlsx: not found")
	assert.True(t, cmd.SilenceErrors)
	assert.NoFileExists(t, path)

	var body map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &body))
	assert.Equal(t, "sheets BAD.xlsx: not found", body["error"])
}

func TestFailKeepsPreviousResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	require.NoError(t, os.WriteFile(path, []byte(`["Sheet1"]`), 0644))
	withOutput(t, path, true)

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	_ = fail(cmd, errors.New("アイテム.xlsx missing"), output.Encoding{ASCII: true})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `["Sheet1"]`, string(data))
	assert.NotContains(t, buf.String(), "ア")
	assert.Contains(t, buf.String(), `\u30a2`)
	assert.Contains(t, buf.String(), "\n  \"error\"")
}

func TestWriteOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	withOutput(t, path, false)

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	require.NoError(t, write(cmd, []byte(`["a","b"]`)))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, string(data))
	assert.Empty(t, buf.String())
}
