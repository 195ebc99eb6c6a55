package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/exreader-go/pkg/exreader"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadDefaults(t *testing.T) {
	opts, err := Loader{Getenv: env(nil)}.Load()
	require.NoError(t, err)
	assert.Empty(t, opts.Folders)
	assert.Equal(t, exreader.DefaultArtifactPath, opts.ArtifactPath)
	assert.Equal(t, 20, opts.ScanRows)
	assert.False(t, opts.Encoding.ASCII)
}

func TestLoadFolderPrecedence(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("MCP_RESOURCE_FOLDERS=/from/dotenv\n"), 0644))
	cfgFile := filepath.Join(dir, "exreader.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("resource_folders:\n  - /from/yaml/a\n  - /from/yaml/b/\n"), 0644))

	l := Loader{Path: cfgFile, EnvFile: envFile, Getenv: env(nil)}
	opts, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"/from/dotenv"}, opts.Folders)

	l.Getenv = env(map[string]string{EnvResourceFolders: "/data/a, /data/b/"})
	opts, err = l.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"/data/a", "/data/b"}, opts.Folders)

	l.Folders = "/flag"
	opts, err = l.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"/flag"}, opts.Folders)

	l = Loader{Path: cfgFile, EnvFile: filepath.Join(dir, "missing.env"), Getenv: env(nil)}
	opts, err = l.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"/from/yaml/a", "/from/yaml/b"}, opts.Folders)
}

func TestLoadRereadsEnvironment(t *testing.T) {
	t.Setenv(EnvResourceFolders, "/first")
	l := Loader{}

	opts, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"/first"}, opts.Folders)

	t.Setenv(EnvResourceFolders, "/second")
	opts, err = l.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"/second"}, opts.Folders)
}

func TestLoadFileOptions(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "exreader.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("ascii_json: true\nartifact_path: \"\"\nscan_rows: 30\npassword: secret\n"), 0644))

	opts, err := Loader{Path: cfgFile, Getenv: env(nil)}.Load()
	require.NoError(t, err)
	assert.True(t, opts.Encoding.ASCII)
	assert.Empty(t, opts.ArtifactPath)
	assert.Equal(t, 30, opts.ScanRows)
	assert.Equal(t, "secret", opts.Password)

	opts, err = Loader{ASCII: true, Getenv: env(nil)}.Load()
	require.NoError(t, err)
	assert.True(t, opts.Encoding.ASCII)
}

func TestLoadInvalidFile(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("scan_rows: 0\n"), 0644))
	_, err := Loader{Path: bad, Getenv: env(nil)}.Load()
	assert.ErrorIs(t, err, ErrInvalidValue)

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("resource_folders: [unterminated\n"), 0644))
	_, err = Loader{Path: broken, Getenv: env(nil)}.Load()
	assert.Error(t, err)

	_, err = Loader{Path: filepath.Join(dir, "missing.yaml"), Getenv: env(nil)}.Load()
	assert.Error(t, err)
}

func TestLoadFailureKeepsASCIIFlag(t *testing.T) {
	opts, err := Loader{Path: filepath.Join(t.TempDir(), "missing.yaml"), ASCII: true, Getenv: env(nil)}.Load()
	assert.Error(t, err)
	assert.True(t, opts.Encoding.ASCII)
}
