package exreader

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFolders(t *testing.T) {
	assert.Equal(t, []string{"/data/a", "/data/b"}, ParseFolders("/data/a, /data/b/"))
	assert.Equal(t, []string{"/data/a", "/"}, ParseFolders(" /data/a//,, / "))
	assert.Empty(t, ParseFolders(""))
	assert.Empty(t, ParseFolders(" , "))

	rel := ParseFolders("res")
	abs, err := filepath.Abs("res")
	assert.NoError(t, err)
	assert.Equal(t, []string{abs}, rel)
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, DefaultArtifactPath, opts.ArtifactPath)
	assert.Equal(t, 20, opts.ScanRows)
	assert.Equal(t, 20, Options{}.sentinelParams().ScanRows)
	assert.Equal(t, 5, Options{ScanRows: 5}.sentinelParams().ScanRows)
	assert.NotNil(t, Options{}.logger())
}
