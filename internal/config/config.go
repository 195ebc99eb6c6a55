// Package config loads exreader configuration.
// Sources, highest precedence first: explicit folder override, process
// environment, .env file, YAML config file. Every Load reads them afresh so
// changes take effect on the next request.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/ukaji3/exreader-go/pkg/exreader"
	"github.com/ukaji3/exreader-go/pkg/exreader/output"
	"gopkg.in/yaml.v3"
)

// EnvResourceFolders names the comma-separated resource folder list.
const EnvResourceFolders = "MCP_RESOURCE_FOLDERS"

// DefaultEnvFile is read when no env file is given.
const DefaultEnvFile = ".env"

// ErrInvalidValue is returned when a config value is invalid.
var ErrInvalidValue = errors.New("invalid config value")

// File is the YAML configuration file layout.
type File struct {
	ResourceFolders []string `yaml:"resource_folders,omitempty"`
	ASCIIJSON       *bool    `yaml:"ascii_json,omitempty"`
	ArtifactPath    *string  `yaml:"artifact_path,omitempty"`
	ScanRows        *int     `yaml:"scan_rows,omitempty"`
	Password        string   `yaml:"password,omitempty"`
}

// Validate checks that configured values are within acceptable bounds.
func (c *File) Validate() error {
	if c.ScanRows != nil && *c.ScanRows < 1 {
		return fmt.Errorf("%w: scan_rows must be at least 1, got %d", ErrInvalidValue, *c.ScanRows)
	}
	return nil
}

// Loader builds exreader options from its sources.
type Loader struct {
	// Path is the YAML config file. Empty means none.
	Path string
	// EnvFile is a dotenv file consulted when the process environment lacks
	// a value. A missing file is ignored.
	EnvFile string
	// Folders, when non-empty, overrides every other folder source.
	Folders string
	// ASCII forces ASCII-escaped JSON regardless of the config file.
	ASCII bool
	// Logger is passed to the options.
	Logger *slog.Logger
	// Getenv reads the process environment. If nil, os.Getenv is used.
	Getenv func(string) string
}

// Load reads all sources and returns the resulting options.
func (l Loader) Load() (exreader.Options, error) {
	opts := exreader.DefaultOptions()
	opts.Logger = l.Logger
	opts.Encoding = output.Encoding{ASCII: l.ASCII}

	file, err := l.readFile()
	if err != nil {
		return opts, err
	}
	if err := file.Validate(); err != nil {
		return opts, fmt.Errorf("config %s: %w", l.Path, err)
	}

	if file.ArtifactPath != nil {
		opts.ArtifactPath = *file.ArtifactPath
	}
	if file.ScanRows != nil {
		opts.ScanRows = *file.ScanRows
	}
	opts.Password = file.Password
	opts.Encoding = output.Encoding{ASCII: l.ASCII || (file.ASCIIJSON != nil && *file.ASCIIJSON)}

	raw, err := l.folderList()
	if err != nil {
		return opts, err
	}
	if raw != "" {
		opts.Folders = exreader.ParseFolders(raw)
	} else {
		opts.Folders = []string{}
		for _, folder := range file.ResourceFolders {
			opts.Folders = append(opts.Folders, exreader.ParseFolders(folder)...)
		}
	}
	return opts, nil
}

// folderList returns the raw comma-separated folder list from the highest
// precedence source that sets one.
func (l Loader) folderList() (string, error) {
	if l.Folders != "" {
		return l.Folders, nil
	}
	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv(EnvResourceFolders); v != "" {
		return v, nil
	}
	if l.EnvFile == "" {
		return "", nil
	}
	env, err := godotenv.Read(l.EnvFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("env file %s: %w", l.EnvFile, err)
	}
	return env[EnvResourceFolders], nil
}

func (l Loader) readFile() (*File, error) {
	var file File
	if l.Path == "" {
		return &file, nil
	}
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", l.Path, err)
	}
	return &file, nil
}
