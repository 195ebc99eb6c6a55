// Package main provides the CLI entry point for exreader-go.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/exreader-go/internal/config"
	"github.com/ukaji3/exreader-go/internal/mcp"
	"github.com/ukaji3/exreader-go/pkg/exreader"
	"github.com/ukaji3/exreader-go/pkg/exreader/output"
)

var (
	configPath string
	envFile    string
	folders    string
	ascii      bool
	verbose    bool
	outputPath string
	pretty     bool
	sheetName  string
	trace      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "exreader",
		Short: "Read spreadsheet game data from resource folders",
		Long: `exreader-go locates Excel files in the folders listed by MCP_RESOURCE_FOLDERS
and converts their sheets into JSON records, as CLI commands or MCP tools.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "dotenv file consulted for MCP_RESOURCE_FOLDERS")
	rootCmd.PersistentFlags().StringVar(&folders, "folders", "", "Comma-separated resource folders (overrides MCP_RESOURCE_FOLDERS)")
	rootCmd.PersistentFlags().BoolVar(&ascii, "ascii", false, "Escape non-ASCII characters in JSON output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tools over MCP stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mcp.Serve(loader().Load, logger())
		},
	}

	foldersCmd := &cobra.Command{
		Use:   "folders",
		Short: "List resource folders in search order",
		Args:  cobra.NoArgs,
		RunE: withWorkspace(func(ws *exreader.Workspace, opts exreader.Options, args []string) ([]byte, error) {
			return output.StringsJSON(ws.ResourceFolders(), opts.Encoding)
		}),
	}

	resolveCmd := &cobra.Command{
		Use:   "resolve [filename]",
		Short: "Print the path of a file in the resource folders",
		Args:  cobra.ExactArgs(1),
		RunE: withWorkspace(func(ws *exreader.Workspace, opts exreader.Options, args []string) ([]byte, error) {
			path, _ := ws.Resolve(args[0])
			return []byte(path), nil
		}),
	}

	sheetsCmd := &cobra.Command{
		Use:   "sheets [filename]",
		Short: "List the sheet names of a file",
		Args:  cobra.ExactArgs(1),
		RunE: withWorkspace(func(ws *exreader.Workspace, opts exreader.Options, args []string) ([]byte, error) {
			names, err := ws.SheetNames(args[0])
			if err != nil {
				return nil, err
			}
			return output.StringsJSON(names, opts.Encoding)
		}),
	}

	extractCmd := &cobra.Command{
		Use:   "extract [filename]",
		Short: "Extract the game data table of a file's first sheet",
		Args:  cobra.ExactArgs(1),
		RunE: withWorkspace(func(ws *exreader.Workspace, opts exreader.Options, args []string) ([]byte, error) {
			table, bounds, err := ws.ExtractGameTable(args[0])
			if err != nil {
				return nil, err
			}
			if trace {
				fmt.Fprintln(os.Stderr, bounds)
			}
			return output.RecordsJSON(table, opts.Encoding)
		}),
	}
	extractCmd.Flags().BoolVar(&trace, "trace", false, "Print the discovered table bounds to stderr")

	readCmd := &cobra.Command{
		Use:   "read [filename]",
		Short: "Read a whole sheet as records keyed by its first row",
		Args:  cobra.ExactArgs(1),
		RunE: withWorkspace(func(ws *exreader.Workspace, opts exreader.Options, args []string) ([]byte, error) {
			table, err := ws.ReadSheet(args[0], sheetName)
			if err != nil {
				return nil, err
			}
			return output.RecordsJSON(table, opts.Encoding)
		}),
	}
	readCmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet name (default: first sheet)")

	filesCmd := &cobra.Command{
		Use:   "files",
		Short: "List spreadsheet files across the resource folders",
		Args:  cobra.NoArgs,
		RunE: withWorkspace(func(ws *exreader.Workspace, opts exreader.Options, args []string) ([]byte, error) {
			files, err := ws.SpreadsheetFiles()
			if err != nil {
				return nil, err
			}
			return output.StringsJSON(files, opts.Encoding)
		}),
	}

	for _, cmd := range []*cobra.Command{foldersCmd, resolveCmd, sheetsCmd, extractCmd, readCmd, filesCmd} {
		cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
		cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func logger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loader() config.Loader {
	return config.Loader{
		Path:    configPath,
		EnvFile: envFile,
		Folders: folders,
		ASCII:   ascii,
		Logger:  logger(),
	}
}

type commandFunc func(ws *exreader.Workspace, opts exreader.Options, args []string) ([]byte, error)

// withWorkspace loads configuration, runs fn and writes its result.
// Failures are printed to stdout as {"error": ...} before the command fails.
func withWorkspace(fn commandFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		opts, err := loader().Load()
		if err != nil {
			return fail(cmd, err, opts.Encoding)
		}

		data, err := fn(exreader.New(opts), opts, args)
		if err != nil {
			return fail(cmd, err, opts.Encoding)
		}
		return write(cmd, data)
	}
}

// fail prints err as JSON to the command's stdout. The --output file is
// left untouched so a previous result is never replaced by an error.
func fail(cmd *cobra.Command, err error, enc output.Encoding) error {
	cmd.SilenceErrors = true
	fmt.Fprintln(cmd.OutOrStdout(), string(indent(output.ErrorJSON(err, enc))))
	return err
}

func write(cmd *cobra.Command, data []byte) error {
	data = indent(data)
	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// indent pretty-prints JSON data when --pretty is set.
func indent(data []byte) []byte {
	if !pretty || !json.Valid(data) {
		return data
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return data
	}
	return buf.Bytes()
}
