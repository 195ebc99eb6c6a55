// Package mcp exposes exreader operations as Model Context Protocol tools.
package mcp

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ukaji3/exreader-go/pkg/exreader"
)

// Name is the server name advertised to clients.
const Name = "excel-reader"

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// LoadFunc returns the options for a single tool call.
type LoadFunc func() (exreader.Options, error)

// NewServer creates an MCP server with every tool registered.
func NewServer(load LoadFunc, logger *slog.Logger) *server.MCPServer {
	if logger == nil {
		logger = slog.Default()
	}
	s := server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	registerTools(s, &handlers{load: load, logger: logger})
	return s
}

// Serve runs the MCP server over stdio until the client disconnects.
// Stdout carries JSON-RPC messages, so logs must go to stderr.
func Serve(load LoadFunc, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	s := NewServer(load, logger)

	logger.Info("exreader MCP server ready", "version", Version, "transport", "stdio")

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		logger.Info("server stopped")
		return nil
	}
	return err
}

// registerTools exposes the workspace operations. Tool names match the
// earlier excel-reader server so existing clients keep working.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("get_res_folders",
			mcp.WithDescription("List the resource folders searched for Excel files (MCP_RESOURCE_FOLDERS), in search order."),
		),
		h.resourceFolders,
	)

	s.AddTool(
		mcp.NewTool("get_excel_file_path",
			mcp.WithDescription("Get the path to an Excel file in the resource folders. Returns an empty string when no folder contains it."),
			mcp.WithString("filename", mcp.Required(), mcp.Description("Name of the Excel file")),
		),
		h.filePath,
	)

	s.AddTool(
		mcp.NewTool("fetch_sheet_names",
			mcp.WithDescription("List the sheet names of an Excel file in the resource folders."),
			mcp.WithString("filename", mcp.Required(), mcp.Description("Name of the Excel file")),
		),
		h.sheetNames,
	)

	s.AddTool(
		mcp.NewTool("read_game_data",
			mcp.WithDescription("Read the game data table of an Excel file's first sheet and return it as JSON records. "+
				"The table header is the row above the 'type' marker; columns end at '###' in the type row and rows end at '###' in the first column."),
			mcp.WithString("filename", mcp.Required(), mcp.Description("Name of the Excel file")),
		),
		h.gameData,
	)

	s.AddTool(
		mcp.NewTool("read_excel",
			mcp.WithDescription("Read an Excel sheet and return its contents as JSON records keyed by the first row."),
			mcp.WithString("filename", mcp.Required(), mcp.Description("Name of the Excel file")),
			mcp.WithString("sheet_name", mcp.Description("Name of the sheet to read (defaults to the first sheet)")),
		),
		h.readExcel,
	)

	s.AddTool(
		mcp.NewTool("get_excel_file_list",
			mcp.WithDescription("List the Excel files found in all resource folders."),
		),
		h.fileList,
	)
}
