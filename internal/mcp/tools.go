package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/ukaji3/exreader-go/pkg/exreader"
	"github.com/ukaji3/exreader-go/pkg/exreader/output"
)

// handlers serves tool calls. Each call loads configuration and builds its
// own workspace; nothing is shared between calls.
type handlers struct {
	load   LoadFunc
	logger *slog.Logger
}

func (h *handlers) workspace() (*exreader.Workspace, exreader.Options, error) {
	opts, err := h.load()
	if err != nil {
		return nil, opts, err
	}
	if opts.Logger == nil {
		opts.Logger = h.logger
	}
	return exreader.New(opts), opts, nil
}

// resourceFolders handles get_res_folders tool calls.
func (h *handlers) resourceFolders(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ws, opts, err := h.workspace()
	if err != nil {
		return h.errorResult("get_res_folders", err, opts.Encoding), nil
	}
	return h.jsonResult(output.StringsJSON(ws.ResourceFolders(), opts.Encoding))
}

// filePath handles get_excel_file_path tool calls.
func (h *handlers) filePath(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ws, opts, err := h.workspace()
	if err != nil {
		return h.errorResult("get_excel_file_path", err, opts.Encoding), nil
	}
	path, _ := ws.Resolve(req.GetString("filename", ""))
	return mcp.NewToolResultText(path), nil
}

// sheetNames handles fetch_sheet_names tool calls.
func (h *handlers) sheetNames(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ws, opts, err := h.workspace()
	if err != nil {
		return h.errorResult("fetch_sheet_names", err, opts.Encoding), nil
	}
	names, err := ws.SheetNames(req.GetString("filename", ""))
	if err != nil {
		return h.errorResult("fetch_sheet_names", err, opts.Encoding), nil
	}
	return h.jsonResult(output.StringsJSON(names, opts.Encoding))
}

// gameData handles read_game_data tool calls.
func (h *handlers) gameData(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ws, opts, err := h.workspace()
	if err != nil {
		return h.errorResult("read_game_data", err, opts.Encoding), nil
	}
	table, _, err := ws.ExtractGameTable(req.GetString("filename", ""))
	if err != nil {
		return h.errorResult("read_game_data", err, opts.Encoding), nil
	}
	return h.jsonResult(output.RecordsJSON(table, opts.Encoding))
}

// readExcel handles read_excel tool calls.
func (h *handlers) readExcel(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ws, opts, err := h.workspace()
	if err != nil {
		return h.errorResult("read_excel", err, opts.Encoding), nil
	}
	table, err := ws.ReadSheet(req.GetString("filename", ""), req.GetString("sheet_name", ""))
	if err != nil {
		return h.errorResult("read_excel", err, opts.Encoding), nil
	}
	return h.jsonResult(output.RecordsJSON(table, opts.Encoding))
}

// fileList handles get_excel_file_list tool calls.
func (h *handlers) fileList(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ws, opts, err := h.workspace()
	if err != nil {
		return h.errorResult("get_excel_file_list", err, opts.Encoding), nil
	}
	files, err := ws.SpreadsheetFiles()
	if err != nil {
		return h.errorResult("get_excel_file_list", err, opts.Encoding), nil
	}
	return h.jsonResult(output.StringsJSON(files, opts.Encoding))
}

// jsonResult wraps serialized JSON in a text result. Serialization failures
// become error results so the client always gets a structured answer.
func (h *handlers) jsonResult(data []byte, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return h.errorResult("serialize", err, output.Encoding{}), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// errorResult renders err as an {"error": ...} payload flagged as a tool error.
func (h *handlers) errorResult(tool string, err error, enc output.Encoding) *mcp.CallToolResult {
	h.logger.Debug("tool call failed", "tool", tool, "kind", exreader.KindOf(err), "error", err)
	return mcp.NewToolResultError(string(output.ErrorJSON(err, enc)))
}
