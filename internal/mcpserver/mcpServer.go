package mcpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/akolanti/DocSummarizer/internal/domain/commonModels"
	"github.com/akolanti/DocSummarizer/internal/summary/pipeline"
	"github.com/akolanti/DocSummarizer/pkg/logger_i"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName    = "doc-summarizer"
	serverVersion = "1.0.0"
)

type summarizeTextArgs struct {
	Name string `json:"name,omitempty" jsonschema:"Optional label for the text, returned as the filename"`
	Text string `json:"text" jsonschema:"Plain text to summarize"`
}

// NewServer exposes the pipeline's raw text mode as an MCP tool.
func NewServer(service pipeline.Service) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
		Title:   "Document summarizer",
	}, nil)

	logger := logger_i.NewLogger("MCP")

	mcp.AddTool(server, &mcp.Tool{
		Name:        "summarize_text",
		Description: "Summarize plain text and return a full summary plus a one line summary",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args summarizeTextArgs) (*mcp.CallToolResult, commonModels.SummaryResult, error) {
		if strings.TrimSpace(args.Text) == "" {
			return nil, commonModels.SummaryResult{}, errors.New("text is required")
		}
		name := args.Name
		if name == "" {
			name = "text"
		}
		logger.ForContext(ctx).Info("summarize_text called", "name", name, "length", len(args.Text))
		return nil, service.SummarizeText(ctx, name, args.Text), nil
	})

	return server
}

// Handler serves one shared MCP server over streamable HTTP.
func Handler(service pipeline.Service) http.Handler {
	server := NewServer(service)
	return mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, nil)
}
