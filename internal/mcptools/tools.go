// Package mcptools exposes retrieval, code extraction, explanation lookup and
// question answering as Model Context Protocol tools.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jonathan/hs-advisor/internal/dispatch"
	"github.com/jonathan/hs-advisor/internal/hscode"
	"github.com/jonathan/hs-advisor/internal/retrieval"
	"github.com/jonathan/hs-advisor/internal/types"
)

// Version is reported to MCP clients
const Version = "1.0.0"

// Tool names
const (
	ToolSearchCases  = "search_cases"
	ToolExtractCodes = "extract_codes"
	ToolExplainCodes = "explain_codes"
	ToolAsk          = "ask"
)

const maxSearchResults = 50

// Searcher returns the top records for a query
type Searcher interface {
	Search(query string, maxResults int) []types.Hit
}

// Explainer renders explanatory notes for codes
type Explainer interface {
	Explanations(codes []string) string
}

// Answerer answers a question with conversation history
type Answerer interface {
	Answer(ctx context.Context, question, history string) (dispatch.Answer, error)
}

// Deps are the collaborators behind the tools. The ask tool is only
// registered when Answerer is set.
type Deps struct {
	Searcher   Searcher
	Explainer  Explainer
	Answerer   Answerer
	MaxResults int
	Logger     *slog.Logger
}

type handlers struct {
	Deps
}

// NewServer builds an MCP server with the tools registered.
func NewServer(name string, deps Deps) *server.MCPServer {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.MaxResults <= 0 {
		deps.MaxResults = retrieval.DefaultMaxResults
	}
	h := &handlers{Deps: deps}

	s := server.NewMCPServer(
		name,
		Version,
		server.WithToolCapabilities(false),
		server.WithInstructions("HS code classification assistant: search classification precedents, extract HS codes from text, and look up explanatory notes."),
	)

	s.AddTool(
		mcp.NewTool(ToolSearchCases,
			mcp.WithDescription("Keyword search over HS classification cases and committee/council decisions"),
			mcp.WithString("query", mcp.Required(), mcp.Description("Free-text query, e.g. a product description")),
			mcp.WithNumber("max_results", mcp.Description("Maximum number of records to return"), mcp.Min(0), mcp.Max(maxSearchResults)),
		),
		h.searchCases,
	)
	s.AddTool(
		mcp.NewTool(ToolExtractCodes,
			mcp.WithDescription("Extract normalized HS codes (digits only, 4 to 10 digits) from text"),
			mcp.WithString("text", mcp.Required(), mcp.Description("Text that may mention HS codes")),
		),
		h.extractCodes,
	)
	s.AddTool(
		mcp.NewTool(ToolExplainCodes,
			mcp.WithDescription("Explanatory notes (general rules, section, heading, subheading) for the HS codes found in text"),
			mcp.WithString("text", mcp.Required(), mcp.Description("HS codes or text mentioning them")),
		),
		h.explainCodes,
	)
	if deps.Answerer != nil {
		s.AddTool(
			mcp.NewTool(ToolAsk,
				mcp.WithDescription("Answer a customs classification question using the knowledge base, explanatory notes and web search"),
				mcp.WithString("question", mcp.Required(), mcp.Description("The user question")),
				mcp.WithString("history", mcp.Description("Conversation so far, passed as context")),
			),
			h.ask,
		)
	}

	return s
}

// Serve runs the server over the given streams until ctx is done or input ends.
func Serve(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s).Listen(ctx, in, out)
}

func (h *handlers) searchCases(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	k := req.GetInt("max_results", h.MaxResults)
	if k < 0 || k > maxSearchResults {
		return mcp.NewToolResultError(fmt.Sprintf("max_results must be between 0 and %d", maxSearchResults)), nil
	}

	hits := h.Searcher.Search(query, k)
	h.Logger.Debug("mcp search", "query", query, "hits", len(hits))
	return jsonResult(map[string]any{"query": query, "hits": nonNil(hits)})
}

func (h *handlers) extractCodes(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"codes": nonNil(hscode.ExtractCodes(text))})
}

func (h *handlers) explainCodes(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	codes := hscode.ExtractCodes(text)
	if len(codes) == 0 {
		return mcp.NewToolResultError("no HS code found in text"), nil
	}
	return mcp.NewToolResultText(h.Explainer.Explanations(codes)), nil
}

func (h *handlers) ask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := req.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	answer, err := h.Answerer.Answer(ctx, question, req.GetString("history", ""))
	if err != nil {
		h.Logger.Warn("mcp ask failed", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"intent": answer.Intent, "answer": answer.Text})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
