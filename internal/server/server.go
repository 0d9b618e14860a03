// Package server binds the tool catalog and dispatcher to an MCP stdio
// server. It is deliberately thin: argument decoding and result mapping
// live here, everything else is delegated.
package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/matiasleandrokruk/elabmcp/internal/domain/catalog"
	"github.com/matiasleandrokruk/elabmcp/internal/domain/dispatch"
	"github.com/matiasleandrokruk/elabmcp/internal/version"
)

const serverName = "elabftw-mcp"

// Server wraps the MCP server with the dispatcher behind it.
type Server struct {
	mcpServer  *mcp.Server
	dispatcher *dispatch.Dispatcher
	log        zerolog.Logger
}

// New registers every catalog tool and prompt on a fresh MCP server.
func New(dispatcher *dispatch.Dispatcher, log zerolog.Logger) *Server {
	s := &Server{
		mcpServer: mcp.NewServer(&mcp.Implementation{
			Name:    serverName,
			Version: version.Version,
		}, nil),
		dispatcher: dispatcher,
		log:        log,
	}

	for _, def := range catalog.Tools() {
		s.mcpServer.AddTool(&mcp.Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.Schema,
		}, s.toolHandler(def.Name))
	}
	for _, def := range catalog.Prompts() {
		s.mcpServer.AddPrompt(promptSpec(def), promptHandler(def.Name))
	}
	return s
}

// Run serves MCP over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info().Str("server", serverName).Str("version", version.Version).Msg("starting MCP stdio server")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) toolHandler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		arguments, err := decodeArguments(req.Params.Arguments)
		if err != nil {
			s.log.Error().Str("tool", name).Err(err).Msg("undecodable tool arguments")
			return textResult(fmt.Sprintf("An unexpected error occurred: %v", err), true), nil
		}

		result := s.dispatcher.Handle(ctx, dispatch.Request{Name: name, Arguments: arguments})
		return textResult(result.Text, result.IsError), nil
	}
}

func textResult(text string, isError bool) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: isError,
	}
}

// decodeArguments accepts the argument payload in whichever shape the
// transport delivered it: raw JSON bytes, an already-decoded map, or nothing.
func decodeArguments(raw any) (map[string]any, error) {
	switch v := raw.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return v, nil
	case json.RawMessage:
		return unmarshalArguments([]byte(v))
	case []byte:
		return unmarshalArguments(v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode tool arguments: %w", err)
		}
		return unmarshalArguments(encoded)
	}
}

func unmarshalArguments(data []byte) (map[string]any, error) {
	if len(data) == 0 {
		return map[string]any{}, nil
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode tool arguments: %w", err)
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

func promptSpec(def catalog.PromptDefinition) *mcp.Prompt {
	spec := &mcp.Prompt{
		Name:        def.Name,
		Description: def.Description,
	}
	for _, arg := range def.Arguments {
		spec.Arguments = append(spec.Arguments, &mcp.PromptArgument{
			Name:        arg.Name,
			Description: arg.Description,
			Required:    arg.Required,
		})
	}
	return spec
}

func promptHandler(name string) mcp.PromptHandler {
	return func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		res, err := catalog.BuildPrompt(name, req.Params.Arguments)
		if err != nil {
			return nil, err
		}
		return &mcp.GetPromptResult{
			Description: res.Description,
			Messages: []*mcp.PromptMessage{
				{Role: "user", Content: &mcp.TextContent{Text: res.Text}},
			},
		}, nil
	}
}
