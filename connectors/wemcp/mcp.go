package wemcp

import (
	"context"
	"io"
	stdlog "log"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/weegigs/wee-counter/we"
)

type ServerOption[T comparable] func(service *mcpService[T])

func Logger[T comparable](log *zerolog.Logger) ServerOption[T] {
	return func(service *mcpService[T]) {
		service.log = log
	}
}

// Implementation sets the name and version reported during initialization.
func Implementation[T comparable](name string, version string) ServerOption[T] {
	return func(service *mcpService[T]) {
		service.name = name
		service.version = version
	}
}

// NewServer registers one parameterless tool per operation of the entity service.
func NewServer[T comparable](entityService we.EntityService[T], options ...ServerOption[T]) *server.MCPServer {
	service := &mcpService[T]{controller: entityService, name: "wee-counter", version: "dev"}
	for _, option := range options {
		option(service)
	}
	if service.log == nil {
		service.log = &log.Logger
	}

	s := server.NewMCPServer(
		service.name,
		service.version,
		server.WithToolCapabilities(false),
		server.WithInstructions(entityService.Instructions()),
		server.WithRecovery(),
	)

	for _, operation := range entityService.Operations() {
		s.AddTool(toolFor(operation), service.callTool(operation.Name))
	}

	return s
}

func toolFor(operation we.OperationInfo) mcp.Tool {
	options := []mcp.ToolOption{
		mcp.WithDescription(operation.Description),
		mcp.WithReadOnlyHintAnnotation(operation.ReadOnly),
		mcp.WithDestructiveHintAnnotation(!operation.ReadOnly),
		mcp.WithOpenWorldHintAnnotation(false),
	}

	return mcp.NewTool(operation.Name.String(), options...)
}

type mcpService[T comparable] struct {
	log        *zerolog.Logger
	controller we.EntityService[T]
	name       string
	version    string
}

func (service *mcpService[T]) callTool(name we.CommandName) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		arguments, err := json.Marshal(request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError("invalid arguments"), nil
		}

		reply, err := service.controller.Execute(ctx, we.RemoteCommand{CommandName: name, Arguments: arguments})
		if err != nil {
			service.log.Warn().Err(err).Str("tool", name.String()).Msg("tool call failed")
			return mcp.NewToolResultError(err.Error()), nil
		}

		service.log.Debug().Str("tool", name.String()).Str("revision", reply.Revision.String()).Msg("tool call completed")

		return mcp.NewToolResultText(reply.Text), nil
	}
}

// ServeStdio speaks MCP over the given streams until ctx is done or input closes.
func ServeStdio(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer, logger *zerolog.Logger) error {
	stdio := server.NewStdioServer(s)
	stdio.SetErrorLogger(stdlog.New(logger, "", 0))

	return stdio.Listen(ctx, in, out)
}

func StreamableHandler(s *server.MCPServer) http.Handler {
	return server.NewStreamableHTTPServer(s)
}
