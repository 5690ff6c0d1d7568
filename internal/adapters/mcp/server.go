// Package mcp exposes a gateway's compiled route table over the Model
// Context Protocol, so agents can inspect routing policy as tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/gatepost/internal/dto"
	"github.com/aretw0/gatepost/pkg/domain"
)

// Server wraps a compiled route table and serves it as an MCP Server.
type Server struct {
	routes    []*domain.Route
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance over compiled routes.
func NewServer(routes []*domain.Route, version string) *Server {
	s := &Server{
		routes:    routes,
		mcpServer: server.NewMCPServer("gatepost-mcp", version),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: list_routes
	listTool := mcp.NewTool("list_routes",
		mcp.WithDescription("List the gateway's routes with their version, scope, provider and rate-limit metadata."),
		mcp.WithString("version", mcp.Description("Only return routes serving this API version (optional)")),
		mcp.WithBoolean("protected", mcp.Description("Only return routes with this protection flag (optional)")),
	)
	s.mcpServer.AddTool(listTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		version := request.GetString("version", "")
		args := request.GetArguments()

		views := make([]dto.RouteView, 0, len(s.routes))
		for _, rt := range s.routes {
			if version != "" && !rt.MatchesVersion(version) {
				continue
			}
			if protected, ok := args["protected"].(bool); ok && rt.IsProtected() != protected {
				continue
			}
			views = append(views, dto.FromRoute(rt))
		}

		jsonBytes, _ := json.Marshal(views)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: describe_route
	describeTool := mcp.NewTool("describe_route",
		mcp.WithDescription("Describe one route by name."),
		mcp.WithString("name", mcp.Required(), mcp.Description("The route name (operation ID)")),
	)
	s.mcpServer.AddTool(describeTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := request.GetString("name", "")
		for _, rt := range s.routes {
			if rt.Name() == name {
				jsonBytes, _ := json.Marshal(dto.FromRoute(rt))
				return mcp.NewToolResultText(string(jsonBytes)), nil
			}
		}
		return mcp.NewToolResultError(fmt.Sprintf("route %q not found", name)), nil
	})
}
