// Package mcp exposes the workflow engine as an MCP (Model Context
// Protocol) server, so agent hosts can execute and inspect workflows as
// tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/nutrigraph/nutrigraph"
	pres "github.com/nutrigraph/nutrigraph/internal/presentation/graph"
	"github.com/nutrigraph/nutrigraph/pkg/domain"
)

// RunResponse is the structured result of the run_workflow tool.
type RunResponse struct {
	Run *domain.Run `json:"run" jsonschema_description:"The finished run record: path, final state, status"`
}

// Server wraps the named workflows and exposes them over MCP.
type Server struct {
	workflows map[string]*nutrigraph.Workflow
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(workflows map[string]*nutrigraph.Workflow) *Server {
	s := &Server{
		workflows: workflows,
		mcpServer: server.NewMCPServer("nutrigraph-mcp", nutrigraph.Version),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	// TOOL: run_workflow
	runTool := mcp.NewTool("run_workflow",
		mcp.WithDescription("Execute a food-image nutrition workflow against an initial state and return the run record."),
		mcp.WithString("workflow", mcp.Required(), mcp.Description("Workflow name (analysis or screening)")),
		mcp.WithString("state", mcp.Description("JSON object with the initial state, e.g. {\"user_image_unit\": \"lunch.jpg\"}")),
		mcp.WithOutputSchema[RunResponse](),
	)
	s.mcpServer.AddTool(runTool, mcp.NewStructuredToolHandler(s.handleRunWorkflow))

	// TOOL: inspect_workflow
	s.mcpServer.AddTool(mcp.NewTool("inspect_workflow",
		mcp.WithDescription("Get the Mermaid diagram source of a workflow's graph."),
		mcp.WithString("workflow", mcp.Required(), mcp.Description("Workflow name")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := request.GetString("workflow", "")
		wf, ok := s.workflows[name]
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown workflow %q (available: %v)", name, s.names())), nil
		}
		return mcp.NewToolResultText(pres.GenerateMermaid(wf.Graph(), nil)), nil
	})

	// TOOL: list_workflows
	s.mcpServer.AddTool(mcp.NewTool("list_workflows",
		mcp.WithDescription("List the available workflow names."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		data, _ := json.Marshal(s.names())
		return mcp.NewToolResultText(string(data)), nil
	})
}

func (s *Server) handleRunWorkflow(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RunResponse, error) {
	name, _ := args["workflow"].(string)
	wf, ok := s.workflows[name]
	if !ok {
		return RunResponse{}, fmt.Errorf("unknown workflow %q (available: %v)", name, s.names())
	}

	initial := domain.NewState()
	if stateStr, ok := args["state"].(string); ok && stateStr != "" {
		if err := json.Unmarshal([]byte(stateStr), &initial); err != nil {
			return RunResponse{}, fmt.Errorf("invalid state JSON: %w", err)
		}
	}

	// The run record carries any failure detail; hosts inspect its status.
	run, _ := wf.Execute(ctx, uuid.NewString(), initial)
	return RunResponse{Run: run}, nil
}

func (s *Server) names() []string {
	names := make([]string, 0, len(s.workflows))
	for name := range s.workflows {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
