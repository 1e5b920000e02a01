// Package mcp exposes the screenlens operations over the Model Context
// Protocol on stdio. Tool names, descriptions and parameter semantics come
// from the shared operation table, so MCP clients and the CLI see the same
// contract.
package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/screenlens/screenlens/internal/tools"
)

const (
	ServerName    = "screenlens"
	ServerVersion = "0.1.0"
)

// Server is the MCP entry surface. Overlapping tool calls block on the
// dispatcher's capture guard rather than failing: MCP callers expect a
// response, not an error, for a transient overlap.
type Server struct {
	mcpServer  *mcpsdk.Server
	dispatcher *tools.Dispatcher
}

// NewServer wires the MCP server around a dispatcher.
func NewServer(dispatcher *tools.Dispatcher) *Server {
	s := &Server{dispatcher: dispatcher}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        tools.OpListScreens,
		Description: opDescription(tools.OpListScreens),
	}, s.handleListScreens)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        tools.OpDescribeScreen,
		Description: opDescription(tools.OpDescribeScreen),
	}, s.handleDescribeScreen)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        tools.OpDescribeWithQuery,
		Description: opDescription(tools.OpDescribeWithQuery),
	}, s.handleDescribeScreenWithQuestion)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        tools.OpCaptureOnly,
		Description: opDescription(tools.OpCaptureOnly),
	}, s.handleCaptureOnly)
}

func opDescription(name string) string {
	op, ok := tools.LookupOp(name)
	if !ok {
		panic(fmt.Sprintf("operation %q missing from table", name))
	}
	return op.Description
}

func (s *Server) handleListScreens(ctx context.Context, _ *mcpsdk.CallToolRequest, _ ListScreensInput) (*mcpsdk.CallToolResult, ListScreensOutput, error) {
	res, err := s.dispatcher.Dispatch(ctx, tools.Request{Op: tools.OpListScreens})
	if err != nil {
		return nil, ListScreensOutput{}, err
	}
	return nil, ListScreensOutput{Screens: res.Screens}, nil
}

func (s *Server) handleDescribeScreen(ctx context.Context, _ *mcpsdk.CallToolRequest, args DescribeScreenInput) (*mcpsdk.CallToolResult, DescribeOutput, error) {
	params := map[string]any{
		"screen_number": args.ScreenNumber,
	}
	if args.Focus != "" {
		params["focus"] = args.Focus
	}
	if args.SaveToDir != "" {
		params["save_to_directory"] = args.SaveToDir
	}
	res, err := s.dispatcher.Dispatch(ctx, tools.Request{Op: tools.OpDescribeScreen, Params: params})
	if err != nil {
		return nil, DescribeOutput{}, err
	}
	return nil, DescribeOutput{SavedPaths: res.SavedPaths, Description: res.Description}, nil
}

func (s *Server) handleDescribeScreenWithQuestion(ctx context.Context, _ *mcpsdk.CallToolRequest, args DescribeScreenWithQuestionInput) (*mcpsdk.CallToolResult, DescribeOutput, error) {
	params := map[string]any{
		"question":      args.Question,
		"screen_number": args.ScreenNumber,
	}
	if args.SaveToDir != "" {
		params["save_to_directory"] = args.SaveToDir
	}
	res, err := s.dispatcher.Dispatch(ctx, tools.Request{Op: tools.OpDescribeWithQuery, Params: params})
	if err != nil {
		return nil, DescribeOutput{}, err
	}
	return nil, DescribeOutput{SavedPaths: res.SavedPaths, Description: res.Description}, nil
}

func (s *Server) handleCaptureOnly(ctx context.Context, _ *mcpsdk.CallToolRequest, args CaptureOnlyInput) (*mcpsdk.CallToolResult, CaptureOnlyOutput, error) {
	params := map[string]any{
		"screen_number": args.ScreenNumber,
		"fast":          args.Fast,
	}
	if args.SaveToDir != "" {
		params["save_to_directory"] = args.SaveToDir
	}
	res, err := s.dispatcher.Dispatch(ctx, tools.Request{Op: tools.OpCaptureOnly, Params: params})
	if err != nil {
		return nil, CaptureOnlyOutput{}, err
	}
	return nil, CaptureOnlyOutput{SavedPaths: res.SavedPaths}, nil
}
