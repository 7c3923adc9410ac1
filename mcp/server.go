// Package mcp provides the MCP (Model Context Protocol) server for
// graphweave.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bwelter/graphweave/internal/generators"
	"github.com/bwelter/graphweave/internal/graph"
	"github.com/bwelter/graphweave/internal/linkers"
	"github.com/bwelter/graphweave/internal/pipeline"
	"github.com/bwelter/graphweave/internal/registry"
	"github.com/bwelter/graphweave/internal/render"
	"github.com/bwelter/graphweave/internal/seedseq"
)

// Server represents the MCP server.
type Server struct {
	version string
	server  *mcp.Server
}

// Tool represents an MCP tool.
type Tool struct {
	Name        string
	Description string
	InputSchema *jsonschema.Schema
}

// Resource represents an MCP resource.
type Resource struct {
	URI         string
	Name        string
	Description string
	MimeType    string
}

// NewServer creates a new MCP server.
func NewServer(version string) *Server {
	s := &Server{version: version}

	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    "graphweave",
		Version: version,
	}, nil)

	return s
}

// ListTools returns all registered tools.
func (s *Server) ListTools() []Tool {
	return []Tool{
		{
			Name:        "weave_generate",
			Description: "Generate a community-structured graph. Returns the graph in the requested format, preceded by the seed and summary figures needed to reproduce it.",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"outer":       {Type: "string", Description: "Outer generator, e.g. ba/20,3"},
					"inner":       {Type: "string", Description: "Inner generator, e.g. ws/50,4,0.25"},
					"linker":      {Type: "string", Description: "Linker, e.g. random/0.1"},
					"orientation": {Type: "string", Description: "directed or undirected (default directed)"},
					"format":      {Type: "string", Description: "Output format: apx, dot, graphml or iccma (default dot)"},
					"seed":        {Type: "integer", Description: "Master seed; omit for a random one"},
					"workers":     {Type: "integer", Description: "Worker cap; omit for one per CPU"},
				},
				Required: []string{"outer", "inner", "linker"},
			},
		},
		{
			Name:        "weave_generators",
			Description: "List the available graph generators with their descriptions.",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"orientation": {Type: "string", Description: "Restrict to generators usable for this orientation"},
				},
			},
		},
		{
			Name:        "weave_linkers",
			Description: "List the available inter-community linkers with their descriptions.",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"orientation": {Type: "string", Description: "Restrict to linkers usable for this orientation"},
				},
			},
		},
		{
			Name:        "weave_formats",
			Description: "List the available output formats with their descriptions.",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"orientation": {Type: "string", Description: "Restrict to formats usable for this orientation"},
				},
			},
		},
	}
}

// ListResources returns all registered resources.
func (s *Server) ListResources() []Resource {
	return []Resource{
		{
			URI:         "graphweave://generators",
			Name:        "Generator Catalog",
			Description: "All built-in graph generators",
			MimeType:    "text/plain",
		},
		{
			URI:         "graphweave://linkers",
			Name:        "Linker Catalog",
			Description: "All built-in inter-community linkers",
			MimeType:    "text/plain",
		},
		{
			URI:         "graphweave://formats",
			Name:        "Format Catalog",
			Description: "All built-in output formats",
			MimeType:    "text/plain",
		},
	}
}

// CallTool executes a tool with the given arguments.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	switch name {
	case "weave_generate":
		return handleGenerate(ctx, args)
	case "weave_generators":
		return handleListing(generators.Catalog().List, generators.Catalog().ListFor, args)
	case "weave_linkers":
		return handleListing(linkers.Catalog().List, linkers.Catalog().ListFor, args)
	case "weave_formats":
		return handleListing(render.Catalog().List, render.Catalog().ListFor, args)
	default:
		return "", fmt.Errorf("unknown tool: %s", name)
	}
}

// ReadResource reads a resource by URI.
func (s *Server) ReadResource(_ context.Context, uri string) (string, error) {
	switch uri {
	case "graphweave://generators":
		return registry.Columns(generators.Catalog().List()), nil
	case "graphweave://linkers":
		return registry.Columns(linkers.Catalog().List()), nil
	case "graphweave://formats":
		return registry.Columns(render.Catalog().List()), nil
	default:
		return "", fmt.Errorf("unknown resource: %s", uri)
	}
}

// Run starts the MCP server with stdio transport.
func (s *Server) Run(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	if stdin == nil || stdout == nil {
		return fmt.Errorf("stdin and stdout must not be nil")
	}

	reader := bufio.NewReader(stdin)
	encoder := json.NewEncoder(stdout)
	// Note: Do NOT use SetIndent - MCP protocol requires compact JSON (one line per message)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := reader.ReadBytes('\n')
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		var req map[string]any
		if err := json.Unmarshal(line, &req); err != nil {
			continue
		}

		resp := s.handleRequest(ctx, req)
		if err := encoder.Encode(resp); err != nil {
			return err
		}
	}
}

func (s *Server) handleRequest(ctx context.Context, req map[string]any) map[string]any {
	method, _ := req["method"].(string)
	id := req["id"]

	switch method {
	case "initialize":
		return s.handleInitialize(id)
	case "tools/list":
		return s.handleToolsList(id)
	case "tools/call":
		return s.handleToolsCall(ctx, id, req)
	case "resources/list":
		return s.handleResourcesList(id)
	case "resources/read":
		return s.handleResourcesRead(ctx, id, req)
	default:
		return errorResponse(id, -32601, "Method not found: "+method)
	}
}

func (s *Server) handleInitialize(id any) map[string]any {
	return map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"result": map[string]any{
			"protocolVersion": "2024-11-05",
			"serverInfo": map[string]any{
				"name":    "graphweave",
				"version": s.version,
			},
			"capabilities": map[string]any{
				"tools": map[string]any{
					"listChanged": false,
				},
				"resources": map[string]any{
					"listChanged": false,
				},
			},
		},
	}
}

func (s *Server) handleToolsList(id any) map[string]any {
	tools := s.ListTools()
	toolList := make([]map[string]any, len(tools))
	for i, tool := range tools {
		schema, _ := json.Marshal(tool.InputSchema)
		var schemaMap map[string]any
		json.Unmarshal(schema, &schemaMap)

		toolList[i] = map[string]any{
			"name":        tool.Name,
			"description": tool.Description,
			"inputSchema": schemaMap,
		}
	}

	return map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"result": map[string]any{
			"tools": toolList,
		},
	}
}

func (s *Server) handleToolsCall(ctx context.Context, id any, req map[string]any) map[string]any {
	params, _ := req["params"].(map[string]any)
	if params == nil {
		return errorResponse(id, -32602, "Invalid params")
	}

	name, _ := params["name"].(string)
	args, _ := params["arguments"].(map[string]any)

	result, err := s.CallTool(ctx, name, args)
	if err != nil {
		return errorResponse(id, -32000, err.Error())
	}

	return map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"result": map[string]any{
			"content": []map[string]any{
				{
					"type": "text",
					"text": result,
				},
			},
		},
	}
}

func (s *Server) handleResourcesList(id any) map[string]any {
	resources := s.ListResources()
	resourceList := make([]map[string]any, len(resources))
	for i, res := range resources {
		resourceList[i] = map[string]any{
			"uri":         res.URI,
			"name":        res.Name,
			"description": res.Description,
			"mimeType":    res.MimeType,
		}
	}

	return map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"result": map[string]any{
			"resources": resourceList,
		},
	}
}

func (s *Server) handleResourcesRead(ctx context.Context, id any, req map[string]any) map[string]any {
	params, _ := req["params"].(map[string]any)
	if params == nil {
		return errorResponse(id, -32602, "Invalid params")
	}

	uri, _ := params["uri"].(string)

	content, err := s.ReadResource(ctx, uri)
	if err != nil {
		return errorResponse(id, -32000, err.Error())
	}

	return map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"result": map[string]any{
			"contents": []map[string]any{
				{
					"uri":      uri,
					"mimeType": "text/plain",
					"text":     content,
				},
			},
		},
	}
}

// Tool Handlers

func handleGenerate(ctx context.Context, args map[string]any) (string, error) {
	o := graph.Directed
	if raw, ok := args["orientation"].(string); ok && raw != "" {
		parsed, err := graph.ParseOrientation(raw)
		if err != nil {
			return "", err
		}
		o = parsed
	}

	outerConfig, _ := args["outer"].(string)
	innerConfig, _ := args["inner"].(string)
	linkerConfig, _ := args["linker"].(string)

	outer, err := generators.Catalog().Resolve(outerConfig, o)
	if err != nil {
		return "", fmt.Errorf("outer generator: %w", err)
	}
	inner, err := generators.Catalog().Resolve(innerConfig, o)
	if err != nil {
		return "", fmt.Errorf("inner generator: %w", err)
	}
	link, err := linkers.Catalog().Resolve(linkerConfig, o)
	if err != nil {
		return "", fmt.Errorf("linker: %w", err)
	}

	formatName := "dot"
	if raw, ok := args["format"].(string); ok && raw != "" {
		formatName = raw
	}
	format, err := render.Catalog().Resolve(formatName, o)
	if err != nil {
		return "", fmt.Errorf("format: %w", err)
	}

	seed := seedseq.Entropy()
	if raw, ok := args["seed"].(float64); ok {
		seed = uint64(raw)
	}
	workers := 0
	if raw, ok := args["workers"].(float64); ok {
		workers = int(raw)
	}

	result, err := pipeline.Run(ctx, outer, inner, link, o, seed, pipeline.Options{Workers: workers})
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Seed: %d\n", result.Seed)
	fmt.Fprintf(&sb, "Communities: %d x %d nodes\n", result.Stats.Communities, result.Stats.CommunityNodes)
	fmt.Fprintf(&sb, "Nodes: %d, Edges: %d (%d cross-community)\n\n", result.Stats.Nodes, result.Stats.Edges, result.Stats.CrossEdges)
	if err := format.Render(&sb, result.Graph); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func handleListing(list func() iter.Seq[registry.Listing], listFor func(graph.Orientation) iter.Seq[registry.Listing], args map[string]any) (string, error) {
	if raw, ok := args["orientation"].(string); ok && raw != "" {
		o, err := graph.ParseOrientation(raw)
		if err != nil {
			return "", err
		}
		return registry.Columns(listFor(o)), nil
	}
	return registry.Columns(list()), nil
}

// Helper functions

func errorResponse(id any, code int, message string) map[string]any {
	return map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	}
}
