// Package mcp exposes a loaded metadata table as read-only MCP tools.
package mcp

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"tagwalk/internal/catalog"
	"tagwalk/internal/logging"
	"tagwalk/internal/search"
	"tagwalk/pkg/annotation"
)

// Server wraps the MCP SDK server around one table.
type Server struct {
	MCPServer *sdkmcp.Server
	Table     *annotation.Table
	// Parallel bounds how many classes one collect call walks at once.
	Parallel int
}

// NewServer creates an MCP server with the catalog and search tools.
func NewServer(tbl *annotation.Table, version string) *Server {
	if version == "" {
		version = "dev"
	}
	s := &Server{Table: tbl, Parallel: 1}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "tagwalk", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "list_classes",
		Description: "List every class in the loaded table with its field and method counts.",
	}, s.handleListClasses)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "collect",
		Description: "Walk member tags of the given classes (all when empty) and return one row per collected tag.",
	}, s.handleCollect)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "search_config",
		Description: "Resolve the default search field, multi-field search fields and search methods of a class.",
	}, s.handleSearchConfig)
}

// --- Tool input/output types ---

type listClassesInput struct{}

type classSummary struct {
	Name    string `json:"name"`
	Fields  int    `json:"fields"`
	Methods int    `json:"methods"`
}

type listClassesOutput struct {
	Classes []classSummary `json:"classes"`
}

type collectInput struct {
	Classes []string `json:"classes,omitempty" jsonschema:"class names to walk (empty = every class)"`
	Mode    string   `json:"mode,omitempty" jsonschema:"fields, methods or all (default all)"`
	Keys    []string `json:"keys,omitempty" jsonschema:"keep only tags with these keys"`
	StopOn  string   `json:"stop_on,omitempty" jsonschema:"stop a class's walk at the first tag with this key"`
}

type collectOutput struct {
	Count int           `json:"count"`
	Rows  []catalog.Row `json:"rows"`
}

type searchConfigInput struct {
	Class string `json:"class" jsonschema:"class name"`
}

// --- Tool handlers ---

func (s *Server) handleListClasses(_ context.Context, _ *sdkmcp.CallToolRequest, _ listClassesInput) (*sdkmcp.CallToolResult, listClassesOutput, error) {
	out := listClassesOutput{Classes: []classSummary{}}
	for _, c := range s.Table.Classes() {
		fields, err := s.Table.DeclaredFields(c)
		if err != nil {
			return nil, listClassesOutput{}, err
		}
		methods, err := s.Table.DeclaredMethods(c)
		if err != nil {
			return nil, listClassesOutput{}, err
		}
		out.Classes = append(out.Classes, classSummary{Name: c.Name(), Fields: len(fields), Methods: len(methods)})
	}
	return nil, out, nil
}

func (s *Server) handleCollect(ctx context.Context, _ *sdkmcp.CallToolRequest, input collectInput) (*sdkmcp.CallToolResult, collectOutput, error) {
	logger := logging.New("mcp")

	mode, err := catalog.ParseMode(input.Mode)
	if err != nil {
		return nil, collectOutput{}, err
	}
	classes, err := catalog.Select(s.Table, input.Classes)
	if err != nil {
		return nil, collectOutput{}, err
	}
	rows, err := catalog.Run(ctx, s.Table, catalog.Request{
		Classes:  classes,
		Mode:     mode,
		Keys:     input.Keys,
		StopOn:   input.StopOn,
		Parallel: s.Parallel,
		Observer: &annotation.LogObserver{Logger: logger},
	})
	if err != nil {
		return nil, collectOutput{}, fmt.Errorf("collect: %w", err)
	}
	if rows == nil {
		rows = []catalog.Row{}
	}
	logger.Info("collect", "classes", len(classes), "mode", mode, "rows", len(rows))
	return nil, collectOutput{Count: len(rows), Rows: rows}, nil
}

func (s *Server) handleSearchConfig(_ context.Context, _ *sdkmcp.CallToolRequest, input searchConfigInput) (*sdkmcp.CallToolResult, search.Config, error) {
	if input.Class == "" {
		return nil, search.Config{}, fmt.Errorf("class is required")
	}
	c, err := s.Table.Class(input.Class)
	if err != nil {
		return nil, search.Config{}, err
	}
	cfg, err := search.Resolve(s.Table, c)
	if err != nil {
		return nil, search.Config{}, err
	}
	return nil, *cfg, nil
}
