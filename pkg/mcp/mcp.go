// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

// package mcp Provides an MCP server and argument structures for MCP client calls.
package mcp

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/korrel8r/implindex/internal/pkg/text"
	"github.com/korrel8r/implindex/pkg/build"
	"github.com/korrel8r/implindex/pkg/implementors"
	"github.com/korrel8r/implindex/pkg/registry"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const StreamablePath = "/mcp"

type CapabilityParams struct {
	Capability string   `json:"capability" jsonschema:"Fully qualified capability (trait) path, for example core::hash::Hasher"`
	Exclude    []string `json:"exclude,omitempty" jsonschema:"Units (crates) to leave out, usually the crate being documented. Replaces the server default, an empty list excludes nothing"`
}

type UnitParams struct {
	Capability string `json:"capability" jsonschema:"Fully qualified capability (trait) path"`
	Unit       string `json:"unit" jsonschema:"Name of the unit (crate)"`
}

const (
	ListCapabilities = "list_capabilities"
	ListImplementors = "list_implementors"
	GetUnit          = "get_unit"
	GetStatus        = "get_status"
)

type Server struct {
	*mcp.Server
	Registry *registry.Registry
	// Exclude is the default for list_implementors when the call has no exclude argument.
	Exclude []implementors.Unit
}

func NewServer(r *registry.Registry, exclude []implementors.Unit) *Server {
	s := mcp.NewServer(&mcp.Implementation{Name: "implindex", Title: "Implementor Index MCP Server", Version: build.Version}, nil)
	addTools(r, exclude, s)
	return &Server{Server: s, Registry: r, Exclude: exclude}
}

func addTools(r *registry.Registry, defaultExclude []implementors.Unit, s *mcp.Server) {
	p := text.NewPrinter(r)

	mcp.AddTool(s, &mcp.Tool{
		Name: ListCapabilities,
		Description: `
Returns a list of capabilities (traits) in the index.
Each line has the capability path, the number of units (crates) that contributed to it,
and the total number of implementors.
`,
	},
		func(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
			return textResult(text.WriteString(p.ListCapabilities)), nil, nil
		})

	mcp.AddTool(s, &mcp.Tool{
		Name: ListImplementors,
		Description: `
Returns the implementors of a capability grouped by the unit (crate) that declared them.
Each unit name is followed by one indented line per implementor.
A unit with no lines contributed an empty list: it was checked and has no implementors.
`,
	},
		func(ctx context.Context, req *mcp.CallToolRequest, params CapabilityParams) (*mcp.CallToolResult, any, error) {
			c := implementors.Capability(params.Capability)
			if !r.Index().Has(c) {
				return errorResult(implementors.CapabilityNotFoundError{Capability: c}), nil, nil
			}
			exclude := defaultExclude
			if params.Exclude != nil {
				exclude = make([]implementors.Unit, 0, len(params.Exclude))
				for _, u := range params.Exclude {
					exclude = append(exclude, implementors.Unit(u))
				}
			}
			return textResult(text.WriteString(func(w io.Writer) { p.Entries(w, c, exclude...) })), nil, nil
		})

	mcp.AddTool(s, &mcp.Tool{
		Name: GetUnit,
		Description: `
Returns the implementors one unit (crate) contributed to a capability, one per line.
Empty if the unit has no implementors, an error if the unit made no contribution.
`,
	},
		func(ctx context.Context, req *mcp.CallToolRequest, params UnitParams) (*mcp.CallToolResult, any, error) {
			c, u := implementors.Capability(params.Capability), implementors.Unit(params.Unit)
			if _, err := r.Index().ImplementorsErr(c, u); err != nil {
				return errorResult(err), nil, nil
			}
			return textResult(text.WriteString(func(w io.Writer) { p.Implementors(w, c, u) })), nil, nil
		})

	mcp.AddTool(s, &mcp.Tool{
		Name:        GetStatus,
		Description: `Returns the registrar state, the number of contributions still pending, and the number of capabilities.`,
	},
		func(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
			return textResult(text.WriteString(p.Status)), nil, nil
		})
}

// ServeStdio runs an MCP server, it returns when the client disconnects or the context is canceled.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.Run(ctx, &mcp.StdioTransport{})
}

// HTTPHandler  a handler for the Streaming MCP protocol.
func (s *Server) HTTPHandler() http.Handler {
	// Use the same server for all requests. Server and Registry are concurrent-safe.
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return s.Server }, nil)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: text}}}
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Error: %v", err)}},
		IsError: true,
	}
}
