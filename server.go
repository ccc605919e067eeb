package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gamma-omg/geofind/geometa"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type fileSearcher interface {
	Search(query string, limit int, filter *geometa.BBox) []Result
}

// NewFindServer exposes the finder as an MCP tool. Each result is returned
// as one JSON tuple per line.
func NewFindServer(finder fileSearcher, results int) *server.MCPServer {
	tool := mcp.NewTool("find_files",
		mcp.WithDescription("Fuzzy-search local geodata files by name, optionally restricted to a bounding box"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search query"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results"),
		),
		mcp.WithString("bbox",
			mcp.Description("Optional spatial filter as 'min_lon,min_lat,max_lon,max_lat'"),
		))

	srv := server.NewMCPServer("GeoFind", "0.1.0", server.WithToolCapabilities(false))
	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		q, err := request.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		filter, err := parseBBoxArg(request.GetString("bbox", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		limit := request.GetInt("limit", results)

		var response string
		for _, r := range finder.Search(q, limit, filter) {
			raw, err := json.Marshal(r)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			response += fmt.Sprintf("%s\n", string(raw))
		}

		return mcp.NewToolResultText(response), nil
	})

	return srv
}

func parseBBoxArg(arg string) (*geometa.BBox, error) {
	if arg == "" {
		return nil, nil
	}

	parts := strings.Split(arg, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("bbox must have 4 comma-separated values, got %d", len(parts))
	}

	var coords [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bbox value %q: %w", p, err)
		}
		coords[i] = v
	}

	b := geometa.BBox{MinX: coords[0], MinY: coords[1], MaxX: coords[2], MaxY: coords[3]}
	if !b.Valid() {
		return nil, fmt.Errorf("bbox (%s) is not a valid extent", arg)
	}

	return &b, nil
}
