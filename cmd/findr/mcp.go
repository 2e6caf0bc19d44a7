package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/taigrr/findr/internal/config"
	"github.com/taigrr/findr/internal/logging"
	"github.com/taigrr/findr/internal/search"
)

type (
	// FindInput contains parameters for the find tool.
	FindInput struct {
		Paths    []string `json:"paths,omitempty" jsonschema:"Paths to search (default: the paths the server was started with, else the working directory)"`
		Names    []string `json:"names,omitempty" jsonschema:"Regular expressions matched against entry base names; an entry matches if any of them matches"`
		Types    []string `json:"types,omitempty" jsonschema:"Entry types to include: f (file), d (directory), l (symlink)"`
		Exclude  []string `json:"exclude,omitempty" jsonschema:"Globs of entries to skip, relative to each search path"`
		MaxDepth *int     `json:"maxDepth,omitempty" jsonschema:"Maximum depth below each search path (default: unlimited)"`
		Limit    int      `json:"limit,omitempty" jsonschema:"Maximum number of matches to return (default: 1000)"`
	}

	// FindOutput contains the result of a find.
	FindOutput struct {
		Matches   []string `json:"matches"`
		Errors    []string `json:"errors,omitempty"`
		Truncated bool     `json:"truncated,omitempty"`
	}
)

func runServer(ctx context.Context, defaults config.Options, logger zerolog.Logger) error {
	// Reject bad server options up front rather than on every call.
	if _, err := config.Build(defaults); err != nil {
		return err
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "findr",
		Version: version,
	}, nil)

	registerTools(server, defaults, logging.Module(logger, "mcp"))

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("error running server: %w", err)
	}

	return nil
}

func registerTools(server *mcp.Server, defaults config.Options, logger zerolog.Logger) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "find",
		Description: "Recursively walk paths and list entries whose base name matches any of the given regular expressions and whose type is one of the given types. Unreadable entries are reported in errors without stopping the walk.",
	}, findHandler(defaults, logger))
}

// findHandler answers find calls. Paths and maxDepth in a call replace the
// server defaults; names, types and exclude are added to them.
func findHandler(defaults config.Options, logger zerolog.Logger) mcp.ToolHandlerFor[FindInput, FindOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input FindInput) (*mcp.CallToolResult, FindOutput, error) {
		opts := defaults
		opts.Names = append(slices.Clone(defaults.Names), input.Names...)
		opts.Types = slices.Clone(defaults.Types)
		opts.Exclude = append(slices.Clone(defaults.Exclude), input.Exclude...)
		if len(input.Paths) > 0 {
			opts.Paths = input.Paths
		}
		if input.MaxDepth != nil {
			opts.MaxDepth = *input.MaxDepth
			opts.MaxDepthSet = true
		}
		for _, token := range input.Types {
			if err := opts.Types.Set(token); err != nil {
				return &mcp.CallToolResult{IsError: true}, FindOutput{}, err
			}
		}

		cfg, err := config.Build(opts)
		if err != nil {
			return &mcp.CallToolResult{IsError: true}, FindOutput{}, err
		}

		logger.Debug().Strs("paths", cfg.Paths).Msg("find")

		result, err := search.New(cfg, logger).Find(ctx, input.Limit)
		if err != nil {
			return &mcp.CallToolResult{IsError: true}, FindOutput{}, err
		}

		return nil, FindOutput{
			Matches:   result.Matches,
			Errors:    result.Errors,
			Truncated: result.Truncated,
		}, nil
	}
}
