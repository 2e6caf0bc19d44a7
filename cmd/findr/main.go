// Package main implements findr, which walks directory trees and prints the
// entries matching name and type filters.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/taigrr/findr/internal/config"
	"github.com/taigrr/findr/internal/logging"
	"github.com/taigrr/findr/internal/search"
)

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCommand(),
		fang.WithVersion(version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		opts    config.Options
		verbose bool
		serve   bool
	)

	cmd := &cobra.Command{
		Use:   "findr [PATH ...]",
		Short: "Find filesystem entries by name and type",
		Long: `findr recursively walks each PATH (default: the current directory) and
prints every entry whose base name matches one of the --name regular
expressions and whose type is one of the --type values. Unreadable
entries are reported on stderr and the walk continues.`,
		Example: `findr src -n '\.go$' -t f
findr . -t d -e node_modules -e .git
findr --mcp ~/projects`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			opts.MaxDepthSet = cmd.Flags().Changed("max-depth")
			logger := logging.New(cmd.ErrOrStderr(), verbose)

			if serve {
				return runServer(cmd.Context(), opts, logger)
			}
			return runFind(cmd, opts, logger)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&opts.Names, "name", "n", nil, "regular expression matched against entry base names (repeatable)")
	flags.VarP(&opts.Types, "type", "t", "entry type: f (file), d (directory), l (symlink) (repeatable)")
	flags.StringArrayVarP(&opts.Exclude, "exclude", "e", nil, "glob of entries to skip, relative to each PATH (repeatable)")
	flags.IntVar(&opts.MaxDepth, "max-depth", config.UnlimitedDepth, "maximum depth below each PATH, -1 for unlimited")
	flags.StringVarP(&opts.ConfigFile, "config", "c", "", "YAML file with default paths, names, types and excludes")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")
	flags.BoolVar(&serve, "mcp", false, "serve the find tool over MCP stdio instead of printing matches")

	return cmd
}

func runFind(cmd *cobra.Command, opts config.Options, logger zerolog.Logger) error {
	cfg, err := config.Build(opts)
	if err != nil {
		return err
	}

	logger.Debug().
		Strs("paths", cfg.Paths).
		Int("names", len(cfg.Filter.Names)).
		Int("types", len(cfg.Filter.Types)).
		Int("maxDepth", cfg.MaxDepth).
		Msg("configuration built")

	svc := search.New(cfg, logging.Module(logger, "search"))
	return svc.Run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr())
}
