// Package cmd contains the CLI commands for tsvwriter.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"tsvwriter/emit"
	"tsvwriter/internal/analyze"
	"tsvwriter/internal/config"
	"tsvwriter/internal/schema"
	"tsvwriter/plan"
)

// Version is the current version of tsvwriter.
var Version = "0.1.0"

type options struct {
	configPath string
	dir        string
	delimiter  string
	logLevel   string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "tsvwriter",
		Short: "Preview the tabular export of tagged Go structs",
		Long: `tsvwriter inspects Go packages without running them and shows how a struct
type would be exported as delimited text: its header line and its plan tree.

Fields take part through the tsv struct tag:

  ID    int64       ` + "`tsv:\"Order ID\"`" + `
  Items []OrderItem ` + "`tsv:\",inline\" tsvdelim:\";\"`" + `

Examples:
  tsvwriter header ./store Order
  tsvwriter plan ./store Order --format dump`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config file (default: nearest "+config.FileName+")")
	root.PersistentFlags().StringVar(&opts.dir, "dir", "", "Directory to resolve package patterns from")
	root.PersistentFlags().StringVar(&opts.delimiter, "delimiter", "", "Row delimiter (overrides config)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug|info|warn|error (overrides config)")

	root.AddCommand(newHeaderCmd(opts), newPlanCmd(opts))

	return root
}

// Execute runs the CLI. It is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// session is the state shared by commands after flags and config are resolved.
type session struct {
	cfg     *config.Config
	logger  *slog.Logger
	emitter *emit.Emitter
	source  plan.Source
}

func (o *options) session(cmd *cobra.Command) (*session, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFromPath(o.configPath)
	} else {
		cfg, err = config.Load(o.workDir())
	}
	if err != nil {
		return nil, err
	}

	if o.delimiter != "" {
		cfg.Output.RowDelimiter = o.delimiter
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	s := &session{
		cfg:    cfg,
		logger: logger,
		emitter: emit.New(emit.Options{
			RowDelimiter: cfg.Output.RowDelimiter,
			Logger:       logger,
		}),
		source: plan.TagSource,
	}

	if cfg.Schema != "" {
		f, err := schema.LoadFile(cfg.Schema)
		if err != nil {
			return nil, err
		}
		s.source = f.Source(plan.TagSource)
	}

	return s, nil
}

func (o *options) workDir() string {
	if o.dir != "" {
		return o.dir
	}

	return "."
}

// buildPlan loads pattern, finds typeName and builds its plan statically.
func (s *session) buildPlan(dir, pattern, typeName string) (*plan.Node, error) {
	graph, err := analyze.NewAnalyzer(dir).LoadPackages(pattern)
	if err != nil {
		return nil, err
	}

	d, err := graph.Lookup(typeName)
	if err != nil {
		return nil, err
	}

	b := plan.NewBuilder(s.source)
	root, err := b.Build(d)

	diags := b.Diagnostics()
	for _, w := range diags.Warnings {
		s.logger.Warn("plan warning", "type", d.ID().String(), "diagnostic", w.String())
	}
	if err != nil {
		return nil, err
	}

	s.logger.Debug("plan built", "type", d.ID().String(), "columns", root.Width())

	if err := s.emitter.Check(root); err != nil {
		return nil, err
	}

	return root, nil
}
