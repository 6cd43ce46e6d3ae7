package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tagwalk/internal/config"
	"tagwalk/internal/format"
	"tagwalk/internal/logging"
	"tagwalk/pkg/annotation"
)

// app carries flag values and the resolved configuration of one invocation.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	table      string
	output     string
	parallel   int

	cfg config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "tagwalk",
		Short: "Walk and report the tags on class members",
		Long: "tagwalk reads a table of classes with tagged fields and methods and\n" +
			"reports the tags it finds, the search layout they declare, or serves\n" +
			"both over MCP.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Config file (YAML or JSON)")
	pf.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (default info)")
	pf.StringVar(&a.logFormat, "log-format", "", "Log format: text or json (default text)")
	pf.StringVar(&a.table, "table", "", "Metadata table file (YAML or JSON)")
	pf.StringVarP(&a.output, "output", "o", "", "Output: ascii, markdown, csv or json (default ascii)")
	pf.IntVar(&a.parallel, "parallel", 0, "Classes walked at once (default 1 = serial)")

	root.AddCommand(newWalkCmd(a, walkFields))
	root.AddCommand(newWalkCmd(a, walkMethods))
	root.AddCommand(newWalkCmd(a, walkAll))
	root.AddCommand(newSearchCmd(a))
	root.AddCommand(newServeCmd(a))
	return root
}

// setup resolves config from defaults, file, environment and flags, in
// that order, then initializes logging.
func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Defaults()
	if a.configPath != "" {
		var err error
		if cfg, err = config.Load(a.configPath); err != nil {
			return err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = a.logFormat
	}
	if flags.Changed("table") {
		cfg.Table = a.table
	}
	if flags.Changed("output") {
		cfg.Output = a.output
	}
	if flags.Changed("parallel") {
		cfg.Parallel = a.parallel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	logFormat, _ := logging.ParseFormat(cfg.LogFormat)
	logging.Init(level, logFormat, cmd.ErrOrStderr())
	a.cfg = cfg
	return nil
}

func (a *app) loadTable() (*annotation.Table, error) {
	if a.cfg.Table == "" {
		return nil, fmt.Errorf("no table given (use --table, the config file or $%s)", config.EnvTable)
	}
	return annotation.LoadTable(a.cfg.Table)
}

func (a *app) outputMode() format.Mode {
	m, _ := format.ParseMode(a.cfg.Output)
	return m
}
