// Package cmd implements the figpie command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/figpie/internal/config"
	"github.com/oakwood-commons/figpie/internal/formatter"
	"github.com/oakwood-commons/figpie/pkg/cell"
	"github.com/oakwood-commons/figpie/pkg/logger"
	"github.com/oakwood-commons/figpie/pkg/menu"
	"github.com/oakwood-commons/figpie/pkg/settings"
	"github.com/oakwood-commons/figpie/pkg/tui"
)

var (
	configFile     string
	debug          bool
	debugLog       string
	noColor        bool
	tick           time.Duration
	renderSnapshot bool
	startKeys      []string
	snapshotWidth  int
	snapshotHeight int
	startPath      string
	output         string

	dumpOutput   string
	dumpNoValues bool
	dumpDepth    int

	rootCtx = context.Background()
)

var rootCmd = &cobra.Command{
	Use:   "figpie [tree-file]",
	Short: "figpie - keyboard driven configuration menu",
	Long: `figpie opens a configuration tree as a terminal menu. Every entry gets a
one or two character shortcut; type it to enter a container, pick an enum
option or edit a property. With no tree file the built-in demo tree is used.

Tree files may be YAML, JSON, TOML or HCL.`,
	Example: "\n  figpie\n  figpie tree.yaml --path lvl1.lvl2\n  figpie tree.hcl --snapshot --keys vl --width 100\n",
	Args:    cobra.MaximumNArgs(1),
	Version: settings.VersionInformation.BuildVersion,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		// debug => zap.DebugLevel (-1), else zap.InfoLevel (0)
		var level int8 = 0
		if debug {
			level = -1
		}
		lgr := logger.Get(level)
		lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())
		rootCtx = logger.WithLogger(context.Background(), lgr)
	},
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configFile)
		if err != nil {
			return err
		}
		applyFlagOverrides(cmd, &cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		run := settings.NewCliParams()
		run.MinLogLevel = cfg.Log.Level
		run.DebugLog = cfg.Log.File
		run.NoColor = cfg.UI.NoColor
		run.Tick = cfg.UI.Tick
		run.StartPath = startPath
		if len(args) == 1 {
			run.TreeFile = args[0]
		}
		return runMenu(settings.IntoContext(rootCtx, run), cfg, cmd.OutOrStdout())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print figpie version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), cliVersionString())
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the merged configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(configFile)
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump [tree-file]",
	Short: "Print a tree, or its current values, without opening the menu",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := formatter.ParseFormat(dumpOutput)
		if err != nil {
			return err
		}
		var path string
		if len(args) == 1 {
			path = args[0]
		}
		tree, err := loadTree(path)
		if err != nil {
			return err
		}
		var out string
		if format == formatter.FormatTree {
			out = formatter.Tree(tree.Root, formatter.TreeOptions{NoValues: dumpNoValues, MaxDepth: dumpDepth, Kinds: true})
		} else if out, err = formatter.Encode(tree.Root, format); err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

// runMenu builds the menu for the run settings in ctx and either prints one
// frame or starts the interactive program.
func runMenu(ctx context.Context, cfg config.Config, out io.Writer) error {
	run, ok := settings.FromContext(ctx)
	if !ok {
		return fmt.Errorf("run settings missing from context")
	}
	lgr := logger.FromContext(ctx)

	var format formatter.Format
	if output != "" {
		f, err := formatter.ParseFormat(output)
		if err != nil {
			return err
		}
		format = f
	}

	tree, err := loadTree(run.TreeFile)
	if err != nil {
		return err
	}

	session := logger.NewSession()
	uiLog := logr.Discard()
	if run.DebugLog != "" {
		sink, err := logger.OpenSink(run.DebugLog)
		if err != nil {
			return err
		}
		defer func() {
			if err := sink.Close(); err != nil {
				lgr.Error(err, "closing debug log", "path", sink.Path())
			}
		}()
		uiLog = logger.New(run.MinLogLevel, sink).WithValues(logger.SessionKey, session)
	}
	lgr.V(1).Info("starting", logger.SessionKey, session, "tree", run.TreeFile, "actions", len(tree.Actions))

	tcfg := tui.Config{
		Tick:      run.Tick,
		NoColor:   run.NoColor,
		Theme:     &cfg.UI.Theme,
		StartPath: run.StartPath,
		StartKeys: startKeys,
		Menu: []menu.Option{
			menu.WithBackKey(cfg.Keys.Back),
			menu.WithQuitKey(cfg.Keys.Quit),
			menu.WithDeclared(tree.Actions...),
		},
		Log: uiLog,
	}
	if renderSnapshot {
		size := resolveSnapshotSize(snapshotWidth, snapshotHeight, tui.DetectTerminalSize)
		tcfg.Width, tcfg.Height = size.Width, size.Height
	} else {
		tcfg.Width, tcfg.Height = snapshotWidth, snapshotHeight
	}
	prog, err := tui.New(tree.Root, tcfg)
	if err != nil {
		if run.StartPath != "" && errors.Is(err, cell.ErrBadChildLookup) {
			return fmt.Errorf("--path: %w", err)
		}
		return err
	}

	if renderSnapshot {
		_, err := fmt.Fprintln(out, prog.Snapshot())
		return err
	}
	if err := prog.Run(); err != nil {
		return err
	}
	if format == "" {
		return nil
	}
	values, err := formatter.Encode(tree.Root, format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, values)
	return err
}

func init() {
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a YAML config file (default $XDG_CONFIG_HOME/figpie/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.Flags().StringVar(&debugLog, "debug-log", "", "write menu and input logs to this file")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable color output")
	rootCmd.Flags().DurationVar(&tick, "tick", settings.DefaultTick, "how long an ambiguous shortcut waits before it resolves")
	rootCmd.Flags().BoolVar(&renderSnapshot, "snapshot", false, "render a single frame and exit; honors --width/--height")
	rootCmd.Flags().StringArrayVar(&startKeys, "keys", nil, "replay keys on startup. Use <enter>, <esc>, <bs>, <space>, <timeout>; other text is typed as is")
	rootCmd.Flags().IntVar(&snapshotWidth, "width", 0, "output width in columns")
	rootCmd.Flags().IntVar(&snapshotHeight, "height", 0, "output height in rows")
	rootCmd.Flags().StringVar(&startPath, "path", "", `open this path first, e.g. lvl1.lvl2["float prop"]`)

	_ = rootCmd.RegisterFlagCompletionFunc("path", completePath)

	rootCmd.Flags().StringVarP(&output, "output", "o", "", "print the values on exit: tree|yaml|json|toml")

	dumpCmd.Flags().StringVarP(&dumpOutput, "output", "o", "tree", "output format: tree|yaml|json|toml")
	dumpCmd.Flags().BoolVar(&dumpNoValues, "no-values", false, "tree output shows structure only")
	dumpCmd.Flags().IntVar(&dumpDepth, "depth", 0, "limit tree depth (0 = unlimited)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(dumpCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
