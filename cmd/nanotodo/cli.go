package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arthur-debert/nanotodo/internal/config"
	"github.com/arthur-debert/nanotodo/nanotodo"
	"github.com/arthur-debert/nanotodo/nanotodo/storage"
	"github.com/arthur-debert/nanotodo/nanotodo/store"
)

const annotationLenient = "lenient-config"

// CLI wires cobra commands to a viper-resolved configuration and a task
// collection opened on demand
type CLI struct {
	rootCmd   *cobra.Command
	viperInst *viper.Viper

	cfg        *config.Config
	logger     *slog.Logger
	closeLog   func() error
	bridge     *storage.Bridge
	collection *nanotodo.Collection

	now func() time.Time
}

// NewCLI creates the command tree
func NewCLI() *CLI {
	cli := &CLI{
		viperInst: viper.New(),
		logger:    slog.Default(),
		now:       time.Now,
	}

	cli.setupViperConfig()
	cli.createRootCommand()
	cli.addCommands()

	return cli
}

// Execute runs the root command
func (cli *CLI) Execute() error {
	return cli.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx and releases the backend and
// log file afterwards, also when the command failed
func (cli *CLI) ExecuteContext(ctx context.Context) error {
	err := cli.rootCmd.ExecuteContext(ctx)
	if closeErr := cli.close(); err == nil {
		err = closeErr
	}
	return err
}

// SetArgs overrides os.Args, for tests
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

// SetOutput redirects command output, for tests
func (cli *CLI) SetOutput(out, errOut io.Writer) {
	cli.rootCmd.SetOut(out)
	cli.rootCmd.SetErr(errOut)
}

// setupViperConfig configures config file discovery, NANOTODO_* environment
// variables and defaults. An optional .env is loaded first so its values are
// visible as environment variables.
func (cli *CLI) setupViperConfig() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	config.Setup(cli.viperInst)
}

// createRootCommand creates the root Cobra command with Viper integration
func (cli *CLI) createRootCommand() {
	cli.rootCmd = &cobra.Command{
		Use:   "nanotodo",
		Short: "nanotodo - a small local task list",
		Long: `nanotodo keeps a single list of tasks, each with a due date, and lets you
add, edit, complete and delete them from the command line or an interactive UI.

Configuration Sources (in order of precedence):
1. Command line flags
2. Environment variables (NANOTODO_*), optionally loaded from ./.env
3. Configuration file
4. Built-in defaults

Configuration File Discovery:
  NANOTODO_CONFIG=/path/to/config.yaml    # Custom config file path
  ./nanotodo.yaml                         # Current directory
  $XDG_CONFIG_HOME/nanotodo/nanotodo.yaml # User config directory
  ~/.nanotodo/nanotodo.yaml               # Home directory

Examples:
  nanotodo add "Buy groceries" --due 2025-01-10
  nanotodo list --filter active --sort dueDate --order asc
  nanotodo toggle 3f2a
  NANOTODO_BACKEND=sqlite nanotodo stats
  nanotodo tui`,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.loadConfig(cmd)
		},
	}

	cli.addGlobalFlags()
}

// addGlobalFlags adds persistent flags that apply to all commands
func (cli *CLI) addGlobalFlags() {
	flags := cli.rootCmd.PersistentFlags()

	flags.StringP("backend", "b", "", "Storage backend (file|sqlite|memory)")
	flags.StringP("data-dir", "d", "", "Directory holding the task data")
	flags.StringP("key", "k", "", "Storage key the task list is saved under")
	flags.String("locale", "", "BCP 47 locale for alphabetical sorting")
	flags.StringP("format", "f", "", "Output format (table|markdown|json|yaml)")
	flags.String("log-level", "", "Log level (debug|info|warn|error)")
	flags.BoolP("verbose", "v", false, "Also write logs to stderr")

	bindings := map[string]string{
		"backend":   "backend",
		"data-dir":  "data_dir",
		"key":       "key",
		"locale":    "locale",
		"format":    "format",
		"log-level": "log.level",
		"verbose":   "verbose",
	}
	for flag, key := range bindings {
		_ = cli.viperInst.BindPFlag(key, flags.Lookup(flag))
	}
}

// addCommands adds all the CLI commands
func (cli *CLI) addCommands() {
	// Task commands
	cli.addAddCommand()
	cli.addListCommand()
	cli.addToggleCommand()
	cli.addEditCommand()
	cli.addDeleteCommand()
	cli.addStatsCommand()
	cli.addSearchCommand()

	// Interactive UI
	cli.addTUICommand()

	// Administrative commands
	cli.addMigrateCommand()
	cli.addConfigCommand()
}

// loadConfig resolves and validates the configuration and starts logging
func (cli *CLI) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(cli.viperInst)
	if err != nil {
		return NewConfigError(cmd.Name(), err)
	}
	// config subcommands must work even when the current settings are broken
	if err := cfg.Validate(); err != nil && cmd.Annotations[annotationLenient] == "" {
		return NewConfigError(cmd.Name(), err)
	}
	cli.cfg = cfg

	logger, closeLog, err := initLogging(cfg.Log.Level, cli.viperInst.GetBool("verbose"), cmd.ErrOrStderr())
	if err != nil {
		// Logging is best effort; the command still runs
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		return nil
	}
	cli.logger = logger
	cli.closeLog = closeLog
	cli.logger.Debug("configuration loaded",
		"command", cmd.Name(),
		"config_file", config.UsedFile(cli.viperInst),
		"backend", cfg.Backend,
		"data_dir", cfg.DataDir)
	return nil
}

// openBridge opens the configured backend once per process
func (cli *CLI) openBridge() (*storage.Bridge, error) {
	if cli.bridge != nil {
		return cli.bridge, nil
	}
	kv, err := store.Open(cli.cfg.Backend, cli.cfg.DataDir, cli.logger)
	if err != nil {
		return nil, err
	}
	cli.bridge = storage.NewBridge(kv, storage.WithKey(cli.cfg.Key), storage.WithLogger(cli.logger))
	return cli.bridge, nil
}

// openCollection opens the bridge and loads the task list
func (cli *CLI) openCollection(ctx context.Context) (*nanotodo.Collection, error) {
	if cli.collection != nil {
		return cli.collection, nil
	}
	bridge, err := cli.openBridge()
	if err != nil {
		return nil, err
	}
	coll, err := nanotodo.Open(ctx, bridge, cli.collectionOptions()...)
	if err != nil {
		return nil, err
	}
	cli.collection = coll
	return coll, nil
}

func (cli *CLI) collectionOptions() []nanotodo.Option {
	return []nanotodo.Option{
		nanotodo.WithClock(cli.now),
		nanotodo.WithLogger(cli.logger),
		nanotodo.WithLocale(cli.cfg.Locale),
	}
}

// resolve turns a user-supplied ID prefix into a full ID
func (cli *CLI) resolve(operation string, coll *nanotodo.Collection, prefix string) (string, error) {
	id, err := coll.Resolve(prefix)
	if err != nil {
		return "", WrapError(operation, prefix, err)
	}
	return id, nil
}

func (cli *CLI) close() error {
	var err error
	if cli.bridge != nil {
		err = cli.bridge.Close()
		cli.bridge = nil
		cli.collection = nil
	}
	if cli.closeLog != nil {
		_ = cli.closeLog()
		cli.closeLog = nil
	}
	return err
}
