package terminal

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/fmcg-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/fmcg-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/fmcg-atlas/pkg/services"
	"github.com/de-tools/fmcg-atlas/pkg/services/config"
	"github.com/de-tools/fmcg-atlas/pkg/store/source"
)

// CLI represents the command-line interface
type CLI struct {
	flags    globalFlags
	views    commands.Views
	reporter *export.Reporter
	logs     io.Writer
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	// Logs receives console log lines. Defaults to stderr.
	Logs io.Writer
	// Views skips config loading and serves reports from the given views.
	Views commands.Views
}

type globalFlags struct {
	config   string
	profile  string
	profiles string
	source   string
	baseURL  string
	root     string
	verbose  bool
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Logs == nil {
		opts.Logs = os.Stderr
	}

	cli := &CLI{
		views:    opts.Views,
		reporter: export.NewReporter(opts.Output),
		logs:     opts.Logs,
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "fmcg-atlas",
		Short:             "FMCG sales insights and forecasting reports",
		SilenceUsage:      true,
		PersistentPreRunE: cli.setup,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cli.flags.config, "config", "", "Path to a config file (yaml, toml or json)")
	flags.StringVar(&cli.flags.profile, "profile", "", "Report source profile to apply")
	flags.StringVar(&cli.flags.profiles, "profiles", "", "Path to the profiles file (default is $HOME/.fmcgcfg)")
	flags.StringVar(&cli.flags.source, "source", "", "Report source kind (http, file or s3)")
	flags.StringVar(&cli.flags.baseURL, "base-url", "", "Base URL serving the report files")
	flags.StringVar(&cli.flags.root, "root", "", "Directory holding the report files; implies --source file")
	flags.BoolVarP(&cli.flags.verbose, "verbose", "v", false, "Enable debug logging")

	views := func() commands.Views { return cli.views }
	cmd.AddCommand(commands.NewDashboardCmd(views, cli.reporter))
	cmd.AddCommand(commands.NewForecastCmd(views, cli.reporter))
	cmd.AddCommand(commands.NewExportCmd(views))
	cmd.AddCommand(commands.NewProfilesCmd(cli.registry))

	return cmd
}

func (cli *CLI) setup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if cli.views != nil {
		cmd.SetContext(cli.logger(zerolog.InfoLevel).WithContext(ctx))
		return nil
	}

	cfg, err := cli.loadConfig(ctx)
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger := cli.logger(level)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Debug().
		Str("kind", cfg.Source.Kind).
		Str("base_url", cfg.Source.BaseURL).
		Str("root", cfg.Source.Root).
		Str("bucket", cfg.Source.Bucket).
		Msg("report source configured")

	svc, err := services.New(ctx, cfg.Source)
	if err != nil {
		return err
	}
	cli.views = svc
	return nil
}

// loadConfig layers, lowest first: defaults, config file, FMCG_* env,
// the selected profile, then command-line flags.
func (cli *CLI) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(cli.flags.config)
	if err != nil {
		return nil, err
	}

	if cli.flags.profile != "" {
		registry, err := cli.registry()
		if err != nil {
			return nil, err
		}
		if err := registry.Apply(ctx, cli.flags.profile, &cfg.Source); err != nil {
			return nil, err
		}
	}

	if cli.flags.root != "" {
		cfg.Source.Kind = source.KindFile
		cfg.Source.Root = cli.flags.root
	}
	if cli.flags.source != "" {
		cfg.Source.Kind = cli.flags.source
	}
	if cli.flags.baseURL != "" {
		cfg.Source.BaseURL = cli.flags.baseURL
	}
	if cli.flags.verbose {
		cfg.Log.Level = zerolog.LevelDebugValue
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// registry opens --profiles, or ~/.fmcgcfg when the flag is unset.
func (cli *CLI) registry() (config.Registry, error) {
	path := cli.flags.profiles
	if path == "" {
		var err error
		if path, err = config.DefaultProfilesPath(); err != nil {
			return nil, fmt.Errorf("failed to locate profiles file: %w", err)
		}
	}
	registry, err := config.NewRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles file: %w", err)
	}
	return registry, nil
}

func (cli *CLI) logger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: cli.logs}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
