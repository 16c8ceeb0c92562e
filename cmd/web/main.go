package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/fmcg-atlas/pkg/server"
	"github.com/de-tools/fmcg-atlas/pkg/services"
	"github.com/de-tools/fmcg-atlas/pkg/services/config"
)

var (
	cfgPath      string
	profile      string
	profilesPath string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:          "web",
		Short:        "Start the web server for FMCG Atlas",
		SilenceUsage: true,
		RunE:         runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to a config file (yaml, toml or json)")
	rootCmd.Flags().StringVar(&profile, "profile", "", "Report source profile to apply")
	rootCmd.Flags().StringVar(&profilesPath, "profiles", "",
		"Path to the profiles file (default is $HOME/.fmcgcfg)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return err
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	if profile != "" {
		if profilesPath == "" {
			if profilesPath, err = config.DefaultProfilesPath(); err != nil {
				return fmt.Errorf("failed to locate profiles file: %w", err)
			}
		}
		registry, err := config.NewRegistry(profilesPath)
		if err != nil {
			return fmt.Errorf("failed to create config registry: %w", err)
		}
		if err := registry.Apply(ctx, profile, &cfg.Source); err != nil {
			return err
		}
		logger.Info().Msgf("Profile `%s` loaded from `%s`.", profile, profilesPath)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger = logger.Level(level)
	ctx = logger.WithContext(ctx)

	svc, err := services.New(ctx, cfg.Source)
	if err != nil {
		return err
	}

	logger.Info().
		Str("kind", cfg.Source.Kind).
		Str("base_url", cfg.Source.BaseURL).
		Str("root", cfg.Source.Root).
		Str("bucket", cfg.Source.Bucket).
		Msg("report source configured")

	api := server.NewWebAPI(server.Config{
		Addr:            cfg.Server.Addr,
		RequestTimeout:  cfg.Server.RequestTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		RateLimit:       cfg.Server.RateLimit,
		Production:      cfg.Server.Production,
		Dependencies: server.Dependencies{
			Insights: svc.Insights,
			Forecast: svc.Forecast,
			Logger:   logger,
		},
	})

	if err := api.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
