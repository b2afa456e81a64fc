package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joshuarubin/go-sway"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ForgottenUmbrella/swayblur/internal/api"
	"github.com/ForgottenUmbrella/swayblur/internal/cache"
	"github.com/ForgottenUmbrella/swayblur/internal/config"
	"github.com/ForgottenUmbrella/swayblur/internal/frames"
	"github.com/ForgottenUmbrella/swayblur/internal/logger"
	"github.com/ForgottenUmbrella/swayblur/internal/manager"
	"github.com/ForgottenUmbrella/swayblur/internal/sink"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate wallpaper frames and listen for sway focus events",
	Long: `Cache the configured wallpapers, pre-render the blurred frame sequence
for every output, then subscribe to sway's event stream and animate on each
focus change. Blocks until interrupted or the sway connection closes.`,
	Example: `  # Run with the default config
  swayblur run

  # Run with a specific config file and debug logging
  swayblur run --config ./config.yaml --log-level debug

  # Expose the status API on port 8080
  swayblur run --status-port 8080`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfgPath := GetConfigFile()
	if cfgPath == "" {
		var err error
		cfgPath, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", cfgPath, err)
	}

	// Flags override config file values.
	if viper.GetString("log_level") != "" {
		cfg.LogLevel = viper.GetString("log_level")
	}
	if viper.GetInt("status_port") > 0 {
		cfg.StatusPort = viper.GetInt("status_port")
	}

	logger.Init(cfg.LogLevel, viper.GetBool("pretty"))
	log := logger.WithComponent("run")
	log.Info().Str("config", cfgPath).Msg("Configuration loaded")

	filter := frames.ImageMagick{}
	if err := filter.Available(); err != nil {
		return err
	}

	cacheDir, err := cache.Dir()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := sway.New(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to sway IPC: %w", err)
	}

	mgr := manager.New(cfg, client, sink.Oguri{}, filter, cacheDir)
	if err := mgr.Prepare(ctx); err != nil {
		return err
	}

	if cfg.StatusPort > 0 {
		srv := api.NewServer(mgr)
		go func() {
			if err := srv.Start(cfg.StatusPort); err != nil {
				log.Error().Err(err).Msg("Status server failed")
			}
		}()
	}

	if err := mgr.Listen(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("sway event stream closed: %w", err)
	}

	log.Info().Msg("Shutting down")
	return nil
}
