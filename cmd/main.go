package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"currencymonitor/internal/app"
	"currencymonitor/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "currencymonitor",
		Short: "Watches exchange rates and notifies subscribers once their target is reached",
		RunE:  withConfig(app.Run),
	}

	updateCmd = &cobra.Command{
		Use:   "update-rates",
		Short: "Run a single exchange rate update and exit",
		RunE:  withConfig(app.RunUpdateOnce),
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE:  withConfig(app.Migrate),
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the currencymonitor version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}

	cfgFile string
	version = "dev"
)

// withConfig loads the configuration, sets up logging and runs fn with a
// context canceled on SIGINT or SIGTERM.
func withConfig(fn func(ctx context.Context, cfg *config.AppConfig) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		appCfg, err := config.Init(cfgFile)
		if err != nil {
			return fmt.Errorf("cannot load a config: %w", err)
		}
		app.SetupLogger(appCfg.Logging)
		logrus.Info("✅ Config initialization successful")

		// Root context bound to OS signals for graceful shutdown
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return fn(ctx, appCfg)
	}
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", config.DefaultFile, "path to configuration file")
	rootCmd.AddCommand(updateCmd, migrateCmd, versionCmd)
	rootCmd.SilenceUsage = true

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logrus.WithError(err).Error("can't start the service")
		os.Exit(1)
	}
}
