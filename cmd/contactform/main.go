// Command contactform fills the contact form in a terminal and manages the
// stored draft.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/internal/config"
	"github.com/goliatone/go-contactform/internal/logging"
)

var (
	configFile string
	envFile    string
	logLevel   string
	storageDir string

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "contactform",
	Short: "Contact form with draft recovery",
	Long: `Fill the contact form interactively. Every answer is saved as a draft
that survives restarts for seven days.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default ./"+config.DefaultFile+" when present)")
	flags.StringVar(&envFile, "env-file", ".env", "dotenv file merged under the environment")
	flags.StringVar(&logLevel, "log-level", "", "override the configured log level")
	flags.StringVar(&storageDir, "storage-dir", "", "override the draft slot directory")
}

func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(config.WithFile(configFile), config.WithDotEnv(envFile))
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		loaded.Log.Level = logLevel
	}
	if cmd.Flags().Changed("storage-dir") {
		loaded.Storage.Dir = storageDir
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	l, err := logging.New(loaded.Log.Level, loaded.Log.Format)
	if err != nil {
		return err
	}
	cfg = loaded
	logger = l
	logger.Debug("config loaded", zap.String("storage_dir", cfg.Storage.Dir))
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
