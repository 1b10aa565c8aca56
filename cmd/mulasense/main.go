// Command mulasense is the command-line front end of the finance core: PAYE and
// business tax estimates, the financial health score, debtor reminders, EcoCash
// payments and the JSON API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mulasense/finance-core/internal/ecocash"
	"github.com/mulasense/finance-core/internal/reminder"
)

var (
	version = "dev"
	log     = logrus.New()
)

func newRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "mulasense",
		Short: "Mula Sense finance core",
		Long: `mulasense computes Zimbabwe payroll and business taxes, scores the
financial health of a ledger and composes WhatsApp payment reminders.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initConfig(cfgFile)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/mulasense/config.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")
	flags.String("db", "", "SQLite database path")
	flags.StringP("format", "f", "console", "report format (console, json, yaml, csv; 'all' with --output-dir)")
	flags.String("output-dir", "", "write the report to a timestamped file in this directory instead of stdout")

	_ = viper.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", flags.Lookup("log-format"))
	_ = viper.BindPFlag("database.path", flags.Lookup("db"))
	_ = viper.BindPFlag("output.format", flags.Lookup("format"))
	_ = viper.BindPFlag("output.dir", flags.Lookup("output-dir"))

	rootCmd.AddCommand(payeCmd())
	rootCmd.AddCommand(taxCmd())
	rootCmd.AddCommand(healthCmd())
	rootCmd.AddCommand(remindCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(exampleCmd())
	rootCmd.AddCommand(payCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setDefaults() {
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
	viper.SetDefault("database.path", "$HOME/.local/share/mulasense/mulasense.db")
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("output.format", "console")
	viper.SetDefault("ecocash.base_url", ecocash.DefaultBaseURL)
	viper.SetDefault("ecocash.sandbox", true)
	viper.SetDefault("reminders.schedule", "0 9 * * *")
	viper.SetDefault("reminders.window_days", reminder.DefaultWindowDays)
}

func initConfig(cfgFile string) error {
	// A missing .env is normal outside development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		viper.AddConfigPath(fmt.Sprintf("%s/.config/mulasense", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("MULASENSE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := setupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	return nil
}

func setupLogging() error {
	level, err := logrus.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)

	switch format := viper.GetString("logging.format"); format {
	case "text", "console":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("invalid log format: %s", format)
	}
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mulasense %s\n", version)
		},
	}
}
