package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/varoOP/comicwatch/internal/app"
	"github.com/varoOP/comicwatch/internal/config"
	"github.com/varoOP/comicwatch/internal/domain"
	"github.com/varoOP/comicwatch/internal/logger"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "comicwatch",
	Short: "Text subscribers when new comic series are listed",
	Long: `comicwatch polls a comic storefront's series search for the configured
years, keeps the series from the configured publishers, and texts the
configured numbers whenever a series appears that was not in the last
stored snapshot.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.comicwatch.yaml or ./config.yaml)")
	flags.String("years", "", "comma-separated years to search (default is the current year)")
	flags.String("publishers", domain.DefaultPublisher, "comma-separated publishers to keep")
	flags.String("numbers", "", "comma-separated phone numbers to text")
	flags.String("storage", string(domain.StorageS3), "snapshot storage: s3, file or sqlite")
	flags.String("storage-dir", domain.DefaultStorageDir, "directory for file and sqlite storage")
	flags.String("stop-policy", string(domain.StopPolicyAnchor), "pagination stop policy: anchor or content")
	flags.Bool("render", false, "render pages in a headless browser")
	flags.Bool("verbose", false, "enable debug logging")

	// Bind flags to viper
	viper.BindPFlag("years", flags.Lookup("years"))
	viper.BindPFlag("publishers", flags.Lookup("publishers"))
	viper.BindPFlag("numbers", flags.Lookup("numbers"))
	viper.BindPFlag("storage", flags.Lookup("storage"))
	viper.BindPFlag("storage_dir", flags.Lookup("storage-dir"))
	viper.BindPFlag("stop_policy", flags.Lookup("stop-policy"))
	viper.BindPFlag("render", flags.Lookup("render"))
	viper.BindPFlag("verbose", flags.Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in home directory and current directory
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Environment variables
	viper.SetEnvPrefix("COMICWATCH")
	viper.AutomaticEnv()
	config.SetDefaults(viper.GetViper())

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newApp loads the configuration and wires the application.
func newApp(ctx context.Context) (*app.App, *domain.Config, zerolog.Logger, error) {
	cfg, err := config.Load(viper.GetViper(), time.Now())
	if err != nil {
		return nil, nil, zerolog.Nop(), fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.ForVerbosity(cfg.Verbose)

	application, err := app.NewApp(ctx, log, cfg)
	if err != nil {
		return nil, nil, log, fmt.Errorf("failed to initialize application: %w", err)
	}

	return application, cfg, log, nil
}
