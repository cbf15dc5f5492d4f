package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/greenlie/internal/model"
)

// Version is overridden at build time with -ldflags
var Version = "v0.1.0"

var (
	cfgFile string
	verbose bool
	jsonOut bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "greenlie",
	Short: "greenlie - structural honesty checks for sustainability statements",
	Long: `greenlie evaluates sustainability statements for structural honesty.

A statement is a green lie when it places responsibility for an action on a
group that lacks the structural conditions needed to carry it out: decision
authority, access to alternatives, affordability, infrastructure and
enforcement power.

greenlie does not judge whether a statement is factually true. It asks
whether the people it addresses are in a position to act on it.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "greenlie %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.greenlie/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "print results as JSON")
	rootCmd.PersistentFlags().String("store-engine", "", "storage engine (json, sqlite)")
	rootCmd.PersistentFlags().String("store-path", "", "storage directory (json) or database file (sqlite)")
	rootCmd.PersistentFlags().String("facts", "", "reference statement catalog (default: embedded)")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("store.engine", rootCmd.PersistentFlags().Lookup("store-engine"))
	_ = viper.BindPFlag("store.path", rootCmd.PersistentFlags().Lookup("store-path"))
	_ = viper.BindPFlag("facts.path", rootCmd.PersistentFlags().Lookup("facts"))

	setDefaults(viper.GetViper(), model.DefaultConfig())

	rootCmd.AddCommand(versionCmd)
}

// setDefaults registers every key so environment variables can override it
func setDefaults(v *viper.Viper, cfg *model.Config) {
	v.SetDefault("store.engine", cfg.Store.Engine)
	v.SetDefault("store.path", cfg.Store.Path)
	v.SetDefault("facts.path", cfg.Facts.Path)
	v.SetDefault("relevance.patterns", cfg.Relevance.Patterns)
	v.SetDefault("relevance.always_relevant", cfg.Relevance.AlwaysRelevant)
	v.SetDefault("relevance.enforcement_source_types", cfg.Relevance.EnforcementSourceTypes)
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.requests_per_second", cfg.Server.RequestsPerSecond)
	v.SetDefault("server.burst", cfg.Server.Burst)
	v.SetDefault("server.cache_ttl", cfg.Server.CacheTTL)
	v.SetDefault("server.trust_proxy", cfg.Server.TrustProxy)
	v.SetDefault("server.client_rates", cfg.Server.ClientRates)
	v.SetDefault("concurrency.workers", cfg.Concurrency.Workers)
	v.SetDefault("output.format", cfg.Output.Format)
	v.SetDefault("output.verbose", cfg.Output.Verbose)
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error finding home directory: %w", err)
	}
	return filepath.Join(home, ".greenlie"), nil
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return
		}
		viper.AddConfigPath(dir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// GREENLIE_STORE_ENGINE overrides store.engine
	viper.SetEnvPrefix("GREENLIE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig resolves the effective configuration
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if jsonOut {
		cfg.Output.Format = "json"
	}
	return cfg, nil
}

func newLogger(cfg *model.Config) *slog.Logger {
	level := slog.LevelWarn
	if cfg.Output.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
