// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the curriculum-engine CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/curriculum-engine/internal/logger"
	"github.com/pdiddy/curriculum-engine/internal/secrets"
	"github.com/pdiddy/curriculum-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Set

// log is built from the configured log mode before any subcommand runs.
var log = logger.Nop()

// rootCmd is the base command for the curriculum-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "curriculum-engine",
	Short: "Budget-aware learning path generation from a course catalog",
	Long: `curriculum-engine curates multi-stage learning paths from a catalog of
third-party courses. It scores courses by rating, review sentiment and
content depth, groups them into stages, and fills each stage greedily
within the learner's budget.

Load courses and reviews with "catalog ingest", then use "recommend",
"path generate" or "review analyze".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if names := s.Names(); len(names) > 0 {
			sort.Strings(names)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", names)
		}

		l, err := logger.New(viper.GetString("log_mode"))
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		log = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		log.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./curriculum-engine.yaml or ~/.config/curriculum-engine/curriculum-engine.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "data", "base directory for the catalog (contains catalog/, index/)")
	rootCmd.PersistentFlags().String("log-mode", "dev", "log output: dev or prod")

	_ = viper.BindPFlag("catalog.data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	_ = viper.BindPFlag("log_mode", rootCmd.PersistentFlags().Lookup("log-mode"))

	setDefaults()
}

// setDefaults registers every config key so that environment variables and
// Unmarshal see them even without a config file.
func setDefaults() {
	viper.SetDefault("log_mode", "dev")
	viper.SetDefault("catalog.data_dir", "data")
	viper.SetDefault("catalog.max_results", 200)
	viper.SetDefault("textgen.endpoint", "")
	viper.SetDefault("textgen.model", "")
	viper.SetDefault("textgen.api_key", "")
	viper.SetDefault("textgen.max_retries", 3)
	viper.SetDefault("textgen.timeout", "60s")
	viper.SetDefault("textgen.user_agent", "curriculum-engine/"+version)
	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.redis_addr", "localhost:6379")
	viper.SetDefault("cache.redis_password", "")
	viper.SetDefault("cache.ttl", "1h")
	viper.SetDefault("path.currency", "USD")
	viper.SetDefault("path.max_courses_per_step", 3)
	viper.SetDefault("path.workers", 4)
	viper.SetDefault("path.lexicon_file", "")
	viper.SetDefault("path.stage_rules_file", "")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("curriculum-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "curriculum-engine"))
		}
	}

	viper.SetEnvPrefix("CURRICULUM_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig unmarshals the merged configuration and resolves credentials
// that were left empty from .secrets/.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	cfg.TextGen.APIKey = loadedSecrets.Resolve(cfg.TextGen.APIKey, secrets.KeyTextGenAPIKey, "OPENAI_API_KEY")
	cfg.Cache.RedisPassword = loadedSecrets.Resolve(cfg.Cache.RedisPassword, secrets.KeyRedisPassword, "")
	return cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
