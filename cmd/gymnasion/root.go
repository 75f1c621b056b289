package main

import (
	"fmt"
	"os"

	"github.com/aretw0/gymnasion/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gymnasion",
	Short: "Gymnasion answers your writing with literary prompts",
	Long: `Gymnasion is a writing partner. Give it a line and it answers with a question,
a quote, a challenge or a rule, remembering everything you have written so far.

Configuration comes from GYMNASION_* environment variables; flags override them.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("store", "", "Session store: memory, file or redis (env GYMNASION_STORE)")
	rootCmd.PersistentFlags().String("session-dir", "", "Directory of the file store (env GYMNASION_SESSION_DIR)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (env GYMNASION_LOG_LEVEL)")
}

// loadConfig reads the environment and applies the flags the user set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("store") {
		cfg.Store, _ = flags.GetString("store")
	}
	if flags.Changed("session-dir") {
		cfg.SessionDir, _ = flags.GetString("session-dir")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Lookup("addr") != nil && flags.Changed("addr") {
		cfg.Addr, _ = flags.GetString("addr")
	}
	if flags.Lookup("seed") != nil && flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// loadPersistentConfig is loadConfig for commands that keep sessions across
// runs: an in-memory store would forget everything, so it becomes the file store.
func loadPersistentConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return cfg, err
	}
	if cfg.Store == config.StoreMemory {
		cfg.Store = config.StoreFile
	}
	return cfg, nil
}
