package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/skylark/internal/config"
	"github.com/aretw0/skylark/internal/logging"
	"github.com/aretw0/skylark/pkg/adapters/llm"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skylark",
	Short: "Skylark answers business questions from Monday.com boards",
	Long: `Skylark is a conversational business intelligence agent. It gives a hosted
LLM a single tool backed by the Monday.com MCP server and streams the answers
to a chat client, the terminal, or other MCP agents.`,
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
	addGlobalFlags(rootCmd)
}

// addGlobalFlags declares the persistent flags (available to all commands).
func addGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", config.DefaultPath, "Path to the Skylark configuration file")
	cmd.PersistentFlags().String("env-file", ".env", "Path to a .env file with credentials")
	cmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "", "Log format (text, json)")
	cmd.PersistentFlags().String("provider", "", "LLM provider (groq, openai, anthropic, ollama, gemini)")
	cmd.PersistentFlags().String("model", "", "LLM model name")
	cmd.PersistentFlags().Int("max-steps", 0, "Maximum model calls per turn")
}

// loadConfig resolves configuration with flags taking precedence over file and environment.
func loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	if err := config.LoadDotEnv(envFile); err != nil {
		return config.Config{}, nil, err
	}

	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, cmd.Flags().Changed("config"))
	if err != nil {
		return cfg, nil, err
	}

	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if v, _ := cmd.Flags().GetString("log-format"); v != "" {
		cfg.Log.Format = v
	}
	if v, _ := cmd.Flags().GetString("provider"); v != "" {
		cfg.Model.Provider = llm.Provider(v)
	}
	if v, _ := cmd.Flags().GetString("model"); v != "" {
		cfg.Model.Model = v
	}
	if v, _ := cmd.Flags().GetInt("max-steps"); v > 0 {
		cfg.Limits.MaxSteps = v
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}

	logger := logging.New(logging.ParseLevel(cfg.Log.Level), cfg.Log.Format)
	slog.SetDefault(logger)
	return cfg, logger, nil
}
