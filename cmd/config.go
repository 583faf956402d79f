package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KaramelBytes/chartloom-cli/internal/ai"
	cfgpkg "github.com/KaramelBytes/chartloom-cli/internal/config"
	"github.com/KaramelBytes/chartloom-cli/internal/logx"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set ChartLoom configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "api_key: %s\n", mask(cfg.APIKey))
		fmt.Fprintf(out, "default_provider: %s\n", cfg.DefaultProvider)
		fmt.Fprintf(out, "default_model: %s\n", cfg.DefaultModel)
		if cfg.BaseURL != "" {
			fmt.Fprintf(out, "base_url: %s\n", cfg.BaseURL)
		}
		fmt.Fprintf(out, "max_tokens: %d\n", cfg.MaxTokens)
		fmt.Fprintf(out, "temperature: %.3f\n", cfg.Temperature)
		fmt.Fprintf(out, "max_tool_rounds: %d\n", cfg.MaxToolRounds)
		fmt.Fprintf(out, "share_base_url: %s\n", cfg.ShareBaseURL)
		if cfg.OutputDir != "" {
			fmt.Fprintf(out, "output_dir: %s\n", cfg.OutputDir)
		}
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "http_timeout_sec: %d\n", cfg.HTTPTimeoutSec)
		fmt.Fprintf(out, "retry_max_attempts: %d\n", cfg.RetryMaxAttempts)
		fmt.Fprintf(out, "retry_base_delay_ms: %d\n", cfg.RetryBaseDelayMs)
		fmt.Fprintf(out, "retry_max_delay_ms: %d\n", cfg.RetryMaxDelayMs)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "api_key":
			cfg.APIKey = val
		case "default_model":
			cfg.DefaultModel = val
		case "default_provider":
			switch strings.ToLower(val) {
			case ai.ProviderOpenRouter:
				cfg.DefaultProvider = ai.ProviderOpenRouter
			case ai.ProviderOpenAI:
				cfg.DefaultProvider = ai.ProviderOpenAI
			case ai.ProviderOllama, "local":
				cfg.DefaultProvider = ai.ProviderOllama
			default:
				return fmt.Errorf("invalid default_provider: %s (use openrouter, openai or ollama)", val)
			}
		case "base_url":
			cfg.BaseURL = val
		case "max_tokens":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for max_tokens: %w", err)
			}
			cfg.MaxTokens = i
		case "temperature":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return fmt.Errorf("invalid float for temperature: %w", err)
			}
			cfg.Temperature = f
		case "max_tool_rounds":
			i, err := strconv.Atoi(val)
			if err != nil || i < 1 {
				return fmt.Errorf("invalid int for max_tool_rounds: %v", val)
			}
			cfg.MaxToolRounds = i
		case "share_base_url":
			cfg.ShareBaseURL = val
		case "output_dir":
			cfg.OutputDir = val
		case "log_level":
			if err := logx.SetLevel(val); err != nil {
				return err
			}
			cfg.LogLevel = strings.ToLower(val)
		case "http_timeout_sec", "retry_max_attempts", "retry_base_delay_ms", "retry_max_delay_ms":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for %s: %v", key, val)
			}
			switch key {
			case "http_timeout_sec":
				cfg.HTTPTimeoutSec = i
			case "retry_max_attempts":
				cfg.RetryMaxAttempts = i
			case "retry_base_delay_ms":
				cfg.RetryBaseDelayMs = i
			default:
				cfg.RetryMaxDelayMs = i
			}
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 6 {
		return "******"
	}
	return s[:3] + "****" + s[len(s)-3:]
}
