package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/insightloom/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set Insightloom configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("api_key: %s\n", mask(cfg.APIKey))
		fmt.Printf("default_model: %s\n", cfg.DefaultModel)
		if cfg.DefaultProvider != "" {
			fmt.Printf("default_provider: %s\n", cfg.DefaultProvider)
		}
		fmt.Printf("min_correlation: %.3f\n", cfg.MinCorrelation)
		fmt.Printf("z_threshold: %.3f\n", cfg.ZThreshold)
		fmt.Printf("max_rows: %d\n", cfg.MaxRows)
		fmt.Printf("max_tokens: %d\n", cfg.MaxTokens)
		fmt.Printf("temperature: %.3f\n", cfg.Temperature)
		if cfg.OllamaHost != "" {
			fmt.Printf("ollama_host: %s\n", cfg.OllamaHost)
		}
		fmt.Printf("history_path: %s\n", cfg.HistoryPath)
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
			switch val {
			case "openrouter", "OpenRouter", "OPENROUTER":
				cfg.DefaultProvider = "openrouter"
			case "ollama", "local", "Ollama", "LOCAL":
				cfg.DefaultProvider = "ollama"
			default:
				return fmt.Errorf("invalid default_provider: %s (use openrouter or ollama)", val)
			}
		case "min_correlation":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f < 0 || f > 1 {
				return fmt.Errorf("invalid min_correlation: %v (must be in [0,1])", val)
			}
			cfg.MinCorrelation = f
		case "z_threshold":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid z_threshold: %v", val)
			}
			cfg.ZThreshold = f
		case "max_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for max_rows: %v", val)
			}
			cfg.MaxRows = i
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
		case "ollama_host":
			cfg.OllamaHost = val
		case "history_path":
			cfg.HistoryPath = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func mask(s string) string {
	if s == "" {
		return "(unset)"
	}
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "..." + s[len(s)-4:]
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
