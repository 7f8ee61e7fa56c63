package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"topicscope/internal/config"
	"topicscope/internal/domain/entity"
	"topicscope/internal/forecast"
	"topicscope/internal/llm"
	"topicscope/internal/trend"

	pkgconfig "topicscope/pkg/config"
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Run ad-hoc trend queries against the Trend Miner (spec §4.13)",
}

var trendAnalyzeCmd = &cobra.Command{
	Use:   "analyze <topic>",
	Short: "Mine a topic's historical trend and forecast it forward",
	Long: `Runs the same query-expansion, numeric-extraction, and forecaster handoff the
HTTP façade's /trend/analyze exposes, printed as JSON to stdout.

Example:
  topicctl trend analyze "interest rates" --horizon 30`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		horizon, _ := cmd.Flags().GetInt("horizon")

		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		cfg := config.Load()
		miner := trend.New(buildLLM(cfg, logger), buildForecaster(logger), logger)

		result, err := miner.AnalyzeTrend(context.Background(), args[0], horizon)
		if err != nil && !errors.Is(err, entity.ErrNoData) {
			fmt.Fprintf(os.Stderr, "error: %s\n", err)
			os.Exit(1)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(result); encErr != nil {
			fmt.Fprintf(os.Stderr, "error: %s\n", encErr)
			os.Exit(1)
		}
	},
}

func init() {
	trendCmd.AddCommand(trendAnalyzeCmd)
	trendAnalyzeCmd.Flags().Int("horizon", 14, "forecast horizon in days")
}

// buildLLM mirrors cmd/server's provider selection: a missing provider degrades to a
// noop backend rather than failing the command.
func buildLLM(cfg *config.Core, logger *slog.Logger) llm.Client {
	switch cfg.LLMProvider {
	case "claude":
		if cfg.AnthropicAPIKey == "" {
			logger.Warn("LLM_PROVIDER=claude but ANTHROPIC_API_KEY is unset, using noop")
			return llm.NoOp{}
		}
		return llm.NewClaude(cfg.AnthropicAPIKey, "")
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			logger.Warn("LLM_PROVIDER=openai but OPENAI_API_KEY is unset, using noop")
			return llm.NoOp{}
		}
		return llm.NewOpenAI(cfg.OpenAIAPIKey, "")
	default:
		logger.Warn("LLM_PROVIDER unset, trend synthesis disabled")
		return llm.NoOp{}
	}
}

func buildForecaster(logger *slog.Logger) forecast.Forecaster {
	addr := pkgconfig.GetEnvString("FORECAST_GRPC_ADDR", "")
	if addr == "" {
		return forecast.NoOp{}
	}
	client, err := forecast.NewGRPCClient(addr, logger)
	if err != nil {
		logger.Warn("forecast service unavailable, using noop", slog.Any("error", err))
		return forecast.NoOp{}
	}
	return client
}
