package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/dazhuang0717-violet/communicationscorer/internal/config"
	"github.com/dazhuang0717-violet/communicationscorer/internal/engine"
	"github.com/dazhuang0717-violet/communicationscorer/internal/ingest"
	"github.com/dazhuang0717-violet/communicationscorer/internal/judge"
	"github.com/dazhuang0717-violet/communicationscorer/internal/model"
	"github.com/dazhuang0717-violet/communicationscorer/internal/report"
	"github.com/dazhuang0717-violet/communicationscorer/internal/scrape"
	"github.com/dazhuang0717-violet/communicationscorer/pkg/llm"
	"github.com/dazhuang0717-violet/communicationscorer/pkg/reader"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a coverage report",
	Long: `Scores every row of a coverage report (CSV or XLSX).

Volume quality comes from views and interactions, tier score from the
outlet name, and the three judgment dimensions (key message fidelity,
acquisition appeal, audience precision) from an LLM reading the
article text. Articles without inline text are fetched from their URL.

Examples:
  # Score a report with an inline tier list
  score --input coverage.csv --key-message "new therapy launch" --tier1 "Xinhua,人民日报"

  # Use a tiers file and write XLSX
  score --input coverage.xlsx --tiers-file tiers.yaml --output scores.xlsx --format xlsx

  # Patient-facing campaign, four workers
  score --input coverage.csv --audience patient --concurrency 4`,
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.String("input", "", "coverage report path (.csv or .xlsx)")
	f.String("key-message", "", "campaign key message (overrides config)")
	f.String("project-desc", "", "project description (overrides config)")
	f.String("audience", "", "target audience: general, patient, or hcp (overrides config)")
	f.String("tier1", "", "comma-separated tier 1 outlet keywords")
	f.String("tier2", "", "comma-separated tier 2 outlet keywords")
	f.String("tier3", "", "comma-separated tier 3 outlet keywords")
	f.String("tiers-file", "", "YAML file with tier keyword lists")
	f.String("output", "", "output file path (default: stdout)")
	f.String("format", "table", "output format: table, csv, or xlsx")
	f.Int("concurrency", 0, "concurrent items (overrides config)")
	_ = scoreCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	applyScoreOverrides(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	if format != "table" && format != "csv" && format != "xlsx" {
		return eris.Errorf("score: --format must be table, csv, or xlsx (got %q)", format)
	}
	outputPath, _ := cmd.Flags().GetString("output")
	if format == "xlsx" && outputPath == "" {
		return eris.New("score: --format xlsx requires --output")
	}

	campaign, err := buildCampaign(cmd, cfg)
	if err != nil {
		return err
	}

	inputPath, _ := cmd.Flags().GetString("input")
	items, err := ingest.ParseReport(inputPath)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No rows to score.")
		return nil
	}

	log := zap.L().With(zap.String("command", "score"))
	log.Info("report loaded",
		zap.String("input", inputPath),
		zap.Int("items", len(items)),
		zap.String("backend", cfg.Judge.Backend),
	)

	runner := engine.New(buildFetcher(cfg), buildJudge(cfg), cfg.Scoring.Weights(), cfg.Batch.Concurrency)
	results := runner.Run(ctx, campaign, items)

	if err := outputResults(results, format, outputPath); err != nil {
		return err
	}
	report.WriteSummary(os.Stdout, report.Summarize(results))

	return nil
}

// applyScoreOverrides copies CLI flag values over the loaded config.
func applyScoreOverrides(cmd *cobra.Command, c *config.Config) {
	if v, _ := cmd.Flags().GetInt("concurrency"); v > 0 {
		c.Batch.Concurrency = v
	}
	if v, _ := cmd.Flags().GetString("key-message"); v != "" {
		c.Campaign.KeyMessage = v
	}
	if v, _ := cmd.Flags().GetString("project-desc"); v != "" {
		c.Campaign.ProjectDescription = v
	}
	if v, _ := cmd.Flags().GetString("audience"); v != "" {
		c.Campaign.Audience = v
	}
	if v, _ := cmd.Flags().GetString("tiers-file"); v != "" {
		c.Tiers.File = v
	}
	if v, _ := cmd.Flags().GetString("tier1"); v != "" {
		c.Tiers.Tier1 = v
	}
	if v, _ := cmd.Flags().GetString("tier2"); v != "" {
		c.Tiers.Tier2 = v
	}
	if v, _ := cmd.Flags().GetString("tier3"); v != "" {
		c.Tiers.Tier3 = v
	}
}

func buildCampaign(_ *cobra.Command, c *config.Config) (model.Campaign, error) {
	audience, err := model.ParseAudience(c.Campaign.Audience)
	if err != nil {
		return model.Campaign{}, err
	}
	tiers, err := c.Tiers.TierRules()
	if err != nil {
		return model.Campaign{}, err
	}
	return model.Campaign{
		KeyMessage:         c.Campaign.KeyMessage,
		ProjectDescription: c.Campaign.ProjectDescription,
		Audience:           audience,
		Tiers:              tiers,
	}, nil
}

func buildFetcher(c *config.Config) *scrape.Chain {
	readerClient := reader.NewClient(c.Reader.Key,
		reader.WithBaseURL(c.Reader.BaseURL),
		reader.WithTimeout(time.Duration(c.Reader.TimeoutSecs)*time.Second),
	)
	return scrape.NewChain(
		scrape.NewReadableFetcher(readerClient),
		scrape.NewDirectFetcher(time.Duration(c.Scrape.DirectTimeoutSecs)*time.Second),
	)
}

func buildJudge(c *config.Config) *judge.Judge {
	var gen llm.Generator
	if c.Judge.Backend == "claude" {
		gen = llm.NewClaude(c.Claude.Key)
	} else {
		opts := []llm.GatewayOption{
			llm.WithGatewayBaseURL(c.Gateway.BaseURL),
			llm.WithProvider(c.Gateway.Provider),
		}
		if c.Gateway.RequestsPerSec > 0 {
			opts = append(opts, llm.WithRateLimit(rate.Limit(c.Gateway.RequestsPerSec), 1))
		}
		gen = llm.NewGateway(c.Gateway.Key, opts...)
	}
	return judge.New(gen, c.Models(), c.Credential(),
		judge.WithRateLimitPause(time.Duration(c.Judge.RateLimitPauseSecs)*time.Second),
	)
}

func outputResults(results []model.ScoreResult, format, outputPath string) error {
	if format == "xlsx" {
		return report.WriteXLSX(outputPath, results)
	}

	w := os.Stdout
	if outputPath != "" {
		var err error
		w, err = os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "score: create output file %s", outputPath)
		}
		defer w.Close() //nolint:errcheck
	}

	if format == "csv" {
		return report.WriteCSV(w, results)
	}
	return report.WriteTable(w, results)
}
