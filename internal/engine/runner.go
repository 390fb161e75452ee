// Package engine runs the scoring pipeline over a batch of media items.
package engine

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dazhuang0717-violet/communicationscorer/internal/judge"
	"github.com/dazhuang0717-violet/communicationscorer/internal/model"
	"github.com/dazhuang0717-violet/communicationscorer/internal/score"
)

// ContentFetcher resolves a URL to article text. An empty string means
// no usable content could be fetched.
type ContentFetcher interface {
	Fetch(ctx context.Context, targetURL string) string
}

// Judger scores article content against the campaign context.
type Judger interface {
	Judge(ctx context.Context, in judge.Input) judge.Judgment
}

// Runner scores batches of media items. Volume and tier scoring always
// run; content judging degrades to a status per item instead of
// failing the batch.
type Runner struct {
	fetcher     ContentFetcher
	judger      Judger
	weights     score.Weights
	concurrency int
	runID       string
}

// New creates a Runner. Concurrency below 1 is treated as 1.
func New(fetcher ContentFetcher, judger Judger, weights score.Weights, concurrency int) *Runner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Runner{
		fetcher:     fetcher,
		judger:      judger,
		weights:     weights,
		concurrency: concurrency,
		runID:       uuid.NewString(),
	}
}

// RunID identifies this batch in logs.
func (r *Runner) RunID() string { return r.runID }

// Run scores every item and returns results in input order. Once any
// item hits a credential rejection, remaining items skip the judge
// call and report the same auth error.
func (r *Runner) Run(ctx context.Context, campaign model.Campaign, items []model.MediaItem) []model.ScoreResult {
	log := zap.L().With(zap.String("run_id", r.runID))
	log.Info("scoring batch",
		zap.Int("items", len(items)),
		zap.Int("concurrency", r.concurrency),
	)

	results := make([]model.ScoreResult, len(items))

	var authFailed atomic.Bool
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, item := range items {
		g.Go(func() error {
			results[i] = r.scoreOne(gctx, log, campaign, item, &authFailed)
			return nil
		})
	}
	g.Wait() //nolint:errcheck

	log.Info("batch complete", zap.Int("items", len(results)))
	return results
}

func (r *Runner) scoreOne(ctx context.Context, log *zap.Logger, campaign model.Campaign, item model.MediaItem, authFailed *atomic.Bool) model.ScoreResult {
	result := model.ScoreResult{
		MediaName:     item.MediaName,
		URL:           item.SourceURL,
		VolumeQuality: score.VolumeQuality(item.Views, item.Interactions),
		TierScore:     score.ResolveTier(item.MediaName, campaign.Tiers),
	}

	j := r.judgeOne(ctx, campaign, item, authFailed)
	result.KMScore = j.KMScore
	result.AcquisitionScore = j.AcquisitionScore
	result.AudiencePrecisionScore = j.AudiencePrecisionScore
	result.Comment = j.Comment
	result.Status = j.Status
	result.Detail = j.Detail

	result.VolumeTotal, result.TrueDemand, result.TotalScore = score.Aggregate(
		r.weights, result.VolumeQuality, result.TierScore,
		result.KMScore, result.AcquisitionScore, result.AudiencePrecisionScore,
	)

	log.Debug("item scored",
		zap.String("media", item.MediaName),
		zap.String("status", string(result.Status)),
		zap.Float64("total", result.TotalScore),
	)
	return result
}

func (r *Runner) judgeOne(ctx context.Context, campaign model.Campaign, item model.MediaItem, authFailed *atomic.Bool) judge.Judgment {
	if authFailed.Load() {
		return judge.Judgment{
			Status: model.StatusAuthError,
			Detail: "skipped after credential rejection earlier in batch",
		}
	}

	content := strings.TrimSpace(item.RawText)
	if content == "" {
		content = r.fetcher.Fetch(ctx, item.SourceURL)
	}
	if content == "" {
		return judge.Judgment{
			Status: model.StatusContentUnavailable,
			Detail: "no article text in report and fetch yielded nothing",
		}
	}

	j := r.judger.Judge(ctx, judge.Input{
		Content:            content,
		KeyMessage:         campaign.KeyMessage,
		ProjectDescription: campaign.ProjectDescription,
		Audience:           campaign.Audience,
		MediaName:          item.MediaName,
	})
	if j.Status == model.StatusAuthError {
		authFailed.Store(true)
	}
	return j
}
