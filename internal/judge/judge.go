// Package judge scores article content against campaign context using
// a generative-language backend, failing over across candidate models.
package judge

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/dazhuang0717-violet/communicationscorer/internal/model"
	"github.com/dazhuang0717-violet/communicationscorer/pkg/llm"
)

// MinContentRunes is the shortest content worth sending to a model.
const MinContentRunes = 10

const defaultRateLimitPause = 2 * time.Second

// Input carries everything the judge needs for one item.
type Input struct {
	Content            string
	KeyMessage         string
	ProjectDescription string
	Audience           model.Audience
	MediaName          string
}

// Judgment is the outcome of judging one item. On any non-success
// status all scores are zero and Detail carries the diagnostic text.
type Judgment struct {
	KMScore                float64
	AcquisitionScore       float64
	AudiencePrecisionScore float64
	Comment                string
	Status                 model.Status
	Detail                 string
}

// Judge drives candidate models in order until one returns a usable
// judgment. It performs no retries beyond the candidate list.
type Judge struct {
	gen        llm.Generator
	models     []string
	credential string
	pause      time.Duration
}

// Option configures a Judge.
type Option func(*Judge)

// WithRateLimitPause overrides the pause before trying the next model
// after a rate-limit rejection.
func WithRateLimitPause(d time.Duration) Option {
	return func(j *Judge) {
		j.pause = d
	}
}

// New creates a Judge. The credential is only inspected for presence;
// the generator holds the actual key.
func New(gen llm.Generator, models []string, credential string, opts ...Option) *Judge {
	j := &Judge{
		gen:        gen,
		models:     models,
		credential: credential,
		pause:      defaultRateLimitPause,
	}
	for _, o := range opts {
		o(j)
	}
	return j
}

// Judge scores one item. It never returns an error: every failure mode
// degrades to a zero-score Judgment with a descriptive status.
func (j *Judge) Judge(ctx context.Context, in Input) Judgment {
	if strings.TrimSpace(j.credential) == "" {
		return failed(model.StatusConfigError, "no backend credential configured")
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Content)) < MinContentRunes {
		return failed(model.StatusContentUnavailable, "content too short to judge")
	}
	if len(j.models) == 0 {
		return failed(model.StatusConfigError, "no candidate models configured")
	}

	prompt := buildPrompt(in)

	var lastErr error
	for i, m := range j.models {
		text, err := j.gen.Generate(ctx, m, prompt)
		if err != nil {
			switch {
			case llm.IsUnauthorized(err):
				// The credential will not get better on another model.
				zap.L().Error("judge: backend rejected credential",
					zap.String("model", m),
					zap.Error(err),
				)
				return failed(model.StatusAuthError, err.Error())
			case llm.IsRateLimited(err):
				lastErr = err
				// Nothing to pause for when this was the last candidate.
				if i < len(j.models)-1 {
					zap.L().Warn("judge: rate limited, pausing before next model",
						zap.String("model", m),
					)
					if !sleepCtx(ctx, j.pause) {
						return failed(model.StatusAllModelsFailed, ctx.Err().Error())
					}
				}
			default:
				zap.L().Warn("judge: model call failed",
					zap.String("model", m),
					zap.Error(err),
				)
				lastErr = err
			}
			continue
		}

		p, ok := decodePayload(text)
		if !ok {
			lastErr = eris.Errorf("judge: no JSON object in %s response", m)
			zap.L().Warn("judge: unparsable model response",
				zap.String("model", m),
			)
			continue
		}

		return Judgment{
			KMScore:                p.km,
			AcquisitionScore:       p.acquisition,
			AudiencePrecisionScore: p.precision,
			Comment:                p.comment,
			Status:                 model.StatusSuccess,
		}
	}

	detail := "all candidate models failed"
	if lastErr != nil {
		detail = "all candidate models failed: " + lastErr.Error()
	}
	return failed(model.StatusAllModelsFailed, detail)
}

func failed(status model.Status, detail string) Judgment {
	return Judgment{Status: status, Detail: detail}
}

// sleepCtx sleeps for d unless the context ends first. It reports
// whether the full pause elapsed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
