package score

import (
	"strings"

	"github.com/dazhuang0717-violet/communicationscorer/internal/model"
)

// Tier scores for the three configured levels and for unranked outlets.
const (
	Tier1Score = 10
	Tier2Score = 8
	Tier3Score = 5

	// DefaultTierScore applies to missing or unmatched outlet names.
	DefaultTierScore = 3
)

// ResolveTier maps an outlet name to a tier score. Rules are evaluated
// in priority order; within a rule any keyword substring match wins and
// no later rule is checked.
func ResolveTier(mediaName string, rules []model.TierRule) int {
	name := strings.ToLower(strings.TrimSpace(mediaName))
	if name == "" {
		return DefaultTierScore
	}

	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if kw != "" && strings.Contains(name, kw) {
				return rule.Score
			}
		}
	}
	return DefaultTierScore
}
