package config

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/dazhuang0717-violet/communicationscorer/internal/model"
	"github.com/dazhuang0717-violet/communicationscorer/internal/score"
)

// tiersFile is the on-disk shape of a tier keyword file.
type tiersFile struct {
	Tier1 []string `yaml:"tier1"`
	Tier2 []string `yaml:"tier2"`
	Tier3 []string `yaml:"tier3"`
}

// TierRules resolves the configured tier keywords into ordered rules.
// Outlets matching no rule fall through to the default tier score.
func (c TiersConfig) TierRules() ([]model.TierRule, error) {
	if c.File != "" {
		return LoadTiersFile(c.File)
	}
	return buildRules(
		ParseTierList(c.Tier1),
		ParseTierList(c.Tier2),
		ParseTierList(c.Tier3),
	), nil
}

// LoadTiersFile reads tier keyword lists from a YAML file.
func LoadTiersFile(path string) ([]model.TierRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "config: read tiers file %s", path)
	}

	var f tiersFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrapf(err, "config: parse tiers file %s", path)
	}

	return buildRules(normalize(f.Tier1), normalize(f.Tier2), normalize(f.Tier3)), nil
}

// ParseTierList splits a comma-separated keyword list, trimming and
// lowercasing each entry. Empty entries are dropped.
func ParseTierList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return normalize(strings.Split(s, ","))
}

func normalize(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

func buildRules(tier1, tier2, tier3 []string) []model.TierRule {
	var rules []model.TierRule
	if len(tier1) > 0 {
		rules = append(rules, model.TierRule{Label: "tier1", Keywords: tier1, Score: score.Tier1Score})
	}
	if len(tier2) > 0 {
		rules = append(rules, model.TierRule{Label: "tier2", Keywords: tier2, Score: score.Tier2Score})
	}
	if len(tier3) > 0 {
		rules = append(rules, model.TierRule{Label: "tier3", Keywords: tier3, Score: score.Tier3Score})
	}
	return rules
}
