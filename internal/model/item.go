// Package model holds the shared types for a scoring run.
package model

import (
	"strings"

	"github.com/rotisserie/eris"
)

// MediaItem is one unit of coverage to score: a row from an uploaded
// monitoring report, or a single draft document.
type MediaItem struct {
	MediaName    string
	SourceURL    string
	Title        string
	RawText      string // pre-extracted body; takes precedence over SourceURL
	Views        string // raw counter, may carry suffixes and separators
	Interactions string
}

// Audience selects the target-audience mode the judge scores against.
type Audience string

const (
	AudienceGeneral Audience = "general"
	AudiencePatient Audience = "patient"
	AudienceHCP     Audience = "hcp"
)

// ParseAudience parses a user-supplied audience mode string.
func ParseAudience(s string) (Audience, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "general":
		return AudienceGeneral, nil
	case "patient":
		return AudiencePatient, nil
	case "hcp", "professional":
		return AudienceHCP, nil
	}
	return "", eris.Errorf("model: unknown audience mode %q (want general, patient, or hcp)", s)
}

// Label returns the phrasing used in judge prompts.
func (a Audience) Label() string {
	switch a {
	case AudiencePatient:
		return "Patients"
	case AudienceHCP:
		return "Healthcare professionals"
	default:
		return "General public"
	}
}

// TierRule maps a set of outlet-name keywords to a tier score.
// Rules are evaluated in slice order; the first match wins.
type TierRule struct {
	Label    string
	Keywords []string
	Score    int
}

// Campaign is the analyst-supplied context shared by every item in a
// run. It is built once and treated as read-only for the whole batch.
type Campaign struct {
	KeyMessage         string
	ProjectDescription string
	Audience           Audience
	Tiers              []TierRule
}
