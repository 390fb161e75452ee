// Package score implements the deterministic half of the communication
// value formula: volume quality, media tier resolution, and the final
// weighted aggregation.
package score

import (
	"math"

	"github.com/dazhuang0717-violet/communicationscorer/internal/numfmt"
)

// VolumeQuality converts raw view and interaction counters into a
// bounded reach-quality score. Interactions weigh 5x views since
// engagement signals intent more than passive reach; the log10
// compression keeps viral outliers from dominating, and the +1 keeps
// the zero-input case in domain.
func VolumeQuality(views, interactions string) float64 {
	v := numfmt.ParseCount(views)
	i := numfmt.ParseCount(interactions)

	arg := v + i*5 + 1
	if arg <= 0 {
		return 0
	}

	raw := math.Log10(arg) * 1.5
	if math.IsNaN(raw) || raw < 0 {
		return 0
	}
	if raw >= 10 {
		return 10
	}
	return math.Round(raw*10) / 10
}
