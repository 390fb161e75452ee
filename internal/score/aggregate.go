package score

import "math"

// Weights holds the blend factors for the composite score. They are
// configuration, not literals: deployments may retune them, and tests
// pin the defaults.
type Weights struct {
	VolumeQuality     float64 // volume_total share of volume quality
	Tier              float64 // volume_total share of the tier score
	KM                float64 // true_demand share of km_score
	AudiencePrecision float64 // true_demand share of audience precision
	TrueDemand        float64 // total share of true_demand
	Acquisition       float64 // total share of acquisition_score
	Volume            float64 // total share of volume_total
}

// DefaultWeights returns the standard blend.
func DefaultWeights() Weights {
	return Weights{
		VolumeQuality:     0.6,
		Tier:              0.4,
		KM:                0.6,
		AudiencePrecision: 0.4,
		TrueDemand:        0.5,
		Acquisition:       0.2,
		Volume:            0.3,
	}
}

// Aggregate combines the five sub-scores into volume_total, true_demand,
// and the composite total. Intermediates run at full precision; only the
// returned values are rounded to two decimals.
func Aggregate(w Weights, volumeQuality float64, tierScore int, km, acquisition, precision float64) (volumeTotal, trueDemand, total float64) {
	vt := w.VolumeQuality*volumeQuality + w.Tier*float64(tierScore)
	td := w.KM*km + w.AudiencePrecision*precision
	tot := w.TrueDemand*td + w.Acquisition*acquisition + w.Volume*vt

	return round2(vt), round2(td), round2(tot)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
