package model

// Status classifies the outcome of scoring a single item.
type Status string

const (
	StatusSuccess            Status = "success"
	StatusContentUnavailable Status = "content_unavailable"
	StatusAuthError          Status = "auth_error"
	StatusAllModelsFailed    Status = "all_models_failed"
	StatusConfigError        Status = "config_error"
)

// ScoreResult is the composite scoring outcome for one MediaItem.
// Derived fields are rounded for display; see the score package for
// the blend weights.
type ScoreResult struct {
	MediaName string `json:"media_name"`
	URL       string `json:"url,omitempty"`

	VolumeQuality float64 `json:"volume_quality"` // 0-10, log-compressed reach
	TierScore     int     `json:"tier_score"`     // 10/8/5, or 3 when unranked
	VolumeTotal   float64 `json:"volume_total"`

	KMScore                float64 `json:"km_score"`
	AcquisitionScore       float64 `json:"acquisition_score"`
	AudiencePrecisionScore float64 `json:"audience_precision_score"`
	TrueDemand             float64 `json:"true_demand"`
	TotalScore             float64 `json:"total_score"`

	Status  Status `json:"status"`
	Detail  string `json:"detail,omitempty"`  // last underlying error, for diagnostics
	Comment string `json:"comment,omitempty"` // free-text judge commentary
}
