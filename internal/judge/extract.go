package judge

import (
	"encoding/json"
	"strconv"
	"strings"
)

type payload struct {
	km          float64
	acquisition float64
	precision   float64
	comment     string
}

// decodePayload extracts a judgment object from a model response,
// trying increasingly permissive readings: the raw text, the text with
// markdown fences stripped, then the first {...} span.
func decodePayload(text string) (payload, bool) {
	for _, candidate := range []string{text, stripFences(text), firstObject(text)} {
		if p, ok := parsePayload(candidate); ok {
			return p, true
		}
	}
	return payload{}, false
}

func parsePayload(s string) (payload, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return payload{}, false
	}

	var raw struct {
		KMScore                any    `json:"km_score"`
		AcquisitionScore       any    `json:"acquisition_score"`
		AudiencePrecisionScore any    `json:"audience_precision_score"`
		Comment                string `json:"comment"`
	}
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return payload{}, false
	}

	return payload{
		km:          toScore(raw.KMScore),
		acquisition: toScore(raw.AcquisitionScore),
		precision:   toScore(raw.AudiencePrecisionScore),
		comment:     strings.TrimSpace(raw.Comment),
	}, true
}

// toScore coerces a decoded JSON value to a float. Missing or
// non-numeric fields default to 0.
func toScore(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
	}
	return 0
}

// stripFences removes a leading/trailing markdown code fence, if any.
func stripFences(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	} else {
		return s
	}

	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// firstObject returns the outermost {...} span, or "" when none exists.
func firstObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return ""
}
