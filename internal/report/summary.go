package report

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/dazhuang0717-violet/communicationscorer/internal/model"
)

// HighValueThreshold is the total score at or above which a placement
// counts as high value in the batch summary.
const HighValueThreshold = 8.0

// Summary aggregates a scored batch.
type Summary struct {
	Items     int
	HighValue int
	Mean      float64
	Median    float64
}

// Summarize computes batch statistics over total scores.
func Summarize(results []model.ScoreResult) Summary {
	s := Summary{Items: len(results)}
	if s.Items == 0 {
		return s
	}

	scores := make([]float64, 0, len(results))
	var sum float64
	for _, r := range results {
		scores = append(scores, r.TotalScore)
		sum += r.TotalScore
		if r.TotalScore >= HighValueThreshold {
			s.HighValue++
		}
	}

	sort.Float64s(scores)
	mid := len(scores) / 2
	if len(scores)%2 == 0 {
		s.Median = (scores[mid-1] + scores[mid]) / 2
	} else {
		s.Median = scores[mid]
	}
	s.Mean = math.Round(sum/float64(len(scores))*100) / 100
	s.Median = math.Round(s.Median*100) / 100

	return s
}

// WriteSummary prints the batch summary in the terminal format.
func WriteSummary(w io.Writer, s Summary) {
	fmt.Fprintf(w, "\n--- Summary ---\n")
	fmt.Fprintf(w, "Items scored:  %d\n", s.Items)
	fmt.Fprintf(w, "High value:    %d (total >= %.0f)\n", s.HighValue, HighValueThreshold)
	fmt.Fprintf(w, "Mean total:    %.2f\n", s.Mean)
	fmt.Fprintf(w, "Median total:  %.2f\n", s.Median)
}
