package report

import (
	"slices"

	"spinframe/internal/optimizer"
)

// Summary aggregates the results of one thumbnail run.
type Summary struct {
	Budget optimizer.Budget
	// Found is the number of source files scanned.
	Found      int
	Count      int
	TotalBytes int64
	// ByFormat always has an entry for every format, zero included.
	ByFormat map[optimizer.Format]int
	// Results holds every accepted result in input order.
	Results []optimizer.Result
	// OverBudget holds the results larger than Budget, in input order.
	OverBudget []optimizer.Result
	// Failed counts frames skipped because they could not be loaded or
	// encoded.
	Failed int
}

// NewSummary returns an empty summary for budget.
func NewSummary(budget optimizer.Budget, found int) Summary {
	byFormat := make(map[optimizer.Format]int, len(optimizer.Formats))
	for _, f := range optimizer.Formats {
		byFormat[f] = 0
	}
	return Summary{Budget: budget, Found: found, ByFormat: byFormat}
}

// Add returns s with r folded in. s itself is not modified.
func (s Summary) Add(r optimizer.Result) Summary {
	byFormat := make(map[optimizer.Format]int, len(s.ByFormat)+1)
	for f, n := range s.ByFormat {
		byFormat[f] = n
	}
	byFormat[r.Format]++
	s.ByFormat = byFormat

	s.Results = append(slices.Clip(s.Results), r)
	s.Count++
	s.TotalBytes += r.Size
	if !s.Budget.Fits(r.Size) {
		s.OverBudget = append(slices.Clip(s.OverBudget), r)
	}
	return s
}

// Skip returns s with one more failed frame.
func (s Summary) Skip() Summary {
	s.Failed++
	return s
}

// Average returns the mean result size in bytes, or 0 with no results.
func (s Summary) Average() float64 {
	if s.Count == 0 {
		return 0
	}
	return float64(s.TotalBytes) / float64(s.Count)
}

// results returns the accepted results encoded as f.
func (s Summary) results(f optimizer.Format) []optimizer.Result {
	var out []optimizer.Result
	for _, r := range s.Results {
		if r.Format == f {
			out = append(out, r)
		}
	}
	return out
}
