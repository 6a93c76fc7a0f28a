package dataset

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// ColumnStats is the per-column block of Describe, one per numeric column.
// A nil field is a statistic that is undefined or not finite and encodes as null.
type ColumnStats struct {
	Column string   `json:"column"`
	Count  int      `json:"count"`
	Mean   *float64 `json:"mean"`
	Std    *float64 `json:"std"`
	Min    *float64 `json:"min"`
	Q25    *float64 `json:"25%"`
	Median *float64 `json:"50%"`
	Q75    *float64 `json:"75%"`
	Max    *float64 `json:"max"`
}

// Describe summarises every numeric column. Columns without values report only Count 0
// and a single value has no sample deviation.
func (f *Frame) Describe() []ColumnStats {
	var out []ColumnStats
	for _, name := range f.NumericColumns() {
		values, ok := f.NumericValues(name)
		data := make(stats.Float64Data, 0, len(values))
		for i, v := range values {
			if ok[i] {
				data = append(data, v)
			}
		}

		cs := ColumnStats{Column: name, Count: len(data)}
		if len(data) > 0 {
			cs.Mean = finite(stats.Mean(data))
			cs.Min = finite(stats.Min(data))
			cs.Max = finite(stats.Max(data))
			cs.Median = finite(stats.Median(data))
			cs.Q25 = finite(quantile(data, 0.25), nil)
			cs.Q75 = finite(quantile(data, 0.75), nil)
			if len(data) > 1 {
				cs.Std = finite(stats.StandardDeviationSample(data))
			}
		}
		out = append(out, cs)
	}
	return out
}

func finite(v float64, err error) *float64 {
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// quantile uses linear interpolation between closest ranks, matching spreadsheet QUARTILE.INC.
func quantile(data stats.Float64Data, q float64) float64 {
	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	if lo+1 >= len(sorted) {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
