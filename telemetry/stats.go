package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	TimeOfDay       float64 `csv:"time_of_day"`

	// Population at window end
	AliveCount int `csv:"alive"`
	DeadCount  int `csv:"dead"`

	// Events during window
	Waterings    int `csv:"waterings"`
	Touches      int `csv:"touches"`
	StageChanges int `csv:"stage_changes"`
	MaxGrowths   int `csv:"max_growths"`
	Deaths       int `csv:"deaths"`
	Resets       int `csv:"resets"`

	// Vitality distribution (sampled at window end)
	VitalityMean float64 `csv:"vitality_mean"`
	VitalityStd  float64 `csv:"vitality_std"`
	VitalityP10  float64 `csv:"vitality_p10"`
	VitalityP50  float64 `csv:"vitality_p50"`
	VitalityP90  float64 `csv:"vitality_p90"`

	// Growth
	GrowthProgressMean float64 `csv:"growth_progress_mean"`
	OptimalShare       float64 `csv:"optimal_share"`
}

// ComputeVitalityStats calculates mean, standard deviation, and percentiles
// from vitality samples.
func ComputeVitalityStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	if n > 1 {
		std = stat.StdDev(values, nil)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p10, p50, p90
}
