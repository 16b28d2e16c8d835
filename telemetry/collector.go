package telemetry

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32

	// Event counters for current window
	waterings    int
	touches      int
	stageChanges int
	maxGrowths   int
	deaths       int
	resets       int
}

// NewCollector creates a stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// Record counts an event into the current window.
func (c *Collector) Record(e Event) {
	switch e.Type {
	case EventWatered:
		c.waterings++
	case EventTouched:
		c.touches++
	case EventStageChange:
		c.stageChanges++
	case EventMaxGrowth:
		c.maxGrowths++
	case EventDeath:
		c.deaths++
	case EventReset:
		c.resets++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// The caller samples vitality, growth progress, and optimal-condition share
// at the window boundary.
func (c *Collector) Flush(
	currentTick int32,
	timeOfDay float64,
	aliveCount, deadCount int,
	vitals []float64,
	growthProgressMean float64,
	optimalShare float64,
) WindowStats {
	mean, std, p10, p50, p90 := ComputeVitalityStats(vitals)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),
		TimeOfDay:       timeOfDay,

		AliveCount: aliveCount,
		DeadCount:  deadCount,

		Waterings:    c.waterings,
		Touches:      c.touches,
		StageChanges: c.stageChanges,
		MaxGrowths:   c.maxGrowths,
		Deaths:       c.deaths,
		Resets:       c.resets,

		VitalityMean: mean,
		VitalityStd:  std,
		VitalityP10:  p10,
		VitalityP50:  p50,
		VitalityP90:  p90,

		GrowthProgressMean: growthProgressMean,
		OptimalShare:       optimalShare,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.waterings = 0
	c.touches = 0
	c.stageChanges = 0
	c.maxGrowths = 0
	c.deaths = 0
	c.resets = 0

	return stats
}
