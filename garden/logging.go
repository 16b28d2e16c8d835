package garden

import "log/slog"

// maybeLogState emits a sampled diagnostic snapshot of the garden. The
// sampling interval is measured in accumulated simulation time so the
// cadence holds for any step size; disabled entirely unless stats logging
// is on.
func (g *Garden) maybeLogState(dt float32) {
	if !g.logStats || g.logIntervalSec <= 0 {
		return
	}
	g.sinceLog += dt
	if g.sinceLog < g.logIntervalSec {
		return
	}
	g.sinceLog -= g.logIntervalSec

	var alive, dead int
	var vitalitySum float32

	query := g.plantFilter.Query()
	for query.Next() {
		_, h := query.Get()
		if h.Dead {
			dead++
			continue
		}
		alive++
		vitalitySum += h.Value
	}

	var vitalityMean float32
	if alive > 0 {
		vitalityMean = vitalitySum / float32(alive)
	}

	slog.Info("garden state",
		"tick", g.tick,
		"time", g.clock.TimeString(),
		"sun", g.clock.SunIntensity(),
		"alive", alive,
		"dead", dead,
		"vitality_mean", vitalityMean,
	)

	// Per-plant detail only at debug level
	for _, h := range g.Plants() {
		slog.Debug("plant state",
			"plant", h.ID(),
			"species", h.Species(),
			"health", h.Health(),
			"stage", h.Stage(),
			"water", h.WaterStatus(),
			"light", h.LightStatus(),
			"touch", h.TouchStatus(),
		)
	}
}
