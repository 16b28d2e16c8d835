package systems

import "fmt"

// Day window boundaries as fractions of the cycle. The sun is up strictly
// between dawn and dusk; within sunsetBand of either edge the light reads
// as sunset.
const (
	dawnTime   = 0.25
	duskTime   = 0.75
	sunsetBand = 0.05
)

// Color is an RGB triple for the presentation boundary.
type Color struct {
	R, G, B uint8
}

// Light colors handed to the presentation layer. The switch between them is
// discrete; there is no interpolation between zones.
var (
	NightColor  = Color{R: 25, G: 35, B: 80}
	SunsetColor = Color{R: 255, G: 140, B: 60}
	DayColor    = Color{R: 255, G: 244, B: 214}
)

// DayNightCycle advances a normalized time-of-day value and derives the sun
// intensity and light color curves. One instance is shared read-only by all
// sunlight distribution; only the owner ticks it.
type DayNightCycle struct {
	TimeOfDay   float32 // cyclic in [0,1), wraps at 1.0
	DayDuration float32 // seconds for one full cycle
	Paused      bool
}

// NewDayNightCycle creates a clock with the given cycle length, starting at
// the given time of day.
func NewDayNightCycle(dayDuration, startTime float32) *DayNightCycle {
	c := &DayNightCycle{DayDuration: dayDuration}
	c.SetTimeOfDay(startTime)
	return c
}

// Tick advances the cycle. A paused clock holds its time.
func (c *DayNightCycle) Tick(dt float32) {
	if c.Paused || c.DayDuration <= 0 {
		return
	}
	c.TimeOfDay += dt / c.DayDuration
	for c.TimeOfDay >= 1 {
		c.TimeOfDay -= 1
	}
}

// SetTimeOfDay clamps t to [0,1) and jumps the clock there.
func (c *DayNightCycle) SetTimeOfDay(t float32) {
	if t < 0 {
		t = 0
	}
	if t >= 1 {
		t = 0.999999
	}
	c.TimeOfDay = t
}

// SunIntensity returns the current sun strength in [0,1]. It is 0 outside
// the (dawn, dusk) window and follows a smooth bump peaking at noon inside
// it, reaching exactly 0 at the window edges.
func (c *DayNightCycle) SunIntensity() float32 {
	t := c.TimeOfDay
	if t <= dawnTime || t >= duskTime {
		return 0
	}
	dayProgress := (t - dawnTime) * 2 // (0,1) across the daylight window
	return smoothstep(1 - absf(2*dayProgress-1))
}

// SunVisible reports whether the sun is above the horizon.
func (c *DayNightCycle) SunVisible() bool {
	return c.TimeOfDay > dawnTime && c.TimeOfDay < duskTime
}

// LightColor classifies the current light into night, sunset, or day.
func (c *DayNightCycle) LightColor() Color {
	t := c.TimeOfDay
	if t < dawnTime || t > duskTime {
		return NightColor
	}
	if t < dawnTime+sunsetBand || t > duskTime-sunsetBand {
		return SunsetColor
	}
	return DayColor
}

// SkyboxBlend returns the day-sky blend weight, 0 at night and 1 at noon.
func (c *DayNightCycle) SkyboxBlend() float32 {
	return c.SunIntensity()
}

// TimeString formats the time of day as HH:MM on a 24 hour clock.
func (c *DayNightCycle) TimeString() string {
	totalMinutes := int(c.TimeOfDay * 24 * 60)
	return fmt.Sprintf("%02d:%02d", totalMinutes/60, totalMinutes%60)
}
