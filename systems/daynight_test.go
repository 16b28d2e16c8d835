package systems

import (
	"math"
	"testing"
)

func TestDayNightCycle_TickWraps(t *testing.T) {
	c := NewDayNightCycle(100, 0.99)
	c.Tick(2) // 0.99 + 0.02 -> wraps past 1.0
	if c.TimeOfDay >= 1 || c.TimeOfDay < 0 {
		t.Errorf("time should wrap into [0,1), got %f", c.TimeOfDay)
	}
	if math.Abs(float64(c.TimeOfDay-0.01)) > 1e-5 {
		t.Errorf("expected wrap to ~0.01, got %f", c.TimeOfDay)
	}
}

func TestDayNightCycle_PausedHoldsTime(t *testing.T) {
	c := NewDayNightCycle(100, 0.5)
	c.Paused = true
	c.Tick(10)
	if c.TimeOfDay != 0.5 {
		t.Errorf("paused clock should hold time, got %f", c.TimeOfDay)
	}
}

func TestDayNightCycle_SetTimeOfDayClamps(t *testing.T) {
	c := NewDayNightCycle(100, 0)
	c.SetTimeOfDay(-0.5)
	if c.TimeOfDay != 0 {
		t.Errorf("negative time should clamp to 0, got %f", c.TimeOfDay)
	}
	c.SetTimeOfDay(1.5)
	if c.TimeOfDay >= 1 {
		t.Errorf("time >= 1 should clamp below 1, got %f", c.TimeOfDay)
	}
}

func TestSunIntensity_ZeroAtNight(t *testing.T) {
	c := NewDayNightCycle(100, 0)
	for _, tod := range []float32{0.0, 0.1, 0.25, 0.75, 0.9} {
		c.SetTimeOfDay(tod)
		if got := c.SunIntensity(); got != 0 {
			t.Errorf("intensity at t=%.2f should be 0, got %f", tod, got)
		}
	}
}

func TestSunIntensity_PeaksAtNoon(t *testing.T) {
	c := NewDayNightCycle(100, 0.5)
	if got := c.SunIntensity(); math.Abs(float64(got-1)) > 1e-6 {
		t.Errorf("noon intensity should be 1, got %f", got)
	}

	// Symmetric around noon
	c.SetTimeOfDay(0.4)
	morning := c.SunIntensity()
	c.SetTimeOfDay(0.6)
	afternoon := c.SunIntensity()
	if math.Abs(float64(morning-afternoon)) > 1e-5 {
		t.Errorf("intensity should be symmetric: %f vs %f", morning, afternoon)
	}
	if morning <= 0 || morning >= 1 {
		t.Errorf("mid-morning intensity should be in (0,1), got %f", morning)
	}
}

func TestSunIntensity_MonotonicTowardNoon(t *testing.T) {
	c := NewDayNightCycle(100, 0)
	prev := float32(-1)
	for tod := float32(0.26); tod <= 0.5; tod += 0.02 {
		c.SetTimeOfDay(tod)
		got := c.SunIntensity()
		if got <= prev {
			t.Fatalf("intensity should increase toward noon, t=%.2f: %f <= %f", tod, got, prev)
		}
		prev = got
	}
}

func TestSunVisible(t *testing.T) {
	c := NewDayNightCycle(100, 0.5)
	if !c.SunVisible() {
		t.Error("sun should be visible at noon")
	}
	c.SetTimeOfDay(0.1)
	if c.SunVisible() {
		t.Error("sun should not be visible at night")
	}
	c.SetTimeOfDay(0.25)
	if c.SunVisible() {
		t.Error("sun should not be visible exactly at dawn")
	}
}

func TestLightColor_DiscreteZones(t *testing.T) {
	c := NewDayNightCycle(100, 0)

	cases := []struct {
		tod  float32
		want Color
	}{
		{0.10, NightColor},
		{0.24, NightColor},
		{0.27, SunsetColor},
		{0.50, DayColor},
		{0.72, SunsetColor},
		{0.80, NightColor},
	}
	for _, tc := range cases {
		c.SetTimeOfDay(tc.tod)
		if got := c.LightColor(); got != tc.want {
			t.Errorf("LightColor at t=%.2f: got %v, want %v", tc.tod, got, tc.want)
		}
	}
}

func TestTimeString(t *testing.T) {
	c := NewDayNightCycle(100, 0.5)
	if got := c.TimeString(); got != "12:00" {
		t.Errorf("noon should format as 12:00, got %s", got)
	}
	c.SetTimeOfDay(0.25)
	if got := c.TimeString(); got != "06:00" {
		t.Errorf("dawn should format as 06:00, got %s", got)
	}
	c.SetTimeOfDay(0)
	if got := c.TimeString(); got != "00:00" {
		t.Errorf("midnight should format as 00:00, got %s", got)
	}
}
