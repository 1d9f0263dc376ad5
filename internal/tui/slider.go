package tui

import "math"

// Slider maps a bounded value onto a [0, 1] travel, optionally skewed so
// that more of the travel is spent on the low end of the range.
type Slider struct {
	Label string
	Min   float64
	Max   float64
	Skew  float64 // 1 is linear; below 1 favours low values
	Value float64
}

// SkewFromMidpoint returns the skew that puts mid at the centre of the
// travel. mid must lie strictly between min and max.
func SkewFromMidpoint(min, max, mid float64) float64 {
	return math.Log(0.5) / math.Log((mid-min)/(max-min))
}

// Proportion returns the position of Value along the travel.
func (s Slider) Proportion() float64 {
	if s.Max <= s.Min {
		return 0
	}
	p := clamp01((s.Value - s.Min) / (s.Max - s.Min))
	if s.skew() != 1 && p > 0 {
		p = math.Pow(p, s.skew())
	}
	return p
}

// SetProportion moves the slider to position p, clamped to the travel.
func (s *Slider) SetProportion(p float64) {
	p = clamp01(p)
	if s.skew() != 1 && p > 0 {
		p = math.Exp(math.Log(p) / s.skew())
	}
	s.Value = s.Min + (s.Max-s.Min)*p
}

// Nudge moves the slider by delta of its travel.
func (s *Slider) Nudge(delta float64) {
	s.SetProportion(s.Proportion() + delta)
}

func (s Slider) skew() float64 {
	if s.Skew <= 0 {
		return 1
	}
	return s.Skew
}

func clamp01(p float64) float64 {
	switch {
	case p < 0, math.IsNaN(p):
		return 0
	case p > 1:
		return 1
	}
	return p
}
