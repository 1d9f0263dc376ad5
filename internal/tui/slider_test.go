package tui

import (
	"math"
	"testing"
)

func frequencySlider() Slider {
	return Slider{Label: "Frequency", Min: 50, Max: 5000, Skew: SkewFromMidpoint(50, 5000, 500), Value: 500}
}

func TestSkewFromMidpointCentresMidpoint(t *testing.T) {
	s := frequencySlider()
	if p := s.Proportion(); math.Abs(p-0.5) > 1e-12 {
		t.Errorf("expected 500 Hz at the centre, got proportion %v", p)
	}
	s.SetProportion(0.5)
	if math.Abs(s.Value-500) > 1e-9 {
		t.Errorf("expected centre to map to 500 Hz, got %v", s.Value)
	}
}

func TestSliderEnds(t *testing.T) {
	s := frequencySlider()
	s.SetProportion(0)
	if s.Value != 50 {
		t.Errorf("expected 50 at start, got %v", s.Value)
	}
	s.SetProportion(1)
	if math.Abs(s.Value-5000) > 1e-9 {
		t.Errorf("expected 5000 at end, got %v", s.Value)
	}
	s.SetProportion(3)
	if math.Abs(s.Value-5000) > 1e-9 {
		t.Errorf("expected clamp to 5000, got %v", s.Value)
	}
	s.SetProportion(-1)
	if s.Value != 50 {
		t.Errorf("expected clamp to 50, got %v", s.Value)
	}
}

func TestSliderRoundTrip(t *testing.T) {
	s := frequencySlider()
	for _, v := range []float64{50, 75, 200, 440, 1000, 2500, 4999} {
		s.Value = v
		p := s.Proportion()
		s.SetProportion(p)
		if math.Abs(s.Value-v) > 1e-6 {
			t.Errorf("value %v came back as %v", v, s.Value)
		}
	}
}

func TestLinearSliderNudge(t *testing.T) {
	s := Slider{Label: "Level", Min: 0, Max: 0.125, Skew: 1, Value: 0.1}
	s.Nudge(0.1)
	if math.Abs(s.Value-0.1125) > 1e-12 {
		t.Errorf("expected 0.1125, got %v", s.Value)
	}
	s.Nudge(1)
	if s.Value != 0.125 {
		t.Errorf("expected clamp at 0.125, got %v", s.Value)
	}
	s.Nudge(-2)
	if s.Value != 0 {
		t.Errorf("expected clamp at 0, got %v", s.Value)
	}
}

func TestSkewFavoursLowValues(t *testing.T) {
	s := frequencySlider()
	s.SetProportion(0.25)
	linear := 50 + (5000-50)*0.25
	if s.Value >= linear {
		t.Errorf("expected skewed quarter point below %v, got %v", linear, s.Value)
	}
}

func TestOutOfRangeValueClampsProportion(t *testing.T) {
	s := frequencySlider()
	s.Value = 10
	if s.Proportion() != 0 {
		t.Errorf("expected 0, got %v", s.Proportion())
	}
	s.Value = 9000
	if s.Proportion() != 1 {
		t.Errorf("expected 1, got %v", s.Proportion())
	}
	s.Value = math.NaN()
	if s.Proportion() != 0 {
		t.Errorf("expected NaN to clamp to 0, got %v", s.Proportion())
	}
}
