package analytics

import (
	"math"
	"testing"
)

func TestMovingAverage(t *testing.T) {
	t.Run("window three", func(t *testing.T) {
		values := []float64{10, 20, 30, 40, 50}
		out := MovingAverage(values, 3)

		if len(out) != 5 {
			t.Fatalf("len = %d, want 5", len(out))
		}
		if out[0] != nil || out[1] != nil {
			t.Error("first window-1 entries must be nil")
		}
		if out[2] == nil || *out[2] != 20.0 {
			t.Errorf("out[2] = %v, want mean of values[0:3] = 20", deref(out[2]))
		}
		if out[3] == nil || *out[3] != 30.0 {
			t.Errorf("out[3] = %v, want 30", deref(out[3]))
		}
		if out[4] == nil || *out[4] != 40.0 {
			t.Errorf("out[4] = %v, want 40", deref(out[4]))
		}
	})

	t.Run("series shorter than window", func(t *testing.T) {
		out := MovingAverage([]float64{5, 7}, 3)
		for i, v := range out {
			if v != nil {
				t.Errorf("out[%d] = %v, want nil", i, *v)
			}
		}
	})

	t.Run("window one is identity", func(t *testing.T) {
		out := MovingAverage([]float64{5, 7}, 1)
		if *out[0] != 5 || *out[1] != 7 {
			t.Errorf("out = [%v %v], want [5 7]", *out[0], *out[1])
		}
	})
}

func TestMovingAverageOnTimeline(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	// Player missed games 1 and 4 (nil). The average runs over played games
	// only, then lands back on the full timeline with the gaps preserved.
	timeline := []*float64{f(10), nil, f(20), f(30), nil, f(40)}
	out := MovingAverageOnTimeline(timeline, 3)

	if len(out) != len(timeline) {
		t.Fatalf("len = %d, want %d", len(out), len(timeline))
	}
	if out[1] != nil || out[4] != nil {
		t.Error("missed games must stay nil in the output")
	}
	// Played series is [10 20 30 40]; averages [nil nil 20 30] land on
	// timeline positions 0, 2, 3, 5.
	if out[0] != nil || out[2] != nil {
		t.Error("first two played games must be nil (incomplete window)")
	}
	if out[3] == nil || *out[3] != 20.0 {
		t.Errorf("out[3] = %v, want 20", deref(out[3]))
	}
	if out[5] == nil || *out[5] != 30.0 {
		t.Errorf("out[5] = %v, want 30", deref(out[5]))
	}
}

func TestCoefficientOfVariation(t *testing.T) {
	t.Run("defined", func(t *testing.T) {
		cv, ok := CoefficientOfVariation([]float64{10, 20, 30})
		if !ok {
			t.Fatal("cv undefined for a valid series")
		}
		// mean 20, population stdev sqrt(200/3).
		want := math.Sqrt(200.0/3.0) / 20.0
		if math.Abs(cv-want) > 1e-9 {
			t.Errorf("cv = %v, want %v", cv, want)
		}
	})

	t.Run("fewer than two samples", func(t *testing.T) {
		if _, ok := CoefficientOfVariation([]float64{10}); ok {
			t.Error("cv must be undefined for one sample")
		}
		if _, ok := CoefficientOfVariation(nil); ok {
			t.Error("cv must be undefined for no samples")
		}
	})

	t.Run("zero mean", func(t *testing.T) {
		if _, ok := CoefficientOfVariation([]float64{-5, 5}); ok {
			t.Error("cv must be undefined for a zero mean")
		}
	})
}

func TestMeanStdDev(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %v, want 0", got)
	}
	if got := Mean([]float64{2, 4, 6}); got != 4 {
		t.Errorf("Mean = %v, want 4", got)
	}
	if got := StdDev([]float64{5, 5, 5}); got != 0 {
		t.Errorf("StdDev of constant series = %v, want 0", got)
	}
}

func deref(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
