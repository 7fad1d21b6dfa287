package stats

import (
	"math"
	"testing"
)

func TestQuantile(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}

	if q := Quantile(nil, 0.5); q != 0 {
		t.Errorf("Quantile of empty slice = %f, want 0", q)
	}
	if q := Quantile(values, 0); q != 1 {
		t.Errorf("Quantile(0) = %f, want 1", q)
	}
	if q := Quantile(values, 1); q != 5 {
		t.Errorf("Quantile(1) = %f, want 5", q)
	}
	if q := Quantile(values, 0.5); q != 3 {
		t.Errorf("Quantile(0.5) = %f, want 3", q)
	}

	// Interpolated between ranks
	if q := Quantile([]float64{1, 2}, 0.5); math.Abs(q-1.5) > 1e-9 {
		t.Errorf("Quantile interpolation = %f, want 1.5", q)
	}
}

func TestQuantile_DoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Quantile(values, 0.5)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Error("Quantile mutated its input")
	}
}

func TestQuartiles(t *testing.T) {
	q1, q2, q3 := Quartiles([]float64{1, 2, 3, 4, 5})
	if q1 != 2 || q2 != 3 || q3 != 4 {
		t.Errorf("Quartiles = %f, %f, %f; want 2, 3, 4", q1, q2, q3)
	}

	q1, q2, q3 = Quartiles(nil)
	if q1 != 0 || q2 != 0 || q3 != 0 {
		t.Error("Quartiles of empty slice should be zeros")
	}
}

func TestPercentile(t *testing.T) {
	values := []float64{10, 20, 30, 40, 50}
	if p := Percentile(values, 50); p != 30 {
		t.Errorf("Percentile(50) = %f, want 30", p)
	}
	if p := Percentile(values, 200); p != 50 {
		t.Errorf("Percentile clamps above 100, got %f", p)
	}
}
