package telemetry

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   Summary
	}{
		{"empty slice", []float64{}, Summary{}},
		{"single element", []float64{0.4}, Summary{Mean: 0.4, Std: 0, P50: 0.4}},
		{"odd count unsorted", []float64{5, 1, 3, 2, 4}, Summary{Mean: 3, Std: math.Sqrt(2), P50: 3}},
		{"population std", []float64{2, 4, 4, 4, 5, 5, 7, 9}, Summary{Mean: 5, Std: 2, P50: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.values)
			if math.Abs(got.Mean-tt.want.Mean) > 1e-9 {
				t.Errorf("Mean = %v, want %v", got.Mean, tt.want.Mean)
			}
			if math.Abs(got.Std-tt.want.Std) > 1e-9 {
				t.Errorf("Std = %v, want %v", got.Std, tt.want.Std)
			}
			if math.Abs(got.P50-tt.want.P50) > 1e-9 {
				t.Errorf("P50 = %v, want %v", got.P50, tt.want.P50)
			}
		})
	}
}

func TestSummarizeSortsInPlace(t *testing.T) {
	values := []float64{0.9, 0.1, 0.5}
	Summarize(values)

	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			t.Fatalf("values not sorted after Summarize: %v", values)
		}
	}
}
