package trend

import (
	"math"
	"testing"

	"stockpulse/internal/model"
)

func TestCalculateSMA(t *testing.T) {
	tests := []struct {
		name    string
		prices  []float64
		period  int
		want    float64
		wantErr bool
	}{
		{"simple average", []float64{1, 2, 3, 4, 5}, 5, 3, false},
		{"tail window", []float64{10, 10, 2, 4}, 2, 3, false},
		{"not enough data", []float64{1, 2}, 5, 0, true},
		{"zero period", []float64{1, 2, 3}, 0, 0, true},
		{"negative period", []float64{1, 2, 3}, -1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateSMA(tt.prices, tt.period)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr = %v", err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("SMA = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRangePosition(t *testing.T) {
	tests := []struct {
		name    string
		prices  []float64
		want    float64
		wantErr bool
	}{
		{"at high", []float64{1, 2, 3}, 1, false},
		{"at low", []float64{3, 2, 1}, 0, false},
		{"middle", []float64{1, 3, 2}, 0.5, false},
		{"flat series", []float64{5, 5, 5}, 0.5, false},
		{"empty", nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RangePosition(tt.prices)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr = %v", err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("RangePosition = %v, want %v", got, tt.want)
			}
		})
	}
}

func points(closes ...float64) []model.PricePoint {
	pts := make([]model.PricePoint, len(closes))
	for i, c := range closes {
		pts[i] = model.PricePoint{Close: c}
	}
	return pts
}

func TestAnalyzeEmpty(t *testing.T) {
	if _, err := Analyze(nil); err == nil {
		t.Error("expected error on empty series")
	}
}

func TestAnalyzeShortSeriesFallsBack(t *testing.T) {
	// Too few samples for either SMA window; both fall back to the last
	// close and direction reads FLAT.
	report, err := Analyze(points(10, 11, 12))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if report.SMAShort != 12 || report.SMALong != 12 {
		t.Errorf("SMAs = %v/%v, want fallback to last close 12", report.SMAShort, report.SMALong)
	}
	if report.Direction != "FLAT" {
		t.Errorf("direction = %q, want FLAT", report.Direction)
	}
	if report.SampleCount != 3 {
		t.Errorf("sample count = %d, want 3", report.SampleCount)
	}
	if math.Abs(report.ChangePct-20) > 1e-9 {
		t.Errorf("change = %v%%, want 20", report.ChangePct)
	}
}

func TestAnalyzeUptrend(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	report, err := Analyze(points(closes...))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if report.Direction != "UP" {
		t.Errorf("direction = %q, want UP", report.Direction)
	}
	if report.SMAShort <= report.SMALong {
		t.Errorf("short SMA %v should exceed long SMA %v in an uptrend", report.SMAShort, report.SMALong)
	}
	if report.RangePos != 1 {
		t.Errorf("range position = %v, want 1", report.RangePos)
	}
}

func TestAnalyzeDowntrend(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 200 - float64(i)
	}
	report, err := Analyze(points(closes...))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if report.Direction != "DOWN" {
		t.Errorf("direction = %q, want DOWN", report.Direction)
	}
	if report.RangePos != 0 {
		t.Errorf("range position = %v, want 0", report.RangePos)
	}
}
