// Package trend computes price-trend indicators from a close series.
package trend

import (
	"errors"

	"stockpulse/internal/model"
)

const (
	shortPeriod = 10
	longPeriod  = 50
)

// CalculateSMA computes the simple moving average of the given prices over
// the specified period.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// RangePosition returns where the last close sits within the series range
// (0.0 ~ 1.0).
func RangePosition(prices []float64) (float64, error) {
	if len(prices) == 0 {
		return 0, errors.New("no prices provided")
	}
	high, low := prices[0], prices[0]
	for _, p := range prices {
		if p > high {
			high = p
		}
		if p < low {
			low = p
		}
	}
	if high == low {
		return 0.5, nil
	}
	pos := (prices[len(prices)-1] - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}

// Analyze computes the trend report for an ascending close-price series.
// Degraded inputs (short series) fall back to the last close rather than
// failing the whole analysis.
func Analyze(points []model.PricePoint) (*model.TrendReport, error) {
	if len(points) == 0 {
		return nil, errors.New("no price points provided")
	}

	closes := make([]float64, len(points))
	for i, p := range points {
		closes[i] = p.Close
	}
	last := closes[len(closes)-1]

	report := &model.TrendReport{
		LastClose:   last,
		SampleCount: len(closes),
		ChangePct:   (last - closes[0]) / closes[0] * 100,
	}

	if sma, err := CalculateSMA(closes, shortPeriod); err == nil {
		report.SMAShort = sma
	} else {
		report.SMAShort = last
	}
	if sma, err := CalculateSMA(closes, longPeriod); err == nil {
		report.SMALong = sma
	} else {
		report.SMALong = last
	}
	if pos, err := RangePosition(closes); err == nil {
		report.RangePos = pos
	} else {
		report.RangePos = 0.5
	}

	switch {
	case last > report.SMAShort && report.SMAShort >= report.SMALong:
		report.Direction = "UP"
	case last < report.SMAShort && report.SMAShort <= report.SMALong:
		report.Direction = "DOWN"
	default:
		report.Direction = "FLAT"
	}
	return report, nil
}
