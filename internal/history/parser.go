package history

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"stockpulse/internal/model"
)

// Historical-data rows have exactly these columns:
// Date, Open, High, Low, Close, Adj Close, Volume.
const rowColumns = 7

const (
	sourceDateLayout = "Jan 2, 2006"
	outputDateLayout = "2006-01-02"
)

// ParseRows converts raw scraped table rows into a clean close-price series,
// sorted ascending by date. Rows with the wrong column count (header
// artifacts, dividend/split annotations), unparsable dates, or closes that
// are non-numeric, non-finite, or <= 0 are dropped, never zero-filled.
func ParseRows(rows [][]string) []model.PricePoint {
	points := make([]model.PricePoint, 0, len(rows))
	for _, row := range rows {
		if len(row) != rowColumns {
			continue
		}
		date, err := time.Parse(sourceDateLayout, strings.TrimSpace(row[0]))
		if err != nil {
			continue
		}
		close, ok := parseClose(row[4])
		if !ok {
			continue
		}
		points = append(points, model.PricePoint{
			Date:  date.Format(outputDateLayout),
			Close: close,
		})
	}
	// The source table is newest-first; callers get ascending order.
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// parseClose strips thousands separators and a leading sign marker, then
// requires a finite positive value.
func parseClose(cell string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	s = strings.TrimPrefix(s, "+")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}
