package notifier

import (
	"fmt"
	"strings"
	"time"

	"stockpulse/internal/model"
)

// FormatAnalysisReport formats an analysis result into a Telegram message.
func FormatAnalysisReport(report *model.AnalysisReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>StockPulse</b> | %s | %s\n\n",
		report.Symbol, time.Now().Format("2006-01-02")))

	if report.Trend != nil {
		b.WriteString(fmt.Sprintf("Last close: %.2f (%+.1f%% over %d days)\n",
			report.Trend.LastClose, report.Trend.ChangePct, report.Trend.SampleCount))
		b.WriteString(fmt.Sprintf("Trend: %s | SMA10: %.2f | SMA50: %.2f\n",
			report.Trend.Direction, report.Trend.SMAShort, report.Trend.SMALong))
	}
	if report.Sentiment != nil {
		b.WriteString(fmt.Sprintf("Sentiment: %s (%+.2f): %s\n",
			report.Sentiment.Label, report.Sentiment.Score, report.Sentiment.Rationale))
	}

	b.WriteString("\n📈 <b>Factor scores:</b>\n")
	for _, f := range report.Factors {
		b.WriteString(fmt.Sprintf("  %s (%s): %+.2f (×%.2f) = %+.3f\n",
			f.Name, f.Commentary, f.RawScore, f.Weight, f.Weighted))
	}
	b.WriteString("  ─────────────────\n")
	b.WriteString(fmt.Sprintf("  Combined: %+.3f\n\n", report.TotalScore))

	b.WriteString(fmt.Sprintf("💡 <b>Suggestion:</b> %s (confidence %.0f%%)\n",
		report.Suggestion.Label, report.Suggestion.Confidence*100))

	return b.String()
}

// FormatActionChange formats an alert for a watchlist entry whose suggested
// action flipped since the previous run.
func FormatActionChange(entry model.WatchEntry, report *model.AnalysisReport) string {
	return fmt.Sprintf("🔔 <b>%s</b>: suggestion changed %s → %s (score %+.3f)",
		report.Symbol, entry.LastAction, report.Suggestion.Action, report.TotalScore)
}
