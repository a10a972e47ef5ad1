package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"CoinSentinel/internal/model"
)

// FormatPortfolioReport formats the portfolio summary into a Telegram message.
func FormatPortfolioReport(summary *model.PortfolioRiskSummary, totalValue float64) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>CoinSentinel Portfolio Report</b> | %s\n\n", time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Total value: $%s\n", humanize.CommafWithDigits(totalValue, 2)))
	b.WriteString(fmt.Sprintf("Risk score: %d/100 (%s)\n", summary.RiskScore, riskLevelBadge(summary.RiskLevel)))
	b.WriteString(fmt.Sprintf("Volatility: %.1f%% | VaR95: %.2f%%\n", summary.Volatility, summary.VaR95))
	b.WriteString(fmt.Sprintf("Max drawdown: %.1f%% | Sharpe: %.2f\n", summary.MaxDrawdown, summary.Sharpe))
	b.WriteString(fmt.Sprintf("Avg correlation: %.2f | Confidence: %.0f%%\n", summary.AvgCorrelation, summary.Confidence))

	if len(summary.Allocation) > 0 {
		b.WriteString("\n💼 <b>Allocation:</b>\n")
		for _, slice := range summary.Allocation {
			b.WriteString(fmt.Sprintf("  %s: $%s (%.1f%%)\n",
				strings.ToUpper(slice.Symbol), humanize.CommafWithDigits(slice.Value, 0), slice.Percent))
		}
	}

	return b.String()
}

// FormatAssetReport formats one asset's analyses into a Telegram message.
func FormatAssetReport(symbol string, risk *model.RiskAnalysis, dca *model.DCAAnalysis) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🔍 <b>%s</b> | $%s\n\n",
		strings.ToUpper(symbol), humanize.CommafWithDigits(risk.Technicals.CurrentPrice, 2)))
	b.WriteString(fmt.Sprintf("Risk: %d/100 (%s) | Signal: <b>%s</b>\n",
		risk.RiskScore, riskLevelBadge(risk.RiskLevel), risk.Signal))
	b.WriteString(fmt.Sprintf("Volatility: %.1f%% | Drawdown: %.1f%% | VaR95: %.2f%%\n",
		risk.Metrics.AnnualizedVolatility, risk.Metrics.MaxDrawdown, risk.Metrics.VaR95))
	b.WriteString(fmt.Sprintf("RSI14: %.0f | SMA50: %.2f | SMA200: %.2f\n",
		risk.Technicals.RSI14, risk.Technicals.SMA50, risk.Technicals.SMA200))

	if dca != nil {
		b.WriteString(fmt.Sprintf("\nCycle: %s | DCA grade: <b>%s</b> (%.0f%%)\n",
			dca.CyclePhase, dca.CurrentGrade, dca.GradeConfidence))
		b.WriteString(fmt.Sprintf("Recommended entry: $%s | Support: $%s\n",
			humanize.CommafWithDigits(dca.DCARecommendedPrice, 2),
			humanize.CommafWithDigits(dca.Support, 2)))
	}

	return b.String()
}

// FormatRiskAlert formats a threshold-crossing alert.
func FormatRiskAlert(summary *model.PortfolioRiskSummary, previous model.RiskLevel) string {
	var b strings.Builder
	b.WriteString("⚠️ <b>Portfolio Risk Alert</b>\n\n")
	b.WriteString(fmt.Sprintf("Risk level changed: %s → <b>%s</b> (score %d)\n",
		previous, summary.RiskLevel, summary.RiskScore))
	b.WriteString(fmt.Sprintf("Volatility: %.1f%% | VaR95: %.2f%%\n", summary.Volatility, summary.VaR95))
	b.WriteString("Consider rebalancing or reducing exposure.")
	return b.String()
}

// FormatSignalAlert formats a per-asset actionable-signal alert.
func FormatSignalAlert(symbol string, risk *model.RiskAnalysis) string {
	icon := "🟢"
	if risk.Signal == model.SignalReduceRisk || risk.Signal == model.SignalSell {
		icon = "🔴"
	}
	return fmt.Sprintf("%s <b>%s</b>: signal <b>%s</b> (confidence %.0f%%)\nPrice $%s | RSI %.0f | Risk %d/100",
		icon, strings.ToUpper(symbol), risk.Signal, risk.Confidence,
		humanize.CommafWithDigits(risk.Technicals.CurrentPrice, 2),
		risk.Technicals.RSI14, risk.RiskScore)
}

func riskLevelBadge(level model.RiskLevel) string {
	switch level {
	case model.RiskLow:
		return "🟢 low"
	case model.RiskModerate:
		return "🟡 moderate"
	case model.RiskHigh:
		return "🟠 high"
	default:
		return "🔴 extreme"
	}
}
