package engine

import (
	"fmt"
	"io"
	"tradesim/types"

	"github.com/shopspring/decimal"
)

type Report struct {
	// Meta / period info
	Ticks          int
	TotalOrders    int
	FilledOrders   int
	RejectedOrders int

	// Absolute performance
	StartingValue decimal.Decimal
	EndingValue   decimal.Decimal
	NetProfit     decimal.Decimal
	TotalReturn   decimal.Decimal
	RealizedPnL   decimal.Decimal

	// Closing sell distribution
	AvgWin  decimal.Decimal
	AvgLoss decimal.Decimal

	// Drawdown & loss streak metrics
	MaxDrawdown          decimal.Decimal
	MaxDrawdownPercent   decimal.Decimal
	MaxDrawdownTicks     int
	MaxConsecutiveLosses int

	Candles []types.Candle
}

// MoneyFormatter renders an amount of cash as text.
type MoneyFormatter interface {
	Format(amount decimal.Decimal) string
}

// Report summarizes the session so far.
func (e *Engine) Report() *Report {
	report := &Report{}
	report.Ticks = e.tick
	report.TotalOrders = len(e.journal)
	for _, er := range e.journal {
		if er.Filled() {
			report.FilledOrders++
		} else {
			report.RejectedOrders++
		}
	}

	report.StartingValue = e.initialCash
	report.EndingValue = e.portfolioValue()
	report.NetProfit = report.EndingValue.Sub(report.StartingValue)
	if report.StartingValue.GreaterThan(decimal.Zero) {
		report.TotalReturn = report.NetProfit.Div(report.StartingValue)
	}

	report.RealizedPnL = calcRealizedPnL(e.journal)
	report.AvgWin, report.AvgLoss = calcAvgWinLoss(e.journal)
	report.MaxDrawdown, report.MaxDrawdownPercent, report.MaxDrawdownTicks = calcDrawdownMetrics(e.snapshots)
	report.MaxConsecutiveLosses = calcMaxConsecutiveLosses(e.journal)

	for _, a := range e.assets {
		report.Candles = append(report.Candles, *e.candles[a.Name()])
	}
	return report
}

func PrintReport(w io.Writer, report *Report, money MoneyFormatter) {
	fmt.Fprintln(w, "===== Session Report =====")
	fmt.Fprintf(w, "Ticks:                 %d\n", report.Ticks)
	fmt.Fprintf(w, "Orders:                %d (%d filled, %d rejected)\n", report.TotalOrders, report.FilledOrders, report.RejectedOrders)

	fmt.Fprintln(w, "\n-- Performance --")
	fmt.Fprintf(w, "Starting Value:        %s\n", money.Format(report.StartingValue))
	fmt.Fprintf(w, "Ending Value:          %s\n", money.Format(report.EndingValue))
	fmt.Fprintf(w, "Net Profit:            %s\n", money.Format(report.NetProfit))
	fmt.Fprintf(w, "Total Return:          %s%%\n", report.TotalReturn.Shift(2).StringFixed(2))
	fmt.Fprintf(w, "Realized PnL:          %s\n", money.Format(report.RealizedPnL))
	fmt.Fprintf(w, "Avg Win:               %s\n", money.Format(report.AvgWin))
	fmt.Fprintf(w, "Avg Loss:              %s\n", money.Format(report.AvgLoss))

	fmt.Fprintln(w, "\n-- Drawdown --")
	fmt.Fprintf(w, "Max Drawdown:          %s\n", money.Format(report.MaxDrawdown))
	fmt.Fprintf(w, "Max Drawdown %%:        %s%%\n", report.MaxDrawdownPercent.Shift(2).StringFixed(2))
	fmt.Fprintf(w, "Max Drawdown Ticks:    %d\n", report.MaxDrawdownTicks)
	fmt.Fprintf(w, "Max Consecutive Losses:%d\n", report.MaxConsecutiveLosses)

	if len(report.Candles) > 0 {
		fmt.Fprintln(w, "\n-- Prices --")
		for _, c := range report.Candles {
			fmt.Fprintf(w, "%-8s open %s  high %s  low %s  close %s  (%s%%)\n",
				c.Ticker,
				money.Format(c.Open), money.Format(c.High), money.Format(c.Low), money.Format(c.Close),
				c.Change().Shift(2).StringFixed(2))
		}
	}

	fmt.Fprintln(w, "==========================")
}

func calcRealizedPnL(journal []types.ExecutionReport) decimal.Decimal {
	total := decimal.Zero
	for _, er := range journal {
		if er.Filled() && er.Side == types.SideTypeSell {
			total = total.Add(er.RealizedPnL)
		}
	}
	return total
}

// calcAvgWinLoss averages the realized result of filled sells. Losses are
// reported as positive amounts.
func calcAvgWinLoss(journal []types.ExecutionReport) (decimal.Decimal, decimal.Decimal) {
	sumWins := decimal.Zero
	sumLosses := decimal.Zero
	winCount := 0
	lossCount := 0

	for _, er := range journal {
		if !er.Filled() || er.Side != types.SideTypeSell {
			continue
		}
		switch {
		case er.RealizedPnL.GreaterThan(decimal.Zero):
			sumWins = sumWins.Add(er.RealizedPnL)
			winCount++
		case er.RealizedPnL.LessThan(decimal.Zero):
			sumLosses = sumLosses.Add(er.RealizedPnL.Abs())
			lossCount++
		}
	}

	avgWin := decimal.Zero
	avgLoss := decimal.Zero

	if winCount > 0 {
		avgWin = sumWins.Div(decimal.NewFromInt(int64(winCount)))
	}
	if lossCount > 0 {
		avgLoss = sumLosses.Div(decimal.NewFromInt(int64(lossCount)))
	}

	return avgWin, avgLoss
}

// calcDrawdownMetrics expects snapshots in tick order.
func calcDrawdownMetrics(snapshots []types.PortfolioView) (decimal.Decimal, decimal.Decimal, int) {
	if len(snapshots) == 0 {
		return decimal.Zero, decimal.Zero, 0
	}

	peak := decimal.Zero
	peakTick := 0

	maxDD := decimal.Zero
	maxDDPct := decimal.Zero
	maxDDTicks := 0

	for i, snap := range snapshots {
		equity := snap.Total

		if i == 0 || equity.GreaterThan(peak) || peak.IsZero() {
			peak = equity
			peakTick = snap.Tick
		}

		if peak.GreaterThan(decimal.Zero) {
			dd := peak.Sub(equity)

			if dd.GreaterThan(maxDD) {
				maxDD = dd
				maxDDPct = dd.Div(peak)
				maxDDTicks = snap.Tick - peakTick
			}
		}
	}

	return maxDD, maxDDPct, maxDDTicks
}

func calcMaxConsecutiveLosses(journal []types.ExecutionReport) int {
	maxLossStreak := 0
	currentStreak := 0

	for _, er := range journal {
		if !er.Filled() || er.Side != types.SideTypeSell {
			continue
		}
		if er.RealizedPnL.LessThan(decimal.Zero) {
			currentStreak++
			if currentStreak > maxLossStreak {
				maxLossStreak = currentStreak
			}
		} else {
			currentStreak = 0
		}
	}

	return maxLossStreak
}
