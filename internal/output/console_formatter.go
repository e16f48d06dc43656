package output

import (
	"bytes"
	"fmt"
)

// ConsoleFormatter provides a concise per-year summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "NET WORTH PROJECTION")
	fmt.Fprintln(&buf, "================================")
	if len(report.Projection) > 0 && report.Projection[0].IsInflationAdjusted {
		fmt.Fprintln(&buf, "All values in today's dollars")
	}
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "%-6s %15s %15s %15s\n", "Year", "Net Worth", "Growth", "Income")
	for _, snap := range report.Projection {
		fmt.Fprintf(&buf, "%-6d %15s %15s %15s\n",
			snap.Year,
			FormatCurrency(snap.TotalNetWorth),
			FormatCurrency(snap.Growth),
			FormatCurrency(snap.Income),
		)
		for _, m := range snap.Milestones {
			fmt.Fprintf(&buf, "       * %s\n", m)
		}
	}
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Final Net Worth: %s\n", FormatCurrency(report.Projection.FinalNetWorth()))

	if mc := report.MonteCarlo; mc != nil {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Monte Carlo (%d iterations)\n", mc.Iterations)
		last := len(mc.Labels) - 1
		if last >= 0 {
			fmt.Fprintf(&buf, "  Final p10/p50/p90: %s / %s / %s\n",
				FormatCurrency(mc.P10[last]), FormatCurrency(mc.P50[last]), FormatCurrency(mc.P90[last]))
		}
		fmt.Fprintf(&buf, "  Goal probability: %s\n", FormatPercentage(mc.GoalProbability))
	}
	if st := report.Stress; st != nil {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "Crash Stress")
		fmt.Fprintf(&buf, "  Baseline final: %s\n", FormatCurrency(st.Baseline.FinalNetWorth()))
		fmt.Fprintf(&buf, "  Stressed final: %s\n", FormatCurrency(st.Stressed.FinalNetWorth()))
		fmt.Fprintf(&buf, "  Reduction: %s (%s)\n", FormatCurrency(st.FinalDelta), FormatPercentage(st.ReductionPercent))
	}
	return buf.Bytes(), nil
}

// ConsoleVerboseFormatter adds the full event narrative under every year.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console-full" }

func (c ConsoleVerboseFormatter) Format(report *Report) ([]byte, error) {
	summary, err := ConsoleFormatter{}.Format(report)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Write(summary)
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "YEAR-BY-YEAR DETAIL")
	fmt.Fprintln(&buf, "================================")
	for _, snap := range report.Projection {
		fmt.Fprintf(&buf, "%d  net worth %s, investment growth %s\n",
			snap.Year, FormatCurrency(snap.TotalNetWorth), FormatCurrency(snap.InvestmentGrowth))
		for _, ev := range snap.Events {
			fmt.Fprintf(&buf, "  - %s\n", ev)
		}
		if len(snap.Events) == 0 {
			fmt.Fprintln(&buf, "  (no events)")
		}
	}
	return buf.Bytes(), nil
}
