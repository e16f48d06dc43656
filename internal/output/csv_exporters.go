package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVProjectionExporter writes one row per projected year.
type CSVProjectionExporter struct{}

func (c CSVProjectionExporter) Name() string { return "csv" }

func (c CSVProjectionExporter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "TotalNetWorth", "Growth", "InvestmentGrowth", "Income", "Events", "Milestones"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, snap := range report.Projection {
		row := []string{
			fmt.Sprintf("%d", snap.Year),
			snap.TotalNetWorth.StringFixed(2),
			snap.Growth.StringFixed(2),
			snap.InvestmentGrowth.StringFixed(2),
			snap.Income.StringFixed(2),
			strings.Join(snap.Events, " | "),
			strings.Join(snap.Milestones, " | "),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// CSVMonteCarloExporter writes the percentile trajectories, one row per year.
type CSVMonteCarloExporter struct{}

func (c CSVMonteCarloExporter) Name() string { return "montecarlo-csv" }

func (c CSVMonteCarloExporter) Format(report *Report) ([]byte, error) {
	mc := report.MonteCarlo
	if mc == nil {
		return nil, fmt.Errorf("report carries no monte carlo result")
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Year", "P10", "P50", "P90"}); err != nil {
		return nil, err
	}
	for i, year := range mc.Labels {
		row := []string{
			fmt.Sprintf("%d", year),
			mc.P10[i].StringFixed(2),
			mc.P50[i].StringFixed(2),
			mc.P90[i].StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
