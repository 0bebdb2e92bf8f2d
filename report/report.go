// Package report renders the experiment's results: stdout tables for the
// per-model triples and sweeps, a terminal curve for the KNN sweep, and
// PNG plots for the write-up.
package report

import (
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"

	"github.com/LDPStardust/FNADiagnosticsAnalysis/analysis"
	"github.com/LDPStardust/FNADiagnosticsAnalysis/crossval"
)

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

// WriteModelTable renders one row per cross-validated model.
func WriteModelTable(w io.Writer, results []*crossval.Result) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Model", "Accuracy", "Sensitivity", "Specificity"})
	for _, res := range results {
		table.Append([]string{
			res.Name,
			percent(res.Mean.Accuracy),
			percent(res.Mean.Sensitivity),
			percent(res.Mean.Specificity),
		})
	}
	table.Render()
}

// WriteSweepTable renders one row per hyperparameter grid point.
func WriteSweepTable(w io.Writer, title string, results []crossval.SweepResult) {
	fmt.Fprintln(w, title)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Params", "Accuracy", "Sensitivity", "Specificity"})
	for _, res := range results {
		table.Append([]string{
			res.Label,
			percent(res.Mean.Accuracy),
			percent(res.Mean.Sensitivity),
			percent(res.Mean.Specificity),
		})
	}
	table.Render()
}

// SweepCurve draws mean accuracy (in percent) against the sweep's numeric
// coordinate as a terminal chart.
func SweepCurve(results []crossval.SweepResult, caption string) string {
	series := make([]float64, len(results))
	for i, res := range results {
		series[i] = res.Mean.Accuracy * 100
	}
	return asciigraph.Plot(series,
		asciigraph.Height(12),
		asciigraph.Caption(caption),
	)
}

// WriteFeatureSummaries renders the descriptive statistics table.
func WriteFeatureSummaries(w io.Writer, summaries []analysis.FeatureSummary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Feature", "Mean", "StdDev", "Min", "Q1", "Median", "Q3", "Max"})
	for _, s := range summaries {
		table.Append([]string{
			s.Name,
			fmt.Sprintf("%.3f", s.Mean),
			fmt.Sprintf("%.3f", s.StdDev),
			fmt.Sprintf("%.3f", s.Min),
			fmt.Sprintf("%.3f", s.Q1),
			fmt.Sprintf("%.3f", s.Median),
			fmt.Sprintf("%.3f", s.Q3),
			fmt.Sprintf("%.3f", s.Max),
		})
	}
	table.Render()
}
