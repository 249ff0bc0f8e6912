package export

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/piwi3910/BoxPack/internal/engine"
	"github.com/piwi3910/BoxPack/internal/model"
)

// ExportChart writes an HTML bar chart of the per-container efficiency.
func ExportChart(path string, result model.PackResult) error {
	return writeFile(path, func(w io.Writer) error { return WriteChart(w, result) })
}

// WriteChart renders the per-container efficiency of a result as an HTML
// bar chart, one bar per container in percent.
func WriteChart(w io.Writer, result model.PackResult) error {
	if len(result.Containers) == 0 {
		return fmt.Errorf("no containers to chart")
	}

	names := make([]string, len(result.Containers))
	values := make([]opts.BarData, len(result.Containers))
	for i, c := range result.Containers {
		names[i] = fmt.Sprintf("Container %d", i+1)
		values[i] = opts.BarData{Value: percent(c.Efficiency())}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Container efficiency",
			Subtitle: fmt.Sprintf("Global %.1f%% over %d containers", result.GlobalEfficiency()*100, len(result.Containers)),
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "%", Min: 0, Max: 100}),
	)
	bar.SetXAxis(names).AddSeries("Efficiency", values)
	return bar.Render(w)
}

// ExportComparisonChart writes an HTML chart comparing scenario results.
func ExportComparisonChart(path string, results []engine.ComparisonResult) error {
	return writeFile(path, func(w io.Writer) error { return WriteComparisonChart(w, results) })
}

// WriteComparisonChart renders global efficiency and containers used per
// scenario as grouped bars. Failed scenarios are left out.
func WriteComparisonChart(w io.Writer, results []engine.ComparisonResult) error {
	var names []string
	var efficiency, containers []opts.BarData
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		names = append(names, r.Scenario.Name)
		efficiency = append(efficiency, opts.BarData{Value: percent(r.Efficiency)})
		containers = append(containers, opts.BarData{Value: r.ContainersUsed})
	}
	if len(names) == 0 {
		return fmt.Errorf("no successful scenarios to chart")
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Scenario comparison"}),
	)
	bar.SetXAxis(names).
		AddSeries("Efficiency %", efficiency).
		AddSeries("Containers", containers)
	return bar.Render(w)
}

// percent converts a fraction to a percentage rounded to one decimal.
func percent(f float64) float64 {
	return math.Round(f*1000) / 10
}

// writeFile creates path and hands it to render, reporting the first error.
func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
