// Package report renders an HTML summary of analysis results: one grouped
// bar chart of Quantity of Motion per marker, with one series per trial.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/quantmotion/qdm/internal/worker"
)

// Render writes the report for the given results to path. Trials that failed
// to load are left out of the chart; callers report those separately.
func Render(results []worker.TrialResult, path string) error {
	markers := markerUnion(results)
	if len(markers) == 0 {
		return fmt.Errorf("no marker results to report")
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Quantity of Motion",
			Width:     "1200px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Quantity of Motion per marker",
			Subtitle: subtitle(results),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	)

	bar.SetXAxis(markers)
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		data := make([]opts.BarData, len(markers))
		byMarker := map[string]float64{}
		for _, mm := range res.Motions {
			byMarker[mm.Marker] = mm.Distance
		}
		for i, m := range markers {
			if d, ok := byMarker[m]; ok {
				data[i] = opts.BarData{Value: d}
			} else {
				data[i] = opts.BarData{Value: nil}
			}
		}
		bar.AddSeries(seriesName(res), data)
	}

	page := components.NewPage()
	page.AddCharts(bar)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}

// markerUnion collects every marker token that produced a result, sorted.
func markerUnion(results []worker.TrialResult) []string {
	seen := map[string]bool{}
	for _, res := range results {
		for _, mm := range res.Motions {
			seen[mm.Marker] = true
		}
	}
	markers := make([]string, 0, len(seen))
	for m := range seen {
		markers = append(markers, m)
	}
	sort.Strings(markers)
	return markers
}

// subtitle reports the distance unit when it is uniform across trials.
func subtitle(results []worker.TrialResult) string {
	unit := ""
	for _, res := range results {
		for _, u := range res.Trial.Units {
			if u == "" {
				continue
			}
			if unit == "" {
				unit = u
			} else if unit != u {
				return "cumulative path length (mixed units)"
			}
		}
	}
	if unit == "" {
		return "cumulative path length"
	}
	return "cumulative path length (" + unit + ")"
}

func seriesName(res worker.TrialResult) string {
	name := filepath.Base(res.Trial.SourcePath)
	if res.Trial.Title != "" && res.Trial.Title != "Trajectories" {
		name = res.Trial.Title
	}
	return name
}
