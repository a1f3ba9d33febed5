package report

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/tak-akashi/test-ocr-models/evaluate"
)

// writeCharts renders a per-document CER bar chart. Documents appear in
// result order, which the evaluator already sorts by source path.
func writeCharts(results []evaluate.Result, summary evaluate.Summary, path string) error {
	x := make([]string, 0, len(results))
	y := make([]opts.BarData, 0, len(results))
	for _, r := range results {
		x = append(x, r.DocumentID)
		y = append(y, opts.BarData{Value: r.CER * 100})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "OCR Evaluation Charts", Width: "100%", Height: "720px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Character Error Rate per Document",
			Subtitle: fmt.Sprintf("samples=%d accuracy=%.1f%% avg CER=%.1f%%", summary.TotalSamples, summary.Accuracy*100, summary.AvgCER*100),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "CER (%)"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)
	bar.SetXAxis(x).AddSeries("cer", y)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return nil
}
