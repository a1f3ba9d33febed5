package report

import (
	"fmt"
	"html/template"
	"os"

	"github.com/tak-akashi/test-ocr-models/evaluate"
)

// The page is self-contained (inline CSS, no external assets) so it can be
// opened from any machine the output directory is copied to. Templating via
// html/template keeps vendor text escape-safe: OCR output routinely contains
// literal angle brackets.
var resultsPage = template.Must(template.New("results").Funcs(template.FuncMap{
	"percent": func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
	"score":   func(v float64) string { return fmt.Sprintf("%.3f", v) },
}).Parse(`<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>OCR Evaluation Results</title>
<style>
body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; max-width: 1400px; margin: 0 auto; padding: 20px; background-color: #f5f5f5; }
h1 { color: #333; text-align: center; margin-bottom: 30px; }
.summary { background: white; padding: 20px; border-radius: 8px; margin-bottom: 30px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
.summary-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 15px; }
.stat { text-align: center; }
.stat-label { font-size: 14px; color: #666; margin-bottom: 5px; }
.stat-value { font-size: 24px; font-weight: bold; color: #2c3e50; }
.comparison { background: white; padding: 20px; margin-bottom: 20px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
.comparison.match { border-left: 5px solid #27ae60; }
.comparison.mismatch { border-left: 5px solid #e74c3c; }
.filename { font-weight: bold; margin-bottom: 10px; color: #2c3e50; }
.text-comparison { display: grid; grid-template-columns: 1fr 1fr; gap: 20px; margin-top: 15px; }
.text-box { padding: 15px; border-radius: 4px; background-color: #f8f9fa; }
.text-box h3 { margin-top: 0; margin-bottom: 10px; font-size: 14px; color: #666; }
.text-content { font-family: 'Noto Sans JP', sans-serif; line-height: 1.6; word-break: break-all; }
.metrics { margin-top: 15px; padding: 10px; background-color: #f8f9fa; border-radius: 4px; font-size: 13px; }
.metrics span { margin-right: 15px; }
.match-badge { display: inline-block; padding: 4px 8px; border-radius: 4px; font-size: 12px; font-weight: bold; margin-left: 10px; }
.match-badge.yes { background-color: #d4edda; color: #155724; }
.match-badge.no { background-color: #f8d7da; color: #721c24; }
</style>
</head>
<body>
<h1>OCR Evaluation Results</h1>

<div class="summary">
<h2>Summary Statistics</h2>
<div class="summary-grid">
<div class="stat"><div class="stat-label">Total Samples</div><div class="stat-value">{{.Summary.TotalSamples}}</div></div>
<div class="stat"><div class="stat-label">Exact Matches</div><div class="stat-value">{{.Summary.ExactMatches}}</div></div>
<div class="stat"><div class="stat-label">Accuracy</div><div class="stat-value">{{percent .Summary.Accuracy}}</div></div>
<div class="stat"><div class="stat-label">Avg CER</div><div class="stat-value">{{percent .Summary.AvgCER}}</div></div>
{{if gt .Summary.AvgDetScore 0.0}}<div class="stat"><div class="stat-label">Avg Det Score</div><div class="stat-value">{{score .Summary.AvgDetScore}}</div></div>{{end}}
{{if gt .Summary.AvgRecScore 0.0}}<div class="stat"><div class="stat-label">Avg Rec Score</div><div class="stat-value">{{score .Summary.AvgRecScore}}</div></div>{{end}}
</div>
</div>

<h2>Detailed Comparisons</h2>
{{range .Results}}
<div class="comparison {{if .ExactMatch}}match{{else}}mismatch{{end}}">
<div class="filename">{{.DocumentID}}<span class="match-badge {{if .ExactMatch}}yes{{else}}no{{end}}">{{if .ExactMatch}}&#10003; Match{{else}}&#10007; Mismatch{{end}}</span></div>
<div class="text-comparison">
<div class="text-box"><h3>Ground Truth</h3><div class="text-content">{{.GroundTruth}}</div></div>
<div class="text-box"><h3>Predicted</h3><div class="text-content">{{if .Predicted}}{{.Predicted}}{{else}}<em>(empty)</em>{{end}}</div></div>
</div>
<div class="metrics">
<span><strong>CER:</strong> {{percent .CER}}</span>
<span><strong>Edit Distance:</strong> {{.EditDistance}}</span>
{{if gt .WordCount 0}}<span><strong>Words:</strong> {{.WordCount}}</span>{{end}}
{{if gt .AvgDetScore 0.0}}<span><strong>Det Score:</strong> {{score .AvgDetScore}}</span>{{end}}
{{if gt .AvgRecScore 0.0}}<span><strong>Rec Score:</strong> {{score .AvgRecScore}}</span>{{end}}
</div>
</div>
{{end}}
</body>
</html>
`))

type pageData struct {
	Summary evaluate.Summary
	Results []evaluate.Result
}

func writeHTML(results []evaluate.Result, summary evaluate.Summary, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := resultsPage.Execute(f, pageData{Summary: summary, Results: results}); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return nil
}
