package confusion

import (
	"html/template"
	"io"
)

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Confusion Matrix Report</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; margin: 1em 0; }
th, td { border: 1px solid #999; padding: 0.4em 0.8em; text-align: right; }
th { background: #eee; }
</style>
</head>
<body>
<h1>Confusion Matrix Report</h1>
<h2>Matrix</h2>
<table>
<tr><th>Actual \ Predicted</th>{{range .Classes}}<th>{{.}}</th>{{end}}</tr>
{{range $i, $class := .Classes}}<tr><th>{{$class}}</th>{{range index $.Table $i}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
<h2>Overall Statistics</h2>
<table>
<tr><th>Accuracy</th><td>{{printf "%.5f" .Stats.Accuracy}}</td></tr>
<tr><th>Precision (macro)</th><td>{{printf "%.5f" .Stats.Precision}}</td></tr>
<tr><th>Recall (macro)</th><td>{{printf "%.5f" .Stats.Recall}}</td></tr>
<tr><th>F1 (macro)</th><td>{{printf "%.5f" .Stats.F1}}</td></tr>
<tr><th>Kappa</th><td>{{printf "%.5f" .Stats.Kappa}}</td></tr>
</table>
</body>
</html>
`))

// RenderHTML writes a self-contained HTML report of the matrix and its
// overall statistics.
func (m *Matrix) RenderHTML(w io.Writer) error {
	data := struct {
		Classes []string
		Table   [][]int
		Stats   struct {
			Accuracy, Precision, Recall, F1, Kappa float64
		}
	}{
		Classes: m.Classes,
		Table:   m.Table,
	}
	data.Stats.Accuracy = m.Accuracy()
	data.Stats.Precision = m.PrecisionMacro()
	data.Stats.Recall = m.RecallMacro()
	data.Stats.F1 = m.F1Macro()
	data.Stats.Kappa = m.Kappa()

	return reportTemplate.Execute(w, data)
}
