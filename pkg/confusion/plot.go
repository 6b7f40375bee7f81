package confusion

import (
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// heatGrid adapts a Matrix to gonum/plot's GridXYZ.
//
// Rows are flipped so that the first class sits at the top of the image.
type heatGrid struct {
	m *Matrix
}

func (g heatGrid) Dims() (int, int) {
	return len(g.m.Classes), len(g.m.Classes)
}

func (g heatGrid) Z(c, r int) float64 {
	rows := len(g.m.Classes)
	return float64(g.m.Table[rows-1-r][c])
}

func (g heatGrid) X(c int) float64 {
	return float64(c)
}

func (g heatGrid) Y(r int) float64 {
	return float64(r)
}

// RenderPNG writes a heatmap of the matrix as a PNG image.
func (m *Matrix) RenderPNG(w io.Writer) error {
	p := plot.New()
	p.Title.Text = "Confusion Matrix"
	p.X.Label.Text = "Predicted"
	p.Y.Label.Text = "Actual"

	heat := plotter.NewHeatMap(heatGrid{m}, palette.Heat(12, 1))
	p.Add(heat)

	p.NominalX(m.Classes...)
	reversed := make([]string, len(m.Classes))
	for i, c := range m.Classes {
		reversed[len(m.Classes)-1-i] = c
	}
	p.NominalY(reversed...)

	wt, err := p.WriterTo(5*vg.Inch, 5*vg.Inch, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
