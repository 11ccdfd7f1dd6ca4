package sim

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// series is a named scatter of a tracking plot.
type series struct {
	name  string
	data  *mat.Dense
	color color.Color
	shape draw.GlyphDrawer
}

// NewTrackPlot creates new plot of a tracking run from the three data sources:
// truth:   ground truth values
// measure: measurement values
// filter:  filter estimates
// Each data source stores time in its first column and the tracked value in its second column.
// It returns error if either of the data matrices is nil or has less than 2 columns,
// or if gonum plot fails to create a scatter.
func NewTrackPlot(title string, truth, measure, filter *mat.Dense) (*plot.Plot, error) {
	all := []series{
		{name: "truth", data: truth, color: color.RGBA{R: 255, B: 128, A: 255}, shape: draw.PyramidGlyph{}},
		{name: "measurement", data: measure, color: color.RGBA{G: 255, A: 128}, shape: draw.CircleGlyph{}},
		{name: "filtered", data: filter, color: color.RGBA{R: 169, G: 169, B: 169, A: 255}, shape: draw.CrossGlyph{}},
	}

	for _, s := range all {
		if s.data == nil {
			return nil, fmt.Errorf("missing %s data", s.name)
		}

		if _, c := s.data.Dims(); c < 2 {
			return nil, fmt.Errorf("invalid %s data dimensions: %d columns", s.name, c)
		}
	}

	p := plot.New()

	p.Title.Text = title
	p.X.Label.Text = "time [s]"
	p.Y.Label.Text = "value"

	legend := plot.NewLegend()
	legend.Top = true
	p.Legend = legend

	for _, s := range all {
		sc, err := plotter.NewScatter(makePoints(s.data))
		if err != nil {
			return nil, fmt.Errorf("failed to create %s scatter: %w", s.name, err)
		}
		sc.GlyphStyle.Color = s.color
		sc.GlyphStyle.Shape = s.shape
		sc.GlyphStyle.Radius = vg.Points(1)

		p.Add(sc)
		p.Legend.Add(s.name, sc)
	}

	return p, nil
}

// SavePlot writes p to a png, svg or pdf file at path, chosen by the path extension.
func SavePlot(p *plot.Plot, path string) error {
	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

func makePoints(m *mat.Dense) plotter.XYs {
	r, _ := m.Dims()
	pts := make(plotter.XYs, r)
	for i := 0; i < r; i++ {
		pts[i].X = m.At(i, 0)
		pts[i].Y = m.At(i, 1)
	}

	return pts
}
