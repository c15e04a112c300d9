package render

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// BarPNG renders a bar view to a PNG image for the chart download
// endpoints. The interactive page uses the JSON payloads instead.
func BarPNG(view BarView) ([]byte, error) {
	p := plot.New()
	p.Title.Text = view.Title
	p.X.Label.Text = view.XTitle
	p.Y.Label.Text = view.YTitle

	values := make(plotter.Values, len(view.Values))
	for i, v := range view.Values {
		values[i] = float64(v)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return nil, fmt.Errorf("build bar chart: %w", err)
	}
	bars.LineStyle.Width = 0
	bars.Color = color.RGBA{R: 0xd6, G: 0x3b, B: 0x2f, A: 0xff}

	p.Add(bars)
	p.NominalX(view.Labels...)

	writer, err := p.WriterTo(8*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return nil, fmt.Errorf("render bar chart: %w", err)
	}

	var buf bytes.Buffer
	if _, err := writer.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write bar chart: %w", err)
	}
	return buf.Bytes(), nil
}
