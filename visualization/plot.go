// Package visualization renders prior/posterior curves, credible-interval
// histograms, and A/B test comparisons using gonum/plot.
package visualization

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/MyVueCodeHub/bayesfit/distributions"
)

// PlotType identifies the kind of plot a PlotData record describes.
type PlotType int

const (
	LinePlot PlotType = iota
	ScatterPlot
	HistogramPlot
	DensityPlot
	BoxPlot
)

// PlotData is a labeled (x, y) series for plotting.
type PlotData struct {
	X     []float64
	Y     []float64
	Label string
	Type  PlotType
}

// BayesianPlotter accumulates plot layers for a single figure.
type BayesianPlotter struct {
	plot *plot.Plot
}

// NewBayesianPlotter creates a new plotter with the given title.
func NewBayesianPlotter(title string) (*BayesianPlotter, error) {
	p := plot.New()
	p.Title.Text = title
	return &BayesianPlotter{plot: p}, nil
}

// PriorPosteriorPlot overlays a prior and posterior density over [xMin, xMax].
func (bp *BayesianPlotter) PriorPosteriorPlot(
	prior distributions.Dist,
	posterior distributions.Dist,
	xMin, xMax float64,
	nPoints int,
) error {
	x := make([]float64, nPoints)
	priorY := make([]float64, nPoints)
	postY := make([]float64, nPoints)

	step := (xMax - xMin) / float64(nPoints-1)
	for i := 0; i < nPoints; i++ {
		x[i] = xMin + float64(i)*step
		priorY[i] = prior.PDF(x[i])
		postY[i] = posterior.PDF(x[i])
	}

	priorLine, err := plotter.NewLine(plotter.XYs{})
	if err != nil {
		return err
	}
	for i := range x {
		priorLine.XYs = append(priorLine.XYs, plotter.XY{X: x[i], Y: priorY[i]})
	}
	priorLine.Color = color.RGBA{0, 0, 255, 50}
	priorLine.Width = vg.Points(2)

	postLine, err := plotter.NewLine(plotter.XYs{})
	if err != nil {
		return err
	}
	for i := range x {
		postLine.XYs = append(postLine.XYs, plotter.XY{X: x[i], Y: postY[i]})
	}
	postLine.Color = color.RGBA{255, 0, 0, 50}
	postLine.Width = vg.Points(2)

	bp.plot.Add(priorLine, postLine)
	bp.plot.Legend.Add("Prior", priorLine)
	bp.plot.Legend.Add("Posterior", postLine)
	bp.plot.X.Label.Text = "Value"
	bp.plot.Y.Label.Text = "Density"

	return nil
}

// CredibleIntervalPlot histograms samples and overlays a credible interval.
func (bp *BayesianPlotter) CredibleIntervalPlot(samples []float64, lower, upper float64) error {
	h, err := plotter.NewHist(plotter.Values(samples), 50)
	if err != nil {
		return err
	}
	h.Normalize(1)

	lowerLine, err := plotter.NewLine(plotter.XYs{{X: lower, Y: 0}, {X: lower, Y: 1}})
	if err != nil {
		return err
	}
	lowerLine.LineStyle.Color = color.RGBA{255, 0, 0, 50}
	lowerLine.LineStyle.Width = vg.Points(2)
	lowerLine.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}

	upperLine, err := plotter.NewLine(plotter.XYs{{X: upper, Y: 0}, {X: upper, Y: 1}})
	if err != nil {
		return err
	}
	upperLine.LineStyle = lowerLine.LineStyle

	bp.plot.Add(h, lowerLine, upperLine)
	bp.plot.X.Label.Text = "Value"
	bp.plot.Y.Label.Text = "Density"

	return nil
}

// TracePlot plots one or more sample chains against draw index, useful for
// eyeballing a posterior's MC cache draws.
func (bp *BayesianPlotter) TracePlot(chains [][]float64) error {
	for i, chain := range chains {
		line, err := plotter.NewLine(plotter.XYs{})
		if err != nil {
			return err
		}
		for j, value := range chain {
			line.XYs = append(line.XYs, plotter.XY{X: float64(j), Y: value})
		}
		bp.plot.Add(line)
		bp.plot.Legend.Add(fmt.Sprintf("Chain %d", i+1), line)
	}
	bp.plot.X.Label.Text = "Iteration"
	bp.plot.Y.Label.Text = "Value"
	return nil
}

// Save writes the plot to filename.
func (bp *BayesianPlotter) Save(filename string, width, height vg.Length) error {
	return bp.plot.Save(width, height, filename)
}

// PlotABTestResults renders overlaid control/treatment posterior
// histograms to filename.
func PlotABTestResults(controlSamples, treatmentSamples []float64, filename string) error {
	p := plot.New()
	p.Title.Text = "A/B Test Posterior Distributions"

	controlHist, err := plotter.NewHist(plotter.Values(controlSamples), 50)
	if err != nil {
		return err
	}
	controlHist.FillColor = color.RGBA{0, 0, 255, 50}
	controlHist.Color = color.RGBA{255, 0, 0, 50}
	controlHist.Normalize(1)

	treatmentHist, err := plotter.NewHist(plotter.Values(treatmentSamples), 50)
	if err != nil {
		return err
	}
	treatmentHist.FillColor = color.RGBA{255, 0, 0, 50}
	treatmentHist.Color = color.RGBA{255, 0, 0, 50}
	treatmentHist.Normalize(1)

	p.Add(controlHist, treatmentHist)
	p.Legend.Add("Control", controlHist)
	p.Legend.Add("Treatment", treatmentHist)
	p.X.Label.Text = "Conversion Rate"
	p.Y.Label.Text = "Density"

	return p.Save(8*vg.Inch, 6*vg.Inch, filename)
}
