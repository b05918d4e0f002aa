// Package figure renders stacked panels of overlaid histograms to PDF.
package figure

import (
	"image/color"
	"math"
	"os"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgpdf"
)

// ErrEmptyFigure is returned when saving a figure without panels.
var ErrEmptyFigure = errors.New("figure has no panels")

const (
	defaultBins  = 10
	defaultAlpha = 0.75
	defaultWidth = 9 * vg.Inch
	// each panel gets panelHeight, plus headroom for the whole figure.
	panelHeight = 3 * vg.Inch
	extraHeight = 2 * vg.Inch

	logMinCount = 0.5
)

// Series is one histogram of a panel.
type Series struct {
	Label  string
	Values []float64
}

// Panel is one row of a figure. All its series are drawn on the same axes.
type Panel struct {
	Title  string
	XLabel string
	LogY   bool
	Series []Series
}

// Figure is a column of histogram panels.
type Figure struct {
	panels []Panel
	bins   int
	alpha  float64
	width  vg.Length
	height vg.Length
}

// Option configures a Figure.
type Option func(*Figure)

// Bins sets the number of histogram bins.
func Bins(n int) Option {
	return func(f *Figure) {
		if n > 0 {
			f.bins = n
		}
	}
}

// Alpha sets the fill opacity of the histograms.
func Alpha(a float64) Option {
	return func(f *Figure) {
		f.alpha = math.Max(0, math.Min(1, a))
	}
}

// Size sets the page size in inches.
func Size(width, height float64) Option {
	return func(f *Figure) {
		f.width = vg.Length(width) * vg.Inch
		f.height = vg.Length(height) * vg.Inch
	}
}

// New creates an empty figure.
func New(opts ...Option) *Figure {
	f := &Figure{
		bins:  defaultBins,
		alpha: defaultAlpha,
		width: defaultWidth,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// AddPanel appends a panel below the existing ones.
func (f *Figure) AddPanel(p Panel) {
	f.panels = append(f.panels, p)
}

// Panels returns the number of panels.
func (f *Figure) Panels() int {
	return len(f.panels)
}

// Save writes the figure to path as a PDF.
func (f *Figure) Save(path string) (err error) {
	if len(f.panels) == 0 {
		return errors.Wrap(ErrEmptyFigure, path)
	}

	height := f.height
	if height == 0 {
		height = vg.Length(len(f.panels))*panelHeight + extraHeight
	}

	plots := make([][]*plot.Plot, len(f.panels))

	for i, panel := range f.panels {
		p, err := f.plot(panel)
		if err != nil {
			return errors.Wrapf(err, "unable to plot panel %d", i)
		}

		plots[i] = []*plot.Plot{p}
	}

	canvas := vgpdf.New(f.width, height)
	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadY:      vg.Centimeter,
		PadTop:    vg.Centimeter / 2,
		PadBottom: vg.Centimeter / 2,
		PadLeft:   vg.Centimeter / 2,
		PadRight:  vg.Centimeter / 2,
	}

	canvases := plot.Align(plots, tiles, draw.New(canvas))
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", path)
	}

	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "unable to close file %s", path)
		}
	}()

	if _, err := canvas.WriteTo(file); err != nil {
		return errors.Wrapf(err, "unable to write pdf %s", path)
	}

	return nil
}

func (f *Figure) plot(panel Panel) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = panel.Title
	p.X.Label.Text = panel.XLabel
	p.Y.Label.Text = "count"
	p.Legend.Top = true

	palette, err := Palette(len(panel.Series), f.alpha)
	if err != nil {
		return nil, err
	}

	drawn := 0

	for i, s := range panel.Series {
		values := finite(s.Values)
		if len(values) == 0 {
			continue
		}

		h, err := plotter.NewHist(values, f.bins)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to bin %s", s.Label)
		}

		h.FillColor = palette[i]
		h.LineStyle.Color = color.Black
		h.LogY = panel.LogY

		p.Add(h)
		p.Legend.Add(s.Label, h)

		drawn++
	}

	switch {
	case drawn == 0:
		// keep an empty, well defined frame
		p.X.Min, p.X.Max = 0, 1
		p.Y.Min, p.Y.Max = 0, 1
	case panel.LogY:
		// counts are whole numbers; the range must stay positive and open.
		p.Y.Min = logMinCount
		p.Y.Max = math.Max(p.Y.Max, 2)
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	return p, nil
}

// finite drops NaN and infinite values.
func finite(values []float64) plotter.Values {
	out := make(plotter.Values, 0, len(values))

	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}

		out = append(out, v)
	}

	return out
}
