package figure

import (
	"image/color"

	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint
)

// tableau is the default matplotlib colour cycle.
var tableau = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Palette returns n fill colours with the given opacity, cycling when n is
// larger than the base palette.
func Palette(n int, alpha float64) ([]color.Color, error) {
	out := make([]color.Color, n)

	for i := range out {
		hex, err := colors.ParseHEX(tableau[i%len(tableau)])
		if err != nil {
			return nil, errors.Wrap(err, "unable to parse colour")
		}

		rgb := hex.ToRGB()
		a := uint8(alpha * 255)

		out[i] = color.NRGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: a}
	}

	return out, nil
}
