// Package coloradjust rescales a raster's intensities around its mean for display.
package coloradjust

import (
	"math"

	"github.com/ds124wfegd/georaster/internal/entity"
	"gonum.org/v1/gonum/mat"
)

const (
	DisplayMin = 0.0
	DisplayMax = 255.0
)

// Mean is the arithmetic mean over every sample, NaN included.
func Mean(r *entity.Raster) float64 {
	rows, cols := r.Shape()
	return mat.Sum(r.Data) / float64(rows*cols)
}

// Adjust computes (data - m) * contrast + m * brightness with m the mean of data,
// then clamps every sample to [DisplayMin, DisplayMax].
func Adjust(data *entity.Raster, brightness, contrast float64) (*entity.Raster, error) {
	adj := entity.Adjustment{Brightness: brightness, Contrast: contrast}
	if err := adj.Validate(); err != nil {
		return nil, err
	}

	m := Mean(data)
	base := m * brightness

	rows, cols := data.Shape()
	out := mat.NewDense(rows, cols, nil)
	out.Apply(func(_, _ int, v float64) float64 {
		// the conversion keeps the product rounded on its own, no fused multiply-add
		scaled := float64((v - m) * contrast)
		return Clamp(scaled+base, DisplayMin, DisplayMax)
	}, data.Data)

	return data.WithData(out), nil
}

// Clamp leaves NaN untouched.
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
