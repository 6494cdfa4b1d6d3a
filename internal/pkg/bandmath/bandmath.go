// Package bandmath combines two equally shaped single-band rasters element-wise.
package bandmath

import (
	"fmt"

	"github.com/ds124wfegd/georaster/internal/entity"
	"gonum.org/v1/gonum/mat"
)

// Combine applies op to every pair of samples of a and b and returns a new raster
// carrying a's georeferencing. A zero divisor yields 0, never NaN or Inf.
func Combine(a, b *entity.Raster, op entity.Operation) (*entity.Raster, error) {
	if !a.SameShape(b) {
		ar, ac := a.Shape()
		br, bc := b.Shape()
		return nil, fmt.Errorf("%w: %dx%d and %dx%d", entity.ErrShapeMismatch, ar, ac, br, bc)
	}

	rows, cols := a.Shape()
	out := mat.NewDense(rows, cols, nil)

	switch op {
	case entity.OpAdd:
		out.Add(a.Data, b.Data)
	case entity.OpSubtract:
		out.Sub(a.Data, b.Data)
	case entity.OpMultiply:
		out.MulElem(a.Data, b.Data)
	case entity.OpDivide:
		out.Apply(func(i, j int, v float64) float64 {
			d := b.Data.At(i, j)
			if d == 0 {
				return 0
			}
			return v / d
		}, a.Data)
	default:
		return nil, fmt.Errorf("%w: %s", entity.ErrUnsupportedOperation, op)
	}

	return a.WithData(out), nil
}

// CombineNamed parses name and combines a and b with it.
func CombineNamed(a, b *entity.Raster, name string) (*entity.Raster, error) {
	op, err := entity.ParseOperation(name)
	if err != nil {
		return nil, err
	}
	return Combine(a, b, op)
}
