package entity

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Raster is a single band of samples plus optional georeferencing.
type Raster struct {
	Data      *mat.Dense
	Transform *GeoTransform
	CRS       string
	NoData    *float64
}

// NewRaster wraps row-major samples. data may be nil, in which case the raster is zeroed.
func NewRaster(rows, cols int, data []float64) (*Raster, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyRaster, rows, cols)
	}
	if data != nil && len(data) != rows*cols {
		return nil, fmt.Errorf("%w: %d samples for %dx%d", ErrShapeMismatch, len(data), rows, cols)
	}
	return &Raster{Data: mat.NewDense(rows, cols, data)}, nil
}

// RasterFromRows builds a raster from a rectangular [][]float64.
func RasterFromRows(rows [][]float64) (*Raster, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyRaster
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d samples, want %d", ErrShapeMismatch, i, len(row), cols)
		}
		data = append(data, row...)
	}
	return NewRaster(len(rows), cols, data)
}

func (r *Raster) Shape() (rows, cols int) {
	return r.Data.Dims()
}

func (r *Raster) SameShape(other *Raster) bool {
	ar, ac := r.Shape()
	br, bc := other.Shape()
	return ar == br && ac == bc
}

// Values copies the samples out as rows.
func (r *Raster) Values() [][]float64 {
	rows, cols := r.Shape()
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
		mat.Row(out[i], i, r.Data)
	}
	return out
}

// WithData returns a raster carrying r's georeferencing over new samples.
func (r *Raster) WithData(data *mat.Dense) *Raster {
	out := &Raster{Data: data, CRS: r.CRS}
	if r.Transform != nil {
		gt := *r.Transform
		out.Transform = &gt
	}
	return out
}

func (r *Raster) Georef() *Georef {
	if r.Transform == nil && r.CRS == "" {
		return nil
	}
	rows, cols := r.Shape()
	return &Georef{Transform: r.Transform, CRS: r.CRS, Rows: rows, Cols: cols}
}
