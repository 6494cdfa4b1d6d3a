package entity

import (
	"math"
	"strconv"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Sample is a raster value that encodes NaN and infinities as JSON null.
type Sample float64

func (s Sample) MarshalJSON() ([]byte, error) {
	f := float64(s)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

type Stats struct {
	Min      Sample `json:"min"`
	Max      Sample `json:"max"`
	Mean     Sample `json:"mean"`
	Count    int    `json:"count"`
	NaNCount int    `json:"nan_count"`
}

// ComputeStats summarises the finite samples of r. Non-finite samples are
// counted in NaNCount and left out of Min, Max and Mean.
func ComputeStats(r *Raster) Stats {
	rows, _ := r.Shape()
	st := Stats{Min: Sample(math.NaN()), Max: Sample(math.NaN()), Mean: Sample(math.NaN())}
	var sum float64
	for i := 0; i < rows; i++ {
		for _, v := range r.Data.RawRowView(i) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				st.NaNCount++
				continue
			}
			if st.Count == 0 || v < float64(st.Min) {
				st.Min = Sample(v)
			}
			if st.Count == 0 || v > float64(st.Max) {
				st.Max = Sample(v)
			}
			sum += v
			st.Count++
		}
	}
	if st.Count > 0 {
		st.Mean = Sample(sum / float64(st.Count))
	}
	return st
}

type Result struct {
	Rows   int        `json:"rows"`
	Cols   int        `json:"cols"`
	Values [][]Sample `json:"values"`
	Stats  Stats      `json:"stats"`
	Georef *Georef    `json:"georef,omitempty"`

	Raster *Raster `json:"-"`
}

func NewResult(r *Raster) *Result {
	rows, cols := r.Shape()
	values := make([][]Sample, rows)
	for i := range values {
		row := r.Data.RawRowView(i)
		values[i] = make([]Sample, cols)
		for j, v := range row {
			values[i][j] = Sample(v)
		}
	}
	return &Result{
		Rows:   rows,
		Cols:   cols,
		Values: values,
		Stats:  ComputeStats(r),
		Georef: r.Georef(),
		Raster: r,
	}
}

type RasterInfo struct {
	Rows      int              `json:"rows"`
	Cols      int              `json:"cols"`
	Georef    *Georef          `json:"georef,omitempty"`
	NoData    *float64         `json:"nodata,omitempty"`
	Bounds    *orb.Bound       `json:"bounds,omitempty"`
	Footprint *geojson.Feature `json:"footprint,omitempty"`
	Stats     Stats            `json:"stats"`
}

func NewRasterInfo(r *Raster) *RasterInfo {
	rows, cols := r.Shape()
	info := &RasterInfo{
		Rows:   rows,
		Cols:   cols,
		Georef: r.Georef(),
		NoData: r.NoData,
		Stats:  ComputeStats(r),
	}
	if b, ok := info.Georef.Bounds(); ok {
		info.Bounds = &b
		info.Footprint = info.Georef.Feature()
	}
	return info
}

const (
	KindArithmetic = "arithmetic"
	KindAdjust     = "adjust"
)

// ProcessingEvent is published once per successful transform.
type ProcessingEvent struct {
	ID         string    `json:"id"`
	RequestID  string    `json:"request_id,omitempty"`
	Kind       string    `json:"kind"`
	Operation  string    `json:"operation,omitempty"`
	Brightness *float64  `json:"brightness,omitempty"`
	Contrast   *float64  `json:"contrast,omitempty"`
	Rows       int       `json:"rows"`
	Cols       int       `json:"cols"`
	DurationMs int64     `json:"duration_ms"`
	Stats      Stats     `json:"stats"`
	At         time.Time `json:"at"`
}

type OperationsResponse struct {
	Operations    []string   `json:"operations"`
	Default       Adjustment `json:"default_adjustment"`
	MaxAdjustment float64    `json:"max_adjustment"`
}
