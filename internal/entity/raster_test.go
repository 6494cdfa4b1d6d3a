package entity

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRaster(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		data       []float64
		wantErr    error
	}{
		{"zeroed", 2, 3, nil, nil},
		{"filled", 2, 2, []float64{1, 2, 3, 4}, nil},
		{"no rows", 0, 3, nil, ErrEmptyRaster},
		{"no cols", 3, 0, nil, ErrEmptyRaster},
		{"short data", 2, 2, []float64{1, 2, 3}, ErrShapeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRaster(tt.rows, tt.cols, tt.data)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			rows, cols := r.Shape()
			assert.Equal(t, tt.rows, rows)
			assert.Equal(t, tt.cols, cols)
		})
	}
}

func TestRasterFromRows(t *testing.T) {
	r, err := RasterFromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, r.Values())
	assert.Equal(t, 6.0, r.Data.At(1, 2))

	_, err = RasterFromRows([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = RasterFromRows(nil)
	assert.ErrorIs(t, err, ErrEmptyRaster)
}

func TestSameShape(t *testing.T) {
	a, _ := NewRaster(2, 3, nil)
	b, _ := NewRaster(2, 3, nil)
	c, _ := NewRaster(3, 2, nil)

	assert.True(t, a.SameShape(b))
	assert.False(t, a.SameShape(c))
}

func TestWithDataCopiesGeoref(t *testing.T) {
	src, _ := NewRaster(1, 1, []float64{1})
	gt := GeoTransform{1, 2, 3, 4, 5, 6}
	src.Transform = &gt
	src.CRS = "EPSG:3857"

	out := src.WithData(src.Data)
	require.NotNil(t, out.Transform)
	out.Transform[0] = 99

	assert.Equal(t, 1.0, src.Transform[0])
	assert.Equal(t, "EPSG:3857", out.CRS)
}

func TestGeorefFootprint(t *testing.T) {
	r, _ := NewRaster(2, 4, nil)
	assert.Nil(t, r.Georef())

	gt := GeoTransform{100, 10, 0, 500, 0, -5}
	r.Transform = &gt
	g := r.Georef()
	require.NotNil(t, g)

	fp := g.Footprint()
	require.Len(t, fp, 1)
	assert.Equal(t, orb.Ring{{100, 500}, {140, 500}, {140, 490}, {100, 490}, {100, 500}}, fp[0])

	b, ok := g.Bounds()
	require.True(t, ok)
	assert.Equal(t, orb.Bound{Min: orb.Point{100, 490}, Max: orb.Point{140, 500}}, b)
}

func TestGeorefRotatedFootprint(t *testing.T) {
	g := &Georef{Transform: &GeoTransform{0, 1, 1, 0, 1, -1}, Rows: 2, Cols: 2}

	assert.Equal(t, orb.Point{2, 2}, g.Transform.Apply(2, 0))
	assert.Equal(t, orb.Point{4, 0}, g.Transform.Apply(2, 2))

	b, ok := g.Bounds()
	require.True(t, ok)
	assert.Equal(t, orb.Bound{Min: orb.Point{0, -2}, Max: orb.Point{4, 2}}, b)
}

func TestGeorefFeature(t *testing.T) {
	g := &Georef{Transform: &GeoTransform{0, 1, 0, 0, 0, -1}, CRS: "EPSG:4326", Rows: 3, Cols: 2}

	f := g.Feature()
	require.NotNil(t, f)
	assert.Equal(t, "EPSG:4326", f.Properties["crs"])
	assert.Equal(t, 3, f.Properties["rows"])

	var empty *Georef
	assert.Nil(t, empty.Feature())
	_, ok := empty.Bounds()
	assert.False(t, ok)
}

func TestSampleMarshalJSON(t *testing.T) {
	values := []Sample{1.5, Sample(math.NaN()), Sample(math.Inf(1)), Sample(math.Inf(-1)), -0.25, 255}

	data, err := json.Marshal(values)
	require.NoError(t, err)
	assert.JSONEq(t, `[1.5,null,null,null,-0.25,255]`, string(data))
}

func TestComputeStats(t *testing.T) {
	r, err := RasterFromRows([][]float64{{1, math.NaN(), 3}, {math.Inf(1), 8, -4}})
	require.NoError(t, err)

	st := ComputeStats(r)
	assert.Equal(t, 4, st.Count)
	assert.Equal(t, 2, st.NaNCount)
	assert.Equal(t, Sample(-4), st.Min)
	assert.Equal(t, Sample(8), st.Max)
	assert.Equal(t, Sample(2), st.Mean)
}

func TestComputeStatsAllMissing(t *testing.T) {
	r, err := RasterFromRows([][]float64{{math.NaN(), math.NaN()}})
	require.NoError(t, err)

	st := ComputeStats(r)
	assert.Zero(t, st.Count)
	assert.True(t, math.IsNaN(float64(st.Mean)))

	data, err := json.Marshal(st)
	require.NoError(t, err)
	assert.JSONEq(t, `{"min":null,"max":null,"mean":null,"count":0,"nan_count":2}`, string(data))
}

func TestNewResultAndInfo(t *testing.T) {
	r, err := RasterFromRows([][]float64{{0, 1}, {2, math.NaN()}})
	require.NoError(t, err)
	nodata := -9999.0
	r.NoData = &nodata
	r.Transform = &GeoTransform{10, 1, 0, 20, 0, -1}
	r.CRS = "EPSG:32633"

	res := NewResult(r)
	assert.Equal(t, 2, res.Rows)
	assert.Equal(t, 2, res.Cols)
	assert.Equal(t, Sample(2), res.Values[1][0])
	require.NotNil(t, res.Georef)
	assert.Equal(t, "EPSG:32633", res.Georef.CRS)

	_, err = json.Marshal(res)
	require.NoError(t, err)

	info := NewRasterInfo(r)
	require.NotNil(t, info.Bounds)
	assert.Equal(t, orb.Bound{Min: orb.Point{10, 18}, Max: orb.Point{12, 20}}, *info.Bounds)
	require.NotNil(t, info.Footprint)
	assert.Equal(t, -9999.0, *info.NoData)

	_, err = json.Marshal(info)
	require.NoError(t, err)
}
