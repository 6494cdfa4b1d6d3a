package coloradjust

import (
	"math"
	"math/rand"
	"testing"

	"github.com/ds124wfegd/georaster/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRaster(t *testing.T, rows [][]float64) *entity.Raster {
	t.Helper()
	r, err := entity.RasterFromRows(rows)
	require.NoError(t, err)
	return r
}

func TestAdjustContrastScenario(t *testing.T) {
	data := mustRaster(t, [][]float64{{0, 255}, {100, 150}})

	assert.InDelta(t, 126.25, Mean(data), 1e-12)

	out, err := Adjust(data, 1.0, 2.0)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 255}, {73.75, 173.75}}, out.Values())
}

func TestAdjustIdentityClampsOnly(t *testing.T) {
	tests := []struct {
		name string
		data [][]float64
	}{
		{"in range", [][]float64{{0, 10}, {128, 254}}},
		{"below range", [][]float64{{-50, -1}, {5, 6}}},
		{"above range", [][]float64{{250, 256}, {1000, 300}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Adjust(mustRaster(t, tt.data), 1.0, 1.0)
			require.NoError(t, err)

			got := out.Values()
			for i := range tt.data {
				for j := range tt.data[i] {
					assert.Equal(t, Clamp(tt.data[i][j], 0, 255), got[i][j], "position (%d,%d)", i, j)
				}
			}
		})
	}
}

func TestAdjustMatchesFormula(t *testing.T) {
	rows := [][]float64{{12.5, 99, 180.25}, {3, 240, 77.125}, {-20, 310, 64}}
	data := mustRaster(t, rows)
	m := Mean(data)

	for _, b := range []float64{0, 0.3, 1, 1.7, 2} {
		for _, c := range []float64{0, 0.5, 1, 1.9, 2} {
			out, err := Adjust(data, b, c)
			require.NoError(t, err)
			got := out.Values()
			for i := range rows {
				for j := range rows[i] {
					raw := (rows[i][j]-m)*c + m*b
					assert.InDelta(t, math.Max(0, math.Min(255, raw)), got[i][j], 1e-9, "b=%v c=%v (%d,%d)", b, c, i, j)
				}
			}
		}
	}
}

func TestAdjustAlwaysWithinDisplayRange(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for n := 0; n < 50; n++ {
		rows := make([][]float64, 1+rnd.Intn(6))
		cols := 1 + rnd.Intn(6)
		for i := range rows {
			rows[i] = make([]float64, cols)
			for j := range rows[i] {
				rows[i][j] = rnd.NormFloat64() * 500
			}
		}
		data := mustRaster(t, rows)

		out, err := Adjust(data, rnd.Float64()*4, rnd.Float64()*4)
		require.NoError(t, err)
		for _, row := range out.Values() {
			for _, v := range row {
				assert.GreaterOrEqual(t, v, DisplayMin)
				assert.LessOrEqual(t, v, DisplayMax)
			}
		}
	}
}

func TestAdjustZeroContrastFlattensToScaledMean(t *testing.T) {
	data := mustRaster(t, [][]float64{{10, 20}, {30, 40}})

	out, err := Adjust(data, 0.5, 0)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{12.5, 12.5}, {12.5, 12.5}}, out.Values())
}

func TestAdjustRejectsInvalidFactors(t *testing.T) {
	data := mustRaster(t, [][]float64{{1, 2}})

	tests := []struct {
		name                 string
		brightness, contrast float64
	}{
		{"negative brightness", -0.1, 1},
		{"negative contrast", 1, -2},
		{"NaN brightness", math.NaN(), 1},
		{"infinite contrast", 1, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Adjust(data, tt.brightness, tt.contrast)
			assert.ErrorIs(t, err, entity.ErrInvalidAdjustment)
		})
	}
}

func TestAdjustKeepsInputAndGeoref(t *testing.T) {
	data := mustRaster(t, [][]float64{{0, 300}})
	gt := entity.GeoTransform{0, 1, 0, 0, 0, -1}
	data.Transform = &gt
	data.CRS = "EPSG:4326"

	out, err := Adjust(data, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 255}}, out.Values())
	assert.Equal(t, [][]float64{{0, 300}}, data.Values())
	assert.Equal(t, "EPSG:4326", out.CRS)
	require.NotNil(t, out.Transform)
	assert.Equal(t, gt, *out.Transform)
}

func TestClampPropagatesNaN(t *testing.T) {
	assert.True(t, math.IsNaN(Clamp(math.NaN(), 0, 255)))
	assert.Equal(t, 0.0, Clamp(math.Inf(-1), 0, 255))
	assert.Equal(t, 255.0, Clamp(math.Inf(1), 0, 255))
}
