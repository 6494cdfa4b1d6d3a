// Package render turns a raster into a grayscale preview image.
package render

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/ds124wfegd/georaster/internal/entity"
)

// Range is the value interval mapped onto black..white.
type Range struct {
	Min float64
	Max float64
}

// Grayscale stretches the finite samples of r linearly from their min to their max.
// Non-finite samples and constant rasters render black.
func Grayscale(r *entity.Raster) (*image.Gray, Range) {
	rows, cols := r.Shape()
	rng := valueRange(r)
	span := rng.Max - rng.Min

	img := image.NewGray(image.Rect(0, 0, cols, rows))
	for y := 0; y < rows; y++ {
		for x, v := range r.Data.RawRowView(y) {
			var g uint8
			if span > 0 && !math.IsNaN(v) && !math.IsInf(v, 0) {
				g = uint8(math.Round((v - rng.Min) / span * 255))
			}
			img.SetGray(x, y, color.Gray{Y: g})
		}
	}
	return img, rng
}

func valueRange(r *entity.Raster) Range {
	st := entity.ComputeStats(r)
	if st.Count == 0 {
		return Range{}
	}
	return Range{Min: float64(st.Min), Max: float64(st.Max)}
}

// Preview renders r and shrinks it to fit maxDim x maxDim when either side is larger.
// maxDim <= 0 keeps the native size.
func Preview(r *entity.Raster, maxDim int) (image.Image, Range) {
	img, rng := Grayscale(r)
	b := img.Bounds()
	if maxDim > 0 && (b.Dx() > maxDim || b.Dy() > maxDim) {
		return imaging.Fit(img, maxDim, maxDim, imaging.Lanczos), rng
	}
	return img, rng
}

// EncodePNG writes the preview of r as PNG.
func EncodePNG(w io.Writer, r *entity.Raster, maxDim int) (Range, error) {
	img, rng := Preview(r, maxDim)
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return rng, err
	}
	return rng, nil
}
