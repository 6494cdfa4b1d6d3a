package entity

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// GeoTransform is the affine pixel to world mapping in GDAL coefficient order:
// originX, pixelWidth, rowRotation, originY, columnRotation, pixelHeight.
type GeoTransform [6]float64

// Apply maps a pixel/line position to world coordinates.
func (gt GeoTransform) Apply(col, row float64) orb.Point {
	return orb.Point{
		gt[0] + col*gt[1] + row*gt[2],
		gt[3] + col*gt[4] + row*gt[5],
	}
}

// Georef describes where a raster of Rows x Cols samples sits in world space.
type Georef struct {
	Transform *GeoTransform `json:"transform,omitempty"`
	CRS       string        `json:"crs,omitempty"`
	Rows      int           `json:"-"`
	Cols      int           `json:"-"`
}

// Footprint is the closed ring through the four outer pixel corners.
// Rotated transforms yield a parallelogram.
func (g *Georef) Footprint() orb.Polygon {
	if g == nil || g.Transform == nil {
		return nil
	}
	w, h := float64(g.Cols), float64(g.Rows)
	ring := orb.Ring{
		g.Transform.Apply(0, 0),
		g.Transform.Apply(w, 0),
		g.Transform.Apply(w, h),
		g.Transform.Apply(0, h),
		g.Transform.Apply(0, 0),
	}
	return orb.Polygon{ring}
}

func (g *Georef) Bounds() (orb.Bound, bool) {
	fp := g.Footprint()
	if fp == nil {
		return orb.Bound{}, false
	}
	return fp.Bound(), true
}

func (g *Georef) Feature() *geojson.Feature {
	fp := g.Footprint()
	if fp == nil {
		return nil
	}
	f := geojson.NewFeature(fp)
	if g.CRS != "" {
		f.Properties["crs"] = g.CRS
	}
	f.Properties["rows"] = g.Rows
	f.Properties["cols"] = g.Cols
	return f
}
