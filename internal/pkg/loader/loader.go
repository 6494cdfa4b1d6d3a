// Package loader decodes single-band GeoTIFF rasters through GDAL.
package loader

import (
	"fmt"
	"io"
	"sync"

	"github.com/airbusgeo/godal"
	"github.com/ds124wfegd/georaster/internal/entity"
	"github.com/ds124wfegd/georaster/internal/pkg/storage"
	"github.com/sirupsen/logrus"
)

type Loader interface {
	Load(path string) (*entity.Raster, error)
	LoadReader(r io.Reader) (*entity.Raster, error)
}

type gdalLoader struct {
	spool storage.FileStorage
}

var registerOnce sync.Once

func NewLoader(spool storage.FileStorage) Loader {
	registerOnce.Do(godal.RegisterAll)
	return &gdalLoader{spool: spool}
}

// Load reads band 1 of the GeoTIFF at path along with its geotransform, CRS and nodata value.
func (l *gdalLoader) Load(path string) (*entity.Raster, error) {
	ds, err := godal.Open(path, godal.RasterOnly(), godal.Drivers("GTiff"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrDecode, err)
	}
	defer ds.Close()

	bands := ds.Bands()
	if len(bands) == 0 {
		return nil, fmt.Errorf("%w: no band 1", entity.ErrDecode)
	}
	band := bands[0]
	st := band.Structure()

	buf := make([]float64, st.SizeX*st.SizeY)
	if err := band.Read(0, 0, buf, st.SizeX, st.SizeY); err != nil {
		return nil, fmt.Errorf("%w: reading band 1: %v", entity.ErrDecode, err)
	}

	r, err := entity.NewRaster(st.SizeY, st.SizeX, buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrDecode, err)
	}

	if gt, err := ds.GeoTransform(); err == nil {
		t := entity.GeoTransform(gt)
		r.Transform = &t
	}
	r.CRS = ds.Projection()
	if nd, ok := band.NoData(); ok {
		r.NoData = &nd
	}

	logrus.WithFields(logrus.Fields{
		"path":      path,
		"rows":      st.SizeY,
		"cols":      st.SizeX,
		"bands":     len(bands),
		"data_type": st.DataType,
	}).Debug("Raster loaded")

	return r, nil
}

// LoadReader spools r to disk, loads it and removes the spooled copy.
func (l *gdalLoader) LoadReader(r io.Reader) (*entity.Raster, error) {
	name, err := l.spool.SaveTemp(".tif", r)
	if err != nil {
		return nil, fmt.Errorf("spooling upload: %w", err)
	}
	defer func() {
		if err := l.spool.Delete(name); err != nil {
			logrus.WithError(err).WithField("file", name).Warn("Failed to remove spooled upload")
		}
	}()

	return l.Load(l.spool.FullPath(name))
}
