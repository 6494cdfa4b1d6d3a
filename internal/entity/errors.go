package entity

import "errors"

var (
	// Loader errors
	ErrDecode = errors.New("cannot decode raster")

	// Engine errors
	ErrShapeMismatch        = errors.New("raster shapes do not match")
	ErrUnsupportedOperation = errors.New("operation not supported")
	ErrInvalidAdjustment    = errors.New("invalid adjustment parameters")
	ErrEmptyRaster          = errors.New("raster has no samples")

	// Request errors
	ErrMissingUpload = errors.New("raster file not provided")
)
