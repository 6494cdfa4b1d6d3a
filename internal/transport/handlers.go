package transport

import (
	"github.com/ds124wfegd/georaster/internal/service"
)

type HandlerConfig struct {
	MaxAdjustment   float64
	PreviewMaxDim   int
	DefaultFormat   string
	MultipartMemory int64
}

type RasterHandler struct {
	service service.RasterService
	cfg     HandlerConfig
}

func NewRasterHandler(service service.RasterService, cfg HandlerConfig) *RasterHandler {
	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = formatJSON
	}
	if cfg.MultipartMemory <= 0 {
		cfg.MultipartMemory = 32 << 20
	}
	return &RasterHandler{service: service, cfg: cfg}
}
