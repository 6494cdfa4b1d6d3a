package service

import (
	"context"
	"io"

	"github.com/ds124wfegd/georaster/internal/entity"
	"github.com/ds124wfegd/georaster/internal/pkg/kafka"
	"github.com/ds124wfegd/georaster/internal/pkg/loader"
)

type RasterService interface {
	Combine(ctx context.Context, first, second io.Reader, op entity.Operation) (*entity.Result, error)
	Adjust(ctx context.Context, image io.Reader, adj entity.Adjustment) (*entity.Result, error)
	Inspect(ctx context.Context, image io.Reader) (*entity.RasterInfo, error)
}

type rasterService struct {
	loader   loader.Loader
	producer kafka.Producer
	topic    string
}

func NewRasterService(loader loader.Loader, producer kafka.Producer, topic string) RasterService {
	return &rasterService{
		loader:   loader,
		producer: producer,
		topic:    topic,
	}
}
