package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ds124wfegd/georaster/internal/entity"
	"github.com/ds124wfegd/georaster/internal/pkg/bandmath"
	"github.com/ds124wfegd/georaster/internal/pkg/coloradjust"
	"github.com/ds124wfegd/georaster/internal/pkg/requestid"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func (s *rasterService) Combine(ctx context.Context, first, second io.Reader, op entity.Operation) (*entity.Result, error) {
	start := time.Now()

	if !op.Valid() {
		return nil, fmt.Errorf("%w: %s", entity.ErrUnsupportedOperation, op)
	}

	a, err := s.loader.LoadReader(first)
	if err != nil {
		return nil, fmt.Errorf("first raster: %w", err)
	}
	b, err := s.loader.LoadReader(second)
	if err != nil {
		return nil, fmt.Errorf("second raster: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := bandmath.Combine(a, b, op)
	if err != nil {
		return nil, err
	}

	result := entity.NewResult(out)
	s.publish(ctx, &entity.ProcessingEvent{
		Kind:      entity.KindArithmetic,
		Operation: op.String(),
		Rows:      result.Rows,
		Cols:      result.Cols,
		Stats:     result.Stats,
	}, start)

	return result, nil
}

func (s *rasterService) Adjust(ctx context.Context, image io.Reader, adj entity.Adjustment) (*entity.Result, error) {
	start := time.Now()

	if err := adj.Validate(); err != nil {
		return nil, err
	}

	data, err := s.loader.LoadReader(image)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := coloradjust.Adjust(data, adj.Brightness, adj.Contrast)
	if err != nil {
		return nil, err
	}

	result := entity.NewResult(out)
	s.publish(ctx, &entity.ProcessingEvent{
		Kind:       entity.KindAdjust,
		Brightness: &adj.Brightness,
		Contrast:   &adj.Contrast,
		Rows:       result.Rows,
		Cols:       result.Cols,
		Stats:      result.Stats,
	}, start)

	return result, nil
}

func (s *rasterService) Inspect(ctx context.Context, image io.Reader) (*entity.RasterInfo, error) {
	r, err := s.loader.LoadReader(image)
	if err != nil {
		return nil, err
	}
	return entity.NewRasterInfo(r), nil
}

// publish reports a finished transform. A failed publish is logged, the result stands.
func (s *rasterService) publish(ctx context.Context, event *entity.ProcessingEvent, start time.Time) {
	event.ID = uuid.New().String()
	event.RequestID = requestid.FromContext(ctx)
	event.DurationMs = time.Since(start).Milliseconds()
	event.At = time.Now().UTC()

	entry := logrus.WithFields(logrus.Fields{
		"request_id": event.RequestID,
		"kind":       event.Kind,
		"rows":       event.Rows,
		"cols":       event.Cols,
		"duration":   time.Since(start),
	})
	if event.Operation != "" {
		entry = entry.WithField("operation", event.Operation)
	}
	entry.Info("Raster processed")

	if err := s.producer.SendMessage(s.topic, event.ID, event); err != nil {
		entry.WithError(err).Warn("Failed to publish processing event")
	}
}
