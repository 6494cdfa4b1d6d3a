package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ds124wfegd/georaster/internal/entity"
	"github.com/sirupsen/logrus"
)

// EventAudit logs processing events read back from the event topic and keeps
// per-kind totals. It is driven by a single consumer goroutine.
type EventAudit struct {
	totals map[string]int
}

func NewEventAudit() *EventAudit {
	return &EventAudit{totals: make(map[string]int)}
}

func (a *EventAudit) Handle(ctx context.Context, key, value []byte) error {
	var event entity.ProcessingEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return fmt.Errorf("decode event %s: %w", key, err)
	}
	if event.Kind != entity.KindArithmetic && event.Kind != entity.KindAdjust {
		return fmt.Errorf("event %s: unknown kind %q", key, event.Kind)
	}
	a.totals[event.Kind]++

	fields := logrus.Fields{
		"event_id":    event.ID,
		"request_id":  event.RequestID,
		"kind":        event.Kind,
		"rows":        event.Rows,
		"cols":        event.Cols,
		"duration_ms": event.DurationMs,
		"total":       a.totals[event.Kind],
	}
	if event.Operation != "" {
		fields["operation"] = event.Operation
	}
	if event.Brightness != nil && event.Contrast != nil {
		fields["brightness"] = *event.Brightness
		fields["contrast"] = *event.Contrast
	}
	logrus.WithFields(fields).Info("Processing event")
	return nil
}

// Totals returns a copy of the per-kind event counts.
func (a *EventAudit) Totals() map[string]int {
	out := make(map[string]int, len(a.totals))
	for k, v := range a.totals {
		out[k] = v
	}
	return out
}
