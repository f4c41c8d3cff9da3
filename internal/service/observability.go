package service

import (
	"context"
	"log/slog"
	"time"
)

// MapOp names a store operation reported to observers.
type MapOp string

const (
	OpCreate MapOp = "create-map"
	OpSave   MapOp = "save-map"
	OpRename MapOp = "rename-map"
	OpDelete MapOp = "delete-map"
	OpExport MapOp = "export-map"
	OpImport MapOp = "import-map"
)

// MapEvent describes one finished store operation.
type MapEvent struct {
	Op        MapOp
	MapID     string
	NodeCount int
	StartedAt time.Time
	Duration  time.Duration
	Err       error
	Attrs     []slog.Attr
}

// MapObserver receives an event after every store operation.
type MapObserver interface {
	ObserveMapOp(ctx context.Context, event MapEvent)
}

// NoopMapObserver ignores all events.
type NoopMapObserver struct{}

func (NoopMapObserver) ObserveMapOp(context.Context, MapEvent) {}

type slogMapObserver struct {
	logger *slog.Logger
}

// NewSlogMapObserver logs store operations as "map_op" records. Failures are
// logged at error level.
func NewSlogMapObserver(logger *slog.Logger) MapObserver {
	if logger == nil {
		return NoopMapObserver{}
	}
	return &slogMapObserver{logger: logger}
}

func (o *slogMapObserver) ObserveMapOp(ctx context.Context, event MapEvent) {
	attrs := make([]slog.Attr, 0, 5+len(event.Attrs))
	attrs = append(attrs,
		slog.String("op", string(event.Op)),
		slog.Int64("duration_ms", event.Duration.Milliseconds()),
	)
	if event.MapID != "" {
		attrs = append(attrs, slog.String("map_id", event.MapID))
	}
	if event.NodeCount > 0 {
		attrs = append(attrs, slog.Int("node_count", event.NodeCount))
	}
	attrs = append(attrs, event.Attrs...)

	level := slog.LevelInfo
	if event.Err != nil {
		level = slog.LevelError
		attrs = append(attrs, slog.String("error", event.Err.Error()))
	}
	o.logger.LogAttrs(ctx, level, "map_op", attrs...)
}

type multiMapObserver []MapObserver

func (m multiMapObserver) ObserveMapOp(ctx context.Context, event MapEvent) {
	for _, o := range m {
		o.ObserveMapOp(ctx, event)
	}
}

// joinObservers drops nil observers and fans out to the rest.
func joinObservers(observers []MapObserver) MapObserver {
	var live multiMapObserver
	for _, o := range observers {
		if o != nil {
			live = append(live, o)
		}
	}
	switch len(live) {
	case 0:
		return NoopMapObserver{}
	case 1:
		return live[0]
	}
	return live
}

// opTrace accumulates the event for an operation in flight.
type opTrace struct {
	event MapEvent
}

func startOp(op MapOp, mapID string) *opTrace {
	return &opTrace{event: MapEvent{Op: op, MapID: mapID, StartedAt: time.Now()}}
}

func (t *opTrace) attr(a slog.Attr) { t.event.Attrs = append(t.event.Attrs, a) }

func (s *mindMapService) finish(ctx context.Context, t *opTrace, err error) {
	t.event.Duration = time.Since(t.event.StartedAt)
	t.event.Err = err
	s.observer.ObserveMapOp(ctx, t.event)
}
