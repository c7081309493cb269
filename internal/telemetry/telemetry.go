// Package telemetry records gameplay metrics through OpenTelemetry.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"lanerush/internal/game"
)

const instrumentationName = "lanerush"

// Meter returns the meter from the global provider, a no-op unless an SDK
// has been installed.
func Meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Metrics holds the gameplay instruments.
type Metrics struct {
	frames        metric.Int64Counter
	spawned       metric.Int64Counter
	culled        metric.Int64Counter
	collisions    metric.Int64Counter
	frameDuration metric.Float64Histogram
}

func New(m metric.Meter) (*Metrics, error) {
	var (
		mt  Metrics
		err error
	)
	mt.frames, err = m.Int64Counter(
		"lanerush.frames",
		metric.WithDescription("Simulation ticks run"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating frames counter: %w", err)
	}

	mt.spawned, err = m.Int64Counter(
		"lanerush.obstacles.spawned",
		metric.WithDescription("Traffic cars spawned"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating spawned counter: %w", err)
	}

	mt.culled, err = m.Int64Counter(
		"lanerush.obstacles.culled",
		metric.WithDescription("Traffic cars removed after passing the camera"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating culled counter: %w", err)
	}

	mt.collisions, err = m.Int64Counter(
		"lanerush.collisions",
		metric.WithDescription("Runs ended by a collision"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating collisions counter: %w", err)
	}

	mt.frameDuration, err = m.Float64Histogram(
		"lanerush.frame.duration",
		metric.WithDescription("Wall time between ticks"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating frame duration histogram: %w", err)
	}
	return &mt, nil
}

// Frame records one tick that took dt.
func (m *Metrics) Frame(ctx context.Context, dt time.Duration) {
	m.frames.Add(ctx, 1)
	m.frameDuration.Record(ctx, float64(dt)/float64(time.Millisecond))
}

// Attach subscribes the counters to a session's events.
func (m *Metrics) Attach(ctx context.Context, bus *game.EventBus) {
	bus.Subscribe(game.EventSpawned, func(game.Event) {
		m.spawned.Add(ctx, 1)
	})
	bus.Subscribe(game.EventCulled, func(e game.Event) {
		m.culled.Add(ctx, int64(e.Count))
	})
	bus.Subscribe(game.EventCollision, func(game.Event) {
		m.collisions.Add(ctx, 1)
	})
}
