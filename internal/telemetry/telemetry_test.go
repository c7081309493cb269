package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"lanerush/internal/game"
)

type countingMeter struct {
	noop.Meter
	counters   map[string]*int64
	histograms map[string][]float64
}

func newCountingMeter() *countingMeter {
	return &countingMeter{
		counters:   make(map[string]*int64),
		histograms: make(map[string][]float64),
	}
}

type countingCounter struct {
	noop.Int64Counter
	total *int64
}

func (c countingCounter) Add(_ context.Context, incr int64, _ ...metric.AddOption) {
	*c.total += incr
}

type recordingHistogram struct {
	noop.Float64Histogram
	name  string
	meter *countingMeter
}

func (h recordingHistogram) Record(_ context.Context, v float64, _ ...metric.RecordOption) {
	h.meter.histograms[h.name] = append(h.meter.histograms[h.name], v)
}

func (m *countingMeter) Int64Counter(name string, _ ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	total := new(int64)
	m.counters[name] = total
	return countingCounter{total: total}, nil
}

func (m *countingMeter) Float64Histogram(name string, _ ...metric.Float64HistogramOption) (metric.Float64Histogram, error) {
	return recordingHistogram{name: name, meter: m}, nil
}

func TestNewWithNoopMeter(t *testing.T) {
	m, err := New(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	m.Frame(context.Background(), time.Millisecond)
}

func TestNewWithGlobalMeter(t *testing.T) {
	_, err := New(Meter())
	require.NoError(t, err)
}

func TestFrame(t *testing.T) {
	meter := newCountingMeter()
	m, err := New(meter)
	require.NoError(t, err)

	m.Frame(context.Background(), 16*time.Millisecond)
	m.Frame(context.Background(), 1500*time.Microsecond)

	assert.Equal(t, int64(2), *meter.counters["lanerush.frames"])
	assert.Equal(t, []float64{16, 1.5}, meter.histograms["lanerush.frame.duration"])
}

func TestAttachCountsSessionEvents(t *testing.T) {
	meter := newCountingMeter()
	m, err := New(meter)
	require.NoError(t, err)

	bus := game.NewEventBus()
	m.Attach(context.Background(), bus)

	p := game.DefaultParams()
	p.DriftProbability = 0
	s, err := game.NewSession(game.SessionConfig{Params: p, Events: bus})
	require.NoError(t, err)
	assert.Equal(t, int64(p.InitialBurst), *meter.counters["lanerush.obstacles.spawned"])

	bus.Emit(game.Event{Type: game.EventCulled, Count: 3})
	bus.Emit(game.Event{Type: game.EventCollision})
	assert.Equal(t, int64(3), *meter.counters["lanerush.obstacles.culled"])
	assert.Equal(t, int64(1), *meter.counters["lanerush.collisions"])
	assert.Equal(t, game.StateRunning, s.State())
}
