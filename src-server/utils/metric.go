package utils

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Metric carries samples from the bot to the prometheus collectors in the
// metric package. Sends never block; a sample is dropped when its channel
// is full.
type Metric struct {
	DatabaseRead       chan float64
	DatabaseWrite      chan float64
	DiscordSendMessage chan float64
	CommandHandled     chan string
	CopypastaSent      chan struct{}
}

const metricBufferSize = 64

func NewMetric() *Metric {
	return &Metric{
		DatabaseRead:       make(chan float64, metricBufferSize),
		DatabaseWrite:      make(chan float64, metricBufferSize),
		DiscordSendMessage: make(chan float64, metricBufferSize),
		CommandHandled:     make(chan string, metricBufferSize),
		CopypastaSent:      make(chan struct{}, metricBufferSize),
	}
}

func trySend[T any](ch chan T, v T) {
	select {
	case ch <- v:
	default:
	}
}

func (m *Metric) ObserveDatabaseRead(d time.Duration) {
	trySend(m.DatabaseRead, float64(d.Microseconds()))
}

func (m *Metric) ObserveDatabaseWrite(d time.Duration) {
	trySend(m.DatabaseWrite, float64(d.Microseconds()))
}

func (m *Metric) ObserveDiscordSend(d time.Duration) {
	trySend(m.DiscordSendMessage, float64(d.Microseconds()))
}

func (m *Metric) CountCommand(name string) {
	trySend(m.CommandHandled, name)
}

func (m *Metric) CountCopypastaSent() {
	trySend(m.CopypastaSent, struct{}{})
}

// MetricQueryHook times every bun query: SELECTs count as reads, anything
// else as writes.
type MetricQueryHook struct {
	metric *Metric
}

var _ bun.QueryHook = (*MetricQueryHook)(nil)

func NewMetricQueryHook(m *Metric) *MetricQueryHook {
	return &MetricQueryHook{metric: m}
}

func (h *MetricQueryHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *MetricQueryHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	switch event.Operation() {
	case "SELECT":
		h.metric.ObserveDatabaseRead(time.Since(event.StartTime))
	case "BEGIN", "COMMIT", "ROLLBACK":
	default:
		h.metric.ObserveDatabaseWrite(time.Since(event.StartTime))
	}
}
