package infra

import (
	"sync/atomic"
	"time"
)

// Metrics provides lightweight observability without external dependencies.
// The replay loop is single-threaded; counters stay atomic so a snapshot
// may be taken from any goroutine.
type Metrics struct {
	// Counters
	messagesProcessed atomic.Uint64
	systemEvents      atomic.Uint64
	ordersAdded       atomic.Uint64
	ordersReplaced    atomic.Uint64
	ordersDeleted     atomic.Uint64
	executionsFolded  atomic.Uint64
	constructFailures atomic.Uint64
	reportsWritten    atomic.Uint64
	errorsTotal       atomic.Uint64
}

// GlobalMetrics is the singleton metrics instance.
var GlobalMetrics = &Metrics{}

// RecordMessage records one frame pulled from the capture.
func (m *Metrics) RecordMessage() {
	m.messagesProcessed.Add(1)
}

// RecordSystemEvent records a system-event message.
func (m *Metrics) RecordSystemEvent() {
	m.systemEvents.Add(1)
}

// RecordOrderAdded records an add-order index insert.
func (m *Metrics) RecordOrderAdded() {
	m.ordersAdded.Add(1)
}

// RecordOrderReplaced records a replace that registered a new reference.
func (m *Metrics) RecordOrderReplaced() {
	m.ordersReplaced.Add(1)
}

// RecordOrderDeleted records an order-delete index erase.
func (m *Metrics) RecordOrderDeleted() {
	m.ordersDeleted.Add(1)
}

// RecordExecution records an execution folded into a symbol aggregate.
func (m *Metrics) RecordExecution() {
	m.executionsFolded.Add(1)
}

// RecordConstructFailure records a dropped execution (order not found,
// broken chain, unexpected type).
func (m *Metrics) RecordConstructFailure() {
	m.constructFailures.Add(1)
}

// RecordReport records a written hourly report.
func (m *Metrics) RecordReport() {
	m.reportsWritten.Add(1)
}

// RecordError records an error occurrence.
func (m *Metrics) RecordError() {
	m.errorsTotal.Add(1)
}

// MetricsSnapshot is a point-in-time view of all metrics.
type MetricsSnapshot struct {
	MessagesProcessed uint64    `json:"messages_processed"`
	SystemEvents      uint64    `json:"system_events"`
	OrdersAdded       uint64    `json:"orders_added"`
	OrdersReplaced    uint64    `json:"orders_replaced"`
	OrdersDeleted     uint64    `json:"orders_deleted"`
	ExecutionsFolded  uint64    `json:"executions_folded"`
	ConstructFailures uint64    `json:"construct_failures"`
	ReportsWritten    uint64    `json:"reports_written"`
	ErrorsTotal       uint64    `json:"errors_total"`
	Timestamp         time.Time `json:"timestamp"`
}

// Snapshot returns current metrics as a snapshot.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		MessagesProcessed: m.messagesProcessed.Load(),
		SystemEvents:      m.systemEvents.Load(),
		OrdersAdded:       m.ordersAdded.Load(),
		OrdersReplaced:    m.ordersReplaced.Load(),
		OrdersDeleted:     m.ordersDeleted.Load(),
		ExecutionsFolded:  m.executionsFolded.Load(),
		ConstructFailures: m.constructFailures.Load(),
		ReportsWritten:    m.reportsWritten.Load(),
		ErrorsTotal:       m.errorsTotal.Load(),
		Timestamp:         time.Now(),
	}
}

// Reset clears all metrics (for testing).
func (m *Metrics) Reset() {
	m.messagesProcessed.Store(0)
	m.systemEvents.Store(0)
	m.ordersAdded.Store(0)
	m.ordersReplaced.Store(0)
	m.ordersDeleted.Store(0)
	m.executionsFolded.Store(0)
	m.constructFailures.Store(0)
	m.reportsWritten.Store(0)
	m.errorsTotal.Store(0)
}
