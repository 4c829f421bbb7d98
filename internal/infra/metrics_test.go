package infra

import "testing"

func TestMetrics_Snapshot(t *testing.T) {
	m := &Metrics{}

	m.RecordMessage()
	m.RecordMessage()
	m.RecordSystemEvent()
	m.RecordOrderAdded()
	m.RecordOrderReplaced()
	m.RecordOrderDeleted()
	m.RecordExecution()
	m.RecordConstructFailure()
	m.RecordReport()
	m.RecordError()

	snap := m.Snapshot()
	if snap.MessagesProcessed != 2 {
		t.Errorf("MessagesProcessed = %d, want 2", snap.MessagesProcessed)
	}
	if snap.SystemEvents != 1 || snap.OrdersAdded != 1 || snap.OrdersReplaced != 1 || snap.OrdersDeleted != 1 {
		t.Errorf("unexpected counter values: %+v", snap)
	}
	if snap.ExecutionsFolded != 1 || snap.ConstructFailures != 1 || snap.ReportsWritten != 1 || snap.ErrorsTotal != 1 {
		t.Errorf("unexpected counter values: %+v", snap)
	}
	if snap.Timestamp.IsZero() {
		t.Error("snapshot timestamp should be set")
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := &Metrics{}
	m.RecordMessage()
	m.RecordExecution()
	m.Reset()

	snap := m.Snapshot()
	if snap.MessagesProcessed != 0 || snap.ExecutionsFolded != 0 {
		t.Errorf("Reset left counters set: %+v", snap)
	}
}
