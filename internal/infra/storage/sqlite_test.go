package storage

import (
	"path/filepath"
	"testing"

	"itch_go/internal/domain"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}
	return s
}

func TestStorage_SaveAndGetHour(t *testing.T) {
	s := newTestStorage(t)

	rows := []domain.VWAPRecord{
		{Hour: 9, Stock: "MSFT    ", Volume: 10, Notional: "29000", VWAP: "2900"},
		{Hour: 9, Stock: "AAPL    ", Volume: 40, Notional: "6000", VWAP: "150"},
	}
	if err := s.SaveSnapshot(rows); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	got, err := s.GetHour(9)
	if err != nil {
		t.Fatalf("GetHour: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetHour returned %d rows, want 2", len(got))
	}
	// Ordered by stock
	if got[0].Stock != "AAPL    " || got[1].Stock != "MSFT    " {
		t.Errorf("row order = %q, %q", got[0].Stock, got[1].Stock)
	}
	if got[0].Volume != 40 || got[0].VWAP != "150" {
		t.Errorf("AAPL row = %+v", got[0])
	}
}

func TestStorage_SaveSnapshotUpserts(t *testing.T) {
	s := newTestStorage(t)

	if err := s.SaveSnapshot([]domain.VWAPRecord{
		{Hour: 9, Stock: "AAPL    ", Volume: 40, Notional: "6000", VWAP: "150"},
	}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveSnapshot([]domain.VWAPRecord{
		{Hour: 9, Stock: "AAPL    ", Volume: 90, Notional: "13500", VWAP: "150"},
	}); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetHour(9)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("upsert produced %d rows, want 1", len(got))
	}
	if got[0].Volume != 90 {
		t.Errorf("Volume = %d, want the upserted 90", got[0].Volume)
	}
}

func TestStorage_GetStock(t *testing.T) {
	s := newTestStorage(t)

	if err := s.SaveSnapshot([]domain.VWAPRecord{
		{Hour: 10, Stock: "IBM     ", Volume: 200, Notional: "15000", VWAP: "75"},
		{Hour: 9, Stock: "IBM     ", Volume: 100, Notional: "5000", VWAP: "50"},
		{Hour: 9, Stock: "AAPL    ", Volume: 40, Notional: "6000", VWAP: "150"},
	}); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetStock("IBM     ")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("GetStock returned %d rows, want 2", len(got))
	}
	// Ordered by hour; the VWAP is cumulative session-to-date.
	if got[0].Hour != 9 || got[1].Hour != 10 {
		t.Errorf("hour order = %d, %d", got[0].Hour, got[1].Hour)
	}

	if err := s.SaveSnapshot(nil); err != nil {
		t.Errorf("empty snapshot should be a no-op, got %v", err)
	}
}
