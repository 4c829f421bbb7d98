package engine

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"itch_go/internal/domain"
	"itch_go/internal/infra"
	"itch_go/internal/itch"
)

func testStocks() map[itch.Stock]*domain.VolumePrice {
	return map[itch.Stock]*domain.VolumePrice{
		itch.StockFromString("MSFT"): {Volume: 10, Notional: decimal.RequireFromString("29000")},
		itch.StockFromString("AAPL"): {Volume: 40, Notional: decimal.RequireFromString("6000")},
		itch.StockFromString("Z"):    {Volume: 0, Notional: decimal.Zero},
	}
}

func TestReporter_Report(t *testing.T) {
	dir := t.TempDir()
	out := &bytes.Buffer{}
	r := NewReporter(dir, out, nil, nil, &infra.Metrics{})

	now := itch.Timestamp(10*itch.HourNanos + 5*itch.MinuteNanos)
	if err := r.Report(now, 9, testStocks()); err != nil {
		t.Fatalf("Report: %v", err)
	}

	t.Run("Stdout line", func(t *testing.T) {
		want := "10:05:00.000000000 | Reporting VWAP | Stock_VWAP_09.csv | 3 stocks\n"
		if out.String() != want {
			t.Errorf("stdout = %q, want %q", out.String(), want)
		}
	})

	t.Run("File content", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(dir, "Stock_VWAP_09.csv"))
		if err != nil {
			t.Fatal(err)
		}
		// Rows sort bytewise by symbol; zero volume reports a zero VWAP.
		want := "Stock, VWAP\n" +
			"AAPL    , 150\n" +
			"MSFT    , 2900\n" +
			"Z       , 0\n"
		if string(data) != want {
			t.Errorf("file =\n%q\nwant\n%q", string(data), want)
		}
	})
}

func TestReporter_ReportWriteFailure(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewReporter(filepath.Join(t.TempDir(), "missing-subdir"), out, nil, nil, &infra.Metrics{})

	if err := r.Report(0, 0, testStocks()); err == nil {
		t.Error("expected an error for an unwritable report directory")
	}
}

func TestReporter_LogSystemEvent(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewReporter(t.TempDir(), out, nil, nil, &infra.Metrics{})

	r.LogSystemEvent(itch.Timestamp(20*itch.HourNanos), itch.EventEndMessages)
	want := "20:00:00.000000000 | End of Messages\n"
	if out.String() != want {
		t.Errorf("stdout = %q, want %q", out.String(), want)
	}
}
