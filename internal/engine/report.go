package engine

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"itch_go/internal/domain"
	"itch_go/internal/infra"
	"itch_go/internal/infra/monitor"
	"itch_go/internal/infra/storage"
	"itch_go/internal/itch"
)

// Reporter writes the hourly VWAP snapshots: one Stock_VWAP_HH.csv per
// completed session hour plus a summary line on out. The optional archive
// and monitor side channels run after the CSV write so the contractual
// output order is preserved; their failures are diagnostics only.
type Reporter struct {
	dir       string
	out       io.Writer
	archive   *storage.Storage
	publisher *monitor.Publisher
	metrics   *infra.Metrics
}

// NewReporter creates a reporter writing CSVs under dir and summary lines
// to out (nil means stdout). archive and publisher may be nil.
func NewReporter(dir string, out io.Writer, archive *storage.Storage, publisher *monitor.Publisher, metrics *infra.Metrics) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	if metrics == nil {
		metrics = infra.GlobalMetrics
	}
	return &Reporter{
		dir:       dir,
		out:       out,
		archive:   archive,
		publisher: publisher,
		metrics:   metrics,
	}
}

// LogSystemEvent prints the session-event line for a system message.
func (r *Reporter) LogSystemEvent(ts itch.Timestamp, e itch.SystemEventType) {
	fmt.Fprintf(r.out, "%s | %s\n", ts, e.Description())
}

// Report snapshots the aggregates into Stock_VWAP_<hour>.csv. Rows are
// sorted bytewise by symbol so two replays of the same capture produce
// byte-identical files.
func (r *Reporter) Report(now itch.Timestamp, hour uint64, stocks map[itch.Stock]*domain.VolumePrice) error {
	filename := fmt.Sprintf("Stock_VWAP_%02d.csv", hour)

	fmt.Fprintf(r.out, "%s | Reporting VWAP | %s | %d stocks\n", now, filename, len(stocks))

	symbols := make([]itch.Stock, 0, len(stocks))
	for s := range stocks {
		symbols = append(symbols, s)
	}
	sort.Slice(symbols, func(i, j int) bool {
		return bytes.Compare(symbols[i][:], symbols[j][:]) < 0
	})

	rows := make([]domain.VWAPRecord, 0, len(symbols))
	for _, s := range symbols {
		vp := stocks[s]
		rows = append(rows, domain.VWAPRecord{
			Hour:     hour,
			Stock:    s.String(),
			Volume:   vp.Volume,
			Notional: vp.Notional.String(),
			VWAP:     vp.VWAP().String(),
		})
	}

	if err := r.writeCSV(filename, rows); err != nil {
		return err
	}

	r.sideChannels(now, hour, filename, rows)
	return nil
}

// writeCSV writes the snapshot file. The row format is contractual:
// unquoted space-padded symbol, comma-space separator, VWAP with trailing
// zeros trimmed — which is why this is fmt and not encoding/csv.
func (r *Reporter) writeCSV(filename string, rows []domain.VWAPRecord) error {
	f, err := os.Create(filepath.Join(r.dir, filename))
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "Stock, VWAP")
	for _, row := range rows {
		fmt.Fprintf(w, "%s, %s\n", row.Stock, row.VWAP)
	}

	if err := w.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (r *Reporter) sideChannels(now itch.Timestamp, hour uint64, filename string, rows []domain.VWAPRecord) {
	if r.archive != nil {
		if err := r.archive.SaveSnapshot(rows); err != nil {
			slog.Error("archive snapshot failed", slog.Uint64("hour", hour), slog.Any("error", err))
			r.metrics.RecordError()
		}
	}
	if r.publisher != nil {
		frame := monitor.ReportFrame{
			TimestampNs: uint64(now),
			Hour:        hour,
			Filename:    filename,
			Stocks:      len(rows),
			Rows:        rows,
			Metrics:     r.metrics.Snapshot(),
		}
		if err := r.publisher.Publish(frame); err != nil {
			slog.Warn("monitor publish failed", slog.Uint64("hour", hour), slog.Any("error", err))
			r.metrics.RecordError()
		}
	}
}
