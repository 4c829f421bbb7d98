// Package monitor pushes hourly VWAP snapshots to an external collector
// over a websocket. Publishing is best-effort: the CSV files are the
// contractual output, and a dead collector must never stall or abort a
// replay.
package monitor

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"itch_go/internal/domain"
	"itch_go/internal/infra"
)

const (
	maxDialAttempts = 3
	baseDelay       = 1 * time.Second
	maxDelay        = 60 * time.Second
)

// ReportFrame is the JSON payload published per hourly report.
type ReportFrame struct {
	TimestampNs uint64                `json:"ts_ns"`
	Hour        uint64                `json:"hour"`
	Filename    string                `json:"filename"`
	Stocks      int                   `json:"stocks"`
	Rows        []domain.VWAPRecord   `json:"rows"`
	Metrics     infra.MetricsSnapshot `json:"metrics"`
}

// Publisher maintains a lazy websocket connection to the collector and
// writes one JSON frame per report.
type Publisher struct {
	url              string
	handshakeTimeout time.Duration

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewPublisher creates a publisher for the collector at url. No connection
// is made until the first Publish.
func NewPublisher(url string, handshakeTimeoutMS int) *Publisher {
	if handshakeTimeoutMS <= 0 {
		handshakeTimeoutMS = 10000
	}
	return &Publisher{
		url:              url,
		handshakeTimeout: time.Duration(handshakeTimeoutMS) * time.Millisecond,
	}
}

// Publish sends one frame, dialing or re-dialing the collector as needed.
func (p *Publisher) Publish(frame ReportFrame) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureConnected(); err != nil {
		return err
	}

	if err := p.conn.WriteJSON(frame); err != nil {
		// Stale connection: drop it and retry once on a fresh dial.
		p.closeLocked()
		if err := p.ensureConnected(); err != nil {
			return err
		}
		if err := p.conn.WriteJSON(frame); err != nil {
			p.closeLocked()
			return fmt.Errorf("write frame: %w", err)
		}
	}
	return nil
}

func (p *Publisher) ensureConnected() error {
	if p.conn != nil {
		return nil
	}

	dialer := websocket.Dialer{HandshakeTimeout: p.handshakeTimeout}
	var lastErr error
	for attempt := 0; attempt < maxDialAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(calculateBackoff(attempt - 1))
		}
		conn, _, err := dialer.Dial(p.url, nil)
		if err != nil {
			lastErr = err
			slog.Warn("monitor dial failed", slog.Any("error", err), slog.Int("attempt", attempt))
			continue
		}
		p.conn = conn
		slog.Info("monitor connected", slog.String("url", p.url))
		return nil
	}
	return fmt.Errorf("dial %s: %w", p.url, lastErr)
}

// Close shuts the collector connection down.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
	return nil
}

func (p *Publisher) closeLocked() {
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// calculateBackoff returns an exponential delay capped at maxDelay.
func calculateBackoff(retry int) time.Duration {
	delay := baseDelay << uint(retry)
	if delay > maxDelay || delay <= 0 {
		delay = maxDelay
	}
	return delay
}
