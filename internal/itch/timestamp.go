package itch

import "fmt"

// Wall-clock units in nanoseconds. ITCH timestamps count nanoseconds since
// midnight Eastern on the session day.
const (
	SecondNanos = uint64(1_000_000_000)
	MinuteNanos = 60 * SecondNanos
	HourNanos   = 60 * MinuteNanos
)

// Timestamp is a 48-bit nanoseconds-since-midnight value widened to 64 bits.
type Timestamp uint64

// Hour returns the zero-based session hour the timestamp falls in.
func (t Timestamp) Hour() uint64 {
	return uint64(t) / HourNanos
}

// String renders the timestamp as HH:MM:SS.nnnnnnnnn.
func (t Timestamp) String() string {
	remaining := uint64(t)
	hour := remaining / HourNanos
	remaining -= hour * HourNanos
	min := remaining / MinuteNanos
	remaining -= min * MinuteNanos
	sec := remaining / SecondNanos
	remaining -= sec * SecondNanos
	return fmt.Sprintf("%02d:%02d:%02d.%09d", hour, min, sec, remaining)
}
