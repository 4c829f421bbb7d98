package domain

import "time"

// VWAPRecord is one archived report row: a symbol's cumulative volume,
// notional, and VWAP as of the end of a session hour. Persisted by the
// optional SQLite archive; later hours upsert over earlier ones only when
// the (hour, stock) pair repeats, which a single replay never does.
type VWAPRecord struct {
	Hour      uint64    `gorm:"primaryKey" json:"hour"`
	Stock     string    `gorm:"primaryKey;size:8" json:"stock"`
	Volume    uint64    `json:"volume"`
	Notional  string    `json:"notional"`
	VWAP      string    `json:"vwap"`
	CreatedAt time.Time `json:"created_at"`
}
