package models

import "time"

type StockLogReason string

const (
	StockReasonInitial     StockLogReason = "initial"
	StockReasonSale        StockLogReason = "sale"
	StockReasonAdminUpdate StockLogReason = "admin_update"
)

// StockLog is an append-only audit row written whenever a quantity changes.
type StockLog struct {
	ID     string         `json:"id"`
	ItemID string         `json:"item_id"`
	Change int            `json:"change"`
	Reason StockLogReason `json:"reason"`
	Date   time.Time      `json:"date"`
}
