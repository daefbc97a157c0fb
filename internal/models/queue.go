package models

import "time"

// QueueLine is one order line as shown on a prep or serving board.
type QueueLine struct {
	ItemID   string          `json:"item_id"`
	ItemName string          `json:"item_name"`
	Qty      int             `json:"qty"`
	Status   OrderItemStatus `json:"status"`
}

// QueueOrder groups a sale's lines for a board. Status is pending while any
// of its lines is still pending.
type QueueOrder struct {
	SaleID      string          `json:"sale_id"`
	TokenNumber int             `json:"token_number"`
	OrderTime   time.Time       `json:"order_time"`
	Status      OrderItemStatus `json:"status"`
	Items       []QueueLine     `json:"items"`
}

// EmployeeQueueView is what a prep station sees: its open orders oldest
// first and a short tail of recently finished ones.
type EmployeeQueueView struct {
	Pending      []QueueOrder `json:"pending"`
	RecentlyDone []QueueOrder `json:"recently_done"`
}

// StaffQueueView is the serving staff board: every order, newest first,
// split by readiness.
type StaffQueueView struct {
	Pending   []QueueOrder `json:"pending"`
	Completed []QueueOrder `json:"completed"`
}
