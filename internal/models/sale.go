package models

import "time"

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentUPI    PaymentMethod = "upi"
	PaymentCredit PaymentMethod = "credit"
)

type OrderItemStatus string

const (
	OrderItemPending OrderItemStatus = "pending"
	OrderItemDone    OrderItemStatus = "done"
)

// OrderItem is a line of a sale. Price, cost and the assigned employee are
// snapshots taken at sale time and never follow later item edits.
type OrderItem struct {
	ItemID     string          `json:"item_id"`
	ItemName   string          `json:"item_name"`
	Qty        int             `json:"qty"`
	Price      float64         `json:"price"`
	Cost       float64         `json:"cost"`
	EmployeeID string          `json:"employee_id"`
	Status     OrderItemStatus `json:"status"`
}

// Sale is an append-only checkout record. Only line statuses and the payment
// method may change after creation; totals and lines are immutable.
type Sale struct {
	ID                 string        `json:"id"`
	Date               time.Time     `json:"date"`
	TokenNumber        int           `json:"token_number"`
	Items              []OrderItem   `json:"items"`
	TotalAmount        float64       `json:"total_amount"`
	TotalCost          float64       `json:"total_cost"`
	PaymentMethod      PaymentMethod `json:"payment_method"`
	CreditCustomerName string        `json:"credit_customer_name,omitempty"`
}

// CartLine is one POS cart row submitted at checkout.
type CartLine struct {
	ItemID string `json:"item_id" validate:"required"`
	Qty    int    `json:"qty" validate:"gt=0"`
}

type CreateSaleRequest struct {
	Lines              []CartLine    `json:"lines" validate:"required,dive"`
	PaymentMethod      PaymentMethod `json:"payment_method" validate:"required,oneof=cash upi credit"`
	CreditCustomerName string        `json:"credit_customer_name"`
}

type UpdatePaymentMethodRequest struct {
	PaymentMethod PaymentMethod `json:"payment_method" validate:"required,oneof=cash upi credit"`
}

// CreditOutstanding groups a customer's unsettled credit sales.
type CreditOutstanding struct {
	CustomerName string   `json:"customer_name"`
	Amount       float64  `json:"amount"`
	SaleIDs      []string `json:"sale_ids"`
}
