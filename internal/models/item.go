package models

import "time"

type StockType string

const (
	StockFixed     StockType = "fixed"
	StockUnlimited StockType = "unlimited"
)

// UnlimitedStockQty is the sentinel quantity stored for unlimited items.
const UnlimitedStockQty = 999999

type Item struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Price              float64   `json:"price"`
	StockType          StockType `json:"stock_type"`
	StockQty           int       `json:"stock_qty"`
	AssignedEmployeeID string    `json:"assigned_employee_id"`
	CostPerUnit        float64   `json:"cost_per_unit"`
	CreatedAt          time.Time `json:"created_at"`
}

type CreateItemRequest struct {
	Name               string    `json:"name" validate:"required"`
	Price              float64   `json:"price" validate:"gte=0"`
	StockType          StockType `json:"stock_type" validate:"required,oneof=fixed unlimited"`
	StockQty           int       `json:"stock_qty" validate:"gte=0"`
	AssignedEmployeeID string    `json:"assigned_employee_id"`
	CostPerUnit        float64   `json:"cost_per_unit" validate:"gte=0"`
}

type UpdateItemRequest struct {
	Name               string    `json:"name" validate:"required"`
	Price              float64   `json:"price" validate:"gte=0"`
	StockType          StockType `json:"stock_type" validate:"required,oneof=fixed unlimited"`
	StockQty           int       `json:"stock_qty" validate:"gte=0"`
	AssignedEmployeeID string    `json:"assigned_employee_id"`
	CostPerUnit        float64   `json:"cost_per_unit" validate:"gte=0"`
}
