package services

import (
	"context"
	"time"

	"github.com/skyxwalker/Food-Stall-ERP-System/internal/models"
)

// The stores are the slices of the repository layer each service actually
// touches. internal/repositories satisfies them over Postgres.

type SaleStore interface {
	Create(ctx context.Context, s *models.Sale) error
	ListRange(ctx context.Context, from, to time.Time) ([]*models.Sale, error)
	ListCredit(ctx context.Context) ([]*models.Sale, error)
	MarkItemDone(ctx context.Context, saleID, itemID string) (int64, error)
	UpdatePaymentMethod(ctx context.Context, saleID string, method models.PaymentMethod) (int64, error)
}

type ItemStore interface {
	Get(ctx context.Context, id string) (*models.Item, error)
	List(ctx context.Context) ([]*models.Item, error)
}

type EmployeeStore interface {
	ListEmployees(ctx context.Context) ([]*models.Employee, error)
}

type StockLogStore interface {
	Create(ctx context.Context, l *models.StockLog) error
}

type CostStore interface {
	Create(ctx context.Context, e *models.CostEntry) error
	Update(ctx context.Context, e *models.CostEntry) error
	AddToEntry(ctx context.Context, entryID string, amount float64, note string) (*models.CostEntry, error)
	FindCombinedByItem(ctx context.Context, itemID string) ([]*models.CostEntry, error)
	List(ctx context.Context) ([]*models.CostEntry, error)
	ListRange(ctx context.Context, from, to time.Time) ([]*models.CostEntry, error)
	Delete(ctx context.Context, id string) error
}
