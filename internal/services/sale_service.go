package services

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/skyxwalker/Food-Stall-ERP-System/internal/apperrors"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/cache"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/metrics"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/models"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/timeutil"
)

// OrderNotifier pushes order changes to connected queue boards.
type OrderNotifier interface {
	NotifyOrders(event string, saleID string)
}

// SaleService owns the sale ledger: checkout, line completion and payment
// settlement.
type SaleService struct {
	Sales     SaleStore
	Items     ItemStore
	Users     EmployeeStore
	StockLogs StockLogStore
	Notifier  OrderNotifier
}

func NewSaleService(sales SaleStore, items ItemStore,
	users EmployeeStore, stockLogs StockLogStore) *SaleService {
	return &SaleService{
		Sales:     sales,
		Items:     items,
		Users:     users,
		StockLogs: stockLogs,
	}
}

// RecordSale turns a cart into a ledger row. Price, cost and the assigned
// employee are snapshotted from the current catalog; the line starts done
// when its station runs in auto-confirm mode, pending otherwise. The token
// number is assigned inside the insert transaction.
func (s *SaleService) RecordSale(ctx context.Context, req *models.CreateSaleRequest) (*models.Sale, error) {
	if len(req.Lines) == 0 {
		return nil, apperrors.Validation("cart is empty")
	}
	if req.PaymentMethod == models.PaymentCredit && strings.TrimSpace(req.CreditCustomerName) == "" {
		return nil, apperrors.Validation("customer name is required for credit sale")
	}

	employees, err := s.Users.ListEmployees(ctx)
	if err != nil {
		return nil, apperrors.Storage("list employees", err)
	}
	modes := make(map[string]models.ConfirmationMode, len(employees))
	for _, e := range employees {
		modes[e.ID] = e.ConfirmationMode
	}

	sale := &models.Sale{
		Date:          timeutil.Now(),
		PaymentMethod: req.PaymentMethod,
	}
	if req.PaymentMethod == models.PaymentCredit {
		sale.CreditCustomerName = strings.TrimSpace(req.CreditCustomerName)
	}

	for _, line := range req.Lines {
		if line.Qty <= 0 {
			return nil, apperrors.Validation("quantity must be positive")
		}
		item, err := s.Items.Get(ctx, line.ItemID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NotFound("item", line.ItemID)
			}
			return nil, apperrors.Storage("load item", err)
		}

		status := models.OrderItemPending
		if modes[item.AssignedEmployeeID] == models.ConfirmationAuto {
			status = models.OrderItemDone
		}

		sale.Items = append(sale.Items, models.OrderItem{
			ItemID:     item.ID,
			ItemName:   item.Name,
			Qty:        line.Qty,
			Price:      item.Price,
			Cost:       item.CostPerUnit,
			EmployeeID: item.AssignedEmployeeID,
			Status:     status,
		})
		sale.TotalAmount += item.Price * float64(line.Qty)
		sale.TotalCost += item.CostPerUnit * float64(line.Qty)
	}

	if err := s.Sales.Create(ctx, sale); err != nil {
		return nil, apperrors.Storage("record sale", err)
	}

	s.logSaleStockMovements(ctx, sale)

	metrics.SalesRecordedTotal.Inc()
	metrics.SaleRevenueTotal.Add(sale.TotalAmount)
	cache.InvalidateReportCaches(ctx)
	s.notify("sale_created", sale.ID)
	return sale, nil
}

// MarkItemDone completes every line of the sale for one item. Repeating the
// call is harmless; the lines just stay done.
func (s *SaleService) MarkItemDone(ctx context.Context, saleID, itemID string) error {
	rows, err := s.Sales.MarkItemDone(ctx, saleID, itemID)
	if err != nil {
		return apperrors.Storage("mark item done", err)
	}
	if rows == 0 {
		return apperrors.NotFound("order item", saleID+"/"+itemID)
	}

	metrics.OrderItemsCompletedTotal.Add(float64(rows))
	cache.InvalidateReportCaches(ctx)
	s.notify("item_done", saleID)
	return nil
}

// SetPaymentMethod re-settles a sale. Every change clears the customer name,
// which removes the sale from the outstanding credit list.
func (s *SaleService) SetPaymentMethod(ctx context.Context, saleID string, method models.PaymentMethod) error {
	rows, err := s.Sales.UpdatePaymentMethod(ctx, saleID, method)
	if err != nil {
		return apperrors.Storage("update payment method", err)
	}
	if rows == 0 {
		return apperrors.NotFound("sale", saleID)
	}

	cache.InvalidateReportCaches(ctx)
	return nil
}

// ListSales returns the sales of [from, to] with their lines, oldest first.
func (s *SaleService) ListSales(ctx context.Context, from, to time.Time) ([]*models.Sale, error) {
	sales, err := s.Sales.ListRange(ctx, from, to)
	if err != nil {
		return nil, apperrors.Storage("list sales", err)
	}
	return sales, nil
}

// OutstandingCredit groups unsettled credit sales per customer.
func (s *SaleService) OutstandingCredit(ctx context.Context) ([]*models.CreditOutstanding, error) {
	sales, err := s.Sales.ListCredit(ctx)
	if err != nil {
		return nil, apperrors.Storage("list credit sales", err)
	}
	return GroupCreditOutstanding(sales), nil
}

// GroupCreditOutstanding buckets credit sales by customer name, largest
// balance first.
func GroupCreditOutstanding(sales []*models.Sale) []*models.CreditOutstanding {
	byCustomer := make(map[string]*models.CreditOutstanding)
	var order []string
	for _, sale := range sales {
		if sale.PaymentMethod != models.PaymentCredit || sale.CreditCustomerName == "" {
			continue
		}
		entry, ok := byCustomer[sale.CreditCustomerName]
		if !ok {
			entry = &models.CreditOutstanding{CustomerName: sale.CreditCustomerName}
			byCustomer[sale.CreditCustomerName] = entry
			order = append(order, sale.CreditCustomerName)
		}
		entry.Amount += sale.TotalAmount
		entry.SaleIDs = append(entry.SaleIDs, sale.ID)
	}

	result := make([]*models.CreditOutstanding, 0, len(order))
	for _, name := range order {
		result = append(result, byCustomer[name])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Amount > result[j].Amount
	})
	return result
}

// logSaleStockMovements writes the per-line stock audit rows. The decrement
// already happened inside the sale transaction, so failures here only lose
// audit detail and are not worth failing the checkout for.
func (s *SaleService) logSaleStockMovements(ctx context.Context, sale *models.Sale) {
	for _, line := range sale.Items {
		item, err := s.Items.Get(ctx, line.ItemID)
		if err != nil || item.StockType != models.StockFixed {
			continue
		}
		entry := &models.StockLog{ItemID: line.ItemID, Change: -line.Qty, Reason: models.StockReasonSale}
		if err := s.StockLogs.Create(ctx, entry); err != nil {
			metrics.StockLogFailuresTotal.Inc()
			log.Printf("[Sale] stock log write failed for item %s: %v", line.ItemID, err)
		}
	}
}

func (s *SaleService) notify(event, saleID string) {
	if s.Notifier != nil {
		s.Notifier.NotifyOrders(event, saleID)
	}
}
