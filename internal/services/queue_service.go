package services

import (
	"context"
	"sort"

	"github.com/skyxwalker/Food-Stall-ERP-System/internal/apperrors"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/models"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/repositories"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/timeutil"
)

// recentlyDoneLimit caps the finished-orders tail on the prep board.
const recentlyDoneLimit = 10

// QueueService projects the day's sales into the two live boards: the prep
// station view and the serving staff view. Both are pure rearrangements of
// the sale ledger; marking work done goes through the sale service.
type QueueService struct {
	Sales *repositories.SaleRepository
}

func NewQueueService(sales *repositories.SaleRepository) *QueueService {
	return &QueueService{Sales: sales}
}

// EmployeeQueue returns today's board for one prep station.
func (s *QueueService) EmployeeQueue(ctx context.Context, employeeID string) (*models.EmployeeQueueView, error) {
	sales, err := s.todaySales(ctx)
	if err != nil {
		return nil, err
	}
	return BuildEmployeeQueue(sales, employeeID), nil
}

// StaffQueue returns today's board for the serving staff.
func (s *QueueService) StaffQueue(ctx context.Context) (*models.StaffQueueView, error) {
	sales, err := s.todaySales(ctx)
	if err != nil {
		return nil, err
	}
	return BuildStaffQueue(sales), nil
}

func (s *QueueService) todaySales(ctx context.Context) ([]*models.Sale, error) {
	now := timeutil.Now()
	sales, err := s.Sales.ListRange(ctx, timeutil.StartOfDay(now), timeutil.EndOfDay(now))
	if err != nil {
		return nil, apperrors.Storage("list sales", err)
	}
	return sales, nil
}

// BuildEmployeeQueue filters each sale down to the lines routed to the
// employee. Open orders come first, oldest first, so the station works in
// arrival order; finished orders are a short newest-first tail.
func BuildEmployeeQueue(sales []*models.Sale, employeeID string) *models.EmployeeQueueView {
	var orders []models.QueueOrder
	for _, sale := range sales {
		var mine []models.QueueLine
		for _, line := range sale.Items {
			if line.EmployeeID != employeeID {
				continue
			}
			mine = append(mine, models.QueueLine{
				ItemID:   line.ItemID,
				ItemName: line.ItemName,
				Qty:      line.Qty,
				Status:   line.Status,
			})
		}
		if len(mine) == 0 {
			continue
		}
		orders = append(orders, newQueueOrder(sale, mine))
	}

	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].Status != orders[j].Status {
			return orders[i].Status == models.OrderItemPending
		}
		return orders[i].OrderTime.Before(orders[j].OrderTime)
	})

	view := &models.EmployeeQueueView{}
	var done []models.QueueOrder
	for _, order := range orders {
		if order.Status == models.OrderItemPending {
			view.Pending = append(view.Pending, order)
		} else {
			done = append(done, order)
		}
	}

	// Keep only the most recent completions, newest first.
	if len(done) > recentlyDoneLimit {
		done = done[len(done)-recentlyDoneLimit:]
	}
	for i := len(done) - 1; i >= 0; i-- {
		view.RecentlyDone = append(view.RecentlyDone, done[i])
	}
	return view
}

// BuildStaffQueue shows every order of the day newest first, split by
// whether all its lines are done.
func BuildStaffQueue(sales []*models.Sale) *models.StaffQueueView {
	var orders []models.QueueOrder
	for _, sale := range sales {
		lines := make([]models.QueueLine, 0, len(sale.Items))
		for _, line := range sale.Items {
			lines = append(lines, models.QueueLine{
				ItemID:   line.ItemID,
				ItemName: line.ItemName,
				Qty:      line.Qty,
				Status:   line.Status,
			})
		}
		orders = append(orders, newQueueOrder(sale, lines))
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].OrderTime.After(orders[j].OrderTime)
	})

	view := &models.StaffQueueView{}
	for _, order := range orders {
		if order.Status == models.OrderItemPending {
			view.Pending = append(view.Pending, order)
		} else {
			view.Completed = append(view.Completed, order)
		}
	}
	return view
}

func newQueueOrder(sale *models.Sale, lines []models.QueueLine) models.QueueOrder {
	status := models.OrderItemDone
	for _, line := range lines {
		if line.Status == models.OrderItemPending {
			status = models.OrderItemPending
			break
		}
	}
	return models.QueueOrder{
		SaleID:      sale.ID,
		TokenNumber: sale.TokenNumber,
		OrderTime:   sale.Date,
		Status:      status,
		Items:       lines,
	}
}
