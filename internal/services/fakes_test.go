package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/skyxwalker/Food-Stall-ERP-System/internal/models"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/timeutil"
)

// In-memory stores backing the service tests. fakeSaleStore serializes token
// assignment under a mutex the same way the Postgres repository does under
// its per-day advisory lock.

type fakeSaleStore struct {
	mu    sync.Mutex
	sales []*models.Sale
}

func (f *fakeSaleStore) Create(ctx context.Context, s *models.Sale) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	max := 0
	for _, existing := range f.sales {
		if timeutil.SameDay(existing.Date, s.Date) && existing.TokenNumber > max {
			max = existing.TokenNumber
		}
	}
	s.TokenNumber = max + 1
	if s.ID == "" {
		s.ID = fmt.Sprintf("s%d", len(f.sales)+1)
	}
	f.sales = append(f.sales, s)
	return nil
}

func (f *fakeSaleStore) ListRange(ctx context.Context, from, to time.Time) ([]*models.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*models.Sale
	for _, s := range f.sales {
		if !s.Date.Before(from) && !s.Date.After(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSaleStore) ListCredit(ctx context.Context) ([]*models.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*models.Sale
	for _, s := range f.sales {
		if s.PaymentMethod == models.PaymentCredit {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSaleStore) MarkItemDone(ctx context.Context, saleID, itemID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var rows int64
	for _, s := range f.sales {
		if s.ID != saleID {
			continue
		}
		for i := range s.Items {
			if s.Items[i].ItemID == itemID {
				s.Items[i].Status = models.OrderItemDone
				rows++
			}
		}
	}
	return rows, nil
}

func (f *fakeSaleStore) UpdatePaymentMethod(ctx context.Context, saleID string, method models.PaymentMethod) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, s := range f.sales {
		if s.ID == saleID {
			s.PaymentMethod = method
			s.CreditCustomerName = ""
			return 1, nil
		}
	}
	return 0, nil
}

type fakeItemStore struct {
	items  []*models.Item
	getErr error
}

func (f *fakeItemStore) Get(ctx context.Context, id string) (*models.Item, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, item := range f.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeItemStore) List(ctx context.Context) ([]*models.Item, error) {
	return f.items, nil
}

type fakeEmployeeStore struct {
	employees []*models.Employee
}

func (f *fakeEmployeeStore) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	return f.employees, nil
}

type fakeStockLogStore struct {
	logs []*models.StockLog
}

func (f *fakeStockLogStore) Create(ctx context.Context, l *models.StockLog) error {
	f.logs = append(f.logs, l)
	return nil
}

type fakeCostStore struct {
	entries []*models.CostEntry
	created int
}

func (f *fakeCostStore) Create(ctx context.Context, e *models.CostEntry) error {
	if e.ID == "" {
		e.ID = fmt.Sprintf("c%d", len(f.entries)+1)
	}
	f.entries = append(f.entries, e)
	f.created++
	return nil
}

func (f *fakeCostStore) Update(ctx context.Context, e *models.CostEntry) error {
	for i, existing := range f.entries {
		if existing.ID == e.ID {
			f.entries[i] = e
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeCostStore) AddToEntry(ctx context.Context, entryID string, amount float64, note string) (*models.CostEntry, error) {
	for _, e := range f.entries {
		if e.ID != entryID {
			continue
		}
		e.TotalCost += amount
		switch {
		case e.Description == "":
			e.Description = note
		case note == "":
			e.Description += ", Added cost"
		default:
			e.Description += ", " + note
		}
		return e, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeCostStore) FindCombinedByItem(ctx context.Context, itemID string) ([]*models.CostEntry, error) {
	var out []*models.CostEntry
	for _, e := range f.entries {
		if e.CostType != models.CostCombined {
			continue
		}
		for _, id := range e.ItemIDs {
			if id == itemID {
				out = append(out, e)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeCostStore) List(ctx context.Context) ([]*models.CostEntry, error) {
	return f.entries, nil
}

func (f *fakeCostStore) ListRange(ctx context.Context, from, to time.Time) ([]*models.CostEntry, error) {
	return f.entries, nil
}

func (f *fakeCostStore) Delete(ctx context.Context, id string) error {
	for i, e := range f.entries {
		if e.ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return nil
}
