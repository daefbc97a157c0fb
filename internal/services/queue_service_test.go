package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/skyxwalker/Food-Stall-ERP-System/internal/models"
)

func queueSale(id string, token int, at time.Time, lines ...models.OrderItem) *models.Sale {
	return &models.Sale{ID: id, TokenNumber: token, Date: at, PaymentMethod: models.PaymentCash, Items: lines}
}

func queueLine(employeeID string, status models.OrderItemStatus) models.OrderItem {
	return models.OrderItem{ItemID: "i1", ItemName: "Tea", Qty: 1, EmployeeID: employeeID, Status: status}
}

func TestBuildEmployeeQueueFiltersAndOrders(t *testing.T) {
	base := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	sales := []*models.Sale{
		queueSale("s1", 1, base, queueLine("emp1", models.OrderItemDone)),
		queueSale("s2", 2, base.Add(5*time.Minute), queueLine("emp1", models.OrderItemPending)),
		queueSale("s3", 3, base.Add(10*time.Minute), queueLine("emp2", models.OrderItemPending)),
		queueSale("s4", 4, base.Add(15*time.Minute), queueLine("emp1", models.OrderItemPending)),
	}

	view := BuildEmployeeQueue(sales, "emp1")

	if len(view.Pending) != 2 {
		t.Fatalf("pending = %d, want 2", len(view.Pending))
	}
	// oldest open order first
	if view.Pending[0].SaleID != "s2" || view.Pending[1].SaleID != "s4" {
		t.Errorf("pending order = %s, %s; want s2, s4", view.Pending[0].SaleID, view.Pending[1].SaleID)
	}
	if len(view.RecentlyDone) != 1 || view.RecentlyDone[0].SaleID != "s1" {
		t.Errorf("recently done = %+v, want just s1", view.RecentlyDone)
	}
	for _, order := range append(view.Pending, view.RecentlyDone...) {
		for _, line := range order.Items {
			if line.ItemName != "Tea" {
				t.Errorf("unexpected line %+v", line)
			}
		}
	}
}

func TestBuildEmployeeQueueMixedLinesStayPending(t *testing.T) {
	base := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	sale := queueSale("s1", 1, base,
		queueLine("emp1", models.OrderItemDone),
		queueLine("emp1", models.OrderItemPending),
		queueLine("emp2", models.OrderItemPending),
	)

	view := BuildEmployeeQueue([]*models.Sale{sale}, "emp1")

	if len(view.Pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(view.Pending))
	}
	if len(view.Pending[0].Items) != 2 {
		t.Errorf("lines = %d, want only emp1's 2", len(view.Pending[0].Items))
	}
	if view.Pending[0].Status != models.OrderItemPending {
		t.Errorf("order with an open line must stay pending")
	}
}

func TestBuildEmployeeQueueRecentlyDoneCapped(t *testing.T) {
	base := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	var sales []*models.Sale
	for i := 0; i < 15; i++ {
		sales = append(sales, queueSale(
			fmt.Sprintf("s%02d", i), i+1, base.Add(time.Duration(i)*time.Minute),
			queueLine("emp1", models.OrderItemDone)))
	}

	view := BuildEmployeeQueue(sales, "emp1")

	if len(view.RecentlyDone) != recentlyDoneLimit {
		t.Fatalf("recently done = %d, want %d", len(view.RecentlyDone), recentlyDoneLimit)
	}
	// newest completion first, oldest five dropped
	if view.RecentlyDone[0].SaleID != "s14" || view.RecentlyDone[9].SaleID != "s05" {
		t.Errorf("tail = %s..%s, want s14..s05", view.RecentlyDone[0].SaleID, view.RecentlyDone[9].SaleID)
	}
}

func TestBuildStaffQueueNewestFirstSplit(t *testing.T) {
	base := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	sales := []*models.Sale{
		queueSale("s1", 1, base, queueLine("emp1", models.OrderItemDone)),
		queueSale("s2", 2, base.Add(5*time.Minute), queueLine("emp1", models.OrderItemPending)),
		queueSale("s3", 3, base.Add(10*time.Minute),
			queueLine("emp1", models.OrderItemDone),
			queueLine("emp2", models.OrderItemPending)),
	}

	view := BuildStaffQueue(sales)

	if len(view.Pending) != 2 || view.Pending[0].SaleID != "s3" || view.Pending[1].SaleID != "s2" {
		t.Errorf("pending = %+v, want s3 then s2", view.Pending)
	}
	if len(view.Completed) != 1 || view.Completed[0].SaleID != "s1" {
		t.Errorf("completed = %+v, want s1", view.Completed)
	}
	if len(view.Pending[0].Items) != 2 {
		t.Errorf("staff board keeps all lines, got %d", len(view.Pending[0].Items))
	}
}

func TestBuildQueuesEmptyDay(t *testing.T) {
	emp := BuildEmployeeQueue(nil, "emp1")
	if len(emp.Pending) != 0 || len(emp.RecentlyDone) != 0 {
		t.Errorf("empty day employee view = %+v", emp)
	}
	staff := BuildStaffQueue(nil)
	if len(staff.Pending) != 0 || len(staff.Completed) != 0 {
		t.Errorf("empty day staff view = %+v", staff)
	}
}
