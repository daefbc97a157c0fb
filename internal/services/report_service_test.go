package services

import (
	"math"
	"testing"
	"time"

	"github.com/skyxwalker/Food-Stall-ERP-System/internal/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func testItem(id, name string, price, cost float64) *models.Item {
	return &models.Item{ID: id, Name: name, Price: price, CostPerUnit: cost, StockType: models.StockUnlimited}
}

func saleOf(total float64, lines ...models.OrderItem) *models.Sale {
	return &models.Sale{ID: "s", Date: time.Now(), TotalAmount: total, TotalCost: 0, PaymentMethod: models.PaymentCash, Items: lines}
}

func line(itemID string, qty int, price float64) models.OrderItem {
	return models.OrderItem{ItemID: itemID, ItemName: itemID, Qty: qty, Price: price, Status: models.OrderItemDone}
}

func TestBuildProfitLossCombinedPool(t *testing.T) {
	items := []*models.Item{
		testItem("x", "Orange Juice", 10, 0),
		testItem("y", "Lemon Juice", 8, 0),
	}
	sales := []*models.Sale{
		saleOf(50, line("x", 5, 10)),
		saleOf(24, line("y", 3, 8)),
	}
	costs := []*models.CostEntry{
		{ID: "c1", CostType: models.CostCombined, CommonName: "Juices", ItemIDs: []string{"x", "y"}, TotalCost: 100},
	}

	report := BuildProfitLoss(items, sales, costs)

	if len(report.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(report.Rows))
	}
	row := report.Rows[0]
	if row.Name != "Juices" || !row.IsGrouped {
		t.Errorf("expected grouped row Juices, got %+v", row)
	}
	if row.QtySold != 8 {
		t.Errorf("qty sold = %d, want 8", row.QtySold)
	}
	if !almostEqual(row.Revenue, 74) {
		t.Errorf("revenue = %v, want 74", row.Revenue)
	}
	if !almostEqual(row.Profit, -26) {
		t.Errorf("profit = %v, want -26", row.Profit)
	}
	if !almostEqual(row.Margin, -26.0/74.0*100) {
		t.Errorf("margin = %v, want %v", row.Margin, -26.0/74.0*100)
	}
	if !almostEqual(report.TotalRevenue, 74) || !almostEqual(report.TotalCost, 100) || !almostEqual(report.TotalProfit, -26) {
		t.Errorf("totals = %v/%v/%v, want 74/100/-26", report.TotalRevenue, report.TotalCost, report.TotalProfit)
	}
}

func TestBuildProfitLossSameNamePoolsAccumulate(t *testing.T) {
	items := []*models.Item{
		testItem("x", "Samosa", 10, 0),
		testItem("y", "Kachori", 10, 0),
	}
	sales := []*models.Sale{saleOf(20, line("x", 2, 10))}
	costs := []*models.CostEntry{
		{ID: "c1", CostType: models.CostCombined, CommonName: "Fried", ItemIDs: []string{"x", "y"}, TotalCost: 30},
		{ID: "c2", CostType: models.CostCombined, CommonName: "Fried", ItemIDs: []string{"x", "y"}, TotalCost: 20},
	}

	report := BuildProfitLoss(items, sales, costs)

	if len(report.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(report.Rows))
	}
	if !almostEqual(report.Rows[0].Cost, 50) {
		t.Errorf("cost = %v, want 50 (30+20)", report.Rows[0].Cost)
	}
	// qty and revenue come from the first pool only, never double counted
	if report.Rows[0].QtySold != 2 || !almostEqual(report.Rows[0].Revenue, 20) {
		t.Errorf("qty/revenue = %d/%v, want 2/20", report.Rows[0].QtySold, report.Rows[0].Revenue)
	}
}

func TestBuildProfitLossIndividualAndGeneral(t *testing.T) {
	items := []*models.Item{
		testItem("a", "Tea", 10, 0),
		testItem("b", "Coffee", 20, 0),
		testItem("c", "Idle", 5, 0), // no sales, no costs -> no row
	}
	sales := []*models.Sale{
		saleOf(100, line("a", 10, 10)),
	}
	costs := []*models.CostEntry{
		{ID: "c1", CostType: models.CostIndividual, ItemIDs: []string{"a"}, TotalCost: 30},
		{ID: "c2", CostType: models.CostIndividual, ItemIDs: []string{"a"}, TotalCost: 10},
		{ID: "c3", CostType: models.CostIndividual, ItemIDs: []string{"b"}, TotalCost: 15},
		{ID: "c4", CostType: models.CostGeneral, CommonName: "Electricity", TotalCost: 50},
	}

	report := BuildProfitLoss(items, sales, costs)

	if len(report.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(report.Rows))
	}

	byName := make(map[string]models.ProfitLossRow)
	for _, row := range report.Rows {
		byName[row.Name] = row
	}

	tea := byName["Tea"]
	if tea.QtySold != 10 || !almostEqual(tea.Cost, 40) || !almostEqual(tea.Profit, 60) {
		t.Errorf("tea row = %+v", tea)
	}
	if !almostEqual(tea.Margin, 60) {
		t.Errorf("tea margin = %v, want 60", tea.Margin)
	}

	// cost without sales: margin pegs at -100
	coffee := byName["Coffee"]
	if coffee.QtySold != 0 || !almostEqual(coffee.Cost, 15) || !almostEqual(coffee.Margin, -100) {
		t.Errorf("coffee row = %+v", coffee)
	}

	elec := byName["Electricity"]
	if !elec.IsGeneral || !almostEqual(elec.Cost, 50) || elec.Revenue != 0 {
		t.Errorf("electricity row = %+v", elec)
	}

	if _, ok := byName["Idle"]; ok {
		t.Error("item with no sales and no costs should not get a row")
	}

	if !almostEqual(report.TotalCost, 105) {
		t.Errorf("total cost = %v, want 105", report.TotalCost)
	}
	if !almostEqual(report.TotalProfit, report.TotalRevenue-report.TotalCost) {
		t.Errorf("total profit %v != revenue %v - cost %v", report.TotalProfit, report.TotalRevenue, report.TotalCost)
	}
}

func TestBuildProfitLossSortedByProfit(t *testing.T) {
	items := []*models.Item{
		testItem("a", "Winner", 10, 0),
		testItem("b", "Loser", 10, 0),
	}
	sales := []*models.Sale{
		saleOf(110, line("a", 10, 10), line("b", 1, 10)),
	}
	costs := []*models.CostEntry{
		{ID: "c1", CostType: models.CostIndividual, ItemIDs: []string{"b"}, TotalCost: 90},
	}

	report := BuildProfitLoss(items, sales, costs)

	if len(report.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(report.Rows))
	}
	if report.Rows[0].Name != "Winner" || report.Rows[1].Name != "Loser" {
		t.Errorf("rows not sorted by profit desc: %s, %s", report.Rows[0].Name, report.Rows[1].Name)
	}
}

func TestBuildProfitLossTotalRevenueFromSaleTotals(t *testing.T) {
	// Total revenue follows the sale headers even when a line's item has
	// been deleted from the catalog since.
	items := []*models.Item{testItem("a", "Tea", 10, 0)}
	sales := []*models.Sale{
		saleOf(35, line("a", 2, 10), line("deleted", 3, 5)),
	}

	report := BuildProfitLoss(items, sales, nil)

	if !almostEqual(report.TotalRevenue, 35) {
		t.Errorf("total revenue = %v, want 35", report.TotalRevenue)
	}
	if len(report.Rows) != 1 || !almostEqual(report.Rows[0].Revenue, 20) {
		t.Errorf("rows should only cover catalog items, got %+v", report.Rows)
	}
}

func TestBuildProfitLossRangeBreakdowns(t *testing.T) {
	items := []*models.Item{
		testItem("a", "Tea", 10, 0),
		testItem("b", "Coffee", 20, 0),
	}
	sales := []*models.Sale{
		{TotalAmount: 100, PaymentMethod: models.PaymentCash,
			Items: []models.OrderItem{{ItemID: "a", ItemName: "Tea", Qty: 10, Price: 10}}},
		{TotalAmount: 40, PaymentMethod: models.PaymentUPI,
			Items: []models.OrderItem{{ItemID: "b", ItemName: "Coffee", Qty: 2, Price: 20}}},
		{TotalAmount: 30, PaymentMethod: models.PaymentCredit, CreditCustomerName: "Ravi",
			Items: []models.OrderItem{{ItemID: "a", ItemName: "Tea", Qty: 3, Price: 10}}},
	}

	report := BuildProfitLoss(items, sales, nil)

	if !almostEqual(report.Payments.Cash, 100) || !almostEqual(report.Payments.UPI, 40) || !almostEqual(report.Payments.Credit, 30) {
		t.Errorf("payments = %+v, want 100/40/30", report.Payments)
	}
	if len(report.ItemsSold) != 2 {
		t.Fatalf("items sold = %d, want 2", len(report.ItemsSold))
	}
	if report.ItemsSold[0].ItemName != "Tea" || report.ItemsSold[0].QtySold != 13 || !almostEqual(report.ItemsSold[0].Revenue, 130) {
		t.Errorf("top seller = %+v, want Tea 13/130", report.ItemsSold[0])
	}
	if report.ItemsSold[1].ItemName != "Coffee" || report.ItemsSold[1].QtySold != 2 {
		t.Errorf("second seller = %+v, want Coffee 2", report.ItemsSold[1])
	}
}

func TestBuildDashboardStats(t *testing.T) {
	sales := []*models.Sale{
		{TotalAmount: 100, TotalCost: 40, PaymentMethod: models.PaymentCash,
			Items: []models.OrderItem{{ItemName: "Tea", Qty: 10, Price: 10, Status: models.OrderItemDone}}},
		{TotalAmount: 60, TotalCost: 20, PaymentMethod: models.PaymentUPI,
			Items: []models.OrderItem{{ItemName: "Coffee", Qty: 3, Price: 20, Status: models.OrderItemPending}}},
		{TotalAmount: 50, TotalCost: 10, PaymentMethod: models.PaymentCredit, CreditCustomerName: "Ravi",
			Items: []models.OrderItem{{ItemName: "Tea", Qty: 5, Price: 10, Status: models.OrderItemDone}}},
	}
	creditSales := []*models.Sale{
		{ID: "s3", TotalAmount: 50, PaymentMethod: models.PaymentCredit, CreditCustomerName: "Ravi"},
	}
	items := []*models.Item{
		{ID: "i1", Name: "Tea", StockType: models.StockFixed, StockQty: 4},
		{ID: "i2", Name: "Coffee", StockType: models.StockFixed, StockQty: 50},
		{ID: "i3", Name: "Juice", StockType: models.StockUnlimited, StockQty: models.UnlimitedStockQty},
	}

	stats := BuildDashboardStats(sales, 2, creditSales, items)

	if stats.SalesCount != 3 {
		t.Errorf("sales count = %d, want 3", stats.SalesCount)
	}
	if !almostEqual(stats.Revenue, 210) || !almostEqual(stats.Profit, 140) {
		t.Errorf("revenue/profit = %v/%v, want 210/140", stats.Revenue, stats.Profit)
	}
	if stats.PendingOrders != 2 {
		t.Errorf("pending orders = %d, want 2", stats.PendingOrders)
	}
	if !almostEqual(stats.Payments.Cash, 100) || !almostEqual(stats.Payments.UPI, 60) || !almostEqual(stats.Payments.Credit, 50) {
		t.Errorf("payments = %+v", stats.Payments)
	}
	if len(stats.TopItems) != 2 || stats.TopItems[0].ItemName != "Tea" || stats.TopItems[0].QtySold != 15 {
		t.Errorf("top items = %+v", stats.TopItems)
	}
	if stats.CompletedToday != 2 {
		t.Errorf("completed today = %d, want 2", stats.CompletedToday)
	}
	if len(stats.LowStockItems) != 1 || stats.LowStockItems[0].Name != "Tea" {
		t.Errorf("low stock = %+v, want just Tea", stats.LowStockItems)
	}
	if !almostEqual(stats.CreditOutstanding, 50) {
		t.Errorf("credit outstanding = %v, want 50", stats.CreditOutstanding)
	}
}
