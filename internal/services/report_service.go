package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/skyxwalker/Food-Stall-ERP-System/internal/apperrors"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/cache"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/models"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/repositories"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/timeutil"
)

// ReportService builds the item-wise profit/loss view and the admin
// dashboard summary. All aggregation happens over data loaded once, so a
// report is a consistent snapshot of the range it covers.
type ReportService struct {
	Sales *repositories.SaleRepository
	Items *repositories.ItemRepository
	Costs *repositories.CostEntryRepository
}

func NewReportService(sales *repositories.SaleRepository, items *repositories.ItemRepository,
	costs *repositories.CostEntryRepository) *ReportService {
	return &ReportService{
		Sales: sales,
		Items: items,
		Costs: costs,
	}
}

// ProfitLoss returns the P/L report for [from, to]. Recent results are
// served from Redis when available.
func (s *ReportService) ProfitLoss(ctx context.Context, from, to time.Time) (*models.ProfitLossReport, error) {
	key := fmt.Sprintf(cache.ProfitLossKeyFmt, from.Format(timeutil.DateLayout), to.Format(timeutil.DateLayout))
	if data, ok := cache.GetCached(ctx, key); ok {
		var report models.ProfitLossReport
		if err := json.Unmarshal(data, &report); err == nil {
			return &report, nil
		}
	}

	items, err := s.Items.List(ctx)
	if err != nil {
		return nil, apperrors.Storage("list items", err)
	}
	sales, err := s.Sales.ListRange(ctx, from, to)
	if err != nil {
		return nil, apperrors.Storage("list sales", err)
	}
	costs, err := s.Costs.ListRange(ctx, from, to)
	if err != nil {
		return nil, apperrors.Storage("list cost entries", err)
	}

	report := BuildProfitLoss(items, sales, costs)

	if data, err := json.Marshal(report); err == nil {
		cache.CacheProfitLoss(ctx, key, data)
	}
	return report, nil
}

// BuildProfitLoss aggregates sales and costs into per-item rows.
//
// Items covered by a combined cost pool collapse into one grouped row named
// after the pool; later pools with the same name only add cost to it. Items
// outside any pool get their own row carrying their individual costs, and
// only show up once they have sales or costs. General costs become rows of
// pure cost. Rows are ordered most profitable first.
func BuildProfitLoss(items []*models.Item, sales []*models.Sale, costs []*models.CostEntry) *models.ProfitLossReport {
	type salesData struct {
		qty     int
		revenue float64
	}
	perItem := make(map[string]*salesData, len(items))
	names := make(map[string]string, len(items))
	for _, item := range items {
		perItem[item.ID] = &salesData{}
		names[item.ID] = item.Name
	}

	totalRevenue := 0.0
	var payments models.PaymentBreakdown
	soldStats := make(map[string]*models.ItemSalesStat)
	var soldOrder []string
	for _, sale := range sales {
		totalRevenue += sale.TotalAmount

		switch sale.PaymentMethod {
		case models.PaymentCash:
			payments.Cash += sale.TotalAmount
		case models.PaymentUPI:
			payments.UPI += sale.TotalAmount
		case models.PaymentCredit:
			payments.Credit += sale.TotalAmount
		}

		for _, line := range sale.Items {
			if data, ok := perItem[line.ItemID]; ok {
				data.qty += line.Qty
				data.revenue += line.Price * float64(line.Qty)
			}

			stat, ok := soldStats[line.ItemName]
			if !ok {
				stat = &models.ItemSalesStat{ItemName: line.ItemName}
				soldStats[line.ItemName] = stat
				soldOrder = append(soldOrder, line.ItemName)
			}
			stat.QtySold += line.Qty
			stat.Revenue += line.Price * float64(line.Qty)
		}
	}

	var rows []models.ProfitLossRow
	processed := make(map[string]bool)

	for _, entry := range costs {
		if entry.CostType != models.CostCombined {
			continue
		}

		existing := -1
		for i := range rows {
			if rows[i].IsGrouped && rows[i].Name == groupName(entry) {
				existing = i
				break
			}
		}
		if existing >= 0 {
			rows[existing].Cost += entry.TotalCost
		} else {
			row := models.ProfitLossRow{
				Name:      groupName(entry),
				Cost:      entry.TotalCost,
				IsGrouped: true,
			}
			for _, id := range entry.ItemIDs {
				if data, ok := perItem[id]; ok {
					row.QtySold += data.qty
					row.Revenue += data.revenue
				}
				name := names[id]
				if name == "" {
					name = "Unknown"
				}
				row.ItemNames = append(row.ItemNames, name)
			}
			rows = append(rows, row)
		}

		for _, id := range entry.ItemIDs {
			processed[id] = true
		}
	}

	for _, item := range items {
		if processed[item.ID] {
			continue
		}

		data := perItem[item.ID]
		cost := 0.0
		for _, entry := range costs {
			if entry.CostType != models.CostIndividual {
				continue
			}
			for _, id := range entry.ItemIDs {
				if id == item.ID {
					cost += entry.TotalCost
					break
				}
			}
		}

		if data.qty > 0 || cost > 0 {
			rows = append(rows, models.ProfitLossRow{
				Name:    item.Name,
				QtySold: data.qty,
				Revenue: data.revenue,
				Cost:    cost,
			})
		}
	}

	for _, entry := range costs {
		if entry.CostType != models.CostGeneral {
			continue
		}
		name := entry.CommonName
		if name == "" {
			name = "General Cost"
		}
		rows = append(rows, models.ProfitLossRow{
			Name:      name,
			Cost:      entry.TotalCost,
			IsGeneral: true,
		})
	}

	itemsSold := make([]models.ItemSalesStat, 0, len(soldOrder))
	for _, name := range soldOrder {
		itemsSold = append(itemsSold, *soldStats[name])
	}
	sort.SliceStable(itemsSold, func(i, j int) bool {
		return itemsSold[i].QtySold > itemsSold[j].QtySold
	})

	report := &models.ProfitLossReport{
		TotalRevenue: totalRevenue,
		Payments:     payments,
		ItemsSold:    itemsSold,
	}
	for i := range rows {
		row := &rows[i]
		row.Profit = row.Revenue - row.Cost
		switch {
		case row.Revenue > 0:
			row.Margin = row.Profit / row.Revenue * 100
		case row.Cost > 0:
			row.Margin = -100
		default:
			row.Margin = 0
		}
		report.TotalQty += row.QtySold
		report.TotalCost += row.Cost
	}
	report.TotalProfit = report.TotalRevenue - report.TotalCost

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Profit > rows[j].Profit
	})
	report.Rows = rows
	return report
}

// Dashboard summarizes today's trading plus the open work and credit
// balances that carry across days.
func (s *ReportService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	if data, ok := cache.GetCached(ctx, cache.DashboardStatsKey); ok {
		var stats models.DashboardStats
		if err := json.Unmarshal(data, &stats); err == nil {
			return &stats, nil
		}
	}

	now := timeutil.Now()
	sales, err := s.Sales.ListRange(ctx, timeutil.StartOfDay(now), timeutil.EndOfDay(now))
	if err != nil {
		return nil, apperrors.Storage("list sales", err)
	}
	pendingOrders, err := s.Sales.CountPendingOrders(ctx)
	if err != nil {
		return nil, apperrors.Storage("count pending orders", err)
	}
	creditSales, err := s.Sales.ListCredit(ctx)
	if err != nil {
		return nil, apperrors.Storage("list credit sales", err)
	}
	items, err := s.Items.List(ctx)
	if err != nil {
		return nil, apperrors.Storage("list items", err)
	}

	stats := BuildDashboardStats(sales, pendingOrders, creditSales, items)

	if data, err := json.Marshal(stats); err == nil {
		cache.CacheDashboardStats(ctx, data)
	}
	return stats, nil
}

// lowStockThreshold is the fixed-stock quantity below which an item shows up
// on the dashboard restock list.
const lowStockThreshold = 10

// BuildDashboardStats folds one day's sales into the landing-page numbers.
func BuildDashboardStats(todaySales []*models.Sale, pendingOrders int, creditSales []*models.Sale, items []*models.Item) *models.DashboardStats {
	stats := &models.DashboardStats{
		SalesCount:    len(todaySales),
		PendingOrders: pendingOrders,
	}

	itemStats := make(map[string]*models.ItemSalesStat)
	var order []string
	for _, sale := range todaySales {
		stats.Revenue += sale.TotalAmount
		stats.Profit += sale.TotalAmount - sale.TotalCost

		completed := true
		for _, line := range sale.Items {
			if line.Status == models.OrderItemPending {
				completed = false
				break
			}
		}
		if completed {
			stats.CompletedToday++
		}

		switch sale.PaymentMethod {
		case models.PaymentCash:
			stats.Payments.Cash += sale.TotalAmount
		case models.PaymentUPI:
			stats.Payments.UPI += sale.TotalAmount
		case models.PaymentCredit:
			stats.Payments.Credit += sale.TotalAmount
		}

		for _, line := range sale.Items {
			stat, ok := itemStats[line.ItemName]
			if !ok {
				stat = &models.ItemSalesStat{ItemName: line.ItemName}
				itemStats[line.ItemName] = stat
				order = append(order, line.ItemName)
			}
			stat.QtySold += line.Qty
			stat.Revenue += line.Price * float64(line.Qty)
		}
	}

	top := make([]models.ItemSalesStat, 0, len(order))
	for _, name := range order {
		top = append(top, *itemStats[name])
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].QtySold > top[j].QtySold
	})
	if len(top) > 5 {
		top = top[:5]
	}
	stats.TopItems = top

	for _, item := range items {
		if item.StockType == models.StockFixed && item.StockQty < lowStockThreshold {
			stats.LowStockItems = append(stats.LowStockItems, models.LowStockItem{
				ItemID:   item.ID,
				Name:     item.Name,
				StockQty: item.StockQty,
			})
		}
	}

	for _, outstanding := range GroupCreditOutstanding(creditSales) {
		stats.CreditOutstanding += outstanding.Amount
	}
	return stats
}

func groupName(entry *models.CostEntry) string {
	if entry.CommonName == "" {
		return "Combined Cost"
	}
	return entry.CommonName
}
