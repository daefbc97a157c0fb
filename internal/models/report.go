package models

// ProfitLossRow is one line of the item-wise profit/loss report. Combined
// cost pools collapse their member items into a single grouped row; general
// costs appear as rows with zero sales figures.
type ProfitLossRow struct {
	Name      string   `json:"name"`
	QtySold   int      `json:"qty_sold"`
	Revenue   float64  `json:"revenue"`
	Cost      float64  `json:"cost"`
	Profit    float64  `json:"profit"`
	Margin    float64  `json:"margin"`
	IsGrouped bool     `json:"is_grouped"`
	IsGeneral bool     `json:"is_general"`
	ItemNames []string `json:"item_names,omitempty"`
}

type ProfitLossReport struct {
	Rows         []ProfitLossRow  `json:"rows"`
	TotalQty     int              `json:"total_qty"`
	TotalRevenue float64          `json:"total_revenue"`
	TotalCost    float64          `json:"total_cost"`
	TotalProfit  float64          `json:"total_profit"`
	Payments     PaymentBreakdown `json:"payments"`
	ItemsSold    []ItemSalesStat  `json:"items_sold"`
}

// PaymentBreakdown sums sale amounts per payment method.
type PaymentBreakdown struct {
	Cash   float64 `json:"cash"`
	UPI    float64 `json:"upi"`
	Credit float64 `json:"credit"`
}

type ItemSalesStat struct {
	ItemName string  `json:"item_name"`
	QtySold  int     `json:"qty_sold"`
	Revenue  float64 `json:"revenue"`
}

// LowStockItem flags a fixed-stock item running out.
type LowStockItem struct {
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	StockQty int    `json:"stock_qty"`
}

// DashboardStats is the admin landing-page summary for one day.
type DashboardStats struct {
	SalesCount        int              `json:"sales_count"`
	Revenue           float64          `json:"revenue"`
	Profit            float64          `json:"profit"`
	PendingOrders     int              `json:"pending_orders"`
	CompletedToday    int              `json:"completed_today"`
	Payments          PaymentBreakdown `json:"payments"`
	TopItems          []ItemSalesStat  `json:"top_items"`
	LowStockItems     []LowStockItem   `json:"low_stock_items"`
	CreditOutstanding float64          `json:"credit_outstanding"`
}
