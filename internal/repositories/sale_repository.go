package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skyxwalker/Food-Stall-ERP-System/internal/models"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/timeutil"
)

type SaleRepository struct {
	DB *pgxpool.Pool
}

func NewSaleRepository(db *pgxpool.Pool) *SaleRepository {
	return &SaleRepository{DB: db}
}

// Create inserts the sale, its order lines and the fixed-stock decrements in
// one transaction. The token number is read and assigned under a per-day
// advisory lock, so two concurrent checkouts on the same business day cannot
// draw the same token; the sequence restarts at 1 each day.
func (r *SaleRepository) Create(ctx context.Context, s *models.Sale) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin sale tx: %w", err)
	}
	defer tx.Rollback(ctx)

	lockKey := "sale_token:" + timeutil.DayKey(s.Date)
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey); err != nil {
		return fmt.Errorf("acquire token lock: %w", err)
	}

	err = tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(token_number), 0) + 1 FROM sales WHERE date >= $1 AND date <= $2`,
		timeutil.StartOfDay(s.Date), timeutil.EndOfDay(s.Date),
	).Scan(&s.TokenNumber)
	if err != nil {
		return fmt.Errorf("next token number: %w", err)
	}

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO sales(id, date, token_number, total_amount, total_cost, payment_method, credit_customer_name)
         VALUES($1, $2, $3, $4, $5, $6, NULLIF($7, ''))`,
		s.ID, s.Date, s.TokenNumber, s.TotalAmount, s.TotalCost, s.PaymentMethod, s.CreditCustomerName)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}

	for i := range s.Items {
		line := &s.Items[i]
		_, err = tx.Exec(ctx,
			`INSERT INTO order_items(id, sale_id, item_id, item_name, qty, price, cost, employee_id, status)
             VALUES($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9)`,
			uuid.NewString(), s.ID, line.ItemID, line.ItemName, line.Qty, line.Price, line.Cost, line.EmployeeID, line.Status)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}

		// Fixed stock floors at zero rather than going negative.
		_, err = tx.Exec(ctx,
			`UPDATE items SET stock_qty = GREATEST(stock_qty - $1, 0) WHERE id=$2 AND stock_type='fixed'`,
			line.Qty, line.ItemID)
		if err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *SaleRepository) Get(ctx context.Context, id string) (*models.Sale, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, date, token_number, total_amount, total_cost, payment_method, COALESCE(credit_customer_name, '')
         FROM sales WHERE id=$1`, id)

	var s models.Sale
	err := row.Scan(&s.ID, &s.Date, &s.TokenNumber, &s.TotalAmount, &s.TotalCost,
		&s.PaymentMethod, &s.CreditCustomerName)
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, []string{s.ID})
	if err != nil {
		return nil, err
	}
	s.Items = items[s.ID]
	return &s, nil
}

// ListRange returns all sales in [from, to] with their lines, oldest first.
func (r *SaleRepository) ListRange(ctx context.Context, from, to time.Time) ([]*models.Sale, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, date, token_number, total_amount, total_cost, payment_method, COALESCE(credit_customer_name, '')
         FROM sales WHERE date >= $1 AND date <= $2 ORDER BY date`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []*models.Sale
	var ids []string
	for rows.Next() {
		var s models.Sale
		err := rows.Scan(&s.ID, &s.Date, &s.TokenNumber, &s.TotalAmount, &s.TotalCost,
			&s.PaymentMethod, &s.CreditCustomerName)
		if err != nil {
			return nil, err
		}
		sales = append(sales, &s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return sales, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, s := range sales {
		s.Items = items[s.ID]
	}
	return sales, nil
}

// ListCredit returns every sale still recorded against a credit customer.
func (r *SaleRepository) ListCredit(ctx context.Context) ([]*models.Sale, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, date, token_number, total_amount, total_cost, payment_method, COALESCE(credit_customer_name, '')
         FROM sales WHERE payment_method='credit' ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []*models.Sale
	for rows.Next() {
		var s models.Sale
		err := rows.Scan(&s.ID, &s.Date, &s.TokenNumber, &s.TotalAmount, &s.TotalCost,
			&s.PaymentMethod, &s.CreditCustomerName)
		if err != nil {
			return nil, err
		}
		sales = append(sales, &s)
	}
	return sales, rows.Err()
}

// MarkItemDone flips every line of the sale for the given item to done. The
// update is unconditional so repeating it is harmless. Returns the number of
// lines touched.
func (r *SaleRepository) MarkItemDone(ctx context.Context, saleID, itemID string) (int64, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE order_items SET status='done' WHERE sale_id=$1 AND item_id=$2`,
		saleID, itemID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// UpdatePaymentMethod changes how a sale was settled. Every change clears the
// customer name, which is what settles an outstanding credit.
func (r *SaleRepository) UpdatePaymentMethod(ctx context.Context, saleID string, method models.PaymentMethod) (int64, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE sales SET payment_method=$1, credit_customer_name=NULL WHERE id=$2`,
		method, saleID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// CountPendingOrders returns how many sales still have a pending line.
func (r *SaleRepository) CountPendingOrders(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(DISTINCT sale_id) FROM order_items WHERE status='pending'`).Scan(&n)
	return n, err
}

func (r *SaleRepository) loadItems(ctx context.Context, saleIDs []string) (map[string][]models.OrderItem, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT sale_id, item_id, item_name, qty, price, cost, COALESCE(employee_id, ''), status
         FROM order_items WHERE sale_id = ANY($1) ORDER BY sale_id`, saleIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[string][]models.OrderItem)
	for rows.Next() {
		var saleID string
		var line models.OrderItem
		err := rows.Scan(&saleID, &line.ItemID, &line.ItemName, &line.Qty,
			&line.Price, &line.Cost, &line.EmployeeID, &line.Status)
		if err != nil {
			return nil, err
		}
		items[saleID] = append(items[saleID], line)
	}
	return items, rows.Err()
}
