package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skyxwalker/Food-Stall-ERP-System/internal/models"
)

type ItemRepository struct {
	DB *pgxpool.Pool
}

func NewItemRepository(db *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{DB: db}
}

func (r *ItemRepository) Create(ctx context.Context, i *models.Item) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return r.DB.QueryRow(ctx,
		`INSERT INTO items(id, name, price, stock_type, stock_qty, assigned_employee_id, cost_per_unit)
         VALUES($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
         RETURNING created_at`,
		i.ID, i.Name, i.Price, i.StockType, i.StockQty, i.AssignedEmployeeID, i.CostPerUnit,
	).Scan(&i.CreatedAt)
}

func (r *ItemRepository) Get(ctx context.Context, id string) (*models.Item, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, price, stock_type, stock_qty, COALESCE(assigned_employee_id, ''), cost_per_unit, created_at
         FROM items WHERE id=$1`, id)

	var item models.Item
	err := row.Scan(&item.ID, &item.Name, &item.Price, &item.StockType,
		&item.StockQty, &item.AssignedEmployeeID, &item.CostPerUnit, &item.CreatedAt)
	return &item, err
}

func (r *ItemRepository) List(ctx context.Context) ([]*models.Item, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, price, stock_type, stock_qty, COALESCE(assigned_employee_id, ''), cost_per_unit, created_at
         FROM items ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		var item models.Item
		err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.StockType,
			&item.StockQty, &item.AssignedEmployeeID, &item.CostPerUnit, &item.CreatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

func (r *ItemRepository) Update(ctx context.Context, i *models.Item) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE items SET name=$1, price=$2, stock_type=$3, stock_qty=$4, assigned_employee_id=NULLIF($5, ''), cost_per_unit=$6
         WHERE id=$7`,
		i.Name, i.Price, i.StockType, i.StockQty, i.AssignedEmployeeID, i.CostPerUnit, i.ID)
	return err
}

func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM items WHERE id=$1`, id)
	return err
}
