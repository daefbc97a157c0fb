package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skyxwalker/Food-Stall-ERP-System/internal/models"
)

type StockLogRepository struct {
	DB *pgxpool.Pool
}

func NewStockLogRepository(db *pgxpool.Pool) *StockLogRepository {
	return &StockLogRepository{DB: db}
}

func (r *StockLogRepository) Create(ctx context.Context, l *models.StockLog) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return r.DB.QueryRow(ctx,
		`INSERT INTO stock_logs(id, item_id, change, reason)
         VALUES($1, $2, $3, $4)
         RETURNING date`,
		l.ID, l.ItemID, l.Change, l.Reason,
	).Scan(&l.Date)
}

func (r *StockLogRepository) ListByItem(ctx context.Context, itemID string) ([]*models.StockLog, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, item_id, change, reason, date
         FROM stock_logs WHERE item_id=$1 ORDER BY date DESC`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.StockLog
	for rows.Next() {
		var l models.StockLog
		if err := rows.Scan(&l.ID, &l.ItemID, &l.Change, &l.Reason, &l.Date); err != nil {
			return nil, err
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
