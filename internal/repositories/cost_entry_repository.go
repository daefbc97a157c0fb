package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skyxwalker/Food-Stall-ERP-System/internal/models"
)

type CostEntryRepository struct {
	DB *pgxpool.Pool
}

func NewCostEntryRepository(db *pgxpool.Pool) *CostEntryRepository {
	return &CostEntryRepository{DB: db}
}

// Create inserts the entry and its item links in one transaction.
func (r *CostEntryRepository) Create(ctx context.Context, e *models.CostEntry) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin cost tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO cost_entries(id, total_cost, description, common_name, cost_type)
         VALUES($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5)
         RETURNING date`,
		e.ID, e.TotalCost, e.Description, e.CommonName, e.CostType,
	).Scan(&e.Date)
	if err != nil {
		return fmt.Errorf("insert cost entry: %w", err)
	}

	for _, itemID := range e.ItemIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO cost_entry_items(cost_entry_id, item_id) VALUES($1, $2)`,
			e.ID, itemID)
		if err != nil {
			return fmt.Errorf("link cost item: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// Update rewrites an entry and replaces its item links. Returns pgx.ErrNoRows
// when the entry does not exist.
func (r *CostEntryRepository) Update(ctx context.Context, e *models.CostEntry) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin cost tx: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`UPDATE cost_entries
         SET total_cost=$1, description=NULLIF($2, ''), common_name=NULLIF($3, ''), cost_type=$4
         WHERE id=$5
         RETURNING date`,
		e.TotalCost, e.Description, e.CommonName, e.CostType, e.ID,
	).Scan(&e.Date)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cost_entry_items WHERE cost_entry_id=$1`, e.ID); err != nil {
		return fmt.Errorf("clear cost items: %w", err)
	}
	for _, itemID := range e.ItemIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO cost_entry_items(cost_entry_id, item_id) VALUES($1, $2)`,
			e.ID, itemID)
		if err != nil {
			return fmt.Errorf("link cost item: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// AddToEntry folds an amount and a note into an existing entry; used when an
// individual cost lands on an item already inside a combined pool.
func (r *CostEntryRepository) AddToEntry(ctx context.Context, entryID string, amount float64, note string) (*models.CostEntry, error) {
	row := r.DB.QueryRow(ctx,
		`UPDATE cost_entries
         SET total_cost = total_cost + $1,
             description = CASE
                 WHEN COALESCE(description, '') = '' THEN NULLIF($2, '')
                 ELSE description || ', ' || CASE WHEN $2 = '' THEN 'Added cost' ELSE $2 END
             END
         WHERE id=$3
         RETURNING id, total_cost, COALESCE(description, ''), COALESCE(common_name, ''), cost_type, date`,
		amount, note, entryID)

	var e models.CostEntry
	err := row.Scan(&e.ID, &e.TotalCost, &e.Description, &e.CommonName, &e.CostType, &e.Date)
	if err != nil {
		return nil, err
	}

	e.ItemIDs, err = r.loadItemIDs(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// FindCombinedByItem returns combined entries whose pool contains the item,
// oldest first.
func (r *CostEntryRepository) FindCombinedByItem(ctx context.Context, itemID string) ([]*models.CostEntry, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT ce.id, ce.total_cost, COALESCE(ce.description, ''), COALESCE(ce.common_name, ''), ce.cost_type, ce.date
         FROM cost_entries ce
         JOIN cost_entry_items cei ON cei.cost_entry_id = ce.id
         WHERE ce.cost_type='combined' AND cei.item_id=$1
         ORDER BY ce.date`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collect(ctx, rows)
}

// ListRange returns entries dated within [from, to], oldest first.
func (r *CostEntryRepository) ListRange(ctx context.Context, from, to time.Time) ([]*models.CostEntry, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, total_cost, COALESCE(description, ''), COALESCE(common_name, ''), cost_type, date
         FROM cost_entries WHERE date >= $1 AND date <= $2 ORDER BY date`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collect(ctx, rows)
}

func (r *CostEntryRepository) List(ctx context.Context) ([]*models.CostEntry, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, total_cost, COALESCE(description, ''), COALESCE(common_name, ''), cost_type, date
         FROM cost_entries ORDER BY date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collect(ctx, rows)
}

func (r *CostEntryRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM cost_entries WHERE id=$1`, id)
	return err
}

type costRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func (r *CostEntryRepository) collect(ctx context.Context, rows costRows) ([]*models.CostEntry, error) {
	var entries []*models.CostEntry
	for rows.Next() {
		var e models.CostEntry
		err := rows.Scan(&e.ID, &e.TotalCost, &e.Description, &e.CommonName, &e.CostType, &e.Date)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, e := range entries {
		ids, err := r.loadItemIDs(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		e.ItemIDs = ids
	}
	return entries, nil
}

func (r *CostEntryRepository) loadItemIDs(ctx context.Context, entryID string) ([]string, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT item_id FROM cost_entry_items WHERE cost_entry_id=$1 ORDER BY item_id`, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
