package services

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"

	"github.com/skyxwalker/Food-Stall-ERP-System/internal/apperrors"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/metrics"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/models"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/repositories"
)

// CatalogService owns the menu: items, their pricing and their stock. Every
// stock movement leaves an audit row, but a failed audit write never blocks
// the movement itself.
type CatalogService struct {
	Items     *repositories.ItemRepository
	StockLogs *repositories.StockLogRepository
}

func NewCatalogService(items *repositories.ItemRepository, stockLogs *repositories.StockLogRepository) *CatalogService {
	return &CatalogService{
		Items:     items,
		StockLogs: stockLogs,
	}
}

func (s *CatalogService) CreateItem(ctx context.Context, req *models.CreateItemRequest) (*models.Item, error) {
	item := &models.Item{
		Name:               req.Name,
		Price:              req.Price,
		StockType:          req.StockType,
		StockQty:           req.StockQty,
		AssignedEmployeeID: req.AssignedEmployeeID,
		CostPerUnit:        req.CostPerUnit,
	}
	if item.StockType == models.StockUnlimited {
		item.StockQty = models.UnlimitedStockQty
	}

	if err := s.Items.Create(ctx, item); err != nil {
		return nil, apperrors.Storage("create item", err)
	}

	if item.StockType == models.StockFixed {
		s.writeStockLog(ctx, item.ID, item.StockQty, models.StockReasonInitial)
	}
	return item, nil
}

func (s *CatalogService) GetItem(ctx context.Context, id string) (*models.Item, error) {
	item, err := s.Items.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("item", id)
		}
		return nil, apperrors.Storage("get item", err)
	}
	return item, nil
}

func (s *CatalogService) ListItems(ctx context.Context) ([]*models.Item, error) {
	items, err := s.Items.List(ctx)
	if err != nil {
		return nil, apperrors.Storage("list items", err)
	}
	return items, nil
}

func (s *CatalogService) UpdateItem(ctx context.Context, id string, req *models.UpdateItemRequest) (*models.Item, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	oldQty := item.StockQty
	item.Name = req.Name
	item.Price = req.Price
	item.StockType = req.StockType
	item.StockQty = req.StockQty
	item.AssignedEmployeeID = req.AssignedEmployeeID
	item.CostPerUnit = req.CostPerUnit
	if item.StockType == models.StockUnlimited {
		item.StockQty = models.UnlimitedStockQty
	}

	if err := s.Items.Update(ctx, item); err != nil {
		return nil, apperrors.Storage("update item", err)
	}

	if item.StockType == models.StockFixed && item.StockQty != oldQty {
		s.writeStockLog(ctx, item.ID, item.StockQty-oldQty, models.StockReasonAdminUpdate)
	}
	return item, nil
}

func (s *CatalogService) DeleteItem(ctx context.Context, id string) error {
	if err := s.Items.Delete(ctx, id); err != nil {
		return apperrors.Storage("delete item", err)
	}
	return nil
}

func (s *CatalogService) ListStockLogs(ctx context.Context, itemID string) ([]*models.StockLog, error) {
	logs, err := s.StockLogs.ListByItem(ctx, itemID)
	if err != nil {
		return nil, apperrors.Storage("list stock logs", err)
	}
	return logs, nil
}

// writeStockLog records a stock movement. Audit rows are best effort: the
// quantity change has already happened, so a log failure is only logged.
func (s *CatalogService) writeStockLog(ctx context.Context, itemID string, change int, reason models.StockLogReason) {
	entry := &models.StockLog{ItemID: itemID, Change: change, Reason: reason}
	if err := s.StockLogs.Create(ctx, entry); err != nil {
		metrics.StockLogFailuresTotal.Inc()
		log.Printf("[Catalog] stock log write failed for item %s: %v", itemID, err)
	}
}
