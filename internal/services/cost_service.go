package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/skyxwalker/Food-Stall-ERP-System/internal/apperrors"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/cache"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/models"
)

// CostService owns the cost ledger. Entries come in three shapes and the
// rules between them keep every spent rupee attributed exactly once.
type CostService struct {
	Costs CostStore
	Items ItemStore
}

func NewCostService(costs CostStore, items ItemStore) *CostService {
	return &CostService{Costs: costs, Items: items}
}

// ValidateCostEntry applies the attribution rules against the current
// ledger:
//
//   - general needs a name and carries no items
//   - combined needs a name and at least two items, none of which may
//     already carry an individual cost
//   - individual is for exactly one item
//
// When editingID is set the entry is being edited in place and the
// individual-cost conflict check is waived; the edit is not creating a
// second attribution for those items.
func ValidateCostEntry(draft *models.CostEntryDraft, existing []*models.CostEntry, items []*models.Item, editingID string) error {
	if draft.TotalCost < 0 {
		return apperrors.Validation("cost cannot be negative")
	}

	if draft.CostType == models.CostGeneral {
		if strings.TrimSpace(draft.CommonName) == "" {
			return apperrors.Validation("a name is required for a general cost")
		}
		return nil
	}

	if len(draft.ItemIDs) == 0 {
		return apperrors.Validation("select at least one item")
	}

	switch draft.CostType {
	case models.CostCombined:
		if len(draft.ItemIDs) < 2 {
			return apperrors.Validation("a combined cost needs at least 2 items")
		}
		if editingID == "" {
			withIndividual := itemsWithIndividualCosts(existing)
			var conflicts []string
			for _, id := range draft.ItemIDs {
				if withIndividual[id] {
					conflicts = append(conflicts, itemName(items, id))
				}
			}
			if len(conflicts) > 0 {
				return apperrors.Validation("cannot combine items that already have individual costs: %s",
					strings.Join(conflicts, ", "))
			}
		}
		if strings.TrimSpace(draft.CommonName) == "" {
			return apperrors.Validation("a common name is required for a combined cost")
		}
	case models.CostIndividual:
		if len(draft.ItemIDs) > 1 {
			return apperrors.Validation("an individual cost is for one item; use combined for multiple")
		}
	default:
		return apperrors.Validation("unknown cost type %q", draft.CostType)
	}

	return nil
}

// AttributeCost validates the draft and lands it in the ledger. An
// individual cost for an item already inside a combined pool does not create
// a competing row; it merges into that pool, growing its total and appending
// to its description.
func (s *CostService) AttributeCost(ctx context.Context, draft *models.CostEntryDraft) (*models.CostAttributionResult, error) {
	draft.CommonName = strings.TrimSpace(draft.CommonName)
	draft.Description = strings.TrimSpace(draft.Description)

	existing, err := s.Costs.List(ctx)
	if err != nil {
		return nil, apperrors.Storage("list cost entries", err)
	}
	items, err := s.Items.List(ctx)
	if err != nil {
		return nil, apperrors.Storage("list items", err)
	}

	if err := ValidateCostEntry(draft, existing, items, ""); err != nil {
		return nil, err
	}

	if draft.CostType == models.CostIndividual {
		pools, err := s.Costs.FindCombinedByItem(ctx, draft.ItemIDs[0])
		if err != nil {
			return nil, apperrors.Storage("find combined pool", err)
		}
		if len(pools) > 0 {
			merged, err := s.Costs.AddToEntry(ctx, pools[0].ID, draft.TotalCost, draft.Description)
			if err != nil {
				return nil, apperrors.Storage("merge into combined pool", err)
			}
			cache.InvalidateReportCaches(ctx)
			return &models.CostAttributionResult{
				Outcome: models.CostAttributionMerged,
				Entry:   merged,
			}, nil
		}
	}

	entry := &models.CostEntry{
		ItemIDs:     draft.ItemIDs,
		TotalCost:   draft.TotalCost,
		Description: draft.Description,
		CommonName:  draft.CommonName,
		CostType:    draft.CostType,
	}
	if entry.CostType == models.CostGeneral {
		entry.ItemIDs = nil
	}
	if entry.CostType == models.CostIndividual {
		entry.CommonName = ""
	}

	if err := s.Costs.Create(ctx, entry); err != nil {
		return nil, apperrors.Storage("create cost entry", err)
	}

	cache.InvalidateReportCaches(ctx)
	return &models.CostAttributionResult{
		Outcome: models.CostAttributionCreated,
		Entry:   entry,
	}, nil
}

// UpdateCost rewrites an existing entry in place. The conflict check against
// individual costs does not apply to edits, so a combined entry stays
// editable even after later individual costs were merged into it.
func (s *CostService) UpdateCost(ctx context.Context, id string, draft *models.CostEntryDraft) (*models.CostEntry, error) {
	draft.CommonName = strings.TrimSpace(draft.CommonName)
	draft.Description = strings.TrimSpace(draft.Description)

	if err := ValidateCostEntry(draft, nil, nil, id); err != nil {
		return nil, err
	}

	entry := &models.CostEntry{
		ID:          id,
		ItemIDs:     draft.ItemIDs,
		TotalCost:   draft.TotalCost,
		Description: draft.Description,
		CommonName:  draft.CommonName,
		CostType:    draft.CostType,
	}
	if entry.CostType == models.CostGeneral {
		entry.ItemIDs = nil
	}
	if entry.CostType == models.CostIndividual {
		entry.CommonName = ""
	}

	if err := s.Costs.Update(ctx, entry); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("cost entry", id)
		}
		return nil, apperrors.Storage("update cost entry", err)
	}

	cache.InvalidateReportCaches(ctx)
	return entry, nil
}

func (s *CostService) ListCosts(ctx context.Context) ([]*models.CostEntry, error) {
	entries, err := s.Costs.List(ctx)
	if err != nil {
		return nil, apperrors.Storage("list cost entries", err)
	}
	return entries, nil
}

func (s *CostService) ListCostsRange(ctx context.Context, from, to time.Time) ([]*models.CostEntry, error) {
	entries, err := s.Costs.ListRange(ctx, from, to)
	if err != nil {
		return nil, apperrors.Storage("list cost entries", err)
	}
	return entries, nil
}

func (s *CostService) DeleteCost(ctx context.Context, id string) error {
	if err := s.Costs.Delete(ctx, id); err != nil {
		return apperrors.Storage("delete cost entry", err)
	}
	cache.InvalidateReportCaches(ctx)
	return nil
}

func itemsWithIndividualCosts(entries []*models.CostEntry) map[string]bool {
	out := make(map[string]bool)
	for _, e := range entries {
		if e.CostType != models.CostIndividual {
			continue
		}
		for _, id := range e.ItemIDs {
			out[id] = true
		}
	}
	return out
}

func itemName(items []*models.Item, id string) string {
	for _, item := range items {
		if item.ID == id {
			return item.Name
		}
	}
	return id
}
