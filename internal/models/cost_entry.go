package models

import "time"

// CostType classifies a cost entry.
//
//   - individual: one item's own cost; an item may accumulate several.
//   - combined:   one shared pool across >=2 items, reported under CommonName.
//   - general:    operational cost tied to no item (plates, electricity).
type CostType string

const (
	CostIndividual CostType = "individual"
	CostCombined   CostType = "combined"
	CostGeneral    CostType = "general"
)

type CostEntry struct {
	ID          string    `json:"id"`
	ItemIDs     []string  `json:"item_ids"`
	TotalCost   float64   `json:"total_cost"`
	Description string    `json:"description,omitempty"`
	CommonName  string    `json:"common_name,omitempty"`
	CostType    CostType  `json:"cost_type"`
	Date        time.Time `json:"date"`
}

// CostEntryDraft is a cost entry before attribution: either it becomes a new
// row or, for an individual cost on an item inside a combined pool, it merges
// into that pool.
type CostEntryDraft struct {
	ItemIDs     []string `json:"item_ids"`
	TotalCost   float64  `json:"total_cost" validate:"gte=0"`
	Description string   `json:"description"`
	CommonName  string   `json:"common_name"`
	CostType    CostType `json:"cost_type" validate:"required,oneof=individual combined general"`
}

// CostAttributionOutcome tags what AttributeCost did.
type CostAttributionOutcome string

const (
	CostAttributionCreated CostAttributionOutcome = "created"
	CostAttributionMerged  CostAttributionOutcome = "merged"
)

type CostAttributionResult struct {
	Outcome CostAttributionOutcome `json:"outcome"`
	Entry   *CostEntry             `json:"entry"`
}
