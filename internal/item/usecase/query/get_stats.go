package query

import (
	"fmt"

	"github.com/geotk/marketplace/internal/item/domain"
)

// GetStatsQuery represents the query for catalog statistics
type GetStatsQuery struct{}

// CatalogStats holds aggregate catalog numbers
type CatalogStats struct {
	TotalItems int64   `json:"total_items"`
	SoldItems  int64   `json:"sold_items"`
	SoldRatio  float64 `json:"sold_ratio"`
}

// GetStatsHandler handles the statistics query
type GetStatsHandler struct {
	items domain.ItemRepository
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(items domain.ItemRepository) *GetStatsHandler {
	return &GetStatsHandler{items: items}
}

// Handle executes the statistics query
func (h *GetStatsHandler) Handle(GetStatsQuery) (*CatalogStats, error) {
	total, err := h.items.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count items: %w", err)
	}

	sold, err := h.items.CountSold()
	if err != nil {
		return nil, fmt.Errorf("failed to count sold items: %w", err)
	}

	stats := &CatalogStats{
		TotalItems: total,
		SoldItems:  sold,
	}
	if total > 0 {
		stats.SoldRatio = float64(sold) / float64(total)
	}

	return stats, nil
}
