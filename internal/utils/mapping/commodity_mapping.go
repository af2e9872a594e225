package mapping

import (
	"github.com/ODInternational04/aboi-backend/internal/core/domain"
	"github.com/ODInternational04/aboi-backend/internal/models"
)

// ToDomainCommodity converts a model Commodity to a domain Commodity
func ToDomainCommodity(m models.Commodity) domain.Commodity {
	return domain.Commodity{
		CommodityID: m.CommodityID,
		Symbol:      m.Symbol,
		Name:        m.Name,
		Unit:        m.Unit,
		IsActive:    m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// ToDomainPriceUpdateRun converts a model PriceUpdateRun to a domain PriceUpdateRun
func ToDomainPriceUpdateRun(m models.PriceUpdateRun) domain.PriceUpdateRun {
	return domain.PriceUpdateRun{
		RunID:              m.RunID,
		ExecutedAt:         m.ExecutedAt,
		TriggeredBy:        m.TriggeredBy,
		TriggerSource:      domain.TriggerSource(m.TriggerSource),
		TotalCommodities:   m.TotalCommodities,
		UpdatedCommodities: m.UpdatedCommodities,
		Status:             domain.RunStatus(m.Status),
		Notes:              m.Notes,
	}
}

// ToModelPriceUpdateRun converts a domain PriceUpdateRun to a model PriceUpdateRun
func ToModelPriceUpdateRun(d domain.PriceUpdateRun) models.PriceUpdateRun {
	return models.PriceUpdateRun{
		RunID:              d.RunID,
		ExecutedAt:         d.ExecutedAt,
		TriggeredBy:        d.TriggeredBy,
		TriggerSource:      string(d.TriggerSource),
		TotalCommodities:   d.TotalCommodities,
		UpdatedCommodities: d.UpdatedCommodities,
		Status:             string(d.Status),
		Notes:              d.Notes,
	}
}
