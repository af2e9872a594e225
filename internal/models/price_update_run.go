package models

import "time"

// PriceUpdateRun mirrors a row of the append-only price_update_runs table.
type PriceUpdateRun struct {
	RunID              string    `json:"runID"`
	ExecutedAt         time.Time `json:"executedAt"`
	TriggeredBy        *string   `json:"triggeredBy"`
	TriggerSource      string    `json:"triggerSource"`
	TotalCommodities   int       `json:"totalCommodities"`
	UpdatedCommodities int       `json:"updatedCommodities"`
	Status             string    `json:"status"`
	Notes              string    `json:"notes"`
}
