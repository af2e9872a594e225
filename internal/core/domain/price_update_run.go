package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TriggerSource records what initiated a price update run.
type TriggerSource string

const (
	TriggerSourceCron         TriggerSource = "cron"
	TriggerSourceManual       TriggerSource = "manual"
	TriggerSourceManualSingle TriggerSource = "manual_single"
)

// RunStatus is the terminal status of a price update run.
type RunStatus string

const (
	RunStatusSuccess   RunStatus = "success"
	RunStatusNoUpdates RunStatus = "no_updates"
)

// PriceUpdateRun is the append-only audit record for one orchestration
// invocation, written after every per-commodity task has settled.
type PriceUpdateRun struct {
	RunID              string        `json:"runID"`
	ExecutedAt         time.Time     `json:"executedAt"`
	TriggeredBy        *string       `json:"triggeredBy,omitempty"` // nil for scheduled runs
	TriggerSource      TriggerSource `json:"triggerSource"`
	TotalCommodities   int           `json:"totalCommodities"`
	UpdatedCommodities int           `json:"updatedCommodities"`
	Status             RunStatus     `json:"status"`
	Notes              string        `json:"notes,omitempty"`
}

// SkippedCommodity describes a commodity excluded from a cycle before pricing.
type SkippedCommodity struct {
	CommodityID string `json:"commodityID"`
	Symbol      string `json:"symbol"`
	Reason      string `json:"reason"`
}

// FailedCommodity describes a per-commodity failure that did not abort the cycle.
type FailedCommodity struct {
	CommodityID string `json:"commodityID"`
	Symbol      string `json:"symbol"`
	Message     string `json:"message"`
}

// PriceUpdateResult summarizes one daily update cycle. The cycle reports overall
// success even when individual commodities failed; callers inspect Skipped and
// Failures to detect partial degradation.
type PriceUpdateResult struct {
	Updated      int                `json:"updated"`
	Total        int                `json:"total"` // attempted (non-skipped) count
	ExchangeRate decimal.Decimal    `json:"exchangeRate"`
	Skipped      []SkippedCommodity `json:"skipped"`
	Failures     []FailedCommodity  `json:"failures"`
}
