package models

// Commodity mirrors a row of the commodities table.
type Commodity struct {
	CommodityID string `json:"commodityID"`
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Unit        string `json:"unit"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}
