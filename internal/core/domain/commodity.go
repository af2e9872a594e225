package domain

// Commodity represents a tradable commodity tracked by the pricing engine.
type Commodity struct {
	CommodityID string `json:"commodityID"` // Primary Key (UUID)
	Symbol      string `json:"symbol"`      // e.g. "XAU", "WMAIZE"
	Name        string `json:"name"`        // e.g. "Gold", "White Maize"
	Unit        string `json:"unit"`        // e.g. "oz", "ton"
	IsActive    bool   `json:"isActive"`
	AuditFields
}
