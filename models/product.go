package models

import (
	"time"
)

// Product represents products table
type Product struct {
	ID         string  `gorm:"primaryKey" json:"id"`
	Name       string  `gorm:"type:varchar(200);not null;index" json:"name"`
	Unit       string  `gorm:"type:varchar(20);not null" json:"unit"`
	Price      float64 `gorm:"not null" json:"price"`
	CategoryID string  `gorm:"index" json:"categoryId"`
	// Pinyin is the search shortcode ("initials full"), recomputed from
	// the name; see store.GenerateSearchPinyin.
	Pinyin *string `gorm:"type:varchar(200)" json:"pinyin,omitempty"`
	// Stock fields are informational unless TrackStock is set; the stock
	// ledger never decrements an untracked product.
	Stock      *float64  `json:"stock,omitempty"`
	MinStock   *float64  `json:"minStock,omitempty"`
	TrackStock *bool     `json:"trackStock,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Product
func (Product) TableName() string {
	return "products"
}

// Tracked reports whether stock tracking is enabled.
func (p *Product) Tracked() bool {
	return p.TrackStock != nil && *p.TrackStock
}
