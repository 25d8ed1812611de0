package models

import "time"

// Remark preset types.
const (
	RemarkPresetItem  = "item"
	RemarkPresetOrder = "order"
)

// RemarkPreset represents remark_presets table
type RemarkPreset struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Type      string    `gorm:"type:varchar(10);not null;index" json:"type"`
	SortOrder int       `gorm:"default:0" json:"sortOrder"`
	UseCount  int       `gorm:"default:0" json:"useCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for RemarkPreset
func (RemarkPreset) TableName() string {
	return "remark_presets"
}

// UnitPreset represents unit_presets table
type UnitPreset struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(20);not null" json:"name"`
	SortOrder int       `gorm:"default:0;index" json:"sortOrder"`
	UseCount  int       `gorm:"default:0" json:"useCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for UnitPreset
func (UnitPreset) TableName() string {
	return "unit_presets"
}
