package models

import "time"

// Category represents categories table (multi-level tree)
type Category struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	ParentID  *string   `gorm:"index" json:"parentId,omitempty"`
	Level     int       `gorm:"not null;default:0;index" json:"level"`
	Path      string    `gorm:"type:text" json:"path"`
	SortOrder int       `gorm:"default:0" json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Category
func (Category) TableName() string {
	return "categories"
}
