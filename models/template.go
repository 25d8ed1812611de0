package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TemplateColumns maps order item fields to spreadsheet columns.
type TemplateColumns struct {
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	Quantity string `json:"quantity"`
	Price    string `json:"price"`
	Total    string `json:"total"`
	Remark   string `json:"remark"`
}

// TemplateMappings maps order fields to spreadsheet cells. Persisted as a
// JSON text column.
type TemplateMappings struct {
	CustomerName  string          `json:"customerName"`
	CustomerPhone string          `json:"customerPhone"`
	CustomerPlate string          `json:"customerPlate"`
	Date          string          `json:"date"`
	OrderNumber   string          `json:"orderNumber"`
	OrderRemark   string          `json:"orderRemark"`
	TotalAmount   string          `json:"totalAmount"`
	ItemStartRow  int             `json:"itemStartRow"`
	ItemEndRow    int             `json:"itemEndRow"`
	Columns       TemplateColumns `json:"columns"`
}

// Value implements driver.Valuer.
func (m TemplateMappings) Value() (driver.Value, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (m *TemplateMappings) Scan(value interface{}) error {
	return scanJSON(value, m)
}

// RequiredFields marks which template fields must be filled before export.
// Persisted as a JSON text column.
type RequiredFields struct {
	CustomerName  bool `json:"customerName"`
	CustomerPhone bool `json:"customerPhone"`
	CustomerPlate bool `json:"customerPlate"`
	Date          bool `json:"date"`
	OrderNumber   bool `json:"orderNumber"`
	OrderRemark   bool `json:"orderRemark"`
	TotalAmount   bool `json:"totalAmount"`
	ItemName      bool `json:"itemName"`
	ItemUnit      bool `json:"itemUnit"`
	ItemQuantity  bool `json:"itemQuantity"`
	ItemPrice     bool `json:"itemPrice"`
	ItemTotal     bool `json:"itemTotal"`
	ItemRemark    bool `json:"itemRemark"`
}

// Value implements driver.Valuer.
func (f RequiredFields) Value() (driver.Value, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (f *RequiredFields) Scan(value interface{}) error {
	return scanJSON(value, f)
}

func scanJSON(value, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dest)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported column type %T", value)
	}
}

// DefaultFilenamePattern is the canonical export filename pattern.
const DefaultFilenamePattern = "{date}_{customerName}_{orderNumber}"

// TemplateConfig represents templates table
type TemplateConfig struct {
	ID              string           `gorm:"primaryKey" json:"id"`
	Name            string           `gorm:"type:varchar(100);not null" json:"name"`
	TemplateBase64  string           `gorm:"type:text;not null" json:"templateBase64"`
	FileName        string           `gorm:"type:varchar(255);not null" json:"fileName"`
	FilenamePattern string           `gorm:"type:varchar(255);not null" json:"filenamePattern"`
	IsDefault       bool             `gorm:"default:false;index" json:"isDefault"`
	Mappings        TemplateMappings `gorm:"type:text" json:"mappings"`
	// ItemEndRow shadows Mappings.ItemEndRow as its own column; the store
	// keeps the two in sync on save.
	ItemEndRow     int            `gorm:"default:0" json:"-"`
	RequiredFields RequiredFields `gorm:"type:text" json:"requiredFields"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// TableName specifies the table name for TemplateConfig
func (TemplateConfig) TableName() string {
	return "templates"
}
