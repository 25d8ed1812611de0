package models

import "time"

// Order represents orders table. Customer and Items are hydrated by the
// store, not stored on the row.
type Order struct {
	ID          string `gorm:"primaryKey" json:"id"`
	OrderNumber string `gorm:"type:varchar(100);uniqueIndex;not null" json:"orderNumber"`
	// Date is the business date (YYYY-MM-DD); the daily-reset sequence
	// window compares it textually.
	Date        string      `gorm:"type:varchar(10);not null;index" json:"date"`
	CustomerID  string      `gorm:"not null;index" json:"customerId"`
	Customer    Customer    `gorm:"-" json:"customer"`
	Items       []OrderItem `gorm:"-" json:"items"`
	TotalAmount float64     `gorm:"not null" json:"totalAmount"`
	Remark      *string     `gorm:"type:text" json:"remark,omitempty"`
	TemplateID  *string     `json:"templateId,omitempty"`
	Status      string      `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// TableName specifies the table name for Order
func (Order) TableName() string {
	return "orders"
}

// OrderItem represents order_items table. Items are immutable point-in-time
// snapshots of the product at order time, not live joins. On the wire the
// item's "id" is the product reference; the row key is synthesized as
// <orderID>_<productID> on insert.
type OrderItem struct {
	RowID     string  `gorm:"column:id;primaryKey" json:"-"`
	OrderID   string  `gorm:"not null;index" json:"-"`
	ProductID *string `json:"id"`
	Name      string  `gorm:"type:varchar(200);not null" json:"name"`
	Unit      string  `gorm:"type:varchar(20);not null" json:"unit"`
	Price     float64 `gorm:"not null" json:"price"`
	Quantity  float64 `gorm:"not null" json:"quantity"`
	// Category rides along for the client; it is never persisted.
	Category      string   `gorm:"-" json:"category"`
	DiscountPrice *float64 `json:"discountPrice,omitempty"`
	Remark        *string  `gorm:"type:text" json:"remark,omitempty"`
	SortValue     int64    `gorm:"default:0" json:"sortValue"`
}

// TableName specifies the table name for OrderItem
func (OrderItem) TableName() string {
	return "order_items"
}
