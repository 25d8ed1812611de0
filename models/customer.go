package models

import (
	"strings"
	"time"
)

// Customer identity prefixes. IDs are minted by the client for regular
// customers; the other classes are derived server-side and encoded in the
// ID so historical rows survive schema-free.
const (
	TempIDPrefix               = "temp_"
	OrderSnapshotIDPrefix      = "order_customer_"
	DeletedPlaceholderIDPrefix = "deleted_"
)

// IdentityKind classifies a customer ID.
type IdentityKind int

const (
	IdentityRegular IdentityKind = iota
	// IdentityTemporary is a client-local identity that must never be
	// persisted as-is.
	IdentityTemporary
	// IdentityOrderSnapshot anchors a single order's embedded customer
	// data; excluded from listings and search.
	IdentityOrderSnapshot
	// IdentityDeletedPlaceholder is the retained stand-in for a deleted
	// customer, keeping historical orders resolvable.
	IdentityDeletedPlaceholder
)

// CustomerIdentity is the decoded form of a customer ID. Ref carries the
// owning order ID for snapshots and the original customer ID for deleted
// placeholders; it is empty otherwise.
type CustomerIdentity struct {
	Kind IdentityKind
	Ref  string
}

// ClassifyCustomerID decodes the ID-prefix convention once, so queries and
// the pipeline branch on the kind instead of re-sniffing prefixes.
func ClassifyCustomerID(id string) CustomerIdentity {
	switch {
	case strings.HasPrefix(id, TempIDPrefix):
		return CustomerIdentity{Kind: IdentityTemporary}
	case strings.HasPrefix(id, OrderSnapshotIDPrefix):
		return CustomerIdentity{Kind: IdentityOrderSnapshot, Ref: strings.TrimPrefix(id, OrderSnapshotIDPrefix)}
	case strings.HasPrefix(id, DeletedPlaceholderIDPrefix):
		return CustomerIdentity{Kind: IdentityDeletedPlaceholder, Ref: strings.TrimPrefix(id, DeletedPlaceholderIDPrefix)}
	default:
		return CustomerIdentity{Kind: IdentityRegular}
	}
}

// OrderSnapshotID returns the snapshot customer ID owned by the given
// order. It cannot collide because order IDs are unique.
func OrderSnapshotID(orderID string) string {
	return OrderSnapshotIDPrefix + orderID
}

// DeletedPlaceholderID returns the placeholder ID substituted for a
// deleted customer.
func DeletedPlaceholderID(customerID string) string {
	return DeletedPlaceholderIDPrefix + customerID
}

// Customer represents customers table
type Customer struct {
	ID             string     `gorm:"primaryKey" json:"id"`
	Name           string     `gorm:"type:varchar(100);not null;index" json:"name"`
	Phone          string     `gorm:"type:varchar(30)" json:"phone"`
	LicensePlate   string     `gorm:"type:varchar(30);not null;index" json:"licensePlate"`
	Address        *string    `gorm:"type:text" json:"address,omitempty"`
	LastPurchaseAt *time.Time `json:"lastPurchaseAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// TableName specifies the table name for Customer
func (Customer) TableName() string {
	return "customers"
}
