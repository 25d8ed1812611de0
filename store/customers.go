package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/totok22/quicksales-backend/models"
)

// Deleted-placeholder rows keep a fixed display name and note the original
// ID in the address field.
const (
	deletedPlaceholderName       = "已删除客户（历史保留）"
	deletedPlaceholderAddrPrefix = "原客户ID: "
)

// listingFilter excludes the persisted-but-hidden identity classes from
// customer listings and search.
func listingFilter(q string) string {
	return fmt.Sprintf(
		"id NOT LIKE '%s%%' AND id NOT LIKE '%s%%' AND id NOT LIKE '%s%%'",
		models.TempIDPrefix, models.OrderSnapshotIDPrefix, models.DeletedPlaceholderIDPrefix,
	) + q
}

// GetAllCustomers returns all regular customers ordered by name.
func (s *Store) GetAllCustomers() ([]models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var customers []models.Customer
	err := s.db.
		Where(listingFilter("")).
		Order("name").
		Find(&customers).Error
	return customers, err
}

// SearchCustomers matches name, phone or license plate against the query.
func (s *Store) SearchCustomers(query string) ([]models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pattern := "%" + query + "%"
	var customers []models.Customer
	err := s.db.
		Where(listingFilter(" AND (name LIKE ? OR license_plate LIKE ? OR phone LIKE ?)"),
			pattern, pattern, pattern).
		Order("name").
		Find(&customers).Error
	return customers, err
}

// GetCustomerByID looks up one customer, hidden identity classes included.
func (s *Store) GetCustomerByID(id string) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var customer models.Customer
	if err := s.db.First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindByIdentity finds the deduplication match for the given phone and
// license plate: a regular customer whose non-empty phone equals phone OR
// whose non-empty plate equals plate, most recently updated first. Returns
// nil when there is no match. Name is never a dedup key.
func (s *Store) FindByIdentity(phone, licensePlate string) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if phone == "" && licensePlate == "" {
		return nil, nil
	}

	var customers []models.Customer
	err := s.db.
		Where(listingFilter(" AND ((? <> '' AND phone = ?) OR (? <> '' AND license_plate = ?))"),
			phone, phone, licensePlate, licensePlate).
		Order("updated_at DESC").
		Limit(1).
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return nil, nil
	}
	return &customers[0], nil
}

// InsertCustomer persists a brand-new customer row.
func (s *Store) InsertCustomer(c *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Create(c).Error
}

// UpdateCustomer rewrites the mutable fields of a customer row. CreatedAt
// and LastPurchaseAt are identity-side fields and stay untouched.
func (s *Store) UpdateCustomer(c *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Model(&models.Customer{}).
		Where("id = ?", c.ID).
		UpdateColumns(map[string]interface{}{
			"name":          c.Name,
			"phone":         c.Phone,
			"license_plate": c.LicensePlate,
			"address":       c.Address,
			"updated_at":    c.UpdatedAt,
		}).Error
}

// TouchLastPurchase stamps a customer's last purchase time.
func (s *Store) TouchLastPurchase(id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Model(&models.Customer{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"last_purchase_at": at,
			"updated_at":       at,
		}).Error
}

// overlayCustomer merges an incoming customer onto an existing row: for
// name/phone/plate the trimmed incoming value wins unless empty, address
// uses incoming when present, and the existing row keeps its identity-side
// fields (id, createdAt, lastPurchaseAt).
func overlayCustomer(incoming, existing models.Customer, now time.Time) models.Customer {
	merged := existing
	if name := strings.TrimSpace(incoming.Name); name != "" {
		merged.Name = name
	}
	if phone := strings.TrimSpace(incoming.Phone); phone != "" {
		merged.Phone = phone
	}
	if plate := strings.TrimSpace(incoming.LicensePlate); plate != "" {
		merged.LicensePlate = plate
	}
	if incoming.Address != nil {
		merged.Address = incoming.Address
	}
	merged.UpdatedAt = now
	return merged
}

// SaveCustomer applies the identity resolver outside the order pipeline:
// a phone/plate match absorbs the incoming data into the existing row;
// otherwise the customer is updated in place or inserted.
func (s *Store) SaveCustomer(c *models.Customer) error {
	matched, err := s.FindByIdentity(strings.TrimSpace(c.Phone), strings.TrimSpace(c.LicensePlate))
	if err != nil {
		return err
	}

	if matched != nil {
		merged := overlayCustomer(*c, *matched, time.Now())
		return s.UpdateCustomer(&merged)
	}

	if _, err := s.GetCustomerByID(c.ID); err != nil {
		if !IsNotFound(err) {
			return err
		}
		return s.InsertCustomer(c)
	}
	c.UpdatedAt = time.Now()
	return s.UpdateCustomer(c)
}

// ResolveCustomer normalizes an order's customer reference and returns the
// authoritative customer ID the order must point at.
//
// Temporary (client-local) identities are never matched against existing
// rows: they become an order-scoped snapshot row keyed by the owning
// order's ID. Everything else goes through phone/plate deduplication; on a
// match the existing row absorbs the incoming data and its ID wins, and
// with no match the incoming customer is inserted as-is when absent.
func (s *Store) ResolveCustomer(c *models.Customer, temporary bool, orderID string) (string, error) {
	if temporary {
		snapshotID := models.OrderSnapshotID(orderID)
		c.ID = snapshotID
		if _, err := s.GetCustomerByID(snapshotID); err != nil {
			if !IsNotFound(err) {
				return "", err
			}
			if err := s.InsertCustomer(c); err != nil {
				return "", err
			}
		}
		return snapshotID, nil
	}

	matched, err := s.FindByIdentity(strings.TrimSpace(c.Phone), strings.TrimSpace(c.LicensePlate))
	if err != nil {
		return "", err
	}
	if matched != nil {
		// The matched row absorbs the incoming data even when it is the
		// row the order already references, so edits submitted with an
		// order are persisted.
		merged := overlayCustomer(*c, *matched, time.Now())
		if err := s.UpdateCustomer(&merged); err != nil {
			return "", err
		}
		return matched.ID, nil
	}

	if _, err := s.GetCustomerByID(c.ID); err != nil {
		if !IsNotFound(err) {
			return "", err
		}
		if err := s.InsertCustomer(c); err != nil {
			return "", err
		}
	}
	return c.ID, nil
}

// MergeCustomers folds the source customer into the target: target's
// name/phone/plate win unless blank, address and last purchase fall back
// to the source, all of source's orders are repointed at the target, and
// the source row is deleted last so a crash mid-way leaves only repointed
// orders behind, never a dangling reference.
func (s *Store) MergeCustomers(sourceID, targetID string) error {
	if sourceID == targetID {
		return fmt.Errorf("source and target customer are the same")
	}

	source, err := s.GetCustomerByID(sourceID)
	if err != nil {
		return err
	}
	target, err := s.GetCustomerByID(targetID)
	if err != nil {
		return err
	}

	now := time.Now()
	merged := overlayCustomer(*target, *source, now)
	merged.ID = target.ID
	merged.CreatedAt = target.CreatedAt
	if target.LastPurchaseAt != nil {
		merged.LastPurchaseAt = target.LastPurchaseAt
	}

	if err := s.updateCustomerWithLastPurchase(&merged); err != nil {
		return err
	}

	if err := s.repointOrders(sourceID, targetID, now); err != nil {
		return err
	}

	return s.deleteCustomerRow(sourceID)
}

// updateCustomerWithLastPurchase is the merge-path update: unlike
// UpdateCustomer it also writes last_purchase_at, which merge is allowed
// to backfill from the source.
func (s *Store) updateCustomerWithLastPurchase(c *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Model(&models.Customer{}).
		Where("id = ?", c.ID).
		UpdateColumns(map[string]interface{}{
			"name":             c.Name,
			"phone":            c.Phone,
			"license_plate":    c.LicensePlate,
			"address":          c.Address,
			"last_purchase_at": c.LastPurchaseAt,
			"updated_at":       c.UpdatedAt,
		}).Error
}

func (s *Store) repointOrders(fromCustomerID, toCustomerID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Model(&models.Order{}).
		Where("customer_id = ?", fromCustomerID).
		UpdateColumns(map[string]interface{}{
			"customer_id": toCustomerID,
			"updated_at":  at,
		}).Error
}

func (s *Store) deleteCustomerRow(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Delete(&models.Customer{}, "id = ?", id).Error
}

// ensurePlaceholder creates the deleted_<id> placeholder row once.
func (s *Store) ensurePlaceholder(originalID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	placeholderID := models.DeletedPlaceholderID(originalID)

	var count int64
	if err := s.db.Model(&models.Customer{}).
		Where("id = ?", placeholderID).
		Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		return placeholderID, nil
	}

	now := time.Now()
	address := deletedPlaceholderAddrPrefix + originalID
	placeholder := models.Customer{
		ID:        placeholderID,
		Name:      deletedPlaceholderName,
		Address:   &address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return placeholderID, s.db.Create(&placeholder).Error
}

// DeleteCustomer removes a customer while keeping historical orders
// resolvable: a deleted_<id> placeholder is ensured, all orders are
// repointed at it, and only then is the original row removed.
func (s *Store) DeleteCustomer(id string) error {
	placeholderID, err := s.ensurePlaceholder(id)
	if err != nil {
		return err
	}
	if err := s.repointOrders(id, placeholderID, time.Now()); err != nil {
		return err
	}
	return s.deleteCustomerRow(id)
}

// BatchDeleteCustomers deletes customers sequentially, stopping at the
// first failure.
func (s *Store) BatchDeleteCustomers(ids []string) error {
	for _, id := range ids {
		if err := s.DeleteCustomer(id); err != nil {
			return err
		}
	}
	return nil
}
