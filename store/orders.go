package store

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/totok22/quicksales-backend/models"
)

var (
	// seqTokenRe matches the sequence token {SEQ} or {SEQ:N}.
	seqTokenRe = regexp.MustCompile(`\{SEQ(?::(\d+))?\}`)
	// digitRunRe matches a maximal run of decimal digits.
	digitRunRe = regexp.MustCompile(`\d+`)
)

// GetAllOrders returns all orders newest first, with the customer row and
// item list hydrated onto each order.
func (s *Store) GetAllOrders() ([]models.Order, error) {
	orders, err := s.listOrders()
	if err != nil {
		return nil, err
	}

	for i := range orders {
		// Missing customers and items are tolerated: an order stays
		// listable even when hydration fails.
		if customer, err := s.GetCustomerByID(orders[i].CustomerID); err == nil {
			orders[i].Customer = *customer
		}
		if items, err := s.GetOrderItems(orders[i].ID); err == nil {
			orders[i].Items = items
		}
	}
	return orders, nil
}

func (s *Store) listOrders() ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var orders []models.Order
	err := s.db.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// GetOrderByID returns the bare order row.
func (s *Store) GetOrderByID(id string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var order models.Order
	if err := s.db.First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderItems returns an order's items in sort order.
func (s *Store) GetOrderItems(orderID string) ([]models.OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []models.OrderItem
	err := s.db.
		Where("order_id = ?", orderID).
		Order("sort_value").
		Find(&items).Error
	return items, err
}

// InsertOrder persists a new order row together with its items. Item row
// keys are synthesized as <orderID>_<productID>.
func (s *Store) InsertOrder(order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Create(&models.Order{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		Date:        order.Date,
		CustomerID:  order.CustomerID,
		TotalAmount: order.TotalAmount,
		Remark:      order.Remark,
		TemplateID:  order.TemplateID,
		Status:      order.Status,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}).Error; err != nil {
		return err
	}

	for i := range order.Items {
		item := order.Items[i]
		productID := ""
		if item.ProductID != nil {
			productID = *item.ProductID
		}
		item.RowID = fmt.Sprintf("%s_%s", order.ID, productID)
		item.OrderID = order.ID
		if err := s.db.Create(&item).Error; err != nil {
			return err
		}
	}
	return nil
}

// UpdateOrder rewrites an order's metadata. Items are immutable after
// creation: the update path never touches order_items and never adjusts
// stock.
func (s *Store) UpdateOrder(order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Model(&models.Order{}).
		Where("id = ?", order.ID).
		UpdateColumns(map[string]interface{}{
			"order_number": order.OrderNumber,
			"date":         order.Date,
			"customer_id":  order.CustomerID,
			"total_amount": order.TotalAmount,
			"remark":       order.Remark,
			"template_id":  order.TemplateID,
			"status":       order.Status,
			"updated_at":   order.UpdatedAt,
		}).Error
}

// DeleteOrder removes an order and its items.
func (s *Store) DeleteOrder(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Delete(&models.OrderItem{}, "order_id = ?", id).Error; err != nil {
		return err
	}
	return s.db.Delete(&models.Order{}, "id = ?", id).Error
}

// GenerateOrderNumber expands the configured pattern into the next order
// number. Date tokens use the current clock, not the order's business
// date. The sequence value continues from the last issued number: with
// daily reset enabled the reference is the most recently created order
// dated today, otherwise the most recently created order overall.
//
// The generator is not the uniqueness guarantee; the UNIQUE constraint on
// orders.order_number is.
func (s *Store) GenerateOrderNumber(settings *models.AppSettings, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	result := expandDateTokens(settings.OrderNumberFormat, now)

	match := seqTokenRe.FindStringSubmatch(result)
	if match == nil {
		return result, nil
	}

	width := settings.OrderNumberDigits
	if match[1] != "" {
		if n, err := strconv.Atoi(match[1]); err == nil {
			width = n
		}
	}

	today := now.Format("2006-01-02")
	query := s.db.Model(&models.Order{}).Order("created_at DESC").Limit(1)
	if settings.OrderNumberResetDaily {
		query = query.Where("date = ?", today)
	}

	var lastNumbers []string
	// Query failures fall through to sequence 1, like a missing row.
	_ = query.Pluck("order_number", &lastNumbers).Error

	nextSeq := uint64(1)
	if len(lastNumbers) > 0 {
		if last, ok := lastDigitRun(lastNumbers[0]); ok {
			nextSeq = last + 1
		}
	}

	seq := fmt.Sprintf("%0*d", width, nextSeq)
	return strings.ReplaceAll(result, match[0], seq), nil
}

// expandDateTokens substitutes the date placeholders in a pattern. {MM}
// and {DD} are replaced before their non-padded variants so the shorter
// tokens cannot eat the longer ones.
func expandDateTokens(pattern string, now time.Time) string {
	r := strings.NewReplacer(
		"{YYYY}", now.Format("2006"),
		"{YY}", now.Format("06"),
		"{MM}", now.Format("01"),
		"{DD}", now.Format("02"),
	)
	result := r.Replace(pattern)
	result = strings.ReplaceAll(result, "{M}", strconv.Itoa(int(now.Month())))
	result = strings.ReplaceAll(result, "{D}", strconv.Itoa(now.Day()))
	return result
}

// lastDigitRun extracts the last maximal digit run from a previously
// issued order number. Taking the last run, not the longest or first, is a
// deliberate tie-break: it tolerates digit-bearing prefixes (a date stamp,
// a numeric shop code) while still incrementing the trailing counter.
func lastDigitRun(orderNumber string) (uint64, bool) {
	runs := digitRunRe.FindAllString(orderNumber, -1)
	for i := len(runs) - 1; i >= 0; i-- {
		if n, err := strconv.ParseUint(runs[i], 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// SaveOrder is the order ingestion pipeline. Stages run strictly in
// order; a failing stage aborts and surfaces its error, and effects of
// earlier stages are not rolled back. There is no transaction spanning
// the stages; each primitive serializes on the store lock individually.
func (s *Store) SaveOrder(order *models.Order) (string, error) {
	// Settings, falling back to in-memory defaults before first save.
	settings, err := s.GetSettings()
	if err != nil {
		return "", err
	}
	if settings == nil {
		settings = models.DefaultSettings()
	}

	// A non-empty client-supplied number is authoritative; only blank
	// orders get a generated one.
	if order.OrderNumber == "" {
		number, err := s.GenerateOrderNumber(settings, order.Date)
		if err != nil {
			return "", err
		}
		order.OrderNumber = number
	}

	order.UpdatedAt = time.Now()

	// Customer resolution: temp identities become order-scoped snapshot
	// rows, everything else goes through phone/plate deduplication.
	temporary := models.ClassifyCustomerID(order.CustomerID).Kind == models.IdentityTemporary
	incoming := order.Customer
	if incoming.ID == "" || temporary {
		incoming.ID = order.CustomerID
	}
	resolvedID, err := s.ResolveCustomer(&incoming, temporary, order.ID)
	if err != nil {
		return "", err
	}
	order.CustomerID = resolvedID
	order.Customer.ID = resolvedID

	// Insert-vs-update probe; a missing row selects the insert path.
	_, err = s.GetOrderByID(order.ID)
	isNew := IsNotFound(err)
	if err != nil && !isNew {
		return "", err
	}

	if isNew {
		if err := s.InsertOrder(order); err != nil {
			return "", err
		}
	} else {
		if err := s.UpdateOrder(order); err != nil {
			return "", err
		}
	}

	// Stock is deducted only when the order was newly inserted; updating
	// an order never re-deducts.
	if isNew {
		deductions := make([]StockDeduction, 0, len(order.Items))
		for _, item := range order.Items {
			if item.ProductID == nil {
				continue
			}
			deductions = append(deductions, StockDeduction{
				ProductID: *item.ProductID,
				Quantity:  item.Quantity,
			})
		}
		if err := s.DeductStockBatch(deductions); err != nil {
			return "", err
		}
	}

	// Order-scoped snapshots have no durable customer to touch.
	if models.ClassifyCustomerID(order.CustomerID).Kind != models.IdentityOrderSnapshot {
		if err := s.TouchLastPurchase(order.CustomerID, time.Now()); err != nil {
			return "", err
		}
	}

	return order.OrderNumber, nil
}
