package store

import (
	"time"

	"gorm.io/gorm"

	"github.com/totok22/quicksales-backend/models"
)

// GetAllProducts returns all products ordered by name.
func (s *Store) GetAllProducts() ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var products []models.Product
	err := s.db.Order("name").Find(&products).Error
	return products, err
}

// GetProductByID looks up one product.
func (s *Store) GetProductByID(id string) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// SearchProducts matches a query against product name, the pinyin search
// code, and the name of the product's category.
func (s *Store) SearchProducts(query string) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pattern := "%" + query + "%"
	var products []models.Product
	err := s.db.
		Where(`name LIKE ? OR pinyin LIKE ?
			OR category_id IN (SELECT id FROM categories WHERE name LIKE ?)`,
			pattern, pattern, pattern).
		Order("name").
		Find(&products).Error
	return products, err
}

// GetProductsByCategory returns the products of one category.
func (s *Store) GetProductsByCategory(categoryID string) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var products []models.Product
	err := s.db.
		Where("category_id = ?", categoryID).
		Order("name").
		Find(&products).Error
	return products, err
}

// SaveProduct inserts or updates a product by ID, refreshing its pinyin
// search code from the current name.
func (s *Store) SaveProduct(p *models.Product) error {
	code := GenerateSearchPinyin(p.Name)
	p.Pinyin = &code
	p.UpdatedAt = time.Now()

	if _, err := s.GetProductByID(p.ID); err != nil {
		if !IsNotFound(err) {
			return err
		}
		return s.InsertProduct(p)
	}
	return s.UpdateProduct(p)
}

// InsertProduct persists a brand-new product row.
func (s *Store) InsertProduct(p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Create(p).Error
}

// UpdateProduct rewrites a product row in place. Stock is written as
// given; the conditional deduction paths are DeductStock and
// DeductStockBatch.
func (s *Store) UpdateProduct(p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Model(&models.Product{}).
		Where("id = ?", p.ID).
		UpdateColumns(map[string]interface{}{
			"name":        p.Name,
			"unit":        p.Unit,
			"price":       p.Price,
			"category_id": p.CategoryID,
			"pinyin":      p.Pinyin,
			"stock":       p.Stock,
			"min_stock":   p.MinStock,
			"track_stock": p.TrackStock,
			"updated_at":  p.UpdatedAt,
		}).Error
}

// UpdateProductPrice adjusts only the price of a product.
func (s *Store) UpdateProductPrice(id string, price float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"price":      price,
			"updated_at": time.Now(),
		}).Error
}

// DeleteProduct removes a product row. Order items keep their copied
// name/price snapshot, so history is unaffected.
func (s *Store) DeleteProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Delete(&models.Product{}, "id = ?", id).Error
}

// BatchDeleteProducts deletes products sequentially, stopping at the
// first failure.
func (s *Store) BatchDeleteProducts(ids []string) error {
	for _, id := range ids {
		if err := s.DeleteProduct(id); err != nil {
			return err
		}
	}
	return nil
}

// StockDeduction is one entry of a stock ledger batch.
type StockDeduction struct {
	ProductID string
	Quantity  float64
}

// DeductStock decrements a product's stock, clamped at zero. The update
// is conditional: only rows with stock tracking enabled and a non-null
// stock value are touched, everything else is a silent no-op.
func (s *Store) DeductStock(productID string, quantity float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.deductStockLocked(productID, quantity)
}

func (s *Store) deductStockLocked(productID string, quantity float64) error {
	return s.db.Model(&models.Product{}).
		Where("id = ? AND track_stock = ? AND stock IS NOT NULL", productID, true).
		UpdateColumns(map[string]interface{}{
			"stock":      gorm.Expr("MAX(0, stock - ?)", quantity),
			"updated_at": time.Now(),
		}).Error
}

// DeductStockBatch applies a list of deductions one by one. A failing
// entry aborts the batch; earlier deductions are kept.
func (s *Store) DeductStockBatch(deductions []StockDeduction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range deductions {
		if err := s.deductStockLocked(d.ProductID, d.Quantity); err != nil {
			return err
		}
	}
	return nil
}
