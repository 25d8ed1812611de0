package store

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/totok22/quicksales-backend/models"
)

// GetAllCategories returns every category ordered for tree display:
// sort order first, name as tie-break.
func (s *Store) GetAllCategories() ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var categories []models.Category
	err := s.db.Order("sort_order, name").Find(&categories).Error
	return categories, err
}

// GetCategoryByID looks up one category.
func (s *Store) GetCategoryByID(id string) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// SaveCategory inserts or updates a category by ID.
func (s *Store) SaveCategory(c *models.Category) error {
	c.UpdatedAt = time.Now()

	if _, err := s.GetCategoryByID(c.ID); err != nil {
		if !IsNotFound(err) {
			return err
		}
		return s.insertCategory(c)
	}
	return s.updateCategory(c)
}

func (s *Store) insertCategory(c *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Create(c).Error
}

func (s *Store) updateCategory(c *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Model(&models.Category{}).
		Where("id = ?", c.ID).
		UpdateColumns(map[string]interface{}{
			"name":       c.Name,
			"parent_id":  c.ParentID,
			"level":      c.Level,
			"path":       c.Path,
			"sort_order": c.SortOrder,
			"updated_at": c.UpdatedAt,
		}).Error
}

// SaveCategoriesBatch upserts a whole category tree in one transaction.
// The client sends the full reordered tree at once, so unlike the other
// save paths this one is all-or-nothing.
func (s *Store) SaveCategoriesBatch(categories []models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	return s.db.Transaction(func(tx *gorm.DB) error {
		for i := range categories {
			categories[i].UpdatedAt = now
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).Create(&categories[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteCategory removes a category row. Products keep their category_id;
// they list as uncategorized until reassigned.
func (s *Store) DeleteCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Delete(&models.Category{}, "id = ?", id).Error
}
