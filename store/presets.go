package store

import (
	"time"

	"gorm.io/gorm"

	"github.com/totok22/quicksales-backend/models"
)

// GetRemarkPresets returns all remark presets, most used first.
func (s *Store) GetRemarkPresets() ([]models.RemarkPreset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var presets []models.RemarkPreset
	err := s.db.Order("use_count DESC, sort_order").Find(&presets).Error
	return presets, err
}

// GetRemarkPresetsByType returns the remark presets of one type ("item"
// or "order").
func (s *Store) GetRemarkPresetsByType(presetType string) ([]models.RemarkPreset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var presets []models.RemarkPreset
	err := s.db.
		Where("type = ?", presetType).
		Order("use_count DESC, sort_order").
		Find(&presets).Error
	return presets, err
}

// SaveRemarkPreset inserts or updates a remark preset by ID.
func (s *Store) SaveRemarkPreset(p *models.RemarkPreset) error {
	p.UpdatedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	if err := s.db.Model(&models.RemarkPreset{}).
		Where("id = ?", p.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return s.db.Create(p).Error
	}
	return s.db.Model(&models.RemarkPreset{}).
		Where("id = ?", p.ID).
		UpdateColumns(map[string]interface{}{
			"content":    p.Content,
			"type":       p.Type,
			"sort_order": p.SortOrder,
			"updated_at": p.UpdatedAt,
		}).Error
}

// DeleteRemarkPreset removes a remark preset.
func (s *Store) DeleteRemarkPreset(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Delete(&models.RemarkPreset{}, "id = ?", id).Error
}

// IncrementRemarkUseCount bumps a remark preset's usage counter in a
// single statement.
func (s *Store) IncrementRemarkUseCount(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Model(&models.RemarkPreset{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"use_count":  gorm.Expr("use_count + 1"),
			"updated_at": time.Now(),
		}).Error
}

// GetUnitPresets returns all unit presets in sort order.
func (s *Store) GetUnitPresets() ([]models.UnitPreset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var presets []models.UnitPreset
	err := s.db.Order("sort_order, name").Find(&presets).Error
	return presets, err
}

// GetUnitPresetByID looks up one unit preset.
func (s *Store) GetUnitPresetByID(id string) (*models.UnitPreset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var preset models.UnitPreset
	if err := s.db.First(&preset, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &preset, nil
}

// SaveUnitPreset inserts or updates a unit preset by ID.
func (s *Store) SaveUnitPreset(p *models.UnitPreset) error {
	p.UpdatedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	if err := s.db.Model(&models.UnitPreset{}).
		Where("id = ?", p.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return s.db.Create(p).Error
	}
	return s.db.Model(&models.UnitPreset{}).
		Where("id = ?", p.ID).
		UpdateColumns(map[string]interface{}{
			"name":       p.Name,
			"sort_order": p.SortOrder,
			"updated_at": p.UpdatedAt,
		}).Error
}

// DeleteUnitPreset removes a unit preset.
func (s *Store) DeleteUnitPreset(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Delete(&models.UnitPreset{}, "id = ?", id).Error
}

// IncrementUnitUseCount bumps a unit preset's usage counter.
func (s *Store) IncrementUnitUseCount(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Model(&models.UnitPreset{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"use_count":  gorm.Expr("use_count + 1"),
			"updated_at": time.Now(),
		}).Error
}
