package store

import (
	"time"

	"github.com/totok22/quicksales-backend/models"
)

// GetAllTemplates returns all templates, default ones first.
func (s *Store) GetAllTemplates() ([]models.TemplateConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var templates []models.TemplateConfig
	err := s.db.Order("is_default DESC, name").Find(&templates).Error
	return templates, err
}

// GetTemplateByID looks up one template.
func (s *Store) GetTemplateByID(id string) (*models.TemplateConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var template models.TemplateConfig
	if err := s.db.First(&template, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// SaveTemplate inserts or updates a template by ID. The item_end_row
// shadow column is synced from the mappings, and an empty filename
// pattern falls back to the canonical default.
func (s *Store) SaveTemplate(t *models.TemplateConfig) error {
	t.ItemEndRow = t.Mappings.ItemEndRow
	if t.FilenamePattern == "" {
		t.FilenamePattern = models.DefaultFilenamePattern
	}
	t.UpdatedAt = time.Now()

	if _, err := s.GetTemplateByID(t.ID); err != nil {
		if !IsNotFound(err) {
			return err
		}
		return s.insertTemplate(t)
	}
	return s.updateTemplate(t)
}

func (s *Store) insertTemplate(t *models.TemplateConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Create(t).Error
}

func (s *Store) updateTemplate(t *models.TemplateConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Model(&models.TemplateConfig{}).
		Where("id = ?", t.ID).
		UpdateColumns(map[string]interface{}{
			"name":             t.Name,
			"template_base64":  t.TemplateBase64,
			"file_name":        t.FileName,
			"filename_pattern": t.FilenamePattern,
			"is_default":       t.IsDefault,
			"mappings":         t.Mappings,
			"item_end_row":     t.ItemEndRow,
			"required_fields":  t.RequiredFields,
			"updated_at":       t.UpdatedAt,
		}).Error
}

// DeleteTemplate removes a template row.
func (s *Store) DeleteTemplate(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Delete(&models.TemplateConfig{}, "id = ?", id).Error
}

// NormalizeFilenamePatterns resets every template's filename pattern to
// the canonical default, custom patterns included, and returns how many
// rows changed.
func (s *Store) NormalizeFilenamePatterns() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := s.db.Model(&models.TemplateConfig{}).
		Where("filename_pattern IS NULL OR filename_pattern <> ?", models.DefaultFilenamePattern).
		UpdateColumns(map[string]interface{}{
			"filename_pattern": models.DefaultFilenamePattern,
			"updated_at":       time.Now(),
		})
	return int(result.RowsAffected), result.Error
}
