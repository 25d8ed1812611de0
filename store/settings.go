package store

import (
	"time"

	"github.com/totok22/quicksales-backend/models"
)

// GetSettings returns the singleton settings row, or nil before the
// first save.
func (s *Store) GetSettings() (*models.AppSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var settings models.AppSettings
	err := s.db.First(&settings, "id = ?", models.SettingsID).Error
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// SaveSettings upserts the singleton settings row. The ID is forced so a
// client cannot create a second row.
func (s *Store) SaveSettings(settings *models.AppSettings) error {
	settings.ID = models.SettingsID
	settings.UpdatedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	if err := s.db.Model(&models.AppSettings{}).
		Where("id = ?", models.SettingsID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return s.db.Create(settings).Error
	}
	return s.db.Model(&models.AppSettings{}).
		Where("id = ?", models.SettingsID).
		Select("*").
		Updates(settings).Error
}
