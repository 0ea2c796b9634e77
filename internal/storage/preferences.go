package storage

import (
	"errors"
	"log"

	"askmego/backend/internal/config"
	"askmego/backend/internal/models"

	"gorm.io/gorm"
)

// GetOrCreatePreference looks up the preference row for a caller address
// (or the reserved admin key) and lazily inserts the defaults on first
// access. Two concurrent first accesses can race to insert; the primary
// key makes the loser's insert a duplicate, which is benign and retried
// as a plain lookup.
func (s *Service) GetOrCreatePreference(key string) (*models.Preference, error) {
	var pref models.Preference

	defaults := models.Preference{
		UserIP:   key,
		Language: config.DefaultLanguage,
		Theme:    config.DefaultTheme,
	}

	// Attrs keeps the defaults out of the lookup conditions, so a row whose
	// language or theme was changed still matches.
	result := s.DB.Where("user_ip = ?", key).Attrs(defaults).FirstOrCreate(&pref)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			// Lost the insert race; the row exists now.
			if err := s.DB.Where("user_ip = ?", key).First(&pref).Error; err != nil {
				return nil, err
			}
			return &pref, nil
		}
		log.Printf("ERROR: Failed to load preferences for %s: %v", key, result.Error)
		return nil, result.Error
	}

	if result.RowsAffected > 0 {
		log.Printf("INFO: Created default preferences for %s", key)
	}

	return &pref, nil
}

// UpdatePreference applies a partial update. Callers pass only allow-listed
// columns (nickname, language, theme); the row is created first if absent.
func (s *Service) UpdatePreference(key string, fields map[string]interface{}) error {
	if _, err := s.GetOrCreatePreference(key); err != nil {
		return err
	}
	return s.DB.Model(&models.Preference{}).
		Where("user_ip = ?", key).
		Updates(fields).Error
}
