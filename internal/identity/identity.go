// Package identity resolves the pseudonymous display identity of anonymous
// visitors. The caller address is an opaque token assigned by the transport
// layer; it is a cosmetic identity, not a security boundary.
package identity

import (
	"crypto/md5"
	"encoding/hex"

	"askmego/backend/internal/config"
	"askmego/backend/internal/models"
	"askmego/backend/internal/storage"
)

// DeriveUsername computes a stable pseudonymous handle from a caller
// address. Deterministic; collisions across addresses are accepted.
func DeriveUsername(address string) string {
	sum := md5.Sum([]byte(address))
	return config.UsernamePrefix + hex.EncodeToString(sum[:])[:config.UsernameHashLen]
}

// Fields is the allow-list of mutable preference fields. Nil means "leave
// unchanged".
type Fields struct {
	Nickname *string
	Language *string
	Theme    *string
}

// Service resolves display names and manages preference rows.
type Service struct {
	Prefs storage.PreferenceStore
}

func NewService(prefs storage.PreferenceStore) *Service {
	return &Service{Prefs: prefs}
}

// GetOrCreatePreferences returns the caller's preference row, inserting the
// defaults on first access.
func (s *Service) GetOrCreatePreferences(address string) (*models.Preference, error) {
	return s.Prefs.GetOrCreatePreference(address)
}

// DisplayName returns the stored nickname when set, otherwise the derived
// username.
func (s *Service) DisplayName(address string) (string, error) {
	pref, err := s.Prefs.GetOrCreatePreference(address)
	if err != nil {
		return "", err
	}
	if pref.Nickname != "" {
		return pref.Nickname, nil
	}
	return DeriveUsername(address), nil
}

// UpdatePreferences applies a partial update over the allow-listed fields.
func (s *Service) UpdatePreferences(address string, fields Fields) error {
	updates := map[string]interface{}{}
	if fields.Nickname != nil {
		updates["nickname"] = *fields.Nickname
	}
	if fields.Language != nil {
		updates["language"] = *fields.Language
	}
	if fields.Theme != nil {
		updates["theme"] = *fields.Theme
	}
	if len(updates) == 0 {
		return nil
	}
	return s.Prefs.UpdatePreference(address, updates)
}
