// Package localization resolves flash notice keys to user-facing strings.
// Translations are loaded from JSON files named by language code
// (e.g. "en.json"); the language comes from the caller's stored preference.
package localization

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"askmego/backend/internal/config"
)

// Localizer holds the loaded translation tables.
type Localizer struct {
	translations map[string]map[string]string
	mu           sync.RWMutex
}

// NewLocalizer loads every *.json file in dir as a translation table.
func NewLocalizer(dir string) (*Localizer, error) {
	l := &Localizer{
		translations: make(map[string]map[string]string),
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read locales directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, file.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read locale %s: %w", file.Name(), err)
		}

		var table map[string]string
		if err := json.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("failed to parse locale %s: %w", file.Name(), err)
		}

		l.translations[strings.TrimSuffix(file.Name(), ".json")] = table
	}

	return l, nil
}

// T returns the translation of key for lang, falling back to the default
// language and finally to the key itself.
func (l *Localizer) T(lang, key string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if table, ok := l.translations[lang]; ok {
		if value, ok := table[key]; ok {
			return value
		}
	}

	if lang != config.DefaultLanguage {
		if table, ok := l.translations[config.DefaultLanguage]; ok {
			if value, ok := table[key]; ok {
				return value
			}
		}
	}

	return key
}
