package repository

import (
	"sync"
	"time"

	"github.com/phonevilla/store_api/internal/models"
)

// SettingsRepository handles the singleton admin settings record backed by
// data/admin-settings.json.
type SettingsRepository struct {
	mu   sync.Mutex
	path string
}

// NewSettingsRepository creates a SettingsRepository backed by the given file.
func NewSettingsRepository(path string) *SettingsRepository {
	return &SettingsRepository{path: path}
}

// Get returns the settings record, or a fresh default when none was saved yet.
func (r *SettingsRepository) Get() (*models.AdminSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// Update applies a partial update and stamps UpdatedAt.
func (r *SettingsRepository) Update(upd *models.AdminSettingsUpdate) (*models.AdminSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.load()
	if err != nil {
		return nil, err
	}
	if upd.TelegramBotToken != nil {
		s.TelegramBotToken = *upd.TelegramBotToken
	}
	if upd.TelegramChatID != nil {
		s.TelegramChatID = *upd.TelegramChatID
	}
	if upd.WhatsAppNumber != nil {
		s.WhatsAppNumber = *upd.WhatsAppNumber
	}
	if upd.UpiID != nil {
		s.UpiID = *upd.UpiID
	}
	if upd.UpiQrImage != nil {
		s.UpiQrImage = *upd.UpiQrImage
	}
	s.UpdatedAt = time.Now().Format(time.RFC3339)
	if err := writeJSONFile(r.path, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SettingsRepository) load() (*models.AdminSettings, error) {
	var s models.AdminSettings
	if err := readJSONFile(r.path, &s); err != nil {
		if isNotExist(err) {
			return &models.AdminSettings{ID: "default", UpdatedAt: time.Now().Format(time.RFC3339)}, nil
		}
		return nil, err
	}
	if s.ID == "" {
		s.ID = "default"
	}
	return &s, nil
}
