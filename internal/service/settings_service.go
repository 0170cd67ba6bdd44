package service

import (
	"github.com/phonevilla/store_api/internal/models"
	"github.com/phonevilla/store_api/internal/repository"
)

// SettingsService manages the admin settings singleton. A UPI id change is
// mirrored into the store config so the checkout page picks it up.
type SettingsService struct {
	settingsRepo *repository.SettingsRepository
	configRepo   *repository.ConfigRepository
}

// NewSettingsService constructs a SettingsService.
func NewSettingsService(settingsRepo *repository.SettingsRepository, configRepo *repository.ConfigRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo, configRepo: configRepo}
}

// Get returns the current settings.
func (s *SettingsService) Get() (*models.AdminSettings, error) {
	return s.settingsRepo.Get()
}

// Update applies a partial settings update. When the UPI id changes, the
// payment config is rewritten and its QR code URL regenerated as well.
func (s *SettingsService) Update(upd *models.AdminSettingsUpdate) (*models.AdminSettings, error) {
	if upd.UpiID != nil && *upd.UpiID != "" {
		if err := s.configRepo.SetUpiID(*upd.UpiID); err != nil {
			return nil, err
		}
	}
	return s.settingsRepo.Update(upd)
}
