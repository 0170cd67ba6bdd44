package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/phonevilla/store_api/internal/models"
	"github.com/phonevilla/store_api/internal/repository"
	"github.com/phonevilla/store_api/pkg/mobileapi"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9-]`)

// DeviceSyncService refreshes catalog products from the MobileAPI.dev
// device database: specs and release date are copied onto the catalog
// entry and device imagery is downloaded into the product images
// directory. Prices are never touched by the sync.
type DeviceSyncService struct {
	client     *mobileapi.Client
	configRepo *repository.ConfigRepository
	imageDir   string
}

// NewDeviceSyncService constructs a DeviceSyncService.
func NewDeviceSyncService(client *mobileapi.Client, configRepo *repository.ConfigRepository, imageDir string) *DeviceSyncService {
	return &DeviceSyncService{client: client, configRepo: configRepo, imageDir: imageDir}
}

// deviceUpdate holds the fields the sync may write back to one product.
type deviceUpdate struct {
	specs       []string
	releaseDate string
	imagePath   string
}

// SyncCatalog looks every catalog product up by device name, refreshes its
// specs and release date and stores the fetched image locally. Products
// that cannot be resolved are skipped. Lookups and downloads run outside
// the config lock; only the write-back goes through Mutate, so an admin
// edit landing mid-sync is not clobbered.
func (s *DeviceSyncService) SyncCatalog(ctx context.Context) error {
	cfg, err := s.configRepo.Read()
	if err != nil {
		return err
	}

	updates := make(map[string]deviceUpdate)
	for _, p := range cfg.Products {
		if p.DeviceName == "" {
			continue
		}

		device, err := s.client.SearchDevice(ctx, p.DeviceName)
		if err != nil {
			log.Warn().Err(err).Str("device", p.DeviceName).Msg("Device lookup failed, skipping")
			continue
		}

		upd := deviceUpdate{specs: device.Specs, releaseDate: device.ReleasedAt}
		if imagePath, err := s.saveImage(device); err != nil {
			log.Warn().Err(err).Str("device", device.Name).Msg("Failed to store device image")
		} else {
			upd.imagePath = imagePath
		}
		updates[p.ID] = upd
	}

	if len(updates) == 0 {
		return nil
	}
	err = s.configRepo.Mutate(func(cfg *models.StoreConfig) error {
		for i := range cfg.Products {
			upd, ok := updates[cfg.Products[i].ID]
			if !ok {
				continue
			}
			if len(upd.specs) > 0 {
				cfg.Products[i].Specs = upd.specs
			}
			if upd.releaseDate != "" {
				cfg.Products[i].ReleaseDate = upd.releaseDate
			}
			if upd.imagePath != "" {
				cfg.Products[i].ImagePath = upd.imagePath
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to persist synced catalog: %w", err)
	}
	log.Info().Int("products", len(updates)).Msg("Catalog device sync persisted")
	return nil
}

// saveImage decodes the base64 device render to <slug>.jpg under the
// product images directory and returns the public path.
func (s *DeviceSyncService) saveImage(device *mobileapi.Device) (string, error) {
	if device.ImageB64 == "" {
		return "", nil
	}
	data, err := base64.StdEncoding.DecodeString(device.ImageB64)
	if err != nil {
		return "", fmt.Errorf("invalid image payload: %w", err)
	}

	slug := slugPattern.ReplaceAllString(strings.ReplaceAll(strings.ToLower(device.Name), " ", "-"), "")
	filename := slug + ".jpg"
	if err := os.MkdirAll(s.imageDir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(s.imageDir, filename), data, 0o644); err != nil {
		return "", err
	}
	return "/uploads/product-images/" + filename, nil
}
