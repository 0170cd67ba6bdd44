package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/phonevilla/store_api/internal/service"
)

// DeviceSyncWorker periodically refreshes catalog imagery from MobileAPI.dev.
type DeviceSyncWorker struct {
	syncService *service.DeviceSyncService
	interval    time.Duration
}

// NewDeviceSyncWorker constructs a DeviceSyncWorker.
func NewDeviceSyncWorker(syncService *service.DeviceSyncService, interval time.Duration) *DeviceSyncWorker {
	return &DeviceSyncWorker{
		syncService: syncService,
		interval:    interval,
	}
}

// Start begins the periodic sync loop and listens for context cancellation.
func (w *DeviceSyncWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting device sync worker")

	// Run immediately on start
	w.run(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Device sync worker stopped")
			return
		}
	}
}

func (w *DeviceSyncWorker) run(ctx context.Context) {
	log.Info().Msg("Syncing catalog from MobileAPI.dev...")

	start := time.Now()
	if err := w.syncService.SyncCatalog(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to sync catalog")
		return
	}

	log.Info().Dur("duration", time.Since(start)).Msg("Catalog sync completed")
}
