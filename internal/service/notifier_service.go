package service

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/phonevilla/store_api/internal/config"
	"github.com/phonevilla/store_api/internal/models"
	"github.com/phonevilla/store_api/internal/repository"
	"github.com/phonevilla/store_api/pkg/telegram"
)

// NotifierService pushes order notifications to Telegram. Dispatch is
// best-effort and fire-and-forget: the HTTP response path never waits on
// it and delivery failures are logged, not retried.
type NotifierService struct {
	client        *telegram.Client
	settingsRepo  *repository.SettingsRepository
	fallback      config.TelegramConfig
	screenshotDir string
}

// NewNotifierService constructs a NotifierService. Credentials saved via the
// admin settings take precedence over the environment fallback.
func NewNotifierService(client *telegram.Client, settingsRepo *repository.SettingsRepository, fallback config.TelegramConfig, screenshotDir string) *NotifierService {
	return &NotifierService{
		client:        client,
		settingsRepo:  settingsRepo,
		fallback:      fallback,
		screenshotDir: screenshotDir,
	}
}

// DispatchOrder sends a single-order notification in the background.
func (s *NotifierService) DispatchOrder(order models.Order) {
	go s.sendOrder(order)
}

// DispatchBatch sends a bulk-order notification in the background.
func (s *NotifierService) DispatchBatch(orders []models.Order) {
	go s.sendBatch(orders)
}

func (s *NotifierService) sendOrder(order models.Order) {
	token, chatID, ok := s.credentials()
	if !ok {
		return
	}
	msg := toMessage(order)
	text := telegram.FormatOrder(msg)
	s.send(token, chatID, text, order.PaymentScreenshot, order.ID)
}

func (s *NotifierService) sendBatch(orders []models.Order) {
	if len(orders) == 0 {
		return
	}
	token, chatID, ok := s.credentials()
	if !ok {
		return
	}
	msgs := make([]telegram.OrderMessage, len(orders))
	for i, o := range orders {
		msgs[i] = toMessage(o)
	}
	text := telegram.FormatBatch(msgs)
	// Only the first order's screenshot is attached; the batch shares one upload.
	s.send(token, chatID, text, orders[0].PaymentScreenshot, orders[0].ID)
}

// send delivers the message, attaching the screenshot as a photo when the
// file is still readable and falling back to a plain message otherwise.
func (s *NotifierService) send(token, chatID, text, screenshot, orderID string) {
	ctx := context.Background()

	if screenshot != "" {
		photoPath := filepath.Join(s.screenshotDir, screenshot)
		if _, err := os.Stat(photoPath); err == nil {
			if err := s.client.SendPhoto(ctx, token, chatID, photoPath, text); err == nil {
				log.Info().Str("order_id", orderID).Msg("Order notification sent to Telegram")
				return
			} else {
				log.Error().Err(err).Str("order_id", orderID).Msg("Failed to send Telegram photo, retrying as message")
			}
		}
	}

	if err := s.client.SendMessage(ctx, token, chatID, text); err != nil {
		log.Error().Err(err).Str("order_id", orderID).Msg("Failed to send Telegram notification")
		return
	}
	log.Info().Str("order_id", orderID).Msg("Order notification sent to Telegram")
}

// credentials resolves the bot token and chat id, preferring admin settings
// over the environment fallback.
func (s *NotifierService) credentials() (string, string, bool) {
	token := s.fallback.BotToken
	chatID := s.fallback.ChatID
	if settings, err := s.settingsRepo.Get(); err == nil {
		if settings.TelegramBotToken != "" {
			token = settings.TelegramBotToken
		}
		if settings.TelegramChatID != "" {
			chatID = settings.TelegramChatID
		}
	}
	if token == "" || chatID == "" {
		log.Error().Msg("Telegram credentials not configured, skipping notification")
		return "", "", false
	}
	return token, chatID, true
}

func toMessage(o models.Order) telegram.OrderMessage {
	return telegram.OrderMessage{
		ID:               o.ID,
		CustomerName:     o.CustomerName,
		Phone:            o.Phone,
		Address:          o.Address,
		PinCode:          o.PinCode,
		ProductName:      o.ProductName,
		Storage:          o.Storage,
		Color:            o.Color,
		FullPrice:        o.FullPrice,
		PaidAmount:       o.PaidAmount,
		RemainingBalance: o.RemainingBalance,
		PaymentType:      string(o.PaymentType),
		Screenshot:       o.PaymentScreenshot,
		CreatedAt:        o.CreatedAt,
	}
}
