package models

// AdminSettings is the singleton record (ID is always "default") holding
// notification and payment display settings managed from the admin panel.
type AdminSettings struct {
	ID               string `json:"id"`
	TelegramBotToken string `json:"telegramBotToken,omitempty"`
	TelegramChatID   string `json:"telegramChatId,omitempty"`
	WhatsAppNumber   string `json:"whatsappNumber,omitempty"`
	UpiID            string `json:"upiId,omitempty"`
	UpiQrImage       string `json:"upiQrImage,omitempty"`
	UpdatedAt        string `json:"updatedAt"`
}

// AdminSettingsUpdate is a partial update; nil fields are left untouched.
type AdminSettingsUpdate struct {
	TelegramBotToken *string `json:"telegramBotToken"`
	TelegramChatID   *string `json:"telegramChatId"`
	WhatsAppNumber   *string `json:"whatsappNumber"`
	UpiID            *string `json:"upiId"`
	UpiQrImage       *string `json:"upiQrImage"`
}
