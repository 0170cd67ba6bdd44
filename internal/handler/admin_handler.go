package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/phonevilla/store_api/internal/models"
	"github.com/phonevilla/store_api/internal/service"
	"github.com/phonevilla/store_api/internal/utils"
)

// AdminHandler serves PIN verification, admin settings, price overrides
// and the UPI QR upload.
type AdminHandler struct {
	authService     *service.AdminAuthService
	settingsService *service.SettingsService
	catalogService  *service.CatalogService
	qrDir           string
	maxQRSize       int64
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(authService *service.AdminAuthService, settingsService *service.SettingsService, catalogService *service.CatalogService, qrDir string, maxQRSize int64) *AdminHandler {
	return &AdminHandler{
		authService:     authService,
		settingsService: settingsService,
		catalogService:  catalogService,
		qrDir:           qrDir,
		maxQRSize:       maxQRSize,
	}
}

// verifyPINRequest is the POST /api/admin/verify-pin payload.
type verifyPINRequest struct {
	PIN string `json:"pin" binding:"required"`
}

// VerifyPIN handles POST /api/admin/verify-pin
func (h *AdminHandler) VerifyPIN(c *gin.Context) {
	var req verifyPINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "PIN is required")
		return
	}

	token, err := h.authService.VerifyPIN(req.PIN)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidPIN) {
			utils.Error(c, 401, "INVALID_PIN", "Invalid PIN")
			return
		}
		log.Error().Err(err).Msg("Failed to verify PIN")
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to verify PIN")
		return
	}

	utils.Success(c, 200, "PIN verified", gin.H{"token": token})
}

// GetSettings handles GET /api/admin/settings
func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.Get()
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch admin settings")
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to fetch admin settings")
		return
	}
	utils.Success(c, 200, "Settings retrieved", settings)
}

// UpdateSettings handles POST /api/admin/settings
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var upd models.AdminSettingsUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid settings data")
		return
	}

	settings, err := h.settingsService.Update(&upd)
	if err != nil {
		log.Error().Err(err).Msg("Failed to update admin settings")
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update admin settings")
		return
	}
	utils.Success(c, 200, "Settings updated", settings)
}

// ListPrices handles GET /api/admin/product-prices
func (h *AdminHandler) ListPrices(c *gin.Context) {
	utils.Success(c, 200, "Price overrides retrieved", h.catalogService.Overrides())
}

// SetPrice handles POST /api/admin/product-prices
func (h *AdminHandler) SetPrice(c *gin.Context) {
	var override models.PriceOverride
	if err := c.ShouldBindJSON(&override); err != nil || override.ProductID == "" || override.Storage == "" {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid price data")
		return
	}

	if err := h.catalogService.SetOverride(override); err != nil {
		var verr *utils.ValidationError
		switch {
		case errors.As(err, &verr):
			utils.ValidationFailed(c, "Invalid price data", verr.Fields)
		case errors.Is(err, utils.ErrProductNotFound):
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		case errors.Is(err, utils.ErrStorageOptionNotFound):
			utils.Error(c, 404, "STORAGE_OPTION_NOT_FOUND", "Storage option not found")
		default:
			log.Error().Err(err).Msg("Failed to update product price")
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update product price")
		}
		return
	}

	utils.Success(c, 200, "Price override saved", override)
}

// DeletePrice handles DELETE /api/admin/product-prices/:productId/:storage
func (h *AdminHandler) DeletePrice(c *gin.Context) {
	err := h.catalogService.DeleteOverride(c.Param("productId"), c.Param("storage"))
	if err != nil {
		if errors.Is(err, utils.ErrOverrideNotFound) {
			utils.Error(c, 404, "PRICE_OVERRIDE_NOT_FOUND", "Price override not found")
			return
		}
		log.Error().Err(err).Msg("Failed to delete price override")
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete price override")
		return
	}
	c.Status(204)
}

// UploadQR handles POST /api/admin/qr-upload (multipart, field "qr").
func (h *AdminHandler) UploadQR(c *gin.Context) {
	filename, err := utils.SaveUploadedImageAs(c, "qr", h.qrDir, "upi-qr", h.maxQRSize)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrFileMissing):
			utils.Error(c, 400, "FILE_REQUIRED", "QR code image is required")
		case errors.Is(err, utils.ErrFileTooLarge):
			utils.Error(c, 400, "FILE_TOO_LARGE", "QR code image exceeds the size limit")
		case errors.Is(err, utils.ErrNotAnImage):
			utils.Error(c, 400, "INVALID_FILE_TYPE", "Only image files are allowed")
		default:
			log.Error().Err(err).Msg("Failed to store QR code")
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to store QR code")
		}
		return
	}

	qrPath := "/uploads/qr-codes/" + filename
	if _, err := h.settingsService.Update(&models.AdminSettingsUpdate{UpiQrImage: &qrPath}); err != nil {
		log.Error().Err(err).Msg("Failed to persist QR code path")
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to persist QR code path")
		return
	}

	utils.Success(c, 200, "QR code uploaded", gin.H{"upiQrImage": qrPath})
}
