package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/phonevilla/store_api/internal/service"
	"github.com/phonevilla/store_api/internal/utils"
)

// CatalogHandler serves the public catalog and payment config endpoints.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GetConfig handles GET /api/config
func (h *CatalogHandler) GetConfig(c *gin.Context) {
	cfg, err := h.catalogService.Config()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load store configuration")
		return
	}
	utils.Success(c, 200, "Store configuration retrieved", cfg)
}

// GetProducts handles GET /api/products
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	products, err := h.catalogService.Products()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load products")
		return
	}
	utils.Success(c, 200, "Products retrieved", products)
}
