package handler

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/phonevilla/store_api/internal/models"
	"github.com/phonevilla/store_api/internal/repository"
	"github.com/phonevilla/store_api/internal/service"
	"github.com/phonevilla/store_api/internal/utils"
)

// ProductAdminHandler serves admin product CRUD. Create and update are
// multipart requests: the product payload travels in the "productData"
// form field as JSON so an optional image can ride along in "image".
type ProductAdminHandler struct {
	catalogService *service.CatalogService
	imageDir       string
	maxSize        int64
}

// NewProductAdminHandler constructs a ProductAdminHandler.
func NewProductAdminHandler(catalogService *service.CatalogService, imageDir string, maxSize int64) *ProductAdminHandler {
	return &ProductAdminHandler{catalogService: catalogService, imageDir: imageDir, maxSize: maxSize}
}

// CreateProduct handles POST /api/admin/products
func (h *ProductAdminHandler) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := json.Unmarshal([]byte(c.PostForm("productData")), &product); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid product data")
		return
	}

	if imagePath, ok := h.saveImage(c); ok {
		product.ImagePath = imagePath
	} else if c.IsAborted() {
		return
	}

	created, err := h.catalogService.AddProduct(product)
	if err != nil {
		h.writeProductError(c, err, "Failed to add product")
		return
	}
	utils.Success(c, 201, "Product created", created)
}

// UpdateProduct handles PUT /api/admin/products/:productId
func (h *ProductAdminHandler) UpdateProduct(c *gin.Context) {
	var upd repository.ProductUpdate
	if err := json.Unmarshal([]byte(c.PostForm("productData")), &upd); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid product data")
		return
	}

	if imagePath, ok := h.saveImage(c); ok {
		upd.ImagePath = &imagePath
	} else if c.IsAborted() {
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Param("productId"), &upd)
	if err != nil {
		h.writeProductError(c, err, "Failed to update product")
		return
	}
	utils.Success(c, 200, "Product updated", product)
}

// DeleteProduct handles DELETE /api/admin/products/:productId
func (h *ProductAdminHandler) DeleteProduct(c *gin.Context) {
	if err := h.catalogService.DeleteProduct(c.Param("productId")); err != nil {
		if errors.Is(err, utils.ErrProductNotFound) {
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
			return
		}
		log.Error().Err(err).Msg("Failed to delete product")
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete product")
		return
	}
	c.Status(204)
}

// saveImage stores the optional product image. The second return value is
// false when no image was sent; an invalid image aborts with a 400.
func (h *ProductAdminHandler) saveImage(c *gin.Context) (string, bool) {
	filename, err := utils.SaveUploadedImage(c, "image", h.imageDir, "product", h.maxSize)
	if err != nil {
		if errors.Is(err, utils.ErrFileMissing) {
			return "", false
		}
		switch {
		case errors.Is(err, utils.ErrFileTooLarge):
			utils.Error(c, 400, "FILE_TOO_LARGE", "Product image exceeds the size limit")
		case errors.Is(err, utils.ErrNotAnImage):
			utils.Error(c, 400, "INVALID_FILE_TYPE", "Only image files are allowed")
		default:
			log.Error().Err(err).Msg("Failed to store product image")
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to store product image")
		}
		c.Abort()
		return "", false
	}
	return "/uploads/product-images/" + filename, true
}

func (h *ProductAdminHandler) writeProductError(c *gin.Context, err error, fallback string) {
	var verr *utils.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.ValidationFailed(c, "Invalid product data", verr.Fields)
	case errors.Is(err, utils.ErrProductNotFound):
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
	case errors.Is(err, utils.ErrDuplicateProduct):
		utils.Error(c, 400, "DUPLICATE_PRODUCT", "Product id already exists")
	default:
		log.Error().Err(err).Msg(fallback)
		utils.Error(c, 500, "INTERNAL_ERROR", fallback)
	}
}
