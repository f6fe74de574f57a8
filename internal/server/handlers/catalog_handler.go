package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pgg11/stock-manager-frontend/internal/domain/models"
	"github.com/pgg11/stock-manager-frontend/internal/service/catalog"
)

// productView decorates a snapshot product with its advisory unit price.
// EstimatedUnitPrice is nil when the product has no batches.
type productView struct {
	models.Product
	EstimatedUnitPrice *float64 `json:"estimated_unit_price"`
}

// CatalogHandler exposes the catalog snapshot and the product and purchase
// passthrough operations.
type CatalogHandler struct {
	svc    *catalog.Service
	logger *zap.Logger
}

// NewCatalogHandler constructs the HTTP handler adapter for the catalog.
func NewCatalogHandler(svc *catalog.Service, logger *zap.Logger) *CatalogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogHandler{svc: svc, logger: logger}
}

// ListProducts returns the current snapshot with estimated unit prices.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products := h.svc.Products()
	views := make([]productView, 0, len(products))
	for _, p := range products {
		view := productView{Product: p}
		if price, ok := p.EstimatedUnitPrice(); ok {
			view.EstimatedUnitPrice = &price
		}
		views = append(views, view)
	}

	c.JSON(http.StatusOK, views)
}

// Refresh forces a snapshot refetch from the remote API.
func (h *CatalogHandler) Refresh(c *gin.Context) {
	if err := h.svc.Refresh(c.Request.Context()); err != nil {
		h.logger.Error("manual catalog refresh failed", zap.Error(err))
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"refreshed_at": h.svc.Store().RefreshedAt()})
}

// CreateProduct registers a new product with the remote API.
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create-product payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	product, err := h.svc.CreateProduct(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// UpdateProduct edits an existing product.
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update-product payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	product, err := h.svc.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// ListPurchases returns the purchase history.
func (h *CatalogHandler) ListPurchases(c *gin.Context) {
	purchases, err := h.svc.ListPurchases(c.Request.Context())
	if err != nil {
		h.logger.Error("failed loading purchases", zap.Error(err))
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, purchases)
}

// CreatePurchase registers a stock acquisition.
func (h *CatalogHandler) CreatePurchase(c *gin.Context) {
	var req models.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create-purchase payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	purchase, err := h.svc.CreatePurchase(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, purchase)
}

// DeletePurchase removes a purchase record.
func (h *CatalogHandler) DeletePurchase(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid purchase id"})
		return
	}

	if err := h.svc.DeletePurchase(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
