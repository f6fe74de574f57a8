package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pgg11/stock-manager-frontend/internal/service/sales"
)

// SalesHandler exposes the sale history view and the void action.
type SalesHandler struct {
	svc    *sales.Service
	logger *zap.Logger
}

// NewSalesHandler constructs the HTTP handler adapter for sale history.
func NewSalesHandler(svc *sales.Service, logger *zap.Logger) *SalesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SalesHandler{svc: svc, logger: logger}
}

// List returns past sales with client-recomputed totals.
func (h *SalesHandler) List(c *gin.Context) {
	views, err := h.svc.History(c.Request.Context())
	if err != nil {
		h.logger.Error("failed loading sale history", zap.Error(err))
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// Void reverses a completed sale. On failure the history stays as it was.
func (h *SalesHandler) Void(c *gin.Context) {
	saleID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sale id"})
		return
	}

	if err := h.svc.Void(c.Request.Context(), saleID); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
