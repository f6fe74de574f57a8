package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pgg11/stock-manager-frontend/internal/service/reporting"
)

const dateQueryLayout = "2006-01-02"

// ReportsHandler exposes the price history and profit report views.
type ReportsHandler struct {
	svc    *reporting.Service
	logger *zap.Logger
}

// NewReportsHandler constructs the HTTP handler adapter for reports.
func NewReportsHandler(svc *reporting.Service, logger *zap.Logger) *ReportsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportsHandler{svc: svc, logger: logger}
}

// PriceHistory lists the historical cost-vs-price records for one product.
func (h *ReportsHandler) PriceHistory(c *gin.Context) {
	productID, err := pathID(c, "productID")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	history, err := h.svc.PriceHistory(c.Request.Context(), productID)
	if err != nil {
		h.logger.Error("failed loading price history", zap.Int64("product_id", productID), zap.Error(err))
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

// Profits relays the server's profit reconstruction for a date range.
func (h *ReportsHandler) Profits(c *gin.Context) {
	start, err := time.Parse(dateQueryLayout, c.Query("start_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be provided as YYYY-MM-DD"})
		return
	}
	end, err := time.Parse(dateQueryLayout, c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be provided as YYYY-MM-DD"})
		return
	}

	report, err := h.svc.Profits(c.Request.Context(), start, end)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
