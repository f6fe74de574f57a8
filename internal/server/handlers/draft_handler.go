package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pgg11/stock-manager-frontend/internal/domain/models"
	"github.com/pgg11/stock-manager-frontend/internal/service/sales"
)

// DraftHandler exposes the sale draft operations over HTTP.
type DraftHandler struct {
	svc    *sales.Service
	logger *zap.Logger
}

// NewDraftHandler constructs the HTTP handler adapter for the draft.
func NewDraftHandler(svc *sales.Service, logger *zap.Logger) *DraftHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DraftHandler{svc: svc, logger: logger}
}

// Get renders the current draft with per-line estimates.
func (h *DraftHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Draft())
}

// AddLine appends one product line to the draft.
func (h *DraftHandler) AddLine(c *gin.Context) {
	var req models.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid add-line payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.AddLine(req.ProductID, req.Quantity); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.svc.Draft())
}

// UpdateLine replaces the quantity text of one draft line. Malformed text is
// accepted here; it only blocks at finalize.
func (h *DraftHandler) UpdateLine(c *gin.Context) {
	productID, err := pathID(c, "productID")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var req models.UpdateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update-line payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.UpdateLine(productID, req.Quantity); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.svc.Draft())
}

// RemoveLine deletes one draft line; removing an absent line succeeds.
func (h *DraftHandler) RemoveLine(c *gin.Context) {
	productID, err := pathID(c, "productID")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	h.svc.RemoveLine(productID)
	c.JSON(http.StatusOK, h.svc.Draft())
}

// Clear discards the whole draft.
func (h *DraftHandler) Clear(c *gin.Context) {
	h.svc.ClearDraft()
	c.Status(http.StatusNoContent)
}

// Finalize submits the draft as one atomic sale. On failure the draft stays
// intact so the operator can retry without re-entering lines.
func (h *DraftHandler) Finalize(c *gin.Context) {
	sale, err := h.svc.Finalize(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sale)
}

func pathID(c *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
