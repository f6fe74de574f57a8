package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pgg11/stock-manager-frontend/internal/service/reporting"
	"github.com/pgg11/stock-manager-frontend/internal/service/sales"
	"github.com/pgg11/stock-manager-frontend/pkg/clients/stockapi"
)

// writeServiceError maps service errors onto HTTP responses. Remote failures
// surface the server-supplied message when one exists, so the operator sees
// the same text the stock API produced.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, sales.ErrNoProductSelected),
		errors.Is(err, sales.ErrInvalidQuantity),
		errors.Is(err, sales.ErrEmptyDraft),
		errors.Is(err, reporting.ErrInvalidDateRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, sales.ErrProductAlreadyAdded):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, sales.ErrLineNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		var apiErr *stockapi.APIError
		if errors.As(err, &apiErr) {
			message := apiErr.Message
			if message == "" {
				message = "stock api request failed"
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
