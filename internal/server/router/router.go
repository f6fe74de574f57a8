package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pgg11/stock-manager-frontend/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(draft *handlers.DraftHandler, sales *handlers.SalesHandler, catalog *handlers.CatalogHandler, reports *handlers.ReportsHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/draft", draft.Get)
	r.POST("/draft/items", draft.AddLine)
	r.PUT("/draft/items/:productID", draft.UpdateLine)
	r.DELETE("/draft/items/:productID", draft.RemoveLine)
	r.DELETE("/draft", draft.Clear)
	r.POST("/draft/finalize", draft.Finalize)

	r.GET("/sales", sales.List)
	r.DELETE("/sales/:id", sales.Void)

	r.GET("/products", catalog.ListProducts)
	r.POST("/products", catalog.CreateProduct)
	r.PUT("/products/:id", catalog.UpdateProduct)
	r.POST("/catalog/refresh", catalog.Refresh)

	r.GET("/purchases", catalog.ListPurchases)
	r.POST("/purchases", catalog.CreatePurchase)
	r.DELETE("/purchases/:id", catalog.DeletePurchase)

	r.GET("/price-history/:productID", reports.PriceHistory)
	r.GET("/profits", reports.Profits)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
