package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdbook/internal/server/handlers"
)

// Handlers groups the endpoint handlers wired into the engine.
type Handlers struct {
	Cattle  *handlers.CattleHandler
	Milk    *handlers.MilkHandler
	Weight  *handlers.WeightHandler
	Medical *handlers.MedicalHandler
	Stream  *handlers.StreamHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	api.GET("/cattle", h.Cattle.List)
	api.GET("/cattle/summary", h.Cattle.Summary)
	api.POST("/cattle", h.Cattle.Create)
	api.PUT("/cattle/:id", h.Cattle.Update)
	api.DELETE("/cattle/:id", h.Cattle.Delete)

	api.GET("/milk", h.Milk.List)
	api.GET("/milk/daily", h.Milk.Daily)
	api.POST("/milk", h.Milk.Create)
	api.PUT("/milk/:id", h.Milk.Update)
	api.DELETE("/milk/:id", h.Milk.Delete)

	api.GET("/weight", h.Weight.List)
	api.GET("/weight/evolution/:cattleId", h.Weight.Evolution)
	api.POST("/weight", h.Weight.Create)
	api.PUT("/weight/:id", h.Weight.Update)
	api.DELETE("/weight/:id", h.Weight.Delete)

	api.GET("/medical", h.Medical.List)
	api.POST("/medical", h.Medical.Create)
	api.PUT("/medical/:id", h.Medical.Update)
	api.DELETE("/medical/:id", h.Medical.Delete)

	api.POST("/maintenance/orphans/cleanup", h.Cattle.CleanupOrphans)

	api.GET("/stream/cattle", h.Stream.Cattle)
	api.GET("/stream/milk", h.Stream.Milk)
	api.GET("/stream/weight", h.Stream.Weight)
	api.GET("/stream/medical", h.Stream.Medical)

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
