package app

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bankcore/payment-processor/internal/handlers"
)

func (a *App) RegisterRoutes(h *handlers.PaymentHandler) {
	app := a.Router.Group("/payments")
	app.POST("", h.CreatePayment)
	app.POST("/process", h.ProcessBatch)
	app.GET("/metrics", h.GetMetrics)
	app.POST("/metrics/reset", h.ResetMetrics)
	app.GET("/:id", h.GetPayment)

	a.Router.GET("/health", h.Health)
	a.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
