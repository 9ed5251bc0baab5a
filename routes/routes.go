package routes

import (
	"payments-service/controllers"
	"payments-service/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterPaymentRoutes(r *gin.Engine, pc *controllers.PaymentController) {
	payments := r.Group("/payments")
	payments.POST("/create-payment-session", pc.CreatePaymentSession)
	payments.GET("/success", pc.Success)
	payments.GET("/cancel", pc.Cancel)

	// Stripe webhook needs the raw body; no middleware may touch it.
	payments.POST("/webhook", pc.StripeWebhook)

	r.GET("/metrics", gin.WrapH(middleware.MetricsHandler()))
}
