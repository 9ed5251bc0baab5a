package main

import (
	"context"
	"log"

	"payments-service/config"
	"payments-service/controllers"
	"payments-service/kafka"
	"payments-service/middleware"
	"payments-service/routes"
	"payments-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("[PaymentsService] failed to load config: ", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("[PaymentsService] failed to initialize logger: ", err)
	}
	defer logger.Sync()

	// Stripe + Kafka clients are created once and shared across requests.
	stripeSvc := services.NewStripeService(cfg.StripeSecretKey, cfg.StripeWebhookSecret, cfg.SuccessURL, cfg.CancelURL)
	producer := kafka.NewRelayProducer(cfg.KafkaBrokers, logger)
	defer producer.Close()

	consumer := services.NewSessionRequestConsumer(
		cfg.KafkaBrokers,
		cfg.SessionRequestTopic,
		cfg.SessionRequestGroup,
		stripeSvc,
		producer,
		logger,
	)
	defer consumer.Close()
	go consumer.Start(context.Background())

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	httpMetrics := middleware.NewHTTPMetrics("service")
	r.Use(httpMetrics.Middleware())

	pc := &controllers.PaymentController{
		Stripe:    stripeSvc,
		Publisher: producer,
		Logger:    logger,
	}
	routes.RegisterPaymentRoutes(r, pc)

	logger.Info("payments service running", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
