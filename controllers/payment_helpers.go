package controllers

import (
	"context"
	"net/http"
	"time"

	"payments-service/apperrors"
	"payments-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const orderIDMetadataKey = services.OrderIDMetadataKey

const publishTimeout = 10 * time.Second

// respondError logs the failure and writes the taxonomy error as JSON.
func (pc *PaymentController) respondError(c *gin.Context, appErr *apperrors.Error) {
	if appErr.Code >= http.StatusInternalServerError {
		pc.Logger.Error(appErr.Message, zap.Error(appErr.Err))
	} else {
		pc.Logger.Warn(appErr.Message, zap.Error(appErr.Err))
	}
	c.JSON(appErr.Code, gin.H{"error": appErr.Message})
}

// publishAsync hands the message to the bus without holding up the HTTP
// response; the webhook only acknowledges receipt, not downstream processing.
// Publish failures are logged and dropped (at-most-once from this side).
func (pc *PaymentController) publishAsync(cmd, key string, payload any) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := pc.Publisher.Publish(ctx, cmd, key, payload); err != nil {
			pc.Logger.Error("failed to relay event",
				zap.String("cmd", cmd),
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}()
}
