package router

import (
	"github.com/labstack/echo/v4"

	"streambay/internal/adapter/api/handler"
)

func SetupWebhookRouter(e *echo.Echo, webhookHandler *handler.WebhookHandler) {
	e.POST("/v1/webhooks/zendesk", webhookHandler.HandleTicketComment) // POST /v1/webhooks/zendesk - Inbound ticket-comment relay
}
