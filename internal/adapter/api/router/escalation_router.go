package router

import (
	"github.com/labstack/echo/v4"

	"streambay/internal/adapter/api/handler"
)

func SetupEscalationRouter(e *echo.Echo, escalationHandler *handler.EscalationHandler) {
	escalationGroup := e.Group("/v1/escalations")

	escalationGroup.POST("", escalationHandler.Escalate)                                // POST /v1/escalations - Ticket-search escalation
	escalationGroup.POST("/support-channel", escalationHandler.EscalateToSupportChannel) // POST /v1/escalations/support-channel - Dedicated support channel
}
