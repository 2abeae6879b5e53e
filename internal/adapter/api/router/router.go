package router

import (
	"github.com/labstack/echo/v4"

	"streambay/internal/adapter/api/handler"
)

func Setup(
	e *echo.Echo,
	tokenHandler *handler.TokenHandler,
	channelHandler *handler.ChannelHandler,
	escalationHandler *handler.EscalationHandler,
	ticketHandler *handler.TicketHandler,
	webhookHandler *handler.WebhookHandler,
) {
	SetupHealthRouter(e)
	SetupTokenRouter(e, tokenHandler)
	SetupChannelRouter(e, channelHandler)
	SetupEscalationRouter(e, escalationHandler)
	SetupTicketRouter(e, ticketHandler)
	SetupWebhookRouter(e, webhookHandler)
}
