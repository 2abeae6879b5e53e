package router

import (
	"github.com/labstack/echo/v4"

	"streambay/internal/adapter/api/handler"
)

func SetupTicketRouter(e *echo.Echo, ticketHandler *handler.TicketHandler) {
	ticketGroup := e.Group("/v1/tickets")

	ticketGroup.GET("", ticketHandler.ListTickets)                  // GET /v1/tickets - Open ticket dashboard
	ticketGroup.GET("/:id/comments", ticketHandler.GetTicketComments) // GET /v1/tickets/:id/comments - Comments + requester id
	ticketGroup.POST("/:id/comments", ticketHandler.PostComment)      // POST /v1/tickets/:id/comments - Relay customer comment
}
