package router

import (
	"github.com/labstack/echo/v4"

	"streambay/internal/adapter/api/handler"
)

func SetupChannelRouter(e *echo.Echo, channelHandler *handler.ChannelHandler) {
	e.POST("/v1/channels/marketplace", channelHandler.ProvisionChannel) // POST /v1/channels/marketplace - Create/fetch listing channel
}
