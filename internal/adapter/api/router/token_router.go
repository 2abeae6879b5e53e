package router

import (
	"github.com/labstack/echo/v4"

	"streambay/internal/adapter/api/handler"
)

func SetupTokenRouter(e *echo.Echo, tokenHandler *handler.TokenHandler) {
	e.POST("/v1/tokens", tokenHandler.IssueToken) // POST /v1/tokens - Mint a chat session token
}
