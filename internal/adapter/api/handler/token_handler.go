package handler

import (
	"github.com/labstack/echo/v4"

	"streambay/internal/usecase"
	"streambay/pkg/response"
)

type TokenHandler struct {
	tokenUseCase *usecase.TokenUseCase
}

func NewTokenHandler(tokenUseCase *usecase.TokenUseCase) *TokenHandler {
	return &TokenHandler{
		tokenUseCase: tokenUseCase,
	}
}

type issueTokenRequest struct {
	UserID string `json:"userId" validate:"required"`
	Name   string `json:"name" validate:"required"`
}

// IssueToken upserts the chat user and returns a session token for them.
func (h *TokenHandler) IssueToken(c echo.Context) error {
	var req issueTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	token, err := h.tokenUseCase.IssueToken(c.Request().Context(), usecase.IssueTokenInput{
		UserID: req.UserID,
		Name:   req.Name,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, token)
}
