package handler

import (
	"github.com/labstack/echo/v4"

	"streambay/internal/usecase"
	"streambay/pkg/response"
)

type EscalationHandler struct {
	escalationUseCase *usecase.EscalationUseCase
}

func NewEscalationHandler(escalationUseCase *usecase.EscalationUseCase) *EscalationHandler {
	return &EscalationHandler{
		escalationUseCase: escalationUseCase,
	}
}

type escalateRequest struct {
	ChannelID string `json:"channelId" validate:"required"`
	BuyerID   string `json:"buyerId" validate:"required"`
	ListingID string `json:"listingId" validate:"required"`
}

type supportChannelRequest struct {
	OriginalChannelID   string `json:"originalChannelId" validate:"required"`
	CustomerID          string `json:"customerId" validate:"required"`
	CustomerEmail       string `json:"customerEmail,omitempty" validate:"omitempty,email"`
	ConversationSummary string `json:"conversationSummary,omitempty"`
}

// Escalate runs the tag-search escalation: reuse an open ticket for this
// conversation or create one, then link it to the channel.
func (h *EscalationHandler) Escalate(c echo.Context) error {
	var req escalateRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.escalationUseCase.Escalate(c.Request().Context(), usecase.EscalateInput{
		ChannelID: req.ChannelID,
		BuyerID:   req.BuyerID,
		ListingID: req.ListingID,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

// EscalateToSupportChannel opens a dedicated support channel for the customer.
func (h *EscalationHandler) EscalateToSupportChannel(c echo.Context) error {
	var req supportChannelRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.escalationUseCase.EscalateToSupportChannel(c.Request().Context(), usecase.SupportChannelInput{
		OriginalChannelID:   req.OriginalChannelID,
		CustomerID:          req.CustomerID,
		CustomerEmail:       req.CustomerEmail,
		ConversationSummary: req.ConversationSummary,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}
