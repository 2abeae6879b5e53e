package handler

import (
	"github.com/labstack/echo/v4"

	"streambay/internal/usecase"
	"streambay/pkg/response"
)

type ChannelHandler struct {
	channelUseCase *usecase.ChannelUseCase
}

func NewChannelHandler(channelUseCase *usecase.ChannelUseCase) *ChannelHandler {
	return &ChannelHandler{
		channelUseCase: channelUseCase,
	}
}

type provisionChannelRequest struct {
	ListingID string `json:"listingId" validate:"required"`
	BuyerID   string `json:"buyerId" validate:"required"`
	SellerID  string `json:"sellerId" validate:"required"`
}

// ProvisionChannel creates or fetches the marketplace channel for a listing.
func (h *ChannelHandler) ProvisionChannel(c echo.Context) error {
	var req provisionChannelRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	channel, err := h.channelUseCase.ProvisionChannel(c.Request().Context(), usecase.ProvisionChannelInput{
		ListingID: req.ListingID,
		BuyerID:   req.BuyerID,
		SellerID:  req.SellerID,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, channel)
}
