package usecase

import (
	"context"
	"fmt"

	"streambay/internal/domain/entity"
	"streambay/pkg/errors"
	"streambay/pkg/logger"
)

type ChannelUseCase struct {
	chat ChatProvider
}

func NewChannelUseCase(chat ChatProvider) *ChannelUseCase {
	return &ChannelUseCase{
		chat: chat,
	}
}

type ProvisionChannelInput struct {
	ListingID string
	BuyerID   string
	SellerID  string
}

type ChannelResponse struct {
	ChannelID   string          `json:"channelId"`
	ChannelData *entity.Channel `json:"channelData"`
}

// MarketplaceChannelID derives the channel id from the business keys. Any
// caller with the same three inputs reaches the same channel; the template is
// the rendezvous, there is no lookup table.
func MarketplaceChannelID(listingID, buyerID, sellerID string) string {
	return fmt.Sprintf("listing-%s-%s-%s", listingID, buyerID, sellerID)
}

// ProvisionChannel upserts both parties and creates (or fetches) the listing
// channel, seeding its metadata with the business keys and an empty ticket id.
func (uc *ChannelUseCase) ProvisionChannel(ctx context.Context, input ProvisionChannelInput) (*ChannelResponse, error) {
	if !uc.chat.Configured() {
		return nil, errors.NotConfigured("Stream Chat credentials")
	}

	users := []entity.ChatUser{
		{ID: input.BuyerID, Name: fmt.Sprintf("Buyer %s", input.BuyerID), Role: "user"},
		{ID: input.SellerID, Name: fmt.Sprintf("Seller %s", input.SellerID), Role: "user"},
	}
	if err := uc.chat.UpsertUsers(ctx, users); err != nil {
		return nil, err
	}

	channelID := MarketplaceChannelID(input.ListingID, input.BuyerID, input.SellerID)

	channel, err := uc.chat.GetOrCreateChannel(
		ctx,
		channelID,
		fmt.Sprintf("Listing #%s", input.ListingID),
		[]string{input.BuyerID, input.SellerID},
		input.BuyerID,
		entity.ChannelMetadata{
			ListingID: input.ListingID,
			BuyerID:   input.BuyerID,
			SellerID:  input.SellerID,
		},
	)
	if err != nil {
		return nil, err
	}

	logger.Info("Provisioned marketplace channel %s", channelID)

	return &ChannelResponse{
		ChannelID:   channelID,
		ChannelData: channel,
	}, nil
}
