package usecase

import (
	"context"

	"streambay/pkg/errors"
	"streambay/pkg/logger"
)

// WebhookUseCase relays ticket-comment notifications from the ticketing
// provider into the chat channel that references the ticket. Delivery is
// at-least-once from the provider's side, so everything past authentication
// must acknowledge rather than error; a non-2xx answer only triggers a
// redelivery storm.
type WebhookUseCase struct {
	chat           ChatProvider
	webhookSecret  string
	supportAgentID string
}

func NewWebhookUseCase(chat ChatProvider, webhookSecret, supportAgentID string) *WebhookUseCase {
	return &WebhookUseCase{
		chat:           chat,
		webhookSecret:  webhookSecret,
		supportAgentID: supportAgentID,
	}
}

// VerifySecret checks the shared-secret header. This is the one webhook
// failure that rejects instead of acknowledging.
func (uc *WebhookUseCase) VerifySecret(received string) error {
	if uc.webhookSecret == "" {
		return errors.NotConfigured("Webhook secret")
	}
	if received != uc.webhookSecret {
		return errors.Unauthorized("Invalid webhook secret", nil)
	}
	return nil
}

type TicketCommentEvent struct {
	TicketID    string
	CommentBody string
	AuthorName  string
}

type WebhookResult struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	ChannelID string `json:"channelId,omitempty"`
	TicketID  string `json:"ticketId,omitempty"`
}

// RelayTicketComment finds the channel whose metadata references the ticket
// and posts the comment there as the support identity. Every outcome is an
// acknowledgment; the caller always answers 200.
func (uc *WebhookUseCase) RelayTicketComment(ctx context.Context, event TicketCommentEvent) *WebhookResult {
	if event.TicketID == "" || event.CommentBody == "" {
		logger.Warn("Webhook payload missing ticket_id or comment_body, ignoring")
		return &WebhookResult{Status: "ignored", Message: "Missing required fields"}
	}

	if !uc.chat.Configured() {
		logger.Error("Webhook received but Stream Chat credentials not configured")
		return &WebhookResult{Status: "error", Message: "Chat provider not configured"}
	}

	channel, err := uc.chat.FindChannelByTicketID(ctx, event.TicketID)
	if err != nil {
		logger.Error("Webhook channel lookup failed for ticket %s: %v", event.TicketID, err)
		return &WebhookResult{Status: "error", Message: err.Error()}
	}

	if channel == nil {
		logger.Info("No channel references ticket %s, acknowledging as no-op", event.TicketID)
		return &WebhookResult{Status: "ok", Message: "No matching channel found"}
	}

	if err := uc.chat.SendMessage(ctx, channel.ID, uc.supportAgentID, event.CommentBody); err != nil {
		logger.Error("Webhook relay to channel %s failed: %v", channel.ID, err)
		return &WebhookResult{Status: "error", Message: err.Error()}
	}

	logger.Info("Relayed ticket %s comment to channel %s", event.TicketID, channel.ID)

	return &WebhookResult{
		Status:    "ok",
		ChannelID: channel.ID,
		TicketID:  event.TicketID,
	}
}
