package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"streambay/internal/domain/entity"
	"streambay/internal/infrastructure/ratelimit"
	"streambay/pkg/errors"
	"streambay/pkg/logger"
)

// transcriptLimit is how many of the channel's most recent messages are copied
// into a new ticket for agent context.
const transcriptLimit = 50

type EscalationUseCase struct {
	chat           ChatProvider
	tickets        TicketProvider
	supportAgentID string
	rateLimiter    *ratelimit.RateLimiter
}

func NewEscalationUseCase(chat ChatProvider, tickets TicketProvider, supportAgentID string) *EscalationUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &EscalationUseCase{
		chat:           chat,
		tickets:        tickets,
		supportAgentID: supportAgentID,
		rateLimiter:    rateLimiter,
	}
}

type EscalateInput struct {
	ChannelID string
	BuyerID   string
	ListingID string
}

type EscalateResult struct {
	TicketID  int64  `json:"ticketId"`
	TicketURL string `json:"ticketUrl"`
	ChannelID string `json:"channelId"`
	Status    string `json:"status"`
	Reused    bool   `json:"reused"`
}

func formatTranscript(messages []entity.Message) string {
	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		author := msg.AuthorName
		if author == "" {
			author = msg.AuthorID
		}
		if author == "" {
			author = "Unknown"
		}
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", msg.CreatedAt.Format("2006-01-02 15:04:05"), author, msg.Text))
	}
	return strings.Join(lines, "\n")
}

// Escalate associates the channel with a support ticket: it reuses an open
// ticket tagged with this conversation's identity when one exists, creates one
// seeded with a transcript otherwise, and writes the ticket id back onto the
// channel metadata.
//
// The tag search is the only deduplication mechanism. Two concurrent
// escalations for the same (listing, buyer) pair can both miss it and both
// create a ticket; that duplicate is accepted rather than paying for a lock.
func (uc *EscalationUseCase) Escalate(ctx context.Context, input EscalateInput) (*EscalateResult, error) {
	if allowed, waitTime := uc.rateLimiter.Allow(input.BuyerID, "escalate"); !allowed {
		logger.Warn("Escalation rate limited for buyer %s, wait %v", input.BuyerID, waitTime)
		return nil, errors.TooManyRequests("Too many escalation attempts", waitTime)
	}

	if !uc.tickets.Configured() {
		return nil, errors.NotConfigured("Zendesk credentials")
	}
	if !uc.chat.Configured() {
		return nil, errors.NotConfigured("Stream Chat credentials")
	}

	query := fmt.Sprintf("type:ticket status<solved tags:listing_%s tags:buyer_%s", input.ListingID, input.BuyerID)

	var ticket *entity.Ticket
	reused := false

	// Search failure is non-fatal: escalation availability matters more than
	// perfect dedup, so a failed search falls through to create.
	existing, err := uc.tickets.SearchTickets(ctx, query)
	if err != nil {
		logger.Warn("Ticket search failed, proceeding to create: %v", err)
	} else if len(existing) > 0 {
		// Results arrive most-recently-updated first; the first match wins.
		ticket = &existing[0]
		reused = true
		logger.Info("Reusing existing ticket %d for channel %s", ticket.ID, input.ChannelID)
	}

	if ticket == nil {
		messages, err := uc.chat.ChannelMessages(ctx, input.ChannelID, transcriptLimit)
		if err != nil {
			return nil, err
		}

		description := fmt.Sprintf(
			"Customer %s escalated chat from channel %s. Please review the conversation and assist the customer.\n\nChat History:\n\n%s",
			input.BuyerID, input.ChannelID, formatTranscript(messages),
		)

		ticket, err = uc.tickets.CreateTicket(ctx, entity.TicketDraft{
			Subject:  fmt.Sprintf("Escalated chat from StreamBay – listing %s", input.ListingID),
			Body:     description,
			Priority: "normal",
			Status:   "open",
			Tags: []string{
				fmt.Sprintf("listing_%s", input.ListingID),
				fmt.Sprintf("buyer_%s", input.BuyerID),
				fmt.Sprintf("channel_%s", input.ChannelID),
				"streambay",
				"marketplace",
			},
		})
		if err != nil {
			return nil, err
		}
	}

	if err := uc.chat.SetChannelTicketID(ctx, input.ChannelID, strconv.FormatInt(ticket.ID, 10)); err != nil {
		return nil, err
	}

	// Non-fatal: the escalation stands even if the agent cannot join the channel.
	if uc.supportAgentID != "" {
		if err := uc.chat.AddMembers(ctx, input.ChannelID, []string{uc.supportAgentID}); err != nil {
			logger.Warn("Failed to add support agent to channel %s: %v", input.ChannelID, err)
		}
	}

	return &EscalateResult{
		TicketID:  ticket.ID,
		TicketURL: uc.tickets.TicketURL(ticket.ID),
		ChannelID: input.ChannelID,
		Status:    "ok",
		Reused:    reused,
	}, nil
}

type SupportChannelInput struct {
	OriginalChannelID   string
	CustomerID          string
	CustomerEmail       string
	ConversationSummary string
}

type SupportChannelResult struct {
	SupportChannelID string `json:"supportChannelId"`
	SupportAgentID   string `json:"supportAgentId"`
	TicketID         int64  `json:"ticketId,omitempty"`
	TicketURL        string `json:"ticketUrl,omitempty"`
}

// EscalateToSupportChannel is the channel-per-escalation variant: it opens a
// dedicated support-{channelId} channel between the customer and the fixed
// support identity. Ticket creation here is best-effort and only attempted
// when the customer left an email.
func (uc *EscalationUseCase) EscalateToSupportChannel(ctx context.Context, input SupportChannelInput) (*SupportChannelResult, error) {
	if !uc.chat.Configured() {
		return nil, errors.NotConfigured("Stream Chat credentials")
	}

	var ticket *entity.Ticket
	if input.CustomerEmail != "" && uc.tickets.Configured() {
		summary := input.ConversationSummary
		if summary == "" {
			summary = fmt.Sprintf(
				"Customer %s has requested support for their marketplace conversation.\n\nChannel ID: %s",
				input.CustomerID, input.OriginalChannelID,
			)
		}

		created, err := uc.tickets.CreateTicket(ctx, entity.TicketDraft{
			Subject:  fmt.Sprintf("StreamBay Support Request – Order %s", input.OriginalChannelID),
			Body:     summary,
			Priority: "normal",
			Status:   "open",
			Tags:     []string{fmt.Sprintf("channel_%s", input.OriginalChannelID), "streambay", "chat-escalation"},
		})
		if err != nil {
			logger.Warn("Ticket creation failed, continuing with chat escalation: %v", err)
		} else {
			ticket = created
		}
	}

	users := []entity.ChatUser{
		{ID: input.CustomerID, Name: fmt.Sprintf("Customer %s", input.CustomerID), Role: "user"},
		{ID: uc.supportAgentID, Name: "Support Agent", Role: "admin"},
	}
	if err := uc.chat.UpsertUsers(ctx, users); err != nil {
		return nil, err
	}

	supportChannelID := "support-" + input.OriginalChannelID

	_, err := uc.chat.GetOrCreateChannel(
		ctx,
		supportChannelID,
		"Support Channel",
		[]string{input.CustomerID, uc.supportAgentID},
		input.CustomerID,
		entity.ChannelMetadata{},
	)
	if err != nil {
		return nil, err
	}

	var escalationMessage string
	if ticket != nil {
		escalationMessage = fmt.Sprintf(
			"Escalated from channel %s for customer %s.\n\nTicket #%d created.\nTicket URL: %s",
			input.OriginalChannelID, input.CustomerID, ticket.ID, ticket.URL,
		)
	} else {
		escalationMessage = fmt.Sprintf(
			"This conversation has been escalated to support.\n\nOriginal channel: %s\nCustomer: %s\n\nA support agent will assist you shortly.",
			input.OriginalChannelID, input.CustomerID,
		)
	}

	if err := uc.chat.SendMessage(ctx, supportChannelID, uc.supportAgentID, escalationMessage); err != nil {
		return nil, err
	}

	result := &SupportChannelResult{
		SupportChannelID: supportChannelID,
		SupportAgentID:   uc.supportAgentID,
	}
	if ticket != nil {
		result.TicketID = ticket.ID
		result.TicketURL = ticket.URL
	}
	return result, nil
}
