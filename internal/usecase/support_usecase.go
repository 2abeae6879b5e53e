package usecase

import (
	"context"
	"fmt"

	"streambay/internal/domain/entity"
	"streambay/internal/domain/repository"
	"streambay/pkg/errors"
	"streambay/pkg/logger"
)

// SupportTicketUseCase covers the ticket-facing read and relay paths the
// support view polls: open tickets, a ticket's comments, and the outbound
// customer comment relay.
type SupportTicketUseCase struct {
	tickets TicketProvider
	origins repository.CommentOriginRepository // nil when no store is configured
}

func NewSupportTicketUseCase(tickets TicketProvider, origins repository.CommentOriginRepository) *SupportTicketUseCase {
	return &SupportTicketUseCase{
		tickets: tickets,
		origins: origins,
	}
}

// ListOpenTickets returns every ticket not yet solved, reshaped for the
// support dashboard.
func (uc *SupportTicketUseCase) ListOpenTickets(ctx context.Context) ([]entity.Ticket, error) {
	if !uc.tickets.Configured() {
		return nil, errors.NotConfigured("Zendesk credentials")
	}

	return uc.tickets.SearchTickets(ctx, "type:ticket status<solved")
}

type TicketCommentsResult struct {
	Comments    []entity.TicketComment  `json:"comments"`
	RequesterID int64                   `json:"requesterId"`
	Origins     []*entity.CommentOrigin `json:"origins,omitempty"`
}

// TicketComments returns the ticket's comments together with the requester id
// so clients can tell customer-authored comments from agent replies. When the
// origin store is configured its records are included for precise attribution.
func (uc *SupportTicketUseCase) TicketComments(ctx context.Context, ticketID int64) (*TicketCommentsResult, error) {
	if !uc.tickets.Configured() {
		return nil, errors.NotConfigured("Zendesk credentials")
	}

	ticket, err := uc.tickets.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	comments, err := uc.tickets.ListComments(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	result := &TicketCommentsResult{
		Comments:    comments,
		RequesterID: ticket.RequesterID,
	}

	if uc.origins != nil {
		origins, err := uc.origins.ListByTicket(ctx, ticketID)
		if err != nil {
			// Attribution is best-effort; comments still render without it.
			logger.Warn("Failed to load comment origins for ticket %d: %v", ticketID, err)
		} else {
			result.Origins = origins
		}
	}

	return result, nil
}

type PostCommentInput struct {
	TicketID     int64
	Message      string
	CustomerID   string
	CustomerName string
}

type PostCommentResult struct {
	Success   bool  `json:"success"`
	CommentID int64 `json:"commentId,omitempty"`
}

// PostCustomerComment appends a public comment to the ticket. When a customer
// name is given the body is prefixed "[name]: " so the support view can
// attribute the comment even without the origin store; the prefix is a
// rendering convention, not a protocol guarantee.
func (uc *SupportTicketUseCase) PostCustomerComment(ctx context.Context, input PostCommentInput) (*PostCommentResult, error) {
	if !uc.tickets.Configured() {
		return nil, errors.NotConfigured("Zendesk credentials")
	}

	body := input.Message
	if input.CustomerName != "" {
		body = fmt.Sprintf("[%s]: %s", input.CustomerName, input.Message)
	}

	commentID, err := uc.tickets.AddComment(ctx, input.TicketID, body, true)
	if err != nil {
		return nil, err
	}

	if uc.origins != nil && commentID != 0 {
		origin := &entity.CommentOrigin{
			TicketID:     input.TicketID,
			CommentID:    commentID,
			CustomerID:   input.CustomerID,
			CustomerName: input.CustomerName,
		}
		if err := uc.origins.Create(ctx, origin); err != nil {
			// The comment is already on the ticket; losing the origin record
			// must not fail the relay.
			logger.Warn("Failed to record comment origin for ticket %d: %v", input.TicketID, err)
		}
	}

	return &PostCommentResult{
		Success:   true,
		CommentID: commentID,
	}, nil
}
