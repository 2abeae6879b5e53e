package usecase

import (
	"context"

	"streambay/internal/domain/entity"
)

// ChatProvider is the hosted chat API surface the usecases need. Satisfied by
// service.StreamChatService.
type ChatProvider interface {
	Configured() bool
	APIKey() string
	CreateToken(userID string) (string, error)
	UpsertUsers(ctx context.Context, users []entity.ChatUser) error
	GetOrCreateChannel(ctx context.Context, channelID, name string, members []string, createdBy string, meta entity.ChannelMetadata) (*entity.Channel, error)
	ChannelMessages(ctx context.Context, channelID string, limit int) ([]entity.Message, error)
	SetChannelTicketID(ctx context.Context, channelID, ticketID string) error
	AddMembers(ctx context.Context, channelID string, userIDs []string) error
	SendMessage(ctx context.Context, channelID, userID, text string) error
	FindChannelByTicketID(ctx context.Context, ticketID string) (*entity.Channel, error)
}

// TicketProvider is the hosted ticketing API surface. Satisfied by
// service.ZendeskService.
type TicketProvider interface {
	Configured() bool
	SearchTickets(ctx context.Context, query string) ([]entity.Ticket, error)
	CreateTicket(ctx context.Context, draft entity.TicketDraft) (*entity.Ticket, error)
	AddComment(ctx context.Context, ticketID int64, body string, public bool) (int64, error)
	ListComments(ctx context.Context, ticketID int64) ([]entity.TicketComment, error)
	GetTicket(ctx context.Context, ticketID int64) (*entity.Ticket, error)
	TicketURL(ticketID int64) string
}
