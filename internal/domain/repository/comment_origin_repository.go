package repository

import (
	"context"

	"streambay/internal/domain/entity"
)

type CommentOriginRepository interface {
	Create(ctx context.Context, origin *entity.CommentOrigin) error
	ListByTicket(ctx context.Context, ticketID int64) ([]*entity.CommentOrigin, error)
}
