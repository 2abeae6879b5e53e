package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"streambay/internal/domain/entity"
	"streambay/internal/domain/repository"
	"streambay/pkg/errors"
)

type firestoreCommentOriginRepository struct {
	client *firestore.Client
}

func NewFirestoreCommentOriginRepository(client *firestore.Client) repository.CommentOriginRepository {
	return &firestoreCommentOriginRepository{
		client: client,
	}
}

func (r *firestoreCommentOriginRepository) Create(ctx context.Context, origin *entity.CommentOrigin) error {
	if origin.ID == "" {
		origin.ID = uuid.New().String()
	}
	origin.CreatedAt = time.Now()

	_, err := r.client.Collection("comment_origins").Doc(origin.ID).Set(ctx, origin)
	if err != nil {
		return errors.Internal("Failed to record comment origin", err)
	}

	return nil
}

func (r *firestoreCommentOriginRepository) ListByTicket(ctx context.Context, ticketID int64) ([]*entity.CommentOrigin, error) {
	iter := r.client.Collection("comment_origins").
		Where("ticketId", "==", ticketID).
		OrderBy("createdAt", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var origins []*entity.CommentOrigin
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list comment origins", err)
		}

		var origin entity.CommentOrigin
		if err := doc.DataTo(&origin); err != nil {
			return nil, errors.Internal("Failed to parse comment origin", err)
		}
		origins = append(origins, &origin)
	}

	return origins, nil
}
