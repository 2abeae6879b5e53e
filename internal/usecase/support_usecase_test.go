package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"streambay/internal/domain/entity"
)

func TestPostCustomerCommentUsesPrefixConvention(t *testing.T) {
	tickets := newFakeTicketProvider()
	uc := NewSupportTicketUseCase(tickets, nil)

	result, err := uc.PostCustomerComment(context.Background(), PostCommentInput{
		TicketID:     6,
		Message:      "Hello",
		CustomerID:   "buyer_1",
		CustomerName: "Alice",
	})
	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.NotZero(t, result.CommentID)

	comments, err := uc.tickets.ListComments(context.Background(), 6)
	assert.NoError(t, err)
	if assert.Len(t, comments, 1) {
		assert.Equal(t, "[Alice]: Hello", comments[0].Body)
		assert.True(t, comments[0].Public)
	}
}

func TestPostCustomerCommentWithoutNameKeepsBodyVerbatim(t *testing.T) {
	tickets := newFakeTicketProvider()
	uc := NewSupportTicketUseCase(tickets, nil)

	_, err := uc.PostCustomerComment(context.Background(), PostCommentInput{
		TicketID: 6,
		Message:  "Hello",
	})
	assert.NoError(t, err)

	comments, _ := tickets.ListComments(context.Background(), 6)
	if assert.Len(t, comments, 1) {
		assert.Equal(t, "Hello", comments[0].Body)
	}
}

func TestPostCustomerCommentRecordsOrigin(t *testing.T) {
	tickets := newFakeTicketProvider()
	origins := &fakeOriginRepository{}
	uc := NewSupportTicketUseCase(tickets, origins)

	result, err := uc.PostCustomerComment(context.Background(), PostCommentInput{
		TicketID:     6,
		Message:      "Hello",
		CustomerID:   "buyer_1",
		CustomerName: "Alice",
	})
	assert.NoError(t, err)

	if assert.Len(t, origins.created, 1) {
		assert.Equal(t, int64(6), origins.created[0].TicketID)
		assert.Equal(t, result.CommentID, origins.created[0].CommentID)
		assert.Equal(t, "buyer_1", origins.created[0].CustomerID)
	}
}

func TestPostCustomerCommentOriginFailureIsSwallowed(t *testing.T) {
	tickets := newFakeTicketProvider()
	origins := &fakeOriginRepository{createErr: errors.New("store down")}
	uc := NewSupportTicketUseCase(tickets, origins)

	result, err := uc.PostCustomerComment(context.Background(), PostCommentInput{
		TicketID:   6,
		Message:    "Hello",
		CustomerID: "buyer_1",
	})
	assert.NoError(t, err, "losing the origin record must not fail the relay")
	assert.True(t, result.Success)
}

func TestTicketCommentsIncludesRequesterID(t *testing.T) {
	tickets := newFakeTicketProvider()
	tickets.tickets[6] = &entity.Ticket{ID: 6, RequesterID: 42}
	tickets.comments[6] = []entity.TicketComment{
		{ID: 1, AuthorID: 42, Body: "I need help", Public: true},
		{ID: 2, AuthorID: 99, Body: "On it", Public: true},
	}
	uc := NewSupportTicketUseCase(tickets, nil)

	result, err := uc.TicketComments(context.Background(), 6)
	assert.NoError(t, err)

	assert.Equal(t, int64(42), result.RequesterID)
	assert.Len(t, result.Comments, 2)
	assert.Nil(t, result.Origins)
}

func TestListOpenTickets(t *testing.T) {
	tickets := newFakeTicketProvider()
	tickets.searchResults = []entity.Ticket{
		{ID: 1, Subject: "first", Status: "open"},
		{ID: 2, Subject: "second", Status: "pending"},
	}
	uc := NewSupportTicketUseCase(tickets, nil)

	result, err := uc.ListOpenTickets(context.Background())
	assert.NoError(t, err)
	assert.Len(t, result, 2)
}
