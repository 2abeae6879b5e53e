package usecase

import (
	"context"
	"fmt"
	"sync"

	"streambay/internal/domain/entity"
)

type fakeChatProvider struct {
	mu sync.Mutex

	configured bool
	users      map[string]entity.ChatUser
	channels   map[string]*entity.Channel
	history    map[string][]entity.Message
	sent       map[string][]entity.Message

	upsertErr     error
	channelErr    error
	historyErr    error
	setTicketErr  error
	addMembersErr error
	sendErr       error

	addMembersCalls int
}

func newFakeChatProvider() *fakeChatProvider {
	return &fakeChatProvider{
		configured: true,
		users:      make(map[string]entity.ChatUser),
		channels:   make(map[string]*entity.Channel),
		history:    make(map[string][]entity.Message),
		sent:       make(map[string][]entity.Message),
	}
}

func (f *fakeChatProvider) Configured() bool { return f.configured }
func (f *fakeChatProvider) APIKey() string   { return "test-api-key" }

func (f *fakeChatProvider) CreateToken(userID string) (string, error) {
	return "token-for-" + userID, nil
}

func (f *fakeChatProvider) UpsertUsers(ctx context.Context, users []entity.ChatUser) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range users {
		f.users[u.ID] = u
	}
	return nil
}

func (f *fakeChatProvider) GetOrCreateChannel(ctx context.Context, channelID, name string, members []string, createdBy string, meta entity.ChannelMetadata) (*entity.Channel, error) {
	if f.channelErr != nil {
		return nil, f.channelErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.channels[channelID]; ok {
		return existing, nil
	}
	channel := &entity.Channel{
		ID:       channelID,
		Type:     "messaging",
		Name:     name,
		Members:  members,
		Metadata: meta,
	}
	f.channels[channelID] = channel
	return channel, nil
}

func (f *fakeChatProvider) ChannelMessages(ctx context.Context, channelID string, limit int) ([]entity.Message, error) {
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	messages := f.history[channelID]
	if len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	return messages, nil
}

func (f *fakeChatProvider) SetChannelTicketID(ctx context.Context, channelID, ticketID string) error {
	if f.setTicketErr != nil {
		return f.setTicketErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	channel, ok := f.channels[channelID]
	if !ok {
		channel = &entity.Channel{ID: channelID, Type: "messaging"}
		f.channels[channelID] = channel
	}
	channel.Metadata.TicketID = ticketID
	return nil
}

func (f *fakeChatProvider) AddMembers(ctx context.Context, channelID string, userIDs []string) error {
	f.mu.Lock()
	f.addMembersCalls++
	f.mu.Unlock()
	if f.addMembersErr != nil {
		return f.addMembersErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if channel, ok := f.channels[channelID]; ok {
		channel.Members = append(channel.Members, userIDs...)
	}
	return nil
}

func (f *fakeChatProvider) SendMessage(ctx context.Context, channelID, userID, text string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent[channelID] = append(f.sent[channelID], entity.Message{AuthorID: userID, Text: text})
	return nil
}

func (f *fakeChatProvider) FindChannelByTicketID(ctx context.Context, ticketID string) (*entity.Channel, error) {
	if f.channelErr != nil {
		return nil, f.channelErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, channel := range f.channels {
		if channel.Metadata.TicketID == ticketID {
			return channel, nil
		}
	}
	return nil, nil
}

type fakeTicketProvider struct {
	mu sync.Mutex

	configured    bool
	nextID        int64
	nextCommentID int64
	created       []entity.TicketDraft
	tickets       map[int64]*entity.Ticket
	comments      map[int64][]entity.TicketComment

	searchResults []entity.Ticket
	searchErr     error
	createErr     error
	commentErr    error

	// When set, every SearchTickets call waits until all expected callers
	// have searched before any of them proceeds.
	searchBarrier *sync.WaitGroup
}

func newFakeTicketProvider() *fakeTicketProvider {
	return &fakeTicketProvider{
		configured:    true,
		nextID:        1,
		nextCommentID: 1000,
		tickets:       make(map[int64]*entity.Ticket),
		comments:      make(map[int64][]entity.TicketComment),
	}
}

func (f *fakeTicketProvider) Configured() bool { return f.configured }

func (f *fakeTicketProvider) TicketURL(ticketID int64) string {
	return fmt.Sprintf("https://example.zendesk.com/agent/tickets/%d", ticketID)
}

func (f *fakeTicketProvider) SearchTickets(ctx context.Context, query string) ([]entity.Ticket, error) {
	if f.searchBarrier != nil {
		f.searchBarrier.Done()
		f.searchBarrier.Wait()
	}
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.Ticket(nil), f.searchResults...), nil
}

func (f *fakeTicketProvider) CreateTicket(ctx context.Context, draft entity.TicketDraft) (*entity.Ticket, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket := &entity.Ticket{
		ID:       f.nextID,
		Subject:  draft.Subject,
		Status:   draft.Status,
		Priority: draft.Priority,
		Tags:     draft.Tags,
		URL:      f.TicketURL(f.nextID),
	}
	f.nextID++
	f.created = append(f.created, draft)
	f.tickets[ticket.ID] = ticket
	return ticket, nil
}

func (f *fakeTicketProvider) AddComment(ctx context.Context, ticketID int64, body string, public bool) (int64, error) {
	if f.commentErr != nil {
		return 0, f.commentErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	commentID := f.nextCommentID
	f.nextCommentID++
	f.comments[ticketID] = append(f.comments[ticketID], entity.TicketComment{
		ID:     commentID,
		Body:   body,
		Public: public,
	})
	return commentID, nil
}

func (f *fakeTicketProvider) ListComments(ctx context.Context, ticketID int64) ([]entity.TicketComment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.TicketComment(nil), f.comments[ticketID]...), nil
}

func (f *fakeTicketProvider) GetTicket(ctx context.Context, ticketID int64) (*entity.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ticket, ok := f.tickets[ticketID]; ok {
		return ticket, nil
	}
	return &entity.Ticket{ID: ticketID, RequesterID: 42}, nil
}

type fakeOriginRepository struct {
	mu        sync.Mutex
	created   []*entity.CommentOrigin
	createErr error
}

func (f *fakeOriginRepository) Create(ctx context.Context, origin *entity.CommentOrigin) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, origin)
	return nil
}

func (f *fakeOriginRepository) ListByTicket(ctx context.Context, ticketID int64) ([]*entity.CommentOrigin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var origins []*entity.CommentOrigin
	for _, o := range f.created {
		if o.TicketID == ticketID {
			origins = append(origins, o)
		}
	}
	return origins, nil
}
