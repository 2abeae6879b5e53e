package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"streambay/internal/domain/entity"
	"streambay/pkg/errors"
)

// StreamChatService talks to the Stream Chat server-side REST API. Server
// requests are authenticated with a short JWT carrying a `server: true` claim,
// signed with the API secret; user session tokens are JWTs carrying `user_id`.
type StreamChatService struct {
	apiKey     string
	apiSecret  string
	baseURL    string
	httpClient *http.Client
}

const channelType = "messaging"

func NewStreamChatService(apiKey, apiSecret string) *StreamChatService {
	return &StreamChatService{
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		baseURL:    "https://chat.stream-io-api.com",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *StreamChatService) Configured() bool {
	return s.apiKey != "" && s.apiSecret != ""
}

func (s *StreamChatService) APIKey() string {
	return s.apiKey
}

// CreateToken mints a session token for the given user id.
func (s *StreamChatService) CreateToken(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
	})
	signed, err := token.SignedString([]byte(s.apiSecret))
	if err != nil {
		return "", errors.Internal("Failed to sign user token", err)
	}
	return signed, nil
}

func (s *StreamChatService) serverToken() (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"server": true,
	})
	return token.SignedString([]byte(s.apiSecret))
}

func (s *StreamChatService) doRequest(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %v", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	reqURL := fmt.Sprintf("%s%s?api_key=%s", s.baseURL, path, url.QueryEscape(s.apiKey))

	httpReq, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	auth, err := s.serverToken()
	if err != nil {
		return nil, fmt.Errorf("failed to sign server token: %v", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", auth)
	httpReq.Header.Set("stream-auth-type", "jwt")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("Stream API error on %s %s: %s", method, path, string(respBody))
		return nil, errors.Upstream("Stream Chat", resp.StatusCode, string(respBody), nil)
	}

	return respBody, nil
}

// UpsertUsers creates or updates the given users. Creating an existing user is
// defined as an update; there is no deletion path.
func (s *StreamChatService) UpsertUsers(ctx context.Context, users []entity.ChatUser) error {
	payload := map[string]map[string]entity.ChatUser{"users": {}}
	for _, u := range users {
		if u.Role == "" {
			u.Role = "user"
		}
		payload["users"][u.ID] = u
	}

	_, err := s.doRequest(ctx, http.MethodPost, "/users", payload)
	return err
}

type streamChannelData struct {
	Name        string   `json:"name,omitempty"`
	Members     []string `json:"members,omitempty"`
	CreatedByID string   `json:"created_by_id,omitempty"`
	ListingID   string   `json:"listingId,omitempty"`
	BuyerID     string   `json:"buyerId,omitempty"`
	SellerID    string   `json:"sellerId,omitempty"`
	TicketID    string   `json:"ticketId,omitempty"`
}

type streamChannelState struct {
	Channel struct {
		ID        string `json:"id"`
		Type      string `json:"type"`
		Name      string `json:"name"`
		ListingID string `json:"listingId"`
		BuyerID   string `json:"buyerId"`
		SellerID  string `json:"sellerId"`
		TicketID  string `json:"ticketId"`
	} `json:"channel"`
	Members []struct {
		UserID string `json:"user_id"`
	} `json:"members"`
	Messages []streamMessage `json:"messages"`
}

type streamMessage struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	User *struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

func channelFromState(state *streamChannelState) *entity.Channel {
	ch := &entity.Channel{
		ID:   state.Channel.ID,
		Type: state.Channel.Type,
		Name: state.Channel.Name,
		Metadata: entity.ChannelMetadata{
			ListingID: state.Channel.ListingID,
			BuyerID:   state.Channel.BuyerID,
			SellerID:  state.Channel.SellerID,
			TicketID:  state.Channel.TicketID,
		},
	}
	for _, m := range state.Members {
		ch.Members = append(ch.Members, m.UserID)
	}
	return ch
}

func messagesFromState(raw []streamMessage) []entity.Message {
	messages := make([]entity.Message, 0, len(raw))
	for _, m := range raw {
		msg := entity.Message{
			ID:        m.ID,
			Text:      m.Text,
			CreatedAt: m.CreatedAt,
		}
		if m.User != nil {
			msg.AuthorID = m.User.ID
			msg.AuthorName = m.User.Name
		}
		messages = append(messages, msg)
	}
	return messages
}

// GetOrCreateChannel queries the channel, creating it with the given data when
// it does not exist yet. Calling it again with the same id is a fetch.
func (s *StreamChatService) GetOrCreateChannel(ctx context.Context, channelID, name string, members []string, createdBy string, meta entity.ChannelMetadata) (*entity.Channel, error) {
	payload := map[string]interface{}{
		"data": streamChannelData{
			Name:        name,
			Members:     members,
			CreatedByID: createdBy,
			ListingID:   meta.ListingID,
			BuyerID:     meta.BuyerID,
			SellerID:    meta.SellerID,
			TicketID:    meta.TicketID,
		},
		"state": true,
	}

	body, err := s.doRequest(ctx, http.MethodPost, fmt.Sprintf("/channels/%s/%s/query", channelType, channelID), payload)
	if err != nil {
		return nil, err
	}

	var state streamChannelState
	if err := json.Unmarshal(body, &state); err != nil {
		return nil, fmt.Errorf("failed to parse channel response: %v", err)
	}

	return channelFromState(&state), nil
}

// ChannelMessages returns up to limit of the channel's most recent messages.
func (s *StreamChatService) ChannelMessages(ctx context.Context, channelID string, limit int) ([]entity.Message, error) {
	payload := map[string]interface{}{
		"state":    true,
		"messages": map[string]int{"limit": limit},
	}

	body, err := s.doRequest(ctx, http.MethodPost, fmt.Sprintf("/channels/%s/%s/query", channelType, channelID), payload)
	if err != nil {
		return nil, err
	}

	var state streamChannelState
	if err := json.Unmarshal(body, &state); err != nil {
		return nil, fmt.Errorf("failed to parse channel response: %v", err)
	}

	return messagesFromState(state.Messages), nil
}

// SetChannelTicketID writes the ticket id onto the channel metadata as a
// single-field partial update.
func (s *StreamChatService) SetChannelTicketID(ctx context.Context, channelID, ticketID string) error {
	payload := map[string]interface{}{
		"set": map[string]string{"ticketId": ticketID},
	}

	_, err := s.doRequest(ctx, http.MethodPatch, fmt.Sprintf("/channels/%s/%s", channelType, channelID), payload)
	return err
}

func (s *StreamChatService) AddMembers(ctx context.Context, channelID string, userIDs []string) error {
	payload := map[string]interface{}{
		"add_members": userIDs,
	}

	_, err := s.doRequest(ctx, http.MethodPost, fmt.Sprintf("/channels/%s/%s", channelType, channelID), payload)
	return err
}

func (s *StreamChatService) SendMessage(ctx context.Context, channelID, userID, text string) error {
	payload := map[string]interface{}{
		"message": map[string]string{
			"text":    text,
			"user_id": userID,
		},
	}

	_, err := s.doRequest(ctx, http.MethodPost, fmt.Sprintf("/channels/%s/%s/message", channelType, channelID), payload)
	return err
}

// FindChannelByTicketID queries channels whose metadata ticketId matches.
// Returns nil without error when no channel references the ticket.
func (s *StreamChatService) FindChannelByTicketID(ctx context.Context, ticketID string) (*entity.Channel, error) {
	payload := map[string]interface{}{
		"filter_conditions": map[string]string{"ticketId": ticketID},
		"state":             false,
	}

	body, err := s.doRequest(ctx, http.MethodPost, "/channels", payload)
	if err != nil {
		return nil, err
	}

	var result struct {
		Channels []streamChannelState `json:"channels"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse channels response: %v", err)
	}

	if len(result.Channels) == 0 {
		return nil, nil
	}

	return channelFromState(&result.Channels[0]), nil
}
