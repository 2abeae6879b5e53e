package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"streambay/internal/domain/entity"
	"streambay/pkg/errors"
)

// ZendeskService talks to the Zendesk ticketing REST API using token basic
// auth (email/token:apiToken).
type ZendeskService struct {
	subdomain  string
	email      string
	apiToken   string
	baseURL    string
	httpClient *http.Client
}

func NewZendeskService(subdomain, email, apiToken string) *ZendeskService {
	return &ZendeskService{
		subdomain:  subdomain,
		email:      email,
		apiToken:   apiToken,
		baseURL:    fmt.Sprintf("https://%s.zendesk.com", subdomain),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *ZendeskService) Configured() bool {
	return s.subdomain != "" && s.email != "" && s.apiToken != ""
}

// TicketURL returns the agent workspace URL for a ticket.
func (s *ZendeskService) TicketURL(ticketID int64) string {
	return fmt.Sprintf("%s/agent/tickets/%d", s.baseURL, ticketID)
}

func (s *ZendeskService) authHeader() string {
	credentials := base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%s/token:%s", s.email, s.apiToken)))
	return "Basic " + credentials
}

func (s *ZendeskService) doRequest(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %v", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", s.authHeader())

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
		log.Printf("Zendesk API error on %s %s: %d %s", method, path, resp.StatusCode, string(respBody))
		return nil, errors.Upstream("Zendesk", resp.StatusCode, string(respBody), nil)
	}

	return respBody, nil
}

type zendeskTicket struct {
	ID          int64     `json:"id"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	Tags        []string  `json:"tags"`
	RequesterID int64     `json:"requester_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s *ZendeskService) ticketFromPayload(t *zendeskTicket) *entity.Ticket {
	return &entity.Ticket{
		ID:          t.ID,
		Subject:     t.Subject,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		Tags:        t.Tags,
		RequesterID: t.RequesterID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		URL:         s.TicketURL(t.ID),
	}
}

// SearchTickets runs a ticket search with most-recently-updated ordering, so
// that "first result" is a defined tie-break when several tickets match.
func (s *ZendeskService) SearchTickets(ctx context.Context, query string) ([]entity.Ticket, error) {
	path := fmt.Sprintf("/api/v2/search.json?query=%s&sort_by=updated_at&sort_order=desc", url.QueryEscape(query))

	body, err := s.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Results []zendeskTicket `json:"results"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %v", err)
	}

	tickets := make([]entity.Ticket, 0, len(result.Results))
	for i := range result.Results {
		tickets = append(tickets, *s.ticketFromPayload(&result.Results[i]))
	}
	return tickets, nil
}

func (s *ZendeskService) CreateTicket(ctx context.Context, draft entity.TicketDraft) (*entity.Ticket, error) {
	payload := map[string]interface{}{
		"ticket": map[string]interface{}{
			"subject": draft.Subject,
			"comment": map[string]interface{}{
				"body": draft.Body,
			},
			"priority": draft.Priority,
			"status":   draft.Status,
			"tags":     draft.Tags,
		},
	}

	body, err := s.doRequest(ctx, http.MethodPost, "/api/v2/tickets.json", payload)
	if err != nil {
		return nil, err
	}

	var result struct {
		Ticket zendeskTicket `json:"ticket"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse ticket response: %v", err)
	}

	log.Printf("Created Zendesk ticket %d", result.Ticket.ID)
	return s.ticketFromPayload(&result.Ticket), nil
}

// AddComment appends a comment to the ticket via a ticket update. Returns the
// new comment's id when the provider includes it in the update audit, 0
// otherwise.
func (s *ZendeskService) AddComment(ctx context.Context, ticketID int64, commentBody string, public bool) (int64, error) {
	payload := map[string]interface{}{
		"ticket": map[string]interface{}{
			"comment": map[string]interface{}{
				"body":   commentBody,
				"public": public,
			},
		},
	}

	body, err := s.doRequest(ctx, http.MethodPut, fmt.Sprintf("/api/v2/tickets/%d.json", ticketID), payload)
	if err != nil {
		return 0, err
	}

	var result struct {
		Audit struct {
			Events []struct {
				ID   int64  `json:"id"`
				Type string `json:"type"`
			} `json:"events"`
		} `json:"audit"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, fmt.Errorf("failed to parse update response: %v", err)
	}

	for _, event := range result.Audit.Events {
		if event.Type == "Comment" {
			return event.ID, nil
		}
	}
	return 0, nil
}

func (s *ZendeskService) ListComments(ctx context.Context, ticketID int64) ([]entity.TicketComment, error) {
	body, err := s.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/v2/tickets/%d/comments.json", ticketID), nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Comments []struct {
			ID        int64     `json:"id"`
			AuthorID  int64     `json:"author_id"`
			Body      string    `json:"body"`
			Public    bool      `json:"public"`
			CreatedAt time.Time `json:"created_at"`
		} `json:"comments"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse comments response: %v", err)
	}

	comments := make([]entity.TicketComment, 0, len(result.Comments))
	for _, c := range result.Comments {
		comments = append(comments, entity.TicketComment{
			ID:        c.ID,
			AuthorID:  c.AuthorID,
			Body:      c.Body,
			Public:    c.Public,
			CreatedAt: c.CreatedAt,
		})
	}
	return comments, nil
}

func (s *ZendeskService) GetTicket(ctx context.Context, ticketID int64) (*entity.Ticket, error) {
	body, err := s.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/v2/tickets/%d.json", ticketID), nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Ticket zendeskTicket `json:"ticket"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse ticket response: %v", err)
	}

	return s.ticketFromPayload(&result.Ticket), nil
}
