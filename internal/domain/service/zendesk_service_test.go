package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"streambay/internal/domain/entity"
	apperrors "streambay/pkg/errors"
)

func newTestZendesk(handler http.Handler) (*ZendeskService, *httptest.Server) {
	server := httptest.NewServer(handler)
	svc := NewZendeskService("example", "agent@example.com", "secret-token")
	svc.baseURL = server.URL
	return svc, server
}

func TestZendeskAuthHeader(t *testing.T) {
	svc := NewZendeskService("example", "agent@example.com", "secret-token")

	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("agent@example.com/token:secret-token"))
	assert.Equal(t, want, svc.authHeader())
}

func TestSearchTicketsSortsByRecency(t *testing.T) {
	var gotQuery, gotSort, gotOrder, gotAuth string
	svc, server := newTestZendesk(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		gotSort = r.URL.Query().Get("sort_by")
		gotOrder = r.URL.Query().Get("sort_order")
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]interface{}{
				{"id": 77, "subject": "existing", "status": "open"},
			},
		})
	}))
	defer server.Close()

	tickets, err := svc.SearchTickets(context.Background(), "type:ticket status<solved tags:listing_1234 tags:buyer_buyer_1")
	assert.NoError(t, err)

	assert.Equal(t, "type:ticket status<solved tags:listing_1234 tags:buyer_buyer_1", gotQuery)
	assert.Equal(t, "updated_at", gotSort)
	assert.Equal(t, "desc", gotOrder)
	assert.Equal(t, svc.authHeader(), gotAuth)

	if assert.Len(t, tickets, 1) {
		assert.Equal(t, int64(77), tickets[0].ID)
		assert.Contains(t, tickets[0].URL, "/agent/tickets/77")
	}
}

func TestCreateTicketPayloadAndResponse(t *testing.T) {
	var gotBody map[string]interface{}
	svc, server := newTestZendesk(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v2/tickets.json", r.URL.Path)
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ticket": map[string]interface{}{"id": 42, "subject": "Escalated", "status": "open"},
		})
	}))
	defer server.Close()

	ticket, err := svc.CreateTicket(context.Background(), entity.TicketDraft{
		Subject:  "Escalated",
		Body:     "transcript here",
		Priority: "normal",
		Status:   "open",
		Tags:     []string{"listing_1234", "buyer_buyer_1"},
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(42), ticket.ID)

	payload := gotBody["ticket"].(map[string]interface{})
	assert.Equal(t, "Escalated", payload["subject"])
	assert.Equal(t, "normal", payload["priority"])
	assert.Equal(t, "transcript here", payload["comment"].(map[string]interface{})["body"])
}

func TestAddCommentExtractsCommentID(t *testing.T) {
	svc, server := newTestZendesk(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v2/tickets/6.json", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"audit": map[string]interface{}{
				"events": []map[string]interface{}{
					{"id": 9001, "type": "Comment"},
					{"id": 9002, "type": "Notification"},
				},
			},
		})
	}))
	defer server.Close()

	commentID, err := svc.AddComment(context.Background(), 6, "Hello", true)
	assert.NoError(t, err)
	assert.Equal(t, int64(9001), commentID)
}

func TestUpstreamErrorCarriesStatusAndBody(t *testing.T) {
	svc, server := newTestZendesk(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"RecordInvalid"}`))
	}))
	defer server.Close()

	_, err := svc.CreateTicket(context.Background(), entity.TicketDraft{Subject: "x"})
	assert.Error(t, err)
	assert.True(t, apperrors.Is(err, "UPSTREAM_ERROR"))
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "RecordInvalid")
}

func TestZendeskConfigured(t *testing.T) {
	assert.True(t, NewZendeskService("sub", "a@b.c", "tok").Configured())
	assert.False(t, NewZendeskService("", "a@b.c", "tok").Configured())
	assert.False(t, NewZendeskService("sub", "", "tok").Configured())
	assert.False(t, NewZendeskService("sub", "a@b.c", "").Configured())
}
