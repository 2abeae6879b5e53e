package entity

import "time"

// Ticket is a support case owned by the ticketing provider. The tag set is the
// deduplication key: listing_{id}, buyer_{id}, channel_{id}.
type Ticket struct {
	ID          int64     `json:"id"`
	Subject     string    `json:"subject"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	RequesterID int64     `json:"requester_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	URL         string    `json:"url,omitempty"`
}

// TicketDraft is the shape of a ticket the system asks the provider to
// create during escalation.
type TicketDraft struct {
	Subject  string   `json:"subject"`
	Body     string   `json:"body"`
	Priority string   `json:"priority"`
	Status   string   `json:"status"`
	Tags     []string `json:"tags"`
}

type TicketComment struct {
	ID        int64     `json:"id"`
	AuthorID  int64     `json:"author_id"`
	Body      string    `json:"body"`
	Public    bool      `json:"public"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentOrigin records which customer authored a relayed ticket comment. The
// provider's comment list only exposes provider-side author ids, so this is
// the side-table that lets the UI attribute customer comments precisely.
type CommentOrigin struct {
	ID           string    `json:"id" firestore:"id"`
	TicketID     int64     `json:"ticket_id" firestore:"ticketId"`
	CommentID    int64     `json:"comment_id" firestore:"commentId"`
	CustomerID   string    `json:"customer_id" firestore:"customerId"`
	CustomerName string    `json:"customer_name,omitempty" firestore:"customerName"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
}
