package entity

import "time"

// ChannelMetadata is the custom data stored on a chat channel. TicketID stays
// empty until the conversation is escalated; the webhook handler finds the
// channel through it afterwards.
type ChannelMetadata struct {
	ListingID string `json:"listingId,omitempty"`
	BuyerID   string `json:"buyerId,omitempty"`
	SellerID  string `json:"sellerId,omitempty"`
	TicketID  string `json:"ticketId,omitempty"`
}

type Channel struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Name     string          `json:"name,omitempty"`
	Members  []string        `json:"members,omitempty"`
	Metadata ChannelMetadata `json:"metadata"`
}

type Message struct {
	ID         string    `json:"id,omitempty"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}
