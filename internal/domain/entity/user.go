package entity

// ChatUser is a user record as the chat provider stores it. Users are
// upserted on first reference and never deleted.
type ChatUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}
