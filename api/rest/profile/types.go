package profile

import "time"

// ProfileResponse is the bearer's identity
type ProfileResponse struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

type ProtectedResponse struct {
	Message   string    `json:"message"`
	User      string    `json:"user"`
	Timestamp time.Time `json:"timestamp"`
}

type Item struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type DataResponse struct {
	Data []Item `json:"data"`
	User string `json:"user"`
}
