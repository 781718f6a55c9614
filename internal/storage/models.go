package storage

import "time"

// AnalysisRecord is one persisted classification, owned by the user who
// requested it. Exactly one of InputText/InputURL is non-empty. Records are
// created once per successful analysis and never mutated.
type AnalysisRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	InputText  string    `json:"input_text,omitempty"`
	InputURL   string    `json:"input_url,omitempty"`
	Result     string    `json:"result"`
	Confidence float64   `json:"confidence"`
	KeyPhrases []string  `json:"key_phrases"`
	CreatedAt  time.Time `json:"created_at"`
}

// UserRecord is one registered account.
type UserRecord struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
