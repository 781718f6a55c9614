// Package models defines the request and response data structures used
// for communication between clients and the analysis service.
package models

import "time"

// AnalysisRequest is one submission: either raw article text or a URL.
// Exactly one of the two fields should be set.
type AnalysisRequest struct {
	// Text is the literal article text to classify.
	Text string `json:"text,omitempty"`

	// URL points at the article; the model fetches the content itself.
	URL string `json:"url,omitempty"`
}

// Empty reports whether the request carries neither text nor a URL.
func (r AnalysisRequest) Empty() bool {
	return r.Text == "" && r.URL == ""
}

// AnalyzeResponse is the wire response for a successful analysis.
// Reasoning is computed upstream but deliberately withheld here.
type AnalyzeResponse struct {
	Verdict    Verdict  `json:"verdict"`
	Confidence float64  `json:"confidence"`
	KeyPhrases []string `json:"keyPhrases"`
}

// ErrorResponse is the body returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CredentialsRequest carries an email/password pair for register and login.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse returns a signed bearer token to the client.
type TokenResponse struct {
	Token string `json:"token"`
}

// HistoryItem is one past analysis as shown in the history view.
type HistoryItem struct {
	ID         string    `json:"id"`
	InputText  string    `json:"input_text,omitempty"`
	InputURL   string    `json:"input_url,omitempty"`
	Result     Verdict   `json:"result"`
	Confidence float64   `json:"confidence"`
	KeyPhrases []string  `json:"key_phrases"`
	CreatedAt  time.Time `json:"created_at"`
}

// AdminStats is the aggregate view served to the admin panel.
type AdminStats struct {
	TotalAnalyses     int           `json:"total_analyses"`
	RealCount         int           `json:"real_count"`
	FakeCount         int           `json:"fake_count"`
	UncertainCount    int           `json:"uncertain_count"`
	AverageConfidence float64       `json:"average_confidence"`
	RecentAnalyses    []HistoryItem `json:"recent_analyses"`
}

// AdminUser is one registered account as listed in the admin panel.
type AdminUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
