// Package client implements the submission flow against the analysis API:
// one in-flight submission at a time, inputs cleared only on confirmed
// success and preserved on failure, every handler error surfaced as a
// non-fatal value for display.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/pranav06082004/Authen-X/internal/models"
)

// State is the submission lifecycle: Idle -> Submitting -> {Succeeded,
// Failed} -> Idle. Submitting is the only suspend point.
type State int

const (
	Idle State = iota
	Submitting
	Succeeded
	Failed
)

// ErrSubmissionInFlight is returned when Submit is called while a previous
// submission has not finished.
var ErrSubmissionInFlight = errors.New("a submission is already in flight")

// APIError is a non-2xx response from the analysis handler.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("analysis request failed: %d %s", e.Status, e.Message)
}

// Retryable reports whether the caller may usefully resubmit later. Only
// rate limiting is retryable; quota exhaustion requires operator action.
func (e *APIError) Retryable() bool {
	return e.Status == http.StatusTooManyRequests
}

// Submitter drives one submission form against the analysis endpoint.
// It is safe for concurrent use; concurrent Submit calls beyond the first
// fail with ErrSubmissionInFlight instead of double-submitting.
type Submitter struct {
	baseURL    string
	token      string
	httpClient *http.Client

	mu      sync.Mutex
	state   State
	text    string
	url     string
	result  *models.AnalyzeResponse
	lastErr error
}

func NewSubmitter(baseURL, token string) *Submitter {
	return &Submitter{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		state:      Idle,
	}
}

// SetText fills the text input and clears the URL input.
func (s *Submitter) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
	s.url = ""
}

// SetURL fills the URL input and clears the text input.
func (s *Submitter) SetURL(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.url = url
	s.text = ""
}

// Inputs returns the current form contents.
func (s *Submitter) Inputs() (text, url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text, s.url
}

// State returns the current lifecycle state.
func (s *Submitter) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns the verdict of the last successful submission.
func (s *Submitter) Result() *models.AnalyzeResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// LastError returns the failure of the last submission, if any.
func (s *Submitter) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Submit sends the current inputs to the analysis endpoint. On success the
// inputs are cleared and the verdict stored; on failure the inputs are kept
// so the user can resubmit. There is no automatic retry.
func (s *Submitter) Submit(ctx context.Context) (*models.AnalyzeResponse, error) {
	s.mu.Lock()
	if s.state == Submitting {
		s.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	s.state = Submitting
	request := models.AnalysisRequest{Text: s.text, URL: s.url}
	s.mu.Unlock()

	result, err := s.doSubmit(ctx, request)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state = Failed
		s.lastErr = err
		return nil, err
	}

	s.state = Succeeded
	s.lastErr = nil
	s.result = result
	s.text = ""
	s.url = ""

	return result, nil
}

// Reset returns the submitter to Idle after a terminal state, keeping the
// last result and error for display.
func (s *Submitter) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Submitting {
		s.state = Idle
	}
}

func (s *Submitter) doSubmit(ctx context.Context, request models.AnalysisRequest) (*models.AnalyzeResponse, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/analyze", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		var errResp models.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err != nil || errResp.Error == "" {
			errResp.Error = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{Status: resp.StatusCode, Message: errResp.Error}
	}

	var result models.AnalyzeResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("decode analysis response: %w", err)
	}

	return &result, nil
}
