// Package gateway implements the client for the hosted chat-completion
// service that produces credibility verdicts. The gateway is treated as an
// opaque text-completion oracle: one request, one structured JSON verdict.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/pranav06082004/Authen-X/internal/models"
)

// Distinct upstream failure classes. Callers map these onto HTTP statuses:
// rate limiting is retryable, quota exhaustion is terminal until an operator
// adds credits.
var (
	ErrRateLimited      = errors.New("model gateway rate limit exceeded")
	ErrQuotaExhausted   = errors.New("model gateway credits exhausted")
	ErrMalformedVerdict = errors.New("model gateway returned a malformed verdict")
)

// UpstreamError is any other non-2xx gateway response. The status code is
// carried for diagnostics.
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("model gateway error: status %d", e.Status)
}

// requestTimeout bounds the outbound call; the gateway guarantees none.
const requestTimeout = 30 * time.Second

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []message      `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

func NewClient(baseURL, apiKey, model string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

// Classify sends one classification request and returns the parsed verdict.
// Exactly one outbound call is made; retry is the caller's concern.
func (c *Client) Classify(ctx context.Context, text, url string) (*models.AnalysisResult, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: BuildUserPrompt(text, url)},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal gateway request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("build gateway request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call gateway: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read gateway response: %w", err)
	}

	c.logger.Info("model gateway response",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
		zap.Int("size", len(body)),
	)

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode == http.StatusPaymentRequired:
		return nil, ErrQuotaExhausted
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &UpstreamError{Status: resp.StatusCode}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedVerdict, err)
	}

	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty choices", ErrMalformedVerdict)
	}

	return parseVerdict(chatResp.Choices[0].Message.Content)
}

// parseVerdict decodes the model's content field and validates it against
// the verdict schema. The source silently trusted this object; here an
// unknown verdict tag or non-numeric confidence is rejected, and finite
// out-of-range confidence is clamped into [0,100].
func parseVerdict(content string) (*models.AnalysisResult, error) {
	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedVerdict, err)
	}

	if !result.Verdict.Valid() {
		return nil, fmt.Errorf("%w: unknown verdict %q", ErrMalformedVerdict, result.Verdict)
	}

	if math.IsNaN(result.Confidence) || math.IsInf(result.Confidence, 0) {
		return nil, fmt.Errorf("%w: confidence is not a finite number", ErrMalformedVerdict)
	}

	result.ClampConfidence()

	if result.KeyPhrases == nil {
		result.KeyPhrases = []string{}
	}

	return &result, nil
}
