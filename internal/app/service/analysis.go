package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/pranav06082004/Authen-X/internal/models"
	"github.com/pranav06082004/Authen-X/internal/storage"
)

// ErrEmptyInput is returned when a request carries neither text nor a URL.
var ErrEmptyInput = errors.New("either text or url is required")

// AnalysisService runs the submit -> classify -> persist -> respond flow.
// It is stateless between calls; any number of calls may run concurrently.
type AnalysisService struct {
	repository Storage
	gateway    Gateway
	logger     *zap.Logger
}

const recentLimit = 20

func NewAnalysis(repo Storage, gw Gateway, logger *zap.Logger) *AnalysisService {
	return &AnalysisService{
		repository: repo,
		gateway:    gw,
		logger:     logger,
	}
}

// Analyze validates the request, makes exactly one classification call, and
// persists one record tying the verdict to the caller. The persistence write
// is best-effort: a storage failure is logged and discarded so it never
// blocks delivering an already-computed verdict.
func (s *AnalysisService) Analyze(ctx context.Context, userID string, req models.AnalysisRequest) (*models.AnalyzeResponse, error) {
	if req.Empty() {
		return nil, ErrEmptyInput
	}

	result, err := s.gateway.Classify(ctx, req.Text, req.URL)
	if err != nil {
		return nil, err
	}

	record := storage.AnalysisRecord{
		UserID:     userID,
		InputText:  req.Text,
		InputURL:   req.URL,
		Result:     string(result.Verdict),
		Confidence: result.Confidence,
		KeyPhrases: result.KeyPhrases,
	}

	if _, err := s.repository.WriteAnalysis(ctx, record); err != nil {
		s.logger.Error("cannot save analysis", zap.Error(err), zap.String("user_id", userID))
	}

	return &models.AnalyzeResponse{
		Verdict:    result.Verdict,
		Confidence: result.Confidence,
		KeyPhrases: result.KeyPhrases,
	}, nil
}

// History returns the caller's analyses, newest first.
func (s *AnalysisService) History(ctx context.Context, userID string) ([]models.HistoryItem, error) {
	records, err := s.repository.FindAnalysesByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return toHistoryItems(records), nil
}

// Stats aggregates verdict counts and confidence for the admin panel.
func (s *AnalysisService) Stats(ctx context.Context) (*models.AdminStats, error) {
	counts, avg, err := s.repository.CountAnalyses(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.repository.RecentAnalyses(ctx, recentLimit)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, c := range counts {
		total += c
	}

	return &models.AdminStats{
		TotalAnalyses:     total,
		RealCount:         counts[string(models.VerdictReal)],
		FakeCount:         counts[string(models.VerdictFake)],
		UncertainCount:    counts[string(models.VerdictUncertain)],
		AverageConfidence: avg,
		RecentAnalyses:    toHistoryItems(recent),
	}, nil
}

func (s *AnalysisService) ListUsers(ctx context.Context) ([]models.AdminUser, error) {
	users, err := s.repository.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]models.AdminUser, 0, len(users))
	for _, u := range users {
		result = append(result, models.AdminUser{
			ID:        u.ID,
			Email:     u.Email,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		})
	}

	return result, nil
}

func (s *AnalysisService) DeleteUser(ctx context.Context, id string) error {
	return s.repository.DeleteUser(ctx, id)
}

func (s *AnalysisService) PingContext(ctx context.Context) error {
	return s.repository.PingContext(ctx)
}

func toHistoryItems(records []storage.AnalysisRecord) []models.HistoryItem {
	items := make([]models.HistoryItem, 0, len(records))
	for _, a := range records {
		items = append(items, models.HistoryItem{
			ID:         a.ID,
			InputText:  a.InputText,
			InputURL:   a.InputURL,
			Result:     models.Verdict(a.Result),
			Confidence: a.Confidence,
			KeyPhrases: a.KeyPhrases,
			CreatedAt:  a.CreatedAt,
		})
	}

	return items
}
