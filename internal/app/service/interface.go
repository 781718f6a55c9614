package service

import (
	"context"
	"time"

	"github.com/pranav06082004/Authen-X/internal/models"
	"github.com/pranav06082004/Authen-X/internal/storage"
)

type Storage interface {
	WriteAnalysis(context.Context, storage.AnalysisRecord) (*storage.AnalysisRecord, error)
	FindAnalysesByUserID(context.Context, string) ([]storage.AnalysisRecord, error)
	CountAnalyses(context.Context) (map[string]int, float64, error)
	RecentAnalyses(context.Context, int) ([]storage.AnalysisRecord, error)
	DeleteAnalysesBefore(context.Context, time.Time) (int64, error)

	CreateUser(context.Context, storage.UserRecord) (*storage.UserRecord, error)
	FindUserByEmail(context.Context, string) (*storage.UserRecord, error)
	FindUserByID(context.Context, string) (*storage.UserRecord, error)
	ListUsers(context.Context) ([]storage.UserRecord, error)
	DeleteUser(context.Context, string) error

	PingContext(context.Context) error
}

// Gateway abstracts the remote classification oracle.
type Gateway interface {
	Classify(ctx context.Context, text, url string) (*models.AnalysisResult, error)
}

// AnalysisServiceIface is implemented by AnalysisService and mocked in
// handler tests.
type AnalysisServiceIface interface {
	Analyze(ctx context.Context, userID string, req models.AnalysisRequest) (*models.AnalyzeResponse, error)
	History(ctx context.Context, userID string) ([]models.HistoryItem, error)
	Stats(ctx context.Context) (*models.AdminStats, error)
	ListUsers(ctx context.Context) ([]models.AdminUser, error)
	DeleteUser(ctx context.Context, id string) error
	PingContext(ctx context.Context) error
}

// AuthIface defines the token operations used by middleware and handlers.
type AuthIface interface {
	Register(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ResolveToken(tokenString string) (*Claims, error)
}
