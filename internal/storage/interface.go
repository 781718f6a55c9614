package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrConflict is returned when a write collides with an existing row.
	ErrConflict = errors.New("data conflict")

	// ErrNotFound is returned when a lookup matches nothing.
	ErrNotFound = errors.New("not found")
)

type StorageI interface {
	WriteAnalysis(context.Context, AnalysisRecord) (*AnalysisRecord, error)
	FindAnalysesByUserID(context.Context, string) ([]AnalysisRecord, error)
	CountAnalyses(context.Context) (map[string]int, float64, error)
	RecentAnalyses(context.Context, int) ([]AnalysisRecord, error)
	DeleteAnalysesBefore(context.Context, time.Time) (int64, error)

	CreateUser(context.Context, UserRecord) (*UserRecord, error)
	FindUserByEmail(context.Context, string) (*UserRecord, error)
	FindUserByID(context.Context, string) (*UserRecord, error)
	ListUsers(context.Context) ([]UserRecord, error)
	DeleteUser(context.Context, string) error

	PingContext(context.Context) error
}
