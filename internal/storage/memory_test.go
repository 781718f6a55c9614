package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryWriteAndFindAnalyses(t *testing.T) {
	s, err := CreateMemoryStorage()
	require.NoError(t, err)

	ctx := context.Background()
	now := time.Now().UTC()

	older, err := s.WriteAnalysis(ctx, AnalysisRecord{
		UserID:    "user-1",
		InputText: "old claim",
		Result:    "FAKE",
		CreatedAt: now.Add(-time.Hour),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, older.ID)

	newer, err := s.WriteAnalysis(ctx, AnalysisRecord{
		UserID:    "user-1",
		InputText: "new claim",
		Result:    "REAL",
		CreatedAt: now,
	})
	require.NoError(t, err)

	_, err = s.WriteAnalysis(ctx, AnalysisRecord{
		UserID: "user-2",
		Result: "UNCERTAIN",
	})
	require.NoError(t, err)

	found, err := s.FindAnalysesByUserID(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, newer.ID, found[0].ID)
	assert.Equal(t, older.ID, found[1].ID)
}

func TestMemoryCountAnalyses(t *testing.T) {
	s, _ := CreateMemoryStorage()
	ctx := context.Background()

	s.WriteAnalysis(ctx, AnalysisRecord{UserID: "u", Result: "FAKE", Confidence: 60})
	s.WriteAnalysis(ctx, AnalysisRecord{UserID: "u", Result: "FAKE", Confidence: 80})
	s.WriteAnalysis(ctx, AnalysisRecord{UserID: "u", Result: "REAL", Confidence: 100})

	counts, avg, err := s.CountAnalyses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts["FAKE"])
	assert.Equal(t, 1, counts["REAL"])
	assert.InDelta(t, 80.0, avg, 0.001)
}

func TestMemoryRecentAnalysesLimit(t *testing.T) {
	s, _ := CreateMemoryStorage()
	ctx := context.Background()
	now := time.Now().UTC()

	for i := 0; i < 5; i++ {
		s.WriteAnalysis(ctx, AnalysisRecord{
			UserID:    "u",
			Result:    "REAL",
			CreatedAt: now.Add(time.Duration(i) * time.Minute),
		})
	}

	recent, err := s.RecentAnalyses(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.True(t, recent[0].CreatedAt.After(recent[1].CreatedAt))
	assert.True(t, recent[1].CreatedAt.After(recent[2].CreatedAt))
}

func TestMemoryDeleteAnalysesBefore(t *testing.T) {
	s, _ := CreateMemoryStorage()
	ctx := context.Background()
	now := time.Now().UTC()

	s.WriteAnalysis(ctx, AnalysisRecord{UserID: "u", Result: "FAKE", CreatedAt: now.AddDate(0, 0, -40)})
	s.WriteAnalysis(ctx, AnalysisRecord{UserID: "u", Result: "REAL", CreatedAt: now})

	removed, err := s.DeleteAnalysesBefore(ctx, now.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	remaining, _ := s.FindAnalysesByUserID(ctx, "u")
	require.Len(t, remaining, 1)
	assert.Equal(t, "REAL", remaining[0].Result)
}

func TestMemoryCreateUserConflict(t *testing.T) {
	s, _ := CreateMemoryStorage()
	ctx := context.Background()

	_, err := s.CreateUser(ctx, UserRecord{Email: "user@example.com", Role: RoleUser})
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, UserRecord{Email: "USER@example.com", Role: RoleUser})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestMemoryFindUser(t *testing.T) {
	s, _ := CreateMemoryStorage()
	ctx := context.Background()

	created, err := s.CreateUser(ctx, UserRecord{Email: "user@example.com", Role: RoleUser})
	require.NoError(t, err)

	byEmail, err := s.FindUserByEmail(ctx, "User@Example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := s.FindUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, byID.Email)

	_, err = s.FindUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryDeleteUserCascades(t *testing.T) {
	s, _ := CreateMemoryStorage()
	ctx := context.Background()

	user, _ := s.CreateUser(ctx, UserRecord{Email: "user@example.com", Role: RoleUser})
	s.WriteAnalysis(ctx, AnalysisRecord{UserID: user.ID, Result: "FAKE"})
	s.WriteAnalysis(ctx, AnalysisRecord{UserID: "other", Result: "REAL"})

	err := s.DeleteUser(ctx, user.ID)
	require.NoError(t, err)

	_, err = s.FindUserByID(ctx, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	gone, _ := s.FindAnalysesByUserID(ctx, user.ID)
	assert.Empty(t, gone)

	kept, _ := s.FindAnalysesByUserID(ctx, "other")
	assert.Len(t, kept, 1)

	err = s.DeleteUser(ctx, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
