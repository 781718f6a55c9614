package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pranav06082004/Authen-X/internal/storage"
)

// Helper to set up a mock DB and repository
func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *AnalysisRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := CreateAnalysisRepository(db, zap.NewNop())
	return db, mock, repo
}

func TestWriteAnalysis(t *testing.T) {
	_, mock, repo := setupMockDB(t)

	record := storage.AnalysisRecord{
		UserID:     "user-id-123",
		InputText:  "Example claim",
		Result:     "FAKE",
		Confidence: 82,
		KeyPhrases: []string{"sensational"},
	}
	phrases, _ := json.Marshal(record.KeyPhrases)

	mock.ExpectQuery(`INSERT INTO analyses`).
		WithArgs(record.UserID, record.InputText, "", record.Result, record.Confidence, phrases).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
			AddRow("generated-uuid", time.Now()))

	result, err := repo.WriteAnalysis(context.Background(), record)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "generated-uuid", result.ID)
	assert.Equal(t, record.Result, result.Result)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAnalysesByUserID(t *testing.T) {
	_, mock, repo := setupMockDB(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "input_text", "input_url", "result", "confidence", "key_phrases", "created_at"}).
		AddRow("a-2", "user-1", "", "https://news.example", "REAL", 90.0, []byte(`["fact-based"]`), now).
		AddRow("a-1", "user-1", "some claim", "", "FAKE", 70.0, []byte(`[]`), now.Add(-time.Hour))

	mock.ExpectQuery(`SELECT (.+) FROM analyses WHERE user_id`).
		WithArgs("user-1").
		WillReturnRows(rows)

	result, err := repo.FindAnalysesByUserID(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "https://news.example", result[0].InputURL)
	assert.Equal(t, []string{"fact-based"}, result[0].KeyPhrases)
	assert.Equal(t, "some claim", result[1].InputText)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountAnalyses(t *testing.T) {
	_, mock, repo := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"result", "count", "avg"}).
		AddRow("FAKE", 2, 70.0).
		AddRow("REAL", 1, 90.0)

	mock.ExpectQuery(`SELECT result, COUNT`).
		WillReturnRows(rows)

	counts, avg, err := repo.CountAnalyses(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, counts["FAKE"])
	assert.Equal(t, 1, counts["REAL"])
	assert.InDelta(t, 76.66, avg, 0.01)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAnalysesBefore(t *testing.T) {
	_, mock, repo := setupMockDB(t)

	cutoff := time.Now().AddDate(0, 0, -30)

	mock.ExpectExec(`DELETE FROM analyses WHERE created_at`).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 5))

	removed, err := repo.DeleteAnalysesBefore(context.Background(), cutoff)

	require.NoError(t, err)
	assert.Equal(t, int64(5), removed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser(t *testing.T) {
	_, mock, repo := setupMockDB(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("user@example.com", "hash", "user").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
			AddRow("user-uuid", time.Now()))

	user, err := repo.CreateUser(context.Background(), storage.UserRecord{
		Email:        "user@example.com",
		PasswordHash: "hash",
		Role:         "user",
	})

	require.NoError(t, err)
	assert.Equal(t, "user-uuid", user.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserConflict(t *testing.T) {
	_, mock, repo := setupMockDB(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("user@example.com", "hash", "user").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	_, err := repo.CreateUser(context.Background(), storage.UserRecord{
		Email:        "user@example.com",
		PasswordHash: "hash",
		Role:         "user",
	})

	assert.ErrorIs(t, err, storage.ErrConflict)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByEmail(t *testing.T) {
	_, mock, repo := setupMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email`).
		WithArgs("user@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "role", "created_at"}).
			AddRow("user-uuid", "user@example.com", "hash", "user", time.Now()))

	user, err := repo.FindUserByEmail(context.Background(), "user@example.com")

	require.NoError(t, err)
	assert.Equal(t, "user-uuid", user.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByEmailNotFound(t *testing.T) {
	_, mock, repo := setupMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email`).
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByEmail(context.Background(), "nobody@example.com")

	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteUser(t *testing.T) {
	_, mock, repo := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM analyses WHERE user_id`).
		WithArgs("user-uuid").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM users WHERE id`).
		WithArgs("user-uuid").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.DeleteUser(context.Background(), "user-uuid")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUserNotFound(t *testing.T) {
	_, mock, repo := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM analyses WHERE user_id`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM users WHERE id`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.DeleteUser(context.Background(), "ghost")

	assert.ErrorIs(t, err, storage.ErrNotFound)
}
