// Package repository implements postgres-backed persistence for analyses
// and user accounts.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/pranav06082004/Authen-X/internal/storage"
)

func InitDB(ps string, logger *zap.Logger) *sql.DB {
	db, err := sql.Open("pgx", ps)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	createUsers := `
		CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`

	createAnalyses := `
		CREATE TABLE IF NOT EXISTS analyses (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL,
		input_text TEXT,
		input_url TEXT,
		result TEXT NOT NULL,
		confidence DOUBLE PRECISION NOT NULL,
		key_phrases JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`

	for _, stmt := range []string{createUsers, createAnalyses} {
		if _, err := db.Exec(stmt); err != nil {
			logger.Fatal("cannot create table", zap.Error(err))
		}
	}

	logger.Info("Database connected and tables ready.")
	return db
}

type AnalysisRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func CreateAnalysisRepository(db *sql.DB, logger *zap.Logger) *AnalysisRepository {
	return &AnalysisRepository{
		db:     db,
		logger: logger,
	}
}

func (r *AnalysisRepository) WriteAnalysis(ctx context.Context, a storage.AnalysisRecord) (*storage.AnalysisRecord, error) {
	phrases, err := json.Marshal(a.KeyPhrases)
	if err != nil {
		return nil, err
	}

	row := r.db.QueryRowContext(ctx,
		`INSERT INTO analyses(user_id, input_text, input_url, result, confidence, key_phrases)
		 VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $6)
		 RETURNING id, created_at;`,
		a.UserID, a.InputText, a.InputURL, a.Result, a.Confidence, phrases,
	)

	if err := row.Scan(&a.ID, &a.CreatedAt); err != nil {
		r.logger.Error("cannot insert analysis", zap.Error(err))
		return nil, err
	}

	return &a, nil
}

func (r *AnalysisRepository) FindAnalysesByUserID(ctx context.Context, userID string) ([]storage.AnalysisRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, COALESCE(input_text, ''), COALESCE(input_url, ''), result, confidence, key_phrases, created_at
		 FROM analyses WHERE user_id = $1 ORDER BY created_at DESC;`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAnalyses(rows)
}

func (r *AnalysisRepository) CountAnalyses(ctx context.Context) (map[string]int, float64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT result, COUNT(*), COALESCE(AVG(confidence), 0) FROM analyses GROUP BY result;`)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	var sum float64
	var total int
	for rows.Next() {
		var result string
		var count int
		var avg float64
		if err := rows.Scan(&result, &count, &avg); err != nil {
			return nil, 0, err
		}
		counts[result] = count
		sum += avg * float64(count)
		total += count
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	overall := 0.0
	if total > 0 {
		overall = sum / float64(total)
	}

	return counts, overall, nil
}

func (r *AnalysisRepository) RecentAnalyses(ctx context.Context, limit int) ([]storage.AnalysisRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, COALESCE(input_text, ''), COALESCE(input_url, ''), result, confidence, key_phrases, created_at
		 FROM analyses ORDER BY created_at DESC LIMIT $1;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAnalyses(rows)
}

func (r *AnalysisRepository) DeleteAnalysesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM analyses WHERE created_at < $1;`, cutoff)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

func (r *AnalysisRepository) CreateUser(ctx context.Context, u storage.UserRecord) (*storage.UserRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO users(email, password_hash, role) VALUES ($1, $2, $3) RETURNING id, created_at;`,
		u.Email, u.PasswordHash, u.Role,
	)

	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, storage.ErrConflict
		}

		r.logger.Error("cannot insert user", zap.Error(err))
		return nil, err
	}

	return &u, nil
}

func (r *AnalysisRepository) FindUserByEmail(ctx context.Context, email string) (*storage.UserRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, role, created_at FROM users WHERE email = $1;`, email)

	return scanUser(row)
}

func (r *AnalysisRepository) FindUserByID(ctx context.Context, id string) (*storage.UserRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, role, created_at FROM users WHERE id = $1;`, id)

	return scanUser(row)
}

func (r *AnalysisRepository) ListUsers(ctx context.Context) ([]storage.UserRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, email, password_hash, role, created_at FROM users ORDER BY created_at DESC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]storage.UserRecord, 0)
	for rows.Next() {
		var u storage.UserRecord
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

func (r *AnalysisRepository) DeleteUser(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM analyses WHERE user_id = $1;`, id); err != nil {
		tx.Rollback()
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1;`, id)
	if err != nil {
		tx.Rollback()
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return err
	}
	if affected == 0 {
		tx.Rollback()
		return storage.ErrNotFound
	}

	return tx.Commit()
}

func (r *AnalysisRepository) PingContext(c context.Context) error {
	return r.db.PingContext(c)
}

func scanAnalyses(rows *sql.Rows) ([]storage.AnalysisRecord, error) {
	records := make([]storage.AnalysisRecord, 0)

	for rows.Next() {
		var a storage.AnalysisRecord
		var phrases []byte
		if err := rows.Scan(&a.ID, &a.UserID, &a.InputText, &a.InputURL, &a.Result, &a.Confidence, &phrases, &a.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(phrases, &a.KeyPhrases); err != nil {
			a.KeyPhrases = []string{}
		}
		records = append(records, a)
	}

	return records, rows.Err()
}

func scanUser(row *sql.Row) (*storage.UserRecord, error) {
	var u storage.UserRecord

	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}
