package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/lectern/internal/lectern/domain"
	"github.com/aussiebroadwan/lectern/internal/lectern/store"
	"github.com/aussiebroadwan/lectern/internal/lectern/store/drivers/sqlite/gen"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Store struct {
	db  *sql.DB
	q   *gen.Queries
	dsn string
}

// DSN builds a modernc.org/sqlite connection string for path with WAL,
// a busy timeout and foreign keys enabled on every pooled connection.
func DSN(path string) string {
	if path == ":memory:" {
		return "file::memory:?_pragma=foreign_keys(1)&_time_format=sqlite"
	}
	return fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_time_format=sqlite",
		path,
	)
}

// NewStore opens the database at dsn. Use DSN to build one from a path.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// An in-memory database lives and dies with its connection, so the pool
	// must never open a second one.
	if strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
		db.SetConnMaxIdleTime(0)
		db.SetConnMaxLifetime(0)
	}

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		q:   gen.New(db),
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) Users() store.Users                 { return &usersRepo{q: s.q} }
func (s *Store) OneTimeCodes() store.OneTimeCodes   { return &codesRepo{q: s.q} }
func (s *Store) RefreshTokens() store.RefreshTokens { return &refreshTokensRepo{q: s.q} }
func (s *Store) Classrooms() store.Classrooms       { return &classroomsRepo{q: s.q} }
func (s *Store) Members() store.Members             { return &membersRepo{q: s.q} }
func (s *Store) JoinRequests() store.JoinRequests   { return &joinRequestsRepo{q: s.q} }
func (s *Store) Lectures() store.Lectures           { return &lecturesRepo{q: s.q} }
func (s *Store) Quizzes() store.Quizzes             { return &quizzesRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConstraint turns a UNIQUE or PRIMARY KEY violation into
// store.ErrAlreadyExists.
func mapConstraint(err error) error {
	var serr *msqlite.Error
	if errors.As(err, &serr) {
		switch serr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %v", store.ErrAlreadyExists, err)
		}
	}
	return err
}

// requireRow reports ErrNotFound for an update or delete that matched nothing.
func requireRow(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func utc(t time.Time) time.Time { return t.UTC() }

func mapNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func mapStringNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func mapNullTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		val := nt.Time.UTC()
		return &val
	}
	return nil
}

func mapTimeNull(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func limitOffset(p store.Page) (int64, int64) {
	limit := p.Limit
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}
	return int64(limit), int64(max(p.Offset, 0))
}

func mapUser(row gen.User) domain.User {
	return domain.User{
		ID:            row.ID,
		Email:         row.Email,
		FullName:      row.FullName,
		PasswordHash:  row.PasswordHash,
		Role:          domain.Role(row.Role),
		Active:        row.IsActive,
		AvatarKey:     mapNullString(row.AvatarKey),
		CreatedAt:     row.CreatedAt.UTC(),
		UpdatedAt:     row.UpdatedAt.UTC(),
		DeactivatedAt: mapNullTimePtr(row.DeactivatedAt),
	}
}

func mapOneTimeCode(row gen.OneTimeCode) domain.OneTimeCode {
	return domain.OneTimeCode{
		ID:        row.ID,
		Email:     row.Email,
		Code:      row.Code,
		Purpose:   domain.CodePurpose(row.Purpose),
		CreatedAt: row.CreatedAt.UTC(),
		ExpiresAt: row.ExpiresAt.UTC(),
		Attempts:  int(row.Attempts),
	}
}

func mapRefreshToken(row gen.RefreshToken) domain.RefreshToken {
	return domain.RefreshToken{
		ID:        row.ID,
		UserID:    row.UserID,
		TokenHash: row.TokenHash,
		ExpiresAt: row.ExpiresAt.UTC(),
		CreatedAt: row.CreatedAt.UTC(),
	}
}

func mapClassroom(row gen.Classroom) domain.Classroom {
	return domain.Classroom{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		OwnerID:     row.OwnerID,
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
		DeletedAt:   mapNullTimePtr(row.DeletedAt),
	}
}

func mapClassrooms(rows []gen.Classroom) []domain.Classroom {
	out := make([]domain.Classroom, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapClassroom(row))
	}
	return out
}

func mapLecture(row gen.Lecture) domain.Lecture {
	return domain.Lecture{
		ID:          row.ID,
		ClassroomID: row.ClassroomID,
		Title:       row.Title,
		Content:     row.Content,
		Position:    int(row.Position),
		CreatedBy:   row.CreatedBy,
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
		DeletedAt:   mapNullTimePtr(row.DeletedAt),
	}
}

func mapQuiz(row gen.Quiz) domain.Quiz {
	return domain.Quiz{
		ID:          row.ID,
		LectureID:   row.LectureID,
		Title:       row.Title,
		Description: row.Description,
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
		DeletedAt:   mapNullTimePtr(row.DeletedAt),
	}
}
