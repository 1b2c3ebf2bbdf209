package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/lectern/internal/lectern/domain"
	"github.com/aussiebroadwan/lectern/internal/lectern/store"
	"github.com/aussiebroadwan/lectern/internal/lectern/store/drivers/sqlite"
	"github.com/aussiebroadwan/lectern/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(sqlite.DSN(":memory:"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func seedUser(t *testing.T, s store.Store, email string, role domain.Role) domain.User {
	t.Helper()

	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		FullName:     "User " + email,
		PasswordHash: "hash",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func seedClassroom(t *testing.T, s store.Store, ownerID string) domain.Classroom {
	t.Helper()

	now := time.Now().UTC()
	c := domain.Classroom{
		ID:        idx.New().String(),
		Name:      "Algebra",
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.Classrooms().CreateClassroom(context.Background(), c))
	return c
}

func TestMigrationsReportVersion(t *testing.T) {
	s := newStore(t)

	version, dirty, err := s.SchemaVersion()
	require.NoError(t, err)
	require.False(t, dirty)
	require.EqualValues(t, 3, version)

	// Applying twice is a no-op.
	require.NoError(t, s.ApplyMigrations())
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	empty, err := s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	u := seedUser(t, s, "a@x.com", domain.RoleStudent)

	t.Run("duplicate email", func(t *testing.T) {
		dup := u
		dup.ID = idx.New().String()
		dup.FullName = "Someone Else"
		err := s.Users().CreateUser(ctx, dup)
		require.ErrorIs(t, err, store.ErrAlreadyExists)

		got, err := s.Users().GetUserByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
		require.Equal(t, u.FullName, got.FullName)
	})

	t.Run("activate and deactivate", func(t *testing.T) {
		now := time.Now().UTC()
		require.NoError(t, s.Users().ActivateUser(ctx, u.ID, now))

		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.True(t, got.Active)
		require.Nil(t, got.DeactivatedAt)

		require.NoError(t, s.Users().DeactivateUser(ctx, u.ID, now))
		got, err = s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.False(t, got.Active)
		require.NotNil(t, got.DeactivatedAt)
		require.WithinDuration(t, now, *got.DeactivatedAt, time.Second)
	})

	t.Run("profile fields", func(t *testing.T) {
		now := time.Now().UTC()
		require.NoError(t, s.Users().UpdateFullName(ctx, u.ID, "Alice A", now))
		require.NoError(t, s.Users().UpdateRole(ctx, u.ID, domain.RoleTeacher, now))
		require.NoError(t, s.Users().UpdateAvatarKey(ctx, u.ID, "avatars/"+u.ID+"/1", now))
		require.NoError(t, s.Users().UpdatePasswordHash(ctx, u.ID, "hash2", now))

		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "Alice A", got.FullName)
		require.Equal(t, domain.RoleTeacher, got.Role)
		require.Equal(t, "avatars/"+u.ID+"/1", got.AvatarKey)
		require.Equal(t, "hash2", got.PasswordHash)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := s.Users().GetUserByID(ctx, "missing")
		require.ErrorIs(t, err, store.ErrNotFound)
		require.ErrorIs(t, s.Users().UpdateFullName(ctx, "missing", "x", time.Now()), store.ErrNotFound)
	})

	t.Run("list pages", func(t *testing.T) {
		seedUser(t, s, "b@x.com", domain.RoleStudent)
		seedUser(t, s, "c@x.com", domain.RoleStudent)

		all, err := s.Users().ListUsers(ctx, store.Page{})
		require.NoError(t, err)
		require.Len(t, all, 3)

		page, err := s.Users().ListUsers(ctx, store.Page{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, page, 1)
		require.Equal(t, all[1].ID, page[0].ID)
	})
}

func TestOneTimeCodes(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	now := time.Now().UTC()

	code := domain.OneTimeCode{
		ID:        idx.New().String(),
		Email:     "a@x.com",
		Code:      "123456",
		Purpose:   domain.PurposeVerification,
		CreatedAt: now,
		ExpiresAt: now.Add(5 * time.Minute),
	}
	require.NoError(t, s.OneTimeCodes().CreateCode(ctx, code))

	tests := []struct {
		name    string
		email   string
		code    string
		purpose domain.CodePurpose
		at      time.Time
		found   bool
	}{
		{"exact match", "a@x.com", "123456", domain.PurposeVerification, now, true},
		{"wrong code", "a@x.com", "654321", domain.PurposeVerification, now, false},
		{"wrong email", "b@x.com", "123456", domain.PurposeVerification, now, false},
		{"wrong purpose", "a@x.com", "123456", domain.PurposePasswordReset, now, false},
		{"at expiry", "a@x.com", "123456", domain.PurposeVerification, code.ExpiresAt, false},
		{"after expiry", "a@x.com", "123456", domain.PurposeVerification, now.Add(time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.OneTimeCodes().FindValidCode(ctx, tt.email, tt.code, tt.purpose, tt.at)
			if !tt.found {
				require.ErrorIs(t, err, store.ErrNotFound)
				return
			}
			require.NoError(t, err)
			require.Equal(t, code.ID, got.ID)
		})
	}

	t.Run("delete is purpose scoped", func(t *testing.T) {
		reset := code
		reset.ID = idx.New().String()
		reset.Purpose = domain.PurposePasswordReset
		require.NoError(t, s.OneTimeCodes().CreateCode(ctx, reset))

		n, err := s.OneTimeCodes().DeleteCodes(ctx, "a@x.com", domain.PurposeVerification)
		require.NoError(t, err)
		require.EqualValues(t, 1, n)

		_, err = s.OneTimeCodes().FindValidCode(ctx, "a@x.com", "123456", domain.PurposePasswordReset, now)
		require.NoError(t, err)

		n, err = s.OneTimeCodes().DeleteCodes(ctx, "a@x.com", domain.PurposeVerification)
		require.NoError(t, err)
		require.Zero(t, n)
	})

	t.Run("expired sweep", func(t *testing.T) {
		n, err := s.OneTimeCodes().DeleteExpiredCodes(ctx, now.Add(time.Hour))
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
	})
}

func TestRefreshTokens(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	now := time.Now().UTC()
	u := seedUser(t, s, "a@x.com", domain.RoleStudent)

	tok := domain.RefreshToken{
		ID:        idx.New().String(),
		UserID:    u.ID,
		TokenHash: "fingerprint-1",
		ExpiresAt: now.Add(time.Hour),
		CreatedAt: now,
	}
	require.NoError(t, s.RefreshTokens().CreateRefreshToken(ctx, tok))

	got, err := s.RefreshTokens().GetValidRefreshToken(ctx, "fingerprint-1", now)
	require.NoError(t, err)
	require.Equal(t, u.ID, got.UserID)

	_, err = s.RefreshTokens().GetValidRefreshToken(ctx, "fingerprint-1", tok.ExpiresAt)
	require.ErrorIs(t, err, store.ErrNotFound)

	dup := tok
	dup.ID = idx.New().String()
	require.ErrorIs(t, s.RefreshTokens().CreateRefreshToken(ctx, dup), store.ErrAlreadyExists)

	n, err := s.RefreshTokens().DeleteRefreshToken(ctx, "fingerprint-1")
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	_, err = s.RefreshTokens().GetValidRefreshToken(ctx, "fingerprint-1", now)
	require.ErrorIs(t, err, store.ErrNotFound)

	for _, hash := range []string{"fp-a", "fp-b"} {
		require.NoError(t, s.RefreshTokens().CreateRefreshToken(ctx, domain.RefreshToken{
			ID: idx.New().String(), UserID: u.ID, TokenHash: hash, ExpiresAt: now.Add(time.Hour), CreatedAt: now,
		}))
	}
	n, err = s.RefreshTokens().DeleteUserRefreshTokens(ctx, u.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)
}

func TestMembershipAndJoinRequests(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	now := time.Now().UTC()

	teacher := seedUser(t, s, "t@x.com", domain.RoleTeacher)
	student := seedUser(t, s, "s@x.com", domain.RoleStudent)
	room := seedClassroom(t, s, teacher.ID)

	jr := domain.JoinRequest{ID: idx.New().String(), ClassroomID: room.ID, StudentID: student.ID, CreatedAt: now}
	require.NoError(t, s.JoinRequests().CreateJoinRequest(ctx, jr))

	dup := jr
	dup.ID = idx.New().String()
	require.ErrorIs(t, s.JoinRequests().CreateJoinRequest(ctx, dup), store.ErrAlreadyExists)

	pending, err := s.JoinRequests().ListJoinRequests(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, "s@x.com", pending[0].StudentEmail)

	member := domain.ClassroomMember{ClassroomID: room.ID, StudentID: student.ID, Active: true, Approved: true, JoinedAt: now, UpdatedAt: now}
	require.NoError(t, s.Members().UpsertMember(ctx, member))

	rooms, err := s.Classrooms().ListClassroomsForStudent(ctx, student.ID, store.Page{})
	require.NoError(t, err)
	require.Len(t, rooms, 1)

	// Blocking flips the flag but keeps the original join time.
	later := now.Add(time.Minute)
	member.Active = false
	member.Approved = false
	member.JoinedAt = later
	member.UpdatedAt = later
	require.NoError(t, s.Members().UpsertMember(ctx, member))

	got, err := s.Members().GetMember(ctx, room.ID, student.ID)
	require.NoError(t, err)
	require.False(t, got.Active)
	require.True(t, got.Approved, "approval survives a block")
	require.WithinDuration(t, now, got.JoinedAt, time.Second)

	rooms, err = s.Classrooms().ListClassroomsForStudent(ctx, student.ID, store.Page{})
	require.NoError(t, err)
	require.Empty(t, rooms)

	removed, err := s.Members().DeleteMember(ctx, room.ID, student.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, removed)
	_, err = s.Members().GetMember(ctx, room.ID, student.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	n, err := s.JoinRequests().DeleteJoinRequest(ctx, room.ID, student.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
	_, err = s.JoinRequests().GetJoinRequest(ctx, room.ID, student.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSoftDeleteHidesDescendants(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	now := time.Now().UTC()

	teacher := seedUser(t, s, "t@x.com", domain.RoleTeacher)
	room := seedClassroom(t, s, teacher.ID)

	lecture := domain.Lecture{
		ID: idx.New().String(), ClassroomID: room.ID, Title: "Intro", CreatedBy: teacher.ID,
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, s.Lectures().CreateLecture(ctx, lecture))
	quiz := domain.Quiz{ID: idx.New().String(), LectureID: lecture.ID, Title: "Q1", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.Quizzes().CreateQuiz(ctx, quiz))

	require.NoError(t, s.Classrooms().DeleteClassroom(ctx, room.ID, now))

	_, err := s.Classrooms().GetClassroom(ctx, room.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Lectures().GetLecture(ctx, lecture.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Quizzes().GetQuiz(ctx, quiz.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, s.Classrooms().DeleteClassroom(ctx, room.ID, now), store.ErrNotFound)

	owned, err := s.Classrooms().ListClassroomsByOwner(ctx, teacher.ID, store.Page{})
	require.NoError(t, err)
	require.Empty(t, owned)
}

func TestQuizTree(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	now := time.Now().UTC()

	teacher := seedUser(t, s, "t@x.com", domain.RoleTeacher)
	room := seedClassroom(t, s, teacher.ID)
	lecture := domain.Lecture{
		ID: idx.New().String(), ClassroomID: room.ID, Title: "Intro", CreatedBy: teacher.ID,
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, s.Lectures().CreateLecture(ctx, lecture))
	quiz := domain.Quiz{ID: idx.New().String(), LectureID: lecture.ID, Title: "Q1", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.Quizzes().CreateQuiz(ctx, quiz))

	// Inserted out of order; LoadQuestions sorts by position.
	second := domain.Question{ID: idx.New().String(), QuizID: quiz.ID, Prompt: "second", Position: 2}
	first := domain.Question{ID: idx.New().String(), QuizID: quiz.ID, Prompt: "first", Position: 1}
	require.NoError(t, s.Quizzes().CreateQuestion(ctx, second))
	require.NoError(t, s.Quizzes().CreateQuestion(ctx, first))

	group := domain.OptionGroup{ID: idx.New().String(), QuestionID: first.ID, Label: "choices"}
	require.NoError(t, s.Quizzes().CreateOptionGroup(ctx, group))
	optB := domain.AnswerOption{ID: idx.New().String(), OptionGroupID: group.ID, Text: "b", Position: 1}
	optA := domain.AnswerOption{ID: idx.New().String(), OptionGroupID: group.ID, Text: "a", IsCorrect: true}
	require.NoError(t, s.Quizzes().CreateAnswerOption(ctx, optB))
	require.NoError(t, s.Quizzes().CreateAnswerOption(ctx, optA))

	tree, err := s.Quizzes().LoadQuestions(ctx, quiz.ID)
	require.NoError(t, err)
	require.Len(t, tree, 2)
	require.Equal(t, "first", tree[0].Prompt)
	require.Equal(t, "second", tree[1].Prompt)
	require.NotNil(t, tree[1].OptionGroups)
	require.Len(t, tree[0].OptionGroups, 1)
	require.Equal(t, []string{"a", "b"}, []string{
		tree[0].OptionGroups[0].Options[0].Text,
		tree[0].OptionGroups[0].Options[1].Text,
	})
	require.True(t, tree[0].OptionGroups[0].Options[0].IsCorrect)

	scope, err := s.Quizzes().AnswerOptionScope(ctx, optA.ID)
	require.NoError(t, err)
	require.Equal(t, store.Scope{ClassroomID: room.ID, LectureID: lecture.ID, QuizID: quiz.ID}, scope)

	t.Run("cascade on question delete", func(t *testing.T) {
		require.NoError(t, s.Quizzes().DeleteQuestion(ctx, first.ID))

		_, err := s.Quizzes().OptionGroupScope(ctx, group.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
		require.ErrorIs(t, s.Quizzes().DeleteAnswerOption(ctx, optA.ID), store.ErrNotFound)

		tree, err := s.Quizzes().LoadQuestions(ctx, quiz.ID)
		require.NoError(t, err)
		require.Len(t, tree, 1)
	})

	t.Run("deleted quiz hides scope", func(t *testing.T) {
		require.NoError(t, s.Quizzes().DeleteQuiz(ctx, quiz.ID, now))
		_, err := s.Quizzes().QuestionScope(ctx, second.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx store.Tx) error {
		seedUser(t, tx, "rolled@x.com", domain.RoleStudent)
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Users().GetUserByEmail(ctx, "rolled@x.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	err = s.WithTx(ctx, func(tx store.Tx) error {
		seedUser(t, tx, "kept@x.com", domain.RoleStudent)
		return tx.WithTx(ctx, func(store.Tx) error { return nil })
	})
	require.ErrorIs(t, err, sql.ErrTxDone, "nested transactions are rejected")

	require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
		seedUser(t, tx, "kept@x.com", domain.RoleStudent)
		return nil
	}))
	_, err = s.Users().GetUserByEmail(ctx, "kept@x.com")
	require.NoError(t, err)
}
