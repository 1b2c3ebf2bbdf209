package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/lectern/internal/lectern/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface implemented by the drivers. It
// hands out sub-repositories instead of flattening every query onto one type,
// and a Tx exposes the same repositories so a flow can be moved into a
// transaction without changing the calls it makes.
type Store interface {
	Users() Users
	OneTimeCodes() OneTimeCodes
	RefreshTokens() RefreshTokens
	Classrooms() Classrooms
	Members() Members
	JoinRequests() JoinRequests
	Lectures() Lectures
	Quizzes() Quizzes

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise. Nested calls on a Tx fail with sql.ErrTxDone.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Page bounds a listing query.
type Page struct {
	Limit  int
	Offset int
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail expects an already normalised e-mail.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser returns ErrAlreadyExists when the e-mail is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// The update methods bump updated_at and return ErrNotFound when no row
	// matched.
	UpdateFullName(ctx context.Context, userID, fullName string, now time.Time) error
	UpdatePasswordHash(ctx context.Context, userID, hash string, now time.Time) error
	UpdateRole(ctx context.Context, userID string, role domain.Role, now time.Time) error
	UpdateAvatarKey(ctx context.Context, userID, key string, now time.Time) error
	ActivateUser(ctx context.Context, userID string, now time.Time) error
	DeactivateUser(ctx context.Context, userID string, now time.Time) error

	// ListUsers is ordered by creation, oldest first.
	ListUsers(ctx context.Context, page Page) ([]domain.User, error)

	IsEmpty(ctx context.Context) (bool, error)
}

type OneTimeCodes interface {
	CreateCode(ctx context.Context, c domain.OneTimeCode) error

	// FindValidCode matches the exact (email, code, purpose) triple with
	// expires_at > now and fewer than domain.MaxCodeAttempts failed tries.
	FindValidCode(ctx context.Context, email, code string, purpose domain.CodePurpose, now time.Time) (domain.OneTimeCode, error)

	// AddAttempt counts a failed try against every live code for
	// (email, purpose).
	AddAttempt(ctx context.Context, email string, purpose domain.CodePurpose, now time.Time) (int64, error)

	// DeleteCodes removes every code for (email, purpose).
	DeleteCodes(ctx context.Context, email string, purpose domain.CodePurpose) (int64, error)

	DeleteExpiredCodes(ctx context.Context, now time.Time) (int64, error)
}

type RefreshTokens interface {
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// GetValidRefreshToken looks up a fingerprint with expires_at > now.
	GetValidRefreshToken(ctx context.Context, hash string, now time.Time) (domain.RefreshToken, error)

	DeleteRefreshToken(ctx context.Context, hash string) (int64, error)
	DeleteUserRefreshTokens(ctx context.Context, userID string) (int64, error)
	DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}

// Classrooms never return soft-deleted rows.
type Classrooms interface {
	CreateClassroom(ctx context.Context, c domain.Classroom) error
	GetClassroom(ctx context.Context, id string) (domain.Classroom, error)
	UpdateClassroom(ctx context.Context, c domain.Classroom) error
	DeleteClassroom(ctx context.Context, id string, now time.Time) error

	ListClassrooms(ctx context.Context, page Page) ([]domain.Classroom, error)
	ListClassroomsByOwner(ctx context.Context, ownerID string, page Page) ([]domain.Classroom, error)

	// ListClassroomsForStudent returns classrooms with an active membership.
	ListClassroomsForStudent(ctx context.Context, studentID string, page Page) ([]domain.Classroom, error)
}

type Members interface {
	GetMember(ctx context.Context, classroomID, studentID string) (domain.ClassroomMember, error)

	// UpsertMember inserts the membership or overwrites its active flag.
	// Approval is sticky: an existing approved row stays approved.
	UpsertMember(ctx context.Context, m domain.ClassroomMember) error
	DeleteMember(ctx context.Context, classroomID, studentID string) (int64, error)

	ListMembers(ctx context.Context, classroomID string) ([]domain.ClassroomMember, error)
}

type JoinRequests interface {
	// CreateJoinRequest returns ErrAlreadyExists for a duplicate pair.
	CreateJoinRequest(ctx context.Context, r domain.JoinRequest) error
	GetJoinRequest(ctx context.Context, classroomID, studentID string) (domain.JoinRequest, error)
	DeleteJoinRequest(ctx context.Context, classroomID, studentID string) (int64, error)
	ListJoinRequests(ctx context.Context, classroomID string) ([]domain.JoinRequest, error)
}

// Lectures never return soft-deleted rows, nor rows of deleted classrooms.
type Lectures interface {
	CreateLecture(ctx context.Context, l domain.Lecture) error
	GetLecture(ctx context.Context, id string) (domain.Lecture, error)
	UpdateLecture(ctx context.Context, l domain.Lecture) error
	DeleteLecture(ctx context.Context, id string, now time.Time) error

	// ListLectures is ordered by position, then creation.
	ListLectures(ctx context.Context, classroomID string) ([]domain.Lecture, error)
}

// Scope locates a quiz element inside its classroom.
type Scope struct {
	ClassroomID string
	LectureID   string
	QuizID      string
}

type Quizzes interface {
	CreateQuiz(ctx context.Context, q domain.Quiz) error

	// GetQuiz returns the quiz without its questions.
	GetQuiz(ctx context.Context, id string) (domain.Quiz, error)
	UpdateQuiz(ctx context.Context, q domain.Quiz) error
	DeleteQuiz(ctx context.Context, id string, now time.Time) error
	ListQuizzes(ctx context.Context, lectureID string) ([]domain.Quiz, error)

	CreateQuestion(ctx context.Context, q domain.Question) error
	UpdateQuestion(ctx context.Context, q domain.Question) error
	DeleteQuestion(ctx context.Context, id string) error

	CreateOptionGroup(ctx context.Context, g domain.OptionGroup) error
	UpdateOptionGroup(ctx context.Context, g domain.OptionGroup) error
	DeleteOptionGroup(ctx context.Context, id string) error

	CreateAnswerOption(ctx context.Context, o domain.AnswerOption) error
	UpdateAnswerOption(ctx context.Context, o domain.AnswerOption) error
	DeleteAnswerOption(ctx context.Context, id string) error

	// LoadQuestions returns the question tree of a quiz, each level ordered
	// by position.
	LoadQuestions(ctx context.Context, quizID string) ([]domain.Question, error)

	QuestionScope(ctx context.Context, questionID string) (Scope, error)
	OptionGroupScope(ctx context.Context, groupID string) (Scope, error)
	AnswerOptionScope(ctx context.Context, optionID string) (Scope, error)
}
