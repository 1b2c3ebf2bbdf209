package service

import (
	"errors"

	"github.com/aussiebroadwan/lectern/internal/lectern/store"
	"github.com/aussiebroadwan/lectern/pkg/apperr"
)

// Auth
var (
	ErrEmailTaken         = apperr.New(apperr.KindConflict, "auth.email_taken", "email already registered")
	ErrInvalidCredentials = apperr.New(apperr.KindUnauthorized, "auth.invalid_credentials", "invalid credentials")
	ErrInvalidCode        = apperr.New(apperr.KindUnprocessable, "auth.invalid_code", "invalid or expired code")
	ErrInvalidRefresh     = apperr.New(apperr.KindUnauthorized, "auth.invalid_refresh", "invalid or expired refresh token")
	ErrWrongPassword      = apperr.New(apperr.KindUnprocessable, "auth.wrong_password", "current password does not match")
	ErrForbidden          = apperr.New(apperr.KindForbidden, "auth.forbidden", "forbidden")
)

// Users
var (
	ErrUserNotFound     = apperr.New(apperr.KindNotFound, "user.not_found", "user not found")
	ErrUserDeactivated  = apperr.New(apperr.KindUnprocessable, "user.deactivated", "user deactivated")
	ErrAvatarKey        = apperr.New(apperr.KindValidation, "user.avatar_key", "avatar key belongs to another user")
	ErrSelfRoleChange   = apperr.New(apperr.KindUnprocessable, "user.self_demotion", "admins cannot change their own role")
	ErrMediaUnavailable = apperr.New(apperr.KindUnavailable, "media.unavailable", "object storage not configured")
)

// Classrooms
var (
	ErrClassroomNotFound   = apperr.New(apperr.KindNotFound, "classroom.not_found", "classroom not found")
	ErrAlreadyMember       = apperr.New(apperr.KindConflict, "classroom.already_member", "already a member")
	ErrAlreadyRequested    = apperr.New(apperr.KindConflict, "classroom.already_requested", "join request already pending")
	ErrBlocked             = apperr.New(apperr.KindUnprocessable, "classroom.blocked", "student blocked from classroom")
	ErrJoinRequestNotFound = apperr.New(apperr.KindNotFound, "classroom.join_request_not_found", "join request not found")
	ErrMemberNotFound      = apperr.New(apperr.KindNotFound, "classroom.member_not_found", "member not found")
	ErrNotAStudent         = apperr.New(apperr.KindUnprocessable, "classroom.not_a_student", "user is not a student")
)

// Lectures and quizzes
var (
	ErrLectureNotFound     = apperr.New(apperr.KindNotFound, "lecture.not_found", "lecture not found")
	ErrQuizNotFound        = apperr.New(apperr.KindNotFound, "quiz.not_found", "quiz not found")
	ErrQuestionNotFound    = apperr.New(apperr.KindNotFound, "question.not_found", "question not found")
	ErrOptionGroupNotFound = apperr.New(apperr.KindNotFound, "option_group.not_found", "option group not found")
	ErrOptionNotFound      = apperr.New(apperr.KindNotFound, "option.not_found", "answer option not found")
)

// Message keys of successful operations that only answer with a sentence.
const (
	MsgStudentBlocked   = "classroom.student_blocked"
	MsgStudentUnblocked = "classroom.student_unblocked"
)

// notFound translates store.ErrNotFound into the domain error e and passes
// anything else through.
func notFound(err error, e *apperr.Error) error {
	if errors.Is(err, store.ErrNotFound) {
		return e.Wrap(err)
	}
	return err
}
