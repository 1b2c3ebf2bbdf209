package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/lectern/internal/lectern/domain"
	"github.com/aussiebroadwan/lectern/internal/lectern/store"
	"github.com/aussiebroadwan/lectern/pkg/idx"
	"github.com/aussiebroadwan/lectern/pkg/slogx"
)

type ClassroomInput struct {
	Name        string
	Description string
}

// ClassroomPatch updates only the non-nil fields.
type ClassroomPatch struct {
	Name        *string
	Description *string
}

// ClassroomService owns classrooms and who may see them. Teachers manage the
// classrooms they own, admins manage all of them, students see those they are
// active members of.
type ClassroomService struct {
	Store store.Store
	Now   func() time.Time
}

func (in *ClassroomInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)

	f := fields{}
	f.text("name", in.Name, MaxTitleLength)
	f.maxLen("description", in.Description, MaxDescriptionLength)
	return f.err()
}

func (s *ClassroomService) Create(ctx context.Context, actor Actor, in ClassroomInput) (domain.Classroom, error) {
	if !actor.Role.CanTeach() {
		return domain.Classroom{}, ErrForbidden
	}
	if err := in.validate(); err != nil {
		return domain.Classroom{}, err
	}

	now := s.now()
	c := domain.Classroom{
		ID:          idx.New().String(),
		Name:        in.Name,
		Description: in.Description,
		OwnerID:     actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Classrooms().CreateClassroom(ctx, c); err != nil {
		return domain.Classroom{}, err
	}
	return c, nil
}

// Get returns a classroom the actor may view.
func (s *ClassroomService) Get(ctx context.Context, actor Actor, id string) (domain.Classroom, error) {
	c, err := loadClassroom(ctx, s.Store, id)
	if err != nil {
		return domain.Classroom{}, err
	}
	if err := authorizeView(ctx, s.Store, actor, c); err != nil {
		return domain.Classroom{}, err
	}
	return c, nil
}

// ListForUser returns every classroom for admins, owned classrooms for
// teachers and active memberships for students.
func (s *ClassroomService) ListForUser(ctx context.Context, actor Actor, page store.Page) ([]domain.Classroom, error) {
	switch actor.Role {
	case domain.RoleAdmin:
		return s.Store.Classrooms().ListClassrooms(ctx, page)
	case domain.RoleTeacher:
		return s.Store.Classrooms().ListClassroomsByOwner(ctx, actor.UserID, page)
	default:
		return s.Store.Classrooms().ListClassroomsForStudent(ctx, actor.UserID, page)
	}
}

func (s *ClassroomService) Update(ctx context.Context, actor Actor, id string, p ClassroomPatch) (domain.Classroom, error) {
	c, err := s.managed(ctx, actor, id)
	if err != nil {
		return domain.Classroom{}, err
	}

	in := ClassroomInput{Name: c.Name, Description: c.Description}
	if p.Name != nil {
		in.Name = *p.Name
	}
	if p.Description != nil {
		in.Description = *p.Description
	}
	if err := in.validate(); err != nil {
		return domain.Classroom{}, err
	}

	c.Name, c.Description, c.UpdatedAt = in.Name, in.Description, s.now()
	if err := s.Store.Classrooms().UpdateClassroom(ctx, c); err != nil {
		return domain.Classroom{}, notFound(err, ErrClassroomNotFound)
	}
	return c, nil
}

// Delete soft deletes the classroom; its lectures and quizzes disappear with
// it.
func (s *ClassroomService) Delete(ctx context.Context, actor Actor, id string) error {
	if _, err := s.managed(ctx, actor, id); err != nil {
		return err
	}
	return notFound(s.Store.Classrooms().DeleteClassroom(ctx, id, s.now()), ErrClassroomNotFound)
}

// RequestJoin files a join request for a student.
func (s *ClassroomService) RequestJoin(ctx context.Context, actor Actor, classroomID string) (domain.JoinRequest, error) {
	if actor.Role != domain.RoleStudent {
		return domain.JoinRequest{}, ErrNotAStudent
	}

	jr := domain.JoinRequest{
		ID:          idx.New().String(),
		ClassroomID: classroomID,
		StudentID:   actor.UserID,
		CreatedAt:   s.now(),
	}
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := loadClassroom(ctx, tx, classroomID); err != nil {
			return err
		}

		m, err := tx.Members().GetMember(ctx, classroomID, actor.UserID)
		switch {
		case err == nil && m.Active:
			return ErrAlreadyMember
		case err == nil:
			return ErrBlocked
		case !errors.Is(err, store.ErrNotFound):
			return err
		}

		if err := tx.JoinRequests().CreateJoinRequest(ctx, jr); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrAlreadyRequested.Wrap(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.JoinRequest{}, err
	}
	return jr, nil
}

func (s *ClassroomService) ListJoinRequests(ctx context.Context, actor Actor, classroomID string) ([]domain.JoinRequest, error) {
	if _, err := s.managed(ctx, actor, classroomID); err != nil {
		return nil, err
	}
	return s.Store.JoinRequests().ListJoinRequests(ctx, classroomID)
}

// ApproveJoin turns the pending request into an active membership.
func (s *ClassroomService) ApproveJoin(ctx context.Context, actor Actor, classroomID, studentID string) (domain.ClassroomMember, error) {
	if _, err := s.managed(ctx, actor, classroomID); err != nil {
		return domain.ClassroomMember{}, err
	}
	student, err := s.Store.Users().GetUserByID(ctx, studentID)
	if err != nil {
		return domain.ClassroomMember{}, notFound(err, ErrJoinRequestNotFound)
	}
	if student.DeactivatedAt != nil {
		return domain.ClassroomMember{}, ErrUserDeactivated
	}

	now := s.now()
	m := domain.ClassroomMember{
		ClassroomID: classroomID,
		StudentID:   studentID,
		Active:      true,
		Approved:    true,
		JoinedAt:    now,
		UpdatedAt:   now,
	}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		n, err := tx.JoinRequests().DeleteJoinRequest(ctx, classroomID, studentID)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrJoinRequestNotFound
		}
		return tx.Members().UpsertMember(ctx, m)
	})
	if err != nil {
		return domain.ClassroomMember{}, err
	}
	return m, nil
}

// RejectJoin drops the pending request.
func (s *ClassroomService) RejectJoin(ctx context.Context, actor Actor, classroomID, studentID string) error {
	if _, err := s.managed(ctx, actor, classroomID); err != nil {
		return err
	}
	n, err := s.Store.JoinRequests().DeleteJoinRequest(ctx, classroomID, studentID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJoinRequestNotFound
	}
	return nil
}

// Deactivate blocks a student: the membership is kept inactive (created
// unapproved if missing) and any pending join request is dropped, so the
// student can neither see the classroom nor ask to join again. It returns the
// message key confirming the block.
func (s *ClassroomService) Deactivate(ctx context.Context, actor Actor, classroomID, studentID string) (string, error) {
	if _, err := s.managed(ctx, actor, classroomID); err != nil {
		return "", err
	}
	if _, err := s.requireStudent(ctx, studentID); err != nil {
		return "", err
	}

	now := s.now()
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		m := domain.ClassroomMember{
			ClassroomID: classroomID,
			StudentID:   studentID,
			Active:      false,
			JoinedAt:    now,
			UpdatedAt:   now,
		}
		if err := tx.Members().UpsertMember(ctx, m); err != nil {
			return err
		}
		_, err := tx.JoinRequests().DeleteJoinRequest(ctx, classroomID, studentID)
		return err
	})
	if err != nil {
		return "", err
	}

	slogx.FromContext(ctx).Info("student blocked",
		slog.String("classroom_id", classroomID),
		slog.String("student_id", studentID),
	)
	return MsgStudentBlocked, nil
}

// Activate unblocks a student. An approved membership becomes active again;
// a row that only records a block is removed, so the student is back to
// asking to join.
func (s *ClassroomService) Activate(ctx context.Context, actor Actor, classroomID, studentID string) (string, error) {
	if _, err := s.managed(ctx, actor, classroomID); err != nil {
		return "", err
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		m, err := tx.Members().GetMember(ctx, classroomID, studentID)
		if err != nil {
			return notFound(err, ErrMemberNotFound)
		}
		if !m.Approved {
			_, err = tx.Members().DeleteMember(ctx, classroomID, studentID)
			return err
		}
		m.Active = true
		m.UpdatedAt = s.now()
		return tx.Members().UpsertMember(ctx, m)
	})
	if err != nil {
		return "", err
	}
	return MsgStudentUnblocked, nil
}

func (s *ClassroomService) ListMembers(ctx context.Context, actor Actor, classroomID string) ([]domain.ClassroomMember, error) {
	if _, err := s.managed(ctx, actor, classroomID); err != nil {
		return nil, err
	}
	return s.Store.Members().ListMembers(ctx, classroomID)
}

// managed loads a classroom the actor may manage.
func (s *ClassroomService) managed(ctx context.Context, actor Actor, id string) (domain.Classroom, error) {
	c, err := loadClassroom(ctx, s.Store, id)
	if err != nil {
		return domain.Classroom{}, err
	}
	if err := authorizeManage(actor, c); err != nil {
		return domain.Classroom{}, err
	}
	return c, nil
}

func (s *ClassroomService) requireStudent(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.User{}, notFound(err, ErrUserNotFound)
	}
	if u.Role != domain.RoleStudent {
		return domain.User{}, ErrNotAStudent
	}
	return u, nil
}

func (s *ClassroomService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
