package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/lectern/internal/lectern/domain"
	"github.com/aussiebroadwan/lectern/internal/lectern/store"
)

// Actor is the authenticated caller an operation runs on behalf of.
type Actor struct {
	UserID string
	Role   domain.Role
}

// canManage: admins manage everything, teachers their own classrooms.
func canManage(a Actor, c domain.Classroom) bool {
	return a.Role == domain.RoleAdmin || (a.Role.CanTeach() && c.OwnerID == a.UserID)
}

func authorizeManage(a Actor, c domain.Classroom) error {
	if !canManage(a, c) {
		return ErrForbidden
	}
	return nil
}

// authorizeView allows managers and students with an active membership.
func authorizeView(ctx context.Context, st store.Store, a Actor, c domain.Classroom) error {
	if canManage(a, c) {
		return nil
	}
	m, err := st.Members().GetMember(ctx, c.ID, a.UserID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrForbidden
	case err != nil:
		return err
	case !m.Active:
		return ErrForbidden
	}
	return nil
}

func loadClassroom(ctx context.Context, st store.Store, id string) (domain.Classroom, error) {
	c, err := st.Classrooms().GetClassroom(ctx, id)
	if err != nil {
		return domain.Classroom{}, notFound(err, ErrClassroomNotFound)
	}
	return c, nil
}

// loadLecture returns a lecture together with its classroom.
func loadLecture(ctx context.Context, st store.Store, id string) (domain.Lecture, domain.Classroom, error) {
	l, err := st.Lectures().GetLecture(ctx, id)
	if err != nil {
		return domain.Lecture{}, domain.Classroom{}, notFound(err, ErrLectureNotFound)
	}
	c, err := loadClassroom(ctx, st, l.ClassroomID)
	if err != nil {
		return domain.Lecture{}, domain.Classroom{}, err
	}
	return l, c, nil
}

// manageScope loads the classroom of a quiz element and checks management
// rights.
func manageScope(ctx context.Context, st store.Store, a Actor, scope store.Scope) error {
	c, err := loadClassroom(ctx, st, scope.ClassroomID)
	if err != nil {
		return err
	}
	return authorizeManage(a, c)
}
