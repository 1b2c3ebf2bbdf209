package service

import (
	"context"
	"strings"
	"time"

	"github.com/aussiebroadwan/lectern/internal/lectern/domain"
	"github.com/aussiebroadwan/lectern/internal/lectern/store"
	"github.com/aussiebroadwan/lectern/pkg/idx"
)

type LectureInput struct {
	Title    string
	Content  string
	Position int
}

type LecturePatch struct {
	Title    *string
	Content  *string
	Position *int
}

// LectureService manages lectures. Access follows the owning classroom.
type LectureService struct {
	Store store.Store
	Now   func() time.Time
}

func (in *LectureInput) validate() error {
	in.Title = strings.TrimSpace(in.Title)

	f := fields{}
	f.text("title", in.Title, MaxTitleLength)
	f.maxLen("content", in.Content, MaxContentLength)
	f.position("position", in.Position)
	return f.err()
}

func (s *LectureService) Create(ctx context.Context, actor Actor, classroomID string, in LectureInput) (domain.Lecture, error) {
	c, err := loadClassroom(ctx, s.Store, classroomID)
	if err != nil {
		return domain.Lecture{}, err
	}
	if err := authorizeManage(actor, c); err != nil {
		return domain.Lecture{}, err
	}
	if err := in.validate(); err != nil {
		return domain.Lecture{}, err
	}

	now := s.now()
	l := domain.Lecture{
		ID:          idx.New().String(),
		ClassroomID: c.ID,
		Title:       in.Title,
		Content:     in.Content,
		Position:    in.Position,
		CreatedBy:   actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Lectures().CreateLecture(ctx, l); err != nil {
		return domain.Lecture{}, err
	}
	return l, nil
}

func (s *LectureService) Get(ctx context.Context, actor Actor, id string) (domain.Lecture, error) {
	l, c, err := loadLecture(ctx, s.Store, id)
	if err != nil {
		return domain.Lecture{}, err
	}
	if err := authorizeView(ctx, s.Store, actor, c); err != nil {
		return domain.Lecture{}, err
	}
	return l, nil
}

// ListByClassroom returns the lectures ordered by position.
func (s *LectureService) ListByClassroom(ctx context.Context, actor Actor, classroomID string) ([]domain.Lecture, error) {
	c, err := loadClassroom(ctx, s.Store, classroomID)
	if err != nil {
		return nil, err
	}
	if err := authorizeView(ctx, s.Store, actor, c); err != nil {
		return nil, err
	}
	return s.Store.Lectures().ListLectures(ctx, classroomID)
}

func (s *LectureService) Update(ctx context.Context, actor Actor, id string, p LecturePatch) (domain.Lecture, error) {
	l, err := s.managed(ctx, actor, id)
	if err != nil {
		return domain.Lecture{}, err
	}

	in := LectureInput{Title: l.Title, Content: l.Content, Position: l.Position}
	if p.Title != nil {
		in.Title = *p.Title
	}
	if p.Content != nil {
		in.Content = *p.Content
	}
	if p.Position != nil {
		in.Position = *p.Position
	}
	if err := in.validate(); err != nil {
		return domain.Lecture{}, err
	}

	l.Title, l.Content, l.Position, l.UpdatedAt = in.Title, in.Content, in.Position, s.now()
	if err := s.Store.Lectures().UpdateLecture(ctx, l); err != nil {
		return domain.Lecture{}, notFound(err, ErrLectureNotFound)
	}
	return l, nil
}

// Delete soft deletes the lecture together with its quizzes.
func (s *LectureService) Delete(ctx context.Context, actor Actor, id string) error {
	if _, err := s.managed(ctx, actor, id); err != nil {
		return err
	}
	return notFound(s.Store.Lectures().DeleteLecture(ctx, id, s.now()), ErrLectureNotFound)
}

func (s *LectureService) managed(ctx context.Context, actor Actor, id string) (domain.Lecture, error) {
	l, c, err := loadLecture(ctx, s.Store, id)
	if err != nil {
		return domain.Lecture{}, err
	}
	if err := authorizeManage(actor, c); err != nil {
		return domain.Lecture{}, err
	}
	return l, nil
}

func (s *LectureService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
