package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/lectern/internal/lectern/domain"
	"github.com/aussiebroadwan/lectern/internal/lectern/store/drivers/sqlite/gen"
)

type lecturesRepo struct {
	q *gen.Queries
}

func (r *lecturesRepo) CreateLecture(ctx context.Context, l domain.Lecture) error {
	return mapConstraint(r.q.CreateLecture(ctx, gen.CreateLectureParams{
		ID:          l.ID,
		ClassroomID: l.ClassroomID,
		Title:       l.Title,
		Content:     l.Content,
		Position:    int64(l.Position),
		CreatedBy:   l.CreatedBy,
		CreatedAt:   utc(l.CreatedAt),
		UpdatedAt:   utc(l.UpdatedAt),
	}))
}

func (r *lecturesRepo) GetLecture(ctx context.Context, id string) (domain.Lecture, error) {
	row, err := r.q.GetLecture(ctx, id)
	if err != nil {
		return domain.Lecture{}, mapNotFound(err)
	}
	return mapLecture(row), nil
}

func (r *lecturesRepo) UpdateLecture(ctx context.Context, l domain.Lecture) error {
	return requireRow(r.q.UpdateLecture(ctx, gen.UpdateLectureParams{
		Title:     l.Title,
		Content:   l.Content,
		Position:  int64(l.Position),
		UpdatedAt: utc(l.UpdatedAt),
		ID:        l.ID,
	}))
}

func (r *lecturesRepo) DeleteLecture(ctx context.Context, id string, now time.Time) error {
	return requireRow(r.q.SoftDeleteLecture(ctx, gen.SoftDeleteLectureParams{
		DeletedAt: mapTimeNull(now),
		UpdatedAt: utc(now),
		ID:        id,
	}))
}

func (r *lecturesRepo) ListLectures(ctx context.Context, classroomID string) ([]domain.Lecture, error) {
	rows, err := r.q.ListLectures(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Lecture, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapLecture(row))
	}
	return out, nil
}
