package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/lectern/internal/lectern/domain"
	"github.com/aussiebroadwan/lectern/internal/lectern/store"
	"github.com/aussiebroadwan/lectern/internal/lectern/store/drivers/sqlite/gen"
)

type classroomsRepo struct {
	q *gen.Queries
}

func (r *classroomsRepo) CreateClassroom(ctx context.Context, c domain.Classroom) error {
	return mapConstraint(r.q.CreateClassroom(ctx, gen.CreateClassroomParams{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		OwnerID:     c.OwnerID,
		CreatedAt:   utc(c.CreatedAt),
		UpdatedAt:   utc(c.UpdatedAt),
	}))
}

func (r *classroomsRepo) GetClassroom(ctx context.Context, id string) (domain.Classroom, error) {
	row, err := r.q.GetClassroom(ctx, id)
	if err != nil {
		return domain.Classroom{}, mapNotFound(err)
	}
	return mapClassroom(row), nil
}

func (r *classroomsRepo) UpdateClassroom(ctx context.Context, c domain.Classroom) error {
	return requireRow(r.q.UpdateClassroom(ctx, gen.UpdateClassroomParams{
		Name:        c.Name,
		Description: c.Description,
		UpdatedAt:   utc(c.UpdatedAt),
		ID:          c.ID,
	}))
}

func (r *classroomsRepo) DeleteClassroom(ctx context.Context, id string, now time.Time) error {
	return requireRow(r.q.SoftDeleteClassroom(ctx, gen.SoftDeleteClassroomParams{
		DeletedAt: mapTimeNull(now),
		UpdatedAt: utc(now),
		ID:        id,
	}))
}

func (r *classroomsRepo) ListClassrooms(ctx context.Context, page store.Page) ([]domain.Classroom, error) {
	limit, offset := limitOffset(page)
	rows, err := r.q.ListClassrooms(ctx, gen.ListClassroomsParams{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return mapClassrooms(rows), nil
}

func (r *classroomsRepo) ListClassroomsByOwner(
	ctx context.Context,
	ownerID string,
	page store.Page,
) ([]domain.Classroom, error) {
	limit, offset := limitOffset(page)
	rows, err := r.q.ListClassroomsByOwner(ctx, gen.ListClassroomsByOwnerParams{
		OwnerID: ownerID,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return nil, err
	}
	return mapClassrooms(rows), nil
}

func (r *classroomsRepo) ListClassroomsForStudent(
	ctx context.Context,
	studentID string,
	page store.Page,
) ([]domain.Classroom, error) {
	limit, offset := limitOffset(page)
	rows, err := r.q.ListClassroomsForStudent(ctx, gen.ListClassroomsForStudentParams{
		StudentID: studentID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return nil, err
	}
	return mapClassrooms(rows), nil
}

type membersRepo struct {
	q *gen.Queries
}

func (r *membersRepo) GetMember(ctx context.Context, classroomID, studentID string) (domain.ClassroomMember, error) {
	row, err := r.q.GetClassroomMember(ctx, gen.GetClassroomMemberParams{
		ClassroomID: classroomID,
		StudentID:   studentID,
	})
	if err != nil {
		return domain.ClassroomMember{}, mapNotFound(err)
	}
	return domain.ClassroomMember{
		ClassroomID: row.ClassroomID,
		StudentID:   row.StudentID,
		Active:      row.IsActive,
		Approved:    row.Approved,
		JoinedAt:    row.JoinedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
	}, nil
}

func (r *membersRepo) UpsertMember(ctx context.Context, m domain.ClassroomMember) error {
	return r.q.UpsertClassroomMember(ctx, gen.UpsertClassroomMemberParams{
		ClassroomID: m.ClassroomID,
		StudentID:   m.StudentID,
		IsActive:    m.Active,
		Approved:    m.Approved,
		JoinedAt:    utc(m.JoinedAt),
		UpdatedAt:   utc(m.UpdatedAt),
	})
}

func (r *membersRepo) DeleteMember(ctx context.Context, classroomID, studentID string) (int64, error) {
	return r.q.DeleteClassroomMember(ctx, gen.DeleteClassroomMemberParams{
		ClassroomID: classroomID,
		StudentID:   studentID,
	})
}

func (r *membersRepo) ListMembers(ctx context.Context, classroomID string) ([]domain.ClassroomMember, error) {
	rows, err := r.q.ListClassroomMembers(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ClassroomMember, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.ClassroomMember{
			ClassroomID:  row.ClassroomID,
			StudentID:    row.StudentID,
			Active:       row.IsActive,
			Approved:     row.Approved,
			JoinedAt:     row.JoinedAt.UTC(),
			UpdatedAt:    row.UpdatedAt.UTC(),
			StudentEmail: row.Email,
			StudentName:  row.FullName,
		})
	}
	return out, nil
}

type joinRequestsRepo struct {
	q *gen.Queries
}

func (r *joinRequestsRepo) CreateJoinRequest(ctx context.Context, jr domain.JoinRequest) error {
	return mapConstraint(r.q.CreateJoinRequest(ctx, gen.CreateJoinRequestParams{
		ID:          jr.ID,
		ClassroomID: jr.ClassroomID,
		StudentID:   jr.StudentID,
		CreatedAt:   utc(jr.CreatedAt),
	}))
}

func (r *joinRequestsRepo) GetJoinRequest(ctx context.Context, classroomID, studentID string) (domain.JoinRequest, error) {
	row, err := r.q.GetJoinRequest(ctx, gen.GetJoinRequestParams{
		ClassroomID: classroomID,
		StudentID:   studentID,
	})
	if err != nil {
		return domain.JoinRequest{}, mapNotFound(err)
	}
	return domain.JoinRequest{
		ID:          row.ID,
		ClassroomID: row.ClassroomID,
		StudentID:   row.StudentID,
		CreatedAt:   row.CreatedAt.UTC(),
	}, nil
}

func (r *joinRequestsRepo) DeleteJoinRequest(ctx context.Context, classroomID, studentID string) (int64, error) {
	return r.q.DeleteJoinRequest(ctx, gen.DeleteJoinRequestParams{
		ClassroomID: classroomID,
		StudentID:   studentID,
	})
}

func (r *joinRequestsRepo) ListJoinRequests(ctx context.Context, classroomID string) ([]domain.JoinRequest, error) {
	rows, err := r.q.ListJoinRequests(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.JoinRequest, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.JoinRequest{
			ID:           row.ID,
			ClassroomID:  row.ClassroomID,
			StudentID:    row.StudentID,
			CreatedAt:    row.CreatedAt.UTC(),
			StudentEmail: row.Email,
			StudentName:  row.FullName,
		})
	}
	return out, nil
}
