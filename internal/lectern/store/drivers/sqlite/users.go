package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/lectern/internal/lectern/domain"
	"github.com/aussiebroadwan/lectern/internal/lectern/store"
	"github.com/aussiebroadwan/lectern/internal/lectern/store/drivers/sqlite/gen"
)

type usersRepo struct {
	q *gen.Queries
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	err := r.q.CreateUser(ctx, gen.CreateUserParams{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		IsActive:     u.Active,
		CreatedAt:    utc(u.CreatedAt),
		UpdatedAt:    utc(u.UpdatedAt),
	})
	return mapConstraint(err)
}

func (r *usersRepo) UpdateFullName(ctx context.Context, userID, fullName string, now time.Time) error {
	return requireRow(r.q.UpdateUserFullName(ctx, gen.UpdateUserFullNameParams{
		FullName:  fullName,
		UpdatedAt: utc(now),
		ID:        userID,
	}))
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID, hash string, now time.Time) error {
	return requireRow(r.q.UpdateUserPasswordHash(ctx, gen.UpdateUserPasswordHashParams{
		PasswordHash: hash,
		UpdatedAt:    utc(now),
		ID:           userID,
	}))
}

func (r *usersRepo) UpdateRole(ctx context.Context, userID string, role domain.Role, now time.Time) error {
	return requireRow(r.q.UpdateUserRole(ctx, gen.UpdateUserRoleParams{
		Role:      string(role),
		UpdatedAt: utc(now),
		ID:        userID,
	}))
}

func (r *usersRepo) UpdateAvatarKey(ctx context.Context, userID, key string, now time.Time) error {
	return requireRow(r.q.UpdateUserAvatarKey(ctx, gen.UpdateUserAvatarKeyParams{
		AvatarKey: mapStringNull(key),
		UpdatedAt: utc(now),
		ID:        userID,
	}))
}

func (r *usersRepo) ActivateUser(ctx context.Context, userID string, now time.Time) error {
	return requireRow(r.q.ActivateUser(ctx, gen.ActivateUserParams{Now: utc(now), ID: userID}))
}

func (r *usersRepo) DeactivateUser(ctx context.Context, userID string, now time.Time) error {
	return requireRow(r.q.DeactivateUser(ctx, gen.DeactivateUserParams{
		DeactivatedAt: mapTimeNull(now),
		UpdatedAt:     utc(now),
		ID:            userID,
	}))
}

func (r *usersRepo) ListUsers(ctx context.Context, page store.Page) ([]domain.User, error) {
	limit, offset := limitOffset(page)
	rows, err := r.q.ListUsers(ctx, gen.ListUsersParams{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapUser(row))
	}
	return out, nil
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	count, err := r.q.CountUsers(ctx)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
