package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/lectern/internal/lectern/domain"
	"github.com/aussiebroadwan/lectern/internal/lectern/store"
	"github.com/aussiebroadwan/lectern/pkg/apperr"
	"github.com/stretchr/testify/require"
)

// fakeAvatars signs nothing; the URL just echoes the key.
type fakeAvatars struct{ now func() time.Time }

func (f fakeAvatars) PresignUpload(_ context.Context, key string) (string, time.Time, error) {
	return "https://s3.test/upload/" + key, f.now().Add(15 * time.Minute), nil
}

func (f fakeAvatars) PresignDownload(_ context.Context, key string) (string, time.Time, error) {
	return "https://s3.test/download/" + key, f.now().Add(15 * time.Minute), nil
}

func TestUpdateProfile(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.user(t, "a@x.com", domain.RoleStudent)

	got, err := e.users.UpdateProfile(ctx, u.ID, "  Grace Hopper ")
	require.NoError(t, err)
	require.Equal(t, "Grace Hopper", got.FullName)

	_, err = e.users.UpdateProfile(ctx, u.ID, strings.Repeat("x", MaxNameLength+1))
	require.ErrorIs(t, err, apperr.Validation(nil))
	require.Equal(t, "validation.too_long", apperr.As(err).Fields["full_name"])

	_, err = e.users.UpdateProfile(ctx, "missing", "Nobody")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestAvatars(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.user(t, "a@x.com", domain.RoleStudent)
	other := e.user(t, "b@x.com", domain.RoleStudent)

	t.Run("without object storage", func(t *testing.T) {
		_, err := e.users.AvatarUploadURL(ctx, u.ID)
		require.ErrorIs(t, err, ErrMediaUnavailable)
		url, err := e.users.AvatarURL(ctx, u)
		require.NoError(t, err)
		require.Empty(t, url)
	})

	e.users.Avatars = fakeAvatars{now: e.clock.Now}

	up, err := e.users.AvatarUploadURL(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(up.Key, "avatars/"+u.ID+"/"), up.Key)
	require.Equal(t, "https://s3.test/upload/"+up.Key, up.URL)
	require.Equal(t, e.clock.Now().Add(15*time.Minute), up.ExpiresAt)

	t.Run("foreign key is refused", func(t *testing.T) {
		_, err := e.users.SetAvatar(ctx, other.ID, up.Key)
		require.ErrorIs(t, err, ErrAvatarKey)
		_, err = e.users.SetAvatar(ctx, u.ID, "avatars/"+u.ID+"/../../etc/passwd")
		require.ErrorIs(t, err, ErrAvatarKey)
	})

	got, err := e.users.SetAvatar(ctx, u.ID, up.Key)
	require.NoError(t, err)
	require.Equal(t, up.Key, got.AvatarKey)

	url, err := e.users.AvatarURL(ctx, got)
	require.NoError(t, err)
	require.Equal(t, "https://s3.test/download/"+up.Key, url)
}

func TestDeactivateUser(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.user(t, "a@x.com", domain.RoleStudent)

	pair, err := e.auth.Login(ctx, "a@x.com", "P@ss1234")
	require.NoError(t, err)

	require.NoError(t, e.users.Deactivate(ctx, u.ID))
	require.ErrorIs(t, e.users.Deactivate(ctx, "missing"), ErrUserNotFound)

	got, err := e.users.Get(ctx, u.ID)
	require.NoError(t, err)
	require.False(t, got.Active)
	require.NotNil(t, got.DeactivatedAt)

	_, err = e.auth.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestSetRole(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.user(t, "admin@x.com", domain.RoleAdmin)
	u := e.user(t, "a@x.com", domain.RoleStudent)

	got, err := e.users.SetRole(ctx, actorOf(admin), u.ID, domain.RoleTeacher)
	require.NoError(t, err)
	require.Equal(t, domain.RoleTeacher, got.Role)

	_, err = e.users.SetRole(ctx, actorOf(admin), admin.ID, domain.RoleStudent)
	require.ErrorIs(t, err, ErrSelfRoleChange)

	_, err = e.users.SetRole(ctx, actorOf(admin), u.ID, domain.Role("owner"))
	require.ErrorIs(t, err, apperr.Validation(nil))

	_, err = e.users.SetRole(ctx, actorOf(admin), "missing", domain.RoleAdmin)
	require.ErrorIs(t, err, ErrUserNotFound)

	users, err := e.users.List(ctx, store.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, users, 2)
}

func TestBootstrap(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := &BootstrapService{Store: e.store, Hasher: e.hasher, Now: e.clock.Now}

	done, err := svc.IsBootstrapped(ctx)
	require.NoError(t, err)
	require.False(t, done)

	_, err = svc.Bootstrap(ctx, domain.BootstrapData{AdminEmail: "root@x.com", AdminPassword: "short"})
	require.ErrorIs(t, err, apperr.Validation(nil))

	id, err := svc.Bootstrap(ctx, domain.BootstrapData{AdminEmail: "Root@X.com", AdminPassword: "Adm1nPass"})
	require.NoError(t, err)

	admin, err := e.users.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, admin.Role)
	require.Equal(t, "Administrator", admin.FullName)
	require.Equal(t, "root@x.com", admin.Email)
	require.True(t, admin.Active)

	_, err = e.auth.Login(ctx, "root@x.com", "Adm1nPass")
	require.NoError(t, err)

	_, err = svc.Bootstrap(ctx, domain.BootstrapData{AdminEmail: "second@x.com", AdminPassword: "Adm1nPass"})
	require.ErrorIs(t, err, ErrBootstrapAlready)

	done, err = svc.IsBootstrapped(ctx)
	require.NoError(t, err)
	require.True(t, done)
}
