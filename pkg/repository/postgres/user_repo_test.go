package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/accounts/pkg/repository/postgres"
	pgstore "github.com/artem13815/accounts/pkg/storage/postgres"
	"github.com/artem13815/accounts/pkg/user"
)

// Runs only against a disposable database named by TEST_DATABASE_URL; the
// users table is truncated before each test.
func newRepo(t *testing.T) *postgres.UserRepository {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgstore.Connect(ctx, dsn, pgstore.PoolOptions{})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, pgstore.Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE users RESTART IDENTITY`)
	require.NoError(t, err)
	return postgres.NewUserRepository(pool)
}

func sample(email string) user.User {
	return user.User{
		Email:        email,
		Password:     "6e6b9799d4103047e6a69d29d0e4362b",
		FullName:     "A",
		Role:         "user",
		Organization: "Biz",
		Status:       user.StatusActive,
		CreateDT:     "2024-03-01T12:00:00Z",
		UpdateDT:     "2024-03-01T12:00:00Z",
	}
}

func TestUserRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	a, err := repo.Create(ctx, sample("a@biz.com"))
	require.NoError(t, err)
	assert.NotZero(t, a.ID)

	_, err = repo.Create(ctx, sample("a@biz.com"))
	assert.ErrorIs(t, err, user.ErrDuplicateEmail)

	_, err = repo.GetByEmail(ctx, "A@biz.com")
	assert.ErrorIs(t, err, user.ErrNotFound)

	got, err := repo.GetByEmail(ctx, "a@biz.com")
	require.NoError(t, err)
	assert.Equal(t, a, got)

	a.Password = "d19260ca31fbbb513b7e6cc0f78a9d75"
	require.NoError(t, repo.Update(ctx, a))
	got, err = repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Password, got.Password)

	missing := a
	missing.ID = a.ID + 100
	missing.Email = "ghost@biz.com"
	assert.ErrorIs(t, repo.Update(ctx, missing), user.ErrNotFound)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.Delete(ctx, a.ID))
	require.NoError(t, repo.Delete(ctx, a.ID))
	_, err = repo.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, user.ErrNotFound)
}
