package repo

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/user_service/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	return &GormRepo{DB: db}
}

func testUser(email, username string) *models.User {
	return &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: "digest",
		IsActive:     true,
	}
}

func TestCreate_UniqueIndexesTranslateToErrDuplicate(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, testUser("a@x.com", "alice")))

	// No advisory lookups here: the insert itself hits the unique index and
	// the driver error must come back as the package sentinel.
	err := r.Create(ctx, testUser("a@x.com", "bob"))
	assert.ErrorIs(t, err, ErrDuplicate)

	err = r.Create(ctx, testUser("b@x.com", "alice"))
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestGetByID_AbsentTranslatesToErrNotFound(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)

	_, err := r.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_AbsentRowIsErrNotFound(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	user := testUser("a@x.com", "alice")
	require.NoError(t, r.Create(ctx, user))
	require.NoError(t, r.Delete(ctx, user.ID))

	assert.ErrorIs(t, r.Delete(ctx, user.ID), ErrNotFound)
}
