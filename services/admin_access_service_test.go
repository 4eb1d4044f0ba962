package services

import (
	"testing"
	"time"

	"cosmobits-leads-api/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSuperAdmin = "super@cosmobits.tech"

func allowedAdminColumns() []string {
	return []string{"id", "email", "name", "added_by", "created_at"}
}

func TestCanSignInSuperAdminBypassesAllowList(t *testing.T) {
	t.Setenv("SUPER_ADMIN_EMAIL", testSuperAdmin)
	newMockDB(t)

	// No queries expected: the configured super admin is always allowed,
	// regardless of allow-list contents.
	ok, err := CanSignIn("Super@Cosmobits.Tech")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanSignInDeniesUnknownEmail(t *testing.T) {
	t.Setenv("SUPER_ADMIN_EMAIL", testSuperAdmin)
	mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role"}))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `allowed_admins`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))

	ok, err := CanSignIn("stranger@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCanSignInDeniesEmptyEmail(t *testing.T) {
	t.Setenv("SUPER_ADMIN_EMAIL", testSuperAdmin)
	newMockDB(t)

	ok, err := CanSignIn("   ")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanSignInAllowsExistingAdminAccount(t *testing.T) {
	t.Setenv("SUPER_ADMIN_EMAIL", testSuperAdmin)
	mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role"}).
			AddRow("u-1", "veteran@example.com", models.RoleAdmin))

	ok, err := CanSignIn("veteran@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveRole(t *testing.T) {
	t.Setenv("SUPER_ADMIN_EMAIL", testSuperAdmin)

	t.Run("super admin", func(t *testing.T) {
		newMockDB(t)
		role, err := ResolveRole(testSuperAdmin)
		require.NoError(t, err)
		assert.Equal(t, models.RoleSuperAdmin, role)
	})

	t.Run("allow-listed", func(t *testing.T) {
		mock := newMockDB(t)
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM `allowed_admins`").
			WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

		role, err := ResolveRole("listed@example.com")
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, role)
	})

	t.Run("everyone else", func(t *testing.T) {
		mock := newMockDB(t)
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM `allowed_admins`").
			WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))

		role, err := ResolveRole("visitor@example.com")
		require.NoError(t, err)
		assert.Equal(t, models.RoleUser, role)
	})
}

func TestUpsertGoogleUserKeepsExistingRole(t *testing.T) {
	t.Setenv("SUPER_ADMIN_EMAIL", testSuperAdmin)
	mock := newMockDB(t)
	now := time.Now()

	// The account already exists as ADMIN; a later allow-list change must not
	// downgrade it.
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "role", "created_at", "updated_at"}).
			AddRow("u-1", "kept@example.com", "Kept Admin", models.RoleAdmin, now, now))

	user, err := UpsertGoogleUser("kept@example.com", "Kept Admin", "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertGoogleUserCreatesWithResolvedRole(t *testing.T) {
	t.Setenv("SUPER_ADMIN_EMAIL", testSuperAdmin)
	mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role"}))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `allowed_admins`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	user, err := UpsertGoogleUser("New@Example.com", "New Person", "https://img.example/p.png")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Equal(t, "new@example.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddAllowedAdminRequiresSuperAdmin(t *testing.T) {
	newMockDB(t)

	_, err := AddAllowedAdmin("new@x.com", "New Person", "admin@x.com", models.RoleAdmin)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAddAllowedAdminValidatesEmail(t *testing.T) {
	newMockDB(t)

	_, err := AddAllowedAdmin("", "", testSuperAdmin, models.RoleSuperAdmin)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = AddAllowedAdmin("not-an-email", "", testSuperAdmin, models.RoleSuperAdmin)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAddAllowedAdminRejectsDuplicate(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `allowed_admins`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	// Case differs from the stored row; emails are compared lowercased.
	_, err := AddAllowedAdmin("New@X.com", "New Person", testSuperAdmin, models.RoleSuperAdmin)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddAllowedAdminPersistsLowercased(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `allowed_admins`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	mock.ExpectExec("INSERT INTO `allowed_admins`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	admin, err := AddAllowedAdmin("New@X.com", "New Person", testSuperAdmin, models.RoleSuperAdmin)
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", admin.Email)
	assert.Equal(t, testSuperAdmin, admin.AddedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveAllowedAdminNotFound(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM `allowed_admins`").
		WillReturnRows(sqlmock.NewRows(allowedAdminColumns()))

	err := RemoveAllowedAdmin("missing", models.RoleSuperAdmin)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveAllowedAdminProtectsSuperAdmin(t *testing.T) {
	t.Setenv("SUPER_ADMIN_EMAIL", testSuperAdmin)
	mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM `allowed_admins`").
		WillReturnRows(sqlmock.NewRows(allowedAdminColumns()).
			AddRow("a-1", testSuperAdmin, nil, testSuperAdmin, time.Now()))

	err := RemoveAllowedAdmin("a-1", models.RoleSuperAdmin)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRemoveAllowedAdminDeletes(t *testing.T) {
	t.Setenv("SUPER_ADMIN_EMAIL", testSuperAdmin)
	mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM `allowed_admins`").
		WillReturnRows(sqlmock.NewRows(allowedAdminColumns()).
			AddRow("a-2", "other@x.com", "Other", testSuperAdmin, time.Now()))
	mock.ExpectExec("DELETE FROM `allowed_admins`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := RemoveAllowedAdmin("a-2", models.RoleSuperAdmin)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
