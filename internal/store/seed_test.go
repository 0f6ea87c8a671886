package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myit/inventory/internal/db"
	"github.com/myit/inventory/internal/model"
)

func TestSeedUsersDefaults(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	n, err := SeedUsers(ctx, database, DefaultAccounts)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	admin, err := GetUserByUsername(ctx, database, "admin")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, model.RoleSuperadmin, admin.Role)
	assert.True(t, CheckPassword(admin.PasswordHash, "admin123"))

	// A populated table is never reseeded.
	n, err = SeedUsers(ctx, database, DefaultAccounts)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLoadSeedAccounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	content := "users:\n  - username: root\n    password: s3cret\n    role: superadmin\n  - username: clerk\n    password: pw\n    role: editor\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	accounts, err := LoadSeedAccounts(path)
	require.NoError(t, err)
	assert.Equal(t, []SeedAccount{
		{Username: "root", Password: "s3cret", Role: model.RoleSuperadmin},
		{Username: "clerk", Password: "pw", Role: model.RoleEditor},
	}, accounts)
}

func TestLoadSeedAccountsRejectsBadRole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	require.NoError(t, os.WriteFile(path, []byte("users:\n  - username: x\n    password: y\n    role: admin\n"), 0o600))

	_, err := LoadSeedAccounts(path)
	assert.ErrorContains(t, err, "invalid role")
}

func TestLoadSeedAccountsMissingFile(t *testing.T) {
	_, err := LoadSeedAccounts(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
