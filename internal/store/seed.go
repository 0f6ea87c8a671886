package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/myit/inventory/internal/model"
)

// SeedAccount is an account created on first start.
type SeedAccount struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

// DefaultAccounts are seeded when no users file is configured.
var DefaultAccounts = []SeedAccount{
	{Username: "admin", Password: "admin123", Role: model.RoleSuperadmin},
	{Username: "editor", Password: "editor123", Role: model.RoleEditor},
	{Username: "viewer", Password: "viewer123", Role: model.RoleViewer},
}

type usersFile struct {
	Users []SeedAccount `yaml:"users"`
}

// LoadSeedAccounts reads accounts from a YAML file of the form
//
//	users:
//	  - username: admin
//	    password: secret
//	    role: superadmin
func LoadSeedAccounts(path string) ([]SeedAccount, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading users file: %w", err)
	}

	var uf usersFile
	if err := yaml.Unmarshal(data, &uf); err != nil {
		return nil, fmt.Errorf("parsing users file %s: %w", path, err)
	}

	for i, a := range uf.Users {
		if a.Username == "" || a.Password == "" {
			return nil, fmt.Errorf("users file %s: entry %d: username and password required", path, i+1)
		}
		if !model.ValidRole(a.Role) {
			return nil, fmt.Errorf("users file %s: entry %d: invalid role %q", path, i+1, a.Role)
		}
	}
	return uf.Users, nil
}

// SeedUsers creates the given accounts if the users table is empty and
// returns how many were created. A populated table is left alone.
func SeedUsers(ctx context.Context, db *sql.DB, accounts []SeedAccount) (int, error) {
	n, err := CountUsers(ctx, db)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	created := 0
	for _, a := range accounts {
		hash, err := HashPassword(a.Password)
		if err != nil {
			return created, err
		}
		if _, err := CreateUser(ctx, db, a.Username, hash, a.Role); err != nil {
			return created, fmt.Errorf("seeding user %s: %w", a.Username, err)
		}
		slog.Info("seeded account", "username", a.Username, "role", a.Role)
		created++
	}
	return created, nil
}
