package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil, env(nil), io.Discard)
	require.NoError(t, err)

	assert.Equal(t, Defaults(), *cfg)
	assert.Equal(t, ":5000", cfg.Addr)
	assert.Equal(t, "inventory.db", cfg.DBPath)
	assert.Equal(t, "*", cfg.CORSOrigin)
	assert.Equal(t, 1024, cfg.ImageMaxDimension)
	assert.EqualValues(t, 1<<20, cfg.MaxBodyBytes)
}

func TestLoadLayering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "myit.yaml")
	yml := "addr: \":7000\"\ndb: /var/lib/myit/file.db\ncors_origin: https://it.example\nimage_max_dimension: 512\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	cfg, err := Load(
		[]string{"-c", path, "-a", ":9000"},
		env(map[string]string{"MYIT_DB": "/tmp/env.db", "MYIT_ADDR": ":8000"}),
		io.Discard,
	)
	require.NoError(t, err)

	// Flag beats env beats file.
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "/tmp/env.db", cfg.DBPath)
	assert.Equal(t, "https://it.example", cfg.CORSOrigin)
	assert.Equal(t, 512, cfg.ImageMaxDimension)
}

func TestLoadConfigPathFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "myit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("users_file: seed.yaml\n"), 0o600))

	cfg, err := Load(nil, env(map[string]string{"MYIT_CONFIG": path}), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "seed.yaml", cfg.UsersFile)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load([]string{"-config", filepath.Join(t.TempDir(), "missing.yaml")}, env(nil), io.Discard)
	assert.Error(t, err)

	_, err = Load([]string{"stray"}, env(nil), io.Discard)
	assert.ErrorContains(t, err, "unexpected argument")

	_, err = Load([]string{"-nope"}, env(nil), io.Discard)
	assert.Error(t, err)

	_, err = Load(nil, env(map[string]string{"MYIT_IMAGE_MAX_DIMENSION": "big"}), io.Discard)
	assert.ErrorContains(t, err, "MYIT_IMAGE_MAX_DIMENSION")
}
