package database

import (
	"net/url"
	"testing"

	"github.com/klokku/utilization/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionUrl_EscapesPassword(t *testing.T) {
	cfg := config.Database{
		Host:   "localhost",
		Port:   5432,
		User:   "utilization",
		Pass:   "p@ss'word/1",
		Name:   "utilization",
		Schema: "utilization",
	}

	raw := connectionUrl(cfg, "postgres")

	u, err := url.Parse(raw)
	require.NoError(t, err)
	password, _ := u.User.Password()
	assert.Equal(t, "p@ss'word/1", password)
	assert.Equal(t, "localhost:5432", u.Host)
	assert.Equal(t, "/utilization", u.Path)
	assert.Equal(t, "utilization", u.Query().Get("search_path"))
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
}

func TestFindMigrationsPath(t *testing.T) {
	path, err := findMigrationsPath()

	require.NoError(t, err)
	assert.Contains(t, path, "migrations")
}
