package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, 8181, cfg.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "year_to_date", cfg.Report.DefaultMethod)
	assert.False(t, cfg.SheetsEnabled())
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "application.yaml")
	err := os.WriteFile(path, []byte(`
db:
  host: db.internal
  name: hours
report:
  defaultmethod: last_month
  bysemester: true
`), 0o600)
	require.NoError(t, err)
	t.Setenv("UTILIZATION_DB_NAME", "hours_from_env")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "hours_from_env", cfg.Database.Name)
	assert.Equal(t, "last_month", cfg.Report.DefaultMethod)
	assert.True(t, cfg.Report.BySemester)
}

func TestSheetsEnabled_InlineCredentials(t *testing.T) {
	cfg := Application{Google: Google{
		CredentialsJson:     `{"type":"service_account"}`,
		HoursSpreadsheetId:  "hours",
		InputsSpreadsheetId: "inputs",
	}}

	assert.True(t, cfg.SheetsEnabled())
}
