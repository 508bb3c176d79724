package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_DB_NAME", "herdbook_test")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load("testdata/absent.env")
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, "0 20 * * *", cfg.Reporting.CronSchedule)
	require.NotEmpty(t, cfg.Reporting.Timezone)
	require.False(t, cfg.Sheets.Enabled())
	require.False(t, cfg.Alerts.Enabled())
}

func TestLoadRequiresMongoURI(t *testing.T) {
	t.Setenv("MONGODB_URI", "")

	_, err := Load("testdata/absent.env")
	require.Error(t, err)
	require.Contains(t, err.Error(), "MONGODB_URI")
}

func TestLoadRejectsPartialSheetsConfig(t *testing.T) {
	setRequired(t)
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "/etc/creds.json")
	t.Setenv("GOOGLE_SHEET_DATABASE_ID", "")

	_, err := Load("testdata/absent.env")
	require.Error(t, err)
}

func TestSheetsAndAlertsEnabled(t *testing.T) {
	setRequired(t)
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "/etc/creds.json")
	t.Setenv("GOOGLE_SHEET_DATABASE_ID", "sheet-id")
	t.Setenv("ALERT_WEBHOOK_URL", "https://hooks.example.com/herd")

	cfg, err := Load("testdata/absent.env")
	require.NoError(t, err)
	require.True(t, cfg.Sheets.Enabled())
	require.True(t, cfg.Alerts.Enabled())
}
