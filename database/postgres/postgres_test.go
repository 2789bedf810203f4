package postgres

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDSN(t *testing.T) {
	t.Setenv("DB_USER", "talksy")
	t.Setenv("DB_PASSWORD", "p@ss word")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_NAME", "assistant")
	t.Setenv("DB_SSLMODE", "require")

	u, err := url.Parse(FormatDSN())
	require.NoError(t, err)

	password, _ := u.User.Password()
	assert.Equal(t, "postgres", u.Scheme)
	assert.Equal(t, "talksy", u.User.Username())
	assert.Equal(t, "p@ss word", password)
	assert.Equal(t, "db:6543", u.Host)
	assert.Equal(t, "/assistant", u.Path)
	assert.Equal(t, "require", u.Query().Get("sslmode"))
}

func TestFormatDSN_Defaults(t *testing.T) {
	for _, key := range []string{"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME", "DB_SSLMODE"} {
		t.Setenv(key, "")
	}

	assert.Equal(t, "postgres://postgres:@localhost:5432/talksy?sslmode=disable", FormatDSN())
}

func TestMigrationStatements(t *testing.T) {
	stmts, err := migrationStatements()
	require.NoError(t, err)
	require.Len(t, stmts, 5)
	assert.Contains(t, stmts[0], "CREATE TABLE IF NOT EXISTS command_logs")
	assert.Contains(t, stmts[2], "CREATE TABLE IF NOT EXISTS reminders")
	assert.Contains(t, stmts[2], "time_text  TEXT")
	assert.Equal(t, "ALTER TABLE reminders ALTER COLUMN time_text TYPE TEXT", stmts[4])
}

func TestSplitStatements(t *testing.T) {
	assert.Equal(t, []string{"SELECT 1", "SELECT 2"}, splitStatements("SELECT 1;\n\n SELECT 2;\n"))
}
