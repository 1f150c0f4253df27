package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestDB connects to the database from TEST_MYSQL_DSN and wipes the
// tables. Tests needing a live database are skipped when it is unset.
func newTestDB(t *testing.T) *MYSQLStore {
	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("TEST_MYSQL_DSN not set")
	}

	db, err := New(context.Background(), Config{
		DSN:         dsn,
		Automigrate: true,
	})
	require.NoError(t, err)

	_, err = db.db.ExecContext(context.Background(), "DELETE FROM send_email_request")
	require.NoError(t, err)
	_, err = db.db.ExecContext(context.Background(), "DELETE FROM waitlist")
	require.NoError(t, err)
	_, err = db.db.ExecContext(context.Background(), "DELETE FROM checkout_session")
	require.NoError(t, err)

	return db
}

func TestPing(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	require.NoError(t, db.Ping(context.Background()))
}
