package legal

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/Vovarama1992/lexbridge/internal/expertise"
)

func newTestRepo(t *testing.T) Repo {
	t.Helper()

	db, err := sqlx.Open(DriverSQLite, filepath.Join(t.TempDir(), "lexbridge.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	r, err := NewRepo(db)
	require.NoError(t, err)
	require.NoError(t, r.Migrate(context.Background()))
	return r
}

func newTestLoader(t *testing.T) *expertise.Loader {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "tax.yaml"),
		[]byte("authority: revenue service\nfocus:\n  - assessments\n"),
		0o644,
	))
	return expertise.NewLoader(dir, nil)
}
