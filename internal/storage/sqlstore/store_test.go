package sqlstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/numengames/numinia-core/internal/storage"
	"github.com/numengames/numinia-core/internal/storage/storagetest"
)

func TestSQLiteStorageSuite(t *testing.T) {
	suite.Run(t, &storagetest.Suite{
		NewStorage: func() storage.Storage {
			path := filepath.Join(t.TempDir(), "numinia.db")
			s, err := OpenSQLite(context.Background(), path)
			require.NoError(t, err)
			return s
		},
	})
}

// TestPostgresStorageSuite runs against a real server when POSTGRES_TEST_DSN is set
func TestPostgresStorageSuite(t *testing.T) {
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}

	suite.Run(t, &storagetest.Suite{
		NewStorage: func() storage.Storage {
			s, err := OpenPostgres(context.Background(), dsn)
			require.NoError(t, err)
			_, err = s.db.Exec(`TRUNCATE players, sessions, games, game_scores, rewards, player_rewards`)
			require.NoError(t, err)
			return s
		},
	})
}

func TestOpenSQLiteRequiresPath(t *testing.T) {
	_, err := OpenSQLite(context.Background(), "  ")
	require.Error(t, err)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "numinia.db")
	ctx := context.Background()

	first, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer second.Close()

	var applied int
	require.NoError(t, second.db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied))
	require.Equal(t, 1, applied)
}

func TestRebind(t *testing.T) {
	pg := &Store{dialect: DialectPostgres}
	require.Equal(t, "SELECT a FROM t WHERE b = $1 AND c = $2", pg.rebind("SELECT a FROM t WHERE b = ? AND c = ?"))

	lite := &Store{dialect: DialectSQLite}
	require.Equal(t, "SELECT a FROM t WHERE b = ?", lite.rebind("SELECT a FROM t WHERE b = ?"))
}
