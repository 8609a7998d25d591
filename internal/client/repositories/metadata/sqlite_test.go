package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/wardrobe/internal/dbx"

	_ "modernc.org/sqlite"
)

type doc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func openRepo(t *testing.T) (*SQLiteRepository, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL)`)
	require.NoError(t, err)
	return NewSQLiteRepository(db), db
}

func TestStoreLoad(t *testing.T) {
	r, _ := openRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Store(ctx, "session.identity", doc{Name: "ann", Count: 1}))

	var got doc
	found, err := r.Load(ctx, "session.identity", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, doc{Name: "ann", Count: 1}, got)
}

func TestStore_Overwrites(t *testing.T) {
	r, _ := openRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Store(ctx, "k", doc{Count: 1}))
	require.NoError(t, r.Store(ctx, "k", doc{Count: 2}))

	var got doc
	_, err := r.Load(ctx, "k", &got)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Count)
}

func TestLoad_Absent(t *testing.T) {
	r, _ := openRepo(t)

	got := doc{Name: "untouched"}
	found, err := r.Load(context.Background(), "absent", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "untouched", got.Name)
}

func TestLoad_CorruptValue(t *testing.T) {
	r, db := openRepo(t)
	_, err := db.Exec(`INSERT INTO metadata(key, value) VALUES ('k', 'not json')`)
	require.NoError(t, err)

	var got doc
	_, err = r.Load(context.Background(), "k", &got)
	require.Error(t, err)
}

func TestDelete(t *testing.T) {
	r, _ := openRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Store(ctx, "k", doc{}))
	require.NoError(t, r.Delete(ctx, "k"))
	require.NoError(t, r.Delete(ctx, "never-there"))

	found, err := r.Load(ctx, "k", &doc{})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDeletePrefix_MatchesLiterally(t *testing.T) {
	r, _ := openRepo(t)
	ctx := context.Background()

	for _, k := range []string{"session.identity", "session.cookies", "sessionXcookies", "settings.theme"} {
		require.NoError(t, r.Store(ctx, k, doc{Name: k}))
	}
	require.NoError(t, r.DeletePrefix(ctx, "session."))

	for k, want := range map[string]bool{
		"session.identity": false,
		"session.cookies":  false,
		"sessionXcookies":  true,
		"settings.theme":   true,
	} {
		found, err := r.Load(ctx, k, &doc{})
		require.NoError(t, err)
		assert.Equal(t, want, found, k)
	}
}

func TestInsideTransaction(t *testing.T) {
	r, db := openRepo(t)
	ctx := context.Background()
	require.NoError(t, r.Store(ctx, "session.identity", doc{}))

	err := dbx.WithTx(ctx, db, func(ctx context.Context, tx dbx.DBTX) error {
		return NewSQLiteRepository(tx).DeletePrefix(ctx, "session.")
	})
	require.NoError(t, err)

	found, err := r.Load(ctx, "session.identity", &doc{})
	require.NoError(t, err)
	assert.False(t, found)
}
