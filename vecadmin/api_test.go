package vecadmin

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/sqlite-vecset/engine"
	"github.com/viant/sqlite-vecset/host"
	"github.com/viant/sqlite-vecset/internal/config"
	"github.com/viant/sqlite-vecset/vec"
)

// db is the process-wide handle; modules are attached to its only connection.
var db *sql.DB

func TestMain(m *testing.M) {
	if err := setupDB(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func setupDB() error {
	// Register globally before first connection so functions are available.
	if err := engine.RegisterVectorFunctions(host.New(config.Defaults())); err != nil {
		return err
	}
	var err error
	if db, err = engine.Shared(":memory:"); err != nil {
		return err
	}
	if err := Register(db); err != nil {
		return err
	}
	if err := vec.Register(db); err != nil {
		return err
	}
	for _, stmt := range []string{
		`CREATE VIRTUAL TABLE vector_admin USING vector_admin(op)`,
		`CREATE VIRTUAL TABLE ve USING vector_elements`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("%s: %w", stmt, err)
		}
	}
	return nil
}

func bind(t *testing.T) *host.Host {
	t.Helper()
	h := host.New(config.Defaults())
	h.Load(context.Background())
	require.NoError(t, engine.RegisterVectorFunctions(h))
	return h
}

func admin(t *testing.T, command string) string {
	t.Helper()
	var out string
	require.NoError(t, db.QueryRow(`SELECT op FROM vector_admin WHERE op MATCH ?`, command).Scan(&out))
	return out
}

func queryInt(t *testing.T, query string, args ...any) int64 {
	t.Helper()
	var out int64
	require.NoError(t, db.QueryRow(query, args...).Scan(&out), query)
	return out
}

func TestAdminCommands(t *testing.T) {
	h := bind(t)
	ctx := context.Background()
	assert.Equal(t, "vectors:0", admin(t, "stats"))
	h.Call(ctx, "vector_create")
	h.Call(ctx, "vector_create")
	assert.Equal(t, "vectors:2", admin(t, "stats"))

	assert.Equal(t, "debug:on", admin(t, "debug:on"))
	assert.True(t, h.Debug())
	assert.Equal(t, "debug:off", admin(t, "DEBUG:OFF"))
	assert.False(t, h.Debug())

	session := h.Session()
	assert.Equal(t, "session:"+session, admin(t, "session"))
	assert.Equal(t, "teardown:2", admin(t, "teardown"))
	assert.NotEqual(t, session, h.Session())
	assert.Equal(t, "vectors:0", admin(t, "stats"))

	id, err := h.Call(ctx, "vector_create")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id, "ids restart after teardown")
}

func TestAdminUnknownCommand(t *testing.T) {
	bind(t)
	var out string
	err := db.QueryRow(`SELECT op FROM vector_admin WHERE op MATCH 'reindex'`).Scan(&out)
	assert.Error(t, err)
}

// TestSessionsInSequence runs two host sessions over the same database and
// checks that both virtual tables follow the second one.
func TestSessionsInSequence(t *testing.T) {
	first := bind(t)
	queryInt(t, `SELECT vector_create()`)
	queryInt(t, `SELECT vector_add(1, 111)`)
	assert.Equal(t, "teardown:1", admin(t, "teardown"))
	assert.Equal(t, 0, first.Count())

	second := bind(t)
	assert.Equal(t, int64(1), queryInt(t, `SELECT vector_create()`))
	queryInt(t, `SELECT vector_add(1, 222)`)
	queryInt(t, `SELECT vector_create()`)
	assert.Equal(t, 2, second.Count())
	assert.Equal(t, 0, first.Count(), "first host is no longer written to")

	assert.Equal(t, "vectors:2", admin(t, "stats"))
	assert.Equal(t, "session:"+second.Session(), admin(t, "session"))
	assert.Equal(t, int64(222), queryInt(t, `SELECT value FROM ve WHERE vector_id = 1`))

	assert.Equal(t, "teardown:2", admin(t, "teardown"))
	assert.Equal(t, 0, second.Count())
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM ve WHERE vector_id = 1`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestExecute(t *testing.T) {
	h := host.New(config.Defaults())
	out, err := Execute(context.Background(), h, " stats ")
	require.NoError(t, err)
	assert.Equal(t, "vectors:0", out)
	_, err = Execute(context.Background(), h, "")
	assert.Error(t, err)
}
