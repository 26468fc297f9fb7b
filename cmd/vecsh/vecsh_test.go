package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/sqlite-vecset/host"
	"github.com/viant/sqlite-vecset/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSplitStatements(t *testing.T) {
	testCases := []struct {
		name   string
		script string
		want   []string
	}{
		{name: "single", script: "SELECT 1", want: []string{"SELECT 1"}},
		{name: "multiple", script: "SELECT 1; SELECT 2;\n", want: []string{"SELECT 1", "SELECT 2"}},
		{name: "quoted semicolon", script: "SELECT 'a;b'; SELECT 2", want: []string{"SELECT 'a;b'", "SELECT 2"}},
		{name: "comment", script: "-- setup; ignored\nSELECT 1;", want: []string{"SELECT 1"}},
		{name: "empty", script: " ; ;", want: nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, splitStatements(tc.script))
		})
	}
}

func TestExec(t *testing.T) {
	out, err := execute(t, "exec",
		"SELECT vector_create()",
		"SELECT vector_add(1, 7); SELECT vector_add(1, 3)",
		"SELECT value, rank FROM vector_elements WHERE vector_id = 1",
		"SELECT op FROM vector_admin WHERE op MATCH 'stats'",
		"SELECT vector_find_value(1, 5)",
	)
	require.NoError(t, err)
	assert.Equal(t, "1\n1\n1\n7\t1\n3\t0\nvectors:1\n-1\n", out)
}

func TestExec_SessionsAreIndependent(t *testing.T) {
	_, err := execute(t, "exec", "SELECT vector_create()", "SELECT vector_create()")
	require.NoError(t, err)
	out, err := execute(t, "exec",
		"SELECT vector_create()",
		"SELECT vector_add(1, 42)",
		"SELECT value FROM vector_elements WHERE vector_id = 1",
		"SELECT op FROM vector_admin WHERE op MATCH 'stats'",
	)
	require.NoError(t, err)
	assert.Equal(t, "1\n1\n42\nvectors:1\n", out)
}

func TestOpenSession_DSNMismatchUnloadsHost(t *testing.T) {
	_, err := execute(t, "exec", "SELECT 1")
	require.NoError(t, err)

	var buf bytes.Buffer
	cfg := config.Defaults()
	cfg.DSN = filepath.Join(t.TempDir(), "other.db")
	_, err = openSession(context.Background(), cfg, host.WithLogger(host.NewLogger(slog.NewTextHandler(&buf, nil))))
	require.Error(t, err)
	assert.Contains(t, buf.String(), "plugin unloaded")

	_, err = execute(t, "--dsn", cfg.DSN, "exec", "SELECT 1")
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	script := filepath.Join(t.TempDir(), "script.sql")
	require.NoError(t, os.WriteFile(script, []byte(`
-- build a vector
SELECT vector_create();
SELECT vector_add(1, 10);
SELECT vector_add(1, 20);
SELECT vector_size(1);
`), 0o644))
	out, err := execute(t, "run", script)
	require.NoError(t, err)
	assert.Equal(t, "1\n1\n1\n2\n", out)
}

func TestRun_MissingFile(t *testing.T) {
	_, err := execute(t, "run", filepath.Join(t.TempDir(), "missing.sql"))
	assert.Error(t, err)
}

func TestExec_BadStatement(t *testing.T) {
	_, err := execute(t, "exec", "SELEC 1")
	assert.Error(t, err)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "vecsh.yaml")
	out, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	cfg, err := config.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), cfg)
}

func TestConfigValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte("set_kind: sorted\n"), 0o644))
	out, err := execute(t, "config", "validate", good)
	require.NoError(t, err)
	assert.Equal(t, "ok set_kind=sorted dsn=:memory:\n", out)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("set_kind: cover\n"), 0o644))
	_, err = execute(t, "config", "validate", bad)
	assert.Error(t, err)

	_, err = execute(t, "config", "validate", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestConfigFileAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vecsh.yaml")
	require.NoError(t, os.WriteFile(path, []byte("set_kind: sorted\nseed: 7\nmetrics: true\nlog:\n  level: warn\n"), 0o644))

	out, err := execute(t, "--config", path, "exec", "SELECT vector_create()", "SELECT vector_add(1, 2)", "SELECT vector_random(1)")
	require.NoError(t, err)
	assert.Equal(t, "1\n1\n2\n", out)

	_, err = execute(t, "--set-kind", "tree", "exec", "SELECT 1")
	assert.Error(t, err)

	_, err = execute(t, "--config", filepath.Join(t.TempDir(), "none.yaml"), "exec", "SELECT 1")
	assert.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("VECSH_SET_KIND", "bogus")
	_, err := execute(t, "exec", "SELECT 1")
	assert.Error(t, err)
}
