package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financas/internal/config"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--env-file", ""}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestSayRegistersAgainstMemoryBackend(t *testing.T) {
	t.Setenv("DATA_BACKEND", config.BackendMemory)

	out, err := runRoot(t, "say", "--from", "ana", "gastei", "40", "no", "mercado")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "✅ Despesa registrada!"), out)
}

func TestSayRejectsInvalidConfig(t *testing.T) {
	t.Setenv("DATA_BACKEND", "sheets")

	_, err := runRoot(t, "say", "ajuda")
	assert.ErrorContains(t, err, "invalid data backend")
}

func TestMigrateSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "financas.db")
	t.Setenv("DATA_BACKEND", config.BackendSQLite)
	t.Setenv("SQLITE_DB_PATH", path)

	_, err := runRoot(t, "migrate")
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	assert.NoError(t, LoadEnvFile(""))
	assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("FINANCAS_TEST_VALUE=from-file\n"), 0o600))
	t.Setenv("FINANCAS_TEST_VALUE", "")
	os.Unsetenv("FINANCAS_TEST_VALUE")

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv("FINANCAS_TEST_VALUE"))
}

func TestWorkerRequiresBroker(t *testing.T) {
	t.Setenv("DATA_BACKEND", config.BackendMemory)
	t.Setenv("AMQP_URL", "")

	_, err := runRoot(t, "worker")
	assert.ErrorContains(t, err, "AMQP_URL is required")
}
