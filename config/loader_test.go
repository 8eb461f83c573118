package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakkenlabs/toolgate/internal/testutil"
)

const configPath = "/home/user/.config/toolgate/config.yaml"

// --- HAPPY PATH TESTS ---

func TestLoad_NoConfigFile_ReturnsDefaults(t *testing.T) {
	fs := testutil.NewMemFS()
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Empty(t, cfg.StorePath)
	assert.False(t, cfg.RequireInputModel)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Policy.Allow)
	assert.Empty(t, cfg.Policy.Deny)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	configYAML := `
store_path: /var/lib/agent/permissions.json
require_input_model: true
log_level: debug
policy:
  allow: [read_file, list_dir]
  deny: [shell_exec]
`
	fs := testutil.NewMemFS()
	fs.Files[configPath] = []byte(configYAML)
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "/var/lib/agent/permissions.json", cfg.StorePath)
	assert.True(t, cfg.RequireInputModel)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"read_file", "list_dir"}, cfg.Policy.Allow)
	assert.Equal(t, []string{"shell_exec"}, cfg.Policy.Deny)
}

func TestLoad_PartialFileKeepsOtherDefaults(t *testing.T) {
	fs := testutil.NewMemFS()
	fs.Files[configPath] = []byte("store_path: /tmp/perms.json\n")
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "/tmp/perms.json", cfg.StorePath)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	fs := testutil.NewMemFS()
	fs.Files[configPath] = []byte("log_level: debug\n")
	t.Setenv("TOOLGATE_LOG_LEVEL", "error")
	t.Setenv("TOOLGATE_REQUIRE_INPUT_MODEL", "true")
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.True(t, cfg.RequireInputModel)
}

func TestLoad_EnvPolicyLists(t *testing.T) {
	fs := testutil.NewMemFS()
	t.Setenv("TOOLGATE_POLICY_ALLOW", "read_file,list_dir")
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, []string{"read_file", "list_dir"}, cfg.Policy.Allow)
}

// --- ERROR TESTS ---

func TestLoad_MalformedYAMLFails(t *testing.T) {
	fs := testutil.NewMemFS()
	fs.Files[configPath] = []byte("store_path: [unclosed")
	loader := NewLoaderWithFS(fs)

	_, err := loader.Load()
	assert.Error(t, err)
}

func TestLoad_InvalidMergedConfigFails(t *testing.T) {
	fs := testutil.NewMemFS()
	fs.Files[configPath] = []byte("log_level: loud\n")
	loader := NewLoaderWithFS(fs)

	_, err := loader.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

func TestLoad_NoHomeDirFallsBackToDefaults(t *testing.T) {
	fs := testutil.NewMemFS()
	fs.HomeDirErr = assert.AnError
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
}
