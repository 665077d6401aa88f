package appconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_defaults(t *testing.T) {
	t.Setenv(EnvConfig, "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "\t", cfg.Separator)
	assert.Equal(t, "columns", cfg.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_yaml(t *testing.T) {
	path := writeFile(t, "linex.yaml", `
format: json
lineNumbers: true
charset: gbk
maxLineSize: 1024
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.LineNumbers)
	assert.Equal(t, "gbk", cfg.Charset)
	assert.Equal(t, 1024, cfg.MaxLineSize)
	// untouched keys keep their defaults
	assert.Equal(t, "\t", cfg.Separator)
}

func TestLoad_toml(t *testing.T) {
	path := writeFile(t, "linex.toml", `
separator = ","
buffered = true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ",", cfg.Separator)
	assert.True(t, cfg.Buffered)
	assert.Equal(t, "columns", cfg.Format)
}

func TestLoad_fromEnvPath(t *testing.T) {
	path := writeFile(t, "linex.yml", "verbose: true\n")
	t.Setenv(EnvConfig, path)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
}

func TestLoad_envOverridesFile(t *testing.T) {
	path := writeFile(t, "linex.yaml", "format: json\nseparator: ';'\n")
	t.Setenv("LINEX_FORMAT", "columns")
	t.Setenv("LINEX_LINE_NUMBERS", "true")
	t.Setenv("LINEX_MAX_LINE_SIZE", "2048")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "columns", cfg.Format)
	assert.Equal(t, ";", cfg.Separator)
	assert.True(t, cfg.LineNumbers)
	assert.Equal(t, 2048, cfg.MaxLineSize)
}

func TestLoad_errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "linex.ini", "a=b"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.yaml", "format: [unclosed"))
	assert.Error(t, err)

	t.Setenv("LINEX_LINE_NUMBERS", "maybe")
	_, err = Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Format = "xml"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Charset = "no-such-charset"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Charset = "auto"
	assert.NoError(t, cfg.Validate())

	cfg = Default()
	cfg.MaxLineSize = 0
	assert.Error(t, cfg.Validate())
}

func TestVersionInfo(t *testing.T) {
	assert.Equal(t, "dev", Version())
	assert.Contains(t, VersionInfo(), `"version":"dev"`)
}
