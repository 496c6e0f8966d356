package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testYaml(t *testing.T, dir string) string {
	t.Helper()
	content := `
system:
  workdir: ` + dir + `
web:
  port: 2898
  jwt_secret: yaml-secret
database:
  type: sqlite
uploads:
  product_image_dir: ` + filepath.Join(dir, "p") + `
  comment_image_dir: ` + filepath.Join(dir, "c") + `
  profile_image_dir: ` + filepath.Join(dir, "u") + `
  public_base_url: https://cdn.example.org
logger:
  file_enable: false
`
	cfile := filepath.Join(dir, "bargain.yml")
	require.NoError(t, os.WriteFile(cfile, []byte(content), 0644))
	return cfile
}

func TestLoadConfigFromYaml(t *testing.T) {
	dir := t.TempDir()
	cfg := LoadConfig(testYaml(t, dir))

	assert.Equal(t, dir, cfg.System.Workdir)
	assert.Equal(t, 2898, cfg.Web.Port)
	assert.Equal(t, "yaml-secret", cfg.Web.JwtSecret)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "https://cdn.example.org", cfg.Uploads.PublicBaseURL)
	assert.False(t, cfg.Logger.FileEnable)

	// defaults survive for fields the file does not set
	assert.Equal(t, "0.0.0.0", cfg.Web.Host)
	assert.Equal(t, 86400, cfg.Web.TokenTTL)
}

func TestLoadConfigCreatesDirs(t *testing.T) {
	dir := t.TempDir()
	cfg := LoadConfig(testYaml(t, dir))

	for _, d := range []string{
		cfg.Uploads.ProductImageDir,
		cfg.Uploads.CommentImageDir,
		cfg.Uploads.ProfileImageDir,
		cfg.GetLogDir(),
		cfg.GetDataDir(),
	} {
		info, err := os.Stat(d)
		require.NoError(t, err, d)
		assert.True(t, info.IsDir())
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BARGAIN_WEB_PORT", "3898")
	t.Setenv("BARGAIN_WEB_JWT_SECRET", "env-secret")
	t.Setenv("BARGAIN_DB_TYPE", "postgres")
	t.Setenv("BARGAIN_UPLOADS_PUBLIC_BASE_URL", "https://env.example.org")
	t.Setenv("BARGAIN_LOGGER_FILE_ENABLE", "false")

	cfg := LoadConfig(testYaml(t, dir))

	assert.Equal(t, 3898, cfg.Web.Port)
	assert.Equal(t, "env-secret", cfg.Web.JwtSecret)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "https://env.example.org", cfg.Uploads.PublicBaseURL)
}

func TestLoadConfigBadEnvValueIgnored(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BARGAIN_WEB_PORT", "not-a-number")

	cfg := LoadConfig(testYaml(t, dir))
	assert.Equal(t, 2898, cfg.Web.Port)
}
