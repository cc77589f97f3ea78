package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson_NoFlagLeavesConfigUntouched(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"cmd"}

	var c Config
	c.LoadDefaults()
	before := c

	parseJson(&c)

	assert.Equal(t, before, c)
}

func TestParseJson_LoadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")

	content := `{
		"database_dsn": "postgres://u:p@db:5432/dir?sslmode=disable",
		"max_open_conns": 20,
		"max_idle_conns": 8,
		"conn_max_lifetime": "45m"
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"cmd", "-c", path}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, "postgres://u:p@db:5432/dir?sslmode=disable", c.DatabaseDSN)
	assert.Equal(t, 20, c.MaxOpenConns)
	assert.Equal(t, 8, c.MaxIdleConns)
	assert.Equal(t, 45*time.Minute, c.ConnMaxLifetime)
}
