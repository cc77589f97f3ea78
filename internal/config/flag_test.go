package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags_OverridesSelectedFields(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"cmd", "-d", "postgres://flag:flag@db/dir", "-o", "25", "-l", "90"}

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, "postgres://flag:flag@db/dir", c.DatabaseDSN)
	assert.Equal(t, 25, c.MaxOpenConns)
	assert.Equal(t, 5, c.MaxIdleConns) // untouched default
	assert.Equal(t, 90*time.Minute, c.ConnMaxLifetime)
}

func TestParseFlags_IgnoresForeignFlags(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"cmd", "-x", "whatever", "-d", "postgres://only:this@db/dir"}

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, "postgres://only:this@db/dir", c.DatabaseDSN)
}
