package config

import (
	"encoding/json"
	"os"

	"github.com/ovasiljeva/accountdir/internal/flagx"
	"github.com/ovasiljeva/accountdir/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for the lifetime field, which allows
// parsing both string values such as "30m" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config
// struct which uses time.Duration.
type JsonConfig struct {
	DatabaseDSN     string         `json:"database_dsn"`
	MaxOpenConns    int            `json:"max_open_conns"`
	MaxIdleConns    int            `json:"max_idle_conns"`
	ConnMaxLifetime timex.Duration `json:"conn_max_lifetime"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path comes from the -c or -config command-line flags; when neither
// is set, no JSON file is loaded. A file that cannot be read or contains
// invalid JSON causes a panic. A provided file is expected to be complete:
// every field is copied into the target Config.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.DatabaseDSN = c.DatabaseDSN
	config.MaxOpenConns = c.MaxOpenConns
	config.MaxIdleConns = c.MaxIdleConns
	config.ConnMaxLifetime = c.ConnMaxLifetime.Duration
}
