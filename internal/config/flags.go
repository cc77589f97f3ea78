package config

import (
	"flag"
	"os"
	"time"

	"github.com/ovasiljeva/accountdir/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   PostgreSQL DSN
//	-o int      max open connections
//	-i int      max idle connections
//	-l int      connection max lifetime, minutes
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. The lifetime
// flag is accepted as an integer in minutes and converted to time.Duration.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-o", "-i", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.IntVar(&config.MaxOpenConns, "o", config.MaxOpenConns, "max open connections")
	fs.IntVar(&config.MaxIdleConns, "i", config.MaxIdleConns, "max idle connections")

	connMaxLifetime := fs.Int("l", int(config.ConnMaxLifetime.Minutes()), "conn_max_lifetime (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.ConnMaxLifetime = time.Duration(*connMaxLifetime) * time.Minute
}
