package config

import (
	"flag"
	"os"
	"time"

	"github.com/shoaib/notekeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   data directory for store files and the vault
//	-r string   remote feature-flag document URL
//	-t int      remote fetch timeout in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-r", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.RemoteConfigURL, "r", cfg.RemoteConfigURL, "remote feature-flag URL")
	fetchTimeout := fs.Int("t", int(cfg.RemoteFetchTimeout.Seconds()), "remote fetch timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RemoteFetchTimeout = time.Duration(*fetchTimeout) * time.Second
}
