package config

import (
	"flag"
	"os"

	"github.com/giftjoy/giftjoy/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path to the durable gift database
//	-f string   path to the fallback key-value file
//	-r          enable the cloud tier
//	-b string   cloud bucket name
//	-e string   cloud base endpoint (S3-compatible services)
//	-g string   cloud region
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-f", "-r", "-b", "-e", "-g"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the gift database")
	fs.StringVar(&cfg.FallbackPath, "f", cfg.FallbackPath, "path to the fallback storage file")
	fs.BoolVar(&cfg.RemoteEnabled, "r", cfg.RemoteEnabled, "enable the cloud tier")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "cloud bucket name")
	fs.StringVar(&cfg.S3BaseEndpoint, "e", cfg.S3BaseEndpoint, "cloud base endpoint")
	fs.StringVar(&cfg.S3Region, "g", cfg.S3Region, "cloud region")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
