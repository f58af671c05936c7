package config

import (
	"flag"
	"os"

	"github.com/cloudshare/cloudshare-cli/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend (e.g., "https://api.cloudshare.app")
//	-o string   share-link origin (e.g., "https://cloudshare.app")
//	-k string   payment gateway key id
//	-m string   currency code for orders (default "INR")
//
// Note: the function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-o", "-k", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the CloudShare backend")
	fs.StringVar(&cfg.ShareOrigin, "o", cfg.ShareOrigin, "origin for derived share links")
	fs.StringVar(&cfg.GatewayKeyID, "k", cfg.GatewayKeyID, "payment gateway key id")
	fs.StringVar(&cfg.Currency, "m", cfg.Currency, "currency code for orders")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
