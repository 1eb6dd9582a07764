package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/agsregistration/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   registration API base URL
//	-t int      request timeout in seconds (a Go duration such as 1500ms also works)
//	-d string   draft database path
//	-b string   upload backend: api or s3
//	-l string   log level
//
// Fields whose flag is absent keep their value. os.Args is filtered to
// these flags with flagx.FilterArgs so the -c and -e flags handled
// elsewhere do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-d", "-b", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "registration API base URL")
	fs.Func("t", "request timeout (in seconds)", func(v string) error {
		d, err := parseSeconds(v)
		if err != nil {
			return err
		}
		cfg.RequestTimeout = d
		return nil
	})
	fs.StringVar(&cfg.DraftDBPath, "d", cfg.DraftDBPath, "path of the local draft database")
	fs.StringVar(&cfg.UploadBackend, "b", cfg.UploadBackend, "attachment upload backend (api or s3)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
