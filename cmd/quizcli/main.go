// Command quizcli plays the title quiz on a terminal.
package main

import (
	"log"
	"time"

	"github.com/spf13/cobra"
)

const (
	releaseVersion = "0.1.0"
	logDate        = "2006-01-02T15:04:05.000-07:00"
)

func main() {
	log.SetFlags(0)
	cfg := &Config{}
	cobra.CheckErr(newCmd(cfg).Execute())
}

func logf(cfg *Config, format string, args ...any) {
	if !cfg.verbose {
		return
	}

	log.Printf("%s | "+format, append([]any{time.Now().Format(logDate)}, args...)...)
}
