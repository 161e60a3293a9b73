// Package logx configures the process-wide logger.
package logx

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// Init installs the default logger. Debug output is only shown when debug
// is set; color follows the --color mode once resolved to a bool.
func Init(debug, color bool) {
	log.SetDefault(log.NewWithOptions(os.Stderr,
		log.Options{
			ReportCaller:    debug,
			ReportTimestamp: false,
			Prefix:          "mirvm",
		}))

	log.SetLevel(log.WarnLevel)
	if debug {
		log.SetLevel(log.DebugLevel)
	}

	log.SetColorProfile(termenv.ANSI256)
	if !color {
		log.SetColorProfile(termenv.Ascii)
	}
}
