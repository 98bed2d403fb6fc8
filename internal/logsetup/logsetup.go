// Package logsetup configures the standard logger. Import it for side
// effects from main packages.
package logsetup

import (
	"log"
	"os"
)

func init() {
	log.SetFlags(Flags())
}

// Flags returns the log flags to use. Under systemd, journald already
// timestamps every line.
func Flags() int {
	if os.Getenv("INVOCATION_ID") != "" || os.Getenv("FAULTBLINK_LOG_NO_TIMESTAMPS") != "" {
		return 0
	}
	return log.LstdFlags
}
