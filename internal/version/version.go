package version

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Set at build time with -ldflags "-X github.com/larsks/faultblink/internal/version.Version=..."
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// String returns a one-line version description.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate)
}

// Fprint writes the program name and version to w.
func Fprint(w io.Writer) {
	fmt.Fprintf(w, "%s %s\n", filepath.Base(os.Args[0]), String()) //nolint:errcheck
}
