// Package reporter turns a fault into a diagnostic line and an endless blink
// pattern.
package reporter

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/larsks/faultblink/internal/blink"
	"github.com/larsks/faultblink/internal/fault"
)

// UntaggedFormat precedes the numeric code of a fault outside the known kinds.
const UntaggedFormat = "Error not tagged! Code: %d"

type Reporter struct {
	blinker *blink.Blinker
	diag    io.Writer
}

func New(b *blink.Blinker, diag io.Writer) *Reporter {
	if diag == nil {
		diag = io.Discard
	}
	return &Reporter{blinker: b, diag: diag}
}

// Report writes message, then blinks the pattern for kind until ctx is
// cancelled.
func (r *Reporter) Report(ctx context.Context, kind fault.Kind, message string) error {
	r.println(message)

	p, known := kind.Pattern()
	if !known {
		r.println(fmt.Sprintf(UntaggedFormat, int(kind)))
	}

	log.Printf("reporting fault %s with pattern %s", kind, p)
	return r.blinker.Blink(ctx, p)
}

// ReportCode reports a raw numeric code, such as one read from a config file
// or the command line.
func (r *Reporter) ReportCode(ctx context.Context, code int, message string) error {
	return r.Report(ctx, fault.Kind(code), message)
}

func (r *Reporter) println(msg string) {
	if _, err := fmt.Fprintln(r.diag, msg); err != nil {
		log.Printf("failed to write diagnostic: %v", err)
	}
}
