// Package humanreport formats the one-line run summary the CLI driver
// prints after a build/check/fmt invocation finishes (spec.md §6, "the CLI
// reports... a final summary line"). Grounded on go-humanize's presence in
// the teacher's go.mod (an indirect dependency of its test stack there,
// promoted here to a direct one: this is the first place in the pack that
// actually calls it) for comma-grouped counts and byte sizes; durations are
// formatted by this package itself.
package humanreport

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Summary is the outcome of one run of the build/check/fmt pipeline over
// a set of source files.
type Summary struct {
	FilesProcessed int
	Errors         int
	Elapsed        time.Duration
}

// Line renders Summary as the single human-readable status line the CLI
// prints to stderr after a run, e.g.:
//
//	checked 12 files, 3 errors, in 140ms
func (s Summary) Line(verb string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s file", verb, humanize.Comma(int64(s.FilesProcessed)))
	if s.FilesProcessed != 1 {
		b.WriteByte('s')
	}
	if s.Errors > 0 {
		fmt.Fprintf(&b, ", %s error", humanize.Comma(int64(s.Errors)))
		if s.Errors != 1 {
			b.WriteByte('s')
		}
	} else {
		b.WriteString(", no errors")
	}
	fmt.Fprintf(&b, ", in %s", humanizeDuration(s.Elapsed))
	return b.String()
}

// humanizeDuration renders d the way humanize.RelTime scales other
// quantities in the pack: compact units, no sub-millisecond noise for
// runs a human is actually going to read a duration for.
func humanizeDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return "<1ms"
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return d.Round(10 * time.Millisecond).String()
	}
}

// Bytes formats a byte count, delegating straight to humanize.Bytes. The
// CLI driver does not call it: its summary line reports files, errors and
// elapsed time only.
func Bytes(n uint64) string {
	return humanize.Bytes(n)
}
