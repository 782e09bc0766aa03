package humanreport_test

import (
	"strings"
	"testing"
	"time"

	"github.com/veryl-lang/veryl-go/internal/humanreport"
)

func TestLineNoErrors(t *testing.T) {
	s := humanreport.Summary{FilesProcessed: 1, Errors: 0, Elapsed: 5 * time.Millisecond}
	line := s.Line("checked")
	if !strings.Contains(line, "checked 1 file") {
		t.Errorf("line = %q, want singular file count", line)
	}
	if !strings.Contains(line, "no errors") {
		t.Errorf("line = %q, want 'no errors'", line)
	}
}

func TestLinePluralizesFilesAndErrors(t *testing.T) {
	s := humanreport.Summary{FilesProcessed: 1234, Errors: 2, Elapsed: 2 * time.Second}
	line := s.Line("built")
	if !strings.Contains(line, "1,234 files") {
		t.Errorf("line = %q, want comma-grouped plural file count", line)
	}
	if !strings.Contains(line, "2 errors") {
		t.Errorf("line = %q, want plural error count", line)
	}
}

func TestLineSubMillisecondElapsed(t *testing.T) {
	s := humanreport.Summary{FilesProcessed: 1, Elapsed: 200 * time.Microsecond}
	if !strings.Contains(s.Line("formatted"), "<1ms") {
		t.Errorf("expected sub-millisecond elapsed to render as <1ms, got %q", s.Line("formatted"))
	}
}
