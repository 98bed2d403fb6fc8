package logsetup

import (
	"log"
	"testing"
)

func TestFlags(t *testing.T) {
	t.Setenv("INVOCATION_ID", "")
	t.Setenv("FAULTBLINK_LOG_NO_TIMESTAMPS", "")
	if got := Flags(); got != log.LstdFlags {
		t.Errorf("expected standard flags, got %d", got)
	}

	t.Setenv("INVOCATION_ID", "0123456789abcdef")
	if got := Flags(); got != 0 {
		t.Errorf("expected no flags under systemd, got %d", got)
	}
}
