package log

import (
	"bytes"
	"testing"
)

func TestPrintf_Enabled(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{Enabled: true, W: &buf}
	l.Printf("built %s with %d timesteps", "T16", 16)
	if got := buf.String(); got != "built T16 with 16 timesteps\n" {
		t.Errorf("output = %q", got)
	}
}

func TestPrintf_Disabled(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{Enabled: false, W: &buf}
	l.Printf("should not appear")
	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote %q", buf.String())
	}
}
