package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestSetLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetLevel("warn")
	})

	SetLevel("warn")
	Logger().Infof("hidden %d", 1)
	Logger().Warnf("shown %d", 2)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info logged at warn level: %q", out)
	}
	if !strings.Contains(out, "shown 2") {
		t.Errorf("warn missing: %q", out)
	}

	buf.Reset()
	SetLevel("debug")
	Logger().Debugf("detail")
	if !strings.Contains(buf.String(), "detail") {
		t.Errorf("debug missing after SetLevel(debug): %q", buf.String())
	}
}

func TestSetLevelUnknownFallsBackToWarn(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetLevel("warn")
	})

	SetLevel("chatty")
	Logger().Infof("hidden")
	Logger().Errorf("boom")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "boom") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
