package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestForComponentTagsLines(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Handler: slog.NewTextHandler(&buf, nil)})

	ForComponent(logger, ComponentReport).Info("assembled")

	if !strings.Contains(buf.String(), "component=report") {
		t.Fatalf("log line missing component: %s", buf.String())
	}
}

func TestForComponentNilLogger(t *testing.T) {
	if ForComponent(nil, ComponentApp) == nil {
		t.Fatal("nil logger should fall back to default")
	}
}
