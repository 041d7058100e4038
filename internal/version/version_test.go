package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	if Version == "" || BuildTime == "" || GitCommit == "" {
		t.Fatal("build metadata must be initialized")
	}

	s := String()
	if !strings.HasPrefix(s, "sitecfg ") {
		t.Fatalf("unexpected version line %q", s)
	}
	if !strings.Contains(s, GitCommit) {
		t.Fatalf("version line %q should include the commit", s)
	}
}
