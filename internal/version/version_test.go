package version

import "testing"

func TestVersionDefaults(t *testing.T) {
	// Defaults are placeholders overridden by ldflags at build time.
	if Version == "" || BuildTime == "" || GitCommit == "" {
		t.Fatal("version metadata must never be empty")
	}
}
