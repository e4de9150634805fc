package version

import (
	"strings"
	"testing"
)

func TestGetKeepsLinkerValues(t *testing.T) {
	oldV, oldC, oldB := Version, Commit, BuildDate
	t.Cleanup(func() { Version, Commit, BuildDate = oldV, oldC, oldB })

	Version, Commit, BuildDate = "v1.2.3", "abc1234", "2025-01-01T00:00:00Z"
	info := Get()
	if info.Version != "v1.2.3" || info.Commit != "abc1234" || info.BuildDate != "2025-01-01T00:00:00Z" {
		t.Fatalf("Get() = %+v, linker values overwritten", info)
	}
	if info.GoVersion == "" {
		t.Error("GoVersion should be set")
	}
	if s := info.String(); !strings.HasPrefix(s, "v1.2.3 (commit=abc1234") {
		t.Errorf("String() = %q", s)
	}
}
