package version

import (
	"strings"
	"testing"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestInfo_OptionalFields(t *testing.T) {
	origCommit, origDate := GitCommit, BuildDate
	defer func() { GitCommit, BuildDate = origCommit, origDate }()

	GitCommit, BuildDate = "", ""
	info := Info(false)
	if strings.Contains(info, "commit:") || strings.Contains(info, "built:") {
		t.Errorf("empty fields must be omitted:\n%s", info)
	}

	GitCommit, BuildDate = "abc123def456", "2024-01-15T10:30:00Z"
	info = Info(false)
	if !strings.Contains(info, "commit:  abc123def456") || !strings.Contains(info, "built:   2024-01-15T10:30:00Z") {
		t.Errorf("missing build metadata:\n%s", info)
	}
}

func TestColored(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	majorColor.EnableColor()
	defer majorColor.DisableColor()

	Version = "1.2.3-rc1"
	got := Colored()
	if !strings.HasSuffix(got, "-rc1") || !strings.Contains(got, "\x1b[") {
		t.Errorf("unexpected colored version %q", got)
	}

	Version = "nightly"
	if got := Colored(); got != "nightly" {
		t.Errorf("non-semver version must be returned as is, got %q", got)
	}
}
