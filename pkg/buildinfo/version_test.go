package buildinfo

import (
	"strings"
	"testing"
)

func TestCreator(t *testing.T) {
	old := Version
	defer func() { Version = old }()

	Version = "v1.2.3"
	if got := Creator(); got != "labelsheet/v1.2.3" {
		t.Errorf("Creator() = %q", got)
	}
	if !strings.Contains(Template(), "v1.2.3") || !strings.Contains(String(), "version: v1.2.3") {
		t.Error("version should appear in Template and String")
	}
}
