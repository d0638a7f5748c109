package config

import (
	"strings"
	"testing"
)

func TestDiff_NoChanges(t *testing.T) {
	src := `
container_to_container {
  default_policy = "drop"

  rule {
    network = "common"
    verdict = "accept"
  }
}
`
	cfg, err := Load([]byte(src), "test.hcl")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	diff, err := Diff(cfg, cfg.Clone())
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}
	if diff != "" {
		t.Errorf("Expected empty diff for identical configs, got:\n%s", diff)
	}
}

func TestDiff_VerdictChanged(t *testing.T) {
	before := `
container_to_container {
  default_policy = "drop"

  rule {
    network = "common"
    verdict = "accept"
  }
}
`
	after := `
container_to_container {
  default_policy = "drop"

  rule {
    network = "common"
    verdict = "drop"
  }
}
`
	a, err := Load([]byte(before), "a.hcl")
	if err != nil {
		t.Fatalf("Load(before) error = %v", err)
	}
	b, err := Load([]byte(after), "b.hcl")
	if err != nil {
		t.Fatalf("Load(after) error = %v", err)
	}

	diff, err := Diff(a, b)
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}

	expectedLines := []string{
		"--- a",
		"+++ b",
		`-        "verdict": "accept"`,
		`+        "verdict": "drop"`,
	}
	for _, line := range expectedLines {
		if !strings.Contains(diff, line) {
			t.Errorf("Diff output missing expected line: %q. Got:\n%s", line, diff)
		}
	}
}

func TestDiff_SectionAdded(t *testing.T) {
	a, err := Load([]byte(""), "a.hcl")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	b, err := Load([]byte(`
initialization {
  rules = ["add table inet custom"]
}
`), "b.hcl")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	diff, err := Diff(a, b)
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}
	if !strings.Contains(diff, `"initialization"`) {
		t.Errorf("Diff output does not mention the added section:\n%s", diff)
	}
	if !strings.Contains(diff, "add table inet custom") {
		t.Errorf("Diff output does not carry the added rule text:\n%s", diff)
	}
}
