package config

import (
	"encoding/json"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// Diff returns a unified diff between two configurations in their
// canonical JSON form. Identical configurations yield an empty string.
func Diff(a, b *Config) (string, error) {
	aJSON, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	bJSON, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(aJSON)),
		B:        difflib.SplitLines(string(bJSON)),
		FromFile: "a",
		ToFile:   "b",
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}
