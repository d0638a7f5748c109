package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"seawall.dev/seawall/internal/logging"
)

// LoadOptions controls how configurations are loaded
type LoadOptions struct {
	// Logger receives decode traces and deprecation warnings. nil uses
	// the package default logger.
	Logger *logging.Logger
}

// DefaultLoadOptions returns sensible defaults for loading configurations
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{}
}

// LoadResult contains the loaded configuration and metadata about the load
type LoadResult struct {
	Config   *Config
	Warnings []string
}

// Load decodes a configuration document. The filename selects the syntax
// (".json" for HCL JSON, anything else for native HCL) and labels
// diagnostics; no file is ever read from disk.
func Load(data []byte, filename string) (*Config, error) {
	result, err := LoadWithOptions(data, filename, DefaultLoadOptions())
	if err != nil {
		return nil, err
	}
	return result.Config, nil
}

// LoadWithOptions decodes a configuration document with explicit options.
// Any error aborts the whole load: a non-nil result always carries a fully
// normalized tree. Warnings (deprecated aliases) do not abort.
func LoadWithOptions(data []byte, filename string, opts LoadOptions) (*LoadResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.WithComponent("config")
	}

	parser := hclparse.NewParser()
	var file *hcl.File
	var diags hcl.Diagnostics
	syntax := "hcl"
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		syntax = "json"
		file, diags = parser.ParseJSON(data, filename)
	} else {
		file, diags = parser.ParseHCL(data, filename)
	}
	if diags.HasErrors() {
		return nil, diags
	}

	var raw configHCL
	diags = append(diags, gohcl.DecodeBody(file.Body, nil, &raw)...)
	if diags.HasErrors() {
		return nil, diags
	}

	cfg, cookDiags := raw.cook()
	diags = append(diags, cookDiags...)
	if diags.HasErrors() {
		return nil, diags
	}

	var warnings []string
	for _, diag := range diags {
		if diag.Severity != hcl.DiagWarning {
			continue
		}
		warnings = append(warnings, fmt.Sprintf("%s: %s", diag.Summary, diag.Detail))
		logger.Warn(diag.Summary, "detail", diag.Detail, "file", filename)
	}

	logger.Debug("configuration loaded",
		"file", filename,
		"syntax", syntax,
		"sections", cfg.sectionCount(),
		"warnings", len(warnings))

	return &LoadResult{Config: cfg, Warnings: warnings}, nil
}
