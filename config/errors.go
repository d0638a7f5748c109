package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// Diagnostic constructors for the decode step. Each detail starts with the
// path of the offending field (e.g. "wider_world_to_container.rules[0].expose_port")
// so errors stay addressable even when a source range is unavailable.

func shapeDiag(field, expected string, rng hcl.Range) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Unsuitable value type",
		Detail:   fmt.Sprintf("%s must be %s.", field, expected),
		Subject:  &rng,
	}
}

func unknownKeyDiag(field, key string, rng hcl.Range) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Unsupported argument",
		Detail:   fmt.Sprintf("%s: an argument named %q is not expected here.", field, key),
		Subject:  &rng,
	}
}

func missingKeyDiag(field, key string, rng *hcl.Range) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Missing required argument",
		Detail:   fmt.Sprintf("%s: the argument %q is required, but no definition was found.", field, key),
		Subject:  rng,
	}
}

func portFormatDiag(field string, err error, rng hcl.Range) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Invalid port specification",
		Detail:   fmt.Sprintf("%s: %s.", field, err),
		Subject:  &rng,
	}
}

func portNumberDiag(field, problem string, rng hcl.Range) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Invalid port number",
		Detail:   fmt.Sprintf("%s: %s.", field, problem),
		Subject:  &rng,
	}
}

func invalidValueDiag(field string, err error, rng hcl.Range) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Invalid value",
		Detail:   fmt.Sprintf("%s: %s.", field, err),
		Subject:  &rng,
	}
}

func conflictDiag(field, canonical, alias string, rng hcl.Range) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Conflicting arguments",
		Detail:   fmt.Sprintf("%s sets both %q and its alias %q; keep %q only.", field, canonical, alias, canonical),
		Subject:  &rng,
	}
}

func aliasWarnDiag(field, alias, canonical string, rng hcl.Range) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagWarning,
		Summary:  "Deprecated argument",
		Detail:   fmt.Sprintf("%s: %q is a deprecated alias of %q.", field, alias, canonical),
		Subject:  &rng,
	}
}
