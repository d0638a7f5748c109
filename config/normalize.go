package config

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// The decoder accepts several author-side shorthands: a lone value where a
// list is expected, a grammar string where a record is expected, and freely
// mixed forms inside one list. Everything in this file dispatches on the
// evaluated value's type and folds those shorthands into the one canonical
// shape. No implicit type conversion is applied, so a number never passes
// for a string.

const (
	expectedStringOrSeq = "a string or a sequence of strings"
	expectedStringSeq   = "a sequence of strings"
	expectedTableOrSeq  = "a map or a sequence of maps"
	expectedExposePort  = "an integer, string or map, or a sequence of those"
	expectedString      = "a string"
)

func isSequence(t cty.Type) bool {
	return t.IsTupleType() || t.IsListType() || t.IsSetType()
}

func isRecord(t cty.Type) bool {
	return t.IsObjectType() || t.IsMapType()
}

// sortedKeys returns the record's keys in stable order so repeated decodes
// report problems identically.
func sortedKeys(vals map[string]cty.Value) []string {
	keys := make([]string, 0, len(vals))
	for k := range vals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// decodeStringOrSeq folds "string or sequence of strings" into []string.
func decodeStringOrSeq(expr hcl.Expression, field string) ([]string, hcl.Diagnostics) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	rng := expr.Range()

	if val.IsNull() {
		return nil, hcl.Diagnostics{shapeDiag(field, expectedStringOrSeq, rng)}
	}
	if val.Type() == cty.String {
		return []string{val.AsString()}, nil
	}
	if !isSequence(val.Type()) {
		return nil, hcl.Diagnostics{shapeDiag(field, expectedStringOrSeq, rng)}
	}

	out := make([]string, 0, val.LengthInt())
	it := val.ElementIterator()
	for i := 0; it.Next(); i++ {
		_, ev := it.Element()
		if ev.IsNull() || ev.Type() != cty.String {
			diags = append(diags, shapeDiag(fmt.Sprintf("%s[%d]", field, i), expectedStringOrSeq, rng))
			continue
		}
		out = append(out, ev.AsString())
	}
	if diags.HasErrors() {
		return nil, diags
	}
	return out, nil
}

// decodeStringSeq decodes a plain sequence of strings with no single-value
// shorthand. Raw rule text and chain name lists stay lists.
func decodeStringSeq(val cty.Value, field string, rng hcl.Range) ([]string, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	if val.IsNull() || !isSequence(val.Type()) {
		return nil, hcl.Diagnostics{shapeDiag(field, expectedStringSeq, rng)}
	}

	out := make([]string, 0, val.LengthInt())
	it := val.ElementIterator()
	for i := 0; it.Next(); i++ {
		_, ev := it.Element()
		if ev.IsNull() || ev.Type() != cty.String {
			diags = append(diags, shapeDiag(fmt.Sprintf("%s[%d]", field, i), expectedStringSeq, rng))
			continue
		}
		out = append(out, ev.AsString())
	}
	if diags.HasErrors() {
		return nil, diags
	}
	return out, nil
}

func decodeStringSeqExpr(expr hcl.Expression, field string) ([]string, hcl.Diagnostics) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	return decodeStringSeq(val, field, expr.Range())
}

// decodeTableList folds "map or sequence of maps" into []Table. A bare
// string is rejected: table definitions have no grammar form.
func decodeTableList(expr hcl.Expression, field string) ([]Table, hcl.Diagnostics) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	rng := expr.Range()

	if val.IsNull() {
		return nil, hcl.Diagnostics{shapeDiag(field, expectedTableOrSeq, rng)}
	}
	if isRecord(val.Type()) {
		tbl, moreDiags := decodeTable(val, field, rng)
		if moreDiags.HasErrors() {
			return nil, moreDiags
		}
		return []Table{tbl}, nil
	}
	if !isSequence(val.Type()) {
		return nil, hcl.Diagnostics{shapeDiag(field, expectedTableOrSeq, rng)}
	}

	out := make([]Table, 0, val.LengthInt())
	it := val.ElementIterator()
	for i := 0; it.Next(); i++ {
		_, ev := it.Element()
		elemField := fmt.Sprintf("%s[%d]", field, i)
		if ev.IsNull() || !isRecord(ev.Type()) {
			diags = append(diags, shapeDiag(elemField, expectedTableOrSeq, rng))
			continue
		}
		tbl, moreDiags := decodeTable(ev, elemField, rng)
		diags = append(diags, moreDiags...)
		if !moreDiags.HasErrors() {
			out = append(out, tbl)
		}
	}
	if diags.HasErrors() {
		return nil, diags
	}
	return out, nil
}

func decodeTable(val cty.Value, field string, rng hcl.Range) (Table, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	var tbl Table

	vals := val.AsValueMap()
	for _, key := range sortedKeys(vals) {
		switch key {
		case "name", "chains":
		default:
			diags = append(diags, unknownKeyDiag(field, key, rng))
		}
	}

	if name, ok := vals["name"]; !ok {
		diags = append(diags, missingKeyDiag(field, "name", &rng))
	} else if name.IsNull() || name.Type() != cty.String {
		diags = append(diags, shapeDiag(field+".name", expectedString, rng))
	} else {
		tbl.Name = name.AsString()
	}

	if chains, ok := vals["chains"]; !ok {
		diags = append(diags, missingKeyDiag(field, "chains", &rng))
	} else {
		names, moreDiags := decodeStringSeq(chains, field+".chains", rng)
		diags = append(diags, moreDiags...)
		tbl.Chains = names
	}

	return tbl, diags
}

// decodeExposePorts folds the polymorphic expose_port forms into
// []ExposePort: a lone integer, grammar string or map, or a sequence
// mixing all three.
func decodeExposePorts(expr hcl.Expression, field string) ([]ExposePort, hcl.Diagnostics) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	rng := expr.Range()

	if val.IsNull() {
		return nil, hcl.Diagnostics{shapeDiag(field, expectedExposePort, rng)}
	}
	if !isSequence(val.Type()) {
		port, moreDiags := decodeExposePort(val, field, rng)
		if moreDiags.HasErrors() {
			return nil, moreDiags
		}
		return []ExposePort{port}, nil
	}

	out := make([]ExposePort, 0, val.LengthInt())
	it := val.ElementIterator()
	for i := 0; it.Next(); i++ {
		_, ev := it.Element()
		port, moreDiags := decodeExposePort(ev, fmt.Sprintf("%s[%d]", field, i), rng)
		diags = append(diags, moreDiags...)
		if !moreDiags.HasErrors() {
			out = append(out, port)
		}
	}
	if diags.HasErrors() {
		return nil, diags
	}
	return out, nil
}

// decodeExposePort dispatches one element on its shape. Sequences are not
// accepted here, so nesting a list inside expose_port fails.
func decodeExposePort(val cty.Value, field string, rng hcl.Range) (ExposePort, hcl.Diagnostics) {
	if val.IsNull() {
		return ExposePort{}, hcl.Diagnostics{shapeDiag(field, expectedExposePort, rng)}
	}

	switch {
	case val.Type() == cty.Number:
		host, diags := decodePortNumber(val, field, rng)
		if diags.HasErrors() {
			return ExposePort{}, diags
		}
		port, err := NewExposePort().HostPort(host).Build()
		if err != nil {
			return ExposePort{}, hcl.Diagnostics{portNumberDiag(field, err.Error(), rng)}
		}
		return port, nil

	case val.Type() == cty.String:
		port, err := ParseExposePort(val.AsString())
		if err != nil {
			return ExposePort{}, hcl.Diagnostics{portFormatDiag(field, err, rng)}
		}
		return port, nil

	case isRecord(val.Type()):
		return decodeExposePortMap(val, field, rng)

	default:
		return ExposePort{}, hcl.Diagnostics{shapeDiag(field, expectedExposePort, rng)}
	}
}

func decodeExposePortMap(val cty.Value, field string, rng hcl.Range) (ExposePort, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	b := NewExposePort()

	vals := val.AsValueMap()
	for _, key := range sortedKeys(vals) {
		switch key {
		case "host_port", "container_port", "family":
		default:
			diags = append(diags, unknownKeyDiag(field, key, rng))
		}
	}

	if hp, ok := vals["host_port"]; !ok {
		diags = append(diags, missingKeyDiag(field, "host_port", &rng))
	} else {
		port, moreDiags := decodePortNumber(hp, field+".host_port", rng)
		diags = append(diags, moreDiags...)
		if !moreDiags.HasErrors() {
			b.HostPort(port)
		}
	}

	if cp, ok := vals["container_port"]; ok {
		port, moreDiags := decodePortNumber(cp, field+".container_port", rng)
		diags = append(diags, moreDiags...)
		if !moreDiags.HasErrors() {
			b.ContainerPort(port)
		}
	}

	if fam, ok := vals["family"]; ok {
		if fam.IsNull() || fam.Type() != cty.String {
			diags = append(diags, shapeDiag(field+".family", expectedString, rng))
		} else {
			b.Family(fam.AsString())
		}
	}

	if diags.HasErrors() {
		return ExposePort{}, diags
	}
	port, err := b.Build()
	if err != nil {
		return ExposePort{}, hcl.Diagnostics{portNumberDiag(field, err.Error(), rng)}
	}
	return port, nil
}

// decodePortNumber narrows a cty number to a port. gocty truncates a
// fractional value on the way to an integer instead of failing, so whole
// numbers are enforced up front; the conversion itself rejects values
// outside the 16-bit range.
func decodePortNumber(val cty.Value, field string, rng hcl.Range) (uint16, hcl.Diagnostics) {
	if val.IsNull() || val.Type() != cty.Number {
		return 0, hcl.Diagnostics{portNumberDiag(field, "a port number is required", rng)}
	}
	if !val.AsBigFloat().IsInt() {
		return 0, hcl.Diagnostics{portNumberDiag(field, "value must be a whole number, between 0 and 65535 inclusive", rng)}
	}
	var port uint16
	if err := gocty.FromCtyValue(val, &port); err != nil {
		return 0, hcl.Diagnostics{portNumberDiag(field, err.Error(), rng)}
	}
	return port, nil
}

func decodeChainPolicy(expr hcl.Expression, field string) (ChainPolicy, hcl.Diagnostics) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", diags
	}
	rng := expr.Range()

	if val.IsNull() || val.Type() != cty.String {
		return "", hcl.Diagnostics{shapeDiag(field, expectedString, rng)}
	}
	policy, err := ParseChainPolicy(val.AsString())
	if err != nil {
		return "", hcl.Diagnostics{invalidValueDiag(field, err, rng)}
	}
	return policy, nil
}

func decodeRuleVerdict(expr hcl.Expression, field string) (RuleVerdict, hcl.Diagnostics) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", diags
	}
	rng := expr.Range()

	if val.IsNull() || val.Type() != cty.String {
		return "", hcl.Diagnostics{shapeDiag(field, expectedString, rng)}
	}
	verdict, err := ParseRuleVerdict(val.AsString())
	if err != nil {
		return "", hcl.Diagnostics{invalidValueDiag(field, err, rng)}
	}
	return verdict, nil
}
