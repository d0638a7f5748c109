package config

import "fmt"

// ChainPolicy is the default stance a chain takes for traffic no rule
// matched. Unlike RuleVerdict it cannot reject: a chain policy is applied
// by the kernel after rule evaluation, where only accept and drop exist.
type ChainPolicy string

const (
	ChainPolicyAccept ChainPolicy = "accept"
	ChainPolicyDrop   ChainPolicy = "drop"
)

// ParseChainPolicy validates s against the known chain policies.
func ParseChainPolicy(s string) (ChainPolicy, error) {
	switch ChainPolicy(s) {
	case ChainPolicyAccept, ChainPolicyDrop:
		return ChainPolicy(s), nil
	}
	return "", fmt.Errorf("chain policy must be %q or %q, got %q", ChainPolicyAccept, ChainPolicyDrop, s)
}

func (p ChainPolicy) String() string {
	return string(p)
}

// RuleVerdict is the outcome of a rule match.
type RuleVerdict string

const (
	RuleVerdictAccept RuleVerdict = "accept"
	RuleVerdictDrop   RuleVerdict = "drop"
	RuleVerdictReject RuleVerdict = "reject"
)

// ParseRuleVerdict validates s against the known verdicts.
func ParseRuleVerdict(s string) (RuleVerdict, error) {
	switch RuleVerdict(s) {
	case RuleVerdictAccept, RuleVerdictDrop, RuleVerdictReject:
		return RuleVerdict(s), nil
	}
	return "", fmt.Errorf("verdict must be %q, %q or %q, got %q", RuleVerdictAccept, RuleVerdictDrop, RuleVerdictReject, s)
}

func (v RuleVerdict) String() string {
	return string(v)
}
