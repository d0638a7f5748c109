package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// The raw structs below mirror the public tree one-to-one but capture every
// polymorphic, aliased or enum-valued attribute as an unevaluated
// hcl.Expression. gohcl enforces the closed world (unknown arguments and
// blocks fail) and plain required arguments; the cook step then runs the
// normalizers and resolves aliases to produce the public tree.
//
// gohcl never marks an expression-typed attribute as required and fills an
// absent one with a synthetic expression that evaluates to null, so
// presence is tested with exprAbsent rather than a nil check, and required
// expression attributes (default_policy, expose_port) are enforced in the
// cook step. An explicit null literal is indistinguishable from leaving
// the attribute out and is treated the same way.

type configHCL struct {
	Defaults              *defaultsHCL              `hcl:"defaults,block"`
	Initialization        *initializationHCL        `hcl:"initialization,block"`
	ContainerToContainer  *containerToContainerHCL  `hcl:"container_to_container,block"`
	ContainerToWiderWorld *containerToWiderWorldHCL `hcl:"container_to_wider_world,block"`
	ContainerToHost       *containerToHostHCL       `hcl:"container_to_host,block"`
	WiderWorldToContainer *widerWorldToContainerHCL `hcl:"wider_world_to_container,block"`
	ContainerDNAT         *containerDNATHCL         `hcl:"container_dnat,block"`
}

type defaultsHCL struct {
	CustomTables                    hcl.Expression `hcl:"custom_tables,optional"`
	ExternalNetworkInterfaces       hcl.Expression `hcl:"external_network_interfaces,optional"`
	DefaultDockerBridgeToHostPolicy hcl.Expression `hcl:"default_docker_bridge_to_host_policy,optional"`
}

type initializationHCL struct {
	Rules hcl.Expression `hcl:"rules,optional"`
}

type containerToContainerHCL struct {
	DefaultPolicy hcl.Expression                `hcl:"default_policy"`
	Rules         []containerToContainerRuleHCL `hcl:"rule,block"`
}

type containerToContainerRuleHCL struct {
	Network      string         `hcl:"network"`
	SrcContainer *string        `hcl:"src_container,optional"`
	DstContainer *string        `hcl:"dst_container,optional"`
	Matches      *string        `hcl:"matches,optional"`
	Verdict      hcl.Expression `hcl:"verdict,optional"`
	Action       hcl.Expression `hcl:"action,optional"`
}

type containerToWiderWorldHCL struct {
	DefaultPolicy hcl.Expression                 `hcl:"default_policy"`
	Rules         []containerToWiderWorldRuleHCL `hcl:"rule,block"`
}

type containerToWiderWorldRuleHCL struct {
	Network                  *string        `hcl:"network,optional"`
	SrcContainer             *string        `hcl:"src_container,optional"`
	Matches                  *string        `hcl:"matches,optional"`
	Verdict                  hcl.Expression `hcl:"verdict,optional"`
	Action                   hcl.Expression `hcl:"action,optional"`
	ExternalNetworkInterface *string        `hcl:"external_network_interface,optional"`
}

type containerToHostHCL struct {
	DefaultPolicy hcl.Expression           `hcl:"default_policy"`
	Rules         []containerToHostRuleHCL `hcl:"rule,block"`
}

type containerToHostRuleHCL struct {
	Network      string         `hcl:"network"`
	SrcContainer *string        `hcl:"src_container,optional"`
	Matches      *string        `hcl:"matches,optional"`
	Verdict      hcl.Expression `hcl:"verdict,optional"`
	Action       hcl.Expression `hcl:"action,optional"`
}

type widerWorldToContainerHCL struct {
	Rules []widerWorldToContainerRuleHCL `hcl:"rule,block"`
}

type widerWorldToContainerRuleHCL struct {
	Network                  string         `hcl:"network"`
	DstContainer             string         `hcl:"dst_container"`
	ExposePort               hcl.Expression `hcl:"expose_port,optional"`
	ExternalNetworkInterface *string        `hcl:"external_network_interface,optional"`
	SourceCIDRv4             hcl.Expression `hcl:"source_cidr_v4,optional"`
	SourceCIDRv6             hcl.Expression `hcl:"source_cidr_v6,optional"`
	SourceCIDR               hcl.Expression `hcl:"source_cidr,optional"`
}

type containerDNATHCL struct {
	Rules []containerDNATRuleHCL `hcl:"rule,block"`
}

type containerDNATRuleHCL struct {
	SrcNetwork   *string        `hcl:"src_network,optional"`
	SrcContainer *string        `hcl:"src_container,optional"`
	DstNetwork   string         `hcl:"dst_network"`
	DstContainer string         `hcl:"dst_container"`
	ExposePort   hcl.Expression `hcl:"expose_port,optional"`
}

// exprAbsent reports whether an optional expression attribute was left
// unwritten. Expressions that cannot be evaluated statically count as
// present; the normalizer that evaluates them reports the real problem.
func exprAbsent(expr hcl.Expression) bool {
	if expr == nil {
		return true
	}
	val, diags := expr.Value(nil)
	return !diags.HasErrors() && val.IsNull()
}

// exprRange points a diagnostic at an expression. For an absent attribute
// the synthetic expression still locates the enclosing body, which beats
// a diagnostic with no position at all.
func exprRange(expr hcl.Expression) *hcl.Range {
	if expr == nil {
		return nil
	}
	rng := expr.Range()
	return &rng
}

func (raw *configHCL) cook() (*Config, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	cfg := &Config{}

	if raw.Defaults != nil {
		section, moreDiags := raw.Defaults.cook()
		diags = append(diags, moreDiags...)
		cfg.Defaults = section
	}
	if raw.Initialization != nil {
		section, moreDiags := raw.Initialization.cook()
		diags = append(diags, moreDiags...)
		cfg.Initialization = section
	}
	if raw.ContainerToContainer != nil {
		section, moreDiags := raw.ContainerToContainer.cook()
		diags = append(diags, moreDiags...)
		cfg.ContainerToContainer = section
	}
	if raw.ContainerToWiderWorld != nil {
		section, moreDiags := raw.ContainerToWiderWorld.cook()
		diags = append(diags, moreDiags...)
		cfg.ContainerToWiderWorld = section
	}
	if raw.ContainerToHost != nil {
		section, moreDiags := raw.ContainerToHost.cook()
		diags = append(diags, moreDiags...)
		cfg.ContainerToHost = section
	}
	if raw.WiderWorldToContainer != nil {
		section, moreDiags := raw.WiderWorldToContainer.cook()
		diags = append(diags, moreDiags...)
		cfg.WiderWorldToContainer = section
	}
	if raw.ContainerDNAT != nil {
		section, moreDiags := raw.ContainerDNAT.cook()
		diags = append(diags, moreDiags...)
		cfg.ContainerDNAT = section
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return cfg, diags
}

func (raw *defaultsHCL) cook() (*Defaults, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	section := &Defaults{
		DefaultDockerBridgeToHostPolicy: ChainPolicyAccept,
	}

	if !exprAbsent(raw.CustomTables) {
		tables, moreDiags := decodeTableList(raw.CustomTables, "defaults.custom_tables")
		diags = append(diags, moreDiags...)
		section.CustomTables = tables
	}
	if !exprAbsent(raw.ExternalNetworkInterfaces) {
		interfaces, moreDiags := decodeStringOrSeq(raw.ExternalNetworkInterfaces, "defaults.external_network_interfaces")
		diags = append(diags, moreDiags...)
		section.ExternalNetworkInterfaces = interfaces
	}
	if !exprAbsent(raw.DefaultDockerBridgeToHostPolicy) {
		policy, moreDiags := decodeChainPolicy(raw.DefaultDockerBridgeToHostPolicy, "defaults.default_docker_bridge_to_host_policy")
		diags = append(diags, moreDiags...)
		if !moreDiags.HasErrors() {
			section.DefaultDockerBridgeToHostPolicy = policy
		}
	}

	return section, diags
}

func (raw *initializationHCL) cook() (*Initialization, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	section := &Initialization{}

	if !exprAbsent(raw.Rules) {
		rules, moreDiags := decodeStringSeqExpr(raw.Rules, "initialization.rules")
		diags = append(diags, moreDiags...)
		section.Rules = rules
	}

	return section, diags
}

func (raw *containerToContainerHCL) cook() (*ContainerToContainer, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	section := &ContainerToContainer{}

	if exprAbsent(raw.DefaultPolicy) {
		diags = append(diags, missingKeyDiag("container_to_container", "default_policy", exprRange(raw.DefaultPolicy)))
	} else {
		policy, moreDiags := decodeChainPolicy(raw.DefaultPolicy, "container_to_container.default_policy")
		diags = append(diags, moreDiags...)
		section.DefaultPolicy = policy
	}

	for i, rawRule := range raw.Rules {
		field := fmt.Sprintf("container_to_container.rules[%d]", i)
		verdict, moreDiags := resolveVerdict(rawRule.Verdict, rawRule.Action, field)
		diags = append(diags, moreDiags...)
		section.Rules = append(section.Rules, ContainerToContainerRule{
			Network:      rawRule.Network,
			SrcContainer: rawRule.SrcContainer,
			DstContainer: rawRule.DstContainer,
			Matches:      rawRule.Matches,
			Verdict:      verdict,
		})
	}

	return section, diags
}

func (raw *containerToWiderWorldHCL) cook() (*ContainerToWiderWorld, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	section := &ContainerToWiderWorld{}

	if exprAbsent(raw.DefaultPolicy) {
		diags = append(diags, missingKeyDiag("container_to_wider_world", "default_policy", exprRange(raw.DefaultPolicy)))
	} else {
		policy, moreDiags := decodeRuleVerdict(raw.DefaultPolicy, "container_to_wider_world.default_policy")
		diags = append(diags, moreDiags...)
		section.DefaultPolicy = policy
	}

	for i, rawRule := range raw.Rules {
		field := fmt.Sprintf("container_to_wider_world.rules[%d]", i)
		verdict, moreDiags := resolveVerdict(rawRule.Verdict, rawRule.Action, field)
		diags = append(diags, moreDiags...)
		section.Rules = append(section.Rules, ContainerToWiderWorldRule{
			Network:                  rawRule.Network,
			SrcContainer:             rawRule.SrcContainer,
			Matches:                  rawRule.Matches,
			Verdict:                  verdict,
			ExternalNetworkInterface: rawRule.ExternalNetworkInterface,
		})
	}

	return section, diags
}

func (raw *containerToHostHCL) cook() (*ContainerToHost, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	section := &ContainerToHost{}

	if exprAbsent(raw.DefaultPolicy) {
		diags = append(diags, missingKeyDiag("container_to_host", "default_policy", exprRange(raw.DefaultPolicy)))
	} else {
		policy, moreDiags := decodeRuleVerdict(raw.DefaultPolicy, "container_to_host.default_policy")
		diags = append(diags, moreDiags...)
		section.DefaultPolicy = policy
	}

	for i, rawRule := range raw.Rules {
		field := fmt.Sprintf("container_to_host.rules[%d]", i)
		verdict, moreDiags := resolveVerdict(rawRule.Verdict, rawRule.Action, field)
		diags = append(diags, moreDiags...)
		section.Rules = append(section.Rules, ContainerToHostRule{
			Network:      rawRule.Network,
			SrcContainer: rawRule.SrcContainer,
			Matches:      rawRule.Matches,
			Verdict:      verdict,
		})
	}

	return section, diags
}

func (raw *widerWorldToContainerHCL) cook() (*WiderWorldToContainer, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	section := &WiderWorldToContainer{}

	for i, rawRule := range raw.Rules {
		field := fmt.Sprintf("wider_world_to_container.rules[%d]", i)
		rule := WiderWorldToContainerRule{
			Network:                  rawRule.Network,
			DstContainer:             rawRule.DstContainer,
			ExternalNetworkInterface: rawRule.ExternalNetworkInterface,
		}

		if exprAbsent(rawRule.ExposePort) {
			diags = append(diags, missingKeyDiag(field, "expose_port", exprRange(rawRule.ExposePort)))
		} else {
			ports, moreDiags := decodeExposePorts(rawRule.ExposePort, field+".expose_port")
			diags = append(diags, moreDiags...)
			rule.ExposePort = ports
		}

		v4Expr := rawRule.SourceCIDRv4
		if !exprAbsent(rawRule.SourceCIDR) {
			if !exprAbsent(v4Expr) {
				diags = append(diags, conflictDiag(field, "source_cidr_v4", "source_cidr", rawRule.SourceCIDR.Range()))
			} else {
				diags = append(diags, aliasWarnDiag(field, "source_cidr", "source_cidr_v4", rawRule.SourceCIDR.Range()))
				v4Expr = rawRule.SourceCIDR
			}
		}
		if !exprAbsent(v4Expr) {
			cidrs, moreDiags := decodeStringOrSeq(v4Expr, field+".source_cidr_v4")
			diags = append(diags, moreDiags...)
			rule.SourceCIDRv4 = cidrs
		}
		if !exprAbsent(rawRule.SourceCIDRv6) {
			cidrs, moreDiags := decodeStringOrSeq(rawRule.SourceCIDRv6, field+".source_cidr_v6")
			diags = append(diags, moreDiags...)
			rule.SourceCIDRv6 = cidrs
		}

		section.Rules = append(section.Rules, rule)
	}

	return section, diags
}

func (raw *containerDNATHCL) cook() (*ContainerDNAT, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	section := &ContainerDNAT{}

	for i, rawRule := range raw.Rules {
		field := fmt.Sprintf("container_dnat.rules[%d]", i)
		rule := ContainerDNATRule{
			SrcNetwork:   rawRule.SrcNetwork,
			SrcContainer: rawRule.SrcContainer,
			DstNetwork:   rawRule.DstNetwork,
			DstContainer: rawRule.DstContainer,
		}

		if exprAbsent(rawRule.ExposePort) {
			diags = append(diags, missingKeyDiag(field, "expose_port", exprRange(rawRule.ExposePort)))
		} else {
			ports, moreDiags := decodeExposePorts(rawRule.ExposePort, field+".expose_port")
			diags = append(diags, moreDiags...)
			rule.ExposePort = ports
		}

		section.Rules = append(section.Rules, rule)
	}

	return section, diags
}

// resolveVerdict folds the verdict attribute and its legacy "action"
// spelling into one value. Exactly one of the two must be set.
func resolveVerdict(verdict, action hcl.Expression, field string) (RuleVerdict, hcl.Diagnostics) {
	hasVerdict := !exprAbsent(verdict)
	hasAction := !exprAbsent(action)
	switch {
	case hasVerdict && hasAction:
		return "", hcl.Diagnostics{conflictDiag(field, "verdict", "action", action.Range())}
	case hasVerdict:
		return decodeRuleVerdict(verdict, field+".verdict")
	case hasAction:
		diags := hcl.Diagnostics{aliasWarnDiag(field, "action", "verdict", action.Range())}
		v, moreDiags := decodeRuleVerdict(action, field+".action")
		return v, append(diags, moreDiags...)
	default:
		rng := exprRange(verdict)
		if rng == nil {
			rng = exprRange(action)
		}
		return "", hcl.Diagnostics{missingKeyDiag(field, "verdict", rng)}
	}
}
