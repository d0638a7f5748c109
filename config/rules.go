package config

// ContainerToContainer governs traffic between containers, across and
// within networks.
type ContainerToContainer struct {
	// DefaultPolicy is the stance for container-to-container traffic no
	// rule matched.
	DefaultPolicy ChainPolicy `json:"default_policy"`

	Rules []ContainerToContainerRule `json:"rules,omitempty"`
}

// ContainerToContainerRule matches traffic between two containers on the
// same network. Rules are evaluated in order - first match wins.
type ContainerToContainerRule struct {
	// Network is the network both containers must be attached to.
	Network string `json:"network"`

	SrcContainer *string `json:"src_container,omitempty"`
	DstContainer *string `json:"dst_container,omitempty"`

	// Matches is an additional raw match expression appended to the
	// generated rule.
	Matches *string `json:"matches,omitempty"`

	Verdict RuleVerdict `json:"verdict"`
}

// ContainerToWiderWorld governs traffic leaving containers for the world
// outside the host.
type ContainerToWiderWorld struct {
	DefaultPolicy RuleVerdict `json:"default_policy"`

	Rules []ContainerToWiderWorldRule `json:"rules,omitempty"`
}

// ContainerToWiderWorldRule matches outbound container traffic.
type ContainerToWiderWorldRule struct {
	Network      *string `json:"network,omitempty"`
	SrcContainer *string `json:"src_container,omitempty"`
	Matches      *string `json:"matches,omitempty"`

	Verdict RuleVerdict `json:"verdict"`

	// ExternalNetworkInterface overrides the default external interface
	// for this rule.
	ExternalNetworkInterface *string `json:"external_network_interface,omitempty"`
}

// ContainerToHost governs traffic from containers to the host itself.
type ContainerToHost struct {
	DefaultPolicy RuleVerdict `json:"default_policy"`

	Rules []ContainerToHostRule `json:"rules,omitempty"`
}

// ContainerToHostRule matches traffic from a container towards the host.
type ContainerToHostRule struct {
	Network      string  `json:"network"`
	SrcContainer *string `json:"src_container,omitempty"`
	Matches      *string `json:"matches,omitempty"`

	Verdict RuleVerdict `json:"verdict"`
}

// WiderWorldToContainer publishes container ports to the wider world.
// There is no default policy: unpublished traffic simply never reaches a
// container.
type WiderWorldToContainer struct {
	Rules []WiderWorldToContainerRule `json:"rules,omitempty"`
}

// WiderWorldToContainerRule publishes one or more ports of a container.
type WiderWorldToContainerRule struct {
	// Network is the network the destination container is attached to.
	Network string `json:"network"`

	DstContainer string `json:"dst_container"`

	// ExposePort lists the ports to publish.
	ExposePort []ExposePort `json:"expose_port"`

	// ExternalNetworkInterface overrides the default external interface
	// for this rule.
	ExternalNetworkInterface *string `json:"external_network_interface,omitempty"`

	// SourceCIDRv4 and SourceCIDRv6 restrict who may reach the published
	// ports. Empty means everyone.
	SourceCIDRv4 []string `json:"source_cidr_v4,omitempty"`
	SourceCIDRv6 []string `json:"source_cidr_v6,omitempty"`
}

// ContainerDNAT redirects traffic from one container network into another,
// for containers that must reach published ports of a sibling network.
type ContainerDNAT struct {
	Rules []ContainerDNATRule `json:"rules,omitempty"`
}

// ContainerDNATRule redirects matching traffic to a destination container.
type ContainerDNATRule struct {
	SrcNetwork   *string `json:"src_network,omitempty"`
	SrcContainer *string `json:"src_container,omitempty"`

	DstNetwork   string `json:"dst_network"`
	DstContainer string `json:"dst_container"`

	ExposePort []ExposePort `json:"expose_port"`
}
