package config

// Config is the top-level firewall configuration tree. Every section is
// optional; an empty document is a valid configuration. Once Load returns,
// the tree is fully normalized and owned by the caller.
type Config struct {
	Defaults              *Defaults              `json:"defaults,omitempty"`
	Initialization        *Initialization        `json:"initialization,omitempty"`
	ContainerToContainer  *ContainerToContainer  `json:"container_to_container,omitempty"`
	ContainerToWiderWorld *ContainerToWiderWorld `json:"container_to_wider_world,omitempty"`
	ContainerToHost       *ContainerToHost       `json:"container_to_host,omitempty"`
	WiderWorldToContainer *WiderWorldToContainer `json:"wider_world_to_container,omitempty"`
	ContainerDNAT         *ContainerDNAT         `json:"container_dnat,omitempty"`
}

// Defaults holds settings that apply across all generated rules.
type Defaults struct {
	// CustomTables declares additional tables whose named chains must be
	// left intact when rules are regenerated.
	CustomTables []Table `json:"custom_tables,omitempty"`

	// ExternalNetworkInterfaces lists the host interfaces facing the
	// wider world.
	ExternalNetworkInterfaces []string `json:"external_network_interfaces,omitempty"`

	// DefaultDockerBridgeToHostPolicy is the stance for traffic arriving
	// from the default bridge towards the host. Defaults to accept.
	DefaultDockerBridgeToHostPolicy ChainPolicy `json:"default_docker_bridge_to_host_policy"`
}

// sectionCount reports how many sections the document defined, for the
// loader's debug trace.
func (c *Config) sectionCount() int {
	n := 0
	for _, present := range []bool{
		c.Defaults != nil,
		c.Initialization != nil,
		c.ContainerToContainer != nil,
		c.ContainerToWiderWorld != nil,
		c.ContainerToHost != nil,
		c.WiderWorldToContainer != nil,
		c.ContainerDNAT != nil,
	} {
		if present {
			n++
		}
	}
	return n
}

// Table names a firewall table and the chains within it that must be
// preserved.
type Table struct {
	Name   string   `json:"name"`
	Chains []string `json:"chains"`
}

// Initialization carries raw rule text applied once before any generated
// rules, e.g. set or chain definitions the generator knows nothing about.
type Initialization struct {
	Rules []string `json:"rules,omitempty"`
}
