// Package config decodes declarative container-firewall configuration
// into a strictly validated, fully normalized tree.
//
// # Overview
//
// Seawall uses HCL (HashiCorp Configuration Language) for its
// configuration, in both the native and the JSON syntax. This package
// provides:
//   - Strict decoding: unknown arguments and blocks fail the load
//   - Normalization of author-side shorthands into one canonical shape
//   - The short port grammar "host[:container][/family]"
//   - Deprecated-alias handling with warnings
//
// The package is the front half of the firewall: it produces the tree the
// rule compiler consumes. It generates no rules, runs no commands and
// reads no files.
//
// # Key Types
//
//   - [Config]: the decoded configuration tree
//   - [LoadResult]: result of a load, including deprecation warnings
//   - [ExposePort]: one published port (host, container, family)
//   - [ChainPolicy], [RuleVerdict]: the accept/drop(/reject) enums
//
// # Configuration Sections
//
// Every section is optional:
//   - defaults: custom tables and external interfaces
//   - initialization: raw rule text applied before generated rules
//   - container_to_container: traffic between containers
//   - container_to_wider_world: outbound container traffic
//   - container_to_host: traffic from containers to the host
//   - wider_world_to_container: published ports
//   - container_dnat: cross-network redirects
//
// # Value Conventions
//
// Fields documented as "string or sequence of strings" accept either; a
// single string decodes as a one-element list. defaults.custom_tables
// accepts a map or a sequence of maps the same way. expose_port accepts
// integers, grammar strings and maps, alone or freely mixed in one list:
//
//	wider_world_to_container {
//	    rule {
//	        network       = "web"
//	        dst_container = "nginx"
//	        expose_port   = [80, "443:8443/tcp", { host_port = 53, family = "udp" }]
//	    }
//	}
//
// No shorthand survives decoding; consumers only ever see the canonical
// shapes.
//
// # Errors
//
// All decode problems are reported as hcl.Diagnostics with source
// ranges. Any error aborts the load and no partial tree is returned.
// Deprecated aliases (action for verdict, source_cidr for source_cidr_v4)
// decode normally and surface as warnings on [LoadResult].
//
// # Example
//
//	result, err := config.LoadWithOptions(data, "firewall.hcl", config.DefaultLoadOptions())
//	if err != nil {
//	    return err
//	}
//	for _, w := range result.Warnings {
//	    log.Println(w)
//	}
//	compile(result.Config)
package config
