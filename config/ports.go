package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultProtocol is the family a port specification falls back to when
// none is given.
const DefaultProtocol = "tcp"

// ExposePort describes a single published port: the port opened on the
// host, the port the container listens on, and the transport family.
type ExposePort struct {
	// HostPort is the port opened towards the outside.
	HostPort uint16 `json:"host_port"`

	// ContainerPort is the port the traffic is forwarded to. nil means
	// "same as HostPort"; the rule compiler fills it in, the decoder
	// never does.
	ContainerPort *uint16 `json:"container_port,omitempty"`

	// Family is the transport family, e.g. "tcp" or "udp".
	Family string `json:"family,omitempty"`
}

// ParseExposePort parses the short port syntax "host[:container][/family]",
// e.g. "80", "53/udp" or "443:8443/tcp". The family defaults to tcp. Port
// numbers must fit in 16 bits; no further range policy is applied here.
func ParseExposePort(s string) (ExposePort, error) {
	b := NewExposePort()

	body := s
	if i := strings.LastIndex(s, "/"); i >= 0 {
		family := s[i+1:]
		if family == "" {
			return ExposePort{}, fmt.Errorf("port string %q has invalid format", s)
		}
		body = s[:i]
		b.Family(family)
	}

	parts := strings.Split(body, ":")
	switch len(parts) {
	case 1:
		host, err := parsePortNumber(parts[0])
		if err != nil {
			return ExposePort{}, fmt.Errorf("port string %q has invalid format: %w", s, err)
		}
		b.HostPort(host)
	case 2:
		host, err := parsePortNumber(parts[0])
		if err != nil {
			return ExposePort{}, fmt.Errorf("port string %q has invalid format: %w", s, err)
		}
		container, err := parsePortNumber(parts[1])
		if err != nil {
			return ExposePort{}, fmt.Errorf("port string %q has invalid format: %w", s, err)
		}
		b.HostPort(host).ContainerPort(container)
	default:
		return ExposePort{}, fmt.Errorf("port string %q has invalid format", s)
	}

	return b.Build()
}

func parsePortNumber(s string) (uint16, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, err
	}
	return uint16(n), nil
}

// ExposePortBuilder assembles an ExposePort from independently supplied
// parts. The host port is the only mandatory piece.
type ExposePortBuilder struct {
	hostPort      *uint16
	containerPort *uint16
	family        string
}

// NewExposePort returns an empty builder.
func NewExposePort() *ExposePortBuilder {
	return &ExposePortBuilder{}
}

// HostPort sets the port opened on the host.
func (b *ExposePortBuilder) HostPort(port uint16) *ExposePortBuilder {
	b.hostPort = &port
	return b
}

// ContainerPort sets the port the container listens on.
func (b *ExposePortBuilder) ContainerPort(port uint16) *ExposePortBuilder {
	b.containerPort = &port
	return b
}

// Family sets the transport family.
func (b *ExposePortBuilder) Family(family string) *ExposePortBuilder {
	b.family = family
	return b
}

// Build returns the assembled port. It fails when no host port was set;
// an unset family falls back to DefaultProtocol and an unset container
// port stays nil.
func (b *ExposePortBuilder) Build() (ExposePort, error) {
	if b.hostPort == nil {
		return ExposePort{}, errors.New("host port is required")
	}
	family := b.family
	if family == "" {
		family = DefaultProtocol
	}
	return ExposePort{
		HostPort:      *b.hostPort,
		ContainerPort: b.containerPort,
		Family:        family,
	}, nil
}
