// Package netutil provides helper functions for network.
//
package netutil

import (
	"net"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	// MinPort is the smallest TCP port accepted by ParseHostPort.
	MinPort = 1
	// MaxPort is the largest TCP port accepted by ParseHostPort.
	MaxPort = 65535

	hostPortSeparator = ":"
)

var (
	errNoSeparator  = errors.New("missing host:port separator")
	errEmptyHost    = errors.New("empty host")
	errInvalidPort  = errors.New("invalid port")
	errPortOutRange = errors.Errorf("port out of range [%d, %d]", MinPort, MaxPort)
)

// HostPort is a validated pair of a host and a TCP port.
type HostPort struct {
	Host string
	Port int
}

// ParseHostPort parses the compact HOST:PORT format. The address is split at
// the first separator, the host must not be empty, and the port must be an
// integer in [MinPort, MaxPort].
func ParseHostPort(addr string) (HostPort, error) {
	host, portStr, ok := strings.Cut(addr, hostPortSeparator)
	if !ok {
		return HostPort{}, errors.WithStack(errNoSeparator)
	}
	if len(host) == 0 {
		return HostPort{}, errors.WithStack(errEmptyHost)
	}
	port, err := strconv.ParseInt(portStr, 10, 64)
	if err != nil {
		return HostPort{}, errors.Wrapf(errInvalidPort, "%q", portStr)
	}
	if port < MinPort || port > MaxPort {
		return HostPort{}, errors.Wrapf(errPortOutRange, "%d", port)
	}
	return HostPort{Host: host, Port: int(port)}, nil
}

// String returns the address in the form accepted by grpc.Dial.
func (hp HostPort) String() string {
	return net.JoinHostPort(hp.Host, strconv.Itoa(hp.Port))
}
