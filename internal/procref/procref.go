// Package procref parses and resolves references to running processes.
//
// A reference is either a PID ("12345"), a debug endpoint address
// ("localhost:6060"), or a bare port (":6060", host defaults to localhost).
// PID references identify a process for direct inspection; address
// references point at an HTTP server exposing net/http/pprof handlers.
package procref

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Ref is a parsed process reference.
type Ref struct {
	pid  int32
	host string
	port int
}

// Parse parses a process reference string.
func Parse(s string) (Ref, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Ref{}, fmt.Errorf("empty process reference")
	}

	if isDigits(s) {
		pid, err := strconv.ParseInt(s, 10, 32)
		if err != nil || pid <= 0 {
			return Ref{}, fmt.Errorf("invalid PID %q", s)
		}
		return Ref{pid: int32(pid)}, nil
	}

	if strings.Contains(s, ":") {
		host, portStr, err := net.SplitHostPort(s)
		if err != nil {
			return Ref{}, fmt.Errorf("invalid process address %q: %w", s, err)
		}
		port, err := strconv.Atoi(portStr)
		if err != nil || port < 1 || port > 65535 {
			return Ref{}, fmt.Errorf("invalid port in process address %q", s)
		}
		if host == "" {
			host = "localhost"
		}
		return Ref{host: host, port: port}, nil
	}

	return Ref{}, fmt.Errorf("process reference %q is neither a PID nor a host:port address", s)
}

// IsPID reports whether the reference names a process by PID.
func (r Ref) IsPID() bool {
	return r.pid != 0
}

// PID returns the referenced process ID. For address references it resolves
// the PID by scanning /proc for the process listening on the port, which
// only works for processes on the local host.
func (r Ref) PID() (int32, error) {
	if r.pid != 0 {
		return r.pid, nil
	}

	if !isLocalHost(r.host) {
		return 0, fmt.Errorf("cannot resolve PID for remote host %q", r.host)
	}

	pid, err := findPidByPort(r.port)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve PID for port %d: %w", r.port, err)
	}
	if pid == 0 {
		return 0, fmt.Errorf("no process found listening on port %d", r.port)
	}
	return pid, nil
}

// BaseURL returns the http base URL of the referenced debug endpoint.
// PID references have no endpoint and return an error.
func (r Ref) BaseURL() (string, error) {
	if r.pid != 0 {
		return "", fmt.Errorf("process %d has no debug endpoint address", r.pid)
	}
	return "http://" + net.JoinHostPort(r.host, strconv.Itoa(r.port)), nil
}

func (r Ref) String() string {
	if r.pid != 0 {
		return strconv.FormatInt(int64(r.pid), 10)
	}
	return net.JoinHostPort(r.host, strconv.Itoa(r.port))
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isLocalHost(host string) bool {
	switch host {
	case "", "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}
