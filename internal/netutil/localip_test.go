package netutil

import (
	"net"
	"testing"
)

func TestLocalIPIsParseable(t *testing.T) {
	ip := LocalIP()
	if net.ParseIP(ip) == nil {
		t.Fatalf("LocalIP returned %q, not a valid IP", ip)
	}
}
