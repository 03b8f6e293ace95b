package telemetry

import (
	"net"
	"time"
)

// OutboundIP reports the local address the OS would route external traffic
// through. UDP "connect" only picks a source address; no packet is sent.
func OutboundIP() string {
	conn, err := net.DialTimeout("udp", "8.8.8.8:80", 2*time.Second)
	if err != nil {
		return ""
	}
	defer conn.Close()
	if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
		return addr.IP.String()
	}
	return ""
}
