// Package privacy provides utilities for handling personally identifiable
// information (PII) in log and audit output.
package privacy

import (
	"fmt"
	"net/netip"
)

// AnonymizeIP truncates an IP address to remove the host-identifying portion
// before it reaches logs or audit events.
//
// IPv4 addresses are masked to their /24 network ("203.0.113.47" -> "203.0.113.0").
// IPv6 addresses keep only the /48 prefix ("2001:db8:85a3::7334" -> "2001:0db8:85a3::").
//
// Returns "invalid" for unparseable addresses and "unknown" for empty strings.
func AnonymizeIP(ip string) string {
	if ip == "" || ip == "unknown" {
		return "unknown"
	}

	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return "invalid"
	}

	if addr.Is4() || addr.Is4In6() {
		v4 := addr.As4()
		return fmt.Sprintf("%d.%d.%d.0", v4[0], v4[1], v4[2])
	}

	v6 := addr.As16()
	return fmt.Sprintf("%02x%02x:%02x%02x:%02x%02x::",
		v6[0], v6[1],
		v6[2], v6[3],
		v6[4], v6[5])
}
