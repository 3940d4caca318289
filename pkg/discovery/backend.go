package discovery

import (
	"fmt"
	"strings"
)

// ServiceType is the mDNS service type advertised by Meetwire backends.
const ServiceType = "_meetwire._tcp"

// Domain is the mDNS browse domain.
const Domain = "local."

// Backend describes a discovered signaling endpoint.
type Backend struct {
	// InstanceName is the advertised mDNS instance name.
	InstanceName string

	// Host is the backend hostname.
	Host string

	// Port is the signaling port.
	Port uint16

	// Secure selects wss:// over ws://.
	Secure bool

	// Path is the WebSocket path, defaulting to /ws.
	Path string
}

// URL returns the signaling endpoint URL for the backend.
func (b *Backend) URL() string {
	scheme := "ws"
	if b.Secure {
		scheme = "wss"
	}
	path := b.Path
	if path == "" {
		path = "/ws"
	}
	host := strings.TrimSuffix(b.Host, ".")
	return fmt.Sprintf("%s://%s:%d%s", scheme, host, b.Port, path)
}

// decodeTXT extracts endpoint details from mDNS TXT records.
// Unknown keys and malformed records are ignored.
func decodeTXT(records []string) (secure bool, path string) {
	for _, rec := range records {
		key, value, ok := strings.Cut(rec, "=")
		if !ok {
			continue
		}
		switch key {
		case "secure":
			secure = value == "1" || value == "true"
		case "path":
			if strings.HasPrefix(value, "/") {
				path = value
			}
		}
	}
	return secure, path
}
