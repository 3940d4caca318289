package discovery

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/enbility/zeroconf/v3"
)

// DefaultBrowseTimeout bounds how long FindBackend waits for a backend
// to appear.
const DefaultBrowseTimeout = 10 * time.Second

// BrowserConfig configures backend browsing.
type BrowserConfig struct {
	// BrowseTimeout is the timeout for FindBackend.
	// Default: DefaultBrowseTimeout.
	BrowseTimeout time.Duration

	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string
}

// MDNSBrowser discovers backends using zeroconf.
type MDNSBrowser struct {
	config BrowserConfig
}

// NewMDNSBrowser creates a new mDNS browser.
func NewMDNSBrowser(config BrowserConfig) *MDNSBrowser {
	if config.BrowseTimeout <= 0 {
		config.BrowseTimeout = DefaultBrowseTimeout
	}
	return &MDNSBrowser{config: config}
}

// Browse emits discovered backends until ctx is cancelled.
func (b *MDNSBrowser) Browse(ctx context.Context) (<-chan *Backend, error) {
	out := make(chan *Backend)

	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)

	go func() {
		defer close(out)
		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return
				}
				backend := entryToBackend(entry)
				if backend == nil {
					continue
				}
				select {
				case out <- backend:
				case <-ctx.Done():
					return
				}
			case <-removed:
				// Departures are irrelevant: the driver only needs one
				// live endpoint.
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		defer close(entries)
		defer close(removed)
		_ = zeroconf.Browse(ctx, ServiceType, Domain, entries, removed, b.browserOptions()...)
	}()

	return out, nil
}

// FindBackend returns the first backend discovered on the local network.
func (b *MDNSBrowser) FindBackend(ctx context.Context) (*Backend, error) {
	ctx, cancel := context.WithTimeout(ctx, b.config.BrowseTimeout)
	defer cancel()

	results, err := b.Browse(ctx)
	if err != nil {
		return nil, err
	}

	select {
	case backend, ok := <-results:
		if !ok {
			return nil, fmt.Errorf("no backend found")
		}
		return backend, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("no backend found: %w", ctx.Err())
	}
}

func (b *MDNSBrowser) browserOptions() []zeroconf.ClientOption {
	var opts []zeroconf.ClientOption
	if b.config.Interface != "" {
		if iface, err := net.InterfaceByName(b.config.Interface); err == nil {
			opts = append(opts, zeroconf.SelectIfaces([]net.Interface{*iface}))
		}
	}
	return opts
}

// entryToBackend converts a zeroconf entry to a Backend.
func entryToBackend(entry *zeroconf.ServiceEntry) *Backend {
	if entry.Port == 0 {
		return nil
	}

	host := entry.HostName
	if host == "" {
		if len(entry.AddrIPv4) > 0 {
			host = entry.AddrIPv4[0].String()
		} else if len(entry.AddrIPv6) > 0 {
			host = entry.AddrIPv6[0].String()
		} else {
			return nil
		}
	}

	secure, path := decodeTXT(entry.Text)
	return &Backend{
		InstanceName: entry.Instance,
		Host:         host,
		Port:         uint16(entry.Port),
		Secure:       secure,
		Path:         path,
	}
}
