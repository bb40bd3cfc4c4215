package httpx

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	netproxy "golang.org/x/net/proxy"
)

const scrapeTimeout = 10 * time.Second

// NewScrapeClient builds the HTTP client used for web search and page
// fetches. proxyAddr, when non-empty, is a SOCKS5 proxy (host:port) all
// scrape traffic is dialed through.
func NewScrapeClient(proxyAddr string) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if addr := strings.TrimSpace(proxyAddr); addr != "" {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return nil, fmt.Errorf("invalid scrape proxy %q: %w", addr, err)
		}
		dialer, err := netproxy.SOCKS5("tcp", addr, nil, netproxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("invalid scrape proxy %q: %w", addr, err)
		}
		transport.Proxy = nil
		transport.DialContext = func(ctx context.Context, network, address string) (net.Conn, error) {
			if cd, ok := dialer.(netproxy.ContextDialer); ok {
				return cd.DialContext(ctx, network, address)
			}
			return dialer.Dial(network, address)
		}
	}

	return &http.Client{
		Transport: transport,
		Timeout:   scrapeTimeout,
	}, nil
}
