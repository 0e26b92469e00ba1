package download

import (
	"net"
	"net/http"
	"time"

	"github.com/urandom/feedkeeper/config"
)

// NewClient creates an http client that honors the configured connect and
// request timeouts.
func NewClient(cfg config.Timeout) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.Converted.Connect,
		KeepAlive: 30 * time.Second,
	}

	return &http.Client{
		Timeout: cfg.Converted.Request,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			DialContext:         dialer.DialContext,
			TLSHandshakeTimeout: cfg.Converted.Connect,
			MaxIdleConnsPerHost: 4,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
