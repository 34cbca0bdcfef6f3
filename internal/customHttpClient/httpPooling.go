package customHttpClient

import (
	"net/http"
	"sync"
	"time"

	"github.com/akolanti/DocSummarizer/internal/config"
)

var (
	once   sync.Once
	client *http.Client
)

var customTransport = &http.Transport{
	Proxy:               http.ProxyFromEnvironment,
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

// GetClient returns the shared pooled client used for llm provider calls, so
// chunk after chunk reuse the same connections.
func GetClient(timeout time.Duration) *http.Client {
	once.Do(func() {
		client = &http.Client{
			Transport: customTransport,
			Timeout:   timeout,
		}
	})
	return client
}
