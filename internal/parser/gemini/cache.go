package gemini

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"invana/internal/config"
	"invana/internal/port"
)

const clientCacheSize = 16

// ClientCache hands out Gemini clients cached by credential pair.
// Construction is idempotent and side-effect-free, so concurrent callers
// with the same credentials may briefly race to build a client; the
// cache keeps whichever lands last. Reset drops every cached client,
// which credential rotation and tests rely on.
type ClientCache struct {
	cache    *lru.Cache[string, *Client]
	defaults *config.GeminiConfig
	endpoint string
}

var _ port.ModelClientFactory = (*ClientCache)(nil)

// NewClientCache creates a cache that fills in timeout and model
// defaults from cfg for every constructed client.
func NewClientCache(cfg *config.GeminiConfig) *ClientCache {
	return newClientCache(cfg, "")
}

// NewClientCacheWithEndpoint creates a cache whose clients call a custom
// endpoint (for testing).
func NewClientCacheWithEndpoint(cfg *config.GeminiConfig, endpoint string) *ClientCache {
	return newClientCache(cfg, endpoint)
}

func newClientCache(cfg *config.GeminiConfig, endpoint string) *ClientCache {
	cache, _ := lru.New[string, *Client](clientCacheSize)
	return &ClientCache{cache: cache, defaults: cfg, endpoint: endpoint}
}

func (cc *ClientCache) Client(apiKey, model string) (port.ModelClient, error) {
	if apiKey == "" {
		apiKey = cc.defaults.APIKey
	}
	if model == "" {
		model = cc.defaults.Model
	}
	key := apiKey + "|" + model
	if client, ok := cc.cache.Get(key); ok {
		return client, nil
	}
	client := newClient(&config.GeminiConfig{
		APIKey:      apiKey,
		Model:       model,
		TimeoutSecs: cc.defaults.TimeoutSecs,
	}, cc.endpoint)
	cc.cache.Add(key, client)
	return client, nil
}

// Reset clears the cache.
func (cc *ClientCache) Reset() {
	cc.cache.Purge()
}
