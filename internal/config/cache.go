package config

import (
	"strings"
	"time"
)

// CacheConfig defines settings for the response cache middleware.  When
// Enabled is false or no Redis client is available, caching is disabled.
// Only GET-like methods listed in Methods are cached; entries live for TTL
// under keys starting with Prefix.  Responses larger than MaxBodyBytes are
// not stored.
type CacheConfig struct {
	Enabled      bool          `env:"ENABLED" envDefault:"true"`
	Methods      []string      `env:"METHODS" envDefault:"GET" envSeparator:","`
	TTL          time.Duration `env:"TTL" envDefault:"30s"`
	KeyStrategy  string        `env:"KEY_STRATEGY" envDefault:"route_query"`
	Prefix       string        `env:"PREFIX" envDefault:"cache"`
	MaxBodyBytes int           `env:"MAX_BODY_BYTES" envDefault:"1048576"`
}

// Caches reports whether responses to method may be cached.
func (c CacheConfig) Caches(method string) bool {
	for _, m := range c.Methods {
		if m == strings.ToUpper(method) {
			return true
		}
	}
	return false
}

func (c *CacheConfig) normalize() {
	methods := c.Methods[:0]
	for _, m := range c.Methods {
		if m = strings.TrimSpace(strings.ToUpper(m)); m != "" {
			methods = append(methods, m)
		}
	}
	c.Methods = methods
	if c.TTL <= 0 {
		c.TTL = time.Second
	}
	if c.Prefix == "" {
		c.Prefix = "cache"
	}
}
