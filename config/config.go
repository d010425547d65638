/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"dirpx.dev/bindx/apis"
	cachestrategy "dirpx.dev/bindx/cache/strategy"
)

const (
	// DefaultIncludeBuiltins represents the default for IncludeBuiltins.
	// When true, built-in types will be included.
	DefaultIncludeBuiltins = true
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
	// DefaultMapPreferElem represents the default for MapPreferElem.
	// When true, map value types are preferred when searching for named inner types.
	DefaultMapPreferElem = true
	// DefaultCacheStrategy is the default memoization policy.
	DefaultCacheStrategy = cachestrategy.LRU
	// DefaultCacheSize bounds the default resolution cache.
	DefaultCacheSize = 1024
	// DefaultCacheTTL is the entry lifetime used when TTL is selected
	// without a duration.
	DefaultCacheTTL = 10 * time.Minute
	// DefaultFieldPrefix prefixes derived delegate field names.
	DefaultFieldPrefix = "delegate"
)

// DefaultResolvers lists the default tie-break strategies in order.
var DefaultResolvers = []string{"specificity", "explicitness", "declaring-type"}

// ErrInvalidConfig is wrapped by Validate, Parse and Load failures.
var ErrInvalidConfig = errors.New("bindx(config): invalid config")

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxUnwrap is valid.
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		IncludeBuiltins: DefaultIncludeBuiltins,
		MaxUnwrap:       DefaultMaxUnwrap,
		MapPreferElem:   DefaultMapPreferElem,
		Resolvers:       slices.Clone(DefaultResolvers),
		CacheStrategy:   DefaultCacheStrategy,
		CacheSize:       DefaultCacheSize,
		CacheTTL:        DefaultCacheTTL,
		FieldPrefix:     DefaultFieldPrefix,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithIncludeBuiltins sets the IncludeBuiltins option.
func WithIncludeBuiltins(include bool) Option {
	return func(c *apis.Config) {
		c.IncludeBuiltins = include
	}
}

// WithMaxUnwrap sets the MaxUnwrap option.
// A negative value resets to the default.
func WithMaxUnwrap(n int) Option {
	return func(c *apis.Config) {
		if n < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = n
	}
}

// WithMapPreferElem sets the MapPreferElem option.
func WithMapPreferElem(prefer bool) Option {
	return func(c *apis.Config) {
		c.MapPreferElem = prefer
	}
}

// WithResolvers replaces the tie-break strategy order.
func WithResolvers(names ...string) Option {
	return func(c *apis.Config) {
		c.Resolvers = slices.Clone(names)
	}
}

// WithCacheStrategy sets the memoization policy.
func WithCacheStrategy(s cachestrategy.Strategy) Option {
	return func(c *apis.Config) {
		c.CacheStrategy = s
	}
}

// WithCacheSize sets the cache bound. A non-positive value resets to the default.
func WithCacheSize(size int) Option {
	return func(c *apis.Config) {
		if size <= 0 {
			size = DefaultCacheSize
		}
		c.CacheSize = size
	}
}

// WithCacheTTL sets the TTL entry lifetime. A non-positive value resets to the default.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *apis.Config) {
		if ttl <= 0 {
			ttl = DefaultCacheTTL
		}
		c.CacheTTL = ttl
	}
}

// WithFieldPrefix sets the prefix of derived delegate field names.
func WithFieldPrefix(prefix string) Option {
	return func(c *apis.Config) {
		c.FieldPrefix = prefix
	}
}

// Validate checks value ranges. Strategy names are checked when the
// resolver is built.
func Validate(cfg apis.Config) error {
	switch {
	case cfg.MaxUnwrap < 0:
		return fmt.Errorf("%w: maxUnwrap %d is negative", ErrInvalidConfig, cfg.MaxUnwrap)
	case len(cfg.Resolvers) == 0:
		return fmt.Errorf("%w: no resolvers", ErrInvalidConfig)
	case cfg.FieldPrefix == "":
		return fmt.Errorf("%w: empty fieldPrefix", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(cfg.Resolvers))
	for _, n := range cfg.Resolvers {
		if n == "" || seen[n] {
			return fmt.Errorf("%w: resolver %q empty or repeated", ErrInvalidConfig, n)
		}
		seen[n] = true
	}
	if _, err := cfg.CacheStrategy.MarshalText(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch cfg.CacheStrategy {
	case cachestrategy.LRU, cachestrategy.LFU, cachestrategy.TTL:
		if cfg.CacheSize <= 0 {
			return fmt.Errorf("%w: cacheSize %d must be positive for %s", ErrInvalidConfig, cfg.CacheSize, cfg.CacheStrategy)
		}
	}
	if cfg.CacheStrategy == cachestrategy.TTL && cfg.CacheTTL <= 0 {
		return fmt.Errorf("%w: cacheTTL must be positive", ErrInvalidConfig)
	}
	return nil
}

// Parse decodes a YAML document over the defaults and validates the result.
// Keys absent from the document keep their default values.
func Parse(data []byte) (apis.Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return apis.Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := Validate(cfg); err != nil {
		return apis.Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the YAML file at path.
func Load(path string) (apis.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return apis.Config{}, fmt.Errorf("bindx(config): read %s: %w", path, err)
	}
	return Parse(data)
}

// Marshal encodes cfg as YAML.
func Marshal(cfg apis.Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
