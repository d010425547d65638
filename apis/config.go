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

package apis

import (
	"time"

	cachestrategy "dirpx.dev/bindx/cache/strategy"
)

// Config carries read-only knobs that influence registry normalization,
// ambiguity resolution and memoization.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// IncludeBuiltins controls whether builtin/no-package Go types
	// (e.g., "int", "string") may be registered as handler types.
	IncludeBuiltins bool `yaml:"includeBuiltins"`

	// MaxUnwrap limits container unwrapping depth (ptr/slice/array/chan/map)
	// when normalizing Go types for registry lookups.
	MaxUnwrap int `yaml:"maxUnwrap"`

	// MapPreferElem controls which side of map[K]V is considered “primary”
	// when searching for a nearest named inner type. If true, prefer V; otherwise K.
	MapPreferElem bool `yaml:"mapPreferElem"`

	// Resolvers lists tie-break strategy names in the order they are asked.
	Resolvers []string `yaml:"resolvers"`

	// CacheStrategy selects the memoization policy. It is encoded by name
	// ("LRU", "LFU", "TTL", "Unbounded", "None").
	CacheStrategy cachestrategy.Strategy `yaml:"cacheStrategy"`

	// CacheSize bounds the number of memoized resolutions for LRU, LFU and TTL.
	CacheSize int `yaml:"cacheSize"`

	// CacheTTL is the entry lifetime for the TTL strategy.
	CacheTTL time.Duration `yaml:"cacheTTL"`

	// FieldPrefix is the prefix of derived delegate field names.
	FieldPrefix string `yaml:"fieldPrefix"`
}
