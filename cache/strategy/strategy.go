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

package strategy

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStrategy is returned for tokens or values that name no Strategy.
var ErrUnknownStrategy = errors.New("bindx(cache): unknown strategy")

// Strategy selects the retention policy of a resolution cache.
//
// Strategy only picks a broad class of behavior. Capacity and entry lifetime
// are configured separately (apis.Config.CacheSize and CacheTTL).
//
// Values are stable: new strategies are appended, existing ones never change
// meaning, so persisted configuration keeps decoding to the same policy.
type Strategy int

const (
	// LRU evicts the entry that was not read or written for the longest
	// time once the size bound is reached.
	LRU Strategy = iota

	// LFU keeps frequently requested call sites. It is approximated by a
	// two-queue cache: entries read more than once are promoted to a
	// frequency queue and survive bursts of one-off lookups.
	LFU

	// TTL expires entries a fixed duration after insertion, in addition to
	// the LRU size bound. Lookups never return expired entries.
	TTL

	// None disables memoization: every lookup misses and writes are dropped.
	// Resolution results stay identical, only slower.
	None

	// Unbounded retains every resolution for the lifetime of the cache.
	// Suitable when the set of call sites is known to be small.
	Unbounded
)

// String returns the canonical token ("LRU", "LFU", "TTL", "None",
// "Unbounded") or "Unknown(<n>)" for out-of-range values.
func (cs Strategy) String() string {
	switch cs {
	case LRU:
		return "LRU"
	case LFU:
		return "LFU"
	case TTL:
		return "TTL"
	case None:
		return "None"
	case Unbounded:
		return "Unbounded"
	default:
		return fmt.Sprintf("Unknown(%d)", int(cs))
	}
}

// Parse converts a token into a Strategy. Matching is case-insensitive and
// ignores surrounding whitespace. On failure Parse returns None and an error
// wrapping ErrUnknownStrategy.
//
//	s, err := Parse("lru") // LRU, nil
func Parse(s string) (Strategy, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return None, fmt.Errorf("%w: empty token", ErrUnknownStrategy)
	}

	switch strings.ToUpper(trimmed) {
	case "LRU":
		return LRU, nil
	case "LFU":
		return LFU, nil
	case "TTL":
		return TTL, nil
	case "NONE":
		return None, nil
	case "UNBOUNDED":
		return Unbounded, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// MustParse is like Parse but panics on invalid input. Use it for
// hard-coded tokens only.
func MustParse(s string) Strategy {
	strategy, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return strategy
}

// MarshalText implements encoding.TextMarshaler. Unknown values fail instead
// of serializing their diagnostic form.
func (cs Strategy) MarshalText() ([]byte, error) {
	switch cs {
	case LRU, LFU, TTL, None, Unbounded:
		return []byte(cs.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(cs))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler with the tokens accepted
// by Parse. On error the receiver is left unchanged.
func (cs *Strategy) UnmarshalText(text []byte) error {
	value, err := Parse(string(text))
	if err != nil {
		return err
	}
	*cs = value
	return nil
}
