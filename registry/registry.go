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

package registry

import (
	"errors"
	"reflect"
	"sync"

	"dirpx.dev/bindx/apis"
	"dirpx.dev/bindx/config"
	uref "dirpx.dev/bindx/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("bindx(registry): nil reflect.Type provided")
	// ErrNilDescription is returned when a nil descriptor is provided.
	ErrNilDescription = errors.New("bindx(registry): nil type description provided")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a type with a different descriptor.
	ErrConflictingRegistration = errors.New("bindx(registry): conflicting type registration")
)

// New constructs a Registry that normalizes Go types according to cfg.
func New(cfg apis.Config) apis.Registry {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	return &registry{cfg: cfg}
}

// registry is a Registry implementation backed by sync.Map.
type registry struct {
	// cfg is the configuration used for type normalization.
	cfg apis.Config
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps normalized reflect.Type to its handler descriptor.
	m sync.Map // map[reflect.Type]apis.TypeDescription
	// count tracks the number of registered entries.
	count int
}

// Register associates the nearest named type of t with d.
// It is idempotent for descriptors that are Equal to the registered one.
func (r *registry) Register(t reflect.Type, d apis.TypeDescription) error {
	if t == nil {
		return ErrNilType
	}
	if uref.IsNil(d) {
		return ErrNilDescription
	}

	b, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return err
	}

	// Lock-free idempotency / conflict check.
	if old, ok := r.m.Load(b); ok {
		return same(old.(apis.TypeDescription), d)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.m.Load(b); ok {
		return same(old.(apis.TypeDescription), d)
	}

	r.m.Store(b, d)
	r.count++
	return nil
}

func same(old, d apis.TypeDescription) error {
	if old.Equal(d) {
		return nil
	}
	return ErrConflictingRegistration
}

// Lookup returns the descriptor registered for the nearest named type of t.
func (r *registry) Lookup(t reflect.Type) (apis.TypeDescription, bool) {
	if t == nil {
		return nil, false
	}
	nt, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return nil, false
	}
	if v, ok := r.m.Load(nt); ok {
		return v.(apis.TypeDescription), true
	}
	return nil, false
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Type:        key.(reflect.Type),
			Description: value.(apis.TypeDescription),
		})
		return true
	})
	return entries
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered entries.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m = sync.Map{}
	r.count = 0
}

// Describe returns the descriptor of a handler value. Values implementing
// apis.Described answer themselves; others are looked up by their Go type.
func Describe(reg apis.Registry, v any) (apis.TypeDescription, bool) {
	if uref.IsNil(v) {
		return nil, false
	}
	if d, ok := v.(apis.Described); ok {
		if td := d.TypeDescription(); !uref.IsNil(td) {
			return td, true
		}
	}
	if reg == nil {
		return nil, false
	}
	return reg.Lookup(reflect.TypeOf(v))
}
