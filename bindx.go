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

package bindx

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/bindx/apis"
	"dirpx.dev/bindx/builder"
	"dirpx.dev/bindx/cache"
	"dirpx.dev/bindx/config"
	"dirpx.dev/bindx/delegation"
	"dirpx.dev/bindx/registry"
)

// init initializes the global bindx state with the default configuration.
func init() {
	b := builder.New()
	s := &state{cfg: config.DefaultConfig(), bld: b}
	build(s, nil, nil)
	st.Store(s)
}

var (
	// ErrNilRegistry is panicked when a builder returns a nil registry.
	ErrNilRegistry = errors.New("bindx: builder returned nil registry")
	// ErrNilResolver is panicked when a builder returns a nil resolver.
	ErrNilResolver = errors.New("bindx: builder returned nil resolver")
	// ErrNilBinder is panicked when a builder returns a nil binder.
	ErrNilBinder = errors.New("bindx: builder returned nil binder")
)

// To creates a delegation to the static methods of handler using the global
// configuration, resolver, binder and resolution cache. opts are applied
// after the global ones and may override them.
func To(handler apis.TypeDescription, opts ...delegation.Option) (*delegation.Delegation, error) {
	return delegation.ToType(handler, st.Load().options(opts)...)
}

// ToInstance creates a delegation to instance. Its handler type is taken from
// the global registry unless one is given with delegation.WithHandlerType.
func ToInstance(instance any, opts ...delegation.Option) (*delegation.Delegation, error) {
	return delegation.ToInstance(instance, st.Load().options(opts)...)
}

// ToInstanceField creates a delegation to the value of the named field.
func ToInstanceField(handler apis.TypeDescription, fieldName string, opts ...delegation.Option) (*delegation.Delegation, error) {
	return delegation.ToInstanceField(handler, fieldName, st.Load().options(opts)...)
}

// ToConstructor creates a delegation to the constructors of handler.
func ToConstructor(handler apis.TypeDescription, opts ...delegation.Option) (*delegation.Delegation, error) {
	return delegation.ToConstructor(handler, st.Load().options(opts)...)
}

// RegisterType associates the Go type t with the handler description d in the
// global registry.
func RegisterType(t reflect.Type, d apis.TypeDescription) error {
	return st.Load().reg.Register(t, d)
}

// Describe returns the handler description of v, using apis.Described when v
// implements it and the global registry otherwise.
func Describe(v any) (apis.TypeDescription, bool) {
	return registry.Describe(st.Load().reg, v)
}

// SetAll atomically replaces the configuration, extension, registry, resolver
// and builder. Nil arguments keep the current builder and configuration; a
// nil registry or resolver is rebuilt and left unpinned, a non-nil one is
// pinned.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, res apis.Resolver, bld apis.Builder) error {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	if cfg != nil {
		if err := builder.Validate(*cfg); err != nil {
			return err
		}
		next.cfg = *cfg
	}
	if bld != nil {
		next.bld = bld
	}
	next.ext = ext
	next.reg, next.preg = reg, reg != nil
	next.res, next.pres = res, res != nil
	build(&next, old.reg, old.res)
	st.Store(&next)
	return nil
}

// Config returns the global bindx configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig validates cfg and rebuilds the non-pinned layers, the binder and
// the resolution cache from it.
func SetConfig(cfg apis.Config) error {
	if err := builder.Validate(cfg); err != nil {
		return err
	}
	rebuild(func(s *state) { s.cfg = cfg })
	return nil
}

// Registry returns the global bindx registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry installs reg and pins it. The resolver is rebuilt unless it is
// pinned. A nil reg is ignored.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}
	rebuild(func(s *state) { s.reg, s.preg = reg, true })
}

// Resolver returns the global bindx resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver installs res and pins it. The resolution cache is replaced;
// nothing else is rebuilt. A nil res is ignored.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}
	swap(func(s *state) { s.res, s.pres, s.cache = res, true, newCache(s.cfg) })
}

// Binder returns the global bindx binder.
func Binder() apis.Binder {
	return st.Load().bnd
}

// Cache returns the resolution cache shared by delegations created through
// this package.
func Cache() cache.Cache[string, apis.Binding] {
	return st.Load().cache
}

// Builder returns the global bindx builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder installs b and rebuilds the non-pinned layers with it. A nil b
// is ignored.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	rebuild(func(s *state) { s.bld = b })
}

// SetExt replaces the extension value and rebuilds non-pinned layers via the builder.
func SetExt[T any](ext T) {
	rebuild(func(s *state) { s.ext = ext })
}

// ExtAs returns the global extension value as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsRegistryPinned reports whether rebuilds keep the current registry.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry makes rebuilds keep the current registry.
func PinRegistry() {
	swap(func(s *state) { s.preg = true })
}

// UnpinRegistry lets the next rebuild replace the registry.
func UnpinRegistry() {
	swap(func(s *state) { s.preg = false })
}

// IsResolverPinned reports whether rebuilds keep the current resolver.
func IsResolverPinned() bool {
	return st.Load().pres
}

// PinResolver makes rebuilds keep the current resolver.
func PinResolver() {
	swap(func(s *state) { s.pres = true })
}

// UnpinResolver lets the next rebuild replace the resolver.
func UnpinResolver() {
	swap(func(s *state) { s.pres = false })
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global bindx state.
var st atomic.Pointer[state]

// state is the global bindx state snapshot.
// Immutable once published via st.Store. Writers copy it, change the copy
// and swap it in.
type state struct {
	cfg   apis.Config
	ext   any
	reg   apis.Registry
	res   apis.Resolver
	bnd   apis.Binder
	cache cache.Cache[string, apis.Binding]
	bld   apis.Builder
	// preg and pres mark the registry and resolver as pinned.
	preg bool
	pres bool
}

// options prepends the snapshot's layers to opts.
func (s *state) options(opts []delegation.Option) []delegation.Option {
	base := []delegation.Option{
		delegation.WithConfig(s.cfg),
		delegation.WithRegistry(s.reg),
		delegation.WithResolver(s.res),
		delegation.WithBinder(s.bnd),
		delegation.WithCache(s.cache),
	}
	return append(base, opts...)
}

// swap publishes a copy of the current state changed by mutate, without
// rebuilding anything.
func swap(mutate func(*state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	mutate(&next)
	st.Store(&next)
}

// rebuild publishes a copy of the current state changed by mutate, with the
// non-pinned layers rebuilt.
func rebuild(mutate func(*state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	mutate(&next)
	build(&next, old.reg, old.res)
	st.Store(&next)
}

// build fills the non-pinned layers of s from its builder. prevReg and prevRes
// are handed to the builder for migration. The resolution cache is always
// replaced since any layer may change the outcome of a resolution.
func build(s *state, prevReg apis.Registry, prevRes apis.Resolver) {
	if !s.preg {
		s.reg = s.bld.BuildRegistry(s.cfg, prevReg, s.ext)
	}
	if !s.pres {
		s.res = s.bld.BuildResolver(s.cfg, prevRes, s.ext)
	}
	s.bnd = s.bld.BuildBinder(s.cfg, s.ext)

	// Ensure non-nil layers.
	switch {
	case s.reg == nil:
		panic(ErrNilRegistry)
	case s.res == nil:
		panic(ErrNilResolver)
	case s.bnd == nil:
		panic(ErrNilBinder)
	}
	s.cache = newCache(s.cfg)
}

// newCache builds the resolution cache for a validated cfg.
func newCache(cfg apis.Config) cache.Cache[string, apis.Binding] {
	c, err := cache.New[string, apis.Binding](cfg.CacheStrategy, cfg.CacheSize, cfg.CacheTTL)
	if err != nil {
		panic(fmt.Errorf("bindx: %w", err))
	}
	return c
}
