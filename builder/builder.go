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

package builder

import (
	"fmt"

	"dirpx.dev/bindx/apis"
	"dirpx.dev/bindx/binder"
	"dirpx.dev/bindx/config"
	"dirpx.dev/bindx/registry"
	"dirpx.dev/bindx/resolver"
	"dirpx.dev/bindx/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// Validate checks cfg and that every configured resolver names a built-in
// strategy.
func Validate(cfg apis.Config) error {
	if err := config.Validate(cfg); err != nil {
		return err
	}
	if _, err := strategy.ByNames(cfg.Resolvers...); err != nil {
		return fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}
	return nil
}

// BuildRegistry builds a new apis.Registry for cfg. Entries of prev are
// copied over; entries the new normalization rules reject are dropped.
func (b *builder) BuildRegistry(cfg apis.Config, prev apis.Registry, _ any) apis.Registry {
	nreg := registry.New(cfg)
	if prev != nil {
		for _, e := range prev.Entries() {
			_ = nreg.Register(e.Type, e.Description)
		}
	}
	return nreg
}

// BuildResolver builds the resolver chain named by cfg.Resolvers, or the
// default chain when none is named. It panics on unknown names; use
// Validate first.
func (b *builder) BuildResolver(cfg apis.Config, _ apis.Resolver, _ any) apis.Resolver {
	names := cfg.Resolvers
	if len(names) == 0 {
		names = strategy.Defaults()
	}
	strategies, err := strategy.ByNames(names...)
	if err != nil {
		panic(fmt.Errorf("bindx(builder): %w", err))
	}
	return resolver.New(strategies...)
}

// BuildBinder returns the marker-driven binder. It holds no state, so cfg
// does not affect it.
func (b *builder) BuildBinder(_ apis.Config, _ any) apis.Binder {
	return binder.New()
}
