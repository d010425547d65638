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

// Package bindx decides which handler method an intercepted method of a
// generated type delegates to.
//
// A delegation names a target (static methods of a type, methods of an
// instance, methods of the value held in a field, or constructors). For a
// given call site bindx filters the target's methods with composable
// matchers, binds every survivor's parameters from the call site, and lets
// an ordered chain of tie-break strategies pick the single winner:
//
//	d, err := bindx.To(handlerType)
//	if err != nil {
//		return err
//	}
//	r, err := d.Resolve(apis.CallSite{Instrumented: proxy, Method: intercepted})
//
// # Design
//
// The core of bindx is a read-mostly global snapshot (state). The snapshot
// holds:
//
//   - Config: normalization rules for Go types, the resolver chain by name,
//     the resolution cache policy and the prefix of derived field names.
//
//   - Registry: a process-wide mapping from Go types to the handler
//     descriptions they stand for. ToInstance uses it to find the handler
//     type of a plain Go value.
//
//   - Resolver: the tie-break chain (specificity, explicitness and
//     declaring type by default) that reduces an ambiguity set to one
//     binding.
//
//   - Binder: the marker-driven parameter binder.
//
//   - Cache: memoized resolutions shared by every delegation created
//     through this package. Keys carry the delegation identity and the
//     call site, so one cache serves all of them.
//
//   - Builder: a pluggable factory for Registry, Resolver and Binder. It
//     may migrate state from the previous instances.
//
// Readers load the snapshot atomically and never lock. Writers take a short
// build mutex, assemble a new snapshot and publish it with one pointer swap,
// so concurrent callers always see a consistent set of layers.
//
// # Global API
//
//  1. Delegations and lookups:
//
//     To(handler, opts...)
//     ToInstance(instance, opts...)
//     ToInstanceField(handler, name, opts...)
//     ToConstructor(handler, opts...)
//     RegisterType(t, d)
//     Describe(v)
//
//     Options given by the caller are applied after the snapshot's layers
//     and may override them.
//
//  2. Mutation:
//
//     SetConfig(cfg) error
//     SetBuilder(b)
//     SetExt(ext)
//     SetRegistry(reg)
//     SetResolver(res)
//     SetAll(...) error
//
//     SetConfig and SetAll validate first and leave the snapshot untouched
//     on error. Every rebuild replaces the resolution cache.
//
//  3. Introspection: Config, Registry, Resolver, Binder, Cache, Builder and
//     ExtAs[T].
//
// # Pinning
//
// SetRegistry and SetResolver install a layer and pin it: rebuilds keep a
// pinned layer until UnpinRegistry or UnpinResolver is called. Pinning lets
// a process own one layer while the others still follow the Config.
//
// # Extension config
//
// The snapshot carries an opaque ext value owned by the embedding binary.
// bindx never interprets it; the active Builder receives it on every
// rebuild.
//
// # Packages
//
// apis holds the description model and the contracts. descriptor builds
// in-memory descriptions. matcher, binder, strategy and resolver implement
// filtering, binding and tie-breaking. delegation ties them into a
// delegation. registry, cache, config and builder are the supporting layers.
package bindx
