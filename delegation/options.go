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

package delegation

import (
	"log/slog"

	"dirpx.dev/bindx/apis"
	"dirpx.dev/bindx/cache"
	"dirpx.dev/bindx/config"
)

// Option configures a Delegation under construction.
type Option func(*options)

type options struct {
	cfg       apis.Config
	fieldName string
	handler   apis.TypeDescription
	filter    apis.Matcher[apis.MethodDescription]
	binder    apis.Binder
	resolver  apis.Resolver
	cache     cache.Cache[string, apis.Binding]
	logger    *slog.Logger
	registry  apis.Registry
}

func newOptions(opts []Option) options {
	o := options{cfg: config.DefaultConfig()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithConfig supplies the configuration used for defaults: the derived field
// prefix, the resolver chain and the resolution cache.
func WithConfig(cfg apis.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithFieldName names the static field that holds a ToInstance handler.
func WithFieldName(name string) Option {
	return func(o *options) { o.fieldName = name }
}

// WithHandlerType describes a ToInstance handler explicitly instead of
// looking it up.
func WithHandlerType(t apis.TypeDescription) Option {
	return func(o *options) { o.handler = t }
}

// WithFilter restricts candidates to the members matching m.
func WithFilter(m apis.Matcher[apis.MethodDescription]) Option {
	return func(o *options) { o.filter = m }
}

// WithBinder replaces the default binder.
func WithBinder(b apis.Binder) Option {
	return func(o *options) { o.binder = b }
}

// WithResolver replaces the resolver built from the configured strategy names.
func WithResolver(r apis.Resolver) Option {
	return func(o *options) { o.resolver = r }
}

// WithCache shares a resolution cache. Keys include the delegation's
// identity, so one cache may serve many delegations. Binders are told apart
// by Go type and resolvers by Go type and strategy names; components whose
// behavior depends on their state implement apis.Identifier.
func WithCache(c cache.Cache[string, apis.Binding]) Option {
	return func(o *options) { o.cache = c }
}

// WithLogger sets the logger for unbindable candidates and ambiguities.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRegistry sets the registry used to describe ToInstance handlers.
func WithRegistry(r apis.Registry) Option {
	return func(o *options) { o.registry = r }
}
