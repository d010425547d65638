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

package delegation_test

import (
	"fmt"
	"slices"
	"strings"

	"dirpx.dev/bindx/apis"
	"dirpx.dev/bindx/binder"
	"dirpx.dev/bindx/descriptor"
	"dirpx.dev/bindx/resolver"
)

const (
	pub    = apis.ModPublic
	static = apis.ModStatic
)

var (
	x = descriptor.Class("app.X", pub)
	y = descriptor.Class("app.Y", pub)
	z = descriptor.Class("app.Z", pub).Extends(y)

	service = descriptor.Class("app.Service", pub)
	proxy   = descriptor.Class("app.Service$Proxy", pub|apis.ModSynthetic).Extends(service)
)

// foo and bar are plain Go handler values.
type foo struct{ tag string }
type bar struct{}

// described carries its own descriptor.
type described struct{}

func (described) TypeDescription() apis.TypeDescription { return fooType }

var (
	fooType = descriptor.Class("app.Foo", pub).WithMethod(
		descriptor.NewMethod("handle", pub, nil, y),
	)
	barType = descriptor.Class("app.Bar", pub).WithMethod(
		descriptor.NewMethod("handle", pub, nil, y),
	)
)

// site returns a void call site on proxy taking params.
func site(mods apis.Modifiers, params ...apis.TypeDescription) apis.CallSite {
	m := descriptor.NewMethod("call", pub|mods, nil, params...)
	descriptor.Class("app.Service", pub).WithMethod(m)
	return apis.CallSite{Instrumented: proxy, Method: m}
}

func ignored(m *descriptor.Method) *descriptor.Method {
	return m.Annotate(descriptor.Marker(binder.IgnoreForBinding))
}

// setter records SetStatic calls.
type setter struct {
	values map[string]any
	forced bool
}

func (s *setter) SetStatic(f apis.FieldDescription, value any, force bool) error {
	if s.values == nil {
		s.values = map[string]any{}
	}
	s.values[f.Name()] = value
	s.forced = force
	return nil
}

// onlyNamed binds only candidates with the given name.
type onlyNamed struct{ name string }

func (o onlyNamed) Identity() string { return "onlyNamed(" + o.name + ")" }

func (o onlyNamed) Bind(site apis.CallSite, candidate apis.MethodDescription) (apis.Binding, error) {
	if candidate.Name() != o.name {
		return apis.Binding{}, fmt.Errorf("%w: not %s", binder.ErrUnbindable, o.name)
	}
	return binder.New().Bind(site, candidate)
}

// pick resolves to the first or last binding in signature order.
type pick struct{ last bool }

func (p *pick) Resolve(_ apis.CallSite, bindings []apis.Binding) (apis.Binding, error) {
	if len(bindings) == 0 {
		return apis.Binding{}, resolver.ErrEmptyAmbiguitySet
	}
	sorted := slices.SortedFunc(slices.Values(bindings), func(l, r apis.Binding) int {
		return strings.Compare(apis.Signature(l.Target), apis.Signature(r.Target))
	})
	if p.last {
		return sorted[len(sorted)-1], nil
	}
	return sorted[0], nil
}

func (p *pick) Strategies() []apis.Strategy { return nil }
