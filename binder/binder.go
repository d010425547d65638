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

package binder

import (
	"errors"
	"fmt"

	"dirpx.dev/bindx/apis"
	"dirpx.dev/bindx/descriptor"
	"dirpx.dev/bindx/matcher"
)

// ErrUnbindable is wrapped by every binding failure.
var ErrUnbindable = errors.New("bindx(binder): candidate cannot be bound")

var (
	excluded    = matcher.IsAnnotatedWith[apis.MethodDescription](IgnoreForBinding)
	originTypes = matcher.AnyOf[apis.TypeDescription](descriptor.ReflectMethod, descriptor.ClassType, descriptor.String)
)

// Binder builds argument plans from parameter markers and positions.
//
// Binder is stateless and safe for concurrent use.
type Binder struct{}

// Ensure Binder implements apis.Binder.
var _ apis.Binder = (*Binder)(nil)

// New returns a Binder.
func New() *Binder { return &Binder{} }

// Bind returns the plan that supplies every parameter of candidate at site.
// Bind is pure: the same site and candidate always give the same result.
func (*Binder) Bind(site apis.CallSite, candidate apis.MethodDescription) (apis.Binding, error) {
	if site.Method == nil || site.Instrumented == nil {
		return apis.Binding{}, fmt.Errorf("%w: incomplete call site", ErrUnbindable)
	}
	if candidate == nil {
		return apis.Binding{}, fmt.Errorf("%w: nil candidate", ErrUnbindable)
	}
	fail := func(format string, args ...any) (apis.Binding, error) {
		return apis.Binding{}, fmt.Errorf("%w: %s: %s", ErrUnbindable, apis.Signature(candidate), fmt.Sprintf(format, args...))
	}
	if excluded.Matches(candidate) {
		return fail("excluded from binding")
	}
	runtimeAll := candidate.DeclaredAnnotations().IsAnnotationPresent(RuntimeType)
	if !returnCompatible(site.Method.ReturnType(), produced(candidate), runtimeAll) {
		return fail("return type %s not assignable to %s",
			produced(candidate).SourceCodeName(), site.Method.ReturnType().SourceCodeName())
	}
	reqs, err := Requirements(candidate)
	if err != nil {
		return fail("%v", err)
	}

	args := site.Method.ParameterTypes()
	params := candidate.ParameterTypes()
	static := site.Method.Modifiers().Has(apis.ModStatic)
	used := make(map[int]bool, len(args))
	plan := make(apis.ArgumentPlan, len(params))

	for j, req := range reqs {
		param := params[j]
		switch req.Kind {
		case RequirePositional, RequireArgument:
			i := req.Index
			if i >= len(args) {
				return fail("parameter %d: call site has no argument %d", j, i)
			}
			if used[i] {
				return fail("parameter %d: argument %d already bound", j, i)
			}
			if !Assignable(args[i], param, req.RuntimeType) {
				return fail("parameter %d: %s not assignable to %s", j, args[i].SourceCodeName(), param.SourceCodeName())
			}
			used[i] = true
			plan[j] = apis.ArgumentSource{Kind: apis.SourceArgument, Index: i, Explicit: req.Kind == RequireArgument}

		case RequireThis:
			if static {
				return fail("parameter %d: static call site has no receiver", j)
			}
			if !Assignable(site.Instrumented, param, req.RuntimeType) {
				return fail("parameter %d: receiver %s not assignable to %s", j, site.Instrumented.SourceCodeName(), param.SourceCodeName())
			}
			plan[j] = apis.ArgumentSource{Kind: apis.SourceThis, Explicit: true}

		case RequireOrigin:
			if !originTypes.Matches(param) {
				return fail("parameter %d: origin cannot be supplied as %s", j, param.SourceCodeName())
			}
			plan[j] = apis.ArgumentSource{Kind: apis.SourceOrigin, Explicit: true}

		case RequireSuperCall:
			mods := site.Method.Modifiers()
			if static || mods.Has(apis.ModAbstract) || site.Method.Kind() != apis.KindMethod {
				return fail("parameter %d: no super method to call", j)
			}
			if !param.IsAssignableFrom(descriptor.Callable) && !param.IsAssignableFrom(descriptor.Runnable) {
				return fail("parameter %d: super call cannot be supplied as %s", j, param.SourceCodeName())
			}
			plan[j] = apis.ArgumentSource{Kind: apis.SourceSuperCall, Explicit: true}

		case RequireAllArguments:
			if !param.IsArray() {
				return fail("parameter %d: all arguments need an array parameter", j)
			}
			c := param.ComponentType()
			for i, a := range args {
				if !Assignable(a, c, req.RuntimeType) {
					return fail("parameter %d: argument %d of type %s not assignable to %s", j, i, a.SourceCodeName(), c.SourceCodeName())
				}
			}
			plan[j] = apis.ArgumentSource{Kind: apis.SourceAllArguments, Explicit: true}

		case RequireEmpty:
			plan[j] = apis.ArgumentSource{Kind: apis.SourceConstant, Value: zero(param), Explicit: true}

		default:
			return fail("parameter %d: unsupported requirement %s", j, req.Kind)
		}
	}
	return apis.Binding{Target: candidate, Plan: plan}, nil
}

// produced is the type of the value a candidate yields: the declaring type
// for constructors, the return type otherwise.
func produced(candidate apis.MethodDescription) apis.TypeDescription {
	if candidate.Kind() == apis.KindConstructor && candidate.DeclaringType() != nil {
		return candidate.DeclaringType()
	}
	return candidate.ReturnType()
}

func returnCompatible(want, got apis.TypeDescription, runtime bool) bool {
	switch {
	case want.Equal(descriptor.Void):
		return true
	case got.Equal(descriptor.Void):
		return false
	default:
		return Assignable(got, want, runtime)
	}
}
