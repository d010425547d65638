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
	"dirpx.dev/bindx/apis"
	"dirpx.dev/bindx/binder"
)

// NewExplicitnessStrategy creates an apis.Strategy that prefers the binding
// with more parameters bound through explicit markers.
func NewExplicitnessStrategy() apis.Strategy {
	return explicitnessStrategy{}
}

type explicitnessStrategy struct{}

// Ensure explicitnessStrategy implements apis.Strategy.
var _ apis.Strategy = (*explicitnessStrategy)(nil)

func (explicitnessStrategy) Name() string { return Explicitness }

func (explicitnessStrategy) Decide(_ apis.CallSite, left, right apis.Binding) apis.Decision {
	return compare(left.Explicit(), right.Explicit())
}

// NewDeclaringTypeStrategy creates an apis.Strategy that prefers candidates
// declared by a strictly more derived type.
func NewDeclaringTypeStrategy() apis.Strategy {
	return declaringTypeStrategy{}
}

type declaringTypeStrategy struct{}

// Ensure declaringTypeStrategy implements apis.Strategy.
var _ apis.Strategy = (*declaringTypeStrategy)(nil)

func (declaringTypeStrategy) Name() string { return DeclaringType }

func (declaringTypeStrategy) Decide(_ apis.CallSite, left, right apis.Binding) apis.Decision {
	ld, rd := left.Target.DeclaringType(), right.Target.DeclaringType()
	if ld == nil || rd == nil || ld.Equal(rd) {
		return apis.Undecided
	}
	switch {
	case rd.IsAssignableFrom(ld):
		return apis.Left
	case ld.IsAssignableFrom(rd):
		return apis.Right
	default:
		return apis.Undecided
	}
}

// NewPriorityStrategy creates an apis.Strategy that prefers the candidate with
// the higher BindingPriority. Unmarked candidates have priority 0.
func NewPriorityStrategy() apis.Strategy {
	return priorityStrategy{}
}

type priorityStrategy struct{}

// Ensure priorityStrategy implements apis.Strategy.
var _ apis.Strategy = (*priorityStrategy)(nil)

func (priorityStrategy) Name() string { return Priority }

func (priorityStrategy) Decide(_ apis.CallSite, left, right apis.Binding) apis.Decision {
	return compare(priority(left.Target), priority(right.Target))
}

func priority(m apis.MethodDescription) int {
	a, ok := m.DeclaredAnnotations().OfType(binder.BindingPriority)
	if !ok {
		return 0
	}
	n, _ := binder.IntValue(a)
	return n
}

// NewNameStrategy creates an apis.Strategy that prefers the candidate named
// like the intercepted method.
func NewNameStrategy() apis.Strategy {
	return nameStrategy{}
}

type nameStrategy struct{}

// Ensure nameStrategy implements apis.Strategy.
var _ apis.Strategy = (*nameStrategy)(nil)

func (nameStrategy) Name() string { return NameEquality }

func (nameStrategy) Decide(site apis.CallSite, left, right apis.Binding) apis.Decision {
	name := site.Method.Name()
	return compare(boolScore(left.Target.Name() == name), boolScore(right.Target.Name() == name))
}

// NewParameterLengthStrategy creates an apis.Strategy that prefers the
// candidate with more parameters.
func NewParameterLengthStrategy() apis.Strategy {
	return parameterLengthStrategy{}
}

type parameterLengthStrategy struct{}

// Ensure parameterLengthStrategy implements apis.Strategy.
var _ apis.Strategy = (*parameterLengthStrategy)(nil)

func (parameterLengthStrategy) Name() string { return ParameterLength }

func (parameterLengthStrategy) Decide(_ apis.CallSite, left, right apis.Binding) apis.Decision {
	return compare(len(left.Target.ParameterTypes()), len(right.Target.ParameterTypes()))
}

func boolScore(b bool) int {
	if b {
		return 1
	}
	return 0
}
