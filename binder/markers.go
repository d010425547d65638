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
	"dirpx.dev/bindx/apis"
	"dirpx.dev/bindx/descriptor"
)

// Marker annotation types recognized on candidates and their parameters.
var (
	// IgnoreForBinding excludes a candidate from delegation.
	IgnoreForBinding = descriptor.AnnotationType("dirpx.bindx.IgnoreForBinding")
	// BindingPriority(value=n) ranks candidates for the priority strategy.
	BindingPriority = descriptor.AnnotationType("dirpx.bindx.BindingPriority")
	// RuntimeType permits reference casts on a parameter, or on every
	// parameter and the return value when placed on the candidate.
	RuntimeType = descriptor.AnnotationType("dirpx.bindx.RuntimeType")

	// Argument(value=i) binds call-site argument i.
	Argument = descriptor.AnnotationType("dirpx.bindx.Argument")
	// This binds the call-site receiver.
	This = descriptor.AnnotationType("dirpx.bindx.This")
	// Origin binds a description of the intercepted method: a method, class
	// or string parameter.
	Origin = descriptor.AnnotationType("dirpx.bindx.Origin")
	// SuperCall binds a callable or runnable that invokes the super method.
	SuperCall = descriptor.AnnotationType("dirpx.bindx.SuperCall")
	// AllArguments binds every call-site argument as an array.
	AllArguments = descriptor.AnnotationType("dirpx.bindx.AllArguments")
	// Empty binds the zero value of the parameter type.
	Empty = descriptor.AnnotationType("dirpx.bindx.Empty")
)

// ArgumentAt returns an Argument marker for call-site argument i.
func ArgumentAt(i int) apis.AnnotationDescription {
	return descriptor.NewAnnotation(Argument, map[string]any{"value": i})
}

// Priority returns a BindingPriority marker of rank n.
func Priority(n int) apis.AnnotationDescription {
	return descriptor.NewAnnotation(BindingPriority, map[string]any{"value": n})
}

// IntValue reads the integer "value" property of an annotation.
func IntValue(a apis.AnnotationDescription) (int, bool) {
	v, ok := a.Value("value")
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
}
