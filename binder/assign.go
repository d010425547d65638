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

// widening lists the primitive types each primitive widens to.
var widening = map[string][]string{
	"byte":  {"short", "int", "long", "float", "double"},
	"short": {"int", "long", "float", "double"},
	"char":  {"int", "long", "float", "double"},
	"int":   {"long", "float", "double"},
	"long":  {"float", "double"},
	"float": {"double"},
}

func widens(from, to apis.TypeDescription) bool {
	for _, name := range widening[from.Name()] {
		if name == to.Name() {
			return true
		}
	}
	return false
}

// Assignable reports whether a value of type from can be supplied where to
// is expected, allowing primitive widening, boxing and unboxing. With
// runtime set, reference types may also be cast down.
func Assignable(from, to apis.TypeDescription, runtime bool) bool {
	if from == nil || to == nil {
		return false
	}
	if to.IsAssignableFrom(from) {
		return true
	}
	switch {
	case from.IsPrimitive() && to.IsPrimitive():
		return widens(from, to)
	case from.IsPrimitive():
		box, ok := descriptor.Box(from)
		return ok && (to.IsAssignableFrom(box) || runtime && box.IsAssignableFrom(to))
	case to.IsPrimitive():
		if p, ok := descriptor.Unbox(from); ok {
			return p.Equal(to) || widens(p, to)
		}
		if runtime {
			box, ok := descriptor.Box(to)
			return ok && from.IsAssignableFrom(box)
		}
		return false
	default:
		return runtime && from.IsAssignableFrom(to)
	}
}

// Narrower reports whether a is strictly more specific than b.
func Narrower(a, b apis.TypeDescription) bool {
	return !a.Equal(b) && Assignable(a, b, false) && !Assignable(b, a, false)
}

// zero returns the default value of t as a Go value.
func zero(t apis.TypeDescription) any {
	if !t.IsPrimitive() {
		return nil
	}
	switch t.Name() {
	case "boolean":
		return false
	case "byte":
		return int8(0)
	case "short":
		return int16(0)
	case "char":
		return uint16(0)
	case "int":
		return int32(0)
	case "long":
		return int64(0)
	case "float":
		return float32(0)
	case "double":
		return float64(0)
	default:
		return nil
	}
}
