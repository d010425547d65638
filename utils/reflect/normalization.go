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

package reflect

import (
	"errors"
	"reflect"

	"dirpx.dev/bindx/apis"
	"dirpx.dev/bindx/config"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectTypeNotNamed indicates that the provided type (after unwrapping containers)
	// does not contain a named type (e.g., anonymous struct, func, interface{}).
	ErrReflectTypeNotNamed = errors.New("reflect: type has no name")
	// ErrReflectBuiltin indicates a builtin/no-package type while builtins are excluded.
	ErrReflectBuiltin = errors.New("reflect: builtin type not allowed")
)

// Normalize unwraps containers according to cfg (MaxUnwrap/MapPreferElem) and
// returns the nearest named inner type, the key under which a handler Go type
// is registered.
//
// Unwrapping policy:
//   - ptr/slice/array/chan  -> Elem()
//   - map[K]V: the preferred side (Elem if MapPreferElem, otherwise Key) is
//     returned when named, then the other side; otherwise unwrapping continues
//     with Elem().
//   - default: if t.Name() != "", return t; otherwise ErrReflectTypeNotNamed.
//
// Builtin types (named, no package path) fail with ErrReflectBuiltin unless
// cfg.IncludeBuiltins is set. If MaxUnwrap <= 0, DefaultMaxUnwrap is used.
func Normalize(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	maxUnwrap := cfg.MaxUnwrap
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}

	for i := 0; t != nil && i < maxUnwrap; i++ {
		switch t.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Array, reflect.Chan:
			t = t.Elem()

		case reflect.Map:
			first, second := t.Elem(), t.Key()
			if !cfg.MapPreferElem {
				first, second = second, first
			}
			if first.Name() != "" {
				return named(first, cfg)
			}
			if second.Name() != "" {
				return named(second, cfg)
			}
			t = t.Elem()

		default:
			return named(t, cfg)
		}
	}

	// After reaching max depth, ensure we ended on a named type.
	if t == nil {
		return nil, ErrReflectTypeNotNamed
	}
	return named(t, cfg)
}

func named(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t.Name() == "" {
		return nil, ErrReflectTypeNotNamed
	}
	if t.PkgPath() == "" && !cfg.IncludeBuiltins {
		return nil, ErrReflectBuiltin
	}
	return t, nil
}
