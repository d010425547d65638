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

package matcher

import (
	"encoding/binary"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/crypto/blake2b"

	"dirpx.dev/bindx/apis"
	uref "dirpx.dev/bindx/utils/reflect"
)

// ErrInvalidArgument is wrapped by the panic value of constructors that
// receive malformed input.
var ErrInvalidArgument = errors.New("bindx(matcher): invalid argument")

func invalid(format string, args ...any) {
	panic(fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...)))
}

// predicate is the single concrete matcher. desc is the structural rendering
// and is fixed at construction.
type predicate[T any] struct {
	desc string
	fn   func(T) bool
}

func (p predicate[T]) Matches(v T) bool { return p.fn(v) }
func (p predicate[T]) String() string   { return p.desc }

func newPredicate[T any](desc string, fn func(T) bool) apis.Matcher[T] {
	return predicate[T]{desc: desc, fn: fn}
}

func call(name string, args ...string) string {
	return name + "(" + strings.Join(args, ", ") + ")"
}

func mustMatcher[T any](name string, m apis.Matcher[T]) {
	if m == nil {
		invalid("%s: nil matcher", name)
	}
}

func mustType(name string, t apis.TypeDescription) {
	if uref.IsNil(t) {
		invalid("%s: nil type", name)
	}
}

// Is matches values equal to x. Is(nil) matches only nil, including typed
// nil pointers. Values with an Equal(any) bool method (all descriptors)
// decide equality themselves.
func Is[T any](x T) apis.Matcher[T] {
	return newPredicate(call("is", literal(x)), func(v T) bool {
		return uref.ValueEqual(x, v)
	})
}

// Not negates m. m is evaluated exactly once per call.
func Not[T any](m apis.Matcher[T]) apis.Matcher[T] {
	mustMatcher("not", m)
	return newPredicate(call("not", m.String()), func(v T) bool {
		return !m.Matches(v)
	})
}

// Any matches every value.
func Any[T any]() apis.Matcher[T] {
	return newPredicate("any()", func(T) bool { return true })
}

// None matches no value.
func None[T any]() apis.Matcher[T] {
	return newPredicate("none()", func(T) bool { return false })
}

// AnyOf matches values equal to one of xs, stopping at the first match.
func AnyOf[T any](xs ...T) apis.Matcher[T] {
	return newPredicate(call("anyOf", literals(xs)...), func(v T) bool {
		for _, x := range xs {
			if uref.ValueEqual(x, v) {
				return true
			}
		}
		return false
	})
}

// NoneOf matches values equal to none of xs.
func NoneOf[T any](xs ...T) apis.Matcher[T] {
	return newPredicate(call("noneOf", literals(xs)...), func(v T) bool {
		for _, x := range xs {
			if uref.ValueEqual(x, v) {
				return false
			}
		}
		return true
	})
}

// And matches when every operand matches. And() is Any.
func And[T any](ms ...apis.Matcher[T]) apis.Matcher[T] {
	if len(ms) == 0 {
		return Any[T]()
	}
	return junction("and", true, ms)
}

// Or matches when at least one operand matches. Or() is None.
func Or[T any](ms ...apis.Matcher[T]) apis.Matcher[T] {
	if len(ms) == 0 {
		return None[T]()
	}
	return junction("or", false, ms)
}

func junction[T any](op string, all bool, ms []apis.Matcher[T]) apis.Matcher[T] {
	ops := make([]apis.Matcher[T], len(ms))
	parts := make([]string, len(ms))
	for i, m := range ms {
		mustMatcher(op, m)
		ops[i] = m
		parts[i] = m.String()
	}
	desc := "(" + strings.Join(parts, " "+op+" ") + ")"
	return newPredicate(desc, func(v T) bool {
		for _, m := range ops {
			if m.Matches(v) != all {
				return !all
			}
		}
		return all
	})
}

// Equal reports structural equality of two matchers.
func Equal[T any](a, b apis.Matcher[T]) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.String() == b.String()
}

// Hash returns a stable hash consistent with Equal.
func Hash[T any](m apis.Matcher[T]) uint64 {
	if m == nil {
		return 0
	}
	sum := blake2b.Sum256([]byte(m.String()))
	return binary.BigEndian.Uint64(sum[:8])
}

func literals[T any](xs []T) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = literal(x)
	}
	return out
}

// literal renders a captured value so that equal literals render equally
// and distinct identities render differently. Plain values carry their Go
// type, so int(1) and int64(1) differ.
func literal(v any) string {
	if uref.IsNil(v) {
		return "null"
	}
	switch x := v.(type) {
	case apis.MethodDescription:
		return "method(" + apis.Signature(x) + x.Descriptor() + ")"
	case apis.FieldDescription:
		return "field(" + x.Name() + ":" + x.Descriptor() + ")"
	case apis.TypeDescription:
		return x.Name()
	case apis.AnnotationDescription:
		return fmt.Sprint(x)
	case apis.Loader:
		return fmt.Sprintf("%#v", x)
	case string:
		return fmt.Sprintf("%q", x)
	case fmt.Stringer:
		if isPointer(v) {
			return fmt.Sprintf("%T(%p)", v, v)
		}
		return fmt.Sprintf("%T(%s)", v, x.String())
	}
	if isPointer(v) {
		return fmt.Sprintf("%T(%p)", v, v)
	}
	return fmt.Sprintf("%T(%#v)", v, v)
}

func isPointer(v any) bool {
	return reflect.ValueOf(v).Kind() == reflect.Pointer
}
