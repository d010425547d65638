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
	"strconv"
	"strings"

	"dirpx.dev/bindx/apis"
	"dirpx.dev/bindx/descriptor"
	uref "dirpx.dev/bindx/utils/reflect"
)

// Returns matches methods whose return type equals t.
func Returns(t apis.TypeDescription) apis.Matcher[apis.MethodDescription] {
	mustType("returns", t)
	return newPredicate(call("returns", literal(t)), func(m apis.MethodDescription) bool {
		return m.ReturnType().Equal(t)
	})
}

// TakesArguments matches methods whose parameter types equal types exactly,
// in order. No widening is applied.
func TakesArguments(types ...apis.TypeDescription) apis.Matcher[apis.MethodDescription] {
	for _, t := range types {
		mustType("takesArguments", t)
	}
	return newPredicate(call("takesArguments", literals(types)...), func(m apis.MethodDescription) bool {
		return sameTypes(m.ParameterTypes(), types)
	})
}

// TakesArgumentCount matches methods of arity n.
func TakesArgumentCount(n int) apis.Matcher[apis.MethodDescription] {
	if n < 0 {
		invalid("takesArgumentCount(%d): negative arity", n)
	}
	return newPredicate(call("takesArgumentCount", strconv.Itoa(n)), func(m apis.MethodDescription) bool {
		return len(m.ParameterTypes()) == n
	})
}

// CanThrow matches methods that may raise an exception of type exc. Unchecked
// exceptions are always possible; checked ones need a declared exception
// that is a super or sub type of exc. It panics unless exc is throwable.
func CanThrow(exc apis.TypeDescription) apis.Matcher[apis.MethodDescription] {
	mustType("canThrow", exc)
	if !descriptor.Throwable.IsAssignableFrom(exc) {
		invalid("canThrow(%s): not a throwable type", exc.Name())
	}
	unchecked := descriptor.RuntimeException.IsAssignableFrom(exc) || descriptor.Error.IsAssignableFrom(exc)
	return newPredicate(call("canThrow", literal(exc)), func(m apis.MethodDescription) bool {
		if unchecked {
			return true
		}
		for _, d := range m.ExceptionTypes() {
			if d.IsAssignableFrom(exc) || exc.IsAssignableFrom(d) {
				return true
			}
		}
		return false
	})
}

func kind(name string, k apis.MethodKind) apis.Matcher[apis.MethodDescription] {
	return newPredicate(call(name), func(m apis.MethodDescription) bool {
		return m.Kind() == k
	})
}

// IsMethod, IsConstructor and IsTypeInitializer partition executable members.
func IsMethod() apis.Matcher[apis.MethodDescription] { return kind("isMethod", apis.KindMethod) }

// IsConstructor matches constructors.
func IsConstructor() apis.Matcher[apis.MethodDescription] {
	return kind("isConstructor", apis.KindConstructor)
}

// IsTypeInitializer matches the static type initializer.
func IsTypeInitializer() apis.Matcher[apis.MethodDescription] {
	return kind("isTypeInitializer", apis.KindTypeInitializer)
}

// IsDefaultMethod matches non-abstract, non-static methods of an interface.
func IsDefaultMethod() apis.Matcher[apis.MethodDescription] {
	return newPredicate(call("isDefaultMethod"), func(m apis.MethodDescription) bool {
		d := m.DeclaringType()
		mods := m.Modifiers()
		return m.Kind() == apis.KindMethod &&
			!mods.Has(apis.ModAbstract) && !mods.Has(apis.ModStatic) &&
			!uref.IsNil(d) && d.Modifiers().Has(apis.ModInterface)
	})
}

// IsVisibilityBridge matches bridge methods that exist only to widen the
// visibility of an inherited method: the declaring type has no non-bridge
// method of the same name and arity.
func IsVisibilityBridge() apis.Matcher[apis.MethodDescription] {
	return newPredicate(call("isVisibilityBridge"), func(m apis.MethodDescription) bool {
		if !m.Modifiers().Has(apis.ModBridge) {
			return false
		}
		d := m.DeclaringType()
		if uref.IsNil(d) {
			return true
		}
		for _, o := range d.DeclaredMethods() {
			if !o.Modifiers().Has(apis.ModBridge) &&
				o.Name() == m.Name() &&
				len(o.ParameterTypes()) == len(m.ParameterTypes()) {
				return false
			}
		}
		return true
	})
}

// IsOverridable matches methods a subclass may override.
func IsOverridable() apis.Matcher[apis.MethodDescription] {
	return newPredicate(call("isOverridable"), func(m apis.MethodDescription) bool {
		mods := m.Modifiers()
		if m.Kind() != apis.KindMethod || mods.Has(apis.ModStatic) || mods.Has(apis.ModPrivate) || mods.Has(apis.ModFinal) {
			return false
		}
		d := m.DeclaringType()
		return uref.IsNil(d) || !d.Modifiers().Has(apis.ModFinal)
	})
}

func isGetter(m apis.MethodDescription) bool {
	if m.Kind() != apis.KindMethod || len(m.ParameterTypes()) != 0 {
		return false
	}
	ret := m.ReturnType()
	if ret.Equal(descriptor.Void) {
		return false
	}
	name := m.SourceCodeName()
	switch {
	case strings.HasPrefix(name, "get"):
		return true
	case strings.HasPrefix(name, "is"):
		return ret.Equal(descriptor.Boolean) || ret.Equal(descriptor.BoxedBoolean)
	default:
		return false
	}
}

func isSetter(m apis.MethodDescription) bool {
	return m.Kind() == apis.KindMethod &&
		len(m.ParameterTypes()) == 1 &&
		m.ReturnType().Equal(descriptor.Void) &&
		strings.HasPrefix(m.SourceCodeName(), "set")
}

// IsGetter matches zero-argument, non-void methods named getX, or isX with a
// boolean return type.
func IsGetter() apis.Matcher[apis.MethodDescription] {
	return newPredicate(call("isGetter"), isGetter)
}

// IsGetterOf refines IsGetter to getters returning t.
func IsGetterOf(t apis.TypeDescription) apis.Matcher[apis.MethodDescription] {
	mustType("isGetterOf", t)
	return newPredicate(call("isGetterOf", literal(t)), func(m apis.MethodDescription) bool {
		return isGetter(m) && m.ReturnType().Equal(t)
	})
}

// IsSetter matches one-argument void methods named setX.
func IsSetter() apis.Matcher[apis.MethodDescription] {
	return newPredicate(call("isSetter"), isSetter)
}

// IsSetterOf refines IsSetter to setters taking t.
func IsSetterOf(t apis.TypeDescription) apis.Matcher[apis.MethodDescription] {
	mustType("isSetterOf", t)
	return newPredicate(call("isSetterOf", literal(t)), func(m apis.MethodDescription) bool {
		return isSetter(m) && m.ParameterTypes()[0].Equal(t)
	})
}

// shape matches methods by source name, exact parameter types and return
// type, wherever they are declared.
func shape(op, name string, ret apis.TypeDescription, params ...apis.TypeDescription) apis.Matcher[apis.MethodDescription] {
	return newPredicate(call(op), func(m apis.MethodDescription) bool {
		return m.Kind() == apis.KindMethod &&
			m.SourceCodeName() == name &&
			sameTypes(m.ParameterTypes(), params) &&
			(ret == nil || m.ReturnType().Equal(ret))
	})
}

// IsEquals matches equals(Object) boolean.
func IsEquals() apis.Matcher[apis.MethodDescription] {
	return shape("isEquals", "equals", descriptor.Boolean, descriptor.Object)
}

// IsHashCode matches hashCode() int.
func IsHashCode() apis.Matcher[apis.MethodDescription] {
	return shape("isHashCode", "hashCode", descriptor.Int)
}

// IsToString matches toString() String.
func IsToString() apis.Matcher[apis.MethodDescription] {
	return shape("isToString", "toString", descriptor.String)
}

// IsClone matches zero-argument clone methods with any return type.
func IsClone() apis.Matcher[apis.MethodDescription] {
	return shape("isClone", "clone", nil)
}

// IsFinalizer matches finalize() void, whoever declares it.
func IsFinalizer() apis.Matcher[apis.MethodDescription] {
	return shape("isFinalizer", "finalize", descriptor.Void)
}

// IsDefaultFinalizer matches only the finalizer declared by the root object
// type, not overrides of it.
func IsDefaultFinalizer() apis.Matcher[apis.MethodDescription] {
	fin := IsFinalizer()
	return newPredicate(call("isDefaultFinalizer"), func(m apis.MethodDescription) bool {
		d := m.DeclaringType()
		return fin.Matches(m) && !uref.IsNil(d) && d.Name() == descriptor.ObjectName
	})
}

// IsDefaultConstructor matches constructors without parameters.
func IsDefaultConstructor() apis.Matcher[apis.MethodDescription] {
	return newPredicate(call("isDefaultConstructor"), func(m apis.MethodDescription) bool {
		return m.Kind() == apis.KindConstructor && len(m.ParameterTypes()) == 0
	})
}

// IsSpecializationOf matches methods with the source name and arity of ref
// whose parameter and return types are each assignable to ref's.
func IsSpecializationOf(ref apis.MethodDescription) apis.Matcher[apis.MethodDescription] {
	if uref.IsNil(ref) {
		invalid("isSpecializationOf: nil method")
	}
	name, params, ret := ref.SourceCodeName(), ref.ParameterTypes(), ref.ReturnType()
	return newPredicate(call("isSpecializationOf", literal(ref)), func(m apis.MethodDescription) bool {
		mp := m.ParameterTypes()
		if m.SourceCodeName() != name || len(mp) != len(params) {
			return false
		}
		for i, p := range mp {
			if !p.IsAssignableTo(params[i]) {
				return false
			}
		}
		return m.ReturnType().IsAssignableTo(ret)
	})
}

func sameTypes(got, want []apis.TypeDescription) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if !got[i].Equal(want[i]) {
			return false
		}
	}
	return true
}
