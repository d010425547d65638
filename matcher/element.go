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
	"dirpx.dev/bindx/apis"
	"dirpx.dev/bindx/descriptor"
	uref "dirpx.dev/bindx/utils/reflect"
)

// Member is the capability needed to decide visibility.
type Member interface {
	apis.ModifierAware
	apis.DeclaredByType
}

// IsDeclaredBy matches elements whose declaring type equals t.
func IsDeclaredBy[T apis.DeclaredByType](t apis.TypeDescription) apis.Matcher[T] {
	mustType("isDeclaredBy", t)
	return newPredicate(call("isDeclaredBy", literal(t)), func(v T) bool {
		d := v.DeclaringType()
		return !uref.IsNil(d) && d.Equal(t)
	})
}

// DeclaredBy matches elements whose declaring type satisfies m. Top-level
// types never match.
func DeclaredBy[T apis.DeclaredByType](m apis.Matcher[apis.TypeDescription]) apis.Matcher[T] {
	mustMatcher("declaredBy", m)
	return newPredicate(call("declaredBy", m.String()), func(v T) bool {
		d := v.DeclaringType()
		return !uref.IsNil(d) && m.Matches(d)
	})
}

// IsVisibleTo matches elements that code in type t may access. Members are
// visible when their declaring type is visible and their own modifiers
// permit access; types are checked through their enclosing types.
func IsVisibleTo[T Member](t apis.TypeDescription) apis.Matcher[T] {
	mustType("isVisibleTo", t)
	return newPredicate(call("isVisibleTo", literal(t)), func(v T) bool {
		if td, ok := any(v).(apis.TypeDescription); ok {
			return typeVisible(td, t)
		}
		d := v.DeclaringType()
		if uref.IsNil(d) {
			return v.Modifiers().Has(apis.ModPublic)
		}
		return typeVisible(d, t) && accessible(v.Modifiers(), d, t)
	})
}

func typeVisible(t, to apis.TypeDescription) bool {
	switch {
	case t.IsPrimitive():
		return true
	case t.IsArray():
		return typeVisible(t.ComponentType(), to)
	}
	outer := t.DeclaringType()
	if uref.IsNil(outer) {
		return accessible(t.Modifiers(), t, to)
	}
	return typeVisible(outer, to) && accessible(t.Modifiers(), outer, to)
}

// accessible applies member access rules for a member of host.
func accessible(mods apis.Modifiers, host, to apis.TypeDescription) bool {
	switch {
	case mods.Has(apis.ModPublic):
		return true
	case mods.Has(apis.ModPrivate):
		return outermost(host).Equal(outermost(to))
	case mods.Has(apis.ModProtected):
		return host.PackageName() == to.PackageName() || host.IsAssignableFrom(to)
	default:
		return host.PackageName() == to.PackageName()
	}
}

func outermost(t apis.TypeDescription) apis.TypeDescription {
	for {
		d := t.DeclaringType()
		if uref.IsNil(d) {
			return t
		}
		t = d
	}
}

// IsAnnotatedWith matches elements declaring an annotation of type annType.
func IsAnnotatedWith[T apis.Annotated](annType apis.TypeDescription) apis.Matcher[T] {
	mustType("isAnnotatedWith", annType)
	return newPredicate(call("isAnnotatedWith", literal(annType)), func(v T) bool {
		return v.DeclaredAnnotations().IsAnnotationPresent(annType)
	})
}

// InheritsAnnotation matches types that declare annType directly or, when
// annType is itself marked inherited, inherit it from a super class.
// Interfaces do not pass annotations on.
func InheritsAnnotation(annType apis.TypeDescription) apis.Matcher[apis.TypeDescription] {
	mustType("inheritsAnnotation", annType)
	inheritable := annType.DeclaredAnnotations().IsAnnotationPresent(descriptor.Inherited)
	return newPredicate(call("inheritsAnnotation", literal(annType)), func(v apis.TypeDescription) bool {
		for t := v; !uref.IsNil(t); t = t.SuperType() {
			if t.DeclaredAnnotations().IsAnnotationPresent(annType) {
				return true
			}
			if !inheritable {
				return false
			}
		}
		return false
	})
}

// IsSubTypeOf matches types assignable to t, including t itself.
func IsSubTypeOf(t apis.TypeDescription) apis.Matcher[apis.TypeDescription] {
	mustType("isSubTypeOf", t)
	return newPredicate(call("isSubTypeOf", literal(t)), func(v apis.TypeDescription) bool {
		return !uref.IsNil(v) && v.IsAssignableTo(t)
	})
}

// IsSuperTypeOf matches types assignable from t, including t itself.
func IsSuperTypeOf(t apis.TypeDescription) apis.Matcher[apis.TypeDescription] {
	mustType("isSuperTypeOf", t)
	return newPredicate(call("isSuperTypeOf", literal(t)), func(v apis.TypeDescription) bool {
		return !uref.IsNil(v) && v.IsAssignableFrom(t)
	})
}

// DeclaresField matches types declaring at least one field matching m.
// Inherited fields are not considered.
func DeclaresField(m apis.Matcher[apis.FieldDescription]) apis.Matcher[apis.TypeDescription] {
	mustMatcher("declaresField", m)
	return newPredicate(call("declaresField", m.String()), func(v apis.TypeDescription) bool {
		for _, f := range v.DeclaredFields() {
			if m.Matches(f) {
				return true
			}
		}
		return false
	})
}

// DeclaresMethod matches types declaring at least one method, constructor or
// type initializer matching m.
func DeclaresMethod(m apis.Matcher[apis.MethodDescription]) apis.Matcher[apis.TypeDescription] {
	mustMatcher("declaresMethod", m)
	return newPredicate(call("declaresMethod", m.String()), func(v apis.TypeDescription) bool {
		for _, md := range v.DeclaredMethods() {
			if m.Matches(md) {
				return true
			}
		}
		return false
	})
}
