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

package descriptor

import (
	"strings"

	"dirpx.dev/bindx/apis"
)

// Type is an in-memory apis.TypeDescription.
//
// A Type is assembled with the With*/Extends/Implements methods and must not
// be modified once it is shared; all read methods are then safe for
// concurrent use.
type Type struct {
	name        string
	descriptor  string
	modifiers   apis.Modifiers
	super       apis.TypeDescription
	interfaces  []apis.TypeDescription
	annotations apis.AnnotationList
	declaring   apis.TypeDescription
	fields      []apis.FieldDescription
	methods     []apis.MethodDescription
	primitive   bool
	component   apis.TypeDescription
}

// Ensure Type implements apis.TypeDescription.
var _ apis.TypeDescription = (*Type)(nil)

// Class returns a class type extending Object.
func Class(name string, mods apis.Modifiers) *Type {
	return &Type{
		name:       name,
		descriptor: "L" + strings.ReplaceAll(name, ".", "/") + ";",
		modifiers:  mods,
		super:      Object,
	}
}

// Interface returns an interface type. The interface and abstract bits are
// always set.
func Interface(name string, mods apis.Modifiers) *Type {
	t := Class(name, mods|apis.ModInterface|apis.ModAbstract)
	t.super = nil
	return t
}

// AnnotationType returns a public annotation interface type.
func AnnotationType(name string) *Type {
	t := Interface(name, apis.ModPublic|apis.ModAnnotation)
	t.interfaces = []apis.TypeDescription{AnnotationInterface}
	return t
}

// ArrayOf returns the array type with the given component type.
func ArrayOf(component apis.TypeDescription) *Type {
	d := "[" + component.Descriptor()
	name := d
	if !component.IsPrimitive() {
		name = strings.ReplaceAll(d, "/", ".")
	}
	return &Type{
		name:       name,
		descriptor: d,
		modifiers:  apis.ModPublic | apis.ModFinal | apis.ModAbstract,
		super:      Object,
		interfaces: []apis.TypeDescription{Cloneable, Serializable},
		component:  component,
	}
}

func primitive(name, descriptor string) *Type {
	return &Type{
		name:       name,
		descriptor: descriptor,
		modifiers:  apis.ModPublic | apis.ModFinal | apis.ModAbstract,
		primitive:  true,
	}
}

// Extends sets the super class.
func (t *Type) Extends(super apis.TypeDescription) *Type {
	t.super = super
	return t
}

// Implements appends directly implemented interfaces.
func (t *Type) Implements(ifaces ...apis.TypeDescription) *Type {
	t.interfaces = append(t.interfaces, ifaces...)
	return t
}

// Annotate appends declared annotations. A later annotation of an already
// present type replaces the earlier one.
func (t *Type) Annotate(anns ...apis.AnnotationDescription) *Type {
	t.annotations = annotate(t.annotations, anns)
	return t
}

// DeclaredIn marks t as nested in outer.
func (t *Type) DeclaredIn(outer apis.TypeDescription) *Type {
	t.declaring = outer
	return t
}

// WithField declares a field on t.
func (t *Type) WithField(f *Field) *Type {
	f.declaring = t
	t.fields = append(t.fields, f)
	return t
}

// WithMethod declares methods, constructors or the type initializer on t.
func (t *Type) WithMethod(ms ...*Method) *Type {
	for _, m := range ms {
		m.declaring = t
		t.methods = append(t.methods, m)
	}
	return t
}

// Name returns the binary name.
func (t *Type) Name() string { return t.name }

// SourceCodeName returns the dotted source name; arrays render as "T[]".
func (t *Type) SourceCodeName() string {
	if t.component != nil {
		return t.component.SourceCodeName() + "[]"
	}
	return strings.ReplaceAll(t.name, "$", ".")
}

func (t *Type) Descriptor() string                       { return t.descriptor }
func (t *Type) Modifiers() apis.Modifiers                { return t.modifiers }
func (t *Type) DeclaredAnnotations() apis.AnnotationList { return t.annotations }
func (t *Type) DeclaringType() apis.TypeDescription      { return t.declaring }
func (t *Type) SuperType() apis.TypeDescription          { return t.super }
func (t *Type) Interfaces() []apis.TypeDescription       { return t.interfaces }
func (t *Type) IsPrimitive() bool                        { return t.primitive }
func (t *Type) IsArray() bool                            { return t.component != nil }
func (t *Type) ComponentType() apis.TypeDescription      { return t.component }
func (t *Type) DeclaredFields() []apis.FieldDescription  { return t.fields }
func (t *Type) DeclaredMethods() []apis.MethodDescription {
	return t.methods
}

// PackageName returns everything before the last dot of the binary name.
func (t *Type) PackageName() string {
	if t.primitive || t.component != nil {
		return ""
	}
	if i := strings.LastIndexByte(t.name, '.'); i >= 0 {
		return t.name[:i]
	}
	return ""
}

// Equal reports whether other describes a type with the same binary name.
func (t *Type) Equal(other any) bool {
	o, ok := other.(apis.TypeDescription)
	if !ok || o == nil || t == nil {
		return false
	}
	return t.name == o.Name()
}

// String returns the source name.
func (t *Type) String() string { return t.SourceCodeName() }

// IsAssignableFrom applies reference assignability: identity, the super class
// chain, implemented interfaces and array covariance. Primitives are only
// assignable from themselves.
func (t *Type) IsAssignableFrom(other apis.TypeDescription) bool {
	if other == nil {
		return false
	}
	if t.Equal(other) {
		return true
	}
	if t.primitive || other.IsPrimitive() {
		return false
	}
	if other.IsArray() {
		if t.component != nil {
			tc, oc := t.component, other.ComponentType()
			if tc.IsPrimitive() || oc.IsPrimitive() {
				return tc.Equal(oc)
			}
			return tc.IsAssignableFrom(oc)
		}
		return t.name == ObjectName || t.Equal(Cloneable) || t.Equal(Serializable)
	}
	if t.component != nil {
		return false
	}
	if t.name == ObjectName {
		return true
	}
	return inherits(other, t, map[string]bool{})
}

// IsAssignableTo reports whether other is assignable from t.
func (t *Type) IsAssignableTo(other apis.TypeDescription) bool {
	if other == nil {
		return false
	}
	return other.IsAssignableFrom(t)
}

func inherits(from apis.TypeDescription, target *Type, seen map[string]bool) bool {
	if from == nil || seen[from.Name()] {
		return false
	}
	seen[from.Name()] = true
	if target.Equal(from) {
		return true
	}
	if inherits(from.SuperType(), target, seen) {
		return true
	}
	for _, i := range from.Interfaces() {
		if inherits(i, target, seen) {
			return true
		}
	}
	return false
}

func annotate(list apis.AnnotationList, anns []apis.AnnotationDescription) apis.AnnotationList {
	for _, a := range anns {
		replaced := false
		for i, old := range list {
			if old.AnnotationType().Equal(a.AnnotationType()) {
				list[i] = a
				replaced = true
				break
			}
		}
		if !replaced {
			list = append(list, a)
		}
	}
	return list
}
