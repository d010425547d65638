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

const (
	// ConstructorName is the storage name of constructors.
	ConstructorName = "<init>"
	// TypeInitializerName is the storage name of the type initializer.
	TypeInitializerName = "<clinit>"
)

// Method is an in-memory apis.MethodDescription. The declaring type is set
// when the method is added to a Type.
type Method struct {
	name        string
	kind        apis.MethodKind
	modifiers   apis.Modifiers
	returnType  apis.TypeDescription
	params      []apis.TypeDescription
	paramAnns   []apis.AnnotationList
	exceptions  []apis.TypeDescription
	annotations apis.AnnotationList
	declaring   apis.TypeDescription
}

// Ensure Method implements apis.MethodDescription.
var _ apis.MethodDescription = (*Method)(nil)

// NewMethod returns a method. A nil return type means void.
func NewMethod(name string, mods apis.Modifiers, ret apis.TypeDescription, params ...apis.TypeDescription) *Method {
	if ret == nil {
		ret = Void
	}
	return &Method{
		name:       name,
		kind:       apis.KindMethod,
		modifiers:  mods,
		returnType: ret,
		params:     params,
		paramAnns:  make([]apis.AnnotationList, len(params)),
	}
}

// NewConstructor returns a constructor.
func NewConstructor(mods apis.Modifiers, params ...apis.TypeDescription) *Method {
	m := NewMethod(ConstructorName, mods, Void, params...)
	m.kind = apis.KindConstructor
	return m
}

// NewTypeInitializer returns the implicit static initializer.
func NewTypeInitializer() *Method {
	m := NewMethod(TypeInitializerName, apis.ModStatic, Void)
	m.kind = apis.KindTypeInitializer
	return m
}

// Throws appends declared exception types.
func (m *Method) Throws(exceptions ...apis.TypeDescription) *Method {
	m.exceptions = append(m.exceptions, exceptions...)
	return m
}

// Annotate appends method annotations.
func (m *Method) Annotate(anns ...apis.AnnotationDescription) *Method {
	m.annotations = annotate(m.annotations, anns)
	return m
}

// AnnotateParameter appends annotations to parameter i. It panics when i is
// out of range.
func (m *Method) AnnotateParameter(i int, anns ...apis.AnnotationDescription) *Method {
	m.paramAnns[i] = annotate(m.paramAnns[i], anns)
	return m
}

// Name returns the storage name.
func (m *Method) Name() string { return m.name }

// SourceCodeName returns the language-level name: the declaring type's name
// for constructors and "" for the type initializer.
func (m *Method) SourceCodeName() string {
	switch m.kind {
	case apis.KindConstructor:
		if m.declaring != nil {
			return m.declaring.SourceCodeName()
		}
		return ""
	case apis.KindTypeInitializer:
		return ""
	default:
		return m.name
	}
}

// Descriptor returns "(params)return" in class-file notation.
func (m *Method) Descriptor() string {
	var b strings.Builder
	b.WriteByte('(')
	for _, p := range m.params {
		b.WriteString(p.Descriptor())
	}
	b.WriteByte(')')
	b.WriteString(m.returnType.Descriptor())
	return b.String()
}

func (m *Method) Kind() apis.MethodKind                      { return m.kind }
func (m *Method) Modifiers() apis.Modifiers                  { return m.modifiers }
func (m *Method) DeclaredAnnotations() apis.AnnotationList   { return m.annotations }
func (m *Method) DeclaringType() apis.TypeDescription        { return m.declaring }
func (m *Method) ParameterTypes() []apis.TypeDescription     { return m.params }
func (m *Method) ParameterAnnotations() []apis.AnnotationList { return m.paramAnns }
func (m *Method) ReturnType() apis.TypeDescription           { return m.returnType }
func (m *Method) ExceptionTypes() []apis.TypeDescription     { return m.exceptions }

// Equal reports whether other has the same declaring type, name and descriptor.
func (m *Method) Equal(other any) bool {
	o, ok := other.(apis.MethodDescription)
	if !ok || o == nil || m == nil {
		return false
	}
	if m.name != o.Name() || m.Descriptor() != o.Descriptor() {
		return false
	}
	d, od := m.declaring, o.DeclaringType()
	if d == nil || od == nil {
		return d == nil && od == nil
	}
	return d.Equal(od)
}

// String renders the method signature.
func (m *Method) String() string { return apis.Signature(m) }

// Field is an in-memory apis.FieldDescription.
type Field struct {
	name        string
	modifiers   apis.Modifiers
	fieldType   apis.TypeDescription
	annotations apis.AnnotationList
	declaring   apis.TypeDescription
}

// Ensure Field implements apis.FieldDescription.
var _ apis.FieldDescription = (*Field)(nil)

// NewField returns a field of the given type.
func NewField(name string, mods apis.Modifiers, t apis.TypeDescription) *Field {
	return &Field{name: name, modifiers: mods, fieldType: t}
}

// Annotate appends field annotations.
func (f *Field) Annotate(anns ...apis.AnnotationDescription) *Field {
	f.annotations = annotate(f.annotations, anns)
	return f
}

func (f *Field) Name() string                             { return f.name }
func (f *Field) SourceCodeName() string                   { return f.name }
func (f *Field) Descriptor() string                       { return f.fieldType.Descriptor() }
func (f *Field) Modifiers() apis.Modifiers                { return f.modifiers }
func (f *Field) DeclaredAnnotations() apis.AnnotationList { return f.annotations }
func (f *Field) DeclaringType() apis.TypeDescription      { return f.declaring }
func (f *Field) FieldType() apis.TypeDescription          { return f.fieldType }

// Equal reports whether other is a field of the same name on the same type.
func (f *Field) Equal(other any) bool {
	o, ok := other.(apis.FieldDescription)
	if !ok || o == nil || f == nil {
		return false
	}
	if f.name != o.Name() {
		return false
	}
	d, od := f.declaring, o.DeclaringType()
	if d == nil || od == nil {
		return d == nil && od == nil
	}
	return d.Equal(od)
}

// String renders "Declaring.name".
func (f *Field) String() string {
	if f.declaring != nil {
		return f.declaring.SourceCodeName() + "." + f.name
	}
	return f.name
}
