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

package apis

// Named is implemented by every element that carries a name.
type Named interface {
	// Name returns the storage-format name (e.g. "<init>" for constructors,
	// the binary name for types).
	Name() string
	// SourceCodeName returns the language-level name of the element.
	SourceCodeName() string
}

// ModifierAware exposes the modifier bitset of an element.
type ModifierAware interface {
	Modifiers() Modifiers
}

// Annotated exposes the annotations declared directly on an element.
type Annotated interface {
	DeclaredAnnotations() AnnotationList
}

// DeclaredByType is implemented by elements that may be nested in a type.
type DeclaredByType interface {
	// DeclaringType returns the enclosing type, or nil for top-level types.
	// The back reference is never owned by the element.
	DeclaringType() TypeDescription
}

// ByteCodeElement is the common capability set of types, methods and fields.
type ByteCodeElement interface {
	Named
	ModifierAware
	Annotated
	DeclaredByType
	// Descriptor returns the low-level structural signature string.
	Descriptor() string
	// Equal reports value equality with another descriptor.
	Equal(other any) bool
}

// TypeDescription describes a type: class, interface, annotation, array or
// primitive.
type TypeDescription interface {
	ByteCodeElement
	// PackageName returns the package of the type ("" for primitives and
	// the default package).
	PackageName() string
	// SuperType returns the direct super class, or nil for the root object
	// type, interfaces and primitives.
	SuperType() TypeDescription
	// Interfaces returns the directly implemented (or extended) interfaces.
	Interfaces() []TypeDescription
	// IsAssignableFrom reports whether a value of other can be stored in a
	// variable of this type without conversion.
	IsAssignableFrom(other TypeDescription) bool
	// IsAssignableTo is the inverse of IsAssignableFrom.
	IsAssignableTo(other TypeDescription) bool
	IsPrimitive() bool
	IsArray() bool
	// ComponentType returns the element type for arrays, nil otherwise.
	ComponentType() TypeDescription
	// DeclaredFields returns the fields declared by this type, not inherited.
	DeclaredFields() []FieldDescription
	// DeclaredMethods returns the methods, constructors and type initializer
	// declared by this type, not inherited.
	DeclaredMethods() []MethodDescription
}

// MethodKind discriminates the three executable member kinds.
type MethodKind int

const (
	KindMethod MethodKind = iota
	KindConstructor
	KindTypeInitializer
)

// String returns the string representation of the method kind.
func (k MethodKind) String() string {
	switch k {
	case KindMethod:
		return "Method"
	case KindConstructor:
		return "Constructor"
	case KindTypeInitializer:
		return "TypeInitializer"
	default:
		return "Unknown"
	}
}

// MethodDescription describes a method, constructor or type initializer.
type MethodDescription interface {
	ByteCodeElement
	Kind() MethodKind
	// ParameterTypes returns the parameter types in declaration order.
	ParameterTypes() []TypeDescription
	// ParameterAnnotations returns one list per parameter, in order.
	ParameterAnnotations() []AnnotationList
	// ReturnType returns the return type; void methods and constructors
	// return the void type, never nil.
	ReturnType() TypeDescription
	// ExceptionTypes returns the declared exception types.
	ExceptionTypes() []TypeDescription
}

// FieldDescription describes a field.
type FieldDescription interface {
	ByteCodeElement
	FieldType() TypeDescription
}

// AnnotationDescription describes one annotation instance.
type AnnotationDescription interface {
	AnnotationType() TypeDescription
	// Value returns the named property, falling back to its default.
	Value(property string) (any, bool)
	Equal(other any) bool
}

// Described is implemented by handler values that know their own descriptor.
type Described interface {
	TypeDescription() TypeDescription
}

// AnnotationList is an ordered set of annotations, at most one per type.
type AnnotationList []AnnotationDescription

// OfType returns the annotation of the given type.
func (l AnnotationList) OfType(t TypeDescription) (AnnotationDescription, bool) {
	if t == nil {
		return nil, false
	}
	for _, a := range l {
		if a.AnnotationType().Equal(t) {
			return a, true
		}
	}
	return nil, false
}

// IsAnnotationPresent reports whether an annotation of type t is present.
func (l AnnotationList) IsAnnotationPresent(t TypeDescription) bool {
	_, ok := l.OfType(t)
	return ok
}

// Types returns the annotation types in list order.
func (l AnnotationList) Types() []TypeDescription {
	out := make([]TypeDescription, 0, len(l))
	for _, a := range l {
		out = append(out, a.AnnotationType())
	}
	return out
}
