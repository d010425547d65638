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

import "dirpx.dev/bindx/apis"

// Well-known binary names of the platform types.
const (
	ObjectName           = "java.lang.Object"
	ThrowableName        = "java.lang.Throwable"
	RuntimeExceptionName = "java.lang.RuntimeException"
	ErrorName            = "java.lang.Error"
	InheritedName        = "java.lang.annotation.Inherited"
)

const pub = apis.ModPublic

// Primitive types.
var (
	Void    = primitive("void", "V")
	Boolean = primitive("boolean", "Z")
	Byte    = primitive("byte", "B")
	Short   = primitive("short", "S")
	Char    = primitive("char", "C")
	Int     = primitive("int", "I")
	Long    = primitive("long", "J")
	Float   = primitive("float", "F")
	Double  = primitive("double", "D")
)

// Root and core reference types.
var (
	Object = &Type{
		name:       ObjectName,
		descriptor: "Ljava/lang/Object;",
		modifiers:  pub,
	}
	Serializable        = Interface("java.io.Serializable", pub)
	Cloneable           = Interface("java.lang.Cloneable", pub)
	CharSequence        = Interface("java.lang.CharSequence", pub)
	Comparable          = Interface("java.lang.Comparable", pub)
	Runnable            = Interface("java.lang.Runnable", pub)
	Callable            = Interface("java.util.concurrent.Callable", pub)
	AnnotationInterface = Interface("java.lang.annotation.Annotation", pub)

	String = Class("java.lang.String", pub|apis.ModFinal).
		Implements(Serializable, Comparable, CharSequence)
	ClassType     = Class("java.lang.Class", pub|apis.ModFinal).Implements(Serializable)
	ReflectMethod = Class("java.lang.reflect.Method", pub|apis.ModFinal)

	Throwable        = Class(ThrowableName, pub).Implements(Serializable)
	Exception        = Class("java.lang.Exception", pub).Extends(Throwable)
	RuntimeException = Class(RuntimeExceptionName, pub).Extends(Exception)
	Error            = Class(ErrorName, pub).Extends(Throwable)

	// Inherited marks annotation types whose presence on a class is
	// inherited by subclasses.
	Inherited = AnnotationType(InheritedName)
)

// Box types.
var (
	Number = Class("java.lang.Number", pub|apis.ModAbstract).Implements(Serializable)

	BoxedVoid      = Class("java.lang.Void", pub|apis.ModFinal)
	BoxedBoolean   = Class("java.lang.Boolean", pub|apis.ModFinal).Implements(Serializable, Comparable)
	BoxedCharacter = Class("java.lang.Character", pub|apis.ModFinal).Implements(Serializable, Comparable)
	BoxedByte      = Class("java.lang.Byte", pub|apis.ModFinal).Extends(Number).Implements(Comparable)
	BoxedShort     = Class("java.lang.Short", pub|apis.ModFinal).Extends(Number).Implements(Comparable)
	BoxedInteger   = Class("java.lang.Integer", pub|apis.ModFinal).Extends(Number).Implements(Comparable)
	BoxedLong      = Class("java.lang.Long", pub|apis.ModFinal).Extends(Number).Implements(Comparable)
	BoxedFloat     = Class("java.lang.Float", pub|apis.ModFinal).Extends(Number).Implements(Comparable)
	BoxedDouble    = Class("java.lang.Double", pub|apis.ModFinal).Extends(Number).Implements(Comparable)
)

var boxes = map[string]*Type{
	"void":    BoxedVoid,
	"boolean": BoxedBoolean,
	"char":    BoxedCharacter,
	"byte":    BoxedByte,
	"short":   BoxedShort,
	"int":     BoxedInteger,
	"long":    BoxedLong,
	"float":   BoxedFloat,
	"double":  BoxedDouble,
}

var unboxes = map[string]*Type{}

var platform = map[string]*Type{}

func init() {
	Object.WithMethod(
		NewConstructor(pub),
		NewMethod("equals", pub, Boolean, Object),
		NewMethod("hashCode", pub|apis.ModNative, Int),
		NewMethod("toString", pub, String),
		NewMethod("clone", apis.ModProtected|apis.ModNative, Object),
		NewMethod("finalize", apis.ModProtected, Void).Throws(Throwable),
	)
	Runnable.WithMethod(NewMethod("run", pub|apis.ModAbstract, Void))
	Callable.WithMethod(NewMethod("call", pub|apis.ModAbstract, Object).Throws(Exception))
	for _, t := range []*Type{
		Void, Boolean, Byte, Short, Char, Int, Long, Float, Double,
		Object, Serializable, Cloneable, CharSequence, Comparable, Runnable,
		Callable, AnnotationInterface, String, ClassType, ReflectMethod, Throwable,
		Exception, RuntimeException, Error, Inherited, Number,
	} {
		platform[t.name] = t
	}
	for prim, box := range boxes {
		platform[box.name] = box
		unboxes[box.name] = platform[prim]
	}
}

// ForName returns the platform type with the given binary name.
func ForName(name string) (apis.TypeDescription, bool) {
	t, ok := platform[name]
	if !ok {
		return nil, false
	}
	return t, true
}

// Box returns the wrapper type of a primitive.
func Box(t apis.TypeDescription) (apis.TypeDescription, bool) {
	if t == nil || !t.IsPrimitive() {
		return nil, false
	}
	b, ok := boxes[t.Name()]
	if !ok {
		return nil, false
	}
	return b, true
}

// Unbox returns the primitive of a wrapper type.
func Unbox(t apis.TypeDescription) (apis.TypeDescription, bool) {
	if t == nil || t.IsPrimitive() {
		return nil, false
	}
	p, ok := unboxes[t.Name()]
	if !ok {
		return nil, false
	}
	return p, true
}
