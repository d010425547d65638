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

import "dirpx.dev/bindx/apis"

func modifier[T apis.ModifierAware](name string, bit apis.Modifiers) apis.Matcher[T] {
	return newPredicate(call(name), func(v T) bool {
		return v.Modifiers().Has(bit)
	})
}

// IsPublic matches public elements.
func IsPublic[T apis.ModifierAware]() apis.Matcher[T] {
	return modifier[T]("isPublic", apis.ModPublic)
}

// IsProtected matches protected elements.
func IsProtected[T apis.ModifierAware]() apis.Matcher[T] {
	return modifier[T]("isProtected", apis.ModProtected)
}

// IsPrivate matches private elements.
func IsPrivate[T apis.ModifierAware]() apis.Matcher[T] {
	return modifier[T]("isPrivate", apis.ModPrivate)
}

// IsPackagePrivate matches elements carrying none of the visibility bits.
func IsPackagePrivate[T apis.ModifierAware]() apis.Matcher[T] {
	return newPredicate(call("isPackagePrivate"), func(v T) bool {
		return v.Modifiers().IsPackagePrivate()
	})
}

// IsFinal matches final elements.
func IsFinal[T apis.ModifierAware]() apis.Matcher[T] {
	return modifier[T]("isFinal", apis.ModFinal)
}

// IsStatic matches static elements.
func IsStatic[T apis.ModifierAware]() apis.Matcher[T] {
	return modifier[T]("isStatic", apis.ModStatic)
}

// IsSynthetic matches compiler-generated elements.
func IsSynthetic[T apis.ModifierAware]() apis.Matcher[T] {
	return modifier[T]("isSynthetic", apis.ModSynthetic)
}

// IsAbstract matches abstract types and methods.
func IsAbstract[T apis.ModifierAware]() apis.Matcher[T] {
	return modifier[T]("isAbstract", apis.ModAbstract)
}

// Method-only modifiers. On fields the same bits mean volatile and transient.

// IsSynchronized matches synchronized methods.
func IsSynchronized() apis.Matcher[apis.MethodDescription] {
	return modifier[apis.MethodDescription]("isSynchronized", apis.ModSynchronized)
}

// IsNative matches native methods.
func IsNative() apis.Matcher[apis.MethodDescription] {
	return modifier[apis.MethodDescription]("isNative", apis.ModNative)
}

// IsStrict matches strictfp methods.
func IsStrict() apis.Matcher[apis.MethodDescription] {
	return modifier[apis.MethodDescription]("isStrict", apis.ModStrict)
}

// IsVarArgs matches methods with a variable-arity last parameter.
func IsVarArgs() apis.Matcher[apis.MethodDescription] {
	return modifier[apis.MethodDescription]("isVarArgs", apis.ModVarArgs)
}

// IsBridge matches compiler-generated bridge methods.
func IsBridge() apis.Matcher[apis.MethodDescription] {
	return modifier[apis.MethodDescription]("isBridge", apis.ModBridge)
}
