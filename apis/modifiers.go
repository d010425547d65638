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

import "strings"

// Modifiers is the modifier bitset of a described element. Bit values follow
// the class-file access flags so collaborators can pass them through as is.
type Modifiers uint32

const (
	ModPublic       Modifiers = 0x0001
	ModPrivate      Modifiers = 0x0002
	ModProtected    Modifiers = 0x0004
	ModStatic       Modifiers = 0x0008
	ModFinal        Modifiers = 0x0010
	ModSynchronized Modifiers = 0x0020
	// ModBridge shares its bit with the field-only volatile flag.
	ModBridge Modifiers = 0x0040
	// ModVarArgs shares its bit with the field-only transient flag.
	ModVarArgs    Modifiers = 0x0080
	ModNative     Modifiers = 0x0100
	ModInterface  Modifiers = 0x0200
	ModAbstract   Modifiers = 0x0400
	ModStrict     Modifiers = 0x0800
	ModSynthetic  Modifiers = 0x1000
	ModAnnotation Modifiers = 0x2000
	ModEnum       Modifiers = 0x4000
)

// ModVisibility masks the three explicit visibility bits.
const ModVisibility = ModPublic | ModPrivate | ModProtected

// Has reports whether every bit of m is set.
func (ms Modifiers) Has(m Modifiers) bool {
	return ms&m == m
}

// IsPackagePrivate reports whether none of the visibility bits is set.
func (ms Modifiers) IsPackagePrivate() bool {
	return ms&ModVisibility == 0
}

var modifierNames = []struct {
	bit  Modifiers
	name string
}{
	{ModPublic, "public"},
	{ModPrivate, "private"},
	{ModProtected, "protected"},
	{ModStatic, "static"},
	{ModFinal, "final"},
	{ModSynchronized, "synchronized"},
	{ModBridge, "bridge"},
	{ModVarArgs, "varargs"},
	{ModNative, "native"},
	{ModInterface, "interface"},
	{ModAbstract, "abstract"},
	{ModStrict, "strict"},
	{ModSynthetic, "synthetic"},
	{ModAnnotation, "annotation"},
	{ModEnum, "enum"},
}

// String renders the set bits in declaration order, space separated.
func (ms Modifiers) String() string {
	var parts []string
	for _, n := range modifierNames {
		if ms.Has(n.bit) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, " ")
}
