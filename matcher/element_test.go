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

package matcher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dirpx.dev/bindx/apis"
	"dirpx.dev/bindx/descriptor"
	"dirpx.dev/bindx/matcher"
)

func TestNameMatchers(t *testing.T) {
	m := descriptor.NewMethod("getUserName", pub, descriptor.String)
	descriptor.Class("example.Users", pub).WithMethod(m)

	cases := []struct {
		name string
		m    apis.Matcher[apis.MethodDescription]
		want bool
	}{
		{"named", matcher.Named[apis.MethodDescription]("getUserName"), true},
		{"named case", matcher.Named[apis.MethodDescription]("getusername"), false},
		{"named ignore case", matcher.NamedIgnoreCase[apis.MethodDescription]("GETUSERNAME"), true},
		{"starts with", matcher.NameStartsWith[apis.MethodDescription]("get"), true},
		{"starts with ignore case", matcher.NameStartsWithIgnoreCase[apis.MethodDescription]("GET"), true},
		{"ends with", matcher.NameEndsWith[apis.MethodDescription]("Name"), true},
		{"ends with miss", matcher.NameEndsWith[apis.MethodDescription]("name"), false},
		{"ends with ignore case", matcher.NameEndsWithIgnoreCase[apis.MethodDescription]("NAME"), true},
		{"contains", matcher.NameContains[apis.MethodDescription]("User"), true},
		{"contains ignore case", matcher.NameContainsIgnoreCase[apis.MethodDescription]("user"), true},
		{"matches full", matcher.NameMatches[apis.MethodDescription]("get[A-Z]\\w+"), true},
		{"matches partial only", matcher.NameMatches[apis.MethodDescription]("User"), false},
		{"descriptor", matcher.HasDescriptor[apis.MethodDescription]("()Ljava/lang/String;"), true},
		{"descriptor miss", matcher.HasDescriptor[apis.MethodDescription]("()V"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.m.Matches(m), tc.m.String())
		})
	}
}

func TestNameMatchers_SourceCodeName(t *testing.T) {
	outer := descriptor.Class("example.Outer", pub)
	inner := descriptor.Class("example.Outer$Inner", pub).DeclaredIn(outer)
	assert.True(t, matcher.Named[apis.TypeDescription]("example.Outer.Inner").Matches(inner))
	assert.False(t, matcher.Named[apis.TypeDescription]("example.Outer$Inner").Matches(inner))
	assert.True(t, matcher.HasDescriptor[apis.TypeDescription]("Lexample/Outer$Inner;").Matches(inner))

	init := descriptor.NewConstructor(pub)
	outer.WithMethod(init)
	assert.True(t, matcher.Named[apis.MethodDescription]("example.Outer").Matches(init))
}

func TestDeclaredBy(t *testing.T) {
	assert.True(t, matcher.IsDeclaredBy[apis.MethodDescription](base).Matches(getName))
	assert.False(t, matcher.IsDeclaredBy[apis.MethodDescription](derived).Matches(getName))
	assert.False(t, matcher.IsDeclaredBy[apis.TypeDescription](base).Matches(derived))
	assert.True(t, matcher.DeclaredBy[apis.MethodDescription](matcher.IsAnnotatedWith[apis.TypeDescription](marker)).Matches(getName))
	assert.False(t, matcher.DeclaredBy[apis.TypeDescription](matcher.Any[apis.TypeDescription]()).Matches(base))
}

func TestIsVisibleTo(t *testing.T) {
	outer := descriptor.Class("a.Outer", pub)
	hidden := descriptor.Class("a.Outer$Hidden", apis.ModPrivate).DeclaredIn(outer)
	sibling := descriptor.Class("a.Sibling", 0)
	foreign := descriptor.Class("b.Foreign", pub)
	sub := descriptor.Class("b.Sub", pub).Extends(outer)
	nested := descriptor.Class("a.Outer$Nested", pub).DeclaredIn(outer)

	pubM := descriptor.NewMethod("pub", pub, nil)
	protM := descriptor.NewMethod("prot", apis.ModProtected, nil)
	pkgM := descriptor.NewMethod("pkg", 0, nil)
	privM := descriptor.NewMethod("priv", apis.ModPrivate, nil)
	outer.WithMethod(pubM, protM, pkgM, privM)
	inHidden := descriptor.NewMethod("inHidden", pub, nil)
	hidden.WithMethod(inHidden)
	inSibling := descriptor.NewMethod("inSibling", pub, nil)
	sibling.WithMethod(inSibling)

	cases := []struct {
		name string
		m    apis.MethodDescription
		to   apis.TypeDescription
		want bool
	}{
		{"public from anywhere", pubM, foreign, true},
		{"protected same package", protM, sibling, true},
		{"protected subclass", protM, sub, true},
		{"protected foreign", protM, foreign, false},
		{"package-private same package", pkgM, sibling, true},
		{"package-private foreign", pkgM, sub, false},
		{"private same type", privM, outer, true},
		{"private nest mate", privM, nested, true},
		{"private same package", privM, sibling, false},
		{"member of private nested type from nest", inHidden, nested, true},
		{"member of private nested type from package", inHidden, sibling, false},
		{"member of package-private type from foreign", inSibling, foreign, false},
		{"member of package-private type from package", inSibling, outer, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := matcher.IsVisibleTo[apis.MethodDescription](tc.to).Matches(tc.m)
			assert.Equal(t, tc.want, got)
		})
	}

	types := matcher.IsVisibleTo[apis.TypeDescription](foreign)
	assert.True(t, types.Matches(descriptor.Int))
	assert.True(t, types.Matches(descriptor.ArrayOf(outer)))
	assert.False(t, types.Matches(descriptor.ArrayOf(sibling)))
	assert.False(t, types.Matches(hidden))
	assert.True(t, types.Matches(nested))
}

func TestAnnotations(t *testing.T) {
	assert.True(t, matcher.IsAnnotatedWith[apis.TypeDescription](marker).Matches(base))
	assert.False(t, matcher.IsAnnotatedWith[apis.TypeDescription](marker).Matches(derived))

	assert.True(t, matcher.InheritsAnnotation(inherited).Matches(base))
	assert.True(t, matcher.InheritsAnnotation(inherited).Matches(derived))
	assert.False(t, matcher.InheritsAnnotation(marker).Matches(derived), "non-inheritable annotation")

	iface := descriptor.Interface("example.Tagged", pub).Annotate(descriptor.Marker(inherited))
	impl := descriptor.Class("example.Impl", pub).Implements(iface)
	assert.False(t, matcher.InheritsAnnotation(inherited).Matches(impl), "interfaces do not pass annotations on")
}

func TestSubAndSuperType(t *testing.T) {
	cases := []struct {
		name      string
		v, t      apis.TypeDescription
		sub, supr bool
	}{
		{"reflexive", base, base, true, true},
		{"derived of base", derived, base, true, false},
		{"base of derived", base, derived, false, true},
		{"object", base, descriptor.Object, true, false},
		{"interface", descriptor.String, descriptor.CharSequence, true, false},
		{"unrelated", descriptor.String, base, false, false},
		{"primitive reflexive", descriptor.Int, descriptor.Int, true, true},
		{"no primitive widening", descriptor.Int, descriptor.Long, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.sub, matcher.IsSubTypeOf(tc.t).Matches(tc.v), "isSubTypeOf")
			assert.Equal(t, tc.supr, matcher.IsSuperTypeOf(tc.t).Matches(tc.v), "isSuperTypeOf")
		})
	}
}

func TestDeclaresMembers(t *testing.T) {
	hasName := matcher.DeclaresField(matcher.Named[apis.FieldDescription]("name"))
	assert.True(t, hasName.Matches(base))
	assert.False(t, hasName.Matches(derived), "inherited fields do not count")

	hasGetter := matcher.DeclaresMethod(matcher.IsGetter())
	assert.True(t, hasGetter.Matches(base))
	assert.False(t, hasGetter.Matches(derived))
}

func TestModifiers(t *testing.T) {
	m := descriptor.NewMethod("m", apis.ModProtected|apis.ModStatic|apis.ModFinal|apis.ModSynchronized|apis.ModVarArgs, nil)
	n := descriptor.NewMethod("n", apis.ModNative|apis.ModStrict|apis.ModBridge|apis.ModSynthetic|apis.ModAbstract, nil)

	cases := []struct {
		name string
		m    apis.Matcher[apis.MethodDescription]
		m1   bool
		m2   bool
	}{
		{"public", matcher.IsPublic[apis.MethodDescription](), false, false},
		{"protected", matcher.IsProtected[apis.MethodDescription](), true, false},
		{"private", matcher.IsPrivate[apis.MethodDescription](), false, false},
		{"package-private", matcher.IsPackagePrivate[apis.MethodDescription](), false, true},
		{"static", matcher.IsStatic[apis.MethodDescription](), true, false},
		{"final", matcher.IsFinal[apis.MethodDescription](), true, false},
		{"synthetic", matcher.IsSynthetic[apis.MethodDescription](), false, true},
		{"abstract", matcher.IsAbstract[apis.MethodDescription](), false, true},
		{"synchronized", matcher.IsSynchronized(), true, false},
		{"varargs", matcher.IsVarArgs(), true, false},
		{"native", matcher.IsNative(), false, true},
		{"strict", matcher.IsStrict(), false, true},
		{"bridge", matcher.IsBridge(), false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.m1, tc.m.Matches(m))
			assert.Equal(t, tc.m2, tc.m.Matches(n))
		})
	}
}
