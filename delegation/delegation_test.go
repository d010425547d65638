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

package delegation_test

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/bindx/apis"
	"dirpx.dev/bindx/binder"
	"dirpx.dev/bindx/cache"
	cachestrategy "dirpx.dev/bindx/cache/strategy"
	"dirpx.dev/bindx/config"
	"dirpx.dev/bindx/delegation"
	"dirpx.dev/bindx/descriptor"
	"dirpx.dev/bindx/matcher"
	"dirpx.dev/bindx/registry"
	"dirpx.dev/bindx/resolver"
	"dirpx.dev/bindx/strategy"
)

func TestToType_SpecificOverloadWins(t *testing.T) {
	noArg := descriptor.NewMethod("foo", pub|static, x)
	oneArg := descriptor.NewMethod("foo", pub|static, x, y)

	for _, order := range [][]*descriptor.Method{{noArg, oneArg}, {oneArg, noArg}} {
		h := descriptor.Class("app.Statics", pub).WithMethod(order...)
		d, err := delegation.ToType(h)
		require.NoError(t, err)

		got, err := d.Resolve(site(0, z))
		require.NoError(t, err)
		assert.Same(t, oneArg, got.Binding.Target)
		assert.Equal(t, apis.ArgumentPlan{{Kind: apis.SourceArgument, Index: 0}}, got.Binding.Plan)
		assert.True(t, got.Target.Equal(delegation.Target{Anchor: delegation.AnchorStatic, Handler: h}))
	}
}

func TestToType_OnlyStaticMethods(t *testing.T) {
	h := descriptor.Class("app.Mixed", pub).WithMethod(
		descriptor.NewMethod("instance", pub, nil),
		descriptor.NewMethod("static", pub|static, nil),
		descriptor.NewConstructor(pub),
	)
	d, err := delegation.ToType(h)
	require.NoError(t, err)

	names := []string{}
	for _, c := range d.Candidates() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"static"}, names)
}

func TestExcludedNeverBinds(t *testing.T) {
	// The excluded method would be the unique, most specific binding.
	preferred := ignored(descriptor.NewMethod("foo", pub|static, nil, y))
	fallback := descriptor.NewMethod("bar", pub|static, nil)
	h := descriptor.Class("app.Handler", pub).WithMethod(preferred, fallback)

	d, err := delegation.ToType(h)
	require.NoError(t, err)
	for _, c := range d.Candidates() {
		assert.NotSame(t, preferred, c)
	}

	got, err := d.Resolve(site(0, y))
	require.NoError(t, err)
	assert.Same(t, fallback, got.Binding.Target)

	only := descriptor.Class("app.OnlyIgnored", pub).WithMethod(
		ignored(descriptor.NewMethod("foo", pub|static, nil, y)),
	)
	_, err = delegation.ToType(only)
	require.ErrorIs(t, err, delegation.ErrNoEligibleCandidates)
}

func TestResolve_Ambiguous(t *testing.T) {
	h := descriptor.Class("app.Handler", pub).WithMethod(
		descriptor.NewMethod("b", pub|static, nil, y),
		descriptor.NewMethod("a", pub|static, nil, y),
	)
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	d, err := delegation.ToType(h, delegation.WithLogger(logger))
	require.NoError(t, err)

	_, err = d.Resolve(site(0, y))
	require.ErrorIs(t, err, resolver.ErrAmbiguous)
	var amb *resolver.AmbiguityError
	require.True(t, errors.As(err, &amb))
	want := []string{"app.Handler.a(app.Y)void", "app.Handler.b(app.Y)void"}
	if diff := cmp.Diff(want, amb.Signatures()); diff != "" {
		t.Fatalf("tied candidates mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, logs.String(), "ambiguous delegation")

	// A configured strategy breaks the tie.
	ranked := descriptor.Class("app.Ranked", pub).WithMethod(
		descriptor.NewMethod("b", pub|static, nil, y),
		descriptor.NewMethod("a", pub|static, nil, y).Annotate(binder.Priority(1)),
	)
	d, err = delegation.ToType(ranked, delegation.WithConfig(config.NewConfig(
		config.WithResolvers(strategy.Specificity, strategy.Priority),
	)))
	require.NoError(t, err)
	got, err := d.Resolve(site(0, y))
	require.NoError(t, err)
	assert.Equal(t, "a", got.Binding.Target.Name())
}

func TestResolve_UnbindableLoggedAndSkipped(t *testing.T) {
	h := descriptor.Class("app.Handler", pub).WithMethod(
		descriptor.NewMethod("wants", pub|static, nil, x),
	)
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	d, err := delegation.ToType(h, delegation.WithLogger(logger))
	require.NoError(t, err)

	_, err = d.Resolve(site(0, y))
	require.ErrorIs(t, err, delegation.ErrNoEligibleCandidates)
	assert.Contains(t, logs.String(), "candidate unbindable")
	assert.Contains(t, logs.String(), "app.Handler.wants(app.X)void")
}

func TestResolve_Visibility(t *testing.T) {
	h := descriptor.Class("other.Hidden", pub).WithMethod(
		descriptor.NewMethod("foo", static, nil),
	)
	d, err := delegation.ToType(h)
	require.NoError(t, err, "eligibility does not depend on the call site")

	_, err = d.Resolve(site(0))
	require.ErrorIs(t, err, delegation.ErrNoEligibleCandidates)
}

func TestResolve_IncompleteSite(t *testing.T) {
	d, err := delegation.ToInstance(foo{}, delegation.WithHandlerType(fooType))
	require.NoError(t, err)
	_, err = d.Resolve(apis.CallSite{Instrumented: proxy})
	require.ErrorIs(t, err, delegation.ErrIncompleteCallSite)
}

func TestToInstance_EqualityAndHash(t *testing.T) {
	mk := func(v any, field string) *delegation.Delegation {
		t.Helper()
		opts := []delegation.Option{delegation.WithHandlerType(fooType)}
		if field != "" {
			opts = append(opts, delegation.WithFieldName(field))
		}
		d, err := delegation.ToInstance(v, opts...)
		require.NoError(t, err)
		return d
	}

	a1, a2, b := mk(foo{"x"}, "a"), mk(foo{"x"}, "a"), mk(foo{"x"}, "b")
	assert.True(t, a1.Equal(a2), "independent equal configurations")
	assert.Equal(t, a1.Hash(), a2.Hash())
	assert.False(t, a1.Equal(b), "different field names")
	assert.NotEqual(t, a1.Hash(), b.Hash())

	assert.False(t, mk(foo{"x"}, "a").Equal(mk(foo{"y"}, "a")), "different instances")

	derived1, derived2 := mk(foo{"x"}, ""), mk(foo{"x"}, "")
	assert.True(t, derived1.Equal(derived2))
	assert.Equal(t, derived1.Hash(), derived2.Hash())
	assert.True(t, strings.HasPrefix(derived1.Target().FieldName, config.DefaultFieldPrefix+"$"))
	assert.False(t, derived1.Equal(mk(foo{"x"}, "b")))
}

func TestToInstance_DerivedFieldPrefix(t *testing.T) {
	d, err := delegation.ToInstance(foo{}, delegation.WithHandlerType(fooType),
		delegation.WithConfig(config.NewConfig(config.WithFieldPrefix("handler"))))
	require.NoError(t, err)
	assert.Equal(t, delegation.FieldName("handler", foo{}), d.Target().FieldName)
	assert.Len(t, strings.TrimPrefix(d.Target().FieldName, "handler$"), 8)
}

func TestToInstance_DerivedFieldFollowsIdentity(t *testing.T) {
	mk := func(inst any) *delegation.Delegation {
		d, err := delegation.ToInstance(inst, delegation.WithHandlerType(fooType))
		require.NoError(t, err)
		return d
	}

	p, q := &foo{tag: "x"}, &foo{tag: "x"}
	a, b := mk(p), mk(q)
	assert.False(t, a.Equal(b), "distinct pointers with equal state")
	assert.NotEqual(t, a.Target().FieldName, b.Target().FieldName)
	assert.NotEqual(t, a.Fields()[0].Name(), b.Fields()[0].Name())

	again := mk(p)
	assert.True(t, a.Equal(again))
	assert.Equal(t, a.Target().FieldName, again.Target().FieldName)

	ch1, ch2 := make(chan int), make(chan int)
	assert.NotEqual(t, delegation.FieldName("d", ch1), delegation.FieldName("d", ch2))
	assert.Equal(t, delegation.FieldName("d", foo{"x"}), delegation.FieldName("d", foo{"x"}))
	assert.NotEqual(t, delegation.FieldName("d", foo{"x"}), delegation.FieldName("d", foo{"y"}))
}

func TestToInstance_HandlerDescription(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	require.NoError(t, reg.Register(reflect.TypeOf(foo{}), fooType))

	d, err := delegation.ToInstance(&foo{}, delegation.WithRegistry(reg))
	require.NoError(t, err)
	assert.True(t, d.Target().Handler.Equal(fooType))

	d, err = delegation.ToInstance(described{})
	require.NoError(t, err)
	assert.True(t, d.Target().Handler.Equal(fooType))

	_, err = delegation.ToInstance(bar{}, delegation.WithRegistry(reg))
	require.ErrorIs(t, err, delegation.ErrUnknownHandler)
	_, err = delegation.ToInstance(nil)
	require.ErrorIs(t, err, delegation.ErrUnknownHandler)
}

func TestToInstance_Resolve(t *testing.T) {
	inst := foo{"held"}
	d, err := delegation.ToInstance(inst, delegation.WithHandlerType(fooType), delegation.WithFieldName("foo"))
	require.NoError(t, err)

	got, err := d.Resolve(site(0, z))
	require.NoError(t, err)
	assert.Equal(t, delegation.AnchorInstance, got.Target.Anchor)
	assert.Equal(t, inst, got.Target.Instance)
	assert.Equal(t, "handle", got.Binding.Target.Name())
}

func TestTypeAnchors_Equality(t *testing.T) {
	build := map[string]func(h apis.TypeDescription) (*delegation.Delegation, error){
		"toType": func(h apis.TypeDescription) (*delegation.Delegation, error) {
			return delegation.ToType(descriptor.Class(h.Name(), pub).WithMethod(descriptor.NewMethod("s", pub|static, nil)))
		},
		"toConstructor": func(h apis.TypeDescription) (*delegation.Delegation, error) {
			return delegation.ToConstructor(descriptor.Class(h.Name(), pub).WithMethod(descriptor.NewConstructor(pub)))
		},
		"toInstanceField": func(h apis.TypeDescription) (*delegation.Delegation, error) {
			return delegation.ToInstanceField(h, "foo")
		},
	}
	for name, mk := range build {
		t.Run(name, func(t *testing.T) {
			f1, err := mk(fooType)
			require.NoError(t, err)
			f2, err := mk(fooType)
			require.NoError(t, err)
			b, err := mk(barType)
			require.NoError(t, err)

			assert.True(t, f1.Equal(f2))
			assert.Equal(t, f1.Hash(), f2.Hash())
			assert.False(t, f1.Equal(b))
			assert.NotEqual(t, f1.Hash(), b.Hash())
		})
	}

	foo1, err := delegation.ToInstanceField(fooType, "foo")
	require.NoError(t, err)
	fooBar, err := delegation.ToInstanceField(fooType, "bar")
	require.NoError(t, err)
	assert.False(t, foo1.Equal(fooBar))
	assert.NotEqual(t, foo1.Hash(), fooBar.Hash())

	filtered, err := delegation.ToInstanceField(fooType, "foo", delegation.WithFilter(matcher.Named[apis.MethodDescription]("handle")))
	require.NoError(t, err)
	assert.False(t, foo1.Equal(filtered), "filters are part of the identity")

	_, err = delegation.ToInstanceField(fooType, "")
	require.ErrorIs(t, err, delegation.ErrFieldNotDeclared)
	_, err = delegation.ToType(nil)
	require.ErrorIs(t, err, delegation.ErrUnknownHandler)
}

func TestToInstanceField_FieldChecks(t *testing.T) {
	holder := descriptor.Class("app.Service$Holder", pub).Extends(service).
		WithField(descriptor.NewField("foo", apis.ModPrivate, fooType)).
		WithField(descriptor.NewField("wrong", apis.ModPrivate, barType)).
		WithField(descriptor.NewField("shared", apis.ModPrivate|static, fooType))
	base := descriptor.Class("other.Base", pub).
		WithField(descriptor.NewField("hidden", apis.ModPrivate, fooType))
	sub := descriptor.Class("app.Sub", pub).Extends(base)

	at := func(instrumented apis.TypeDescription, mods apis.Modifiers) apis.CallSite {
		s := site(mods, y)
		s.Instrumented = instrumented
		return s
	}
	cases := []struct {
		name  string
		field string
		site  apis.CallSite
		want  error
	}{
		{"declared", "foo", at(holder, 0), nil},
		{"static field from static site", "shared", at(holder, static), nil},
		{"missing", "absent", at(holder, 0), delegation.ErrFieldNotDeclared},
		{"incompatible type", "wrong", at(holder, 0), delegation.ErrFieldNotDeclared},
		{"inaccessible inherited", "hidden", at(sub, 0), delegation.ErrFieldNotDeclared},
		{"no receiver", "foo", at(holder, static), delegation.ErrNoReceiver},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := delegation.ToInstanceField(fooType, tc.field)
			require.NoError(t, err)
			got, err := d.Resolve(tc.site)
			if tc.want != nil {
				require.ErrorIs(t, err, tc.want)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.field, got.Target.FieldName)
		})
	}
}

func TestToConstructor(t *testing.T) {
	made := descriptor.Class("app.Made", pub)
	ctor := descriptor.NewConstructor(pub, y)
	made.WithMethod(ctor, descriptor.NewMethod("notCtor", pub|static, nil, y))

	d, err := delegation.ToConstructor(made)
	require.NoError(t, err)
	require.Len(t, d.Candidates(), 1)

	got, err := d.Resolve(site(0, z))
	require.NoError(t, err)
	assert.Same(t, ctor, got.Binding.Target)

	_, err = delegation.ToConstructor(descriptor.Class("app.NoCtor", pub))
	require.ErrorIs(t, err, delegation.ErrNoEligibleCandidates)
}

func TestFieldsAndInitializer(t *testing.T) {
	inst := foo{"held"}
	d, err := delegation.ToInstance(inst, delegation.WithHandlerType(fooType), delegation.WithFieldName("foo"))
	require.NoError(t, err)

	fields := d.Fields()
	require.Len(t, fields, 1)
	assert.Equal(t, "foo", fields[0].Name())
	assert.True(t, fields[0].Modifiers().Has(pub|static))
	assert.True(t, fields[0].FieldType().Equal(fooType))

	ini, ok := d.Initializer()
	require.True(t, ok)
	assert.True(t, ini.Equal(delegation.Accessible("foo", inst)))

	loaded := descriptor.Class("app.Service$Loaded", pub)
	for _, f := range fields {
		loaded.WithField(descriptor.NewField(f.Name(), f.Modifiers(), f.FieldType()))
	}
	var s setter
	require.NoError(t, ini.OnLoad(loaded, &s))
	assert.Equal(t, inst, s.values["foo"])

	st, err := delegation.ToType(descriptor.Class("app.S", pub).WithMethod(descriptor.NewMethod("s", pub|static, nil)))
	require.NoError(t, err)
	assert.Empty(t, st.Fields())
	_, ok = st.Initializer()
	assert.False(t, ok)
}

func TestResolve_ConcurrentMemoization(t *testing.T) {
	c, err := cache.New[string, apis.Binding](cachestrategy.Unbounded, 0, 0)
	require.NoError(t, err)

	noArg := descriptor.NewMethod("foo", pub|static, x)
	oneArg := descriptor.NewMethod("foo", pub|static, x, y)
	h := descriptor.Class("app.Statics", pub).WithMethod(noArg, oneArg)
	d, err := delegation.ToType(h, delegation.WithCache(c))
	require.NoError(t, err)

	sites := []apis.CallSite{site(0, z), site(0, y)}
	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				got, err := d.Resolve(sites[(i+id)%len(sites)])
				if err != nil {
					t.Errorf("Resolve: %v", err)
					return
				}
				if got.Binding.Target != apis.MethodDescription(oneArg) {
					t.Errorf("Resolve picked %v", got.Binding)
					return
				}
			}
		}(w)
	}
	wg.Wait()
	assert.Equal(t, len(sites), c.Len())

	// A second delegation sharing the cache keeps its own entries.
	other, err := delegation.ToType(h, delegation.WithCache(c), delegation.WithFilter(matcher.TakesArgumentCount(0)))
	require.NoError(t, err)
	got, err := other.Resolve(site(0, z))
	require.NoError(t, err)
	assert.Same(t, noArg, got.Binding.Target)
	assert.Equal(t, len(sites)+1, c.Len())
}

func TestSharedCache_ComponentIdentity(t *testing.T) {
	h := descriptor.Class("app.Handler", pub).WithMethod(
		descriptor.NewMethod("a", pub|static, nil, y),
		descriptor.NewMethod("b", pub|static, nil, y),
	)
	newCache := func() cache.Cache[string, apis.Binding] {
		c, err := cache.New[string, apis.Binding](cachestrategy.Unbounded, 0, 0)
		require.NoError(t, err)
		return c
	}
	resolve := func(opts ...delegation.Option) string {
		d, err := delegation.ToType(h, opts...)
		require.NoError(t, err)
		got, err := d.Resolve(site(0, y))
		require.NoError(t, err)
		return got.Binding.Target.Name()
	}

	t.Run("binders", func(t *testing.T) {
		c := newCache()
		assert.Equal(t, "a", resolve(delegation.WithCache(c), delegation.WithBinder(onlyNamed{"a"})))
		assert.Equal(t, "b", resolve(delegation.WithCache(c), delegation.WithBinder(onlyNamed{"b"})))
		assert.Equal(t, 2, c.Len())
	})
	t.Run("resolvers without strategies", func(t *testing.T) {
		c := newCache()
		assert.Equal(t, "a", resolve(delegation.WithCache(c), delegation.WithResolver(&pick{})))
		assert.Equal(t, "b", resolve(delegation.WithCache(c), delegation.WithResolver(&pick{last: true})))
		assert.Equal(t, 2, c.Len())
	})
}

func TestConfigErrors(t *testing.T) {
	h := descriptor.Class("app.S", pub).WithMethod(descriptor.NewMethod("s", pub|static, nil))

	_, err := delegation.ToType(h, delegation.WithConfig(config.NewConfig(config.WithResolvers("nope"))))
	require.ErrorIs(t, err, strategy.ErrUnknownStrategy)

	bad := config.NewConfig(config.WithCacheStrategy(cachestrategy.TTL))
	bad.CacheTTL = 0
	_, err = delegation.ToType(h, delegation.WithConfig(bad))
	require.Error(t, err)
}

func TestString(t *testing.T) {
	d, err := delegation.ToInstanceField(fooType, "foo")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(d.String(), "field(app.Foo, field=foo) where (isMethod()"), d.String())
}
