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

package reflect_test

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/bindx/apis"
	uref "dirpx.dev/bindx/utils/reflect"
)

// Local handler types.
type Handler struct{}
type Audit struct{}
type Box[T any] struct{ V T }

// cfg returns a baseline Config for tests.
func cfg(opts ...func(*apis.Config)) apis.Config {
	c := apis.Config{
		IncludeBuiltins: true,
		MaxUnwrap:       8,
		MapPreferElem:   true,
	}
	for _, o := range opts {
		o(&c)
	}
	return c
}

func TestNormalize_Containers(t *testing.T) {
	want := reflect.TypeOf(Handler{})
	cases := []struct {
		name string
		typ  reflect.Type
	}{
		{"plain", reflect.TypeOf(Handler{})},
		{"ptr", reflect.TypeOf(&Handler{})},
		{"slice", reflect.TypeOf([]Handler{})},
		{"array", reflect.TypeOf([2]Handler{})},
		{"chan", reflect.TypeOf((chan Handler)(nil))},
		{"slice of ptr", reflect.TypeOf([]*Handler{})},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := uref.Normalize(tc.typ, cfg())
			if err != nil {
				t.Fatalf("Normalize(%v) returned error: %v", tc.typ, err)
			}
			if got != want {
				t.Fatalf("Normalize(%v) = %v, want %v", tc.typ, got, want)
			}
		})
	}
}

func TestNormalize_MapPreference(t *testing.T) {
	tMap := reflect.TypeOf(map[Audit]Handler{})

	got, err := uref.Normalize(tMap, cfg())
	if err != nil || got != reflect.TypeOf(Handler{}) {
		t.Fatalf("prefer elem: got (%v, %v), want Handler", got, err)
	}

	got, err = uref.Normalize(tMap, cfg(func(c *apis.Config) { c.MapPreferElem = false }))
	if err != nil || got != reflect.TypeOf(Audit{}) {
		t.Fatalf("prefer key: got (%v, %v), want Audit", got, err)
	}
}

func TestNormalize_MapUnnamedFallback(t *testing.T) {
	type Anon = struct{ X int }
	tMap := reflect.TypeOf(map[string]Anon{})

	got, err := uref.Normalize(tMap, cfg())
	if err != nil || got != reflect.TypeOf("") {
		t.Fatalf("prefer elem falls back to key: got (%v, %v), want string", got, err)
	}

	// map[string][]*Handler: neither side named, unwrapping continues with the element.
	nested := reflect.TypeOf(map[struct{}][]*Handler{})
	got, err = uref.Normalize(nested, cfg())
	if err != nil || got != reflect.TypeOf(Handler{}) {
		t.Fatalf("nested elem: got (%v, %v), want Handler", got, err)
	}
}

func TestNormalize_GenericInstantiation(t *testing.T) {
	got, err := uref.Normalize(reflect.TypeOf(&Box[Handler]{}), cfg())
	if err != nil {
		t.Fatalf("Normalize(*Box[Handler]): %v", err)
	}
	if got != reflect.TypeOf(Box[Handler]{}) {
		t.Fatalf("Normalize(*Box[Handler]) = %v", got)
	}
}

func TestNormalize_MaxUnwrap(t *testing.T) {
	type PP = **Handler
	tPP := reflect.TypeOf((*PP)(nil)).Elem()

	if _, err := uref.Normalize(tPP, cfg(func(c *apis.Config) { c.MaxUnwrap = 1 })); !errors.Is(err, uref.ErrReflectTypeNotNamed) {
		t.Fatalf("MaxUnwrap=1: got %v, want ErrReflectTypeNotNamed", err)
	}
	if got, err := uref.Normalize(tPP, cfg(func(c *apis.Config) { c.MaxUnwrap = 0 })); err != nil || got != reflect.TypeOf(Handler{}) {
		t.Fatalf("MaxUnwrap=0 uses the default: got (%v, %v), want Handler", got, err)
	}
}

func TestNormalize_Errors(t *testing.T) {
	cases := []struct {
		name string
		typ  reflect.Type
		conf apis.Config
		want error
	}{
		{"nil", nil, cfg(), uref.ErrReflectNilType},
		{"anonymous struct", reflect.TypeOf(struct{ X int }{}), cfg(), uref.ErrReflectTypeNotNamed},
		{"func", reflect.TypeOf(func() {}), cfg(), uref.ErrReflectTypeNotNamed},
		{"builtin excluded", reflect.TypeOf(0), cfg(func(c *apis.Config) { c.IncludeBuiltins = false }), uref.ErrReflectBuiltin},
		{"builtin elem excluded", reflect.TypeOf([]string{}), cfg(func(c *apis.Config) { c.IncludeBuiltins = false }), uref.ErrReflectBuiltin},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uref.Normalize(tc.typ, tc.conf); !errors.Is(err, tc.want) {
				t.Fatalf("Normalize(%v) = %v, want %v", tc.typ, err, tc.want)
			}
		})
	}

	if got, err := uref.Normalize(reflect.TypeOf(0), cfg()); err != nil || got != reflect.TypeOf(0) {
		t.Fatalf("builtin included: got (%v, %v), want int", got, err)
	}
}

// Normalize is pure; hammer it to smoke-test that no shared state is mutated.
func TestNormalize_Concurrent(t *testing.T) {
	types := []reflect.Type{
		reflect.TypeOf(Handler{}),
		reflect.TypeOf(&Handler{}),
		reflect.TypeOf([]Audit{}),
		reflect.TypeOf(map[string]Handler{}),
		reflect.TypeOf(Box[int]{}),
		reflect.TypeOf(0),
	}
	conf := cfg()

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				rt, err := uref.Normalize(types[i%len(types)], conf)
				if err != nil {
					errCh <- err
					return
				}
				if rt == nil || rt.Name() == "" {
					errCh <- errors.New("got unnamed or nil type")
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errCh)
	for e := range errCh {
		t.Fatal(e)
	}
}

func BenchmarkNormalize(b *testing.B) {
	tMap := reflect.TypeOf(map[string][]*Handler{})
	for _, c := range []apis.Config{
		cfg(),
		cfg(func(c *apis.Config) { c.MapPreferElem = false }),
		cfg(func(c *apis.Config) { c.IncludeBuiltins = false }),
	} {
		name := fmt.Sprintf("elem=%t/builtins=%t", c.MapPreferElem, c.IncludeBuiltins)
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = uref.Normalize(tMap, c)
			}
		})
	}
}
