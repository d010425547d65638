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

// Package delegation selects, per call site, the single handler member that
// receives an intercepted call and how its arguments are supplied.
//
// A Delegation is built once per handler with ToType, ToInstance,
// ToInstanceField or ToConstructor and is then safe for concurrent use.
// Resolve enumerates the eligible members, binds each against the call
// site, reduces the bindings to one winner and memoizes the result.
package delegation

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strings"

	"golang.org/x/sync/singleflight"

	"dirpx.dev/bindx/apis"
	"dirpx.dev/bindx/binder"
	"dirpx.dev/bindx/cache"
	"dirpx.dev/bindx/config"
	"dirpx.dev/bindx/descriptor"
	"dirpx.dev/bindx/matcher"
	"dirpx.dev/bindx/registry"
	"dirpx.dev/bindx/resolver"
	"dirpx.dev/bindx/strategy"
	uref "dirpx.dev/bindx/utils/reflect"
)

var (
	// ErrNoEligibleCandidates is returned when a handler exposes no member
	// that may receive the call, at construction or for a call site.
	ErrNoEligibleCandidates = errors.New("bindx(delegation): no eligible candidates")
	// ErrUnknownHandler is returned when the handler type is missing or an
	// instance cannot be described.
	ErrUnknownHandler = errors.New("bindx(delegation): unknown handler type")
	// ErrFieldNotDeclared is returned when the generated type does not
	// declare an accessible field of a compatible type under the name.
	ErrFieldNotDeclared = errors.New("bindx(delegation): field not declared")
	// ErrNoReceiver is returned when an instance field is read from a
	// static call site.
	ErrNoReceiver = errors.New("bindx(delegation): no receiver for instance field")
	// ErrIncompleteCallSite is returned for call sites without an
	// instrumented type or method.
	ErrIncompleteCallSite = errors.New("bindx(delegation): incomplete call site")
)

// Resolved is the outcome of Resolve: the winning binding with its anchor.
type Resolved struct {
	Target  Target
	Binding apis.Binding
}

// Delegation is an immutable delegation configuration with a memo of
// resolved call sites.
type Delegation struct {
	target     Target
	eligible   apis.Matcher[apis.MethodDescription]
	candidates []apis.MethodDescription
	binder     apis.Binder
	resolver   apis.Resolver
	cache      cache.Cache[string, apis.Binding]
	logger     *slog.Logger
	// id prefixes cache keys; it covers everything a resolution depends on.
	id    string
	group singleflight.Group
}

// ToType delegates to the static methods of handler.
func ToType(handler apis.TypeDescription, opts ...Option) (*Delegation, error) {
	return build(Target{Anchor: AnchorStatic, Handler: handler}, newOptions(opts))
}

// ToInstance delegates to the instance methods of a held instance. The
// handler type comes from WithHandlerType, apis.Described or the registry.
// The instance lives in a static field of the generated type, named by
// WithFieldName or derived from the instance.
func ToInstance(instance any, opts ...Option) (*Delegation, error) {
	o := newOptions(opts)
	if uref.IsNil(instance) {
		return nil, fmt.Errorf("%w: nil instance", ErrUnknownHandler)
	}
	handler := o.handler
	if uref.IsNil(handler) {
		d, ok := registry.Describe(o.registry, instance)
		if !ok {
			return nil, fmt.Errorf("%w: %T is not registered", ErrUnknownHandler, instance)
		}
		handler = d
	}
	name := o.fieldName
	if name == "" {
		name = FieldName(fieldPrefix(o.cfg), instance)
	}
	return build(Target{
		Anchor:    AnchorInstance,
		Handler:   handler,
		Instance:  instance,
		FieldName: name,
	}, o)
}

// ToInstanceField delegates to the instance methods of the handler stored
// in field fieldName of the generated type, read at call time.
func ToInstanceField(handler apis.TypeDescription, fieldName string, opts ...Option) (*Delegation, error) {
	if fieldName == "" {
		return nil, fmt.Errorf("%w: empty field name", ErrFieldNotDeclared)
	}
	return build(Target{Anchor: AnchorField, Handler: handler, FieldName: fieldName}, newOptions(opts))
}

// ToConstructor delegates to the constructors of handler.
func ToConstructor(handler apis.TypeDescription, opts ...Option) (*Delegation, error) {
	return build(Target{Anchor: AnchorConstructor, Handler: handler}, newOptions(opts))
}

func build(t Target, o options) (*Delegation, error) {
	if uref.IsNil(t.Handler) {
		return nil, fmt.Errorf("%w: nil handler type", ErrUnknownHandler)
	}

	eligible := eligibility(t.Anchor, o.filter)
	var candidates []apis.MethodDescription
	for _, m := range t.Handler.DeclaredMethods() {
		if eligible.Matches(m) {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoEligibleCandidates, t)
	}

	res := o.resolver
	if res == nil {
		names := o.cfg.Resolvers
		if len(names) == 0 {
			names = strategy.Defaults()
		}
		strategies, err := strategy.ByNames(names...)
		if err != nil {
			return nil, err
		}
		res = resolver.New(strategies...)
	}
	b := o.binder
	if b == nil {
		b = binder.New()
	}
	c := o.cache
	if c == nil {
		var err error
		if c, err = cache.New[string, apis.Binding](o.cfg.CacheStrategy, o.cfg.CacheSize, o.cfg.CacheTTL); err != nil {
			return nil, err
		}
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	d := &Delegation{
		target:     t,
		eligible:   eligible,
		candidates: candidates,
		binder:     b,
		resolver:   res,
		cache:      c,
		logger:     logger.With(slog.String("delegation", t.String())),
	}
	d.id = identity(d)
	return d, nil
}

// eligibility is the static part of candidate filtering: member kind,
// static-ness by anchor, the exclusion marker and the user filter.
func eligibility(a Anchor, filter apis.Matcher[apis.MethodDescription]) apis.Matcher[apis.MethodDescription] {
	ms := make([]apis.Matcher[apis.MethodDescription], 0, 4)
	switch a {
	case AnchorStatic:
		ms = append(ms, matcher.IsMethod(), matcher.IsStatic[apis.MethodDescription]())
	case AnchorConstructor:
		ms = append(ms, matcher.IsConstructor())
	default:
		ms = append(ms, matcher.IsMethod(), matcher.Not(matcher.IsStatic[apis.MethodDescription]()))
	}
	ms = append(ms, matcher.Not(matcher.IsAnnotatedWith[apis.MethodDescription](binder.IgnoreForBinding)))
	if filter != nil {
		ms = append(ms, filter)
	}
	return matcher.And(ms...)
}

func identity(d *Delegation) string {
	return fmt.Sprintf("%s|%s|%s|%s", d.target.key(), d.eligible, binderID(d.binder), resolverID(d.resolver))
}

// binderID is the binder's Identity, or its Go type.
func binderID(b apis.Binder) string {
	if i, ok := b.(apis.Identifier); ok {
		return i.Identity()
	}
	return fmt.Sprintf("%T", b)
}

// resolverID is the resolver's Identity, or its Go type and strategy names.
// A resolver without strategies or identity is keyed by address.
func resolverID(r apis.Resolver) string {
	if i, ok := r.(apis.Identifier); ok {
		return i.Identity()
	}
	strategies := r.Strategies()
	if len(strategies) == 0 {
		if reflect.ValueOf(r).Kind() == reflect.Pointer {
			return fmt.Sprintf("%T(%p)", r, r)
		}
		return fmt.Sprintf("%T(%#v)", r, r)
	}
	names := make([]string, 0, len(strategies))
	for _, s := range strategies {
		names = append(names, s.Name())
	}
	return fmt.Sprintf("%T[%s]", r, strings.Join(names, ","))
}

func fieldPrefix(cfg apis.Config) string {
	if cfg.FieldPrefix == "" {
		return config.DefaultFieldPrefix
	}
	return cfg.FieldPrefix
}

// Target returns the anchor of d.
func (d *Delegation) Target() Target { return d.target }

// Candidates returns the eligible handler members in declaration order.
func (d *Delegation) Candidates() []apis.MethodDescription { return slices.Clone(d.candidates) }

// Resolve returns the unique winning binding for site. Results are memoized
// per call site and concurrent misses on one site are computed once.
// Failures are not memoized.
func (d *Delegation) Resolve(site apis.CallSite) (Resolved, error) {
	if uref.IsNil(site.Instrumented) || uref.IsNil(site.Method) {
		return Resolved{}, ErrIncompleteCallSite
	}
	key := d.id + "#" + site.Key()
	if b, ok := d.cache.Get(key); ok {
		observe(d.target.Anchor, outcomeCached)
		return Resolved{Target: d.target, Binding: b}, nil
	}

	v, err, _ := d.group.Do(key, func() (any, error) {
		b, err := d.resolve(site)
		if err != nil {
			return nil, err
		}
		d.cache.Add(key, b)
		return b, nil
	})
	if err != nil {
		observe(d.target.Anchor, outcomeOf(err))
		return Resolved{}, err
	}
	observe(d.target.Anchor, outcomeResolved)
	return Resolved{Target: d.target, Binding: v.(apis.Binding)}, nil
}

func (d *Delegation) resolve(site apis.CallSite) (apis.Binding, error) {
	if d.target.Anchor == AnchorField {
		if err := d.checkField(site); err != nil {
			return apis.Binding{}, err
		}
	}

	visible := matcher.IsVisibleTo[apis.MethodDescription](site.Instrumented)
	bindings := make([]apis.Binding, 0, len(d.candidates))
	seen := 0
	for _, c := range d.candidates {
		if !visible.Matches(c) {
			continue
		}
		seen++
		b, err := d.binder.Bind(site, c)
		if err != nil {
			d.logger.Debug("candidate unbindable",
				slog.String("site", site.Key()),
				slog.String("candidate", apis.Signature(c)),
				slog.Any("error", err))
			continue
		}
		bindings = append(bindings, b)
	}
	switch {
	case seen == 0:
		return apis.Binding{}, fmt.Errorf("%w: no member of %s is visible to %s",
			ErrNoEligibleCandidates, d.target, site.Instrumented.SourceCodeName())
	case len(bindings) == 0:
		return apis.Binding{}, fmt.Errorf("%w: no member of %s binds %s",
			ErrNoEligibleCandidates, d.target, site.Key())
	}

	b, err := d.resolver.Resolve(site, bindings)
	if err != nil {
		var amb *resolver.AmbiguityError
		if errors.As(err, &amb) {
			d.logger.Warn("ambiguous delegation",
				slog.String("site", site.Key()),
				slog.Any("candidates", amb.Signatures()))
		}
		return apis.Binding{}, err
	}
	return b, nil
}

// checkField proves that the generated type declares the handler field with
// a compatible type and that the call site can read it.
func (d *Delegation) checkField(site apis.CallSite) error {
	name := d.target.FieldName
	f, ok := findField(site.Instrumented, name)
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrFieldNotDeclared, site.Instrumented.SourceCodeName(), name)
	}
	if !d.target.Handler.IsAssignableFrom(f.FieldType()) {
		return fmt.Errorf("%w: %s is a %s, want %s",
			ErrFieldNotDeclared, f, f.FieldType().SourceCodeName(), d.target.Handler.SourceCodeName())
	}
	if !matcher.IsVisibleTo[apis.FieldDescription](site.Instrumented).Matches(f) {
		return fmt.Errorf("%w: %s is not accessible from %s",
			ErrFieldNotDeclared, f, site.Instrumented.SourceCodeName())
	}
	if !f.Modifiers().Has(apis.ModStatic) && site.Method.Modifiers().Has(apis.ModStatic) {
		return fmt.Errorf("%w: %s read from static %s", ErrNoReceiver, f, apis.Signature(site.Method))
	}
	return nil
}

// findField looks name up on t and its super classes.
func findField(t apis.TypeDescription, name string) (apis.FieldDescription, bool) {
	for !uref.IsNil(t) {
		for _, f := range t.DeclaredFields() {
			if f.Name() == name {
				return f, true
			}
		}
		t = t.SuperType()
	}
	return nil, false
}

// Fields returns the fields the generated type must define for d: the
// public static holder of a ToInstance handler, nothing otherwise.
func (d *Delegation) Fields() []apis.FieldDescription {
	if d.target.Anchor != AnchorInstance {
		return nil
	}
	return []apis.FieldDescription{
		descriptor.NewField(d.target.FieldName, apis.ModPublic|apis.ModStatic|apis.ModSynthetic, d.target.Handler),
	}
}

// Initializer returns the initializer installing a ToInstance handler into
// its field once the generated type is loaded.
func (d *Delegation) Initializer() (StaticFieldInitializer, bool) {
	if d.target.Anchor != AnchorInstance {
		return StaticFieldInitializer{}, false
	}
	return Accessible(d.target.FieldName, d.target.Instance), true
}

// Equal reports whether o has an equal target and the same candidate filter.
func (d *Delegation) Equal(o *Delegation) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.target.Equal(o.target) && matcher.Equal(d.eligible, o.eligible)
}

// Hash is consistent with Equal.
func (d *Delegation) Hash() uint64 {
	return digest(d.target.key() + "|" + d.eligible.String())
}

// String renders the target and the candidate filter.
func (d *Delegation) String() string {
	return d.target.String() + " where " + d.eligible.String()
}
