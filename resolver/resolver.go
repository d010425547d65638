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

package resolver

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"dirpx.dev/bindx/apis"
)

var (
	// ErrEmptyAmbiguitySet is returned when no valid binding is offered.
	ErrEmptyAmbiguitySet = errors.New("bindx(resolver): empty ambiguity set")
	// ErrAmbiguous is wrapped by *AmbiguityError.
	ErrAmbiguous = errors.New("bindx(resolver): ambiguous binding")
)

// AmbiguityError names the bindings no strategy could separate.
type AmbiguityError struct {
	Site apis.CallSite
	// Candidates are the tied bindings, sorted by target signature.
	Candidates []apis.Binding
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("%v for %s: %s", ErrAmbiguous, e.Site.Key(), strings.Join(e.Signatures(), ", "))
}

func (e *AmbiguityError) Unwrap() error { return ErrAmbiguous }

// Signatures returns the signatures of the tied candidates.
func (e *AmbiguityError) Signatures() []string {
	out := make([]string, len(e.Candidates))
	for i, b := range e.Candidates {
		out[i] = apis.Signature(b.Target)
	}
	return out
}

// New constructs an apis.Resolver that asks the given strategies in order.
// Nil strategies are ignored. The returned resolver is safe for concurrent use
// provided strategies themselves are safe for concurrent Decide calls.
func New(strategies ...apis.Strategy) apis.Resolver {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return chain{strats: out}
}

// chain is an immutable, order-preserving resolver over a set of strategies.
type chain struct {
	strats []apis.Strategy
}

// Strategies returns a copy of the chain.
func (r chain) Strategies() []apis.Strategy {
	return slices.Clone(r.strats)
}

// decide returns the verdict of the first decisive strategy.
func (r chain) decide(site apis.CallSite, left, right apis.Binding) apis.Decision {
	for _, s := range r.strats {
		if d := s.Decide(site, left, right); d != apis.Undecided {
			return d
		}
	}
	return apis.Undecided
}

// Resolve runs a tournament over the valid bindings: every pair is decided
// once, and the result is the binding that beats all others. Invalid
// bindings are ignored.
func (r chain) Resolve(site apis.CallSite, bindings []apis.Binding) (apis.Binding, error) {
	set := make([]apis.Binding, 0, len(bindings))
	for _, b := range bindings {
		if b.Valid() {
			set = append(set, b)
		}
	}
	switch len(set) {
	case 0:
		return apis.Binding{}, ErrEmptyAmbiguitySet
	case 1:
		return set[0], nil
	}

	n := len(set)
	// verdict[i][j] is the decision for set[i] as left against set[j].
	verdict := make([][]apis.Decision, n)
	for i := range verdict {
		verdict[i] = make([]apis.Decision, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := r.decide(site, set[i], set[j])
			verdict[i][j], verdict[j][i] = d, d.Flip()
		}
	}

	beaten := make([]bool, n)
	for i := 0; i < n; i++ {
		wins := 0
		for j := 0; j < n; j++ {
			switch {
			case i == j:
			case verdict[i][j] == apis.Left:
				wins++
			case verdict[i][j] == apis.Right:
				beaten[i] = true
			}
		}
		if wins == n-1 {
			return set[i], nil
		}
	}
	return apis.Binding{}, &AmbiguityError{Site: site, Candidates: tied(set, verdict, beaten)}
}

// tied returns the unbeaten bindings and those undecided against one of
// them. When every binding is beaten by some other, all of them are tied.
func tied(set []apis.Binding, verdict [][]apis.Decision, beaten []bool) []apis.Binding {
	keep := make([]bool, len(set))
	found := false
	for i := range set {
		if beaten[i] {
			continue
		}
		found = true
		keep[i] = true
		for j := range set {
			if i != j && verdict[i][j] == apis.Undecided {
				keep[j] = true
			}
		}
	}
	out := make([]apis.Binding, 0, len(set))
	for i, b := range set {
		if keep[i] || !found {
			out = append(out, b)
		}
	}
	slices.SortStableFunc(out, func(a, b apis.Binding) int {
		return strings.Compare(apis.Signature(a.Target), apis.Signature(b.Target))
	})
	return out
}
