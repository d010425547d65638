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

package strategy

import (
	"errors"
	"fmt"
	"slices"

	"dirpx.dev/bindx/apis"
)

// Names of the built-in strategies, as used in apis.Config.Resolvers.
const (
	Specificity     = "specificity"
	Explicitness    = "explicitness"
	DeclaringType   = "declaring-type"
	Priority        = "priority"
	NameEquality    = "name"
	ParameterLength = "parameter-length"
)

// ErrUnknownStrategy is returned by ByName for names without a strategy.
var ErrUnknownStrategy = errors.New("bindx(strategy): unknown strategy")

var constructors = map[string]func() apis.Strategy{
	Specificity:     NewSpecificityStrategy,
	Explicitness:    NewExplicitnessStrategy,
	DeclaringType:   NewDeclaringTypeStrategy,
	Priority:        NewPriorityStrategy,
	NameEquality:    NewNameStrategy,
	ParameterLength: NewParameterLengthStrategy,
}

// Defaults returns the default strategy names in order.
func Defaults() []string {
	return []string{Specificity, Explicitness, DeclaringType}
}

// Names returns every built-in strategy name, sorted.
func Names() []string {
	out := make([]string, 0, len(constructors))
	for n := range constructors {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// ByName returns the built-in strategy called name.
func ByName(name string) (apis.Strategy, error) {
	ctor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return ctor(), nil
}

// ByNames resolves names in order.
func ByNames(names ...string) ([]apis.Strategy, error) {
	out := make([]apis.Strategy, 0, len(names))
	for _, n := range names {
		s, err := ByName(n)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// compare turns two scores into a decision: the higher one wins.
func compare(left, right int) apis.Decision {
	switch {
	case left > right:
		return apis.Left
	case right > left:
		return apis.Right
	default:
		return apis.Undecided
	}
}
