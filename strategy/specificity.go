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
	"dirpx.dev/bindx/apis"
	"dirpx.dev/bindx/binder"
)

// NewSpecificityStrategy creates an apis.Strategy that prefers the binding
// with the more specific parameters, argument by argument.
func NewSpecificityStrategy() apis.Strategy {
	return specificityStrategy{}
}

// specificityStrategy compares, for every call-site argument, the parameters
// both bindings feed it into. Binding an argument beats ignoring it and a
// strictly narrower parameter type beats a wider one. When the arguments
// disagree the strategy has no opinion.
type specificityStrategy struct{}

// Ensure specificityStrategy implements apis.Strategy.
var _ apis.Strategy = (*specificityStrategy)(nil)

func (specificityStrategy) Name() string { return Specificity }

// Decide votes per call-site argument.
func (specificityStrategy) Decide(site apis.CallSite, left, right apis.Binding) apis.Decision {
	var leftVotes, rightVotes bool
	for i := range site.Method.ParameterTypes() {
		lp, lok := left.BoundParameter(i)
		rp, rok := right.BoundParameter(i)
		switch {
		case lok && !rok:
			leftVotes = true
		case rok && !lok:
			rightVotes = true
		case lok && rok:
			lt := left.Target.ParameterTypes()[lp]
			rt := right.Target.ParameterTypes()[rp]
			if binder.Narrower(lt, rt) {
				leftVotes = true
			} else if binder.Narrower(rt, lt) {
				rightVotes = true
			}
		}
	}
	switch {
	case leftVotes && !rightVotes:
		return apis.Left
	case rightVotes && !leftVotes:
		return apis.Right
	default:
		return apis.Undecided
	}
}
