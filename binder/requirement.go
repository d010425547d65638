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

package binder

import (
	"fmt"

	"dirpx.dev/bindx/apis"
)

// RequirementKind tells what a candidate parameter asks for.
type RequirementKind int

const (
	// RequirePositional is an unmarked parameter j asking for argument j.
	RequirePositional RequirementKind = iota
	RequireArgument
	RequireThis
	RequireOrigin
	RequireSuperCall
	RequireAllArguments
	RequireEmpty
)

// String returns the string representation of the requirement kind.
func (k RequirementKind) String() string {
	switch k {
	case RequirePositional:
		return "Positional"
	case RequireArgument:
		return "Argument"
	case RequireThis:
		return "This"
	case RequireOrigin:
		return "Origin"
	case RequireSuperCall:
		return "SuperCall"
	case RequireAllArguments:
		return "AllArguments"
	case RequireEmpty:
		return "Empty"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Requirement is the binding request of one candidate parameter.
type Requirement struct {
	Kind RequirementKind
	// Index is the call-site argument for positional and explicit
	// argument requirements.
	Index int
	// RuntimeType relaxes reference assignability to a cast.
	RuntimeType bool
}

var roles = []struct {
	marker apis.TypeDescription
	kind   RequirementKind
}{
	{Argument, RequireArgument},
	{This, RequireThis},
	{Origin, RequireOrigin},
	{SuperCall, RequireSuperCall},
	{AllArguments, RequireAllArguments},
	{Empty, RequireEmpty},
}

// Requirements reads the parameter markers of candidate once. A parameter
// carrying two role markers, or an Argument marker without a non-negative
// integer value, is an error.
func Requirements(candidate apis.MethodDescription) ([]Requirement, error) {
	params := candidate.ParameterTypes()
	anns := candidate.ParameterAnnotations()
	runtimeAll := candidate.DeclaredAnnotations().IsAnnotationPresent(RuntimeType)

	out := make([]Requirement, len(params))
	for j := range params {
		var list apis.AnnotationList
		if j < len(anns) {
			list = anns[j]
		}
		req := Requirement{
			Kind:        RequirePositional,
			Index:       j,
			RuntimeType: runtimeAll || list.IsAnnotationPresent(RuntimeType),
		}
		seen := 0
		for _, r := range roles {
			a, ok := list.OfType(r.marker)
			if !ok {
				continue
			}
			if seen++; seen > 1 {
				return nil, fmt.Errorf("parameter %d: conflicting markers", j)
			}
			req.Kind = r.kind
			if r.kind == RequireArgument {
				i, ok := IntValue(a)
				if !ok || i < 0 {
					return nil, fmt.Errorf("parameter %d: invalid argument index", j)
				}
				req.Index = i
			}
		}
		out[j] = req
	}
	return out, nil
}
