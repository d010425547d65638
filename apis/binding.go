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

import (
	"fmt"
	"strings"
)

// CallSite is the intercepted method of a generated type for which a
// delegation target is chosen.
type CallSite struct {
	// Instrumented is the generated type declaring the intercepted method.
	Instrumented TypeDescription
	// Method is the intercepted (source) method.
	Method MethodDescription
}

// Key returns a string that identifies the call site structurally.
func (s CallSite) Key() string {
	var b strings.Builder
	if s.Instrumented != nil {
		b.WriteString(s.Instrumented.Name())
	}
	b.WriteByte('#')
	if s.Method != nil {
		b.WriteString(s.Method.Name())
		b.WriteString(s.Method.Descriptor())
		if s.Method.Modifiers().Has(ModStatic) {
			b.WriteString("!static")
		}
	}
	return b.String()
}

// SourceKind discriminates how a candidate parameter receives its value.
type SourceKind int

const (
	// SourceIllegal marks a slot that cannot be supplied. It is the zero
	// value so that an unset source never counts as bound.
	SourceIllegal SourceKind = iota
	// SourceArgument supplies call-site argument Index.
	SourceArgument
	// SourceConstant supplies the fixed Value.
	SourceConstant
	// SourceThis supplies the call-site receiver.
	SourceThis
	// SourceOrigin supplies a description of the intercepted method.
	SourceOrigin
	// SourceSuperCall supplies a callable that invokes the super method.
	SourceSuperCall
	// SourceAllArguments supplies every call-site argument as an array.
	SourceAllArguments
)

// String returns the string representation of the source kind.
func (k SourceKind) String() string {
	switch k {
	case SourceIllegal:
		return "Illegal"
	case SourceArgument:
		return "Argument"
	case SourceConstant:
		return "Constant"
	case SourceThis:
		return "This"
	case SourceOrigin:
		return "Origin"
	case SourceSuperCall:
		return "SuperCall"
	case SourceAllArguments:
		return "AllArguments"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// ArgumentSource describes the value supplied to one candidate parameter.
type ArgumentSource struct {
	Kind SourceKind
	// Index is the call-site argument index for SourceArgument.
	Index int
	// Value is the constant for SourceConstant.
	Value any
	// Explicit is true when the source was requested by a marker rather
	// than inferred from the parameter position.
	Explicit bool
}

// String renders the source for diagnostics.
func (s ArgumentSource) String() string {
	switch s.Kind {
	case SourceArgument:
		return fmt.Sprintf("arg[%d]", s.Index)
	case SourceConstant:
		return fmt.Sprintf("const(%v)", s.Value)
	default:
		return strings.ToLower(s.Kind.String())
	}
}

// ArgumentPlan is the ordered list of sources, one per candidate parameter.
type ArgumentPlan []ArgumentSource

// Valid reports whether no slot is illegal.
func (p ArgumentPlan) Valid() bool {
	for _, s := range p {
		if s.Kind == SourceIllegal {
			return false
		}
	}
	return true
}

// Binding pairs a candidate method with the plan that supplies its arguments.
type Binding struct {
	Target MethodDescription
	Plan   ArgumentPlan
}

// Valid reports whether the plan covers every parameter of the target with a
// legal source. A single illegal slot invalidates the whole binding.
func (b Binding) Valid() bool {
	if b.Target == nil {
		return false
	}
	return len(b.Plan) == len(b.Target.ParameterTypes()) && b.Plan.Valid()
}

// Explicit returns the number of parameters bound through explicit markers.
func (b Binding) Explicit() int {
	n := 0
	for _, s := range b.Plan {
		if s.Explicit {
			n++
		}
	}
	return n
}

// BoundParameter returns the index of the target parameter that receives
// call-site argument arg.
func (b Binding) BoundParameter(arg int) (param int, ok bool) {
	for i, s := range b.Plan {
		if s.Kind == SourceArgument && s.Index == arg {
			return i, true
		}
	}
	return -1, false
}

// String renders the target signature and its plan.
func (b Binding) String() string {
	if b.Target == nil {
		return "<unbound>"
	}
	parts := make([]string, len(b.Plan))
	for i, s := range b.Plan {
		parts[i] = s.String()
	}
	return Signature(b.Target) + " <- (" + strings.Join(parts, ", ") + ")"
}

// Signature renders a method as "Declaring.name(P1,P2)Return".
func Signature(m MethodDescription) string {
	var b strings.Builder
	if d := m.DeclaringType(); d != nil {
		b.WriteString(d.SourceCodeName())
		b.WriteByte('.')
	}
	b.WriteString(m.Name())
	b.WriteByte('(')
	for i, p := range m.ParameterTypes() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.SourceCodeName())
	}
	b.WriteByte(')')
	if r := m.ReturnType(); r != nil {
		b.WriteString(r.SourceCodeName())
	}
	return b.String()
}

// Decision is the verdict of one tie-break strategy for a pair of bindings.
type Decision int

const (
	// Undecided means the strategy has no opinion; the next one is asked.
	Undecided Decision = iota
	// Left means the left binding wins.
	Left
	// Right means the right binding wins.
	Right
)

// String returns the string representation of the decision.
func (d Decision) String() string {
	switch d {
	case Undecided:
		return "Undecided"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return fmt.Sprintf("Unknown(%d)", int(d))
	}
}

// Flip swaps Left and Right.
func (d Decision) Flip() Decision {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	default:
		return d
	}
}
